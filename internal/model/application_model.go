package model

import (
	"time"

	"github.com/google/uuid"
)

type Application struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	JobID       uuid.UUID `gorm:"type:uuid;index" json:"job_id"`
	CandidateID uuid.UUID `gorm:"type:uuid;index" json:"candidate_id"`
	Status      string    `gorm:"type:varchar(50)" json:"status"` // e.g. "submitted", "reviewed", "rejected"
	FitIndex    *int      `json:"fit_index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (a *Application) TableName() string {
	return "applications"
}
