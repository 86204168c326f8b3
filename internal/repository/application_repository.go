package repository

import (
	"context"

	"github.com/fadilmartias/talent-matcher/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db}
}

func (r *ApplicationRepository) Create(ctx context.Context, application *model.Application) error {
	return r.db.WithContext(ctx).Create(application).Error
}

// ListByJob returns up to limit applications for the job, oldest first so
// ranking order is stable across calls.
func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID, limit int) ([]model.Application, error) {
	var applications []model.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Limit(limit).
		Find(&applications).Error
	return applications, err
}

// UpdateFitIndex persists a computed fit index on the application row.
func (r *ApplicationRepository) UpdateFitIndex(ctx context.Context, applicationID uuid.UUID, fitIndex int) error {
	return r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("id = ?", applicationID).
		Update("fit_index", fitIndex).Error
}
