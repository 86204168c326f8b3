package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type EntityType string

const (
	EntityTypeJob       EntityType = "job"
	EntityTypeCandidate EntityType = "candidate"
)

// VectorEntry is one row of the vector index. A job owns one primary vector
// plus one tagged sub-vector per required skill; candidates own a single
// primary vector over their combined skill text.
type VectorEntry struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EntityID      uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_vector_owner" json:"entity_id"`
	EntityType    EntityType      `gorm:"type:varchar(20);uniqueIndex:idx_vector_owner" json:"entity_type"`
	SkillName     string          `gorm:"type:varchar(100);uniqueIndex:idx_vector_owner" json:"skill_name,omitempty"`
	IsSkillVector bool            `json:"is_skill_vector"`
	Embedding     pgvector.Vector `gorm:"type:vector(1536)" json:"-"`
	Metadata      string          `gorm:"type:jsonb" json:"metadata"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (v *VectorEntry) TableName() string {
	return "vector_entries"
}

// VectorMatch is one ranked hit returned by a similarity query.
type VectorMatch struct {
	EntityID uuid.UUID `json:"entity_id"`
	Score    float64   `json:"score"` // cosine similarity in [0,1]
	Metadata string    `json:"metadata"`
}

// VectorFilter is the tagged set of structured predicates a similarity query
// may apply. Anything outside these three is rejected at the orchestrator
// boundary before retrieval starts.
type VectorFilter struct {
	VisaSponsorship *bool          `json:"visa_eq,omitempty"`
	MinSalary       *int           `json:"salary_gte,omitempty"`
	LocationTypes   []LocationType `json:"location_type_in,omitempty"`
}
