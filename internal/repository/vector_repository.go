package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/talent-matcher/internal/model"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VectorRepository stores vector index rows and answers cosine top-K queries
// through pgvector.
type VectorRepository struct {
	db *gorm.DB
}

func NewVectorRepository(db *gorm.DB) *VectorRepository {
	return &VectorRepository{db}
}

// Upsert inserts the entry or refreshes the embedding and metadata of the
// existing row for the same owner and skill tag.
func (r *VectorRepository) Upsert(ctx context.Context, entry *model.VectorEntry) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "entity_id"},
			{Name: "entity_type"},
			{Name: "skill_name"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"embedding", "metadata", "updated_at"}),
	}).Create(entry).Error
}

// Query returns the topK primary vectors of the given entity type closest to
// embedding by cosine distance, with structured filters pushed into SQL
// against the jsonb metadata.
func (r *VectorRepository) Query(ctx context.Context, embedding pgvector.Vector, entityType model.EntityType, filter model.VectorFilter, topK int) ([]model.VectorMatch, error) {
	query := `
        SELECT entity_id, 1 - (embedding <=> ?) AS score, metadata
        FROM vector_entries
        WHERE entity_type = ? AND is_skill_vector = false`
	args := []any{embedding, entityType}

	if filter.VisaSponsorship != nil {
		query += ` AND (metadata->>'sponsors_visa')::boolean = ?`
		args = append(args, *filter.VisaSponsorship)
	}
	if filter.MinSalary != nil {
		query += ` AND (metadata->>'salary_max') IS NOT NULL AND (metadata->>'salary_max')::int >= ?`
		args = append(args, *filter.MinSalary)
	}
	if len(filter.LocationTypes) > 0 {
		placeholders := make([]string, len(filter.LocationTypes))
		for i, lt := range filter.LocationTypes {
			placeholders[i] = "?"
			args = append(args, string(lt))
		}
		query += fmt.Sprintf(` AND metadata->>'location_type' IN (%s)`, strings.Join(placeholders, ","))
	}

	query += `
        ORDER BY embedding <=> ?
        LIMIT ?`
	args = append(args, embedding, topK)

	var matches []model.VectorMatch
	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&matches).Error
	return matches, err
}

// DeletePrimary removes the owner's primary vector row.
func (r *VectorRepository) DeletePrimary(ctx context.Context, entityID uuid.UUID, entityType model.EntityType) error {
	return r.db.WithContext(ctx).
		Where("entity_id = ? AND entity_type = ? AND is_skill_vector = false", entityID, entityType).
		Delete(&model.VectorEntry{}).Error
}

// DeleteSkillVectors removes every skill sub-vector owned by the entity.
func (r *VectorRepository) DeleteSkillVectors(ctx context.Context, entityID uuid.UUID, entityType model.EntityType) error {
	return r.db.WithContext(ctx).
		Where("entity_id = ? AND entity_type = ? AND is_skill_vector = true", entityID, entityType).
		Delete(&model.VectorEntry{}).Error
}
