package repository

import (
	"context"
	"errors"

	"github.com/fadilmartias/talent-matcher/internal/apperr"
	"github.com/fadilmartias/talent-matcher/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db}
}

func (r *CandidateRepository) Create(ctx context.Context, candidate *model.Candidate) error {
	return r.db.WithContext(ctx).Create(candidate).Error
}

func (r *CandidateRepository) Update(ctx context.Context, candidate *model.Candidate) error {
	return r.db.WithContext(ctx).Save(candidate).Error
}

func (r *CandidateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	var candidate model.Candidate
	err := r.db.WithContext(ctx).First(&candidate, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	return &candidate, err
}

func (r *CandidateRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Candidate, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var candidates []model.Candidate
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&candidates).Error
	return candidates, err
}

func (r *CandidateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Candidate{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
