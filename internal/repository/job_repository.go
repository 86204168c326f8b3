package repository

import (
	"context"
	"errors"

	"github.com/fadilmartias/talent-matcher/internal/apperr"
	"github.com/fadilmartias/talent-matcher/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db}
}

func (r *JobRepository) Create(ctx context.Context, job *model.JobPosting) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *JobRepository) Update(ctx context.Context, job *model.JobPosting) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *JobRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.JobPosting, error) {
	var job model.JobPosting
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	return &job, err
}

// FindByIDs loads a batch of postings in one query. Missing IDs are simply
// absent from the result.
func (r *JobRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.JobPosting, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var jobs []model.JobPosting
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.JobPosting{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
