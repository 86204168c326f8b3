package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/fadilmartias/talent-matcher/internal/apperr"
	"github.com/fadilmartias/talent-matcher/internal/cache"
	"github.com/fadilmartias/talent-matcher/internal/model"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// VectorIndex is the persistence contract for the vector store, satisfied by
// repository.VectorRepository.
type VectorIndex interface {
	Upsert(ctx context.Context, entry *model.VectorEntry) error
	Query(ctx context.Context, embedding pgvector.Vector, entityType model.EntityType, filter model.VectorFilter, topK int) ([]model.VectorMatch, error)
	DeletePrimary(ctx context.Context, entityID uuid.UUID, entityType model.EntityType) error
	DeleteSkillVectors(ctx context.Context, entityID uuid.UUID, entityType model.EntityType) error
}

type EmbeddingServiceInterface interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	BatchGenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
	IndexJob(ctx context.Context, job *model.JobPosting) error
	IndexCandidate(ctx context.Context, candidate *model.Candidate) error
	QuerySimilarJobs(ctx context.Context, candidate *model.Candidate, filter model.VectorFilter, topK int) ([]model.VectorMatch, error)
	DeleteJob(ctx context.Context, jobID uuid.UUID) error
	DeleteCandidate(ctx context.Context, candidateID uuid.UUID) error
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// EmbeddingService fronts the embedding provider with a content-hash cache
// and owns the vector index entries for jobs and candidates.
type EmbeddingService struct {
	Provider  EmbeddingProvider
	Index     VectorIndex
	Cache     *cache.TTLCache
	Logger    *zap.Logger
	BatchSize int
}

func NewEmbeddingService(provider EmbeddingProvider, index VectorIndex, embedCache *cache.TTLCache, logger *zap.Logger, batchSize int) *EmbeddingService {
	if batchSize <= 0 {
		batchSize = 32
	}
	return &EmbeddingService{
		Provider:  provider,
		Index:     index,
		Cache:     embedCache,
		Logger:    logger,
		BatchSize: batchSize,
	}
}

// GenerateEmbedding returns the vector for text, serving repeat content from
// the cache. Provider failures surface as ErrServiceUnavailable.
func (s *EmbeddingService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text for embedding cannot be empty")
	}

	key := cache.HashKey(text)
	if cached, ok := s.Cache.Get(key); ok {
		return cached.([]float32), nil
	}

	vector, err := s.Provider.GenerateEmbedding(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding provider: %v: %w", err, apperr.ErrServiceUnavailable)
	}

	s.Cache.Set(key, vector)
	return vector, nil
}

// BatchGenerateEmbeddings embeds texts in provider-sized chunks, consulting
// the cache per text first. A chunk failure aborts the whole batch.
func (s *EmbeddingService) BatchGenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	results := make([][]float32, len(texts))
	missing := make([]int, 0, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("text %d for embedding cannot be empty", i)
		}
		if cached, ok := s.Cache.Get(cache.HashKey(text)); ok {
			results[i] = cached.([]float32)
			continue
		}
		missing = append(missing, i)
	}

	for start := 0; start < len(missing); start += s.BatchSize {
		end := start + s.BatchSize
		if end > len(missing) {
			end = len(missing)
		}
		chunk := missing[start:end]

		chunkTexts := make([]string, 0, len(chunk))
		for _, idx := range chunk {
			chunkTexts = append(chunkTexts, texts[idx])
		}

		vectors, err := s.Provider.BatchGenerateEmbeddings(ctx, chunkTexts)
		if err != nil {
			return nil, fmt.Errorf("embedding provider batch: %v: %w", err, apperr.ErrServiceUnavailable)
		}
		if len(vectors) != len(chunk) {
			return nil, fmt.Errorf("embedding provider returned %d vectors for %d texts: %w",
				len(vectors), len(chunk), apperr.ErrServiceUnavailable)
		}

		for j, idx := range chunk {
			results[idx] = vectors[j]
			s.Cache.Set(cache.HashKey(texts[idx]), vectors[j])
		}
	}
	return results, nil
}

// jobEmbeddingText is the canonical text embedded as a job's primary vector.
func jobEmbeddingText(job *model.JobPosting) string {
	parts := []string{job.Title}
	if len(job.RequiredSkills) > 0 {
		parts = append(parts, strings.Join(job.RequiredSkills, ", "))
	}
	if job.RawText != "" {
		parts = append(parts, job.RawText)
	}
	return strings.Join(parts, "\n")
}

// IndexJob writes the job's primary vector plus one tagged sub-vector per
// required skill. Sub-vector failures are logged and skipped so a partially
// indexed job still retrieves on its primary vector.
func (s *EmbeddingService) IndexJob(ctx context.Context, job *model.JobPosting) error {
	primary, err := s.GenerateEmbedding(ctx, jobEmbeddingText(job))
	if err != nil {
		return fmt.Errorf("embed job %s: %w", job.ID, err)
	}
	job.Embedding = pgvector.NewVector(primary)

	metadata, err := json.Marshal(map[string]any{
		"sponsors_visa": job.SponsorsVisa,
		"salary_max":    job.SalaryMax,
		"location_type": job.LocationType,
	})
	if err != nil {
		return fmt.Errorf("marshal job metadata: %w", err)
	}

	if err := s.Index.Upsert(ctx, &model.VectorEntry{
		EntityID:   job.ID,
		EntityType: model.EntityTypeJob,
		Embedding:  pgvector.NewVector(primary),
		Metadata:   string(metadata),
	}); err != nil {
		return fmt.Errorf("upsert job vector %s: %w", job.ID, err)
	}

	if len(job.RequiredSkills) == 0 {
		return nil
	}

	skillVectors, err := s.BatchGenerateEmbeddings(ctx, job.RequiredSkills)
	if err != nil {
		s.Logger.Warn("skill sub-vectors not generated, job indexed on primary only",
			zap.String("job_id", job.ID.String()),
			zap.Error(err))
		return nil
	}
	for i, skill := range job.RequiredSkills {
		if err := s.Index.Upsert(ctx, &model.VectorEntry{
			EntityID:      job.ID,
			EntityType:    model.EntityTypeJob,
			SkillName:     skill,
			IsSkillVector: true,
			Embedding:     pgvector.NewVector(skillVectors[i]),
			Metadata:      string(metadata),
		}); err != nil {
			s.Logger.Warn("skill sub-vector not stored",
				zap.String("job_id", job.ID.String()),
				zap.String("skill", skill),
				zap.Error(err))
		}
	}
	return nil
}

// IndexCandidate writes the candidate's primary vector over their combined
// skill text.
func (s *EmbeddingService) IndexCandidate(ctx context.Context, candidate *model.Candidate) error {
	text := candidate.SkillText()
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("candidate %s has no skills to embed", candidate.ID)
	}

	vector, err := s.GenerateEmbedding(ctx, text)
	if err != nil {
		return fmt.Errorf("embed candidate %s: %w", candidate.ID, err)
	}
	candidate.Embedding = pgvector.NewVector(vector)

	metadata, err := json.Marshal(map[string]any{
		"availability":  candidate.Availability,
		"location_type": candidate.PreferredLocationType,
	})
	if err != nil {
		return fmt.Errorf("marshal candidate metadata: %w", err)
	}

	if err := s.Index.Upsert(ctx, &model.VectorEntry{
		EntityID:   candidate.ID,
		EntityType: model.EntityTypeCandidate,
		Embedding:  candidate.Embedding,
		Metadata:   string(metadata),
	}); err != nil {
		return fmt.Errorf("upsert candidate vector %s: %w", candidate.ID, err)
	}
	return nil
}

// QuerySimilarJobs retrieves the topK most similar job primary vectors for
// the candidate's skill text, applying structured filters in the index.
func (s *EmbeddingService) QuerySimilarJobs(ctx context.Context, candidate *model.Candidate, filter model.VectorFilter, topK int) ([]model.VectorMatch, error) {
	vector, err := s.GenerateEmbedding(ctx, candidate.SkillText())
	if err != nil {
		return nil, err
	}
	return s.Index.Query(ctx, pgvector.NewVector(vector), model.EntityTypeJob, filter, topK)
}

// DeleteJob removes the job's primary vector and all its skill sub-vectors.
// A sub-vector failure is logged, not returned, so the primary removal wins.
func (s *EmbeddingService) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	if err := s.Index.DeletePrimary(ctx, jobID, model.EntityTypeJob); err != nil {
		return fmt.Errorf("delete job vector %s: %w", jobID, err)
	}
	if err := s.Index.DeleteSkillVectors(ctx, jobID, model.EntityTypeJob); err != nil {
		s.Logger.Warn("orphaned skill sub-vectors left behind",
			zap.String("job_id", jobID.String()),
			zap.Error(err))
	}
	return nil
}

func (s *EmbeddingService) DeleteCandidate(ctx context.Context, candidateID uuid.UUID) error {
	if err := s.Index.DeletePrimary(ctx, candidateID, model.EntityTypeCandidate); err != nil {
		return fmt.Errorf("delete candidate vector %s: %w", candidateID, err)
	}
	return nil
}

// Similarity computes the cosine similarity of two texts via their
// embeddings, clamped to [0,1].
func (s *EmbeddingService) Similarity(ctx context.Context, a, b string) (float64, error) {
	vectors, err := s.BatchGenerateEmbeddings(ctx, []string{a, b})
	if err != nil {
		return 0, err
	}
	return CosineSimilarity(vectors[0], vectors[1]), nil
}

// CosineSimilarity returns the cosine of the angle between two vectors,
// clamped to [0,1]. Mismatched or zero vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}
