package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fadilmartias/talent-matcher/internal/apperr"
	"github.com/fadilmartias/talent-matcher/internal/cache"
	"github.com/fadilmartias/talent-matcher/internal/model"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProvider struct {
	calls      int
	batchCalls [][]string
	fail       bool
	vector     []float32
}

func (p *stubProvider) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	vectors, err := p.BatchGenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (p *stubProvider) BatchGenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	p.calls++
	p.batchCalls = append(p.batchCalls, texts)
	if p.fail {
		return nil, errors.New("provider down")
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		if p.vector != nil {
			out[i] = p.vector
		} else {
			out[i] = []float32{float32(len(texts[i])), 1, 0}
		}
	}
	return out, nil
}

type stubIndex struct {
	upserts     []*model.VectorEntry
	failSkill   bool
	failPrimary bool
	deleted     []string
	matches     []model.VectorMatch
}

func (i *stubIndex) Upsert(ctx context.Context, entry *model.VectorEntry) error {
	if entry.IsSkillVector && i.failSkill {
		return errors.New("skill upsert failed")
	}
	if !entry.IsSkillVector && i.failPrimary {
		return errors.New("primary upsert failed")
	}
	i.upserts = append(i.upserts, entry)
	return nil
}

func (i *stubIndex) Query(ctx context.Context, embedding pgvector.Vector, entityType model.EntityType, filter model.VectorFilter, topK int) ([]model.VectorMatch, error) {
	return i.matches, nil
}

func (i *stubIndex) DeletePrimary(ctx context.Context, entityID uuid.UUID, entityType model.EntityType) error {
	i.deleted = append(i.deleted, "primary:"+entityID.String())
	return nil
}

func (i *stubIndex) DeleteSkillVectors(ctx context.Context, entityID uuid.UUID, entityType model.EntityType) error {
	i.deleted = append(i.deleted, "skills:"+entityID.String())
	return nil
}

func newTestService(provider *stubProvider, index *stubIndex) *EmbeddingService {
	return NewEmbeddingService(provider, index, cache.NewTTLCache(24*time.Hour), zap.NewNop(), 2)
}

func TestGenerateEmbeddingCachesByContent(t *testing.T) {
	provider := &stubProvider{}
	svc := newTestService(provider, &stubIndex{})

	first, err := svc.GenerateEmbedding(context.Background(), "golang, postgres")
	require.NoError(t, err)
	second, err := svc.GenerateEmbedding(context.Background(), "golang, postgres")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls)
}

func TestGenerateEmbeddingWrapsProviderFailure(t *testing.T) {
	provider := &stubProvider{fail: true}
	svc := newTestService(provider, &stubIndex{})

	_, err := svc.GenerateEmbedding(context.Background(), "golang")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrServiceUnavailable)
}

func TestBatchGenerateEmbeddingsChunksAndCaches(t *testing.T) {
	provider := &stubProvider{}
	svc := newTestService(provider, &stubIndex{})

	texts := []string{"go", "rust", "python", "java", "kotlin"}
	vectors, err := svc.BatchGenerateEmbeddings(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, vectors, 5)
	// batch size 2 -> chunks of 2,2,1
	assert.Equal(t, 3, provider.calls)

	// every text now cached, repeat costs no provider calls
	again, err := svc.BatchGenerateEmbeddings(context.Background(), texts)
	require.NoError(t, err)
	assert.Equal(t, vectors, again)
	assert.Equal(t, 3, provider.calls)
}

func TestBatchGenerateEmbeddingsAbortsOnChunkFailure(t *testing.T) {
	provider := &stubProvider{fail: true}
	svc := newTestService(provider, &stubIndex{})

	_, err := svc.BatchGenerateEmbeddings(context.Background(), []string{"go", "rust"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrServiceUnavailable)
}

func TestIndexJobWritesPrimaryAndSkillVectors(t *testing.T) {
	provider := &stubProvider{}
	index := &stubIndex{}
	svc := newTestService(provider, index)

	job := &model.JobPosting{
		ID:             uuid.New(),
		Title:          "Backend Engineer",
		RawText:        "Build APIs",
		RequiredSkills: []string{"Go", "PostgreSQL"},
	}
	require.NoError(t, svc.IndexJob(context.Background(), job))

	require.Len(t, index.upserts, 3)
	assert.False(t, index.upserts[0].IsSkillVector)
	assert.True(t, index.upserts[1].IsSkillVector)
	assert.Equal(t, "Go", index.upserts[1].SkillName)
	assert.Equal(t, "PostgreSQL", index.upserts[2].SkillName)
	assert.Contains(t, index.upserts[0].Metadata, "sponsors_visa")
}

func TestIndexJobToleratesSkillVectorFailure(t *testing.T) {
	provider := &stubProvider{}
	index := &stubIndex{failSkill: true}
	svc := newTestService(provider, index)

	job := &model.JobPosting{
		ID:             uuid.New(),
		Title:          "Backend Engineer",
		RequiredSkills: []string{"Go"},
	}
	require.NoError(t, svc.IndexJob(context.Background(), job))

	// only the primary vector landed
	require.Len(t, index.upserts, 1)
	assert.False(t, index.upserts[0].IsSkillVector)
}

func TestIndexCandidateRequiresSkills(t *testing.T) {
	svc := newTestService(&stubProvider{}, &stubIndex{})

	err := svc.IndexCandidate(context.Background(), &model.Candidate{ID: uuid.New()})
	assert.Error(t, err)
}

func TestDeleteJobRemovesPrimaryAndSkillVectors(t *testing.T) {
	index := &stubIndex{}
	svc := newTestService(&stubProvider{}, index)

	id := uuid.New()
	require.NoError(t, svc.DeleteJob(context.Background(), id))
	assert.Equal(t, []string{"primary:" + id.String(), "skills:" + id.String()}, index.deleted)
}

func TestSimilarityUsesSingleBatch(t *testing.T) {
	provider := &stubProvider{vector: []float32{1, 0, 0}}
	svc := newTestService(provider, &stubIndex{})

	sim, err := svc.Similarity(context.Background(), "golang", "go language")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)
	assert.Equal(t, 1, provider.calls)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	// negative cosine clamps to zero
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}))
	// mismatched and zero vectors
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1}, []float32{1, 2}))
	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{0, 0}))
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
}
