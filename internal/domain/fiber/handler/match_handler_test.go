package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fadilmartias/talent-matcher/internal/apperr"
	"github.com/fadilmartias/talent-matcher/internal/model"
	"github.com/fadilmartias/talent-matcher/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsecase struct {
	normalized model.NormalizedJob
	matches    []usecase.JobMatch
	outcomes   []model.RankingOutcome
	result     *model.MatchResult
	err        error
}

func (s *stubUsecase) NormalizeJob(rawText, location string) model.NormalizedJob {
	return s.normalized
}

func (s *stubUsecase) IngestJob(ctx context.Context, job *model.JobPosting) error {
	job.ID = uuid.New()
	return s.err
}

func (s *stubUsecase) IngestCandidate(ctx context.Context, candidate *model.Candidate) error {
	candidate.ID = uuid.New()
	return s.err
}

func (s *stubUsecase) DeleteJob(ctx context.Context, jobID uuid.UUID) error { return s.err }

func (s *stubUsecase) DeleteCandidate(ctx context.Context, candidateID uuid.UUID) error {
	return s.err
}

func (s *stubUsecase) FindMatches(ctx context.Context, candidateID uuid.UUID, filters usecase.MatchFilters, limit, offset int) ([]usecase.JobMatch, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	return s.matches, s.err
}

func (s *stubUsecase) RankCandidatesForJob(ctx context.Context, jobID uuid.UUID, persist bool) ([]model.RankingOutcome, error) {
	return s.outcomes, s.err
}

func (s *stubUsecase) CalculateFitIndexA(ctx context.Context, candidateID, jobID uuid.UUID) (*model.MatchResult, error) {
	return s.result, s.err
}

func (s *stubUsecase) CalculateFitIndexB(ctx context.Context, candidateID, jobID uuid.UUID) (*model.MatchResult, error) {
	return s.result, s.err
}

func (s *stubUsecase) ExplainMatch(ctx context.Context, candidateID, jobID uuid.UUID) (string, error) {
	return "fits well", s.err
}

func newTestApp(uc usecase.MatchUsecaseInterface) *fiber.App {
	app := fiber.New()
	NewMatchHandler(uc).RegisterRoutes(app)
	return app
}

func TestNormalizeJobEndpoint(t *testing.T) {
	uc := &stubUsecase{normalized: model.NormalizedJob{
		LocationType:   model.LocationTypeRemote,
		RequiredSkills: []string{"Go"},
	}}
	app := newTestApp(uc)

	req := httptest.NewRequest("POST", "/jobs/normalize",
		strings.NewReader(`{"raw_text":"5+ years of Go. Remote."}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var envelope struct {
		Success bool                `json:"success"`
		Data    model.NormalizedJob `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, model.LocationTypeRemote, envelope.Data.LocationType)
}

func TestNormalizeJobRequiresRawText(t *testing.T) {
	app := newTestApp(&stubUsecase{})

	req := httptest.NewRequest("POST", "/jobs/normalize", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestFindMatchesRejectsBadCandidateID(t *testing.T) {
	app := newTestApp(&stubUsecase{})

	resp, err := app.Test(httptest.NewRequest("GET", "/candidates/not-a-uuid/matches", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestFindMatchesRejectsUnsupportedSort(t *testing.T) {
	app := newTestApp(&stubUsecase{})

	url := "/candidates/" + uuid.NewString() + "/matches?sort_by=salary"
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperr.ErrNotFound, fiber.StatusNotFound},
		{"backend down", apperr.ErrServiceUnavailable, fiber.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&stubUsecase{err: tt.err})

			url := "/candidates/" + uuid.NewString() + "/matches"
			resp, err := app.Test(httptest.NewRequest("GET", url, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestScorePairRejectsUnknownStrategy(t *testing.T) {
	app := newTestApp(&stubUsecase{result: &model.MatchResult{FitIndex: 80}})

	url := "/matches/" + uuid.NewString() + "/" + uuid.NewString() + "/score?strategy=committee"
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestScorePairReturnsResult(t *testing.T) {
	app := newTestApp(&stubUsecase{result: &model.MatchResult{FitIndex: 80}})

	url := "/matches/" + uuid.NewString() + "/" + uuid.NewString() + "/score?strategy=employer"
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var envelope struct {
		Data model.MatchResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, 80, envelope.Data.FitIndex)
}

func TestRankCandidatesEndpoint(t *testing.T) {
	uc := &stubUsecase{outcomes: []model.RankingOutcome{
		{ApplicationID: uuid.New(), Ranking: &model.CandidateRanking{FitIndex: 91}},
	}}
	app := newTestApp(uc)

	url := "/jobs/" + uuid.NewString() + "/ranking"
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
