package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fadilmartias/talent-matcher/internal/apperr"
	"github.com/fadilmartias/talent-matcher/internal/cache"
	"github.com/fadilmartias/talent-matcher/internal/model"
	"github.com/fadilmartias/talent-matcher/internal/normalizer"
	"github.com/fadilmartias/talent-matcher/internal/scoring"
	"github.com/fadilmartias/talent-matcher/internal/service"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type JobStore interface {
	Create(ctx context.Context, job *model.JobPosting) error
	Update(ctx context.Context, job *model.JobPosting) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.JobPosting, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.JobPosting, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CandidateStore interface {
	Create(ctx context.Context, candidate *model.Candidate) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Candidate, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Candidate, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ApplicationStore interface {
	ListByJob(ctx context.Context, jobID uuid.UUID, limit int) ([]model.Application, error)
	UpdateFitIndex(ctx context.Context, applicationID uuid.UUID, fitIndex int) error
}

type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, prompt string) (string, error)
}

// MatchFilters is the structured filter and sort surface of a match query.
// Unsupported predicates are rejected here, before any retrieval runs.
type MatchFilters struct {
	VisaSponsorship *bool                `json:"visa_sponsorship,omitempty"`
	MinSalary       *int                 `json:"min_salary,omitempty"`
	LocationTypes   []model.LocationType `json:"location_types,omitempty"`
	MinFitIndex     *int                 `json:"min_fit_index,omitempty"`
	SortBy          string               `json:"sort_by,omitempty"`
}

func (f MatchFilters) Validate() error {
	if f.MinSalary != nil && *f.MinSalary < 0 {
		return fmt.Errorf("min_salary must be non-negative: %w", apperr.ErrInvalidFilter)
	}
	for _, lt := range f.LocationTypes {
		switch lt {
		case model.LocationTypeRemote, model.LocationTypeHybrid, model.LocationTypeOnsite:
		default:
			return fmt.Errorf("unknown location type %q: %w", lt, apperr.ErrInvalidFilter)
		}
	}
	if f.MinFitIndex != nil && (*f.MinFitIndex < 0 || *f.MinFitIndex > 100) {
		return fmt.Errorf("min_fit_index must be in [0,100]: %w", apperr.ErrInvalidFilter)
	}
	switch f.SortBy {
	case "", "fit_index":
	default:
		return fmt.Errorf("unsupported sort_by %q: %w", f.SortBy, apperr.ErrInvalidFilter)
	}
	return nil
}

func (f MatchFilters) vectorFilter() model.VectorFilter {
	return model.VectorFilter{
		VisaSponsorship: f.VisaSponsorship,
		MinSalary:       f.MinSalary,
		LocationTypes:   f.LocationTypes,
	}
}

// JobMatch is one scored job in a seeker-side match page.
type JobMatch struct {
	Job    model.JobPosting  `json:"job"`
	Result model.MatchResult `json:"result"`
}

type MatchUsecaseInterface interface {
	NormalizeJob(rawText, location string) model.NormalizedJob
	IngestJob(ctx context.Context, job *model.JobPosting) error
	IngestCandidate(ctx context.Context, candidate *model.Candidate) error
	DeleteJob(ctx context.Context, jobID uuid.UUID) error
	DeleteCandidate(ctx context.Context, candidateID uuid.UUID) error
	FindMatches(ctx context.Context, candidateID uuid.UUID, filters MatchFilters, limit, offset int) ([]JobMatch, error)
	RankCandidatesForJob(ctx context.Context, jobID uuid.UUID, persist bool) ([]model.RankingOutcome, error)
	CalculateFitIndexA(ctx context.Context, candidateID, jobID uuid.UUID) (*model.MatchResult, error)
	CalculateFitIndexB(ctx context.Context, candidateID, jobID uuid.UUID) (*model.MatchResult, error)
	ExplainMatch(ctx context.Context, candidateID, jobID uuid.UUID) (string, error)
}

// MatchUsecase orchestrates both match directions: a candidate looking for
// jobs and an employer ranking a job's applicants.
type MatchUsecase struct {
	Jobs            JobStore
	Candidates      CandidateStore
	Applications    ApplicationStore
	Embeddings      service.EmbeddingServiceInterface
	Generator       ContentGenerator
	SeekerScorer    scoring.FitScorer
	EmployerScorer  scoring.FitScorer
	CompletionCache *cache.TTLCache
	Logger          *zap.Logger

	RetrievalBuffer int
	RankingWorkers  int
	MaxApplications int
	CompletionModel string
}

func NewMatchUsecase(
	jobs JobStore,
	candidates CandidateStore,
	applications ApplicationStore,
	embeddings service.EmbeddingServiceInterface,
	generator ContentGenerator,
	completionCache *cache.TTLCache,
	logger *zap.Logger,
	retrievalBuffer, rankingWorkers, maxApplications int,
	completionModel string,
) *MatchUsecase {
	if retrievalBuffer <= 0 {
		retrievalBuffer = 20
	}
	if rankingWorkers <= 0 {
		rankingWorkers = 8
	}
	if maxApplications <= 0 {
		maxApplications = 500
	}
	return &MatchUsecase{
		Jobs:            jobs,
		Candidates:      candidates,
		Applications:    applications,
		Embeddings:      embeddings,
		Generator:       generator,
		SeekerScorer:    scoring.NewSeekerScorer(embeddings.Similarity),
		EmployerScorer:  scoring.NewEmployerScorer(),
		CompletionCache: completionCache,
		Logger:          logger,
		RetrievalBuffer: retrievalBuffer,
		RankingWorkers:  rankingWorkers,
		MaxApplications: maxApplications,
		CompletionModel: completionModel,
	}
}

// NormalizeJob derives structured attributes from a raw posting text.
func (u *MatchUsecase) NormalizeJob(rawText, location string) model.NormalizedJob {
	return normalizer.NormalizeJob(rawText, location)
}

// CandidateSkillsFromText parses free-form skill text into a deduplicated
// skill list.
func CandidateSkillsFromText(text string) []model.SkillVector {
	return normalizer.ExtractCandidateSkills(text)
}

// IngestJob normalizes the raw posting, persists it and indexes its vectors.
func (u *MatchUsecase) IngestJob(ctx context.Context, job *model.JobPosting) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	job.ApplyNormalized(normalizer.NormalizeJob(job.RawText, job.Location))

	if err := u.Embeddings.IndexJob(ctx, job); err != nil {
		return err
	}
	if err := u.Jobs.Create(ctx, job); err != nil {
		return fmt.Errorf("persist job: %w", err)
	}
	return nil
}

func (u *MatchUsecase) IngestCandidate(ctx context.Context, candidate *model.Candidate) error {
	if candidate.ID == uuid.Nil {
		candidate.ID = uuid.New()
	}
	if err := u.Embeddings.IndexCandidate(ctx, candidate); err != nil {
		return err
	}
	if err := u.Candidates.Create(ctx, candidate); err != nil {
		return fmt.Errorf("persist candidate: %w", err)
	}
	return nil
}

func (u *MatchUsecase) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	if err := u.Jobs.Delete(ctx, jobID); err != nil {
		return err
	}
	return u.Embeddings.DeleteJob(ctx, jobID)
}

func (u *MatchUsecase) DeleteCandidate(ctx context.Context, candidateID uuid.UUID) error {
	if err := u.Candidates.Delete(ctx, candidateID); err != nil {
		return err
	}
	return u.Embeddings.DeleteCandidate(ctx, candidateID)
}

// FindMatches runs the seeker direction: retrieve similar jobs for the
// candidate, score each with the seeker strategy, filter, sort and paginate.
// A single job failing to score is skipped unless the failure means the
// embedding backend itself is down.
func (u *MatchUsecase) FindMatches(ctx context.Context, candidateID uuid.UUID, filters MatchFilters, limit, offset int) ([]JobMatch, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	candidate, err := u.Candidates.FindByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	// widen the window so post-retrieval filtering still fills the page
	topK := limit + offset + u.RetrievalBuffer
	hits, err := u.Embeddings.QuerySimilarJobs(ctx, candidate, filters.vectorFilter(), topK)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return []JobMatch{}, nil
	}

	ids := make([]uuid.UUID, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.EntityID)
	}
	jobs, err := u.Jobs.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load matched jobs: %w", err)
	}
	jobsByID := make(map[uuid.UUID]model.JobPosting, len(jobs))
	for _, job := range jobs {
		jobsByID[job.ID] = job
	}

	matches := make([]JobMatch, 0, len(hits))
	for _, hit := range hits {
		job, ok := jobsByID[hit.EntityID]
		if !ok {
			u.Logger.Warn("vector hit without job row, skipping",
				zap.String("job_id", hit.EntityID.String()))
			continue
		}

		result, err := u.SeekerScorer.Score(ctx, candidate, &job, scoring.Options{RetrievalScore: hit.Score})
		if err != nil {
			if errors.Is(err, apperr.ErrServiceUnavailable) {
				return nil, err
			}
			u.Logger.Warn("job skipped, scoring failed",
				zap.String("job_id", job.ID.String()),
				zap.Error(err))
			continue
		}
		result.JobID = job.ID
		result.CandidateID = candidate.ID

		if filters.MinFitIndex != nil && result.FitIndex < *filters.MinFitIndex {
			continue
		}
		matches = append(matches, JobMatch{Job: job, Result: *result})
	}

	// stable sort keeps retrieval order as the tiebreaker
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Result.FitIndex > matches[j].Result.FitIndex
	})

	if offset >= len(matches) {
		return []JobMatch{}, nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end], nil
}

// RankCandidatesForJob runs the employer direction: score every applicant of
// the job with the employer strategy in a bounded worker pool. Per-application
// failures are isolated into their outcome slot. When persist is set, each
// computed fit index is copied onto its application row.
func (u *MatchUsecase) RankCandidatesForJob(ctx context.Context, jobID uuid.UUID, persist bool) ([]model.RankingOutcome, error) {
	job, err := u.Jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	applications, err := u.Applications.ListByJob(ctx, jobID, u.MaxApplications)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	if len(applications) == 0 {
		return []model.RankingOutcome{}, nil
	}

	candidateIDs := make([]uuid.UUID, 0, len(applications))
	for _, app := range applications {
		candidateIDs = append(candidateIDs, app.CandidateID)
	}
	candidates, err := u.Candidates.FindByIDs(ctx, candidateIDs)
	if err != nil {
		return nil, fmt.Errorf("load applicants: %w", err)
	}
	candidatesByID := make(map[uuid.UUID]model.Candidate, len(candidates))
	for _, c := range candidates {
		candidatesByID[c.ID] = c
	}

	outcomes := make([]model.RankingOutcome, len(applications))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(u.RankingWorkers)

	for i, app := range applications {
		group.Go(func() error {
			outcomes[i] = u.rankOne(groupCtx, job, app, candidatesByID, persist)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	// ranked outcomes first, highest fit index on top; failures keep their
	// relative application order at the tail
	sort.SliceStable(outcomes, func(i, j int) bool {
		ri, rj := outcomes[i].Ranking, outcomes[j].Ranking
		if ri == nil {
			return false
		}
		if rj == nil {
			return true
		}
		return ri.FitIndex > rj.FitIndex
	})
	return outcomes, nil
}

func (u *MatchUsecase) rankOne(ctx context.Context, job *model.JobPosting, app model.Application, candidatesByID map[uuid.UUID]model.Candidate, persist bool) model.RankingOutcome {
	outcome := model.RankingOutcome{ApplicationID: app.ID}

	candidate, ok := candidatesByID[app.CandidateID]
	if !ok {
		outcome.Err = "candidate not found"
		return outcome
	}

	result, err := u.EmployerScorer.Score(ctx, &candidate, job, scoring.Options{})
	if err != nil {
		u.Logger.Warn("application not ranked",
			zap.String("application_id", app.ID.String()),
			zap.Error(err))
		outcome.Err = err.Error()
		return outcome
	}

	outcome.Ranking = &model.CandidateRanking{
		ApplicationID: app.ID,
		CandidateID:   candidate.ID,
		FitIndex:      result.FitIndex,
		Explanations:  result.Rationale.Recommendations,
		Strengths:     result.Rationale.Strengths,
		Concerns:      result.Rationale.Concerns,
	}
	if len(outcome.Ranking.Explanations) == 0 {
		outcome.Ranking.Explanations = []string{result.Rationale.Summary}
	}

	if persist {
		if err := u.Applications.UpdateFitIndex(ctx, app.ID, result.FitIndex); err != nil {
			u.Logger.Warn("fit index not persisted",
				zap.String("application_id", app.ID.String()),
				zap.Error(err))
		}
	}
	return outcome
}

// CalculateFitIndexA scores a single pair with the seeker strategy. The
// retrieval score a vector hit would have carried is recomputed from the
// candidate's skill text and the job's own text.
func (u *MatchUsecase) CalculateFitIndexA(ctx context.Context, candidateID, jobID uuid.UUID) (*model.MatchResult, error) {
	candidate, job, err := u.loadPair(ctx, candidateID, jobID)
	if err != nil {
		return nil, err
	}

	retrieval, err := u.Embeddings.Similarity(ctx, candidate.SkillText(), jobText(job))
	if err != nil {
		return nil, err
	}

	result, err := u.SeekerScorer.Score(ctx, candidate, job, scoring.Options{RetrievalScore: retrieval})
	if err != nil {
		return nil, err
	}
	result.JobID = job.ID
	result.CandidateID = candidate.ID
	return result, nil
}

// CalculateFitIndexB scores a single pair with the employer strategy.
func (u *MatchUsecase) CalculateFitIndexB(ctx context.Context, candidateID, jobID uuid.UUID) (*model.MatchResult, error) {
	candidate, job, err := u.loadPair(ctx, candidateID, jobID)
	if err != nil {
		return nil, err
	}

	result, err := u.EmployerScorer.Score(ctx, candidate, job, scoring.Options{})
	if err != nil {
		return nil, err
	}
	result.JobID = job.ID
	result.CandidateID = candidate.ID
	return result, nil
}

// ExplainMatch asks the completion model for a free-form narrative of the
// pairing, cached by prompt content so repeated views are free.
func (u *MatchUsecase) ExplainMatch(ctx context.Context, candidateID, jobID uuid.UUID) (string, error) {
	candidate, job, err := u.loadPair(ctx, candidateID, jobID)
	if err != nil {
		return "", err
	}

	prompt := explainPrompt(candidate, job)
	key := cache.HashKey(prompt)
	if cached, ok := u.CompletionCache.Get(key); ok {
		return cached.(string), nil
	}

	raw, err := u.Generator.GenerateContent(ctx, u.CompletionModel, prompt)
	if err != nil {
		return "", err
	}

	explanation := gjson.Get(raw, "explanation").String()
	if explanation == "" {
		// model ignored the JSON instruction, keep the raw text
		explanation = raw
	}
	u.CompletionCache.Set(key, explanation)
	return explanation, nil
}

func (u *MatchUsecase) loadPair(ctx context.Context, candidateID, jobID uuid.UUID) (*model.Candidate, *model.JobPosting, error) {
	candidate, err := u.Candidates.FindByID(ctx, candidateID)
	if err != nil {
		return nil, nil, err
	}
	job, err := u.Jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	return candidate, job, nil
}

func jobText(job *model.JobPosting) string {
	parts := []string{job.Title}
	if len(job.RequiredSkills) > 0 {
		parts = append(parts, strings.Join(job.RequiredSkills, ", "))
	}
	return strings.Join(parts, "\n")
}

func explainPrompt(candidate *model.Candidate, job *model.JobPosting) string {
	var b strings.Builder
	b.WriteString("Explain in three short paragraphs how well this candidate fits this job. ")
	b.WriteString("Be concrete about matching skills, gaps and seniority. ")
	b.WriteString(`Return STRICTLY JSON: {"explanation": "<the three paragraphs>"}` + "\n\n")
	fmt.Fprintf(&b, "Job: %s at %s\nRequired skills: %s\nPreferred skills: %s\nLevel: %s\n\n",
		job.Title, job.Company,
		strings.Join(job.RequiredSkills, ", "),
		strings.Join(job.PreferredSkills, ", "),
		job.ExperienceLevel)
	fmt.Fprintf(&b, "Candidate skills: %s\nYears of experience: %d\nLocation: %s (%s preferred)\n",
		candidate.SkillText(),
		candidate.TotalYearsExperience(),
		candidate.Location,
		candidate.PreferredLocationType)
	return b.String()
}
