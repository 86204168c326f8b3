package handler

import (
	"errors"
	"time"

	"github.com/fadilmartias/talent-matcher/internal/apperr"
	"github.com/fadilmartias/talent-matcher/internal/dto"
	"github.com/fadilmartias/talent-matcher/internal/middleware"
	"github.com/fadilmartias/talent-matcher/internal/model"
	"github.com/fadilmartias/talent-matcher/internal/usecase"
	"github.com/fadilmartias/talent-matcher/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchUsecaseInterface
}

func NewMatchHandler(uc usecase.MatchUsecaseInterface) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/jobs", h.IngestJob)
	app.Post("/jobs/normalize", h.NormalizeJob)
	app.Delete("/jobs/:id", h.DeleteJob)
	app.Get("/jobs/:id/ranking", middleware.RateLimiter(10, time.Minute), h.RankCandidates)

	app.Post("/candidates", h.IngestCandidate)
	app.Delete("/candidates/:id", h.DeleteCandidate)
	app.Get("/candidates/:id/matches", h.FindMatches)

	app.Get("/matches/:candidate_id/:job_id/score", h.ScorePair)
	app.Get("/matches/:candidate_id/:job_id/explanation", middleware.RateLimiter(10, time.Minute), h.ExplainMatch)
}

// statusFor maps domain sentinels onto HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperr.ErrInvalidFilter):
		return fiber.StatusBadRequest
	case errors.Is(err, apperr.ErrServiceUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *MatchHandler) NormalizeJob(c *fiber.Ctx) error {
	var req dto.NormalizeJobRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.RawText == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "raw_text is required",
		})
	}

	normalized := h.uc.NormalizeJob(req.RawText, req.Location)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success normalize job posting",
		Data:    normalized,
	})
}

func (h *MatchHandler) IngestJob(c *fiber.Ctx) error {
	var req dto.IngestJobRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.Title == "" || req.RawText == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "title and raw_text are required",
		})
	}

	job := req.ToModel()
	if err := h.uc.IngestJob(c.UserContext(), job); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFor(err),
			Message: "failed to ingest job",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success ingest job",
		Data:    job,
	})
}

func (h *MatchHandler) DeleteJob(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job id",
		}, err)
	}

	if err := h.uc.DeleteJob(c.UserContext(), id); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFor(err),
			Message: "failed to delete job",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success delete job",
	})
}

func (h *MatchHandler) IngestCandidate(c *fiber.Ctx) error {
	var req dto.IngestCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	candidate := req.ToModel()
	if len(candidate.Skills) == 0 && req.SkillText != "" {
		candidate.Skills = usecase.CandidateSkillsFromText(req.SkillText)
	}
	if len(candidate.Skills) == 0 {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "skills or skill_text is required",
		})
	}

	if err := h.uc.IngestCandidate(c.UserContext(), candidate); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFor(err),
			Message: "failed to ingest candidate",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success ingest candidate",
		Data:    candidate,
	})
}

func (h *MatchHandler) DeleteCandidate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid candidate id",
		}, err)
	}

	if err := h.uc.DeleteCandidate(c.UserContext(), id); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFor(err),
			Message: "failed to delete candidate",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success delete candidate",
	})
}

func (h *MatchHandler) FindMatches(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid candidate id",
		}, err)
	}

	var query dto.FindMatchesQuery
	if err := c.QueryParser(&query); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid query parameters",
		}, err)
	}

	matches, err := h.uc.FindMatches(c.UserContext(), candidateID, query.Filters(), query.Limit, query.Offset)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFor(err),
			Message: "failed to find matches",
		}, err)
	}

	data := make([]dto.JobMatchDTO, 0, len(matches))
	for _, m := range matches {
		data = append(data, dto.NewJobMatchDTO(m))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success find matches",
		Data:    data,
	})
}

func (h *MatchHandler) RankCandidates(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job id",
		}, err)
	}
	persist := c.QueryBool("persist", false)

	outcomes, err := h.uc.RankCandidatesForJob(c.UserContext(), jobID, persist)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFor(err),
			Message: "failed to rank candidates",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success rank candidates",
		Data:    outcomes,
	})
}

func (h *MatchHandler) ScorePair(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidate_id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid candidate id",
		}, err)
	}
	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job id",
		}, err)
	}

	var result *model.MatchResult
	switch c.Query("strategy", "seeker") {
	case "seeker":
		result, err = h.uc.CalculateFitIndexA(c.UserContext(), candidateID, jobID)
	case "employer":
		result, err = h.uc.CalculateFitIndexB(c.UserContext(), candidateID, jobID)
	default:
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "strategy must be seeker or employer",
		})
	}
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFor(err),
			Message: "failed to score pair",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success score pair",
		Data:    result,
	})
}

func (h *MatchHandler) ExplainMatch(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidate_id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid candidate id",
		}, err)
	}
	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job id",
		}, err)
	}

	explanation, err := h.uc.ExplainMatch(c.UserContext(), candidateID, jobID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFor(err),
			Message: "failed to explain match",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success explain match",
		Data:    fiber.Map{"explanation": explanation},
	})
}
