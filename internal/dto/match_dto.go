package dto

import (
	"time"

	"github.com/fadilmartias/talent-matcher/internal/model"
	"github.com/fadilmartias/talent-matcher/internal/usecase"
	"github.com/google/uuid"
)

type NormalizeJobRequest struct {
	RawText  string `json:"raw_text"`
	Location string `json:"location"`
}

type IngestJobRequest struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	RawText  string `json:"raw_text"`
	Location string `json:"location"`
}

func (r IngestJobRequest) ToModel() *model.JobPosting {
	return &model.JobPosting{
		Title:    r.Title,
		Company:  r.Company,
		RawText:  r.RawText,
		Location: r.Location,
	}
}

type ExperiencePeriodDTO struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

type IngestCandidateRequest struct {
	Name                  string                   `json:"name"`
	SkillText             string                   `json:"skill_text"`
	Skills                []model.SkillVector      `json:"skills"`
	ExperiencePeriods     []ExperiencePeriodDTO    `json:"experience_periods"`
	Location              string                   `json:"location"`
	PreferredLocationType model.LocationType       `json:"preferred_location_type"`
	ExpectedSalaryMin     *int                     `json:"expected_salary_min"`
	ExpectedSalaryMax     *int                     `json:"expected_salary_max"`
	Availability          model.AvailabilityStatus `json:"availability_status"`
}

func (r IngestCandidateRequest) ToModel() *model.Candidate {
	periods := make([]model.ExperiencePeriod, 0, len(r.ExperiencePeriods))
	for _, p := range r.ExperiencePeriods {
		period := model.ExperiencePeriod{Start: p.Start}
		if p.End != nil {
			period.End = *p.End
		}
		periods = append(periods, period)
	}

	return &model.Candidate{
		Name:                  r.Name,
		Skills:                r.Skills,
		ExperiencePeriods:     periods,
		Location:              r.Location,
		PreferredLocationType: r.PreferredLocationType,
		ExpectedSalaryMin:     r.ExpectedSalaryMin,
		ExpectedSalaryMax:     r.ExpectedSalaryMax,
		Availability:          r.Availability,
	}
}

// FindMatchesQuery binds the seeker-side query string.
type FindMatchesQuery struct {
	Limit           int                  `query:"limit"`
	Offset          int                  `query:"offset"`
	VisaSponsorship *bool                `query:"visa_sponsorship"`
	MinSalary       *int                 `query:"min_salary"`
	LocationTypes   []model.LocationType `query:"location_types"`
	MinFitIndex     *int                 `query:"min_fit_index"`
	SortBy          string               `query:"sort_by"`
}

func (q FindMatchesQuery) Filters() usecase.MatchFilters {
	return usecase.MatchFilters{
		VisaSponsorship: q.VisaSponsorship,
		MinSalary:       q.MinSalary,
		LocationTypes:   q.LocationTypes,
		MinFitIndex:     q.MinFitIndex,
		SortBy:          q.SortBy,
	}
}

type JobMatchDTO struct {
	JobID     uuid.UUID          `json:"job_id"`
	Title     string             `json:"title"`
	Company   string             `json:"company"`
	Location  string             `json:"location"`
	FitIndex  int                `json:"fit_index"`
	Breakdown map[string]float64 `json:"breakdown"`
	Rationale model.Rationale    `json:"rationale"`
}

func NewJobMatchDTO(m usecase.JobMatch) JobMatchDTO {
	return JobMatchDTO{
		JobID:     m.Job.ID,
		Title:     m.Job.Title,
		Company:   m.Job.Company,
		Location:  m.Job.Location,
		FitIndex:  m.Result.FitIndex,
		Breakdown: m.Result.Breakdown,
		Rationale: m.Result.Rationale,
	}
}
