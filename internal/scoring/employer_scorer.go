package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/fadilmartias/talent-matcher/internal/model"
)

// Factor weights for the employer view. They sum to 1.0.
const (
	weightSkills       = 0.30
	weightExperience   = 0.20
	weightLocation     = 0.15
	weightCulture      = 0.15
	weightSalary       = 0.10
	weightAvailability = 0.10
)

const (
	strengthThreshold = 80
	concernThreshold  = 60
)

// EmployerScorer ranks applicants from the hiring side: six percentage
// factors combined by fixed weights. Pure function of the pair; no embedding
// calls.
type EmployerScorer struct{}

func NewEmployerScorer() *EmployerScorer { return &EmployerScorer{} }

func (s *EmployerScorer) Strategy() Strategy { return StrategyEmployerView }

func (s *EmployerScorer) Score(_ context.Context, candidate *model.Candidate, job *model.JobPosting, _ Options) (*model.MatchResult, error) {
	if candidate == nil || job == nil {
		return nil, fmt.Errorf("candidate and job are required")
	}
	normalized := job.Normalized()

	skills := employerSkillsScore(candidate, normalized)
	experience := employerExperienceScore(candidate.TotalYearsExperience(), normalized.ExperienceMin, normalized.ExperienceMax)
	location := employerLocationScore(candidate.Location, normalized)
	culture := employerCultureScore(candidate.PreferredLocationType, normalized.LocationType)
	salary := employerSalaryScore(candidate, normalized)
	availability := employerAvailabilityScore(candidate.Availability)

	total := skills*weightSkills +
		experience*weightExperience +
		location*weightLocation +
		culture*weightCulture +
		salary*weightSalary +
		availability*weightAvailability
	fitIndex := clampInt(int(math.Round(total)), 0, 100)

	breakdown := map[string]float64{
		model.FactorSkills:       skills,
		model.FactorExperience:   experience,
		model.FactorLocation:     location,
		model.FactorCulture:      culture,
		model.FactorSalary:       salary,
		model.FactorAvailability: availability,
	}

	strengths, concerns, explanations := employerRationale(breakdown)

	return &model.MatchResult{
		JobID:       job.ID,
		CandidateID: candidate.ID,
		FitIndex:    fitIndex,
		Breakdown:   breakdown,
		Rationale: model.Rationale{
			Summary:         fmt.Sprintf("Overall fit %d/100 across %d weighted factors.", fitIndex, len(breakdown)),
			Strengths:       strengths,
			Concerns:        concerns,
			Recommendations: explanations,
		},
	}, nil
}

// employerSkillsScore is the exact-match ratio over required skills plus up to
// 20 bonus points for preferred-skill overlap. An empty required list is full
// credit by policy.
func employerSkillsScore(candidate *model.Candidate, job model.NormalizedJob) float64 {
	score := 100.0
	if len(job.RequiredSkills) > 0 {
		matched := 0
		for _, skill := range job.RequiredSkills {
			if candidate.HasSkill(skill) {
				matched++
			}
		}
		score = float64(matched) / float64(len(job.RequiredSkills)) * 100
	}

	if len(job.PreferredSkills) > 0 {
		matched := 0
		for _, skill := range job.PreferredSkills {
			if candidate.HasSkill(skill) {
				matched++
			}
		}
		score += float64(matched) / float64(len(job.PreferredSkills)) * 20
	}

	return math.Min(score, 100)
}

// employerExperienceScore is 100 inside the stated range, with a linear
// penalty of 15 points per year short and 5 points per year over.
func employerExperienceScore(years int, expMin, expMax *int) float64 {
	if expMin == nil && expMax == nil {
		return 100
	}
	if expMin != nil && years < *expMin {
		return math.Max(0, 100-15*float64(*expMin-years))
	}
	if expMax != nil && years > *expMax {
		return math.Max(0, 100-5*float64(years-*expMax))
	}
	return 100
}

// employerLocationScore grades by the granularity of the location match:
// remote jobs always 100, then city/region/country at 100/85/70, otherwise 20
// for onsite and 50 for hybrid roles.
func employerLocationScore(candidateLocation string, job model.NormalizedJob) float64 {
	if job.LocationType == model.LocationTypeRemote {
		return 100
	}

	mismatch := 20.0
	if job.LocationType == model.LocationTypeHybrid {
		mismatch = 50.0
	}

	cand := splitLocation(candidateLocation)
	jobLoc := splitLocation(job.Location)
	if len(cand) == 0 || len(jobLoc) == 0 {
		return mismatch
	}

	// City is the first segment, country the last.
	if cand[0] == jobLoc[0] {
		return 100
	}
	if len(cand) > 1 && len(jobLoc) > 1 && cand[1] == jobLoc[1] {
		return 85
	}
	if cand[len(cand)-1] == jobLoc[len(jobLoc)-1] {
		return 70
	}
	return mismatch
}

func splitLocation(location string) []string {
	parts := strings.Split(location, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// employerCultureScore proxies culture fit through the candidate's preferred
// work arrangement. No stated preference scores the neutral default 75.
func employerCultureScore(preferred model.LocationType, jobType model.LocationType) float64 {
	if preferred == "" {
		return 75
	}
	if preferred == jobType {
		return 100
	}
	return 50
}

// employerSalaryScore compares the candidate's expectation against the job
// budget: overlapping ranges scale 70-100 by coverage, an expectation above
// budget is penalized linearly, an expectation below budget is 100.
func employerSalaryScore(candidate *model.Candidate, job model.NormalizedJob) float64 {
	if candidate.ExpectedSalaryMin == nil || job.SalaryMax == nil {
		return 75
	}

	candMin := *candidate.ExpectedSalaryMin
	candMax := candMin
	if candidate.ExpectedSalaryMax != nil {
		candMax = *candidate.ExpectedSalaryMax
	}
	jobMax := *job.SalaryMax
	jobMin := jobMax
	if job.SalaryMin != nil {
		jobMin = *job.SalaryMin
	}

	if candMin > jobMax {
		// Expectation exceeds budget: lose one point per percent over.
		overPct := float64(candMin-jobMax) / float64(jobMax) * 100
		return math.Max(0, 70-overPct)
	}
	if candMax < jobMin {
		return 100
	}

	overlap := float64(minInt(candMax, jobMax) - maxInt(candMin, jobMin))
	width := float64(candMax - candMin)
	coverage := 1.0
	if width > 0 {
		coverage = overlap / width
	}
	return 70 + 30*coverage
}

func employerAvailabilityScore(status model.AvailabilityStatus) float64 {
	switch status {
	case model.AvailabilityActivelyLooking:
		return 100
	case model.AvailabilityOpenToOffers:
		return 80
	case model.AvailabilityNotLooking:
		return 30
	default:
		return 75
	}
}

var employerFactorLabels = []struct {
	key   string
	label string
}{
	{model.FactorSkills, "skill coverage"},
	{model.FactorExperience, "experience level"},
	{model.FactorLocation, "location"},
	{model.FactorCulture, "work arrangement fit"},
	{model.FactorSalary, "salary expectation"},
	{model.FactorAvailability, "availability"},
}

func employerRationale(breakdown map[string]float64) (strengths, concerns, explanations []string) {
	for _, factor := range employerFactorLabels {
		score := breakdown[factor.key]
		line := fmt.Sprintf("%s: %.0f/100", factor.label, score)
		explanations = append(explanations, line)
		if score >= strengthThreshold {
			strengths = append(strengths, fmt.Sprintf("Strong %s (%.0f/100)", factor.label, score))
		} else if score < concernThreshold {
			concerns = append(concerns, fmt.Sprintf("Weak %s (%.0f/100)", factor.label, score))
		}
	}
	return strengths, concerns, explanations
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
