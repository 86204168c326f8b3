package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/fadilmartias/talent-matcher/internal/model"
	"github.com/fadilmartias/talent-matcher/internal/normalizer"
)

// Point budgets for the seeker view. They total 100 by construction.
const (
	seekerSkillBudget      = 60
	seekerRequiredBudget   = 50
	seekerPreferredBudget  = 10
	seekerExperienceBudget = 20
	seekerSeniorityBudget  = 10
	seekerSemanticBudget   = 10
)

// transferableThreshold is the minimum semantic similarity for a missing
// required skill to count as transferable (half credit).
const transferableThreshold = 0.7

// SeekerScorer ranks jobs from the candidate's point of view. Skill coverage
// dominates (60 of 100 points); a missing required skill can still earn half
// credit when the candidate holds a semantically close one.
type SeekerScorer struct {
	similarity SimilarityFunc
}

func NewSeekerScorer(similarity SimilarityFunc) *SeekerScorer {
	return &SeekerScorer{similarity: similarity}
}

func (s *SeekerScorer) Strategy() Strategy { return StrategySeekerView }

func (s *SeekerScorer) Score(ctx context.Context, candidate *model.Candidate, job *model.JobPosting, opts Options) (*model.MatchResult, error) {
	if candidate == nil || job == nil {
		return nil, fmt.Errorf("candidate and job are required")
	}
	normalized := job.Normalized()

	matching, transferable, gaps, err := s.classifyRequiredSkills(ctx, candidate, normalized.RequiredSkills)
	if err != nil {
		return nil, err
	}

	requiredScore := seekerRequiredBudget
	if len(normalized.RequiredSkills) > 0 {
		credit := float64(len(matching)) + 0.5*float64(len(transferable))
		requiredScore = roundRatio(credit, float64(len(normalized.RequiredSkills)), seekerRequiredBudget)
	}

	preferredMatched := 0
	for _, skill := range normalized.PreferredSkills {
		if candidate.HasSkill(skill) {
			preferredMatched++
		}
	}
	preferredScore := seekerPreferredBudget
	if len(normalized.PreferredSkills) > 0 {
		preferredScore = roundRatio(float64(preferredMatched), float64(len(normalized.PreferredSkills)), seekerPreferredBudget)
	}

	skillScore := clampInt(requiredScore+preferredScore, 0, seekerSkillBudget)

	years := candidate.TotalYearsExperience()
	experienceScore, experienceLabel := seekerExperienceScore(years, normalized.ExperienceMin, normalized.ExperienceMax)
	seniorityScore := seekerSeniorityScore(years, normalized.ExperienceLevel)

	semanticScore := clampInt(int(math.Round(opts.RetrievalScore*seekerSemanticBudget)), 0, seekerSemanticBudget)

	fitIndex := clampInt(skillScore+experienceScore+seniorityScore+semanticScore, 0, 100)

	result := &model.MatchResult{
		JobID:       job.ID,
		CandidateID: candidate.ID,
		FitIndex:    fitIndex,
		Breakdown: map[string]float64{
			model.FactorSkillMatch:      float64(skillScore),
			model.FactorExperienceMatch: float64(experienceScore),
			model.FactorSeniorityMatch:  float64(seniorityScore),
			model.FactorSemantic:        float64(semanticScore),
		},
		Rationale: model.Rationale{
			Summary:            seekerSummary(fitIndex, job.Title),
			MatchingSkills:     matching,
			SkillGaps:          gaps,
			TransferableSkills: transferable,
			ExperienceMatch:    experienceLabel,
		},
	}
	result.Rationale.Recommendations = seekerRecommendations(result, years, normalized)

	return result, nil
}

// classifyRequiredSkills buckets each required skill as matching (exact,
// case-insensitive), transferable (closest candidate skill above the
// similarity threshold) or a gap. A similarity provider failure aborts the
// whole scoring call.
func (s *SeekerScorer) classifyRequiredSkills(ctx context.Context, candidate *model.Candidate, required []string) (matching, transferable, gaps []string, err error) {
	matching = []string{}
	transferable = []string{}
	gaps = []string{}

	for _, skill := range required {
		if candidate.HasSkill(skill) {
			matching = append(matching, skill)
			continue
		}

		if s.similarity == nil || len(candidate.Skills) == 0 {
			gaps = append(gaps, skill)
			continue
		}

		best := 0.0
		for _, owned := range candidate.Skills {
			sim, simErr := s.similarity(ctx, skill, owned.Name)
			if simErr != nil {
				return nil, nil, nil, fmt.Errorf("similarity for %q: %w", skill, simErr)
			}
			if sim > best {
				best = sim
			}
		}
		if best > transferableThreshold {
			transferable = append(transferable, skill)
		} else {
			gaps = append(gaps, skill)
		}
	}
	return matching, transferable, gaps, nil
}

func seekerExperienceScore(years int, expMin, expMax *int) (int, string) {
	if expMin == nil && expMax == nil {
		return seekerExperienceBudget, "No specific requirement"
	}
	if expMin == nil {
		if years <= *expMax {
			return seekerExperienceBudget, "Perfect match"
		}
		return 5, "Outside the stated range"
	}

	within := years >= *expMin && (expMax == nil || years <= *expMax)
	if within {
		return seekerExperienceBudget, "Perfect match"
	}
	switch under := *expMin - years; {
	case under == 1:
		return 15, "Slightly under the minimum"
	case under == 2:
		return 10, "Under the minimum"
	default:
		return 5, "Outside the stated range"
	}
}

func seekerSeniorityScore(years int, jobLevel model.ExperienceLevel) int {
	if jobLevel == "" {
		return seekerSeniorityBudget
	}
	candidateRank := model.LadderRank(normalizer.LevelForYears(years))
	jobRank := model.LadderRank(jobLevel)
	if jobRank < 0 {
		return seekerSeniorityBudget
	}

	distance := candidateRank - jobRank
	if distance < 0 {
		distance = -distance
	}
	switch distance {
	case 0:
		return seekerSeniorityBudget
	case 1:
		return 7
	case 2:
		return 3
	default:
		return 0
	}
}

func seekerSummary(fitIndex int, title string) string {
	switch {
	case fitIndex >= 90:
		return fmt.Sprintf("Excellent match for %s: your profile covers nearly everything this role asks for.", title)
	case fitIndex >= 70:
		return fmt.Sprintf("Good match for %s: you meet most of the requirements.", title)
	case fitIndex >= 40:
		return fmt.Sprintf("Partial match for %s: some key requirements are missing.", title)
	default:
		return fmt.Sprintf("Low match for %s: this role asks for a substantially different profile.", title)
	}
}

// seekerRecommendations produces between one and four templated next steps.
func seekerRecommendations(result *model.MatchResult, years int, job model.NormalizedJob) []string {
	recs := make([]string, 0, 4)

	if gaps := result.Rationale.SkillGaps; len(gaps) > 0 {
		top := gaps
		if len(top) > 3 {
			top = top[:3]
		}
		recs = append(recs, fmt.Sprintf("Consider strengthening: %s.", strings.Join(top, ", ")))
	}
	if transferable := result.Rationale.TransferableSkills; len(transferable) > 0 {
		recs = append(recs, fmt.Sprintf("Highlight experience related to %s, it transfers to this role.", strings.Join(transferable, ", ")))
	}
	if job.ExperienceLevel != "" {
		jobRank := model.LadderRank(job.ExperienceLevel)
		if candidateRank := model.LadderRank(normalizer.LevelForYears(years)); jobRank-candidateRank >= 2 {
			recs = append(recs, "This is a stretch role for your current seniority; emphasize leadership and scope in your application.")
		}
	}
	if result.FitIndex >= 70 {
		recs = append(recs, "Strong alignment. Tailor your resume to the required skills and apply.")
	}

	if len(recs) == 0 {
		recs = append(recs, "Review the full posting to judge whether the gaps are worth closing.")
	}
	if len(recs) > 4 {
		recs = recs[:4]
	}
	return recs
}
