package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fadilmartias/talent-matcher/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noSimilarity(_ context.Context, _, _ string) (float64, error) { return 0, nil }

// periodsCoveringYears builds one closed employment period spanning the given
// number of past calendar years, so TotalYearsExperience is stable in tests.
func periodsCoveringYears(n int) []model.ExperiencePeriod {
	if n == 0 {
		return nil
	}
	end := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2023-(n-1), 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.ExperiencePeriod{{Start: start, End: end}}
}

func candidateWithSkills(names ...string) *model.Candidate {
	skills := make([]model.SkillVector, 0, len(names))
	for _, n := range names {
		skills = append(skills, model.SkillVector{Name: n})
	}
	return &model.Candidate{Skills: skills}
}

func TestSeekerSkillScenarioTwoOfThreeRequired(t *testing.T) {
	// Python and React match exactly, Django has no semantic neighbour, no
	// preferred skills listed: 33 + 10 = 43 skill points.
	scorer := NewSeekerScorer(noSimilarity)

	candidate := candidateWithSkills("Python", "React")
	job := &model.JobPosting{
		Title:          "Backend Engineer",
		RequiredSkills: []string{"Python", "React", "Django"},
	}

	result, err := scorer.Score(context.Background(), candidate, job, Options{})
	require.NoError(t, err)

	assert.Equal(t, 43.0, result.Breakdown[model.FactorSkillMatch])
	assert.ElementsMatch(t, []string{"Python", "React"}, result.Rationale.MatchingSkills)
	assert.Equal(t, []string{"Django"}, result.Rationale.SkillGaps)
	assert.Empty(t, result.Rationale.TransferableSkills)
}

func TestSeekerSkillDefaultsOnEmptyLists(t *testing.T) {
	scorer := NewSeekerScorer(noSimilarity)

	candidate := candidateWithSkills("Python")
	job := &model.JobPosting{Title: "Generalist"}

	result, err := scorer.Score(context.Background(), candidate, job, Options{})
	require.NoError(t, err)

	// No required skills listed: full credit 50 + 10 = 60, capped at the budget.
	assert.Equal(t, 60.0, result.Breakdown[model.FactorSkillMatch])
}

func TestSeekerTransferableHalfCredit(t *testing.T) {
	scorer := NewSeekerScorer(func(_ context.Context, a, b string) (float64, error) {
		if a == "Django" && b == "Flask" {
			return 0.82, nil
		}
		return 0.1, nil
	})

	candidate := candidateWithSkills("Flask")
	job := &model.JobPosting{Title: "Web Engineer", RequiredSkills: []string{"Django"}}

	result, err := scorer.Score(context.Background(), candidate, job, Options{})
	require.NoError(t, err)

	// round(0.5/1 * 50) + 10 preferred default = 35.
	assert.Equal(t, 35.0, result.Breakdown[model.FactorSkillMatch])
	assert.Equal(t, []string{"Django"}, result.Rationale.TransferableSkills)
	assert.Empty(t, result.Rationale.SkillGaps)
}

func TestSeekerSimilarityFailurePropagates(t *testing.T) {
	scorer := NewSeekerScorer(func(_ context.Context, _, _ string) (float64, error) {
		return 0, errors.New("embedding provider down")
	})

	candidate := candidateWithSkills("Flask")
	job := &model.JobPosting{RequiredSkills: []string{"Django"}}

	_, err := scorer.Score(context.Background(), candidate, job, Options{})
	assert.Error(t, err)
}

func TestSeekerExperienceScore(t *testing.T) {
	cases := []struct {
		name  string
		years int
		min   *int
		max   *int
		score int
	}{
		{"no requirement", 3, nil, nil, 20},
		{"within range", 6, intPtr(5), intPtr(8), 20},
		{"at minimum", 5, intPtr(5), intPtr(8), 20},
		{"open ended maximum", 30, intPtr(5), nil, 20},
		{"one year short", 4, intPtr(5), intPtr(8), 15},
		{"two years short", 3, intPtr(5), intPtr(8), 10},
		{"far short", 1, intPtr(5), intPtr(8), 5},
		{"over the maximum", 12, intPtr(5), intPtr(8), 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, _ := seekerExperienceScore(tc.years, tc.min, tc.max)
			assert.Equal(t, tc.score, score)
		})
	}
}

func TestSeekerSeniorityScore(t *testing.T) {
	// 7 years is senior on the ladder.
	assert.Equal(t, 10, seekerSeniorityScore(7, model.ExperienceLevelSenior))
	assert.Equal(t, 10, seekerSeniorityScore(7, ""))
	assert.Equal(t, 7, seekerSeniorityScore(7, model.ExperienceLevelStaff))
	assert.Equal(t, 3, seekerSeniorityScore(7, model.ExperienceLevelPrincipal))
	assert.Equal(t, 0, seekerSeniorityScore(1, model.ExperienceLevelStaff))
}

func TestSeekerSemanticContribution(t *testing.T) {
	scorer := NewSeekerScorer(noSimilarity)
	candidate := candidateWithSkills("Python")
	job := &model.JobPosting{Title: "Engineer"}

	result, err := scorer.Score(context.Background(), candidate, job, Options{RetrievalScore: 0.95})
	require.NoError(t, err)
	assert.Equal(t, 10.0, result.Breakdown[model.FactorSemantic])

	result, err = scorer.Score(context.Background(), candidate, job, Options{RetrievalScore: 0.42})
	require.NoError(t, err)
	assert.Equal(t, 4.0, result.Breakdown[model.FactorSemantic])
}

func TestSeekerBudgetsAndBounds(t *testing.T) {
	scorer := NewSeekerScorer(noSimilarity)

	candidates := []*model.Candidate{
		candidateWithSkills(),
		candidateWithSkills("Python", "React", "Django", "Docker"),
		{
			Skills:            []model.SkillVector{{Name: "Go"}},
			ExperiencePeriods: periodsCoveringYears(12),
		},
	}
	jobs := []*model.JobPosting{
		{Title: "A"},
		{Title: "B", RequiredSkills: []string{"Python", "React"}, PreferredSkills: []string{"Docker"}},
		{Title: "C", RequiredSkills: []string{"Haskell"}, ExperienceMin: intPtr(10), ExperienceLevel: model.ExperienceLevelPrincipal},
	}

	for _, c := range candidates {
		for _, j := range jobs {
			result, err := scorer.Score(context.Background(), c, j, Options{RetrievalScore: 0.7})
			require.NoError(t, err)

			assert.GreaterOrEqual(t, result.FitIndex, 0)
			assert.LessOrEqual(t, result.FitIndex, 100)
			assert.LessOrEqual(t, result.Breakdown[model.FactorSkillMatch], 60.0)
			assert.LessOrEqual(t, result.Breakdown[model.FactorExperienceMatch], 20.0)
			assert.LessOrEqual(t, result.Breakdown[model.FactorSeniorityMatch], 10.0)
			assert.LessOrEqual(t, result.Breakdown[model.FactorSemantic], 10.0)
			assert.NotEmpty(t, result.Rationale.Recommendations)
			assert.LessOrEqual(t, len(result.Rationale.Recommendations), 4)
		}
	}
}

func TestSeekerSummaryTiers(t *testing.T) {
	scorer := NewSeekerScorer(noSimilarity)

	// Everything matches and retrieval is perfect: fit index 100, "Excellent".
	candidate := &model.Candidate{
		Skills:            []model.SkillVector{{Name: "Python"}},
		ExperiencePeriods: periodsCoveringYears(6),
	}
	job := &model.JobPosting{
		Title:          "Dream Role",
		RequiredSkills: []string{"Python"},
		ExperienceMin:  intPtr(5),
		ExperienceMax:  intPtr(8),
	}

	result, err := scorer.Score(context.Background(), candidate, job, Options{RetrievalScore: 1.0})
	require.NoError(t, err)
	assert.Equal(t, 100, result.FitIndex)
	assert.Contains(t, result.Rationale.Summary, "Excellent match")
	assert.Equal(t, "Perfect match", result.Rationale.ExperienceMatch)

	// Nothing matches: "Low".
	empty := candidateWithSkills("Cobol")
	hard := &model.JobPosting{
		Title:          "Impossible Role",
		RequiredSkills: []string{"Python", "React", "Django"},
		ExperienceMin:  intPtr(10),
		ExperienceLevel: model.ExperienceLevelPrincipal,
	}
	result, err = scorer.Score(context.Background(), empty, hard, Options{})
	require.NoError(t, err)
	assert.Less(t, result.FitIndex, 40)
	assert.Contains(t, result.Rationale.Summary, "Low match")
}

func intPtr(v int) *int { return &v }
