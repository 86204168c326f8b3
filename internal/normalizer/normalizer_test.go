package normalizer

import (
	"testing"

	"github.com/fadilmartias/talent-matcher/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePosting = `Senior Backend Engineer

We build payment infrastructure used by thousands of merchants.

Required qualifications:
- 5-7 years of experience with Python and Django
- Strong PostgreSQL and Redis knowledge
- Docker and Kubernetes in production

Preferred:
- Kafka
- Terraform

Salary: $140,000 - $170,000. Visa sponsorship available. This is a remote position.`

func TestExtractSkillsRequiredSection(t *testing.T) {
	skills := ExtractSkills(samplePosting, true)

	assert.Contains(t, skills, "Python")
	assert.Contains(t, skills, "Django")
	assert.Contains(t, skills, "PostgreSQL")
	assert.Contains(t, skills, "Redis")
	assert.Contains(t, skills, "Docker")
	assert.Contains(t, skills, "Kubernetes")
	// Kafka only appears in the preferred section.
	assert.NotContains(t, skills, "Kafka")
}

func TestExtractSkillsPreferredSection(t *testing.T) {
	skills := ExtractSkills(samplePosting, false)

	assert.Equal(t, []string{"Kafka", "Terraform"}, skills)
}

func TestExtractSkillsNoPreferredHeader(t *testing.T) {
	skills := ExtractSkills("We need Python and React engineers.", false)
	assert.Empty(t, skills)
}

func TestExtractSkillsWholeTextFallback(t *testing.T) {
	skills := ExtractSkills("Looking for Python and React engineers.", true)
	assert.Equal(t, []string{"Python", "React"}, skills)
}

func TestExtractSkillsDictionaryOrderAndCap(t *testing.T) {
	text := "Python Go Java JavaScript TypeScript Ruby PHP C++ C# Rust Kotlin Swift Scala SQL React Angular Vue Node.js Django Flask Rails Spring"
	skills := ExtractSkills(text, true)

	require.Len(t, skills, 20)
	assert.Equal(t, "Python", skills[0])
	assert.Equal(t, "Go", skills[1])
}

func TestExtractYearsExperience(t *testing.T) {
	cases := []struct {
		text string
		min  *int
		max  *int
	}{
		{"5-7 years of experience", intPtr(5), intPtr(7)},
		{"8+ years", intPtr(8), nil},
		{"at least 4 years building APIs", intPtr(4), nil},
		{"3 years", intPtr(3), intPtr(3)},
		{"no requirement mentioned", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			min, max := ExtractYearsExperience(tc.text)
			assert.Equal(t, tc.min, min)
			assert.Equal(t, tc.max, max)
		})
	}
}

func TestExtractExperienceLevel(t *testing.T) {
	cases := []struct {
		text  string
		level model.ExperienceLevel
	}{
		{"Principal Engineer, formerly senior", model.ExperienceLevelPrincipal},
		{"Staff Software Engineer", model.ExperienceLevelStaff},
		{"Senior Backend Engineer", model.ExperienceLevelSenior},
		{"Junior developer wanted", model.ExperienceLevelEntry},
		{"Engineer with 7 years of experience", model.ExperienceLevelSenior},
		{"Engineer with 1 year experience", model.ExperienceLevelEntry},
		{"Engineer with 12 years experience", model.ExperienceLevelStaff},
		{"Engineer with 20 years experience", model.ExperienceLevelPrincipal},
		{"Engineer", model.ExperienceLevel("")},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.level, ExtractExperienceLevel(tc.text))
		})
	}
}

func TestExtractSalaryRange(t *testing.T) {
	cases := []struct {
		name string
		text string
		min  *int
		max  *int
	}{
		{"full numbers", "We pay $120,000 - $150,000 per year", intPtr(120000), intPtr(150000)},
		{"dollar k", "$120k-$150k DOE", intPtr(120000), intPtr(150000)},
		{"bare k", "comp 90k to 120k", intPtr(90000), intPtr(120000)},
		{"labelled", "salary: 100000-130000", intPtr(100000), intPtr(130000)},
		{"swapped bounds", "salary: 150000-120000", intPtr(120000), intPtr(150000)},
		{"nothing", "competitive compensation", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			min, max := ExtractSalaryRange(tc.text)
			assert.Equal(t, tc.min, min)
			assert.Equal(t, tc.max, max)
		})
	}
}

func TestDetectVisaSponsorshipNegativePrecedence(t *testing.T) {
	// A negative pattern wins even when a positive one is also present.
	assert.False(t, DetectVisaSponsorship("We sponsor H1B but note: no sponsorship for contractors"))
	assert.False(t, DetectVisaSponsorship("Candidates must have work authorization"))
	assert.True(t, DetectVisaSponsorship("Visa sponsorship available for this role"))
	assert.True(t, DetectVisaSponsorship("We will sponsor the right candidate"))
	assert.False(t, DetectVisaSponsorship("Great benefits and free lunch"))
}

func TestDetectLocationType(t *testing.T) {
	assert.Equal(t, model.LocationTypeRemote, DetectLocationType("Remote", "anything"))
	assert.Equal(t, model.LocationTypeRemote, DetectLocationType("Berlin", "You can work from home"))
	assert.Equal(t, model.LocationTypeHybrid, DetectLocationType("NYC", "Hybrid schedule, 2 days in office"))
	assert.Equal(t, model.LocationTypeOnsite, DetectLocationType("Austin, TX", "On our trading floor"))
}

func TestNormalizeJobIdempotent(t *testing.T) {
	first := NormalizeJob(samplePosting, "Remote")
	second := NormalizeJob(samplePosting, "Remote")

	assert.Equal(t, first, second)
	assert.Equal(t, model.LocationTypeRemote, first.LocationType)
	assert.True(t, first.SponsorsVisa)
	require.NotNil(t, first.SalaryMin)
	assert.Equal(t, 140000, *first.SalaryMin)
	require.NotNil(t, first.ExperienceMin)
	assert.Equal(t, 5, *first.ExperienceMin)
	assert.Equal(t, model.ExperienceLevelSenior, first.ExperienceLevel)
}

func TestExtractCandidateSkillsDedup(t *testing.T) {
	skills := ExtractCandidateSkills("Python, react\npython; Docker, REACT")

	require.Len(t, skills, 3)
	assert.Equal(t, "Python", skills[0].Name)
	assert.Equal(t, "react", skills[1].Name)
	assert.Equal(t, "Docker", skills[2].Name)
}

func intPtr(v int) *int { return &v }
