package model

import "github.com/google/uuid"

// Breakdown factor keys shared by both scoring strategies.
const (
	FactorSkillMatch      = "skill_match"
	FactorExperienceMatch = "experience_match"
	FactorSeniorityMatch  = "seniority_match"
	FactorSemantic        = "semantic_similarity"

	FactorSkills       = "skills_match"
	FactorExperience   = "experience_level"
	FactorLocation     = "location_match"
	FactorCulture      = "culture_fit"
	FactorSalary       = "salary_expectation"
	FactorAvailability = "availability"
)

// Rationale is the human-readable explanation attached to a fit index.
type Rationale struct {
	Summary            string   `json:"summary"`
	MatchingSkills     []string `json:"matching_skills,omitempty"`
	SkillGaps          []string `json:"skill_gaps,omitempty"`
	TransferableSkills []string `json:"transferable_skills,omitempty"`
	ExperienceMatch    string   `json:"experience_match,omitempty"`
	Recommendations    []string `json:"recommendations,omitempty"`
	Strengths          []string `json:"strengths,omitempty"`
	Concerns           []string `json:"concerns,omitempty"`
}

// MatchResult is a single candidate/job compatibility verdict. It is computed
// on demand and never persisted as a whole; callers may copy FitIndex onto an
// application row.
type MatchResult struct {
	JobID       uuid.UUID          `json:"job_id,omitempty"`
	CandidateID uuid.UUID          `json:"candidate_id,omitempty"`
	FitIndex    int                `json:"fit_index"`
	Breakdown   map[string]float64 `json:"breakdown"`
	Rationale   Rationale          `json:"rationale"`
}

// CandidateRanking is one entry of an employer-side ranking pass.
type CandidateRanking struct {
	ApplicationID uuid.UUID `json:"application_id"`
	CandidateID   uuid.UUID `json:"candidate_id"`
	FitIndex      int       `json:"fit_index"`
	Explanations  []string  `json:"explanations"`
	Strengths     []string  `json:"strengths"`
	Concerns      []string  `json:"concerns"`
}

// RankingOutcome isolates a per-application failure so one bad row does not
// abort a whole ranking pass.
type RankingOutcome struct {
	ApplicationID uuid.UUID         `json:"application_id"`
	Ranking       *CandidateRanking `json:"ranking,omitempty"`
	Err           string            `json:"error,omitempty"`
}
