package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type AvailabilityStatus string

const (
	AvailabilityActivelyLooking AvailabilityStatus = "actively_looking"
	AvailabilityOpenToOffers    AvailabilityStatus = "open_to_offers"
	AvailabilityNotLooking      AvailabilityStatus = "not_looking"
)

// SkillVector is a single candidate skill with optional depth signals.
type SkillVector struct {
	Name        string `json:"name"`
	Years       *int   `json:"years,omitempty"`
	Proficiency string `json:"proficiency,omitempty"`
}

// ExperiencePeriod is one employment date range from the candidate's history.
type ExperiencePeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"` // zero value means ongoing
}

type Candidate struct {
	ID                    uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name                  string             `json:"name"`
	Skills                []SkillVector      `gorm:"type:jsonb;serializer:json" json:"skills"`
	ExperiencePeriods     []ExperiencePeriod `gorm:"type:jsonb;serializer:json" json:"experience_periods"`
	Location              string             `json:"location"`
	PreferredLocationType LocationType       `gorm:"type:varchar(20)" json:"preferred_location_type"`
	ExpectedSalaryMin     *int               `json:"expected_salary_min"`
	ExpectedSalaryMax     *int               `json:"expected_salary_max"`
	Availability          AvailabilityStatus `gorm:"type:varchar(30)" json:"availability_status"`
	Embedding             pgvector.Vector    `gorm:"type:vector(1536)" json:"-"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
}

func (c *Candidate) TableName() string {
	return "candidates"
}

// TotalYearsExperience merges the candidate's employment periods into the set
// of calendar years they cover and counts them, so overlapping jobs are not
// double counted.
func (c *Candidate) TotalYearsExperience() int {
	return TotalYearsExperience(c.ExperiencePeriods, time.Now())
}

// TotalYearsExperience counts the distinct calendar years covered by the
// supplied periods. Open-ended periods run until now.
func TotalYearsExperience(periods []ExperiencePeriod, now time.Time) int {
	covered := make(map[int]struct{})
	for _, p := range periods {
		if p.Start.IsZero() {
			continue
		}
		end := p.End
		if end.IsZero() {
			end = now
		}
		if end.Before(p.Start) {
			continue
		}
		for y := p.Start.Year(); y <= end.Year(); y++ {
			covered[y] = struct{}{}
		}
	}
	return len(covered)
}

// SkillText joins the candidate's skill names into the canonical text that is
// embedded for retrieval.
func (c *Candidate) SkillText() string {
	names := make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

// HasSkill reports whether the candidate lists the skill, case-insensitively.
func (c *Candidate) HasSkill(name string) bool {
	for _, s := range c.Skills {
		if strings.EqualFold(s.Name, name) {
			return true
		}
	}
	return false
}
