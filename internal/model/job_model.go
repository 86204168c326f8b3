package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type LocationType string

const (
	LocationTypeRemote LocationType = "remote"
	LocationTypeHybrid LocationType = "hybrid"
	LocationTypeOnsite LocationType = "onsite"
)

type ExperienceLevel string

const (
	ExperienceLevelEntry     ExperienceLevel = "entry"
	ExperienceLevelMid       ExperienceLevel = "mid"
	ExperienceLevelSenior    ExperienceLevel = "senior"
	ExperienceLevelStaff     ExperienceLevel = "staff"
	ExperienceLevelPrincipal ExperienceLevel = "principal"
)

// SeniorityLadder orders levels for distance scoring.
var SeniorityLadder = []ExperienceLevel{
	ExperienceLevelEntry,
	ExperienceLevelMid,
	ExperienceLevelSenior,
	ExperienceLevelStaff,
	ExperienceLevelPrincipal,
}

// LadderRank returns the position of a level on the seniority ladder, -1 if unknown.
func LadderRank(level ExperienceLevel) int {
	for i, l := range SeniorityLadder {
		if l == level {
			return i
		}
	}
	return -1
}

// NormalizedJob holds the structured attributes derived from a raw posting text.
type NormalizedJob struct {
	Location        string          `json:"location"`
	LocationType    LocationType    `json:"location_type"`
	RequiredSkills  []string        `json:"required_skills"`
	PreferredSkills []string        `json:"preferred_skills"`
	ExperienceMin   *int            `json:"experience_min"`
	ExperienceMax   *int            `json:"experience_max"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	SalaryMin       *int            `json:"salary_min"`
	SalaryMax       *int            `json:"salary_max"`
	SponsorsVisa    bool            `json:"sponsors_visa"`
}

type JobPosting struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title           string          `json:"title"`
	Company         string          `json:"company"`
	RawText         string          `gorm:"type:text" json:"raw_text"`
	Location        string          `json:"location"`
	LocationType    LocationType    `gorm:"type:varchar(20)" json:"location_type"`
	RequiredSkills  []string        `gorm:"type:jsonb;serializer:json" json:"required_skills"`
	PreferredSkills []string        `gorm:"type:jsonb;serializer:json" json:"preferred_skills"`
	ExperienceMin   *int            `json:"experience_min"`
	ExperienceMax   *int            `json:"experience_max"`
	ExperienceLevel ExperienceLevel `gorm:"type:varchar(20)" json:"experience_level"`
	SalaryMin       *int            `json:"salary_min"`
	SalaryMax       *int            `json:"salary_max"`
	SponsorsVisa    bool            `json:"sponsors_visa"`
	Embedding       pgvector.Vector `gorm:"type:vector(1536)" json:"-"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (j *JobPosting) TableName() string {
	return "job_postings"
}

// Normalized returns the structured view of the posting used by the scorers.
func (j *JobPosting) Normalized() NormalizedJob {
	return NormalizedJob{
		Location:        j.Location,
		LocationType:    j.LocationType,
		RequiredSkills:  j.RequiredSkills,
		PreferredSkills: j.PreferredSkills,
		ExperienceMin:   j.ExperienceMin,
		ExperienceMax:   j.ExperienceMax,
		ExperienceLevel: j.ExperienceLevel,
		SalaryMin:       j.SalaryMin,
		SalaryMax:       j.SalaryMax,
		SponsorsVisa:    j.SponsorsVisa,
	}
}

// ApplyNormalized copies derived attributes back onto the posting row.
func (j *JobPosting) ApplyNormalized(n NormalizedJob) {
	j.Location = n.Location
	j.LocationType = n.LocationType
	j.RequiredSkills = n.RequiredSkills
	j.PreferredSkills = n.PreferredSkills
	j.ExperienceMin = n.ExperienceMin
	j.ExperienceMax = n.ExperienceMax
	j.ExperienceLevel = n.ExperienceLevel
	j.SalaryMin = n.SalaryMin
	j.SalaryMax = n.SalaryMax
	j.SponsorsVisa = n.SponsorsVisa
}
