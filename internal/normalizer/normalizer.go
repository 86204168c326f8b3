// Package normalizer turns free-text job postings into structured attributes.
// Every function is pure and deterministic: identical input text always yields
// identical output.
package normalizer

import "github.com/fadilmartias/talent-matcher/internal/model"

// NormalizeJob composes all extraction heuristics over a raw posting.
func NormalizeJob(rawText, location string) model.NormalizedJob {
	expMin, expMax := ExtractYearsExperience(rawText)
	salaryMin, salaryMax := ExtractSalaryRange(rawText)

	return model.NormalizedJob{
		Location:        location,
		LocationType:    DetectLocationType(location, rawText),
		RequiredSkills:  ExtractSkills(rawText, true),
		PreferredSkills: ExtractSkills(rawText, false),
		ExperienceMin:   expMin,
		ExperienceMax:   expMax,
		ExperienceLevel: ExtractExperienceLevel(rawText),
		SalaryMin:       salaryMin,
		SalaryMax:       salaryMax,
		SponsorsVisa:    DetectVisaSponsorship(rawText),
	}
}
