package normalizer

import (
	"strings"

	"github.com/fadilmartias/talent-matcher/internal/model"
)

// ExtractSkills searches the fixed skill dictionary over the relevant section
// of the posting. With required=true the Required/Must Have/Qualifications
// section is isolated first (whole text when absent); with required=false only
// the Preferred/Nice to have/Bonus section is searched and the result is empty
// when no such section exists. Matches are case-insensitive, capped at 20, in
// dictionary order.
func ExtractSkills(text string, required bool) []string {
	var scope string
	if required {
		section, ok := requiredSection(text)
		if ok {
			scope = section
		} else {
			scope = text
		}
	} else {
		section, ok := preferredSection(text)
		if !ok {
			return []string{}
		}
		scope = section
	}

	skills := make([]string, 0, maxExtractedSkills)
	for _, entry := range skillDictionary {
		if entry.Pattern.MatchString(scope) {
			skills = append(skills, entry.Name)
			if len(skills) == maxExtractedSkills {
				break
			}
		}
	}
	return skills
}

// ExtractCandidateSkills turns free-form skill text (comma, newline or
// semicolon separated) into a deduplicated SkillVector list. Deduplication is
// case-insensitive; the first spelling wins.
func ExtractCandidateSkills(text string) []model.SkillVector {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})

	seen := make(map[string]struct{}, len(fields))
	skills := make([]model.SkillVector, 0, len(fields))
	for _, f := range fields {
		name := strings.TrimSpace(f)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		skills = append(skills, model.SkillVector{Name: name})
	}
	return skills
}
