package normalizer

import (
	"regexp"
	"strconv"

	"github.com/fadilmartias/talent-matcher/internal/model"
)

var (
	yearsRangeRe   = regexp.MustCompile(`(?i)(\d{1,2})\s*-\s*(\d{1,2})\+?\s*years?`)
	yearsMinimumRe = regexp.MustCompile(`(?i)(?:(\d{1,2})\s*\+\s*years?|at least\s+(\d{1,2})\s*years?|minimum(?: of)?\s+(\d{1,2})\s*years?)`)
	yearsSingleRe  = regexp.MustCompile(`(?i)(\d{1,2})\s*years?`)
)

// ExtractYearsExperience parses an experience requirement, trying strategies
// in fixed order: explicit range, explicit minimum, explicit single value
// (used as both bounds). Returns (nil, nil) when nothing matches.
func ExtractYearsExperience(text string) (minYears, maxYears *int) {
	if m := yearsRangeRe.FindStringSubmatch(text); m != nil {
		lo, err1 := strconv.Atoi(m[1])
		hi, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil {
			if lo > hi {
				lo, hi = hi, lo
			}
			return &lo, &hi
		}
	}
	if m := yearsMinimumRe.FindStringSubmatch(text); m != nil {
		for _, g := range m[1:] {
			if g == "" {
				continue
			}
			if lo, err := strconv.Atoi(g); err == nil {
				return &lo, nil
			}
		}
	}
	if m := yearsSingleRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			return &v, &v
		}
	}
	return nil, nil
}

var levelKeywords = []struct {
	level   model.ExperienceLevel
	pattern *regexp.Regexp
}{
	{model.ExperienceLevelPrincipal, regexp.MustCompile(`(?i)\bprincipal\b`)},
	{model.ExperienceLevelStaff, regexp.MustCompile(`(?i)\bstaff\b`)},
	{model.ExperienceLevelSenior, regexp.MustCompile(`(?i)\b(senior|sr\.?)\b`)},
	{model.ExperienceLevelMid, regexp.MustCompile(`(?i)\b(mid[- ]level|intermediate)\b`)},
	{model.ExperienceLevelEntry, regexp.MustCompile(`(?i)\b(entry[- ]level|junior|jr\.?|graduate)\b`)},
}

// ExtractExperienceLevel resolves the seniority level: explicit keywords win
// in ladder-descending priority, otherwise the level is inferred from the
// extracted years requirement. Empty when neither signal exists.
func ExtractExperienceLevel(text string) model.ExperienceLevel {
	for _, kw := range levelKeywords {
		if kw.pattern.MatchString(text) {
			return kw.level
		}
	}
	minYears, _ := ExtractYearsExperience(text)
	if minYears == nil {
		return ""
	}
	return LevelForYears(*minYears)
}

// LevelForYears maps years of experience onto the seniority ladder using the
// fixed breakpoints 2/5/10/15.
func LevelForYears(years int) model.ExperienceLevel {
	switch {
	case years <= 2:
		return model.ExperienceLevelEntry
	case years <= 5:
		return model.ExperienceLevelMid
	case years <= 10:
		return model.ExperienceLevelSenior
	case years <= 15:
		return model.ExperienceLevelStaff
	default:
		return model.ExperienceLevelPrincipal
	}
}
