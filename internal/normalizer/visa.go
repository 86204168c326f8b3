package normalizer

import "regexp"

// Negative patterns are checked first and win outright: a posting that both
// mentions sponsorship and disclaims it does not sponsor.
var visaNegativePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)no\s+(visa\s+)?sponsorship`),
	regexp.MustCompile(`(?i)(?:not|unable\s+to|cannot|can't|won't)\s+(?:provide|offer|sponsor)`),
	regexp.MustCompile(`(?i)sponsorship\s+(?:is\s+)?not\s+(?:available|offered|provided)`),
	regexp.MustCompile(`(?i)must\s+(?:have|possess)\s+(?:valid\s+)?work\s+authori[sz]ation`),
	regexp.MustCompile(`(?i)authori[sz]ed\s+to\s+work\s+(?:in|without)`),
	regexp.MustCompile(`(?i)without\s+(?:the\s+need\s+for\s+)?sponsorship`),
}

var visaPositivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:visa|h-?1b|work\s+permit)\s+sponsorship\s+(?:is\s+)?(?:available|offered|provided)`),
	regexp.MustCompile(`(?i)(?:we|company)\s+(?:will\s+)?sponsor`),
	regexp.MustCompile(`(?i)sponsorship\s+available`),
	regexp.MustCompile(`(?i)willing\s+to\s+sponsor`),
}

// DetectVisaSponsorship reports whether a posting offers visa sponsorship.
// Defaults to false when neither side matches.
func DetectVisaSponsorship(text string) bool {
	for _, p := range visaNegativePatterns {
		if p.MatchString(text) {
			return false
		}
	}
	for _, p := range visaPositivePatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
