package normalizer

import "regexp"

var (
	requiredHeaderRe  = regexp.MustCompile(`(?im)^.*\b(required|must[- ]have|qualifications)\b.*$`)
	preferredHeaderRe = regexp.MustCompile(`(?im)^.*\b(preferred|nice[- ]to[- ]have|bonus)\b.*$`)
	doubleBlankRe     = regexp.MustCompile(`\n\s*\n\s*\n`)
)

// requiredSection isolates the text following a Required/Must Have/
// Qualifications header, stopping at a Preferred header or a double blank
// line. Returns ("", false) when no header exists; callers then search the
// whole text.
func requiredSection(text string) (string, bool) {
	loc := requiredHeaderRe.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	section := text[loc[1]:]
	if stop := preferredHeaderRe.FindStringIndex(section); stop != nil {
		section = section[:stop[0]]
	} else if stop := doubleBlankRe.FindStringIndex(section); stop != nil {
		section = section[:stop[0]]
	}
	return section, true
}

// preferredSection isolates the text following a Preferred/Nice to have/Bonus
// header, stopping at a double blank line. Returns ("", false) when the
// posting has no such section; preferred skills are then empty by policy.
func preferredSection(text string) (string, bool) {
	loc := preferredHeaderRe.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	section := text[loc[1]:]
	if stop := doubleBlankRe.FindStringIndex(section); stop != nil {
		section = section[:stop[0]]
	}
	return section, true
}
