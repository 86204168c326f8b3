package normalizer

import (
	"regexp"
	"strconv"
	"strings"
)

// salaryStrategy is one ordered parsing attempt; the first strategy whose
// regex matches AND whose numbers parse wins. A matched pattern that fails to
// parse falls through to the next strategy.
type salaryStrategy struct {
	name    string
	pattern *regexp.Regexp
}

var salaryStrategies = []salaryStrategy{
	// $120,000 - $150,000
	{"full_numbers", regexp.MustCompile(`\$?\s*(\d{1,3}(?:,\d{3})+)\s*(?:-|–|to)\s*\$?\s*(\d{1,3}(?:,\d{3})+)`)},
	// $120k - $150k
	{"dollar_k", regexp.MustCompile(`(?i)\$\s*(\d{2,3})\s*k\s*(?:-|–|to)\s*\$?\s*(\d{2,3})\s*k`)},
	// 120k-150k
	{"bare_k", regexp.MustCompile(`(?i)\b(\d{2,3})\s*k\s*(?:-|–|to)\s*(\d{2,3})\s*k\b`)},
	// salary: 120000-150000
	{"labelled", regexp.MustCompile(`(?i)salary\s*:?\s*\$?\s*(\d{4,7})\s*(?:-|–|to)\s*\$?\s*(\d{4,7})`)},
}

// ExtractSalaryRange parses a salary range out of free text. Numbers below
// 1000 are assumed to be "k" shorthand and multiplied by 1000. Inconsistent
// bounds (min > max) are silently swapped. Returns (nil, nil) when no
// strategy succeeds.
func ExtractSalaryRange(text string) (salaryMin, salaryMax *int) {
	for _, strat := range salaryStrategies {
		m := strat.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		lo, err1 := parseSalaryNumber(m[1])
		hi, err2 := parseSalaryNumber(m[2])
		if err1 != nil || err2 != nil {
			continue
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		return &lo, &hi
	}
	return nil, nil
}

func parseSalaryNumber(raw string) (int, error) {
	raw = strings.ReplaceAll(raw, ",", "")
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	// "120" almost always means 120k with the suffix lost in parsing.
	if v < 1000 {
		v *= 1000
	}
	return v, nil
}
