package normalizer

import (
	"regexp"

	"github.com/fadilmartias/talent-matcher/internal/model"
)

var (
	remoteRe = regexp.MustCompile(`(?i)\b(remote|work\s+from\s+home|wfh|anywhere|distributed)\b`)
	hybridRe = regexp.MustCompile(`(?i)\b(hybrid|flexible\s+location|\d\s+days?\s+(?:in[- ])?office)\b`)
)

// DetectLocationType classifies the work arrangement from the location field
// and description combined. Priority: remote > hybrid > onsite.
func DetectLocationType(location, description string) model.LocationType {
	combined := location + " " + description
	if remoteRe.MatchString(combined) {
		return model.LocationTypeRemote
	}
	if hybridRe.MatchString(combined) {
		return model.LocationTypeHybrid
	}
	return model.LocationTypeOnsite
}
