package council

import (
	"regexp"
	"strings"
)

// Recommendation actions.
const (
	ActionBuy   = "BUY"
	ActionHold  = "HOLD"
	ActionAvoid = "AVOID"
)

var recommendationRe = regexp.MustCompile(`RECOMMENDATION:\s*\*\*(BUY|HOLD|AVOID)\*\*`)

// Recommendation is the advisor's final verdict plus the reasoning that
// preceded it.
type Recommendation struct {
	Action    string `json:"action"`
	Rationale string `json:"rationale"`
}

// ParseRecommendation extracts the closing RECOMMENDATION: **BUY/HOLD/AVOID**
// marker from the advisor's statement. When the marker is missing the whole
// statement becomes the rationale and the action defaults to HOLD.
func ParseRecommendation(content string) (Recommendation, bool) {
	matches := recommendationRe.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return Recommendation{
			Action:    ActionHold,
			Rationale: strings.TrimSpace(content),
		}, false
	}

	// The advisor closes with the marker, so the last match wins.
	m := matches[len(matches)-1]
	return Recommendation{
		Action:    content[m[2]:m[3]],
		Rationale: strings.TrimSpace(content[:m[0]]),
	}, true
}
