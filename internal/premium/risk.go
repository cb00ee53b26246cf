package premium

import (
	"fmt"
	"strings"
)

// RiskLevel is the categorical risk assessment of an applicant.
type RiskLevel string

// Supported risk levels.
const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskLevels lists every accepted risk level in ascending order of loading.
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh}

// Valid reports whether r is one of the known risk levels.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

func (r RiskLevel) String() string {
	return string(r)
}

// ParseRiskLevel converts user input into a RiskLevel.
// Matching ignores case and surrounding whitespace.
func ParseRiskLevel(s string) (RiskLevel, error) {
	level := RiskLevel(strings.ToLower(strings.TrimSpace(s)))
	if !level.Valid() {
		return "", fmt.Errorf("unknown risk level %q: must be one of low, medium, high", s)
	}
	return level, nil
}
