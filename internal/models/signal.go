// ABOUTME: SignalScore is one component's rules-based score with its checks
// ABOUTME: Defines the component, risk profile, and horizon enumerations
package models

import "strings"

// SignalComponent identifies one of the three scoring components.
type SignalComponent string

const (
	ComponentFundamentals SignalComponent = "Fundamentals"
	ComponentValuation    SignalComponent = "Valuation"
	ComponentTechnicals   SignalComponent = "Technicals"
)

// RiskProfile selects the margin-of-safety threshold for valuation.
type RiskProfile string

const (
	RiskConservative RiskProfile = "Conservative"
	RiskBalanced     RiskProfile = "Balanced"
	RiskAggressive   RiskProfile = "Aggressive"
)

// ParseRiskProfile maps user input to a RiskProfile, defaulting to Balanced
// for empty or unrecognized values.
func ParseRiskProfile(s string) RiskProfile {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "conservative":
		return RiskConservative
	case "aggressive":
		return RiskAggressive
	default:
		return RiskBalanced
	}
}

// Horizon selects an illustrative scenario range for display only.
type Horizon string

const (
	Horizon1W Horizon = "1W"
	Horizon1M Horizon = "1M"
	Horizon3M Horizon = "3M"
	Horizon6M Horizon = "6M"
)

// ParseHorizon maps user input to a Horizon, defaulting to 3M for empty or
// unrecognized values.
func ParseHorizon(s string) Horizon {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "1W":
		return Horizon1W
	case "1M":
		return Horizon1M
	case "6M":
		return Horizon6M
	default:
		return Horizon3M
	}
}

// CheckResult records one (check_name, passed, delta) evaluation. Skipped is
// set when a required metric was missing; a skipped check contributes 0.
type CheckResult struct {
	Name    string `json:"check_name"`
	Passed  bool   `json:"passed"`
	Delta   int    `json:"delta"`
	Skipped bool   `json:"skipped,omitempty"`
}

// SignalScore is the output of one pure scoring function.
type SignalScore struct {
	Component SignalComponent `json:"component"`
	Value     int             `json:"value"`
	Checks    []CheckResult   `json:"contributing_checks"`
}

// Complete reports whether every check could be evaluated.
func (s SignalScore) Complete() bool {
	for _, c := range s.Checks {
		if c.Skipped {
			return false
		}
	}
	return true
}
