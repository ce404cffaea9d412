// ABOUTME: Pure signal scorers over a metrics snapshot
// ABOUTME: Fundamentals, Valuation, Technicals as ordered (predicate, delta) tables
package scoring

import (
	"github.com/harper/caselens/internal/models"
)

// BasePE is the fixed base multiple the margin of safety is measured
// against.
const BasePE = 28.0

// MarginOfSafetyThresholds maps risk profile to the minimum margin-of-safety
// percentage that earns the full valuation credit.
var MarginOfSafetyThresholds = map[models.RiskProfile]float64{
	models.RiskConservative: 20,
	models.RiskBalanced:     10,
	models.RiskAggressive:   5,
}

// check is one row of a scoring table. Eval returns the delta the check
// contributes; a missing required metric skips the check (contributes 0)
// rather than failing the score.
type check struct {
	name     string
	requires []string
	eval     func(m models.MetricsSnapshot) int
}

// runChecks evaluates an ordered check table against a snapshot.
func runChecks(component models.SignalComponent, checks []check, m models.MetricsSnapshot) models.SignalScore {
	score := models.SignalScore{Component: component}
	for _, c := range checks {
		if !m.HasAll(c.requires...) {
			score.Checks = append(score.Checks, models.CheckResult{Name: c.name, Skipped: true})
			continue
		}
		delta := c.eval(m)
		score.Value += delta
		score.Checks = append(score.Checks, models.CheckResult{
			Name:   c.name,
			Passed: delta > 0,
			Delta:  delta,
		})
	}
	return score
}

var fundamentalsChecks = []check{
	{
		name:     "operating_margin_above_20pct",
		requires: []string{models.MetricOperatingMargin},
		eval: func(m models.MetricsSnapshot) int {
			if m[models.MetricOperatingMargin] > 0.20 {
				return 1
			}
			return 0
		},
	},
	{
		name:     "roe_above_15pct",
		requires: []string{models.MetricROE},
		eval: func(m models.MetricsSnapshot) int {
			if m[models.MetricROE] > 0.15 {
				return 1
			}
			return 0
		},
	},
	{
		name:     "positive_free_cash_flow",
		requires: []string{models.MetricFCF},
		eval: func(m models.MetricsSnapshot) int {
			if m[models.MetricFCF] > 0 {
				return 1
			}
			return 0
		},
	},
}

// ScoreFundamentals scores operating quality: margin, ROE, free cash flow.
// Range 0..+3; no negative checks are defined.
func ScoreFundamentals(m models.MetricsSnapshot) models.SignalScore {
	return runChecks(models.ComponentFundamentals, fundamentalsChecks, m)
}

// MarginOfSafety returns the percentage gap between the base multiple and
// the trailing P/E: (BasePE - pe) / BasePE * 100. Positive means the stock
// trades below the base multiple.
func MarginOfSafety(trailingPE float64) float64 {
	return (BasePE - trailingPE) / BasePE * 100
}

func valuationChecks(profile models.RiskProfile) []check {
	threshold, ok := MarginOfSafetyThresholds[profile]
	if !ok {
		threshold = MarginOfSafetyThresholds[models.RiskBalanced]
	}

	return []check{
		{
			name:     "margin_of_safety",
			requires: []string{models.MetricTrailingPE},
			eval: func(m models.MetricsSnapshot) int {
				mos := MarginOfSafety(m[models.MetricTrailingPE])
				switch {
				case mos >= threshold:
					return 2
				case mos >= 0:
					return 1
				default:
					return -1
				}
			},
		},
		{
			name:     "trailing_pe_band",
			requires: []string{models.MetricTrailingPE},
			eval: func(m models.MetricsSnapshot) int {
				pe := m[models.MetricTrailingPE]
				switch {
				case pe < 25:
					return 1
				case pe > 40:
					return -1
				default:
					return 0
				}
			},
		},
	}
}

// ScoreValuation scores the trailing P/E against the fixed base multiple.
// Both checks apply independently and both contribute.
func ScoreValuation(m models.MetricsSnapshot, profile models.RiskProfile) models.SignalScore {
	return runChecks(models.ComponentValuation, valuationChecks(profile), m)
}

var technicalsChecks = []check{
	{
		name:     "price_above_sma50",
		requires: []string{models.MetricPrice, models.MetricSMA50},
		eval: func(m models.MetricsSnapshot) int {
			if m[models.MetricPrice] > m[models.MetricSMA50] {
				return 1
			}
			return 0
		},
	},
	{
		name:     "price_above_sma200",
		requires: []string{models.MetricPrice, models.MetricSMA200},
		eval: func(m models.MetricsSnapshot) int {
			if m[models.MetricPrice] > m[models.MetricSMA200] {
				return 1
			}
			return 0
		},
	},
	{
		name:     "rsi_zone",
		requires: []string{models.MetricRSI},
		eval: func(m models.MetricsSnapshot) int {
			rsi := m[models.MetricRSI]
			switch {
			case rsi >= 40 && rsi <= 65:
				return 1
			case rsi >= 70:
				return -1
			default:
				return 0
			}
		},
	},
}

// ScoreTechnicals scores trend and momentum: price vs moving averages and
// the RSI zone. The RSI ranges are mutually exclusive by construction; a
// reading in neither zone contributes 0.
func ScoreTechnicals(m models.MetricsSnapshot) models.SignalScore {
	return runChecks(models.ComponentTechnicals, technicalsChecks, m)
}
