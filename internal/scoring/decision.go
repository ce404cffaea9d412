// ABOUTME: Decision bands and horizon scenario tables for the engine
// ABOUTME: Rules-as-data so boundaries are inspectable and testable
package scoring

import "github.com/harper/caselens/internal/models"

// decisionBand maps a minimum total score to a decision and confidence.
// Bands are evaluated top-down; the first one whose Min the total reaches
// wins. Anything below the last band is Avoid/Medium.
type decisionBand struct {
	Min        int
	Decision   models.Decision
	Confidence models.Confidence
}

var decisionBands = []decisionBand{
	{Min: 4, Decision: models.DecisionBuy, Confidence: models.ConfidenceHigh},
	{Min: 2, Decision: models.DecisionBuy, Confidence: models.ConfidenceMedium},
	{Min: 0, Decision: models.DecisionHold, Confidence: models.ConfidenceMedium},
	{Min: -2, Decision: models.DecisionHold, Confidence: models.ConfidenceLow},
}

// Decide applies the decision table to a total score.
func Decide(total int) (models.Decision, models.Confidence) {
	for _, band := range decisionBands {
		if total >= band.Min {
			return band.Decision, band.Confidence
		}
	}
	return models.DecisionAvoid, models.ConfidenceMedium
}

// ScenarioNote labels horizon ranges as non-predictive wherever they are
// shown.
const ScenarioNote = "Illustrative scenario ranges only; not predictions or return guarantees."

// horizonScenarios are fixed illustrative bull/base/bear ranges per horizon.
// Display only; not derived from computation.
var horizonScenarios = map[models.Horizon]models.ScenarioRange{
	models.Horizon1W: {Bull: "+2% to +4%", Base: "-1% to +2%", Bear: "-3% to -1%"},
	models.Horizon1M: {Bull: "+5% to +10%", Base: "-2% to +5%", Bear: "-8% to -2%"},
	models.Horizon3M: {Bull: "+10% to +20%", Base: "-5% to +10%", Bear: "-15% to -5%"},
	models.Horizon6M: {Bull: "+15% to +30%", Base: "-8% to +15%", Bear: "-20% to -8%"},
}

// ScenarioFor returns the illustrative range for a horizon, defaulting to 3M
// for unknown values.
func ScenarioFor(h models.Horizon) models.ScenarioRange {
	if scenario, ok := horizonScenarios[h]; ok {
		return scenario
	}
	return horizonScenarios[models.Horizon3M]
}
