// ABOUTME: Recommendation merges the three signal scores and RAG answers
// ABOUTME: Recomputed on every request, never persisted
package models

// Decision is the final call of the recommendation engine.
type Decision string

const (
	DecisionBuy   Decision = "Buy"
	DecisionHold  Decision = "Hold"
	DecisionAvoid Decision = "Avoid"
)

// Confidence qualifies a decision.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// ScenarioRange is an illustrative bull/base/bear range for one horizon.
// Display only; these are fixed scenario labels, not computed predictions.
type ScenarioRange struct {
	Bull string `json:"bull"`
	Base string `json:"base"`
	Bear string `json:"bear"`
}

// Recommendation is the engine's structured result. It always exists: signal
// scorers degrade on missing data and the RAG fields fall back to sentinel
// answers, so there is no "no recommendation" state.
type Recommendation struct {
	Ticker      string         `json:"ticker"`
	Decision    Decision       `json:"decision"`
	Confidence  Confidence     `json:"confidence"`
	TotalScore  int            `json:"total_score"`
	Components  []SignalScore  `json:"component_scores"`
	Catalysts   GroundedAnswer `json:"catalysts"`
	Risks       GroundedAnswer `json:"risks"`
	Horizon     Horizon        `json:"horizon"`
	RiskProfile RiskProfile    `json:"risk_profile"`
	Scenario    ScenarioRange  `json:"scenario"`
	// ScenarioNote labels the scenario range as non-predictive.
	ScenarioNote string `json:"scenario_note"`
	// DataComplete is false when any scoring check was skipped for missing
	// market data, so a degraded 0 is distinguishable from a neutral 0.
	DataComplete bool `json:"data_complete"`
}
