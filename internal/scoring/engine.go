// ABOUTME: Recommendation engine merging signal scores with grounded answers
// ABOUTME: Best-effort everywhere: degraded inputs never block a result
package scoring

import (
	"context"
	"fmt"
	"log"

	"github.com/harper/caselens/internal/models"
)

// Fixed query templates for the two grounded invocations.
const (
	catalystsQueryTemplate = "What are the key growth catalysts for %s?"
	risksQueryTemplate     = "What are the key risks for %s?"
)

// Answerer is the grounded answering capability the engine consumes.
type Answerer interface {
	Answer(ctx context.Context, query string) (*models.GroundedAnswer, error)
}

// MarketData supplies the flat metrics snapshot for a ticker.
type MarketData interface {
	Snapshot(ctx context.Context, ticker string) (models.MetricsSnapshot, error)
}

// Engine combines the three signal scores and two grounded answers into a
// recommendation. It never fails outright: missing market data degrades the
// scorers and an absent index degrades the RAG fields to sentinels.
type Engine struct {
	market   MarketData
	answerer Answerer
}

// NewEngine creates a recommendation engine.
func NewEngine(market MarketData, answerer Answerer) *Engine {
	return &Engine{market: market, answerer: answerer}
}

// Request identifies what to recommend on.
type Request struct {
	Ticker      string
	Horizon     models.Horizon
	RiskProfile models.RiskProfile
}

// Recommend computes a recommendation for the request. The returned result
// is always structured and complete; degraded fields carry sentinel values.
func (e *Engine) Recommend(ctx context.Context, req Request) *models.Recommendation {
	metrics := e.fetchMetrics(ctx, req.Ticker)

	fundamentals := ScoreFundamentals(metrics)
	valuation := ScoreValuation(metrics, req.RiskProfile)
	technicals := ScoreTechnicals(metrics)

	total := fundamentals.Value + valuation.Value + technicals.Value
	decision, confidence := Decide(total)

	return &models.Recommendation{
		Ticker:       req.Ticker,
		Decision:     decision,
		Confidence:   confidence,
		TotalScore:   total,
		Components:   []models.SignalScore{fundamentals, valuation, technicals},
		Catalysts:    e.groundedAnswer(ctx, fmt.Sprintf(catalystsQueryTemplate, req.Ticker)),
		Risks:        e.groundedAnswer(ctx, fmt.Sprintf(risksQueryTemplate, req.Ticker)),
		Horizon:      req.Horizon,
		RiskProfile:  req.RiskProfile,
		Scenario:     ScenarioFor(req.Horizon),
		ScenarioNote: ScenarioNote,
		DataComplete: fundamentals.Complete() && valuation.Complete() && technicals.Complete(),
	}
}

// fetchMetrics returns the ticker's snapshot, or an empty one when the
// provider fails; every check then reports skipped rather than erroring.
func (e *Engine) fetchMetrics(ctx context.Context, ticker string) models.MetricsSnapshot {
	if e.market == nil {
		return models.MetricsSnapshot{}
	}
	metrics, err := e.market.Snapshot(ctx, ticker)
	if err != nil {
		log.Printf("Warning: market data unavailable for %s: %v", ticker, err)
		return models.MetricsSnapshot{}
	}
	return metrics
}

// groundedAnswer runs one best-effort grounded query. Any failure collapses
// to the not-found sentinel so the recommendation itself never fails.
func (e *Engine) groundedAnswer(ctx context.Context, query string) models.GroundedAnswer {
	if e.answerer == nil {
		return notFoundAnswer()
	}
	ans, err := e.answerer.Answer(ctx, query)
	if err != nil || ans == nil {
		if err != nil {
			log.Printf("Warning: grounded answer failed for %q: %v", query, err)
		}
		return notFoundAnswer()
	}
	return *ans
}

func notFoundAnswer() models.GroundedAnswer {
	return models.GroundedAnswer{
		AnswerText: models.NotFoundSentinel,
		Citations:  []models.Citation{},
		NotFound:   true,
	}
}
