// ABOUTME: CLI command to compute a rules-based recommendation for a ticker
// ABOUTME: Prints the score breakdown, grounded context, and scenario table
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/caselens/internal/index"
	"github.com/harper/caselens/internal/models"
	"github.com/harper/caselens/internal/scoring"
)

var (
	recommendHorizon string
	recommendRisk    string
)

// NewRecommendCmd creates the recommend command
func NewRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend [ticker]",
		Short: "Compute a rules-based recommendation for a ticker",
		Long: `Compute a transparent rules-based recommendation for a ticker.

Scores fundamentals, valuation, and technicals from the metrics
snapshot in the market directory (CASELENS_MARKET_DIR), sums them into
a Buy/Hold/Avoid decision, and attaches catalyst and risk summaries
grounded in the indexed case documents. Missing metrics degrade the
score instead of failing; missing documents degrade the summaries to
the not-found sentinel.

Examples:
  caselens recommend MA
  caselens recommend MA --horizon 6M --risk-profile Conservative`,
		Args: cobra.ExactArgs(1),
		RunE: runRecommend,
	}

	cmd.Flags().StringVar(&recommendHorizon, "horizon", "3M", "Scenario horizon: 1W, 1M, 3M, or 6M")
	cmd.Flags().StringVar(&recommendRisk, "risk-profile", "Balanced", "Margin-of-safety strictness: Conservative, Balanced, or Aggressive")

	return cmd
}

func runRecommend(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	ctx := cmd.Context()

	// The grounded catalyst/risk queries are best-effort, so a missing
	// index is tolerated here.
	if _, err := a.store.Load(ctx); err != nil && !errors.Is(err, index.ErrEmptyIndex) {
		return fmt.Errorf("loading index: %w", err)
	}

	rec := a.engine.Recommend(ctx, scoring.Request{
		Ticker:      strings.ToUpper(args[0]),
		Horizon:     models.ParseHorizon(recommendHorizon),
		RiskProfile: models.ParseRiskProfile(recommendRisk),
	})

	if format == "json" {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(rec)
	}

	printRecommendation(cmd, rec)
	return nil
}

func printRecommendation(cmd *cobra.Command, rec *models.Recommendation) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s: %s (%s confidence, total score %+d)\n",
		rec.Ticker, rec.Decision, rec.Confidence, rec.TotalScore)
	if !rec.DataComplete {
		fmt.Fprintln(out, "Note: some market metrics were unavailable; skipped checks scored 0.")
	}

	for _, component := range rec.Components {
		fmt.Fprintf(out, "\n%s: %+d\n", component.Component, component.Value)
		for _, check := range component.Checks {
			switch {
			case check.Skipped:
				fmt.Fprintf(out, "  - %s: skipped (metric missing)\n", check.Name)
			case check.Passed:
				fmt.Fprintf(out, "  ✓ %s: %+d\n", check.Name, check.Delta)
			default:
				fmt.Fprintf(out, "  ✗ %s: %+d\n", check.Name, check.Delta)
			}
		}
	}

	fmt.Fprintln(out, "\nCatalysts:")
	fmt.Fprintln(out, indent(rec.Catalysts.AnswerText, "  "))
	fmt.Fprintln(out, "\nRisks:")
	fmt.Fprintln(out, indent(rec.Risks.AnswerText, "  "))

	fmt.Fprintf(out, "\nScenario (%s horizon, %s profile):\n", rec.Horizon, rec.RiskProfile)
	fmt.Fprintf(out, "  Bull: %s\n", rec.Scenario.Bull)
	fmt.Fprintf(out, "  Base: %s\n", rec.Scenario.Base)
	fmt.Fprintf(out, "  Bear: %s\n", rec.Scenario.Bear)
	fmt.Fprintf(out, "  %s\n", rec.ScenarioNote)
}
