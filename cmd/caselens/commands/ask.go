// ABOUTME: CLI command to ask a grounded question against the index
// ABOUTME: Prints the cited answer or the not-found sentinel
package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/caselens/internal/index"
)

var (
	askTopK        int
	askShowSources bool
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a question from the indexed case documents",
		Long: `Answer a question using only the indexed case documents.

Every statement in the answer carries a (filename, page) citation back
to a retrieved excerpt. When the documents cannot support an answer,
the response is "Not found in provided case materials" rather than a
guess.

Examples:
  caselens ask "What were the revenue drivers in FY2023?"
  caselens ask --top-k 8 "Summarize the litigation risks"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().IntVar(&askTopK, "top-k", 0, "Number of excerpts to retrieve (default: configured top-k)")
	cmd.Flags().BoolVar(&askShowSources, "show-excerpts", false, "Print the retrieved excerpts under the answer")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	ctx := cmd.Context()

	if _, err := a.store.Load(ctx); err != nil {
		if errors.Is(err, index.ErrEmptyIndex) {
			return fmt.Errorf("no index found; run 'caselens ingest' first")
		}
		return fmt.Errorf("loading index: %w", err)
	}

	ans, err := a.answerer.AnswerK(ctx, args[0], askTopK)
	if err != nil {
		return err
	}

	if format == "json" {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(ans)
	}

	fmt.Fprintln(cmd.OutOrStdout(), ans.AnswerText)

	if (askShowSources || verbose) && len(ans.Excerpts) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\nSources:")
		for _, res := range ans.Excerpts {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s (score %.3f): %s\n",
				res.Rank, res.Chunk.Citation(), res.Score, truncate(res.Chunk.Text, 80))
		}
	}
	return nil
}
