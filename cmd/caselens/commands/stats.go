// ABOUTME: CLI command to display index statistics
// ABOUTME: Shows build ID, chunk counts per file, dimension, and build time
package commands

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/caselens/internal/config"
	"github.com/harper/caselens/internal/storage/sqlite"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show index statistics",
		Long: `Show statistics for the persisted document index: build ID,
embedding dimension, chunk count, build time, and per-file chunk
counts.`,
		Args: cobra.NoArgs,
		RunE: runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	// Stats only reads the database; no OpenAI client is needed.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	db, err := sqlite.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening index database: %w", err)
	}
	defer func() { _ = db.Close() }()

	stats, err := sqlite.NewIndexStore(db).Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading index stats: %w", err)
	}
	if stats == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No index built yet. Run 'caselens ingest' first.")
		return nil
	}

	if format == "json" {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(stats)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Build:      %s\n", stats.BuildID)
	fmt.Fprintf(out, "Built:      %s\n", formatTime(stats.LastBuiltAt))
	fmt.Fprintf(out, "Chunks:     %d\n", stats.ChunkCount)
	fmt.Fprintf(out, "Dimension:  %d\n", stats.Dimension)

	if len(stats.PerFileChunks) > 0 {
		fmt.Fprintln(out, "Files:")
		files := make([]string, 0, len(stats.PerFileChunks))
		for f := range stats.PerFileChunks {
			files = append(files, f)
		}
		sort.Strings(files)
		for _, f := range files {
			fmt.Fprintf(out, "  %-40s %d\n", truncate(f, 40), stats.PerFileChunks[f])
		}
	}
	return nil
}
