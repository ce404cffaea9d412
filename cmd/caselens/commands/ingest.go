// ABOUTME: CLI command to build or rebuild the document index
// ABOUTME: Chunks the corpus, embeds it, and atomically replaces the index
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Build the document index from the corpus directory",
		Long: `Build the document index from the corpus directory.

Reads every .pdf, .txt, and .md file under the docs directory
(CASELENS_DOCS_DIR), splits each page into overlapping token windows,
embeds the chunks in batches, and replaces the previous index in one
atomic step. Queries against the old index keep working until the new
one is complete; a failed build leaves the old index untouched.

Examples:
  caselens ingest
  CASELENS_DOCS_DIR=./cases caselens ingest`,
		Args: cobra.NoArgs,
		RunE: runIngest,
	}

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	ctx := cmd.Context()

	corpus, err := a.chunker.ChunkCorpus(ctx, a.provider)
	if err != nil {
		return fmt.Errorf("reading corpus from %s: %w", a.cfg.DocsDir, err)
	}

	for _, skipped := range corpus.Skipped {
		if !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: skipped %s\n", skipped.Error())
		}
	}

	if len(corpus.Chunks) == 0 {
		return fmt.Errorf("no indexable text found in %s", a.cfg.DocsDir)
	}

	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "Embedding %d chunks in batches of %d...\n",
			len(corpus.Chunks), a.cfg.EmbedBatch)
	}

	snapshot, err := a.store.Rebuild(ctx, corpus.Chunks)
	if err != nil {
		return fmt.Errorf("building index (previous index unchanged): %w", err)
	}

	stats := snapshot.Stats()

	if format == "json" {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(stats)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Indexed %d chunks from %d files (dimension %d, build %s)\n",
			stats.ChunkCount, len(stats.PerFileChunks), stats.Dimension, truncate(stats.BuildID, 11))
	}
	return nil
}
