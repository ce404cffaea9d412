// ABOUTME: Shared pipeline wiring and formatting helpers for CLI commands
// ABOUTME: Consolidates config loading and component assembly across commands
package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/harper/caselens/internal/answer"
	"github.com/harper/caselens/internal/config"
	"github.com/harper/caselens/internal/docs"
	"github.com/harper/caselens/internal/index"
	"github.com/harper/caselens/internal/ingest"
	"github.com/harper/caselens/internal/llm"
	"github.com/harper/caselens/internal/marketdata"
	"github.com/harper/caselens/internal/retrieval"
	"github.com/harper/caselens/internal/scoring"
	"github.com/harper/caselens/internal/storage/sqlite"
)

// app is the assembled pipeline shared by the CLI commands. Close releases
// the database once the command is done.
type app struct {
	cfg      *config.Config
	db       *sqlite.DB
	store    *index.Store
	chunker  *ingest.Chunker
	provider docs.Provider
	answerer *answer.GroundedAnswerer
	engine   *scoring.Engine
}

// newApp loads configuration and wires the full pipeline. The OpenAI key is
// required because every command here either embeds or generates.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	client, err := llm.NewClient(llm.ConfigFromApp(cfg))
	if err != nil {
		return nil, err
	}

	db, err := sqlite.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}

	tokenizer, err := ingest.NewTokenizer()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	chunker, err := ingest.NewChunker(tokenizer, cfg.ChunkTokens, cfg.Overlap)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := index.NewStore(client, sqlite.NewIndexStore(db),
		index.WithBatchSize(cfg.EmbedBatch), index.WithWorkers(cfg.EmbedWorkers))

	retriever := retrieval.NewRetriever(store, client)
	answerer := answer.NewGroundedAnswerer(retriever, client, answer.Config{
		TopK:          cfg.TopK,
		MinSimilarity: cfg.MinSimilarity,
	})
	engine := scoring.NewEngine(marketdata.NewFileProvider(cfg.MarketDir), answerer)

	return &app{
		cfg:      cfg,
		db:       db,
		store:    store,
		chunker:  chunker,
		provider: docs.NewFSProvider(cfg.DocsDir),
		answerer: answerer,
		engine:   engine,
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}

// indent prefixes every line of s for nested display
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
