// ABOUTME: Main entry point for CaseLens MCP server with stdio transport
// ABOUTME: Wires the index, answerer, and scoring engine into MCP tools
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/caselens/internal/answer"
	"github.com/harper/caselens/internal/config"
	"github.com/harper/caselens/internal/docs"
	"github.com/harper/caselens/internal/index"
	"github.com/harper/caselens/internal/ingest"
	"github.com/harper/caselens/internal/llm"
	"github.com/harper/caselens/internal/marketdata"
	"github.com/harper/caselens/internal/mcp"
	"github.com/harper/caselens/internal/retrieval"
	"github.com/harper/caselens/internal/scoring"
	"github.com/harper/caselens/internal/storage/sqlite"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - embeddings and grounded answers will not work")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client, err := llm.NewClient(llm.ConfigFromApp(cfg))
	if err != nil {
		log.Fatalf("Failed to initialize OpenAI client: %v", err)
	}

	db, err := sqlite.Open(cfg.DBPath())
	if err != nil {
		log.Fatalf("Failed to open index database: %v", err)
	}
	defer db.Close()

	tokenizer, err := ingest.NewTokenizer()
	if err != nil {
		log.Fatalf("Failed to load tokenizer: %v", err)
	}
	chunker, err := ingest.NewChunker(tokenizer, cfg.ChunkTokens, cfg.Overlap)
	if err != nil {
		log.Fatalf("Failed to configure chunker: %v", err)
	}

	store := index.NewStore(client, sqlite.NewIndexStore(db),
		index.WithBatchSize(cfg.EmbedBatch), index.WithWorkers(cfg.EmbedWorkers))
	if _, err := store.Load(context.Background()); err != nil && !errors.Is(err, index.ErrEmptyIndex) {
		log.Fatalf("Failed to load index: %v", err)
	}

	retriever := retrieval.NewRetriever(store, client)
	answerer := answer.NewGroundedAnswerer(retriever, client, answer.Config{
		TopK:          cfg.TopK,
		MinSimilarity: cfg.MinSimilarity,
	})
	engine := scoring.NewEngine(marketdata.NewFileProvider(cfg.MarketDir), answerer)

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"CaseLens",
		"0.1.0",
	)

	// Register MCP tools
	mcp.RegisterTools(server, store, chunker, docs.NewFSProvider(cfg.DocsDir), answerer, engine)

	// Start server with stdio transport
	log.Println("CaseLens MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
