// ABOUTME: MCP tool definitions and registration for the caselens server
// ABOUTME: Defines JSON schemas for the four document and recommendation tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/caselens/internal/answer"
	"github.com/harper/caselens/internal/docs"
	"github.com/harper/caselens/internal/index"
	"github.com/harper/caselens/internal/ingest"
	"github.com/harper/caselens/internal/scoring"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *index.Store, chunker *ingest.Chunker, provider docs.Provider, answerer *answer.GroundedAnswerer, engine *scoring.Engine) *Handlers {
	handlers := &Handlers{
		store:    store,
		chunker:  chunker,
		provider: provider,
		answerer: answerer,
		engine:   engine,
	}

	// 1. ask_case_docs - Answer a question grounded in the indexed documents
	server.AddTool(mcp.Tool{
		Name:        "ask_case_docs",
		Description: "Answer a question using only the indexed case documents. Every statement carries a (filename, page) citation; unanswerable questions return a not-found sentinel instead of a guess.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer from the case materials",
				},
				"top_k": map[string]interface{}{
					"type":        "number",
					"description": "Number of excerpts to retrieve (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskCaseDocs)

	// 2. get_recommendation - Rules-based recommendation with grounded context
	server.AddTool(mcp.Tool{
		Name:        "get_recommendation",
		Description: "Compute a transparent rules-based recommendation (Buy/Hold/Avoid) for a ticker from fundamentals, valuation, and technicals, with grounded catalyst and risk summaries from the indexed documents.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"ticker": map[string]interface{}{
					"type":        "string",
					"description": "Ticker symbol to analyze",
				},
				"horizon": map[string]interface{}{
					"type":        "string",
					"description": "Display horizon for the illustrative scenario table: 1W, 1M, 3M, or 6M (default: 3M)",
				},
				"risk_profile": map[string]interface{}{
					"type":        "string",
					"description": "Margin-of-safety strictness: Conservative, Balanced, or Aggressive (default: Balanced)",
				},
			},
			Required: []string{"ticker"},
		},
	}, handlers.GetRecommendation)

	// 3. rebuild_index - Re-chunk and re-embed the document corpus
	server.AddTool(mcp.Tool{
		Name:        "rebuild_index",
		Description: "Rebuild the document index: re-read the corpus, chunk it, embed every chunk, and atomically replace the prior index. The old index stays queryable until the new one is complete.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.RebuildIndex)

	// 4. index_stats - Summarize the live index
	server.AddTool(mcp.Tool{
		Name:        "index_stats",
		Description: "Report the live index: build ID, chunk count, embedding dimension, build time, and per-file chunk counts.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.IndexStats)

	return handlers
}
