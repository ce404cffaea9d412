// ABOUTME: MCP tool handler implementations for the caselens server
// ABOUTME: Contains handler implementations with proper error handling for all 4 tools
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/caselens/internal/answer"
	"github.com/harper/caselens/internal/docs"
	"github.com/harper/caselens/internal/index"
	"github.com/harper/caselens/internal/ingest"
	"github.com/harper/caselens/internal/models"
	"github.com/harper/caselens/internal/scoring"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	store    *index.Store
	chunker  *ingest.Chunker
	provider docs.Provider
	answerer *answer.GroundedAnswerer
	engine   *scoring.Engine
}

// AskCaseDocs handles the ask_case_docs tool
func (h *Handlers) AskCaseDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	topK := request.GetInt("top_k", 0)

	ans, err := h.answerer.AnswerK(ctx, question, topK)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("answering failed: %v", err)), nil
	}

	citations := make([]string, 0, len(ans.Citations))
	for _, c := range ans.Citations {
		citations = append(citations, c.String())
	}

	response := map[string]interface{}{
		"answer":            ans.AnswerText,
		"citations":         citations,
		"not_found":         ans.NotFound,
		"generation_failed": ans.GenerationFailed,
		"excerpt_count":     len(ans.Excerpts),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetRecommendation handles the get_recommendation tool
func (h *Handlers) GetRecommendation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ticker, err := request.RequireString("ticker")
	if err != nil {
		return mcp.NewToolResultError("ticker argument is required and must be a string"), nil
	}

	req := scoring.Request{
		Ticker:      ticker,
		Horizon:     models.ParseHorizon(request.GetString("horizon", "")),
		RiskProfile: models.ParseRiskProfile(request.GetString("risk_profile", "")),
	}

	rec := h.engine.Recommend(ctx, req)

	responseJSON, err := json.Marshal(rec)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// RebuildIndex handles the rebuild_index tool
func (h *Handlers) RebuildIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	corpus, err := h.chunker.ChunkCorpus(ctx, h.provider)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading corpus failed: %v", err)), nil
	}

	skipped := make([]string, 0, len(corpus.Skipped))
	for _, ing := range corpus.Skipped {
		skipped = append(skipped, ing.Error())
	}

	if len(corpus.Chunks) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("no indexable text in corpus (skipped: %v)", skipped)), nil
	}

	snapshot, err := h.store.Rebuild(ctx, corpus.Chunks)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rebuild failed, previous index unchanged: %v", err)), nil
	}

	stats := snapshot.Stats()
	response := map[string]interface{}{
		"build_id":    stats.BuildID,
		"chunk_count": stats.ChunkCount,
		"dimension":   stats.Dimension,
		"built_at":    stats.LastBuiltAt.Format(time.RFC3339),
		"skipped":     skipped,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// IndexStats handles the index_stats tool
func (h *Handlers) IndexStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.store.Stats()
	if err != nil {
		if errors.Is(err, index.ErrEmptyIndex) {
			return mcp.NewToolResultText(`{"built":false,"chunk_count":0}`), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to read index stats: %v", err)), nil
	}

	response := map[string]interface{}{
		"built":                 true,
		"build_id":              stats.BuildID,
		"chunk_count":           stats.ChunkCount,
		"dimension":             stats.Dimension,
		"last_built_at":         stats.LastBuiltAt.Format(time.RFC3339),
		"per_file_chunk_counts": stats.PerFileChunks,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
