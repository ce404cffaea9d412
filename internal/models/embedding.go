// ABOUTME: EmbeddingRecord pairs a chunk with its vector representation
// ABOUTME: RetrievalResult is the ephemeral per-query similarity match
package models

import "time"

// EmbeddingRecord is one stored vector plus a copy of the chunk's
// provenance. All records in one index share a single dimensionality.
type EmbeddingRecord struct {
	Chunk  Chunk     `json:"chunk"`
	Vector []float64 `json:"vector"`
}

// RetrievalResult is produced per query and never persisted.
type RetrievalResult struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"` // cosine similarity in [-1, 1]
	Rank  int     `json:"rank"`  // 1-based
}

// IndexStats describes the current index for introspection.
type IndexStats struct {
	BuildID       string         `json:"build_id"`
	ChunkCount    int            `json:"chunk_count"`
	Dimension     int            `json:"dimension"`
	LastBuiltAt   time.Time      `json:"last_built_at"`
	PerFileChunks map[string]int `json:"per_file_chunk_counts"`
}
