// ABOUTME: Chunk represents a bounded token window of a case document
// ABOUTME: Carries provenance (filename, page) and a deterministic chunk ID
package models

import "fmt"

// Chunk is an immutable slice of a document's text. Consecutive chunks from
// the same page overlap by a fixed token count; chunks never span pages.
type Chunk struct {
	ChunkID    string `json:"chunk_id"`
	Filename   string `json:"filename"`
	Page       *int   `json:"page"` // nil for plain-text documents
	Text       string `json:"text"`
	TokenCount int    `json:"token_count"`
}

// ChunkID builds the deterministic chunk identifier, unique within a corpus:
// "report.pdf::p3::c0" for paged documents, "notes.txt::c2" otherwise.
// Stable IDs keep rebuilds idempotent for an unchanged document set.
func ChunkID(filename string, page *int, ordinal int) string {
	if page != nil {
		return fmt.Sprintf("%s::p%d::c%d", filename, *page, ordinal)
	}
	return fmt.Sprintf("%s::c%d", filename, ordinal)
}

// Citation returns the chunk's provenance as a citation.
func (c Chunk) Citation() Citation {
	return Citation{Filename: c.Filename, Page: c.Page}
}
