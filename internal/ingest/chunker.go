// ABOUTME: Chunker splits document pages into overlapping token windows
// ABOUTME: cl100k_base token metric, window 900, overlap 150, never spans pages
package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/harper/caselens/internal/docs"
	"github.com/harper/caselens/internal/models"
)

const (
	// Encoding matches the tokenizer of the embedding models in use.
	Encoding = "cl100k_base"

	// DefaultChunkTokens is the token window per chunk.
	DefaultChunkTokens = 900
	// DefaultOverlap is the token overlap between consecutive chunks of the
	// same page.
	DefaultOverlap = 150
)

// Tokenizer is the token metric used for windowing. The production
// implementation wraps tiktoken's cl100k_base encoding.
type Tokenizer interface {
	Encode(text string) []int
	Decode(tokens []int) string
}

type tiktokenTokenizer struct {
	enc *tiktoken.Tiktoken
}

// NewTokenizer returns the cl100k_base tokenizer.
func NewTokenizer() (Tokenizer, error) {
	enc, err := tiktoken.GetEncoding(Encoding)
	if err != nil {
		return nil, fmt.Errorf("loading %s encoding: %w", Encoding, err)
	}
	return &tiktokenTokenizer{enc: enc}, nil
}

func (t *tiktokenTokenizer) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

func (t *tiktokenTokenizer) Decode(tokens []int) string {
	return t.enc.Decode(tokens)
}

// Chunker splits documents into overlapping fixed-size token windows.
type Chunker struct {
	tokenizer Tokenizer
	window    int
	overlap   int
}

// NewChunker creates a Chunker. window and overlap fall back to the
// defaults when non-positive / negative.
func NewChunker(tokenizer Tokenizer, window, overlap int) (*Chunker, error) {
	if window <= 0 {
		window = DefaultChunkTokens
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}
	if overlap >= window {
		return nil, fmt.Errorf("overlap %d must be smaller than window %d", overlap, window)
	}
	return &Chunker{tokenizer: tokenizer, window: window, overlap: overlap}, nil
}

// ChunkDocument splits all pages of one document into chunks. Each page is
// chunked independently, so chunks never span pages. A document with no
// extractable text yields an IngestionError.
func (c *Chunker) ChunkDocument(filename string, pages []docs.Page) ([]models.Chunk, error) {
	var chunks []models.Chunk
	for _, page := range pages {
		chunks = append(chunks, c.chunkPage(filename, page)...)
	}
	if len(chunks) == 0 {
		return nil, &IngestionError{Filename: filename}
	}
	return chunks, nil
}

// chunkPage windows one page's tokens. A page shorter than the window yields
// exactly one chunk of its full length. The stride is window-overlap, so
// consecutive chunks overlap by exactly `overlap` tokens except at the final
// chunk of the page.
func (c *Chunker) chunkPage(filename string, page docs.Page) []models.Chunk {
	tokens := c.tokenizer.Encode(page.Text)
	if len(tokens) == 0 {
		return nil
	}

	stride := c.window - c.overlap
	var chunks []models.Chunk
	for start, ordinal := 0, 0; start < len(tokens); start, ordinal = start+stride, ordinal+1 {
		end := start + c.window
		if end > len(tokens) {
			end = len(tokens)
		}

		window := tokens[start:end]
		chunks = append(chunks, models.Chunk{
			ChunkID:    models.ChunkID(filename, page.Number, ordinal),
			Filename:   filename,
			Page:       page.Number,
			Text:       c.tokenizer.Decode(window),
			TokenCount: len(window),
		})

		if end == len(tokens) {
			break
		}
	}
	return chunks
}

// CorpusResult is the outcome of chunking a whole corpus. Skipped lists the
// per-document ingestion failures that were tolerated.
type CorpusResult struct {
	Chunks  []models.Chunk
	Skipped []*IngestionError
}

// ChunkCorpus reads every document from the provider and chunks it.
// Unreadable or empty documents are recorded in Skipped and do not fail the
// batch. Document order (and therefore chunk insertion order) follows the
// provider's listing.
func (c *Chunker) ChunkCorpus(ctx context.Context, provider docs.Provider) (*CorpusResult, error) {
	documents, err := provider.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}

	result := &CorpusResult{}
	for _, doc := range documents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pages, err := provider.Read(ctx, doc)
		if err != nil {
			result.Skipped = append(result.Skipped, &IngestionError{Filename: doc.Filename, Err: err})
			continue
		}

		chunks, err := c.ChunkDocument(doc.Filename, pages)
		if err != nil {
			var ingErr *IngestionError
			if errors.As(err, &ingErr) {
				result.Skipped = append(result.Skipped, ingErr)
				continue
			}
			return nil, err
		}
		result.Chunks = append(result.Chunks, chunks...)
	}

	return result, nil
}
