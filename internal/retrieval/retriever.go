// ABOUTME: Cosine-similarity retrieval over the current index snapshot
// ABOUTME: Top-k, descending score, stable insertion-order tie-break
package retrieval

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/harper/caselens/internal/index"
	"github.com/harper/caselens/internal/models"
)

// DefaultTopK is the default number of results per query.
const DefaultTopK = 5

// QueryEmbedder embeds the query text with the same capability (and
// dimensionality) the index was built with.
type QueryEmbedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// Retriever ranks stored chunks against a query. It is read-only: queries
// run against whatever snapshot is current and may run concurrently with
// each other and with rebuilds.
type Retriever struct {
	store    *index.Store
	embedder QueryEmbedder
}

// NewRetriever creates a Retriever over the given store.
func NewRetriever(store *index.Store, embedder QueryEmbedder) *Retriever {
	return &Retriever{store: store, embedder: embedder}
}

// Query returns up to k chunks ranked by descending cosine similarity to the
// query text. Ties keep corpus insertion order. Fewer than k chunks in the
// corpus yields fewer results, never padding. k <= 0 falls back to
// DefaultTopK. Returns index.ErrEmptyIndex when no index has been built.
func (r *Retriever) Query(ctx context.Context, text string, k int) ([]models.RetrievalResult, error) {
	snapshot := r.store.Current()
	if snapshot == nil || snapshot.Len() == 0 {
		return nil, index.ErrEmptyIndex
	}
	if k <= 0 {
		k = DefaultTopK
	}

	vectors, err := r.embedder.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("expected 1 query vector, got %d", len(vectors))
	}
	queryVector := vectors[0]

	return Rank(queryVector, snapshot.Records(), k), nil
}

// Rank scores records (given in insertion order) against the query vector
// and returns the top k. sort.SliceStable keeps insertion order for equal
// scores.
func Rank(queryVector []float64, records []models.EmbeddingRecord, k int) []models.RetrievalResult {
	results := make([]models.RetrievalResult, len(records))
	for i, rec := range records {
		results[i] = models.RetrievalResult{
			Chunk: rec.Chunk,
			Score: CosineSimilarity(queryVector, rec.Vector),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}

// CosineSimilarity calculates cosine similarity between two vectors.
// Defined as 0 when either vector has zero norm or lengths differ.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
