// ABOUTME: EmbeddingStore builds, persists, and publishes index snapshots
// ABOUTME: Batched embedding with bounded concurrency and an atomic swap
package index

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/harper/caselens/internal/models"
	"github.com/harper/caselens/internal/storage/sqlite"
)

const (
	// DefaultBatchSize bounds the number of chunk texts per embedding call.
	DefaultBatchSize = 100
	// DefaultWorkers bounds how many batches are in flight at once, to
	// respect the embedding provider's rate limits.
	DefaultWorkers = 4
)

// Embedder is the embedding capability. One call embeds up to a full batch;
// every vector within one index build shares a single dimensionality.
// Implementations retry transient failures internally.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// Store owns the current index snapshot. Rebuilds produce a new snapshot
// and publish it with a single atomic pointer store; queries read whatever
// snapshot is current and never block on a rebuild.
type Store struct {
	embedder  Embedder
	persister *sqlite.IndexStore
	batchSize int
	workers   int

	current atomic.Pointer[Snapshot]
}

// Option configures a Store.
type Option func(*Store)

// WithBatchSize overrides the embedding batch size (1-100).
func WithBatchSize(n int) Option {
	return func(s *Store) {
		if n > 0 && n <= DefaultBatchSize {
			s.batchSize = n
		}
	}
}

// WithWorkers overrides the number of concurrent embedding batches (1-4).
func WithWorkers(n int) Option {
	return func(s *Store) {
		if n > 0 && n <= DefaultWorkers {
			s.workers = n
		}
	}
}

// NewStore creates a Store. persister may be nil for purely in-memory use
// (tests); then Load is a no-op and rebuilds skip persistence.
func NewStore(embedder Embedder, persister *sqlite.IndexStore, opts ...Option) *Store {
	s := &Store{
		embedder:  embedder,
		persister: persister,
		batchSize: DefaultBatchSize,
		workers:   DefaultWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the live snapshot, or nil when no index has been built or
// loaded.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Rebuild embeds every chunk and atomically replaces the prior index. The
// old snapshot stays queryable until the new one is fully built and
// persisted; on any failure (including ctx cancellation) the live index is
// untouched and the error reports the failing batch.
func (s *Store) Rebuild(ctx context.Context, chunks []models.Chunk) (*Snapshot, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("rebuild requires at least one chunk")
	}

	batches := batchChunks(chunks, s.batchSize)
	vectors := make([][][]float64, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, batch := range batches {
		g.Go(func() error {
			texts := make([]string, len(batch))
			for j, chunk := range batch {
				texts[j] = chunk.Text
			}
			vecs, err := s.embedder.EmbedBatch(gctx, texts)
			if err != nil {
				return &EmbeddingError{Batch: i, Err: err}
			}
			if len(vecs) != len(batch) {
				return &EmbeddingError{Batch: i, Err: fmt.Errorf("expected %d vectors, got %d", len(batch), len(vecs))}
			}
			vectors[i] = vecs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]models.EmbeddingRecord, 0, len(chunks))
	dimension := 0
	for i, batch := range batches {
		for j, chunk := range batch {
			vec := vectors[i][j]
			if dimension == 0 {
				dimension = len(vec)
			} else if len(vec) != dimension {
				return nil, &EmbeddingError{Batch: i, Err: fmt.Errorf("dimension mismatch: %d != %d", len(vec), dimension)}
			}
			records = append(records, models.EmbeddingRecord{Chunk: chunk, Vector: vec})
		}
	}

	snapshot := NewSnapshot(uuid.New().String(), time.Now(), dimension, records)

	if s.persister != nil {
		if err := s.persister.Replace(ctx, snapshot.BuildID(), snapshot.BuiltAt(), dimension, records); err != nil {
			return nil, fmt.Errorf("persisting index: %w", err)
		}
	}

	// Single atomic publication; readers see the old or the new index,
	// never a mix.
	s.current.Store(snapshot)
	return snapshot, nil
}

// Load restores the snapshot from the persisted index without recomputing
// embeddings. Returns ErrEmptyIndex when nothing was ever persisted.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	if s.persister == nil {
		return nil, ErrEmptyIndex
	}

	loaded, err := s.persister.Load(ctx)
	if err != nil {
		return nil, err
	}
	if loaded == nil {
		return nil, ErrEmptyIndex
	}

	snapshot := NewSnapshot(loaded.BuildID, loaded.BuiltAt, loaded.Dimension, loaded.Records)
	s.current.Store(snapshot)
	return snapshot, nil
}

// Stats summarizes the live snapshot. ErrEmptyIndex when none exists.
func (s *Store) Stats() (models.IndexStats, error) {
	snapshot := s.current.Load()
	if snapshot == nil {
		return models.IndexStats{}, ErrEmptyIndex
	}
	return snapshot.Stats(), nil
}

// batchChunks splits chunks into groups of at most size, preserving order.
func batchChunks(chunks []models.Chunk, size int) [][]models.Chunk {
	var batches [][]models.Chunk
	for start := 0; start < len(chunks); start += size {
		end := start + size
		if end > len(chunks) {
			end = len(chunks)
		}
		batches = append(batches, chunks[start:end])
	}
	return batches
}
