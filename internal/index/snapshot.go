// ABOUTME: Snapshot is one immutable, fully-built version of the index
// ABOUTME: Published via a single atomic pointer swap, never mutated in place
package index

import (
	"time"

	"github.com/harper/caselens/internal/models"
)

// Snapshot holds every embedding record of one index build in corpus
// insertion order. Readers share snapshots freely; a rebuild produces a new
// one and swaps the store's pointer.
type Snapshot struct {
	buildID   string
	builtAt   time.Time
	dimension int
	records   []models.EmbeddingRecord
}

// NewSnapshot creates a snapshot over records in insertion order.
func NewSnapshot(buildID string, builtAt time.Time, dimension int, records []models.EmbeddingRecord) *Snapshot {
	return &Snapshot{
		buildID:   buildID,
		builtAt:   builtAt,
		dimension: dimension,
		records:   records,
	}
}

// Records returns the embedding records in insertion order. Callers must not
// modify them.
func (s *Snapshot) Records() []models.EmbeddingRecord {
	return s.records
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// Dimension returns the shared vector dimensionality of this build.
func (s *Snapshot) Dimension() int {
	return s.dimension
}

// BuildID returns the unique identifier of this build.
func (s *Snapshot) BuildID() string {
	return s.buildID
}

// BuiltAt returns when this snapshot finished building.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}

// Stats summarizes the snapshot for introspection.
func (s *Snapshot) Stats() models.IndexStats {
	perFile := make(map[string]int)
	for _, rec := range s.records {
		perFile[rec.Chunk.Filename]++
	}
	return models.IndexStats{
		BuildID:       s.buildID,
		ChunkCount:    len(s.records),
		Dimension:     s.dimension,
		LastBuiltAt:   s.builtAt,
		PerFileChunks: perFile,
	}
}
