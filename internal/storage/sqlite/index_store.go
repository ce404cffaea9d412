// ABOUTME: Persisted index operations: transactional replace, load, stats
// ABOUTME: Vectors stored as float64 little-endian BLOBs keyed by chunk_id
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/harper/caselens/internal/models"
)

// IndexStore persists the embedding index. A rebuild replaces the metadata
// and vector tables in one transaction so a crash mid-write never leaves a
// partial index on disk.
type IndexStore struct {
	db *DB
}

// NewIndexStore creates an IndexStore backed by db.
func NewIndexStore(db *DB) *IndexStore {
	return &IndexStore{db: db}
}

// Replace atomically swaps the persisted index for the given records.
// records must be in insertion order; every vector must share dimension.
func (s *IndexStore) Replace(ctx context.Context, buildID string, builtAt time.Time, dimension int, records []models.EmbeddingRecord) error {
	tx, err := s.db.Conn().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning index replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{`DELETE FROM vectors`, `DELETE FROM chunks`, `DELETE FROM index_meta`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clearing prior index: %w", err)
		}
	}

	chunkStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (chunk_id, filename, page, text, token_count, position)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer func() { _ = chunkStmt.Close() }()

	vectorStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vectors (chunk_id, vector) VALUES (?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing vector insert: %w", err)
	}
	defer func() { _ = vectorStmt.Close() }()

	for position, rec := range records {
		var page sql.NullInt64
		if rec.Chunk.Page != nil {
			page = sql.NullInt64{Int64: int64(*rec.Chunk.Page), Valid: true}
		}
		if _, err := chunkStmt.ExecContext(ctx, rec.Chunk.ChunkID, rec.Chunk.Filename, page,
			rec.Chunk.Text, rec.Chunk.TokenCount, position); err != nil {
			return fmt.Errorf("inserting chunk %s: %w", rec.Chunk.ChunkID, err)
		}
		if _, err := vectorStmt.ExecContext(ctx, rec.Chunk.ChunkID, vectorToBlob(rec.Vector)); err != nil {
			return fmt.Errorf("inserting vector for %s: %w", rec.Chunk.ChunkID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO index_meta (id, build_id, dimension, chunk_count, built_at)
		VALUES (1, ?, ?, ?, ?)
	`, buildID, dimension, len(records), builtAt); err != nil {
		return fmt.Errorf("inserting index metadata: %w", err)
	}

	return tx.Commit()
}

// LoadResult is the persisted index read back in insertion order.
type LoadResult struct {
	BuildID   string
	Dimension int
	BuiltAt   time.Time
	Records   []models.EmbeddingRecord
}

// Load reads the persisted index. Returns (nil, nil) when no index has ever
// been built.
func (s *IndexStore) Load(ctx context.Context) (*LoadResult, error) {
	result := &LoadResult{}
	err := s.db.Conn().QueryRowContext(ctx, `
		SELECT build_id, dimension, built_at FROM index_meta WHERE id = 1
	`).Scan(&result.BuildID, &result.Dimension, &result.BuiltAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading index metadata: %w", err)
	}

	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT c.chunk_id, c.filename, c.page, c.text, c.token_count, v.vector
		FROM chunks c JOIN vectors v ON v.chunk_id = c.chunk_id
		ORDER BY c.position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("loading index records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			rec  models.EmbeddingRecord
			page sql.NullInt64
			blob []byte
		)
		if err := rows.Scan(&rec.Chunk.ChunkID, &rec.Chunk.Filename, &page,
			&rec.Chunk.Text, &rec.Chunk.TokenCount, &blob); err != nil {
			return nil, fmt.Errorf("scanning index record: %w", err)
		}
		if page.Valid {
			p := int(page.Int64)
			rec.Chunk.Page = &p
		}
		rec.Vector = blobToVector(blob)
		result.Records = append(result.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Stats summarizes the persisted index without loading vectors.
func (s *IndexStore) Stats(ctx context.Context) (*models.IndexStats, error) {
	stats := &models.IndexStats{PerFileChunks: map[string]int{}}
	err := s.db.Conn().QueryRowContext(ctx, `
		SELECT build_id, dimension, chunk_count, built_at FROM index_meta WHERE id = 1
	`).Scan(&stats.BuildID, &stats.Dimension, &stats.ChunkCount, &stats.LastBuiltAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading index metadata: %w", err)
	}

	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT filename, COUNT(*) FROM chunks GROUP BY filename
	`)
	if err != nil {
		return nil, fmt.Errorf("counting chunks per file: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			filename string
			count    int
		)
		if err := rows.Scan(&filename, &count); err != nil {
			return nil, err
		}
		stats.PerFileChunks[filename] = count
	}

	return stats, rows.Err()
}

// vectorToBlob converts a float64 slice to a binary blob.
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to a float64 slice.
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}
