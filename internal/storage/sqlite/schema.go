// ABOUTME: SQLite schema for the persisted embedding index
// ABOUTME: Chunk metadata and vector tables, replaced together atomically
package sqlite

// Schema contains all SQL statements for database initialization.
const Schema = `
-- Index metadata singleton: one row describing the current build
CREATE TABLE IF NOT EXISTS index_meta (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    build_id TEXT NOT NULL,
    dimension INTEGER NOT NULL,
    chunk_count INTEGER NOT NULL,
    built_at DATETIME NOT NULL
);

-- Chunk metadata table: provenance and text, keyed by chunk_id.
-- position preserves corpus insertion order for stable tie-breaking.
CREATE TABLE IF NOT EXISTS chunks (
    chunk_id TEXT PRIMARY KEY,
    filename TEXT NOT NULL,
    page INTEGER,
    text TEXT NOT NULL,
    token_count INTEGER NOT NULL,
    position INTEGER NOT NULL UNIQUE
);

-- Vector table: one embedding per chunk, float64 little-endian BLOB
CREATE TABLE IF NOT EXISTS vectors (
    chunk_id TEXT PRIMARY KEY REFERENCES chunks(chunk_id) ON DELETE CASCADE,
    vector BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chunks_filename ON chunks(filename);
`

// SchemaVersion is the current schema version for migrations.
const SchemaVersion = 1
