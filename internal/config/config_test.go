// ABOUTME: Tests for environment-based configuration loading and validation
// ABOUTME: Verifies defaults, overrides, and invariant enforcement
package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("CASELENS_DATA_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ChunkTokens != 900 {
		t.Errorf("ChunkTokens = %d, want 900", cfg.ChunkTokens)
	}
	if cfg.Overlap != 150 {
		t.Errorf("Overlap = %d, want 150", cfg.Overlap)
	}
	if cfg.EmbedBatch != 100 {
		t.Errorf("EmbedBatch = %d, want 100", cfg.EmbedBatch)
	}
	if cfg.EmbedWorkers != 4 {
		t.Errorf("EmbedWorkers = %d, want 4", cfg.EmbedWorkers)
	}
	if cfg.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.TopK)
	}
	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %q, want gpt-4o-mini", cfg.ChatModel)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("CASELENS_DATA_DIR", dir)
	t.Setenv("CASELENS_CHUNK_TOKENS", "500")
	t.Setenv("CASELENS_CHUNK_OVERLAP", "50")
	t.Setenv("CASELENS_TOP_K", "8")
	t.Setenv("CASELENS_MIN_SIMILARITY", "0.25")
	t.Setenv("OPENAI_TIMEOUT", "10s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ChunkTokens != 500 || cfg.Overlap != 50 {
		t.Errorf("chunking = %d/%d, want 500/50", cfg.ChunkTokens, cfg.Overlap)
	}
	if cfg.TopK != 8 {
		t.Errorf("TopK = %d, want 8", cfg.TopK)
	}
	if cfg.MinSimilarity != 0.25 {
		t.Errorf("MinSimilarity = %v, want 0.25", cfg.MinSimilarity)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
	if cfg.DBPath() != filepath.Join(dir, "index.db") {
		t.Errorf("DBPath() = %q", cfg.DBPath())
	}
}

func TestValidate_Invariants(t *testing.T) {
	base := func() *Config {
		return &Config{
			ChunkTokens:  900,
			Overlap:      150,
			EmbedBatch:   100,
			EmbedWorkers: 4,
			MaxRetries:   3,
			TopK:         5,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"overlap >= window", func(c *Config) { c.Overlap = 900 }},
		{"negative overlap", func(c *Config) { c.Overlap = -1 }},
		{"zero chunk tokens", func(c *Config) { c.ChunkTokens = 0 }},
		{"batch above 100", func(c *Config) { c.EmbedBatch = 101 }},
		{"zero batch", func(c *Config) { c.EmbedBatch = 0 }},
		{"workers above 4", func(c *Config) { c.EmbedWorkers = 5 }},
		{"zero top-k", func(c *Config) { c.TopK = 0 }},
		{"similarity above 1", func(c *Config) { c.MinSimilarity = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should reject invalid config")
			}
		})
	}

	if err := base().Validate(); err != nil {
		t.Errorf("Validate() rejected valid config: %v", err)
	}
}
