// ABOUTME: Centralized configuration for the CaseLens pipeline
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration for the RAG pipeline and scoring engine.
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Corpus and index settings
	DataDir      string // root for the index database
	DocsDir      string // raw case documents
	MarketDir    string // per-ticker metrics snapshots
	ChunkTokens  int
	Overlap      int
	EmbedBatch   int
	EmbedWorkers int

	// Retrieval settings
	TopK          int
	MinSimilarity float64
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	dataDir := getEnv("CASELENS_DATA_DIR", DefaultDataDir())

	cfg := &Config{
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		ChatModel:      getEnv("CASELENS_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnv("CASELENS_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:        getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),

		DataDir:      dataDir,
		DocsDir:      getEnv("CASELENS_DOCS_DIR", filepath.Join(dataDir, "raw")),
		MarketDir:    getEnv("CASELENS_MARKET_DIR", filepath.Join(dataDir, "market")),
		ChunkTokens:  getEnvInt("CASELENS_CHUNK_TOKENS", 900),
		Overlap:      getEnvInt("CASELENS_CHUNK_OVERLAP", 150),
		EmbedBatch:   getEnvInt("CASELENS_EMBED_BATCH", 100),
		EmbedWorkers: getEnvInt("CASELENS_EMBED_WORKERS", 4),

		TopK:          getEnvInt("CASELENS_TOP_K", 5),
		MinSimilarity: getEnvFloat("CASELENS_MIN_SIMILARITY", 0),
	}

	return cfg, cfg.Validate()
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.ChunkTokens <= 0 {
		return fmt.Errorf("CASELENS_CHUNK_TOKENS must be positive, got %d", c.ChunkTokens)
	}
	if c.Overlap < 0 || c.Overlap >= c.ChunkTokens {
		return fmt.Errorf("CASELENS_CHUNK_OVERLAP must be in [0, %d), got %d", c.ChunkTokens, c.Overlap)
	}
	if c.EmbedBatch <= 0 || c.EmbedBatch > 100 {
		return fmt.Errorf("CASELENS_EMBED_BATCH must be 1-100, got %d", c.EmbedBatch)
	}
	if c.EmbedWorkers <= 0 || c.EmbedWorkers > 4 {
		return fmt.Errorf("CASELENS_EMBED_WORKERS must be 1-4, got %d", c.EmbedWorkers)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("CASELENS_TOP_K must be positive, got %d", c.TopK)
	}
	if c.MinSimilarity < -1 || c.MinSimilarity > 1 {
		return fmt.Errorf("CASELENS_MIN_SIMILARITY must be in [-1, 1], got %f", c.MinSimilarity)
	}
	return nil
}

// DefaultDataDir returns the default data directory following the XDG spec.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".local/share/caselens"
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "caselens")
}

// DBPath returns the SQLite index database path under DataDir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "index.db")
}

// Helper functions

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
