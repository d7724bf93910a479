package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Inference endpoint
	GithubToken    string
	ModelName      string
	ModelsEndpoint string

	// Auth (optional; empty disables auth)
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Chunking
	ChunkMaxTokens     int
	ChunkOverlapTokens int

	// Analyzer
	AnalyzeTimeout time.Duration
	MaxRetries     int

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8080"),

		GithubToken:    os.Getenv("GITHUB_TOKEN"),
		ModelName:      envOr("MODEL_NAME", "gpt-4o"),
		ModelsEndpoint: envOr("MODELS_ENDPOINT", "https://models.inference.ai.azure.com"),

		APIKey: os.Getenv("CALLSIGHT_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 20*1024*1024), // 20MB

		ChunkMaxTokens:     envInt("CHUNK_MAX_TOKENS", 2500),
		ChunkOverlapTokens: envInt("CHUNK_OVERLAP_TOKENS", 100),

		AnalyzeTimeout: envDuration("ANALYZE_TIMEOUT", 120*time.Second),
		MaxRetries:     envInt("MAX_RETRIES", 3),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20 * 1024 * 1024
	}
	if cfg.ChunkMaxTokens <= 0 {
		cfg.ChunkMaxTokens = 2500
	}
	if cfg.ChunkOverlapTokens < 0 {
		cfg.ChunkOverlapTokens = 100
	}
	if cfg.AnalyzeTimeout <= 0 {
		cfg.AnalyzeTimeout = 120 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}

	return cfg
}

func (c Config) Validate() error {
	if c.GithubToken == "" {
		return fmt.Errorf("GITHUB_TOKEN is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
