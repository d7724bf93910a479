package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Clear anything the environment might carry into the test.
	for _, key := range []string{
		"PORT", "GITHUB_TOKEN", "MODEL_NAME", "MODELS_ENDPOINT", "CALLSIGHT_API_KEY",
		"MAX_UPLOAD_BYTES", "CHUNK_MAX_TOKENS", "CHUNK_OVERLAP_TOKENS",
		"ANALYZE_TIMEOUT", "MAX_RETRIES", "PDF_FALLBACK_PDFTOTEXT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.ModelName != "gpt-4o" {
		t.Errorf("ModelName = %q", cfg.ModelName)
	}
	if cfg.ChunkMaxTokens != 2500 || cfg.ChunkOverlapTokens != 100 {
		t.Errorf("chunk config = %d/%d", cfg.ChunkMaxTokens, cfg.ChunkOverlapTokens)
	}
	if cfg.AnalyzeTimeout != 120*time.Second {
		t.Errorf("AnalyzeTimeout = %v", cfg.AnalyzeTimeout)
	}
	if cfg.MaxUploadBytes != 20*1024*1024 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MODEL_NAME", "gpt-4o-mini")
	t.Setenv("CHUNK_MAX_TOKENS", "1000")
	t.Setenv("ANALYZE_TIMEOUT", "30s")
	t.Setenv("PDF_FALLBACK_PDFTOTEXT", "false")

	cfg := Load()
	if cfg.Port != "9090" || cfg.ModelName != "gpt-4o-mini" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ChunkMaxTokens != 1000 {
		t.Errorf("ChunkMaxTokens = %d", cfg.ChunkMaxTokens)
	}
	if cfg.AnalyzeTimeout != 30*time.Second {
		t.Errorf("AnalyzeTimeout = %v", cfg.AnalyzeTimeout)
	}
	if cfg.PDFFallbackPdftotext {
		t.Error("PDFFallbackPdftotext should be false")
	}
}

func TestLoadClampsBadValues(t *testing.T) {
	t.Setenv("CHUNK_MAX_TOKENS", "-5")
	t.Setenv("MAX_RETRIES", "0")
	t.Setenv("MAX_UPLOAD_BYTES", "-1")

	cfg := Load()
	if cfg.ChunkMaxTokens != 2500 {
		t.Errorf("ChunkMaxTokens = %d, want clamped default", cfg.ChunkMaxTokens)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want clamped default", cfg.MaxRetries)
	}
	if cfg.MaxUploadBytes != 20*1024*1024 {
		t.Errorf("MaxUploadBytes = %d, want clamped default", cfg.MaxUploadBytes)
	}
}

func TestValidateRequiresToken(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without GITHUB_TOKEN")
	}
	cfg.GithubToken = "tok"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
