package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 5000 {
		t.Fatalf("expected default port 5000, got %d", cfg.Port)
	}
	if cfg.SearchProvider != "newsdata" {
		t.Fatalf("unexpected search provider %q", cfg.SearchProvider)
	}
	if cfg.SearchCategory != "business, top" {
		t.Fatalf("unexpected search category %q", cfg.SearchCategory)
	}
	if cfg.ScrapeTimeout != 10*time.Second || cfg.ScrapeMetaTimeout != 5*time.Second {
		t.Fatalf("unexpected scrape timeouts %v / %v", cfg.ScrapeTimeout, cfg.ScrapeMetaTimeout)
	}
	if cfg.MinArticleChars != 100 || cfg.MaxArticleChars != 8000 {
		t.Fatalf("unexpected article limits %d / %d", cfg.MinArticleChars, cfg.MaxArticleChars)
	}
	if got := cfg.AllowedOrigins(); len(got) != 1 || got[0] != "*" {
		t.Fatalf("unexpected origins %v", got)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("PORT", "8081")
	t.Setenv("SEARCH_PROVIDER", " Tavily ")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != ":8081" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
	if cfg.SearchProvider != "tavily" {
		t.Fatalf("expected normalized provider, got %q", cfg.SearchProvider)
	}
	origins := cfg.AllowedOrigins()
	if len(origins) != 2 || origins[1] != "https://app.example.com" {
		t.Fatalf("unexpected origins %v", origins)
	}
}

func TestLoadRequiresGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when gemini key missing")
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("SEARCH_TIMEOUT_SECONDS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero search timeout")
	}
}

func TestRedactedMasksSecrets(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "super-secret")
	t.Setenv("NEWSDATA_API_KEY", "nd-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	red := cfg.Redacted()
	if red["gemini_api_key"] != "***" || red["newsdata_api_key"] != "***" {
		t.Fatalf("secrets not masked: %v", red)
	}
	if red["llm_model"] != cfg.LLMModel {
		t.Fatalf("non-secret fields must be kept: %v", red)
	}
}
