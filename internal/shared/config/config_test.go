package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "ENV", "CORS_ALLOW_ORIGINS", "DATABASE_URL", "RATE_LIMIT_RPS", "RECOMMEND_SEED", "UPLOAD_MAX_BYTES"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected dev env, got %q", cfg.Env)
	}
	if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 10 {
		t.Fatalf("unexpected rate limit defaults: %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.UploadMaxBytes != 5<<20 {
		t.Fatalf("unexpected upload limit: %d", cfg.UploadMaxBytes)
	}
	if len(cfg.CORSAllowOrigin) != 1 || cfg.CORSAllowOrigin[0] != "http://localhost:5173" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", "PROD")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("RECOMMEND_SEED", "42")
	t.Setenv("RATE_LIMIT_RPS", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production, got %q", cfg.Env)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "https://b.example" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowOrigin)
	}
	if cfg.RecommendSeed != 42 {
		t.Fatalf("unexpected seed: %d", cfg.RecommendSeed)
	}
	if cfg.RateLimitRPS != 0.5 {
		t.Fatalf("unexpected rps: %v", cfg.RateLimitRPS)
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9090\nLOG_FILE=triage.log\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("PORT", "7070")
	t.Setenv("LOG_FILE", "")
	os.Unsetenv("LOG_FILE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("LOG_FILE") })
	if cfg.Port != "7070" {
		t.Fatalf("expected real env to win, got %q", cfg.Port)
	}
	if cfg.LogFile != "triage.log" {
		t.Fatalf("expected LOG_FILE from .env, got %q", cfg.LogFile)
	}
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RATE_LIMIT_BURST", "lots")

	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}
