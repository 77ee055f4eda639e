package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWithoutFiles(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.AI.Generative.Model != "gemini-pro" {
		t.Fatalf("expected default model gemini-pro, got %s", cfg.AI.Generative.Model)
	}
	if cfg.AI.Generative.Timeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %s", cfg.AI.Generative.Timeout)
	}
	if cfg.Server.HTTP.Port != 8080 {
		t.Fatalf("expected port 8080, got %d", cfg.Server.HTTP.Port)
	}
	if cfg.Cache.Redis.Enabled {
		t.Fatalf("redis should be disabled by default")
	}
}

func TestEnvOverridesAPIKeys(t *testing.T) {
	t.Setenv("AI_GENERATIVE_API_KEY", "gen-key")
	t.Setenv("AI_GEOCODING_API_KEY", "geo-key")
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.AI.Generative.APIKey != "gen-key" {
		t.Fatalf("expected generative key from env, got %q", cfg.AI.Generative.APIKey)
	}
	if cfg.AI.Geocoding.APIKey != "geo-key" {
		t.Fatalf("expected geocoding key from env, got %q", cfg.AI.Geocoding.APIKey)
	}
}

func TestConfigFileWithPlaceholders(t *testing.T) {
	dir := t.TempDir()
	content := `
ai:
  generative:
    model: ${FINPIN_TEST_MODEL:gemini-1.5-flash}
    api_key: ${FINPIN_TEST_KEY}
server:
  http:
    port: 9090
features:
  seed_demo_trip: true
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FINPIN_TEST_KEY", "from-placeholder")

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.AI.Generative.Model != "gemini-1.5-flash" {
		t.Fatalf("expected placeholder default, got %s", cfg.AI.Generative.Model)
	}
	if cfg.AI.Generative.APIKey != "from-placeholder" {
		t.Fatalf("expected placeholder env value, got %s", cfg.AI.Generative.APIKey)
	}
	if cfg.Server.HTTP.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.HTTP.Port)
	}
	if !cfg.Features.SeedDemoTrip {
		t.Fatalf("expected seed_demo_trip enabled")
	}
}

func TestEnvSpecificFileOverridesBase(t *testing.T) {
	dir := t.TempDir()
	base := "observability:\n  logging:\n    level: info\n"
	staging := "observability:\n  logging:\n    level: debug\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(base), 0o600); err != nil {
		t.Fatalf("write base: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.staging.yaml"), []byte(staging), 0o600); err != nil {
		t.Fatalf("write staging: %v", err)
	}
	t.Setenv("APP_ENV", "staging")

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Observability.Logging.Level != "debug" {
		t.Fatalf("expected debug level from staging file, got %s", cfg.Observability.Logging.Level)
	}
}

func TestRateLimitRequiresRedis(t *testing.T) {
	t.Setenv("SECURITY_RATE_LIMIT_ENABLED", "true")
	if _, err := LoadFrom(t.TempDir()); err == nil {
		t.Fatalf("expected validation error when rate limit is enabled without redis")
	}
}

func TestExpandEnvKeepsUnknownPlaceholder(t *testing.T) {
	got := expandEnv("key: ${FINPIN_SURELY_UNSET_VAR}")
	if got != "key: ${FINPIN_SURELY_UNSET_VAR}" {
		t.Fatalf("unexpected expansion: %s", got)
	}
}
