package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "GENJOB_WORKERS", "GENJOB_MAX_RETRIES", "GENJOB_DEADLINE",
		"GENJOB_WARN_AFTER", "GENJOB_CLEANUP_INTERVAL", "GENJOB_MAX_AGE",
		"LLM_PROVIDER",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.GenJob.Workers != 4 {
		t.Errorf("GenJob.Workers = %d, want 4", cfg.GenJob.Workers)
	}
	if cfg.GenJob.MaxRetries != 2 {
		t.Errorf("GenJob.MaxRetries = %d, want 2", cfg.GenJob.MaxRetries)
	}
	if cfg.GenJob.Deadline != 180*time.Second {
		t.Errorf("GenJob.Deadline = %s, want 180s", cfg.GenJob.Deadline)
	}
	if cfg.GenJob.WarnAfter != 60*time.Second {
		t.Errorf("GenJob.WarnAfter = %s, want 60s", cfg.GenJob.WarnAfter)
	}
	if cfg.GenJob.CleanupInterval != 300*time.Second {
		t.Errorf("GenJob.CleanupInterval = %s, want 300s", cfg.GenJob.CleanupInterval)
	}
	if cfg.GenJob.MaxAge != time.Hour {
		t.Errorf("GenJob.MaxAge = %s, want 1h", cfg.GenJob.MaxAge)
	}
	if cfg.LLM.Provider != "openai" {
		t.Errorf("LLM.Provider = %q, want openai", cfg.LLM.Provider)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("GENJOB_WORKERS", "8")
	t.Setenv("GENJOB_DEADLINE", "45s")
	t.Setenv("DB_PORT", "15432")
	t.Setenv("LLM_PROVIDER", "anthropic")

	cfg := Load()

	if cfg.GenJob.Workers != 8 {
		t.Errorf("GenJob.Workers = %d, want 8", cfg.GenJob.Workers)
	}
	if cfg.GenJob.Deadline != 45*time.Second {
		t.Errorf("GenJob.Deadline = %s, want 45s", cfg.GenJob.Deadline)
	}
	if cfg.Database.Port != 15432 {
		t.Errorf("Database.Port = %d, want 15432", cfg.Database.Port)
	}
	if cfg.LLM.Provider != "anthropic" {
		t.Errorf("LLM.Provider = %q, want anthropic", cfg.LLM.Provider)
	}
}

func TestMalformedEnvFallsBack(t *testing.T) {
	t.Setenv("GENJOB_WORKERS", "many")
	t.Setenv("GENJOB_DEADLINE", "later")

	cfg := Load()

	if cfg.GenJob.Workers != 4 {
		t.Errorf("GenJob.Workers = %d, want fallback 4", cfg.GenJob.Workers)
	}
	if cfg.GenJob.Deadline != 180*time.Second {
		t.Errorf("GenJob.Deadline = %s, want fallback 180s", cfg.GenJob.Deadline)
	}
}

func TestConnectionStrings(t *testing.T) {
	db := DatabaseConfig{
		Host: "db.internal", Port: 5432, User: "app", Password: "secret",
		Name: "packwright", SSLMode: "require",
	}
	want := "host=db.internal port=5432 user=app password=secret dbname=packwright sslmode=require"
	if got := db.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}

	r := RedisConfig{Host: "cache.internal", Port: 6380}
	if got := r.Address(); got != "cache.internal:6380" {
		t.Errorf("Address() = %q, want cache.internal:6380", got)
	}
}
