package config

import (
	"testing"
	"time"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("CAMPUS_AUTH_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing secret")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CAMPUS_AUTH_SECRET", "test-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.HTTPAddr)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("unexpected ttl: %v", cfg.TokenTTL)
	}
	if cfg.SeedDemo {
		t.Fatal("seed demo should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CAMPUS_AUTH_SECRET", "test-secret")
	t.Setenv("CAMPUS_TOKEN_TTL", "30m")
	t.Setenv("CAMPUS_RATE_BURST", "5")
	t.Setenv("CAMPUS_SEED_DEMO", "true")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("unexpected ttl: %v", cfg.TokenTTL)
	}
	if cfg.RateBurst != 5 {
		t.Fatalf("unexpected burst: %d", cfg.RateBurst)
	}
	if !cfg.SeedDemo {
		t.Fatal("expected seed demo enabled")
	}
}
