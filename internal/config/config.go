package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every process-wide setting. It is loaded once in main and
// passed down explicitly; no other package reads the environment.
type Config struct {
	HTTPAddr   string
	PGDSN      string
	AuthSecret string
	TokenTTL   time.Duration
	RateBurst  int
	RatePerSec int
	SeedDemo   bool
}

// Load reads configuration from the environment. The signing secret is the
// only required value.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:   readString("CAMPUS_HTTP_ADDR", ":8080"),
		PGDSN:      os.Getenv("CAMPUS_PG_DSN"),
		AuthSecret: strings.TrimSpace(os.Getenv("CAMPUS_AUTH_SECRET")),
		TokenTTL:   readDuration("CAMPUS_TOKEN_TTL", time.Hour),
		RateBurst:  readInt("CAMPUS_RATE_BURST", 20),
		RatePerSec: readInt("CAMPUS_RATE_PER_SEC", 10),
		SeedDemo:   readBool("CAMPUS_SEED_DEMO", false),
	}
	if cfg.AuthSecret == "" {
		return Config{}, errors.New("CAMPUS_AUTH_SECRET is required")
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, errors.New("CAMPUS_TOKEN_TTL must be positive")
	}
	return cfg, nil
}

func readString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
