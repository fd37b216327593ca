package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Input limits
	MaxInputBytes   int64
	MaxNestingDepth int

	// Grid preview; 0 means unlimited.
	MaxPreviewRows int

	// Latency stats retention
	StatsWindow time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		MaxInputBytes:   envInt64("MAX_INPUT_BYTES", 10485760), // 10MB
		MaxNestingDepth: envInt("MAX_NESTING_DEPTH", 100),

		MaxPreviewRows: envInt("MAX_PREVIEW_ROWS", 0),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.MaxInputBytes <= 0 {
		cfg.MaxInputBytes = 10485760
	}
	if cfg.MaxNestingDepth <= 0 {
		cfg.MaxNestingDepth = 100
	}
	if cfg.MaxPreviewRows < 0 {
		cfg.MaxPreviewRows = 0
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
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

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
