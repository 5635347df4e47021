package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// Config holds processor settings read from the environment. A local .env
// file is loaded by the binaries at startup, and command-line flags override
// whatever ends up here.
type Config struct {
	TargetMerchant     string          // merchant whose transactions earn points
	PointsRate         decimal.Decimal // points per dollar
	CheckpointPath     string          // where run progress is persisted
	CheckpointInterval int64           // lines between periodic checkpoint saves
	MembersPath        string          // optional members snapshot file; empty means seed set only
	LogLevel           string
}

func Load() (*Config, error) {
	rate, err := decimal.NewFromString(getEnv("PROCESSOR_POINTS_RATE", "1.0"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROCESSOR_POINTS_RATE: %w", err)
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("PROCESSOR_POINTS_RATE must not be negative, got %s", rate)
	}

	interval, err := strconv.ParseInt(getEnv("PROCESSOR_CHECKPOINT_EVERY", "1000"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PROCESSOR_CHECKPOINT_EVERY: %w", err)
	}
	if interval < 1 {
		return nil, fmt.Errorf("PROCESSOR_CHECKPOINT_EVERY must be at least 1, got %d", interval)
	}

	cfg := &Config{
		TargetMerchant:     getEnv("PROCESSOR_TARGET_MERCHANT", "GAS123"),
		PointsRate:         rate,
		CheckpointPath:     getEnv("PROCESSOR_CHECKPOINT_PATH", "checkpoint.txt"),
		CheckpointInterval: interval,
		MembersPath:        getEnv("PROCESSOR_MEMBERS_PATH", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
