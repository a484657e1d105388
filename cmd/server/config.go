package main

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	storagePostgres = "postgres"
	storageMemory   = "memory"
)

// config is the server configuration read from the environment.
type config struct {
	Env      string
	Port     string
	LogLevel string

	Storage          string
	DatabaseURL      string
	DBMaxConns       int
	StatementTimeout time.Duration

	Location         *time.Location
	BatchMax         int
	BatchParallelism int
	SearchTimeout    time.Duration

	CompressionMinBytes int
	MetricsEnabled      bool
}

func loadConfig() (config, error) {
	cfg := config{
		Env:      getEnv("APP_ENV", "development"),
		Port:     getEnv("APP_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		Storage:          getEnv("STORAGE", storagePostgres),
		DBMaxConns:       getEnvInt("DB_MAX_CONNS", 25),
		StatementTimeout: getEnvDuration("DB_STATEMENT_TIMEOUT", 30*time.Second),

		BatchMax:         getEnvInt("SEARCH_BATCH_MAX", 50),
		BatchParallelism: getEnvInt("SEARCH_BATCH_PARALLELISM", 4),
		SearchTimeout:    getEnvDuration("SEARCH_TIMEOUT", 10*time.Second),

		CompressionMinBytes: getEnvInt("RESPONSE_COMPRESSION_MIN_BYTES", 8192),
		MetricsEnabled:      getEnvBool("METRICS_ENABLED", true),
	}

	switch cfg.Storage {
	case storagePostgres:
		cfg.DatabaseURL = mustEnv("DATABASE_URL")
	case storageMemory:
	default:
		return cfg, fmt.Errorf("unknown STORAGE %q (want %s or %s)", cfg.Storage, storagePostgres, storageMemory)
	}

	loc, err := time.LoadLocation(getEnv("SHIFT_TIMEZONE", "UTC"))
	if err != nil {
		return cfg, fmt.Errorf("SHIFT_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	return cfg, nil
}

func (c config) development() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
