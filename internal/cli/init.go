// Package cli provides common initialization for the outlay command:
// logging, .env loading, configuration, and store bootstrap.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"outlay/internal/config"
	"outlay/internal/store"
)

// SetupLogger initializes structured logging at the given level and sets
// it as the default logger.
func SetupLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore builds the configured persistence backend.
// Returns the store or exits the process on failure.
func OpenStore(logger *slog.Logger, cfg *config.Config) store.Store {
	st, err := store.Open(logger, store.Config{
		Type:         store.BackendType(cfg.Backend),
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize store", "error", err, "backend", cfg.Backend)
		os.Exit(1)
	}
	return st
}
