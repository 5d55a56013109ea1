package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"outlay/internal/core"
)

type Config struct {
	// Backend selection
	Backend string

	// Database
	SQLiteDBPath string

	// Manual entry
	DefaultCategory string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		Backend:         getEnv("OUTLAY_BACKEND", "sqlite"),
		SQLiteDBPath:    getEnv("OUTLAY_DB_PATH", "./data/outlay.db"),
		DefaultCategory: getEnv("OUTLAY_DEFAULT_CATEGORY", string(core.CategoryFood)),
		LogLevel:        getEnv("OUTLAY_LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate backend
	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.Backend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid backend '%s': must be one of %v", c.Backend, validBackends))
	}

	// Validate SQLite configuration if backend is sqlite
	if c.Backend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	// Validate default category against the fixed enumeration
	if !core.Category(c.DefaultCategory).IsValid() {
		errors = append(errors, fmt.Sprintf("invalid default category '%s': must be one of %v", c.DefaultCategory, core.Categories()))
	}

	if _, err := c.SlogLevel(); err != nil {
		errors = append(errors, err.Error())
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// SlogLevel maps the configured log level string to a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
