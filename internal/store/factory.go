package store

import (
	"fmt"
	"log/slog"

	"outlay/internal/storage"
	"outlay/internal/store/memory"
)

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
)

type (
	// BackendType selects the concrete Store implementation.
	BackendType string

	// Config holds what the factory needs to build a backend.
	Config struct {
		Type BackendType

		// SQLite specific
		SQLiteDBPath string
	}
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Open builds the Store selected by config. The caller owns Close.
func Open(logger *slog.Logger, config Config) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		st, err := storage.NewSQLiteStore(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
		return st, nil
	default:
		logger.Info("Initialized memory backend")
		return memory.New(), nil
	}
}
