// Package store defines the persistence port for the expense collection
// and the factory that picks a concrete backend.
package store

import (
	"context"

	"outlay/internal/core"
)

// Store is the opaque persistence collaborator. The canonical collection
// always lives in memory; implementations only load it at startup and
// receive full snapshots to save after every mutation.
//
// Load must tolerate absent or corrupted stored data by returning an empty
// collection rather than failing outright. Save failures are reported to
// the caller, who treats them as best-effort (logged, never blocking the
// in-memory mutation).
type Store interface {
	Load(ctx context.Context) ([]core.Expense, error)
	Save(ctx context.Context, expenses []core.Expense) error
	Close() error
}
