// Package memory provides an in-memory Store, used both as the default
// backend and as the persistence fake in tests.
package memory

import (
	"context"
	"sync"

	"outlay/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.Expense
}

func New() *Store {
	return &Store{}
}

// NewSeeded returns a store preloaded with the given expenses.
func NewSeeded(expenses []core.Expense) *Store {
	return &Store{items: snapshot(expenses)}
}

// Load returns a copy of the stored collection. It never fails.
func (s *Store) Load(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.items), nil
}

// Save replaces the stored collection with a copy of the given one.
func (s *Store) Save(_ context.Context, expenses []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = snapshot(expenses)
	return nil
}

func (s *Store) Close() error {
	return nil
}

func snapshot(in []core.Expense) []core.Expense {
	out := make([]core.Expense, len(in))
	copy(out, in)
	return out
}
