// Package storage persists the expense collection in a local SQLite file.
//
// The collection is saved as a whole snapshot on every mutation, mirroring
// the single-key storage model of the original application: Save replaces
// every row in one transaction, Load reads them back in saved order.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"outlay/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the stored collection in saved order. Rows that fail to
// decode are skipped with a warning instead of failing the whole load, so
// a partially corrupted database degrades to the rows that still parse.
func (s *SQLiteStore) Load(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, description, amount, category, notes FROM expenses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var id, date, description, amount, category, notes string
		if err := rows.Scan(&id, &date, &description, &amount, &category, &notes); err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}

		e, err := decodeRow(id, date, description, amount, category, notes)
		if err != nil {
			slog.WarnContext(ctx, "Skipping undecodable expense row", "id", id, "error", err)
			continue
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense rows: %w", err)
	}

	return expenses, nil
}

// Save replaces the stored collection with the given snapshot in a single
// transaction.
func (s *SQLiteStore) Save(ctx context.Context, expenses []core.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (id, date, description, amount, category, notes, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range expenses {
		_, err := stmt.ExecContext(ctx,
			e.ID,
			e.Date.UTC().Format(time.RFC3339),
			e.Description,
			e.Amount.String(),
			string(e.Category),
			e.Notes,
			i,
		)
		if err != nil {
			return fmt.Errorf("insert expense %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save transaction: %w", err)
	}

	slog.DebugContext(ctx, "Expense collection saved", "count", len(expenses))
	return nil
}

func decodeRow(id, date, description, amount, category, notes string) (core.Expense, error) {
	day, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse date: %w", err)
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse amount: %w", err)
	}
	return core.Expense{
		ID:          id,
		Date:        day,
		Description: description,
		Amount:      value,
		Category:    core.ParseCategory(category),
		Notes:       notes,
	}, nil
}
