package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"outlay/internal/core"
)

func newTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "outlay.db")
	st, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st, path
}

func TestLoadFreshDatabaseIsEmpty(t *testing.T) {
	st, _ := newTestStore(t)
	got, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("fresh database should load empty, got %d rows", len(got))
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	expenses := []core.Expense{
		{
			ID:          "b",
			Date:        core.NewDay(2024, time.January, 10),
			Description: "Groceries",
			Amount:      decimal.NewFromFloat(85.50),
			Category:    core.CategoryFood,
			Notes:       "weekly run",
		},
		{
			ID:          "a",
			Date:        core.NewDay(2024, time.January, 5),
			Description: "Rent",
			Amount:      decimal.NewFromInt(1200),
			Category:    core.CategoryHousing,
		},
	}

	if err := st.Save(ctx, expenses); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	// saved order is preserved
	if got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("order not preserved: %q, %q", got[0].ID, got[1].ID)
	}
	if !got[0].Amount.Equal(expenses[0].Amount) || got[0].Notes != "weekly run" {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
	if !got[1].Date.Equal(expenses[1].Date) || got[1].Category != core.CategoryHousing {
		t.Fatalf("unexpected second row: %+v", got[1])
	}
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	first := []core.Expense{{
		ID: "gone", Date: core.NewDay(2024, time.January, 1),
		Description: "Old", Amount: decimal.NewFromInt(1), Category: core.CategoryOther,
	}}
	second := []core.Expense{{
		ID: "kept", Date: core.NewDay(2024, time.February, 1),
		Description: "New", Amount: decimal.NewFromInt(2), Category: core.CategoryOther,
	}}

	if err := st.Save(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := st.Save(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}
	got, _ := st.Load(ctx)
	if len(got) != 1 || got[0].ID != "kept" {
		t.Fatalf("save must replace the whole snapshot, got %+v", got)
	}
}

func TestLoadSkipsCorruptedRows(t *testing.T) {
	ctx := context.Background()
	st, path := newTestStore(t)

	good := []core.Expense{{
		ID: "good", Date: core.NewDay(2024, time.March, 1),
		Description: "Fine", Amount: decimal.NewFromInt(10), Category: core.CategoryFood,
	}}
	if err := st.Save(ctx, good); err != nil {
		t.Fatalf("save: %v", err)
	}

	// corrupt the database behind the store's back
	raw, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw: %v", err)
	}
	defer raw.Close()
	_, err = raw.Exec(`INSERT INTO expenses (id, date, description, amount, category, notes, position)
		VALUES ('bad', 'yesterday-ish', 'Broken', 'many', 'Food', '', 99)`)
	if err != nil {
		t.Fatalf("inject corrupt row: %v", err)
	}

	got, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("load must tolerate corrupted rows, got %v", err)
	}
	if len(got) != 1 || got[0].ID != "good" {
		t.Fatalf("expected only the intact row, got %+v", got)
	}
}
