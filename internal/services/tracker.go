// Package services wires the core engines to the persistence port.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"outlay/internal/cache"
	"outlay/internal/core"
	"outlay/internal/csvio"
	applog "outlay/internal/log"
	"outlay/internal/store"
)

const summaryCacheSize = 8

// Tracker is the application controller. It owns the canonical expense
// collection in memory and keeps the store synchronized best-effort: a
// failing store is logged and the session keeps operating purely in
// memory.
//
// Tracker is single-threaded by contract; every operation runs to
// completion before the next one is accepted, so it does no locking.
type Tracker struct {
	store           store.Store
	defaultCategory core.Category

	expenses  []core.Expense
	filter    core.Filter
	summaries *cache.Cache[core.Summary]
}

// Options tunes Tracker construction.
type Options struct {
	// DefaultCategory is applied to manual entries that carry no category.
	// Empty means core.CategoryFood, the entry form's historical default.
	DefaultCategory core.Category
}

// NewTracker loads the collection from st. A failing load degrades to an
// empty in-memory collection rather than failing construction.
func NewTracker(ctx context.Context, st store.Store, opts Options) *Tracker {
	defaultCategory := opts.DefaultCategory
	if defaultCategory == "" {
		defaultCategory = core.CategoryFood
	}

	expenses, err := st.Load(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load expenses, starting with an empty collection",
			applog.FieldComponent, applog.ComponentTracker,
			applog.FieldError, err)
		expenses = nil
	}

	t := &Tracker{
		store:           st,
		defaultCategory: defaultCategory,
		expenses:        expenses,
		filter:          core.DefaultFilter(),
		summaries:       cache.New[core.Summary](summaryCacheSize),
	}
	t.sortByDateDesc()
	return t
}

// Add validates and inserts one expense, minting an id when absent, and
// re-sorts the collection most recent first. Invalid input never reaches
// the collection.
func (t *Tracker) Add(ctx context.Context, e core.Expense) (core.Expense, error) {
	if e.Category == "" {
		e.Category = t.defaultCategory
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	t.expenses = append(t.expenses, e)
	t.sortByDateDesc()
	t.mutated(ctx)

	slog.InfoContext(ctx, "Expense recorded",
		applog.FieldComponent, applog.ComponentTracker,
		applog.FieldExpenseID, e.ID,
		applog.FieldDescription, e.Description,
		applog.FieldAmount, e.Amount.String(),
		applog.FieldCategory, string(e.Category))
	return e, nil
}

// Delete removes the expense with the given id. Removing an absent id is
// a no-op, not an error; it reports whether anything was removed.
func (t *Tracker) Delete(ctx context.Context, id string) bool {
	for i, e := range t.expenses {
		if e.ID == id {
			t.expenses = append(t.expenses[:i], t.expenses[i+1:]...)
			t.mutated(ctx)
			slog.InfoContext(ctx, "Expense deleted",
				applog.FieldComponent, applog.ComponentTracker,
				applog.FieldExpenseID, id)
			return true
		}
	}
	return false
}

// ImportBatch appends the records whose ids are not already present and
// re-sorts, returning how many were added. Deduplication by id matters
// mainly for re-imports of previously exported batches.
func (t *Tracker) ImportBatch(ctx context.Context, batch []core.Expense) int {
	existing := make(map[string]struct{}, len(t.expenses))
	for _, e := range t.expenses {
		existing[e.ID] = struct{}{}
	}

	added := 0
	for _, e := range batch {
		if _, dup := existing[e.ID]; dup {
			continue
		}
		existing[e.ID] = struct{}{}
		t.expenses = append(t.expenses, e)
		added++
	}
	if added > 0 {
		t.sortByDateDesc()
		t.mutated(ctx)
	}

	slog.InfoContext(ctx, "Batch imported",
		applog.FieldComponent, applog.ComponentTracker,
		applog.FieldCount, added)
	return added
}

// ImportCSV parses text through the CSV codec and commits the batch
// atomically: a parse error means zero records are added.
func (t *Tracker) ImportCSV(ctx context.Context, text string) (int, error) {
	batch, err := csvio.Import(text)
	if err != nil {
		return 0, fmt.Errorf("parse import: %w", err)
	}
	return t.ImportBatch(ctx, batch), nil
}

// ExportCSV renders the current filtered view as CSV text, returning the
// conventional filename alongside it.
func (t *Tracker) ExportCSV(now time.Time) (filename, content string) {
	return csvio.ExportFilename(now), csvio.Export(t.Filtered(now))
}

// SetFilter replaces the active filter specification wholesale.
func (t *Tracker) SetFilter(f core.Filter) {
	t.filter = f
}

// Filter returns the active filter specification.
func (t *Tracker) Filter() core.Filter {
	return t.filter
}

// All returns a copy of the canonical collection, most recent first.
func (t *Tracker) All() []core.Expense {
	out := make([]core.Expense, len(t.expenses))
	copy(out, t.expenses)
	return out
}

// Filtered recomputes the visible subset through the filter engine.
func (t *Tracker) Filtered(now time.Time) []core.Expense {
	return t.filter.Apply(t.expenses, now)
}

// Summary aggregates the current filtered view, memoized per filter and
// calendar day until the next mutation.
func (t *Tracker) Summary(now time.Time) core.Summary {
	key := t.summaryKey(now)
	if s, ok := t.summaries.Get(key); ok {
		return s
	}
	s := core.Summarize(t.Filtered(now), now)
	t.summaries.Put(key, s)
	return s
}

func (t *Tracker) summaryKey(now time.Time) string {
	return fmt.Sprintf("%s|%s|%s|%s",
		t.filter.Category, t.filter.Query, t.filter.Timeframe, now.Format("2006-01-02"))
}

// mutated invalidates derived state and persists the collection. Persist
// failures are logged, never surfaced: the in-memory mutation stands.
func (t *Tracker) mutated(ctx context.Context) {
	t.summaries.Purge()
	if err := t.store.Save(ctx, t.All()); err != nil {
		slog.ErrorContext(ctx, "Failed to persist expenses, continuing in memory",
			applog.FieldComponent, applog.ComponentTracker,
			applog.FieldError, err)
	}
}

func (t *Tracker) sortByDateDesc() {
	// stable keeps insertion order for same-day records
	sort.SliceStable(t.expenses, func(i, j int) bool {
		return t.expenses[i].Date.After(t.expenses[j].Date)
	})
}
