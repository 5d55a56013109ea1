package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func expense(id string, date time.Time, desc string, amount float64, cat Category, notes string) Expense {
	return Expense{
		ID:          id,
		Date:        date,
		Description: desc,
		Amount:      decimal.NewFromFloat(amount),
		Category:    cat,
		Notes:       notes,
	}
}

func TestParseTimeframe(t *testing.T) {
	cases := []struct {
		in  string
		out Timeframe
		ok  bool
	}{
		{"30days", Last30Days, true},
		{"90days", Last90Days, true},
		{"all", AllTime, true},
		{" ALL ", AllTime, true},
		{"7days", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseTimeframe(tc.in)
		if tc.ok && (err != nil || got != tc.out) {
			t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.out, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestApplyMatchesEverythingWithOpenFilter(t *testing.T) {
	now := NewDay(2024, time.June, 1)
	expenses := []Expense{
		expense("a", NewDay(2020, time.January, 1), "Old rent", 900, CategoryHousing, ""),
		expense("b", NewDay(2024, time.May, 20), "Groceries", 85.50, CategoryFood, ""),
		expense("c", NewDay(2024, time.May, 30), "Bus pass", 40, CategoryTransportation, ""),
	}

	got := Filter{Category: CategoryAll, Query: "", Timeframe: AllTime}.Apply(expenses, now)
	if len(got) != len(expenses) {
		t.Fatalf("expected all %d expenses, got %d", len(expenses), len(got))
	}
	for i := range got {
		if got[i].ID != expenses[i].ID {
			t.Fatalf("order changed at %d: got %q want %q", i, got[i].ID, expenses[i].ID)
		}
	}
}

func TestApplyCategory(t *testing.T) {
	now := NewDay(2024, time.January, 15)
	expenses := []Expense{
		expense("rent", NewDay(2024, time.January, 5), "Rent", 1200, CategoryHousing, ""),
		expense("food", NewDay(2024, time.January, 10), "Groceries", 85.50, CategoryFood, ""),
	}

	got := Filter{Category: CategoryFood, Timeframe: AllTime}.Apply(expenses, now)
	if len(got) != 1 || got[0].ID != "food" {
		t.Fatalf("expected only the Groceries record, got %+v", got)
	}
	if total := TotalSpend(got); total.String() != "85.5" {
		t.Fatalf("filtered total = %s, want 85.5", total)
	}
	if largest := LargestExpense(expenses); largest.ID != "rent" {
		t.Fatalf("unfiltered largest = %q, want rent", largest.ID)
	}
}

func TestApplyQuery(t *testing.T) {
	now := NewDay(2024, time.January, 15)
	expenses := []Expense{
		expense("a", NewDay(2024, time.January, 5), "Weekly groceries", 60, CategoryFood, ""),
		expense("b", NewDay(2024, time.January, 6), "Dinner out", 45, CategoryFood, "groceries leftovers"),
		expense("c", NewDay(2024, time.January, 7), "Cinema", 20, CategoryEntertainment, ""),
	}

	cases := []struct {
		query string
		want  []string
	}{
		{"", []string{"a", "b", "c"}},
		{"   ", []string{"a", "b", "c"}},
		{"GROCERIES", []string{"a", "b"}}, // description or notes, case-insensitive
		{"dinner", []string{"b"}},
		{"sushi", nil},
	}
	for _, tc := range cases {
		got := Filter{Category: CategoryAll, Query: tc.query, Timeframe: AllTime}.Apply(expenses, now)
		if len(got) != len(tc.want) {
			t.Fatalf("query %q: got %d records, want %d", tc.query, len(got), len(tc.want))
		}
		for i := range got {
			if got[i].ID != tc.want[i] {
				t.Fatalf("query %q: got %q at %d, want %q", tc.query, got[i].ID, i, tc.want[i])
			}
		}
	}
}

func TestApplyTimeframeBoundary(t *testing.T) {
	// A record dated exactly 30 days ago is still inside the window; one
	// dated 31 days ago is not.
	now := time.Date(2024, time.June, 30, 14, 30, 0, 0, time.UTC)
	onBoundary := expense("on", DayOf(now).AddDate(0, 0, -30), "Boundary", 10, CategoryOther, "")
	outside := expense("out", DayOf(now).AddDate(0, 0, -31), "Too old", 10, CategoryOther, "")

	got := Filter{Category: CategoryAll, Timeframe: Last30Days}.Apply([]Expense{onBoundary, outside}, now)
	if len(got) != 1 || got[0].ID != "on" {
		t.Fatalf("expected only the 30-day-old record, got %+v", got)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	now := NewDay(2024, time.June, 1)
	expenses := []Expense{
		expense("a", NewDay(2024, time.May, 20), "Groceries", 85.50, CategoryFood, ""),
	}
	got := DefaultFilter().Apply(expenses, now)
	if &got[0] == &expenses[0] {
		t.Fatalf("Apply must return a fresh slice")
	}
}
