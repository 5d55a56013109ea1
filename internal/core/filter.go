package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	Last30Days Timeframe = "30days"
	Last90Days Timeframe = "90days"
	AllTime    Timeframe = "all"

	// CategoryAll is the filter wildcard; it is not a valid expense category.
	CategoryAll Category = "All"
)

type (
	// Timeframe selects how far back the filter reaches from "now".
	Timeframe string

	// Filter is the active combination of category, free-text and timeframe
	// constraints. It is a value type, replaced wholesale on every change.
	Filter struct {
		Category  Category
		Query     string
		Timeframe Timeframe
	}
)

// ParseTimeframe maps user input to a Timeframe.
func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(strings.ToLower(strings.TrimSpace(s))) {
	case Last30Days:
		return Last30Days, nil
	case Last90Days:
		return Last90Days, nil
	case AllTime:
		return AllTime, nil
	}
	return "", fmt.Errorf("unknown timeframe %q (want 30days, 90days or all)", s)
}

// days returns the window length, or 0 for all-time.
func (tf Timeframe) days() int {
	switch tf {
	case Last30Days:
		return 30
	case Last90Days:
		return 90
	}
	return 0
}

// DefaultFilter matches everything in the last 90 days.
func DefaultFilter() Filter {
	return Filter{Category: CategoryAll, Query: "", Timeframe: Last90Days}
}

// Apply returns the expenses matching all three predicates, in input order.
// The input slice is never mutated; the result is always a fresh slice.
//
// The timeframe boundary is inclusive of the record's whole calendar day: a
// record passes when its date plus one day is strictly after now minus N
// days. The one-day shift absorbs time-of-day differences between the stored
// instant and now, so a record dated exactly N days ago still matches.
func (f Filter) Apply(expenses []Expense, now time.Time) []Expense {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	var cutoff time.Time
	if n := f.Timeframe.days(); n > 0 {
		cutoff = now.AddDate(0, 0, -n)
	}

	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Category != CategoryAll && e.Category != f.Category {
			continue
		}
		if query != "" && !matchesQuery(e, query) {
			continue
		}
		if !cutoff.IsZero() && !e.Date.AddDate(0, 0, 1).After(cutoff) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// matchesQuery checks the lower-cased query against description and notes.
// Absent notes never match on notes alone.
func matchesQuery(e Expense, query string) bool {
	if strings.Contains(strings.ToLower(e.Description), query) {
		return true
	}
	return e.Notes != "" && strings.Contains(strings.ToLower(e.Notes), query)
}
