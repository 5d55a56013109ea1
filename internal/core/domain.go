package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	CategoryHousing        Category = "Housing"
	CategoryFood           Category = "Food"
	CategoryTransportation Category = "Transportation"
	CategoryUtilities      Category = "Utilities"
	CategoryHealth         Category = "Health"
	CategoryEntertainment  Category = "Entertainment"
	CategoryShopping       Category = "Shopping"
	CategorySavings        Category = "Savings"
	CategoryOther          Category = "Other"
)

type (
	// Category is one of the fixed spending categories. Anything outside the
	// enumeration normalizes to CategoryOther via ParseCategory.
	Category string

	// Expense is a single recorded spending event. The Date carries calendar
	// date semantics; time-of-day is not meaningful. Expenses are never
	// mutated in place: updates are full replacement by ID.
	Expense struct {
		ID          string
		Date        time.Time
		Description string
		Amount      decimal.Decimal
		Category    Category
		Notes       string // optional
	}
)

var (
	ErrZeroDate         = errors.New("date cannot be zero")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrUnknownCategory  = errors.New("unknown category")
)

var categories = []Category{
	CategoryHousing,
	CategoryFood,
	CategoryTransportation,
	CategoryUtilities,
	CategoryHealth,
	CategoryEntertainment,
	CategoryShopping,
	CategorySavings,
	CategoryOther,
}

// Categories returns the fixed category enumeration in canonical order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory matches s case-insensitively against the fixed enumeration.
// Unrecognized or empty input falls back to CategoryOther.
func ParseCategory(s string) Category {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}
	return CategoryOther
}

// IsValid reports whether c is a member of the fixed enumeration.
func (c Category) IsValid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// NewDay builds a date at midnight UTC for year, month, day.
func NewDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DayOf truncates t to its calendar date, keeping the location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (e Expense) Validate() error {
	if e.Date.IsZero() {
		return ErrZeroDate
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if e.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if !e.Category.IsValid() {
		return ErrUnknownCategory
	}
	return nil
}
