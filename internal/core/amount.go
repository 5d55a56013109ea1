// Package core holds the expense domain model plus the filter and
// aggregation engines. Everything in this package is pure: functions take
// expense slices and return new values without touching their input.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a user-entered amount string to a decimal value.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Empty,
// non-numeric, and negative input all fail with ErrInvalidAmount; zero is
// allowed. Silent coercion of garbage to a number is deliberately not
// supported here, CSV import relies on that.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
