package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in  string
		out Category
	}{
		{"Food", CategoryFood},
		{"food", CategoryFood},
		{"  HOUSING  ", CategoryHousing},
		{"transportation", CategoryTransportation},
		{"Groceries", CategoryOther},
		{"", CategoryOther},
	}
	for _, tc := range cases {
		if got := ParseCategory(tc.in); got != tc.out {
			t.Fatalf("ParseCategory(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestCategoryIsValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.IsValid() {
			t.Fatalf("%q should be valid", c)
		}
	}
	if CategoryAll.IsValid() {
		t.Fatalf("the All wildcard must not be a valid expense category")
	}
	if Category("Groceries").IsValid() {
		t.Fatalf("unknown category should not be valid")
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Date:        NewDay(2024, time.January, 5),
		Description: "Rent",
		Amount:      decimal.NewFromInt(1200),
		Category:    CategoryHousing,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// zero amount is allowed
	free := good
	free.Amount = decimal.Zero
	if err := free.Validate(); err != nil {
		t.Fatalf("zero amount should validate, got %v", err)
	}

	bads := []struct {
		mutate func(*Expense)
		want   error
	}{
		{func(e *Expense) { e.Date = time.Time{} }, ErrZeroDate},
		{func(e *Expense) { e.Description = "   " }, ErrEmptyDescription},
		{func(e *Expense) { e.Amount = decimal.NewFromInt(-1) }, ErrInvalidAmount},
		{func(e *Expense) { e.Category = "Groceries" }, ErrUnknownCategory},
	}
	for i, tc := range bads {
		e := good
		tc.mutate(&e)
		if err := e.Validate(); err != tc.want {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestDayOf(t *testing.T) {
	instant := time.Date(2024, time.March, 7, 18, 45, 12, 999, time.UTC)
	day := DayOf(instant)
	if !day.Equal(NewDay(2024, time.March, 7)) {
		t.Fatalf("DayOf(%v) = %v", instant, day)
	}
}
