package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TrailingMonths is how many calendar months Summarize reports, ending at
// the current month.
const TrailingMonths = 3

type (
	// CategoryTotal is the spend of one category plus its share of the
	// grand total.
	CategoryTotal struct {
		Category Category
		Total    decimal.Decimal
		Percent  float64
	}

	// MonthTotal is the spend for a specific year+month.
	MonthTotal struct {
		Year  int
		Month time.Month
		Total decimal.Decimal
	}

	// Summary bundles every derived aggregate for one filtered view.
	Summary struct {
		Count        int
		Total        decimal.Decimal
		Largest      Expense
		ByCategory   []CategoryTotal
		AverageDaily decimal.Decimal
		Monthly      []MonthTotal
	}
)

// TotalSpend sums the amounts of all expenses. Zero for empty input.
func TotalSpend(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// LargestExpense returns the expense with the maximum amount. Ties go to
// the first occurrence in input order. Empty input yields a zero-value
// sentinel (zero amount, empty description) rather than an error.
func LargestExpense(expenses []Expense) Expense {
	if len(expenses) == 0 {
		return Expense{}
	}
	largest := expenses[0]
	for _, e := range expenses[1:] {
		if e.Amount.GreaterThan(largest.Amount) {
			largest = e
		}
	}
	return largest
}

// CategoryBreakdown groups expenses by category, summing amounts per group
// and computing each group's percentage of the grand total. Groups come out
// sorted by descending total; ties keep the order categories were first
// seen in the input. When the grand total is zero every percentage is zero.
func CategoryBreakdown(expenses []Expense) []CategoryTotal {
	index := make(map[Category]int)
	var totals []CategoryTotal
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(totals)
			index[e.Category] = i
			totals = append(totals, CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(e.Amount)
	}

	grand := decimal.Zero
	for _, ct := range totals {
		grand = grand.Add(ct.Total)
	}
	if !grand.IsZero() {
		for i := range totals {
			share, _ := totals[i].Total.Div(grand).Float64()
			totals[i].Percent = share * 100
		}
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})
	return totals
}

// AverageDailySpend groups expenses by calendar day and returns the mean of
// the per-day sums. Days without spending are not part of the denominator,
// so this is total spend divided by the number of distinct spending days.
// Zero for empty input.
func AverageDailySpend(expenses []Expense) decimal.Decimal {
	days := make(map[time.Time]struct{})
	for _, e := range expenses {
		days[DayOf(e.Date)] = struct{}{}
	}
	if len(days) == 0 {
		return decimal.Zero
	}
	return TotalSpend(expenses).Div(decimal.NewFromInt(int64(len(days))))
}

// MonthlyTotals sums spend per calendar month for the n months ending at
// now's month, inclusive. The result is chronological, oldest first, and
// months without matching records report zero rather than being omitted.
func MonthlyTotals(expenses []Expense, now time.Time, n int) []MonthTotal {
	out := make([]MonthTotal, 0, n)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(n - 1), 0)
	for i := 0; i < n; i++ {
		month := first.AddDate(0, i, 0)
		total := decimal.Zero
		for _, e := range expenses {
			if e.Date.Year() == month.Year() && e.Date.Month() == month.Month() {
				total = total.Add(e.Amount)
			}
		}
		out = append(out, MonthTotal{Year: month.Year(), Month: month.Month(), Total: total})
	}
	return out
}

// Summarize computes every aggregate for an already-filtered view.
func Summarize(expenses []Expense, now time.Time) Summary {
	return Summary{
		Count:        len(expenses),
		Total:        TotalSpend(expenses),
		Largest:      LargestExpense(expenses),
		ByCategory:   CategoryBreakdown(expenses),
		AverageDaily: AverageDailySpend(expenses),
		Monthly:      MonthlyTotals(expenses, now, TrailingMonths),
	}
}
