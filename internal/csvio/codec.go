// Package csvio implements the CSV boundary format for expense batches.
//
// Import reads headerless comma-delimited text with the fixed column order
// date, description, amount, category, notes. Fields are split on raw
// commas with no quoted-field parsing, so a comma inside a description or
// note will misparse; this is a documented constraint of the import format.
// Export produces RFC 4180 output (embedded commas and quotes are properly
// escaped) with a header row, so exports containing such text will not
// survive a re-import unchanged.
package csvio

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"outlay/internal/core"
)

// Header is the exact column header written on export.
const Header = "Date,Description,Amount,Category,Notes"

const dateLayout = "2006-01-02"

type (
	// MissingFieldError reports an import line lacking date, description
	// or amount. It aborts the whole batch.
	MissingFieldError struct {
		Line  int
		Field string
	}

	// InvalidAmountError reports an import line whose amount field is not
	// a parseable non-negative decimal. It aborts the whole batch.
	InvalidAmountError struct {
		Line int
		Text string
	}
)

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("line %d: missing required field %q", e.Line, e.Field)
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("line %d: invalid amount %q", e.Line, e.Text)
}

// Import parses comma-delimited text into a batch of expense records.
//
// Blank lines are skipped. Every line must carry date, description and
// amount; category is matched case-insensitively against the fixed
// enumeration with a fallback to Other; notes are optional. Each record
// gets a freshly minted id, regardless of any id-like content in the input.
//
// The batch is atomic: the first bad line fails the whole import and no
// records from it may be committed.
func Import(text string) ([]core.Expense, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var batch []core.Expense
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := parseLine(i+1, line)
		if err != nil {
			return nil, err
		}
		batch = append(batch, e)
	}
	return batch, nil
}

func parseLine(lineNo int, line string) (core.Expense, error) {
	fields := strings.Split(line, ",")
	get := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}

	date, description, amountText := get(0), get(1), get(2)
	switch {
	case date == "":
		return core.Expense{}, &MissingFieldError{Line: lineNo, Field: "date"}
	case description == "":
		return core.Expense{}, &MissingFieldError{Line: lineNo, Field: "description"}
	case amountText == "":
		return core.Expense{}, &MissingFieldError{Line: lineNo, Field: "amount"}
	}

	day, err := parseDate(date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("line %d: invalid date %q: %w", lineNo, date, err)
	}

	amount, err := core.ParseAmount(amountText)
	if err != nil {
		return core.Expense{}, &InvalidAmountError{Line: lineNo, Text: amountText}
	}

	return core.Expense{
		ID:          uuid.NewString(),
		Date:        day,
		Description: description,
		Amount:      amount,
		Category:    core.ParseCategory(get(3)),
		Notes:       get(4),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return core.DayOf(t.UTC()), nil
}

// Export renders the records as CSV text with the Header row first.
// Records come out in the given order, dates as calendar dates, amounts
// with exactly two decimal digits, and missing notes as an empty field.
func Export(expenses []core.Expense) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	_ = w.Write(strings.Split(Header, ","))
	for _, e := range expenses {
		_ = w.Write([]string{
			e.Date.Format(dateLayout),
			e.Description,
			e.Amount.StringFixed(2),
			string(e.Category),
			e.Notes,
		})
	}
	w.Flush()
	return sb.String()
}

// ExportFilename is the conventional name for an export produced "now".
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("expenses-%s.csv", now.Format(dateLayout))
}
