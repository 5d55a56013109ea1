// Command outlay is a local personal expense tracker: record spending,
// filter and search the history, view aggregate summaries, and move
// batches in and out as CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"outlay/internal/cli"
	"outlay/internal/core"
	"outlay/internal/services"
)

const dateLayout = "2006-01-02"

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(slog.LevelInfo)
	cfg := cli.LoadAndValidateConfig(logger)
	if level, err := cfg.SlogLevel(); err == nil && level != slog.LevelInfo {
		logger = cli.SetupLogger(level)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	st := cli.OpenStore(logger, cfg)
	defer st.Close()

	ctx := context.Background()
	tracker := services.NewTracker(ctx, st, services.Options{
		DefaultCategory: core.Category(cfg.DefaultCategory),
	})

	var err error
	switch os.Args[1] {
	case "add":
		err = runAdd(ctx, tracker, os.Args[2:])
	case "delete":
		err = runDelete(ctx, tracker, os.Args[2:])
	case "list":
		err = runList(tracker, os.Args[2:])
	case "summary":
		err = runSummary(tracker, os.Args[2:])
	case "import":
		err = runImport(ctx, tracker, os.Args[2:])
	case "export":
		err = runExport(tracker, os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: outlay <command> [flags]

Commands:
  add      record one expense (-date, -description, -amount, -category, -notes)
  delete   remove one expense by id (-id)
  list     print the filtered expense history
  summary  print aggregate statistics for the filtered view
  import   import a CSV batch (-file)
  export   write the filtered view as CSV (-dir)

Filter flags (list, summary, export):
  -category   category name or All (default All)
  -query      case-insensitive text match on description and notes
  -timeframe  30days, 90days or all (default 90days)
`)
}

// filterFlags registers the shared filter flags on fs.
func filterFlags(fs *flag.FlagSet) (category, query, timeframe *string) {
	category = fs.String("category", string(core.CategoryAll), "category name or All")
	query = fs.String("query", "", "free-text search")
	timeframe = fs.String("timeframe", string(core.Last90Days), "30days, 90days or all")
	return
}

func buildFilter(category, query, timeframe string) (core.Filter, error) {
	tf, err := core.ParseTimeframe(timeframe)
	if err != nil {
		return core.Filter{}, err
	}
	cat := core.CategoryAll
	if !strings.EqualFold(category, string(core.CategoryAll)) {
		cat = core.ParseCategory(category)
	}
	return core.Filter{Category: cat, Query: query, Timeframe: tf}, nil
}

func runAdd(ctx context.Context, tracker *services.Tracker, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	date := fs.String("date", time.Now().Format(dateLayout), "calendar date (YYYY-MM-DD)")
	description := fs.String("description", "", "what the money went to")
	amountText := fs.String("amount", "", "amount spent")
	category := fs.String("category", "", "spending category (defaults from config)")
	notes := fs.String("notes", "", "optional memo")
	fs.Parse(args)

	day, err := time.Parse(dateLayout, *date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", *date, err)
	}
	amount, err := core.ParseAmount(*amountText)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", *amountText, err)
	}

	e := core.Expense{
		Date:        day,
		Description: strings.TrimSpace(*description),
		Amount:      amount,
		Notes:       strings.TrimSpace(*notes),
	}
	if *category != "" {
		e.Category = core.ParseCategory(*category)
	}

	added, err := tracker.Add(ctx, e)
	if err != nil {
		return err
	}
	fmt.Printf("recorded %s  %s  %s  (%s)\n",
		added.Date.Format(dateLayout), added.Description, added.Amount.StringFixed(2), added.ID)
	return nil
}

func runDelete(ctx context.Context, tracker *services.Tracker, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "expense id")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("missing -id")
	}
	if tracker.Delete(ctx, *id) {
		fmt.Println("deleted", *id)
	} else {
		fmt.Println("no expense with id", *id)
	}
	return nil
}

func runList(tracker *services.Tracker, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	category, query, timeframe := filterFlags(fs)
	fs.Parse(args)

	filter, err := buildFilter(*category, *query, *timeframe)
	if err != nil {
		return err
	}
	tracker.SetFilter(filter)

	view := tracker.Filtered(time.Now())
	if len(view) == 0 {
		fmt.Println("no expenses match the current filter")
		return nil
	}
	for _, e := range view {
		notes := e.Notes
		if notes != "" {
			notes = "  # " + notes
		}
		fmt.Printf("%s  %10s  %-15s %s%s  (%s)\n",
			e.Date.Format(dateLayout), e.Amount.StringFixed(2), e.Category, e.Description, notes, e.ID)
	}
	return nil
}

func runSummary(tracker *services.Tracker, args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	category, query, timeframe := filterFlags(fs)
	fs.Parse(args)

	filter, err := buildFilter(*category, *query, *timeframe)
	if err != nil {
		return err
	}
	tracker.SetFilter(filter)

	s := tracker.Summary(time.Now())
	fmt.Printf("Total spent      %s across %d expenses\n", s.Total.StringFixed(2), s.Count)
	if s.Largest.Description != "" {
		fmt.Printf("Largest expense  %s  %s\n", s.Largest.Amount.StringFixed(2), s.Largest.Description)
	}
	fmt.Printf("Average daily    %s\n", s.AverageDaily.StringFixed(2))

	fmt.Println("\nLast months:")
	for _, m := range s.Monthly {
		fmt.Printf("  %s %d  %s\n", m.Month.String()[:3], m.Year, m.Total.StringFixed(2))
	}

	if len(s.ByCategory) > 0 {
		fmt.Println("\nBy category:")
		for _, ct := range s.ByCategory {
			fmt.Printf("  %-15s %10s  %5.1f%%\n", ct.Category, ct.Total.StringFixed(2), ct.Percent)
		}
	}
	return nil
}

func runImport(ctx context.Context, tracker *services.Tracker, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "CSV file to import")
	fs.Parse(args)

	if *file == "" {
		return fmt.Errorf("missing -file")
	}
	text, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("read %s: %w", *file, err)
	}

	added, err := tracker.ImportCSV(ctx, string(text))
	if err != nil {
		return err
	}
	fmt.Printf("imported %d expenses\n", added)
	return nil
}

func runExport(tracker *services.Tracker, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	category, query, timeframe := filterFlags(fs)
	dir := fs.String("dir", ".", "directory for the export file")
	fs.Parse(args)

	filter, err := buildFilter(*category, *query, *timeframe)
	if err != nil {
		return err
	}
	tracker.SetFilter(filter)

	filename, content := tracker.ExportCSV(time.Now())
	path := filepath.Join(*dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Println("exported to", path)
	return nil
}
