package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"

	"snapsort/internal/organize"
)

// maxDetailLines bounds how many per-row messages each section prints; the
// full lists stay available on the Summary.
const maxDetailLines = 10

func renderSummary(out io.Writer, summary *organize.Summary, dryRun bool) {
	title := "Run summary"
	if dryRun {
		title = "Run summary (dry run)"
	}
	fmt.Fprintln(out, title)

	rows := [][]string{
		{"Processed", strconv.Itoa(summary.Processed)},
		{"Skipped", strconv.Itoa(summary.Skipped)},
		{"Missing", strconv.Itoa(len(summary.Missing))},
		{"Duplicates", strconv.Itoa(len(summary.Duplicates))},
		{"Data", humanize.Bytes(uint64(summary.Bytes))},
	}
	fmt.Fprintln(out, renderTable([]string{"Result", "Count"}, rows, 2))

	for _, warning := range summary.Warnings {
		fmt.Fprintf(out, "warning: %s\n", warning)
	}
	printCapped(out, "Errors", summary.Errors)
	printCapped(out, "Missing photos", summary.Missing)
	printCapped(out, "Duplicates left in place", summary.Duplicates)
}

func printCapped(out io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", label)
	shown := items
	if len(shown) > maxDetailLines {
		shown = shown[:maxDetailLines]
	}
	for _, item := range shown {
		fmt.Fprintf(out, "  %s\n", item)
	}
	if rest := len(items) - len(shown); rest > 0 {
		fmt.Fprintf(out, "  ... and %d more\n", rest)
	}
}
