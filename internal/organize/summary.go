package organize

import "fmt"

// Summary accumulates the outcome of one run. It is created at run start,
// mutated row by row, and read by the caller at run end. Missing, Duplicates,
// and Errors preserve row order.
type Summary struct {
	RunID string

	// TotalRows is the number of data rows in the mapping file.
	TotalRows int
	Processed int
	Skipped   int

	// Missing holds requested filenames that no fallback strategy resolved.
	Missing []string
	// Duplicates holds resolved filenames whose destination was already
	// occupied while overwrite was disabled.
	Duplicates []string
	// Errors holds one human-readable message per failing row.
	Errors []string
	// Warnings holds non-fatal run-level notices (degraded secondary column,
	// report write failure).
	Warnings []string

	// Bytes is the total size of files moved or copied.
	Bytes int64

	// Canceled is set when the run stopped early on a cancellation signal.
	Canceled bool
}

func (s *Summary) recordSkip(line int, format string, args ...any) {
	s.Skipped++
	s.Errors = append(s.Errors, fmt.Sprintf("row %d: ", line)+fmt.Sprintf(format, args...))
}

func (s *Summary) recordMissing(name string) {
	s.Missing = append(s.Missing, name)
}

func (s *Summary) recordDuplicate(name string) {
	s.Duplicates = append(s.Duplicates, name)
}

func (s *Summary) recordWarning(format string, args ...any) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}
