package organize

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers for run-fatal failures. Per-row conditions are never
// returned as errors; they accumulate on the Summary instead.
var (
	// ErrConfiguration covers unusable inputs: unreadable mapping file,
	// unresolvable required columns, missing source directory.
	ErrConfiguration = errors.New("configuration error")
	// ErrBusy means another run holds the lock on the same output root.
	ErrBusy = errors.New("output root is locked by another run")
)

// Wrap tags err with a sentinel marker and operation context so callers can
// classify failures with errors.Is while keeping a readable message.
func Wrap(marker error, operation, message string, err error) error {
	if marker == nil {
		marker = ErrConfiguration
	}
	detail := buildDetail(operation, message)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "run failure"
	}
	return strings.Join(parts, ": ")
}
