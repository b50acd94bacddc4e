package organize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// MissingReportName is the report file written into the output root when
// write_missing_log is enabled and the run recorded missing photos.
const MissingReportName = "missing_photos.txt"

// writeMissingReport renders the sorted, deduplicated missing-filename list
// with a timestamped header into dir.
func writeMissingReport(dir, runID string, missing []string, now time.Time) error {
	seen := make(map[string]struct{}, len(missing))
	names := make([]string, 0, len(missing))
	for _, name := range missing {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	collate.New(language.English).SortStrings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "# Missing photos (%d)\n", len(names))
	fmt.Fprintf(&b, "# run %s at %s\n", runID, now.UTC().Format(time.RFC3339))
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('\n')
	}

	return os.WriteFile(filepath.Join(dir, MissingReportName), []byte(b.String()), 0o644)
}
