package organize_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"snapsort/internal/config"
	"snapsort/internal/logging"
	"snapsort/internal/organize"
	"snapsort/internal/testsupport"
)

type recordingNotifier struct {
	statuses []string
	rows     [][2]int
}

func (n *recordingNotifier) RowDone(done, total int) {
	n.rows = append(n.rows, [2]int{done, total})
}

func (n *recordingNotifier) Status(message string) {
	n.statuses = append(n.statuses, message)
}

func newRun(t *testing.T, opts ...testsupport.ConfigOption) (*config.Config, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	if err := os.MkdirAll(cfg.Paths.SourceDir, 0o755); err != nil {
		t.Fatalf("mkdir source: %v", err)
	}
	return cfg, cfg.Paths.SourceDir
}

func run(t *testing.T, cfg *config.Config, mapping string) *organize.Summary {
	t.Helper()
	opts := organize.OptionsFromConfig(cfg, mapping)
	summary, err := organize.New(opts, logging.NewNop(), nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return summary
}

func TestRunMovesPhotosIntoFolders(t *testing.T) {
	cfg, source := newRun(t)
	testsupport.WriteFile(t, filepath.Join(source, "cat.jpg"), "cat bytes")
	testsupport.WriteFile(t, filepath.Join(source, "dog.jpg"), "dog bytes")
	mapping := testsupport.WriteMapping(t, t.TempDir(), "roster.csv",
		"Team,Photo\nLions,cat.jpg\nTigers,dog.jpg\n")

	summary := run(t, cfg, mapping)

	if summary.Processed != 2 || summary.Skipped != 0 || len(summary.Missing) != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	got := testsupport.ReadFile(t, filepath.Join(cfg.Paths.OutputDir, "Lions", "cat.jpg"))
	if got != "cat bytes" {
		t.Fatalf("moved file content mismatch: %q", got)
	}
	if _, err := os.Stat(filepath.Join(source, "cat.jpg")); !os.IsNotExist(err) {
		t.Fatalf("expected source removed in move mode, err=%v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "Tigers", "dog.jpg")); err != nil {
		t.Fatalf("expected second photo organized: %v", err)
	}
}

func TestRunCopyModeLeavesSource(t *testing.T) {
	cfg, source := newRun(t, testsupport.WithMode(config.ModeCopy))
	testsupport.WriteFile(t, filepath.Join(source, "cat.jpg"), "cat bytes")
	mapping := testsupport.WriteMapping(t, t.TempDir(), "roster.csv", "Team,Photo\nLions,cat.jpg\n")

	summary := run(t, cfg, mapping)

	if summary.Processed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if testsupport.ReadFile(t, filepath.Join(source, "cat.jpg")) != "cat bytes" {
		t.Fatal("expected source intact in copy mode")
	}
	if testsupport.ReadFile(t, filepath.Join(cfg.Paths.OutputDir, "Lions", "cat.jpg")) != "cat bytes" {
		t.Fatal("expected identical copy at destination")
	}
	if summary.Bytes != int64(len("cat bytes")) {
		t.Fatalf("unexpected byte count: %d", summary.Bytes)
	}
}

func TestRunInfersExtension(t *testing.T) {
	cfg, source := newRun(t)
	testsupport.WriteFile(t, filepath.Join(source, "bear.png"), "bear bytes")
	mapping := testsupport.WriteMapping(t, t.TempDir(), "roster.csv", "Team,Photo\nBears,bear\n")

	summary := run(t, cfg, mapping)

	if summary.Processed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "Bears", "bear.png")); err != nil {
		t.Fatalf("expected inferred extension destination: %v", err)
	}
}

func TestRunRecordsMissingAndWritesReport(t *testing.T) {
	cfg, source := newRun(t)
	cfg.Options.WriteMissingLog = true
	testsupport.WriteFile(t, filepath.Join(source, "cat.jpg"), "cat bytes")
	mapping := testsupport.WriteMapping(t, t.TempDir(), "roster.csv",
		"Team,Photo\nWolves,wolf.jpg\nLions,cat.jpg\n")

	summary := run(t, cfg, mapping)

	if summary.Processed != 1 {
		t.Fatalf("unexpected processed count: %+v", summary)
	}
	if len(summary.Missing) != 1 || summary.Missing[0] != "wolf.jpg" {
		t.Fatalf("unexpected missing list: %#v", summary.Missing)
	}
	report := testsupport.ReadFile(t, filepath.Join(cfg.Paths.OutputDir, organize.MissingReportName))
	if !strings.Contains(report, "wolf.jpg") {
		t.Fatalf("report does not list missing photo: %q", report)
	}
	if !strings.HasPrefix(report, "#") {
		t.Fatalf("report missing header: %q", report)
	}
}

func TestRunSkipsReportWhenNothingMissing(t *testing.T) {
	cfg, source := newRun(t)
	cfg.Options.WriteMissingLog = true
	testsupport.WriteFile(t, filepath.Join(source, "cat.jpg"), "cat bytes")
	mapping := testsupport.WriteMapping(t, t.TempDir(), "roster.csv", "Team,Photo\nLions,cat.jpg\n")

	run(t, cfg, mapping)

	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, organize.MissingReportName)); !os.IsNotExist(err) {
		t.Fatalf("expected no report, err=%v", err)
	}
}

func TestRunDuplicateLeavesBothFilesAlone(t *testing.T) {
	cfg, source := newRun(t, testsupport.WithMode(config.ModeCopy))
	testsupport.WriteFile(t, filepath.Join(source, "cat.jpg"), "new bytes")
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.OutputDir, "Lions", "cat.jpg"), "old bytes")
	mapping := testsupport.WriteMapping(t, t.TempDir(), "roster.csv", "Team,Photo\nLions,cat.jpg\n")

	summary := run(t, cfg, mapping)

	if summary.Processed != 0 {
		t.Fatalf("duplicate row must not count as processed: %+v", summary)
	}
	if len(summary.Duplicates) != 1 || summary.Duplicates[0] != "cat.jpg" {
		t.Fatalf("unexpected duplicate list: %#v", summary.Duplicates)
	}
	if testsupport.ReadFile(t, filepath.Join(cfg.Paths.OutputDir, "Lions", "cat.jpg")) != "old bytes" {
		t.Fatal("destination must not be mutated when overwrite is disabled")
	}
	if testsupport.ReadFile(t, filepath.Join(source, "cat.jpg")) != "new bytes" {
		t.Fatal("source must stay in place on duplicate")
	}
}

func TestRunOverwriteReplacesDestination(t *testing.T) {
	cfg, source := newRun(t)
	cfg.Options.OverwriteExisting = true
	testsupport.WriteFile(t, filepath.Join(source, "cat.jpg"), "new bytes")
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.OutputDir, "Lions", "cat.jpg"), "old bytes")
	mapping := testsupport.WriteMapping(t, t.TempDir(), "roster.csv", "Team,Photo\nLions,cat.jpg\n")

	summary := run(t, cfg, mapping)

	if summary.Processed != 1 || len(summary.Duplicates) != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if testsupport.ReadFile(t, filepath.Join(cfg.Paths.OutputDir, "Lions", "cat.jpg")) != "new bytes" {
		t.Fatal("expected destination replaced with overwrite enabled")
	}
}

func TestRunSkipsMalformedAndEmptyRows(t *testing.T) {
	cfg, source := newRun(t)
	testsupport.WriteFile(t, filepath.Join(source, "cat.jpg"), "cat bytes")
	mapping := testsupport.WriteMapping(t, t.TempDir(), "roster.csv",
		"Team,Photo\nLions\n,cat.jpg\nLions,\nLions,cat.jpg\n")

	summary := run(t, cfg, mapping)

	if summary.Processed != 1 {
		t.Fatalf("unexpected processed count: %+v", summary)
	}
	if summary.Skipped != 3 {
		t.Fatalf("expected 3 skipped rows, got %d: %#v", summary.Skipped, summary.Errors)
	}
	if len(summary.Errors) != 3 {
		t.Fatalf("expected one error per skipped row: %#v", summary.Errors)
	}
	for _, msg := range summary.Errors {
		if !strings.HasPrefix(msg, "row ") {
			t.Fatalf("error message lacks row attribution: %q", msg)
		}
	}
}

func TestRunSecondaryFolderNesting(t *testing.T) {
	cfg, source := newRun(t, testsupport.WithSecondary("Period"))
	testsupport.WriteFile(t, filepath.Join(source, "cat.jpg"), "cat bytes")
	testsupport.WriteFile(t, filepath.Join(source, "dog.jpg"), "dog bytes")
	mapping := testsupport.WriteMapping(t, t.TempDir(), "roster.csv",
		"Team,Period,Photo\nLions,Fall,cat.jpg\nLions,,dog.jpg\n")

	summary := run(t, cfg, mapping)

	if summary.Processed != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "Lions", "Fall", "cat.jpg")); err != nil {
		t.Fatalf("expected two-level folder: %v", err)
	}
	// An empty secondary value degrades that row to a single-level folder.
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "Lions", "dog.jpg")); err != nil {
		t.Fatalf("expected single-level fallback: %v", err)
	}
}

func TestRunSecondaryColumnAbsentDegrades(t *testing.T) {
	cfg, source := newRun(t, testsupport.WithSecondary("Period"))
	testsupport.WriteFile(t, filepath.Join(source, "cat.jpg"), "cat bytes")
	mapping := testsupport.WriteMapping(t, t.TempDir(), "roster.csv", "Team,Photo\nLions,cat.jpg\n")

	summary := run(t, cfg, mapping)

	if summary.Processed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(summary.Warnings) == 0 || !strings.Contains(summary.Warnings[0], "Period") {
		t.Fatalf("expected degradation warning: %#v", summary.Warnings)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "Lions", "cat.jpg")); err != nil {
		t.Fatalf("expected single-level folder: %v", err)
	}
}

func TestRunOutputDefaultsToSource(t *testing.T) {
	cfg, source := newRun(t)
	cfg.Paths.OutputDir = ""
	testsupport.WriteFile(t, filepath.Join(source, "cat.jpg"), "cat bytes")
	mapping := testsupport.WriteMapping(t, t.TempDir(), "roster.csv", "Team,Photo\nLions,cat.jpg\n")

	summary := run(t, cfg, mapping)

	if summary.Processed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if _, err := os.Stat(filepath.Join(source, "Lions", "cat.jpg")); err != nil {
		t.Fatalf("expected folder under source root: %v", err)
	}
}

func TestRunDryRunTouchesNothing(t *testing.T) {
	cfg, source := newRun(t)
	testsupport.WriteFile(t, filepath.Join(source, "cat.jpg"), "cat bytes")
	mapping := testsupport.WriteMapping(t, t.TempDir(), "roster.csv", "Team,Photo\nLions,cat.jpg\n")

	opts := organize.OptionsFromConfig(cfg, mapping)
	opts.DryRun = true
	summary, err := organize.New(opts, logging.NewNop(), nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Processed != 1 {
		t.Fatalf("dry run should classify rows: %+v", summary)
	}
	if _, err := os.Stat(filepath.Join(source, "cat.jpg")); err != nil {
		t.Fatalf("dry run must not move files: %v", err)
	}
	if _, err := os.Stat(cfg.Paths.OutputDir); !os.IsNotExist(err) {
		t.Fatalf("dry run must not create the output tree, err=%v", err)
	}
}

func TestRunCancellationStopsBetweenRows(t *testing.T) {
	cfg, source := newRun(t)
	testsupport.WriteFile(t, filepath.Join(source, "cat.jpg"), "cat bytes")
	mapping := testsupport.WriteMapping(t, t.TempDir(), "roster.csv",
		"Team,Photo\nLions,cat.jpg\nTigers,cat.jpg\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := organize.OptionsFromConfig(cfg, mapping)
	summary, err := organize.New(opts, logging.NewNop(), nil).Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !summary.Canceled {
		t.Fatal("expected canceled summary")
	}
	if summary.Processed != 0 {
		t.Fatalf("no rows should process after cancellation: %+v", summary)
	}
	if _, err := os.Stat(filepath.Join(source, "cat.jpg")); err != nil {
		t.Fatalf("source must be untouched: %v", err)
	}
}

func TestRunMissingColumnIsFatal(t *testing.T) {
	cfg, source := newRun(t)
	testsupport.WriteFile(t, filepath.Join(source, "cat.jpg"), "cat bytes")
	mapping := testsupport.WriteMapping(t, t.TempDir(), "roster.csv", "Squad,Photo\nLions,cat.jpg\n")

	opts := organize.OptionsFromConfig(cfg, mapping)
	_, err := organize.New(opts, logging.NewNop(), nil).Run(context.Background())
	if !errors.Is(err, organize.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRunEmptyMappingIsFatal(t *testing.T) {
	cfg, _ := newRun(t)
	mapping := testsupport.WriteMapping(t, t.TempDir(), "roster.csv", "")

	opts := organize.OptionsFromConfig(cfg, mapping)
	_, err := organize.New(opts, logging.NewNop(), nil).Run(context.Background())
	if !errors.Is(err, organize.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRunRefusesLockedOutputRoot(t *testing.T) {
	cfg, source := newRun(t)
	testsupport.WriteFile(t, filepath.Join(source, "cat.jpg"), "cat bytes")
	mapping := testsupport.WriteMapping(t, t.TempDir(), "roster.csv", "Team,Photo\nLions,cat.jpg\n")

	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		t.Fatalf("mkdir output: %v", err)
	}
	lock := flock.New(filepath.Join(cfg.Paths.OutputDir, ".snapsort.lock"))
	locked, err := lock.TryLock()
	if err != nil || !locked {
		t.Fatalf("pre-lock output root: %v %v", locked, err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	opts := organize.OptionsFromConfig(cfg, mapping)
	_, err = organize.New(opts, logging.NewNop(), nil).Run(context.Background())
	if !errors.Is(err, organize.ErrBusy) {
		t.Fatalf("expected busy error, got %v", err)
	}
}

func TestRunNotifierReceivesProgress(t *testing.T) {
	cfg, source := newRun(t)
	testsupport.WriteFile(t, filepath.Join(source, "cat.jpg"), "cat bytes")
	testsupport.WriteFile(t, filepath.Join(source, "dog.jpg"), "dog bytes")
	mapping := testsupport.WriteMapping(t, t.TempDir(), "roster.csv",
		"Team,Photo\nLions,cat.jpg\nTigers,dog.jpg\n")

	notifier := &recordingNotifier{}
	opts := organize.OptionsFromConfig(cfg, mapping)
	if _, err := organize.New(opts, logging.NewNop(), notifier).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(notifier.rows) != 2 {
		t.Fatalf("expected a RowDone per row: %#v", notifier.rows)
	}
	last := notifier.rows[len(notifier.rows)-1]
	if last[0] != last[1] {
		t.Fatalf("final RowDone must report completion: %#v", last)
	}
	if len(notifier.statuses) < 2 {
		t.Fatalf("expected load and completion statuses: %#v", notifier.statuses)
	}
	if !strings.Contains(notifier.statuses[0], "2 rows") {
		t.Fatalf("expected header load confirmation first: %q", notifier.statuses[0])
	}
}
