package organize

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"snapsort/internal/config"
	"snapsort/internal/fileutil"
	"snapsort/internal/imageindex"
	"snapsort/internal/logging"
	"snapsort/internal/tabular"
)

// Options is the immutable configuration for one run. OutputDir defaults to
// SourceDir when empty.
type Options struct {
	TablePath string
	SourceDir string
	OutputDir string

	FolderColumn    string
	PhotoColumn     string
	SecondaryColumn string
	UseSecondary    bool

	Mode              string // config.ModeMove or config.ModeCopy
	RecurseSubfolders bool
	OverwriteExisting bool
	WriteMissingLog   bool
	DryRun            bool
}

// OptionsFromConfig builds run options from loaded configuration plus the
// mapping file path.
func OptionsFromConfig(cfg *config.Config, tablePath string) Options {
	opts := Options{
		TablePath:         tablePath,
		SourceDir:         cfg.Paths.SourceDir,
		OutputDir:         cfg.Paths.OutputDir,
		FolderColumn:      cfg.Columns.Folder,
		PhotoColumn:       cfg.Columns.Photo,
		Mode:              cfg.Options.Mode,
		RecurseSubfolders: cfg.Options.RecurseSubfolders,
		OverwriteExisting: cfg.Options.OverwriteExisting,
		WriteMissingLog:   cfg.Options.WriteMissingLog,
	}
	if cfg.Columns.UseSecondary {
		opts.UseSecondary = true
		opts.SecondaryColumn = cfg.Columns.Secondary
	}
	return opts
}

// Engine runs the per-row organize pipeline: resolve the target folder,
// locate the source photo, and move or copy it into the output tree.
type Engine struct {
	opts     Options
	logger   *slog.Logger
	notifier Notifier
}

// New constructs an engine. logger and notifier may be nil.
func New(opts Options, logger *slog.Logger, notifier Notifier) *Engine {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Engine{
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "engine"),
		notifier: notifier,
	}
}

// Run executes the pipeline. It returns a non-nil error only for run-fatal
// conditions (unusable configuration, locked output root); per-row failures
// accumulate on the Summary and never abort the run. Cancellation via ctx is
// honored at row boundaries: the summary gathered so far is returned and
// already-moved files stay in place.
func (e *Engine) Run(ctx context.Context) (*Summary, error) {
	opts := e.opts
	summary := &Summary{RunID: uuid.NewString()}
	logger := e.logger.With(logging.String(logging.FieldRunID, summary.RunID))

	if strings.TrimSpace(opts.TablePath) == "" {
		return nil, Wrap(ErrConfiguration, "validate inputs", "mapping file path is empty", nil)
	}
	if strings.TrimSpace(opts.SourceDir) == "" {
		return nil, Wrap(ErrConfiguration, "validate inputs", "source directory is empty", nil)
	}
	if info, err := os.Stat(opts.SourceDir); err != nil || !info.IsDir() {
		return nil, Wrap(ErrConfiguration, "validate inputs", fmt.Sprintf("source directory %q is not usable", opts.SourceDir), err)
	}
	if opts.Mode != config.ModeMove && opts.Mode != config.ModeCopy {
		return nil, Wrap(ErrConfiguration, "validate inputs", fmt.Sprintf("unknown mode %q", opts.Mode), nil)
	}
	outputRoot := opts.OutputDir
	if strings.TrimSpace(outputRoot) == "" {
		outputRoot = opts.SourceDir
	}

	table, err := tabular.Load(opts.TablePath)
	if err != nil {
		return nil, Wrap(ErrConfiguration, "load mapping file", opts.TablePath, err)
	}

	roles := tabular.Roles{Folder: opts.FolderColumn, Photo: opts.PhotoColumn}
	if opts.UseSecondary {
		roles.Secondary = opts.SecondaryColumn
	}
	mapping, err := tabular.ResolveColumns(table.Header, roles)
	if err != nil {
		return nil, Wrap(ErrConfiguration, "resolve columns", opts.TablePath, err)
	}
	if opts.UseSecondary && mapping.Secondary < 0 {
		summary.recordWarning("secondary column %q not found; using single-level folders", opts.SecondaryColumn)
		e.notifier.Status(fmt.Sprintf("Secondary column %q not found; using single-level folders", opts.SecondaryColumn))
		logger.Warn("secondary column not found",
			logging.String("column", opts.SecondaryColumn))
	}

	index, err := imageindex.Build(opts.SourceDir, opts.RecurseSubfolders)
	if err != nil {
		return nil, Wrap(ErrConfiguration, "index source directory", opts.SourceDir, err)
	}

	if !opts.DryRun {
		if err := os.MkdirAll(outputRoot, 0o755); err != nil {
			return nil, Wrap(ErrConfiguration, "ensure output root", outputRoot, err)
		}
		lock := flock.New(filepath.Join(outputRoot, ".snapsort.lock"))
		locked, err := lock.TryLock()
		if err != nil {
			return nil, Wrap(ErrConfiguration, "lock output root", outputRoot, err)
		}
		if !locked {
			return nil, Wrap(ErrBusy, "lock output root", outputRoot, nil)
		}
		defer func() {
			_ = lock.Unlock()
		}()
	}

	summary.TotalRows = len(table.Rows)
	e.notifier.Status(fmt.Sprintf("Loaded %d rows from %s (%d photos indexed)",
		summary.TotalRows, filepath.Base(opts.TablePath), index.Len()))
	logger.Info("run started",
		logging.String("mapping_file", opts.TablePath),
		logging.String("source_dir", opts.SourceDir),
		logging.String("output_dir", outputRoot),
		logging.String("mode", opts.Mode),
		logging.Int("rows", summary.TotalRows),
		logging.Int("indexed", index.Len()),
		logging.Bool("dry_run", opts.DryRun),
	)

	for i, row := range table.Rows {
		if ctx.Err() != nil {
			summary.Canceled = true
			logger.Warn("run canceled", logging.Int("rows_done", i))
			e.notifier.Status(fmt.Sprintf("Canceled after %d of %d rows", i, summary.TotalRows))
			break
		}
		e.processRow(logger, summary, index, mapping, outputRoot, row)
		e.notifier.RowDone(i+1, summary.TotalRows)
	}

	if opts.WriteMissingLog && len(summary.Missing) > 0 && !summary.Canceled && !opts.DryRun {
		if err := writeMissingReport(outputRoot, summary.RunID, summary.Missing, time.Now()); err != nil {
			summary.recordWarning("missing-photos report not written: %v", err)
			logger.Warn("missing report write failed", logging.Error(err))
		} else {
			e.notifier.Status(fmt.Sprintf("Wrote %s (%d missing)", MissingReportName, len(summary.Missing)))
		}
	}

	logger.Info("run finished",
		logging.Int("processed", summary.Processed),
		logging.Int("skipped", summary.Skipped),
		logging.Int("missing", len(summary.Missing)),
		logging.Int("duplicates", len(summary.Duplicates)),
		logging.Int64("bytes", summary.Bytes),
		logging.Bool("canceled", summary.Canceled),
	)
	e.notifier.Status(fmt.Sprintf("Done: %d processed, %d skipped, %d missing, %d duplicates",
		summary.Processed, summary.Skipped, len(summary.Missing), len(summary.Duplicates)))
	return summary, nil
}

// processRow classifies one row into exactly one of processed, skipped,
// missing, or duplicate.
func (e *Engine) processRow(logger *slog.Logger, summary *Summary, index *imageindex.Index, mapping tabular.Mapping, outputRoot string, row tabular.Row) {
	opts := e.opts
	rowLogger := logger.With(logging.Int(logging.FieldRow, row.Line))

	need := mapping.Folder
	if mapping.Photo > need {
		need = mapping.Photo
	}
	if len(row.Fields) <= need {
		summary.recordSkip(row.Line, "expected at least %d fields, got %d", need+1, len(row.Fields))
		rowLogger.Warn("row skipped", logging.String("reason", "too few fields"))
		return
	}

	folder := strings.TrimSpace(row.Fields[mapping.Folder])
	photo := strings.TrimSpace(row.Fields[mapping.Photo])
	if folder == "" {
		summary.recordSkip(row.Line, "empty folder value")
		rowLogger.Warn("row skipped", logging.String("reason", "empty folder value"))
		return
	}
	if photo == "" {
		summary.recordSkip(row.Line, "empty photo value")
		rowLogger.Warn("row skipped", logging.String("reason", "empty photo value"))
		return
	}

	target := folder
	if mapping.Secondary >= 0 && mapping.Secondary < len(row.Fields) {
		if secondary := strings.TrimSpace(row.Fields[mapping.Secondary]); secondary != "" {
			target = filepath.Join(folder, secondary)
		}
	}

	targetDir := filepath.Join(outputRoot, target)
	if !opts.DryRun {
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			summary.recordSkip(row.Line, "create folder %q: %v", target, err)
			rowLogger.Warn("row skipped", logging.String("reason", "folder creation failed"), logging.Error(err))
			return
		}
	}

	rel, ok := index.Resolve(photo)
	if !ok {
		summary.recordMissing(photo)
		rowLogger.Info("photo missing", logging.String("photo", photo))
		return
	}
	sourcePath := filepath.Join(opts.SourceDir, rel)
	info, err := os.Stat(sourcePath)
	if err != nil {
		// Stale index hit: the file was indexed but has since been moved.
		summary.recordMissing(photo)
		rowLogger.Info("photo missing", logging.String("photo", photo), logging.String("reason", "indexed file gone"))
		return
	}

	resolvedName := filepath.Base(rel)
	destPath := filepath.Join(targetDir, resolvedName)
	if _, err := os.Stat(destPath); err == nil && !opts.OverwriteExisting {
		summary.recordDuplicate(resolvedName)
		rowLogger.Info("destination occupied", logging.String("photo", resolvedName), logging.String("folder", target))
		return
	}

	if !opts.DryRun {
		var opErr error
		if opts.Mode == config.ModeCopy {
			opErr = fileutil.CopyFile(sourcePath, destPath)
		} else {
			opErr = fileutil.MoveFile(sourcePath, destPath)
		}
		if opErr != nil {
			summary.recordSkip(row.Line, "%s %q: %v", opts.Mode, resolvedName, opErr)
			rowLogger.Warn("row skipped", logging.String("reason", "file operation failed"), logging.Error(opErr))
			return
		}
	}

	summary.Processed++
	summary.Bytes += info.Size()
	rowLogger.Debug("row processed",
		logging.String("photo", resolvedName),
		logging.String("folder", target),
		logging.Int64("bytes", info.Size()),
	)
}
