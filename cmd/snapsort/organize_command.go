package main

import (
	"errors"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"snapsort/internal/config"
	"snapsort/internal/logging"
	"snapsort/internal/organize"
)

func newOrganizeCommand(cctx *commandContext) *cobra.Command {
	var (
		sourceDir       string
		outputDir       string
		folderColumn    string
		photoColumn     string
		secondaryColumn string
		mode            string
		recurse         bool
		overwrite       bool
		missingLog      bool
		dryRun          bool
	)

	cmd := &cobra.Command{
		Use:   "organize <mapping-file>",
		Short: "Place photos into folders per a CSV or XLSX mapping",
		Long: `Organize reads a mapping file whose header names a folder column and a
photo column, then moves (or copies) each referenced photo from the source
directory into the named folder under the output directory. Photos listed
without an extension or with different casing are still matched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			runCfg := *cfg

			flags := cmd.Flags()
			if flags.Changed("source") {
				if runCfg.Paths.SourceDir, err = config.ExpandPath(sourceDir); err != nil {
					return err
				}
			}
			if flags.Changed("output") {
				if runCfg.Paths.OutputDir, err = config.ExpandPath(outputDir); err != nil {
					return err
				}
			}
			if flags.Changed("folder-column") {
				runCfg.Columns.Folder = folderColumn
			}
			if flags.Changed("photo-column") {
				runCfg.Columns.Photo = photoColumn
			}
			if flags.Changed("secondary-column") {
				runCfg.Columns.Secondary = strings.TrimSpace(secondaryColumn)
				runCfg.Columns.UseSecondary = runCfg.Columns.Secondary != ""
			}
			if flags.Changed("mode") {
				runCfg.Options.Mode = strings.ToLower(strings.TrimSpace(mode))
			}
			if flags.Changed("recurse") {
				runCfg.Options.RecurseSubfolders = recurse
			}
			if flags.Changed("overwrite") {
				runCfg.Options.OverwriteExisting = overwrite
			}
			if flags.Changed("missing-log") {
				runCfg.Options.WriteMissingLog = missingLog
			}
			if err := runCfg.Validate(); err != nil {
				return err
			}
			if strings.TrimSpace(runCfg.Paths.SourceDir) == "" {
				return errors.New("source directory required: pass --source, set paths.source_dir, or export SNAPSORT_SOURCE_DIR")
			}

			logger, err := logging.NewFromConfig(&runCfg)
			if err != nil {
				return err
			}

			tablePath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			opts := organize.OptionsFromConfig(&runCfg, tablePath)
			opts.DryRun = dryRun

			notifier := newCLINotifier(cmd.OutOrStdout(), cmd.ErrOrStderr())
			summary, err := organize.New(opts, logger, notifier).Run(ctx)
			if err != nil {
				return err
			}

			renderSummary(cmd.OutOrStdout(), summary, dryRun)
			if summary.Canceled {
				return ctx.Err()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceDir, "source", "s", "", "Directory tree containing the photos")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Where organized folders are created (defaults to the source directory)")
	cmd.Flags().StringVar(&folderColumn, "folder-column", "", "Header name of the folder column")
	cmd.Flags().StringVar(&photoColumn, "photo-column", "", "Header name of the photo filename column")
	cmd.Flags().StringVar(&secondaryColumn, "secondary-column", "", "Header name of an optional second-level folder column")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Organize mode: move or copy")
	cmd.Flags().BoolVar(&recurse, "recurse", true, "Index photos in subdirectories of the source")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace files already present at the destination")
	cmd.Flags().BoolVar(&missingLog, "missing-log", false, "Write missing_photos.txt into the output root")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Classify every row without touching any file")

	return cmd
}
