package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"snapsort/internal/config"
	"snapsort/internal/imageindex"
)

func newScanCommand(cctx *commandContext) *cobra.Command {
	var topLevel bool

	cmd := &cobra.Command{
		Use:   "scan [directory]",
		Short: "Preview which image files a run would be able to match",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			root := cfg.Paths.SourceDir
			if len(args) == 1 {
				if root, err = config.ExpandPath(args[0]); err != nil {
					return err
				}
			}
			if strings.TrimSpace(root) == "" {
				return errors.New("directory required: pass one, set paths.source_dir, or export SNAPSORT_SOURCE_DIR")
			}

			recursive := cfg.Options.RecurseSubfolders
			if cmd.Flags().Changed("top-level") {
				recursive = !topLevel
			}

			index, err := imageindex.Build(root, recursive)
			if err != nil {
				return fmt.Errorf("scan %s: %w", root, err)
			}

			counts := make(map[string]int)
			for _, entry := range index.Entries() {
				counts[strings.ToLower(filepath.Ext(entry.Name))]++
			}
			extensions := make([]string, 0, len(counts))
			for ext := range counts {
				extensions = append(extensions, ext)
			}
			sort.Strings(extensions)

			rows := make([][]string, 0, len(extensions))
			for _, ext := range extensions {
				rows = append(rows, []string{ext, strconv.Itoa(counts[ext])})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d image files under %s\n", index.Len(), root)
			if len(rows) > 0 {
				fmt.Fprintln(out, renderTable([]string{"Extension", "Files"}, rows, 2))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&topLevel, "top-level", false, "Only scan direct children of the directory")

	return cmd
}
