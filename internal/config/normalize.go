package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeColumns()
	c.normalizeOptions()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if c.Paths.SourceDir == "" {
		if value, ok := os.LookupEnv("SNAPSORT_SOURCE_DIR"); ok {
			c.Paths.SourceDir = value
		}
	}
	if c.Paths.OutputDir == "" {
		if value, ok := os.LookupEnv("SNAPSORT_OUTPUT_DIR"); ok {
			c.Paths.OutputDir = value
		}
	}

	var err error
	if c.Paths.SourceDir, err = expandPath(c.Paths.SourceDir); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeColumns() {
	c.Columns.Folder = strings.TrimSpace(c.Columns.Folder)
	c.Columns.Photo = strings.TrimSpace(c.Columns.Photo)
	c.Columns.Secondary = strings.TrimSpace(c.Columns.Secondary)
	if c.Columns.Folder == "" {
		c.Columns.Folder = defaultFolderColumn
	}
	if c.Columns.Photo == "" {
		c.Columns.Photo = defaultPhotoColumn
	}
	if c.Columns.Secondary == "" {
		c.Columns.UseSecondary = false
	}
}

func (c *Config) normalizeOptions() {
	c.Options.Mode = strings.ToLower(strings.TrimSpace(c.Options.Mode))
	if c.Options.Mode == "" {
		c.Options.Mode = defaultMode
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
