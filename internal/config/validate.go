package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateColumns(); err != nil {
		return err
	}
	if err := c.validateOptions(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateColumns() error {
	if c.Columns.Folder == "" {
		return errors.New("columns.folder must be set")
	}
	if c.Columns.Photo == "" {
		return errors.New("columns.photo must be set")
	}
	if c.Columns.UseSecondary && c.Columns.Secondary == "" {
		return errors.New("columns.secondary must be set when columns.use_secondary is true")
	}
	return nil
}

func (c *Config) validateOptions() error {
	switch c.Options.Mode {
	case ModeMove, ModeCopy:
		return nil
	default:
		return fmt.Errorf("options.mode must be %q or %q, got %q", ModeMove, ModeCopy, c.Options.Mode)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
