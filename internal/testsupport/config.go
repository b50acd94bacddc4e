package testsupport

import (
	"path/filepath"
	"testing"

	"snapsort/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.SourceDir = filepath.Join(base, "photos")
	cfg.Paths.OutputDir = filepath.Join(base, "sorted")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithMode sets the organize mode on the test config.
func WithMode(mode string) ConfigOption {
	return func(c *config.Config) {
		c.Options.Mode = mode
	}
}

// WithSecondary enables the secondary folder column on the test config.
func WithSecondary(name string) ConfigOption {
	return func(c *config.Config) {
		c.Columns.Secondary = name
		c.Columns.UseSecondary = true
	}
}
