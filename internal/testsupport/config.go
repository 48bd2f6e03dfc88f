// Package testsupport provides shared fixtures for abprep tests: temp-backed
// configurations and synthetic image files.
package testsupport

import (
	"path/filepath"
	"testing"

	"abprep/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// Input and output directories all exist when it returns.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.SourceDir = filepath.Join(base, "predicted_wob_imgs")
	cfg.Paths.AnnotationDir = filepath.Join(base, "annotated_imgs")
	cfg.Paths.CombinedDir = filepath.Join(base, "combined_imgs")
	cfg.Paths.TrainDir = filepath.Join(base, "train")
	cfg.Paths.ValDir = filepath.Join(base, "val")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Split.Seed = 1

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.SourceDir, cfg.Paths.AnnotationDir} {
		if err := mkdirAll(dir); err != nil {
			t.Fatalf("create input dir %s: %v", dir, err)
		}
	}

	return &cfg
}

// WithRatio overrides the split ratio on the test config.
func WithRatio(ratio float64) ConfigOption {
	return func(c *config.Config) {
		c.Split.Ratio = ratio
	}
}

// WithSeed overrides the shuffle seed on the test config.
func WithSeed(seed int64) ConfigOption {
	return func(c *config.Config) {
		c.Split.Seed = seed
	}
}
