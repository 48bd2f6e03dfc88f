package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSplit(); err != nil {
		return err
	}
	if err := c.validatePairing(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	named := map[string]string{
		"paths.source_dir":     c.Paths.SourceDir,
		"paths.annotation_dir": c.Paths.AnnotationDir,
		"paths.combined_dir":   c.Paths.CombinedDir,
		"paths.train_dir":      c.Paths.TrainDir,
		"paths.val_dir":        c.Paths.ValDir,
		"paths.log_dir":        c.Paths.LogDir,
	}
	for key, value := range named {
		if value == "" {
			return fmt.Errorf("%s must be set", key)
		}
	}
	if c.Paths.SourceDir == c.Paths.AnnotationDir {
		return errors.New("paths.source_dir and paths.annotation_dir must differ")
	}
	if c.Paths.TrainDir == c.Paths.ValDir {
		return errors.New("paths.train_dir and paths.val_dir must differ")
	}
	for _, out := range []string{c.Paths.TrainDir, c.Paths.ValDir} {
		if out == c.Paths.CombinedDir {
			return errors.New("split destinations must not equal paths.combined_dir")
		}
	}
	return nil
}

func (c *Config) validateSplit() error {
	if c.Split.Ratio <= 0 || c.Split.Ratio >= 1 {
		return errors.New("split.ratio must be strictly between 0 and 1")
	}
	if c.Split.Seed < 0 {
		return errors.New("split.seed must be zero or positive")
	}
	return nil
}

func (c *Config) validatePairing() error {
	if c.Pairing.JPEGQuality < 1 || c.Pairing.JPEGQuality > 100 {
		return errors.New("pairing.jpeg_quality must be between 1 and 100")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
