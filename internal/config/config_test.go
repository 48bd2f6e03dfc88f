package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"abprep/internal/config"
)

func TestLoadDefaultsWhenNoFileExists(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	origWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd returned error: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origWD); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if filepath.Base(cfg.Paths.SourceDir) != "predicted_wob_imgs" {
		t.Fatalf("unexpected source dir: %q", cfg.Paths.SourceDir)
	}
	if !filepath.IsAbs(cfg.Paths.CombinedDir) {
		t.Fatalf("expected combined dir to be absolute, got %q", cfg.Paths.CombinedDir)
	}
	if cfg.Split.Ratio != 0.8 {
		t.Fatalf("unexpected split ratio: %v", cfg.Split.Ratio)
	}
	if cfg.Split.Seed != 0 {
		t.Fatalf("expected zero default seed, got %d", cfg.Split.Seed)
	}
	if !cfg.Split.VerifyCopies {
		t.Fatal("expected copy verification enabled by default")
	}
	if cfg.Pairing.JPEGQuality != 95 {
		t.Fatalf("unexpected jpeg quality: %d", cfg.Pairing.JPEGQuality)
	}
	wantLogDir := filepath.Join(tempHome, ".local", "share", "abprep", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
}

func TestLoadExplicitFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abprep.toml")
	content := strings.Join([]string{
		"[paths]",
		`source_dir = "` + filepath.Join(dir, "a") + `"`,
		`annotation_dir = "` + filepath.Join(dir, "b") + `"`,
		`combined_dir = "` + filepath.Join(dir, "ab") + `"`,
		`train_dir = "` + filepath.Join(dir, "train") + `"`,
		`val_dir = "` + filepath.Join(dir, "val") + `"`,
		`log_dir = "` + filepath.Join(dir, "logs") + `"`,
		"",
		"[split]",
		"ratio = 0.9",
		"seed = 42",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Split.Ratio != 0.9 {
		t.Fatalf("unexpected ratio: %v", cfg.Split.Ratio)
	}
	if cfg.Split.Seed != 42 {
		t.Fatalf("unexpected seed: %d", cfg.Split.Seed)
	}
	if cfg.Paths.TrainDir != filepath.Join(dir, "train") {
		t.Fatalf("unexpected train dir: %q", cfg.Paths.TrainDir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"ratio too high", func(c *config.Config) { c.Split.Ratio = 1.0 }},
		{"ratio zero", func(c *config.Config) { c.Split.Ratio = 0 }},
		{"negative seed", func(c *config.Config) { c.Split.Seed = -1 }},
		{"jpeg quality", func(c *config.Config) { c.Pairing.JPEGQuality = 0 }},
		{"same inputs", func(c *config.Config) { c.Paths.AnnotationDir = c.Paths.SourceDir }},
		{"same outputs", func(c *config.Config) { c.Paths.ValDir = c.Paths.TrainDir }},
		{"log format", func(c *config.Config) { c.Logging.Format = "yaml" }},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSampleWritesParsableConfig(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Split.Ratio != 0.8 {
		t.Fatalf("sample ratio mismatch: %v", cfg.Split.Ratio)
	}
}
