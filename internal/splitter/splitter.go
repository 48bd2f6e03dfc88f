// Package splitter partitions a directory of combined images into train and
// validation subsets by copying files. The shuffle is driven by an explicit
// seed so any partition can be reproduced after the fact.
package splitter

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"abprep/internal/config"
	"abprep/internal/fileutil"
	"abprep/internal/manifest"
	"abprep/internal/prep"
	"abprep/internal/progress"
)

// Assignment is a disjoint, covering partition of a manifest.
type Assignment struct {
	Train []string
	Val   []string
}

// Assign shuffles names with rng and assigns floor(ratio*N) of them to the
// training subset. The input slice is not modified.
func Assign(names []string, ratio float64, rng *rand.Rand) Assignment {
	shuffled := make([]string, len(names))
	copy(shuffled, names)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	trainCount := int(math.Floor(ratio * float64(len(shuffled))))
	return Assignment{
		Train: shuffled[:trainCount],
		Val:   shuffled[trainCount:],
	}
}

// Splitter executes the train/val copy pass.
type Splitter struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New returns a Splitter bound to the given configuration.
func New(cfg *config.Config, logger *slog.Logger) *Splitter {
	return &Splitter{cfg: cfg, logger: logger.With("stage", "split")}
}

// Result summarizes a completed split pass.
type Result struct {
	Total      int
	TrainCount int
	ValCount   int
	// Seed is the shuffle seed actually used, whether configured or drawn.
	Seed       int64
	Assignment Assignment
	Failures   []prep.FileError
}

// Run partitions the combined directory and copies every file into exactly
// one destination. Sources are never mutated. Copy failures are collected
// per file and returned as a BatchError after the full pass.
func (s *Splitter) Run(ctx context.Context) (*Result, error) {
	names, err := manifest.List(s.cfg.Paths.CombinedDir)
	if err != nil {
		return nil, prep.Wrap(prep.ErrIO, "split", "enumerate combined", "", err)
	}

	for _, dir := range []string{s.cfg.Paths.TrainDir, s.cfg.Paths.ValDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, prep.Wrap(prep.ErrIO, "split", "create destination", dir, err)
		}
		s.warnWhenNotEmpty(dir)
	}

	seed := s.cfg.Split.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	assignment := Assign(names, s.cfg.Split.Ratio, rng)
	result := &Result{
		Total:      len(names),
		Seed:       seed,
		Assignment: assignment,
	}

	s.logger.Info("split started",
		"total", len(names),
		"train", len(assignment.Train),
		"val", len(assignment.Val),
		"ratio", s.cfg.Split.Ratio,
		"seed", seed,
	)

	bar := progress.New(len(names), "splitting")
	defer bar.Finish()

	copyInto := func(subset []string, destDir string, count *int) error {
		for _, name := range subset {
			if err := ctx.Err(); err != nil {
				return err
			}
			src := filepath.Join(s.cfg.Paths.CombinedDir, name)
			dst := filepath.Join(destDir, name)
			if err := s.copyFile(src, dst); err != nil {
				s.logger.Warn("copy failed", "name", name, "error", err)
				result.Failures = append(result.Failures, prep.FileError{
					Name: name,
					Err:  prep.Wrap(prep.ErrIO, "split", "copy", name, err),
				})
			} else {
				*count++
			}
			bar.Step()
		}
		return nil
	}

	if err := copyInto(assignment.Train, s.cfg.Paths.TrainDir, &result.TrainCount); err != nil {
		return result, err
	}
	if err := copyInto(assignment.Val, s.cfg.Paths.ValDir, &result.ValCount); err != nil {
		return result, err
	}

	s.logger.Info("split finished",
		"train", result.TrainCount,
		"val", result.ValCount,
		"failed", len(result.Failures),
	)

	if len(result.Failures) > 0 {
		return result, &prep.BatchError{Stage: "split", Failures: result.Failures}
	}
	return result, nil
}

func (s *Splitter) copyFile(src, dst string) error {
	if s.cfg.Split.VerifyCopies {
		return fileutil.CopyFileVerified(src, dst)
	}
	return fileutil.CopyFile(src, dst)
}

func (s *Splitter) warnWhenNotEmpty(dir string) {
	existing, err := manifest.List(dir)
	if err == nil && len(existing) > 0 {
		s.logger.Warn("destination is not empty; old and new split files will mix",
			"dir", dir, "existing", len(existing))
	}
}
