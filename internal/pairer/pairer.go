// Package pairer builds side-by-side AB training images. For every filename
// present in both the source and annotation directories it concatenates the
// annotation image to the right of the source image and writes the result to
// the combined directory under the same name.
package pairer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"abprep/internal/config"
	"abprep/internal/imaging"
	"abprep/internal/manifest"
	"abprep/internal/prep"
	"abprep/internal/progress"
)

// Pairer executes the AB pairing pass.
type Pairer struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New returns a Pairer bound to the given configuration.
func New(cfg *config.Config, logger *slog.Logger) *Pairer {
	return &Pairer{cfg: cfg, logger: logger.With("stage", "pair")}
}

// Result summarizes a completed pairing pass.
type Result struct {
	// Paired counts AB images written.
	Paired int
	// SkippedSource counts files present only in the source directory.
	SkippedSource int
	// SkippedAnnotation counts files present only in the annotation directory.
	SkippedAnnotation int
	// Failures lists matched pairs that could not be combined.
	Failures []prep.FileError
}

// Run pairs every matched filename. Unmatched names are skipped without
// error. Individual pair failures do not stop the pass; they are collected
// and returned as a single BatchError once every entry has been visited.
func (p *Pairer) Run(ctx context.Context) (*Result, error) {
	sourceNames, err := manifest.List(p.cfg.Paths.SourceDir)
	if err != nil {
		return nil, prep.Wrap(prep.ErrIO, "pair", "enumerate source", "", err)
	}
	annotationNames, err := manifest.List(p.cfg.Paths.AnnotationDir)
	if err != nil {
		return nil, prep.Wrap(prep.ErrIO, "pair", "enumerate annotations", "", err)
	}

	pairing := manifest.Pair(sourceNames, annotationNames)
	if err := os.MkdirAll(p.cfg.Paths.CombinedDir, 0o755); err != nil {
		return nil, prep.Wrap(prep.ErrIO, "pair", "create combined dir", "", err)
	}

	p.logger.Info("pairing started",
		"matched", len(pairing.Matched),
		"source_only", len(pairing.OnlyA),
		"annotation_only", len(pairing.OnlyB),
	)

	result := &Result{
		SkippedSource:     len(pairing.OnlyA),
		SkippedAnnotation: len(pairing.OnlyB),
	}

	bar := progress.New(pairing.Total(), "pairing")
	defer bar.Finish()

	for _, name := range pairing.OnlyA {
		p.logger.Debug("skipping unmatched file", "name", name, "side", "source")
		bar.Step()
	}
	for _, name := range pairing.OnlyB {
		p.logger.Debug("skipping unmatched file", "name", name, "side", "annotation")
		bar.Step()
	}

	for _, name := range pairing.Matched {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := p.pairOne(name); err != nil {
			p.logger.Warn("pairing failed", "name", name, "error", err)
			result.Failures = append(result.Failures, prep.FileError{Name: name, Err: err})
		} else {
			result.Paired++
		}
		bar.Step()
	}

	p.logger.Info("pairing finished", "paired", result.Paired, "failed", len(result.Failures))

	if len(result.Failures) > 0 {
		return result, &prep.BatchError{Stage: "pair", Failures: result.Failures}
	}
	return result, nil
}

func (p *Pairer) pairOne(name string) error {
	source, err := imaging.Decode(filepath.Join(p.cfg.Paths.SourceDir, name))
	if err != nil {
		return prep.Wrap(prep.ErrDecode, "pair", "decode source", name, err)
	}
	annotation, err := imaging.Decode(filepath.Join(p.cfg.Paths.AnnotationDir, name))
	if err != nil {
		return prep.Wrap(prep.ErrDecode, "pair", "decode annotation", name, err)
	}

	combined, err := imaging.ConcatHorizontal(source, annotation)
	if err != nil {
		return prep.Wrap(prep.ErrShapeMismatch, "pair", "concatenate", name, err)
	}

	target := filepath.Join(p.cfg.Paths.CombinedDir, name)
	if err := imaging.Encode(target, combined, p.cfg.Pairing.JPEGQuality); err != nil {
		return prep.Wrap(prep.ErrIO, "pair", "encode", name, err)
	}
	return nil
}
