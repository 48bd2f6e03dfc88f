// Package progress renders the single overwriting progress line for batch
// passes. Output is suppressed when stderr is not a terminal so logs and
// pipes stay clean.
package progress

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Bar tracks completion of a fixed-size batch.
type Bar struct {
	bar *progressbar.ProgressBar
}

// New returns a progress bar over total units described by description.
func New(total int, description string) *Bar {
	return newBar(total, description, os.Stderr, stderrIsTerminal())
}

func newBar(total int, description string, out io.Writer, visible bool) *Bar {
	if !visible {
		out = io.Discard
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
	)
	return &Bar{bar: bar}
}

// Step records one processed manifest entry, matched or skipped.
func (b *Bar) Step() {
	_ = b.bar.Add(1)
}

// Finish completes and clears the line.
func (b *Bar) Finish() {
	_ = b.bar.Finish()
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
