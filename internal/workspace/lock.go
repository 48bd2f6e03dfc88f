// Package workspace serializes dataset preparation runs. A file lock under
// the data root keeps two concurrent runs from interleaving writes into the
// same output tree.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock guards a dataset directory tree for the duration of a run.
type Lock struct {
	lock *flock.Flock
}

// Acquire takes the run lock under root, creating root if needed. It fails
// immediately when another run holds the lock.
func Acquire(root string) (*Lock, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create data root %q: %w", root, err)
	}

	lock := flock.New(filepath.Join(root, ".abprep.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another abprep run is active in %q", root)
	}
	return &Lock{lock: lock}, nil
}

// Release drops the lock. Safe to call on a nil receiver.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
