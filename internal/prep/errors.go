// Package prep defines the shared error taxonomy for dataset preparation
// stages. Sentinel errors classify per-file failures so batch reports can
// distinguish bad inputs from environmental problems.
package prep

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrShapeMismatch marks paired images whose heights differ.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrDecode marks files that could not be decoded as images.
	ErrDecode = errors.New("decode error")
	// ErrIO marks unreadable or unwritable paths.
	ErrIO = errors.New("io error")
	// ErrConfiguration marks unusable settings detected at run time.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FileError ties a failure to the manifest entry that caused it.
type FileError struct {
	Name string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// BatchError aggregates per-file failures from a completed pass. The batch
// keeps going past individual failures; callers receive the full list at the
// end instead of an abort at the first bad file.
type BatchError struct {
	Stage    string
	Failures []FileError
}

func (e *BatchError) Error() string {
	if len(e.Failures) == 1 {
		return fmt.Sprintf("%s: 1 file failed: %v", e.Stage, e.Failures[0])
	}
	names := make([]string, 0, len(e.Failures))
	for _, failure := range e.Failures {
		names = append(names, failure.Name)
	}
	return fmt.Sprintf("%s: %d files failed: %s", e.Stage, len(e.Failures), strings.Join(names, ", "))
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "preparation failure"
	}
	return strings.Join(parts, ": ")
}
