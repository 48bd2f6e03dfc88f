package prep_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"abprep/internal/prep"
)

func TestWrapTagsMarkerAndKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := prep.Wrap(prep.ErrDecode, "pair", "decode", "1.png", cause)

	if !errors.Is(err, prep.ErrDecode) {
		t.Fatalf("expected ErrDecode marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "pair: decode: 1.png") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapDefaultsToIOMarker(t *testing.T) {
	err := prep.Wrap(nil, "split", "copy", "", nil)
	if !errors.Is(err, prep.ErrIO) {
		t.Fatalf("expected ErrIO fallback, got %v", err)
	}
}

func TestBatchErrorListsFailedFiles(t *testing.T) {
	batch := &prep.BatchError{
		Stage: "pair",
		Failures: []prep.FileError{
			{Name: "1.png", Err: prep.ErrShapeMismatch},
			{Name: "2.png", Err: fmt.Errorf("%w: truncated", prep.ErrDecode)},
		},
	}

	msg := batch.Error()
	for _, want := range []string{"pair", "2 files failed", "1.png", "2.png"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}

	if !errors.Is(batch.Failures[0], prep.ErrShapeMismatch) {
		t.Fatal("expected FileError to unwrap to its marker")
	}
}
