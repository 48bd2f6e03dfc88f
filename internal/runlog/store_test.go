package runlog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"abprep/internal/runlog"
	"abprep/internal/testsupport"
)

func openStore(t *testing.T) *runlog.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store, err := runlog.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestBeginAndFinishRun(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.Begin(ctx, runlog.KindRun, 0.8, 42)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if run.ID == "" {
		t.Fatal("expected run id")
	}

	run.Paired = 5
	run.Skipped = 2
	run.TrainCount = 4
	run.ValCount = 1
	if err := store.Finish(ctx, run, nil); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	loaded, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected run to be persisted")
	}
	if !loaded.Succeeded() {
		t.Fatalf("expected success, got %+v", loaded)
	}
	if loaded.Paired != 5 || loaded.TrainCount != 4 || loaded.ValCount != 1 {
		t.Fatalf("counts not persisted: %+v", loaded)
	}
	if loaded.Seed != 42 || loaded.Ratio != 0.8 {
		t.Fatalf("settings not persisted: %+v", loaded)
	}
}

func TestFinishRecordsErrorMessage(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.Begin(ctx, runlog.KindPair, 0.8, 1)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := store.Finish(ctx, run, errors.New("pair: 1 file failed")); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	loaded, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if loaded.Succeeded() {
		t.Fatal("expected failed run")
	}
	if loaded.ErrorMessage == "" {
		t.Fatal("expected error message to be stored")
	}
}

func TestRecordAndReadAssignments(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.Begin(ctx, runlog.KindSplit, 0.8, 7)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	train := []string{"2.png", "1.png"}
	val := []string{"3.png"}
	if err := store.RecordAssignments(ctx, run.ID, train, val); err != nil {
		t.Fatalf("RecordAssignments: %v", err)
	}

	assignments, err := store.Assignments(ctx, run.ID)
	if err != nil {
		t.Fatalf("Assignments: %v", err)
	}
	if len(assignments) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(assignments))
	}
	// Ordered by filename.
	if assignments[0].Filename != "1.png" || assignments[0].Subset != runlog.SubsetTrain {
		t.Fatalf("unexpected first assignment: %+v", assignments[0])
	}
	if assignments[2].Filename != "3.png" || assignments[2].Subset != runlog.SubsetVal {
		t.Fatalf("unexpected last assignment: %+v", assignments[2])
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.Begin(ctx, runlog.KindPair, 0.8, 1)
	if err != nil {
		t.Fatalf("Begin first: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	second, err := store.Begin(ctx, runlog.KindSplit, 0.8, 2)
	if err != nil {
		t.Fatalf("Begin second: %v", err)
	}

	runs, err := store.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second.ID || runs[1].ID != first.ID {
		t.Fatalf("unexpected order: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestGetRunAbsentReturnsNil(t *testing.T) {
	store := openStore(t)
	run, err := store.GetRun(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run != nil {
		t.Fatalf("expected nil for absent run, got %+v", run)
	}
}
