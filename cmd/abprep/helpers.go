package main

import (
	"context"
	"time"

	"abprep/internal/runlog"
	"abprep/internal/splitter"
)

// finishRun stamps the run record on a background context so bookkeeping
// survives a canceled run. Failures to record are logged, never fatal.
func finishRun(env *runEnv, record *runlog.Run, runErr error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := env.store.Finish(ctx, record, runErr); err != nil {
		env.logger.Warn("record run outcome", "run_id", record.ID, "error", err)
	}
}

func recordAssignments(env *runEnv, runID string, assignment splitter.Assignment) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := env.store.RecordAssignments(ctx, runID, assignment.Train, assignment.Val); err != nil {
		env.logger.Warn("record split assignments", "run_id", runID, "error", err)
	}
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
