package runlog

import "time"

// Kind identifies which pipeline surface produced a run record.
type Kind string

const (
	KindRun   Kind = "run"
	KindPair  Kind = "pair"
	KindSplit Kind = "split"
)

// Subset names the destination of a split assignment.
type Subset string

const (
	SubsetTrain Subset = "train"
	SubsetVal   Subset = "val"
)

// Run records one pipeline invocation. Counts that do not apply to the kind
// stay zero (a pair-only run has no train/val counts and vice versa).
type Run struct {
	ID           string
	Kind         Kind
	StartedAt    time.Time
	FinishedAt   *time.Time
	Ratio        float64
	Seed         int64
	Paired       int
	Skipped      int
	TrainCount   int
	ValCount     int
	ErrorMessage string
}

// Succeeded reports whether the run finished without an error message.
func (r *Run) Succeeded() bool {
	return r.FinishedAt != nil && r.ErrorMessage == ""
}

// Assignment is one persisted filename-to-subset decision.
type Assignment struct {
	Filename string
	Subset   Subset
}
