// Package runlog persists dataset preparation runs in SQLite.
//
// Every pair/split invocation is recorded with its settings, counts, and the
// shuffle seed that was actually used, and split assignments are stored per
// filename. That makes any historical partition auditable and, given the
// recorded seed and ratio, reproducible.
//
// The database lives next to the logs and is an audit trail, not workflow
// state; deleting it loses history but never affects a future run.
package runlog
