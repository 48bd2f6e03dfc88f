package runlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"abprep/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id            TEXT PRIMARY KEY,
    kind          TEXT NOT NULL,
    started_at    TEXT NOT NULL,
    finished_at   TEXT,
    ratio         REAL NOT NULL,
    seed          INTEGER NOT NULL,
    paired        INTEGER NOT NULL DEFAULT 0,
    skipped       INTEGER NOT NULL DEFAULT 0,
    train_count   INTEGER NOT NULL DEFAULT 0,
    val_count     INTEGER NOT NULL DEFAULT 0,
    error_message TEXT
);

CREATE TABLE IF NOT EXISTS split_assignments (
    run_id   TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    filename TEXT NOT NULL,
    subset   TEXT NOT NULL,
    PRIMARY KEY (run_id, filename)
);
`

// Store persists run records and split assignments in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the run database under the log directory.
func Open(cfg *config.Config) (*Store, error) {
	dbPath := filepath.Join(cfg.Paths.LogDir, "runlog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Begin inserts a new run record and returns it.
func (s *Store) Begin(ctx context.Context, kind Kind, ratio float64, seed int64) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		StartedAt: time.Now().UTC(),
		Ratio:     ratio,
		Seed:      seed,
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (id, kind, started_at, ratio, seed) VALUES (?, ?, ?, ?, ?)`,
		run.ID,
		string(run.Kind),
		run.StartedAt.Format(time.RFC3339Nano),
		run.Ratio,
		run.Seed,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// Finish stamps the run as completed, persisting counts and any failure
// message accumulated on the Run value.
func (s *Store) Finish(ctx context.Context, run *Run, runErr error) error {
	if run == nil {
		return errors.New("run is nil")
	}
	now := time.Now().UTC()
	run.FinishedAt = &now
	if runErr != nil {
		run.ErrorMessage = runErr.Error()
	}

	_, err := s.db.ExecContext(
		ctx,
		`UPDATE runs
         SET finished_at = ?, seed = ?, paired = ?, skipped = ?,
             train_count = ?, val_count = ?, error_message = ?
         WHERE id = ?`,
		now.Format(time.RFC3339Nano),
		run.Seed,
		run.Paired,
		run.Skipped,
		run.TrainCount,
		run.ValCount,
		nullableString(run.ErrorMessage),
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RecordAssignments persists the filename-to-subset mapping of a split in a
// single transaction.
func (s *Store) RecordAssignments(ctx context.Context, runID string, train, val []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin assignments tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO split_assignments (run_id, filename, subset) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare assignment insert: %w", err)
	}
	defer stmt.Close()

	for _, name := range train {
		if _, err := stmt.ExecContext(ctx, runID, name, string(SubsetTrain)); err != nil {
			return fmt.Errorf("insert train assignment %q: %w", name, err)
		}
	}
	for _, name := range val {
		if _, err := stmt.ExecContext(ctx, runID, name, string(SubsetVal)); err != nil {
			return fmt.Errorf("insert val assignment %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit assignments: %w", err)
	}
	return nil
}

// GetRun fetches a run by identifier. Returns nil when absent.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// ListRuns returns recorded runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Assignments returns the persisted partition of a run ordered by filename.
func (s *Store) Assignments(ctx context.Context, runID string) ([]Assignment, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT filename, subset FROM split_assignments WHERE run_id = ? ORDER BY filename`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []Assignment
	for rows.Next() {
		var a Assignment
		var subset string
		if err := rows.Scan(&a.Filename, &subset); err != nil {
			return nil, err
		}
		a.Subset = Subset(subset)
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

const runColumns = "id, kind, started_at, finished_at, ratio, seed, paired, skipped, train_count, val_count, error_message"

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		id          string
		kind        string
		startedRaw  string
		finishedRaw sql.NullString
		ratio       float64
		seed        int64
		paired      int
		skipped     int
		trainCount  int
		valCount    int
		errMessage  sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&kind,
		&startedRaw,
		&finishedRaw,
		&ratio,
		&seed,
		&paired,
		&skipped,
		&trainCount,
		&valCount,
		&errMessage,
	); err != nil {
		return nil, err
	}

	run := &Run{
		ID:           id,
		Kind:         Kind(kind),
		Ratio:        ratio,
		Seed:         seed,
		Paired:       paired,
		Skipped:      skipped,
		TrainCount:   trainCount,
		ValCount:     valCount,
		ErrorMessage: errMessage.String,
	}

	if started, err := time.Parse(time.RFC3339Nano, startedRaw); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := time.Parse(time.RFC3339Nano, finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
