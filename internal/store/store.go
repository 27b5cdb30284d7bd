// Package store persists analysis runs and their per-stage summary
// statistics in a local SQLite database, so successive analyses of the same
// trip (different static windows, bias modes) can be compared later.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Run records one pipeline invocation.
type Run struct {
	ID          string
	CreatedAt   time.Time
	SourceFile  string
	SampleCount int
	Duration    float64 // seconds, last sample time minus first
	BiasMode    string
	BiasX       float64
	BiasY       float64
	BiasZ       float64
}

// StageSummary holds the per-axis statistics of one derived series.
type StageSummary struct {
	RunID  string
	Stage  string // "acceleration", "velocity", "position"
	Axis   string // "x", "y", "z"
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Final  float64 // value at the last sample
}

// Store wraps the SQLite handle.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run store: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("run store pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("run store pragma: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run store schema: %w", err)
	}

	return &Store{db: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id       TEXT PRIMARY KEY,
	created_at   INTEGER NOT NULL,
	source_file  TEXT NOT NULL,
	sample_count INTEGER NOT NULL,
	duration_s   REAL NOT NULL,
	bias_mode    TEXT NOT NULL,
	bias_x       REAL NOT NULL,
	bias_y       REAL NOT NULL,
	bias_z       REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS stage_summaries (
	run_id  TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
	stage   TEXT NOT NULL,
	axis    TEXT NOT NULL,
	mean    REAL NOT NULL,
	stddev  REAL NOT NULL,
	min     REAL NOT NULL,
	max     REAL NOT NULL,
	final   REAL NOT NULL,
	PRIMARY KEY (run_id, stage, axis)
);
`

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertRun saves one run record.
func (s *Store) InsertRun(r *Run) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (run_id, created_at, source_file, sample_count, duration_s, bias_mode, bias_x, bias_y, bias_z)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.Unix(), r.SourceFile, r.SampleCount, r.Duration, r.BiasMode, r.BiasX, r.BiasY, r.BiasZ,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", r.ID, err)
	}
	return nil
}

// InsertSummaries saves the summary rows belonging to one run in a single
// transaction.
func (s *Store) InsertSummaries(summaries []StageSummary) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("insert summaries: %w", err)
	}
	for _, sum := range summaries {
		if _, err := tx.Exec(`
			INSERT INTO stage_summaries (run_id, stage, axis, mean, stddev, min, max, final)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			sum.RunID, sum.Stage, sum.Axis, sum.Mean, sum.StdDev, sum.Min, sum.Max, sum.Final,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert summary %s/%s/%s: %w", sum.RunID, sum.Stage, sum.Axis, err)
		}
	}
	return tx.Commit()
}

// GetRun fetches one run by id.
func (s *Store) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(`
		SELECT run_id, created_at, source_file, sample_count, duration_s, bias_mode, bias_x, bias_y, bias_z
		FROM runs WHERE run_id = ?`, id)

	var r Run
	var createdAt int64
	err := row.Scan(&r.ID, &createdAt, &r.SourceFile, &r.SampleCount, &r.Duration, &r.BiasMode, &r.BiasX, &r.BiasY, &r.BiasZ)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	r.CreatedAt = time.Unix(createdAt, 0)
	return &r, nil
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns() ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT run_id, created_at, source_file, sample_count, duration_s, bias_mode, bias_x, bias_y, bias_z
		FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt int64
		if err := rows.Scan(&r.ID, &createdAt, &r.SourceFile, &r.SampleCount, &r.Duration, &r.BiasMode, &r.BiasX, &r.BiasY, &r.BiasZ); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		r.CreatedAt = time.Unix(createdAt, 0)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Summaries returns the summary rows of one run.
func (s *Store) Summaries(runID string) ([]StageSummary, error) {
	rows, err := s.db.Query(`
		SELECT run_id, stage, axis, mean, stddev, min, max, final
		FROM stage_summaries WHERE run_id = ? ORDER BY stage, axis`, runID)
	if err != nil {
		return nil, fmt.Errorf("summaries for %s: %w", runID, err)
	}
	defer rows.Close()

	var out []StageSummary
	for rows.Next() {
		var sum StageSummary
		if err := rows.Scan(&sum.RunID, &sum.Stage, &sum.Axis, &sum.Mean, &sum.StdDev, &sum.Min, &sum.Max, &sum.Final); err != nil {
			return nil, fmt.Errorf("summaries for %s: %w", runID, err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
