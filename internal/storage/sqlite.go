package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// History keeps a local record of completed provisioning runs
type History struct {
	db *sql.DB
}

// RunRecord summarizes one provisioning run
type RunRecord struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	Catalog     string
	ContainerID string
	StepsOK     int
	StepsFailed int
}

// StepRecord is one step outcome within a run
type StepRecord struct {
	Seq    int
	Name   string
	Method string
	Path   string
	Status int
	Error  string
}

// NewHistory opens the run history database in the user's home
// directory, creating it on first use.
func NewHistory() (*History, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	dataDir := filepath.Join(homeDir, ".polaris-bootstrap")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return OpenHistory(filepath.Join(dataDir, "runs.db"))
}

// OpenHistory opens a run history database at an explicit path
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &History{db: db}, nil
}

// createTables creates the database schema
func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		catalog TEXT,
		container_id TEXT,
		steps_ok INTEGER,
		steps_failed INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started
	ON runs(started_at);

	CREATE TABLE IF NOT EXISTS run_steps (
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		name TEXT,
		method TEXT,
		path TEXT,
		status INTEGER,
		error TEXT,
		PRIMARY KEY (run_id, seq)
	);
	`

	_, err := db.Exec(schema)
	return err
}

// RecordRun writes a run and its step outcomes in one transaction
func (h *History) RecordRun(rec RunRecord, steps []StepRecord) error {
	tx, err := h.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs
		(id, started_at, finished_at, catalog, container_id, steps_ok, steps_failed)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.StartedAt.Unix(),
		rec.FinishedAt.Unix(),
		rec.Catalog,
		rec.ContainerID,
		rec.StepsOK,
		rec.StepsFailed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO run_steps
		(run_id, seq, name, method, path, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare step insert: %w", err)
	}
	defer stmt.Close()

	for _, step := range steps {
		_, err := stmt.Exec(
			rec.ID,
			step.Seq,
			step.Name,
			step.Method,
			step.Path,
			step.Status,
			step.Error,
		)
		if err != nil {
			return fmt.Errorf("failed to insert step %d: %w", step.Seq, err)
		}
	}

	return tx.Commit()
}

// RecentRuns returns the most recent runs, newest first
func (h *History) RecentRuns(limit int) ([]RunRecord, error) {
	rows, err := h.db.Query(`
		SELECT id, started_at, finished_at, catalog, container_id, steps_ok, steps_failed
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var rec RunRecord
		var started, finished int64

		if err := rows.Scan(&rec.ID, &started, &finished, &rec.Catalog,
			&rec.ContainerID, &rec.StepsOK, &rec.StepsFailed); err != nil {
			continue
		}

		rec.StartedAt = time.Unix(started, 0)
		rec.FinishedAt = time.Unix(finished, 0)
		runs = append(runs, rec)
	}

	return runs, rows.Err()
}

// RunSteps returns the step outcomes of one run in sequence order
func (h *History) RunSteps(runID string) ([]StepRecord, error) {
	rows, err := h.db.Query(`
		SELECT seq, name, method, path, status, error
		FROM run_steps
		WHERE run_id = ?
		ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []StepRecord
	for rows.Next() {
		var step StepRecord

		if err := rows.Scan(&step.Seq, &step.Name, &step.Method,
			&step.Path, &step.Status, &step.Error); err != nil {
			continue
		}

		steps = append(steps, step)
	}

	return steps, rows.Err()
}

// Close closes the history database
func (h *History) Close() error {
	return h.db.Close()
}
