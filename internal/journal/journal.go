// Package journal keeps a local sqlite record of generating runs so
// past regenerations can be audited with the history command.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Journal records runs and their per-item outcomes.
type Journal struct {
	db    *sql.DB
	runID int64
}

// DefaultPath returns the journal location under the user's state dir.
func DefaultPath() string {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "manualkit", "journal.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "manualkit-journal.db")
	}
	return filepath.Join(home, ".local", "state", "manualkit", "journal.db")
}

// Open opens or creates the journal database at path.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	j := &Journal{db: db}
	if err := j.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create journal tables: %w", err)
	}
	return j, nil
}

func (j *Journal) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id integer PRIMARY KEY AUTOINCREMENT,
			started_at integer NOT NULL,
			command text NOT NULL,
			lang text NOT NULL,
			model text NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id integer PRIMARY KEY AUTOINCREMENT,
			run_id integer NOT NULL,
			key text NOT NULL,
			outcome text NOT NULL,
			duration_ms integer NOT NULL
		)`,
	}
	for _, query := range queries {
		if _, err := j.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// BeginRun records the start of a generating command.
func (j *Journal) BeginRun(command, lang, model string) error {
	result, err := j.db.Exec(
		`INSERT INTO runs (started_at, command, lang, model) VALUES (?, ?, ?, ?)`,
		time.Now().Unix(), command, lang, model)
	if err != nil {
		return err
	}
	j.runID, err = result.LastInsertId()
	return err
}

// RecordItem logs one processed entry under the current run.
func (j *Journal) RecordItem(key, outcome string, d time.Duration) error {
	if j.runID == 0 {
		return fmt.Errorf("no run in progress")
	}
	_, err := j.db.Exec(
		`INSERT INTO items (run_id, key, outcome, duration_ms) VALUES (?, ?, ?, ?)`,
		j.runID, key, outcome, d.Milliseconds())
	return err
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Run is one journaled run with its outcome counts.
type Run struct {
	ID        int64
	StartedAt time.Time
	Command   string
	Lang      string
	Model     string
	Succeeded int
	Failed    int
}

// Recent returns the n most recent runs, newest first.
func (j *Journal) Recent(n int) ([]Run, error) {
	rows, err := j.db.Query(`
		SELECT r.id, r.started_at, r.command, r.lang, r.model,
			COALESCE(SUM(CASE WHEN i.outcome = 'ok' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN i.outcome != 'ok' THEN 1 ELSE 0 END), 0)
		FROM runs r
		LEFT JOIN items i ON i.run_id = r.id
		GROUP BY r.id
		ORDER BY r.id DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt int64
		if err := rows.Scan(&run.ID, &startedAt, &run.Command, &run.Lang, &run.Model,
			&run.Succeeded, &run.Failed); err != nil {
			return nil, err
		}
		run.StartedAt = time.Unix(startedAt, 0)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Recorder adapts a journal to the OnItem callbacks the runners take.
// Journal failures are reported as warnings, never as errors, so a
// broken journal cannot fail a generating run.
func (j *Journal) Recorder() func(key, outcome string, d time.Duration) {
	return func(key, outcome string, d time.Duration) {
		if err := j.RecordItem(key, outcome, d); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: journal: %v\n", err)
		}
	}
}
