package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrRunNotFound means no run has the requested id.
var ErrRunNotFound = errors.New("run not found")

// Run is one extraction run.
type Run struct {
	RunID        string
	Source       string
	OutputDir    string
	State        string
	TotalPages   int
	PagesRead    int
	SkippedPages []int
	StartedAt    time.Time
	FinishedAt   *time.Time
}

// CreateRun records the start of a run and returns its id.
func (db *DB) CreateRun(source, outputDir, state string) (string, error) {
	runID := uuid.New().String()
	_, err := db.Exec(`
		INSERT INTO runs (run_id, source, output_dir, state, started_at)
		VALUES (?, ?, ?, ?, ?)
	`, runID, source, outputDir, state, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to create run: %w", err)
	}
	return runID, nil
}

// UpdateRunState moves a run to a new state. Terminal states also set
// finished_at.
func (db *DB) UpdateRunState(runID, state string, finished bool) error {
	var res sql.Result
	var err error
	if finished {
		res, err = db.Exec("UPDATE runs SET state = ?, finished_at = ? WHERE run_id = ?", state, time.Now().UTC(), runID)
	} else {
		res, err = db.Exec("UPDATE runs SET state = ? WHERE run_id = ?", state, runID)
	}
	if err != nil {
		return fmt.Errorf("failed to update run state: %w", err)
	}
	return requireRow(res, runID)
}

// GetRun loads a run by id.
func (db *DB) GetRun(runID string) (*Run, error) {
	row := db.QueryRow(`
		SELECT run_id, source, COALESCE(output_dir, ''), state, total_pages, pages_read,
		       COALESCE(skipped_pages, ''), started_at, finished_at
		FROM runs WHERE run_id = ?
	`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return r, nil
}

// LatestRun returns the most recently started run.
func (db *DB) LatestRun() (*Run, error) {
	runs, err := db.ListRuns(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}
	return &runs[0], nil
}

// ListRuns returns runs, newest first. limit <= 0 returns all runs.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, source, COALESCE(output_dir, ''), state, total_pages, pages_read,
		       COALESCE(skipped_pages, ''), started_at, finished_at
		FROM runs
		ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(s rowScanner) (*Run, error) {
	var r Run
	var skipped string
	var finished sql.NullTime
	if err := s.Scan(&r.RunID, &r.Source, &r.OutputDir, &r.State, &r.TotalPages, &r.PagesRead,
		&skipped, &r.StartedAt, &finished); err != nil {
		return nil, err
	}
	if skipped != "" {
		if err := json.Unmarshal([]byte(skipped), &r.SkippedPages); err != nil {
			return nil, fmt.Errorf("invalid skipped_pages for run %s: %w", r.RunID, err)
		}
	}
	if finished.Valid {
		t := finished.Time
		r.FinishedAt = &t
	}
	return &r, nil
}

func requireRow(res sql.Result, runID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}
