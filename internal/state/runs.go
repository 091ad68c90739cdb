package state

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ShayCichocki/crewkit/pkg/models"
)

// CreateRun records the start of a run.
func (db *DB) CreateRun(run *models.Run) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		INSERT INTO runs (id, crew_file, model, status, started_at)
		VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.CrewFile, run.Model, string(run.Status), run.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// FinishRun records a run's terminal status. errMsg is empty for a
// completed run.
func (db *DB) FinishRun(runID string, status models.RunStatus, errMsg string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	res, err := db.conn.Exec(`
		UPDATE runs SET status = ?, error = ?, finished_at = ?
		WHERE id = ?`,
		string(status), errMsg, time.Now(), runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("finish run: no run with id %s", runID)
	}
	return nil
}

// SaveResult stores one agent's output for a run.
func (db *DB) SaveResult(result *models.AgentResult) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		INSERT INTO results (run_id, position, agent_name, output)
		VALUES (?, ?, ?, ?)`,
		result.RunID, result.Position, result.AgentName, result.Output,
	)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID. Returns nil if not found.
func (db *DB) GetRun(runID string) (*models.Run, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	row := db.conn.QueryRow(`
		SELECT id, crew_file, model, status, error, started_at, finished_at
		FROM runs WHERE id = ?`, runID)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]*models.Run, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := db.conn.Query(`
		SELECT id, crew_file, model, status, error, started_at, finished_at
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunResults returns a run's agent results in execution order.
func (db *DB) RunResults(runID string) ([]*models.AgentResult, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rows, err := db.conn.Query(`
		SELECT run_id, position, agent_name, output
		FROM results WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("run results: %w", err)
	}
	defer rows.Close()

	var results []*models.AgentResult
	for rows.Next() {
		r := &models.AgentResult{}
		if err := rows.Scan(&r.RunID, &r.Position, &r.AgentName, &r.Output); err != nil {
			return nil, fmt.Errorf("run results: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// scanner matches sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanRun reads one run row.
func scanRun(s scanner) (*models.Run, error) {
	run := &models.Run{}
	var status string
	var finishedAt sql.NullTime

	err := s.Scan(&run.ID, &run.CrewFile, &run.Model, &status, &run.Error, &run.StartedAt, &finishedAt)
	if err != nil {
		return nil, err
	}

	run.Status = models.RunStatus(status)
	if finishedAt.Valid {
		t := finishedAt.Time
		run.FinishedAt = &t
	}
	return run, nil
}
