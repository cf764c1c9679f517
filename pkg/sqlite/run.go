package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jakechorley/site-dispatch/pkg/db"
)

// InsertRun inserts a run and its placements in a single transaction
func (d *DB) InsertRun(ctx context.Context, run *db.Run, placements []db.Placement) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	dispatchDate := sql.NullString{String: run.DispatchDate, Valid: run.DispatchDate != ""}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO dispatch_run (id, created_at, problem_name, dispatch_date, status, steps, trace)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.CreatedAt.UTC().Format(timeLayout), run.ProblemName, dispatchDate, run.Status, run.Steps, run.Trace)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, p := range placements {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO placement (run_id, area_index, area_name, position, worker_index, worker_name, supervisor)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, run.ID, p.AreaIndex, p.AreaName, p.Position, p.WorkerIndex, p.WorkerName, p.Supervisor)
		if err != nil {
			return fmt.Errorf("failed to insert placement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Fixed width so created_at sorts chronologically as text
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const selectRunColumns = `SELECT id, created_at, problem_name, dispatch_date, status, steps, trace FROM dispatch_run`

// GetRuns retrieves runs, most recent first
func (d *DB) GetRuns(ctx context.Context, limit int) ([]db.Run, error) {
	query := selectRunColumns + ` ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []db.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetRun retrieves a single run by ID
func (d *DB) GetRun(ctx context.Context, runID string) (*db.Run, error) {
	row := d.conn.QueryRowContext(ctx, selectRunColumns+` WHERE id = ?`, runID)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", db.ErrRunNotFound, runID)
	}
	return run, err
}

// GetPlacements retrieves the placements of a run
func (d *DB) GetPlacements(ctx context.Context, runID string) ([]db.Placement, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT run_id, area_index, area_name, position, worker_index, worker_name, supervisor
		FROM placement
		WHERE run_id = ?
		ORDER BY area_index, position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query placements: %w", err)
	}
	defer rows.Close()

	var placements []db.Placement
	for rows.Next() {
		var p db.Placement
		if err := rows.Scan(&p.RunID, &p.AreaIndex, &p.AreaName, &p.Position, &p.WorkerIndex, &p.WorkerName, &p.Supervisor); err != nil {
			return nil, fmt.Errorf("failed to scan placement: %w", err)
		}
		placements = append(placements, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating placements: %w", err)
	}

	return placements, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*db.Run, error) {
	var r db.Run
	var createdAt string
	var dispatchDate sql.NullString
	if err := row.Scan(&r.ID, &createdAt, &r.ProblemName, &dispatchDate, &r.Status, &r.Steps, &r.Trace); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	created, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at %q: %w", createdAt, err)
	}
	r.CreatedAt = created
	r.DispatchDate = dispatchDate.String

	return &r, nil
}
