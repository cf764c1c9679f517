package db

import (
	"context"
	"errors"
)

// ErrRunNotFound is returned when a run ID does not exist
var ErrRunNotFound = errors.New("run not found")

// RunStore defines the database operations for dispatch runs.
// Both postgres.DB and sqlite.DB implement this interface.
type RunStore interface {
	// InsertRun stores a run and its placements atomically
	InsertRun(ctx context.Context, run *Run, placements []Placement) error

	// GetRuns returns the most recent runs first (limit <= 0 means all)
	GetRuns(ctx context.Context, limit int) ([]Run, error)

	// GetRun returns a single run or ErrRunNotFound
	GetRun(ctx context.Context, runID string) (*Run, error)

	// GetPlacements returns a run's placements ordered by area then placement order
	GetPlacements(ctx context.Context, runID string) ([]Placement, error)
}

// Database is a RunStore that owns a connection
type Database interface {
	RunStore
	Close()
}
