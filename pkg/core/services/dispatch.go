package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/site-dispatch/pkg/core/model"
	"github.com/jakechorley/site-dispatch/pkg/core/solver"
	"github.com/jakechorley/site-dispatch/pkg/db"
)

// DispatchStore defines the database operations needed to record dispatch runs
type DispatchStore interface {
	InsertRun(ctx context.Context, run *db.Run, placements []db.Placement) error
}

// DispatchOptions controls a single solver run
type DispatchOptions struct {
	// MaxSteps bounds the search (0 means unbounded)
	MaxSteps int

	// Timeout cancels the search after the given duration (0 means none)
	Timeout time.Duration

	// Parallel explores the first worker's candidate areas concurrently
	Parallel bool

	// Date is the dispatch date in 2006-01-02 format (empty for undated runs)
	Date string
}

// DispatchResult is a recorded dispatch run
type DispatchResult struct {
	RunID   string
	Outcome *solver.Outcome
	Built   *BuiltInstance
}

// Dispatch builds an instance from the problem, searches for an assignment and records the run.
//
// Infeasible runs are recorded and returned without error. Aborted runs (step budget or
// timeout) are recorded too; the result is returned together with the search error.
func Dispatch(
	ctx context.Context,
	store DispatchStore,
	logger *zap.Logger,
	problem *model.Problem,
	opts DispatchOptions,
) (*DispatchResult, error) {
	logger.Debug("Dispatching", zap.String("problem", problem.Name), zap.String("date", opts.Date))

	built, err := BuildInstance(problem, logger)
	if err != nil {
		return nil, err
	}

	return dispatchBuilt(ctx, store, logger, problem, built, opts)
}

func dispatchBuilt(
	ctx context.Context,
	store DispatchStore,
	logger *zap.Logger,
	problem *model.Problem,
	built *BuiltInstance,
	opts DispatchOptions,
) (*DispatchResult, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cfg := solver.Config{
		Instance: built.Instance,
		MaxSteps: opts.MaxSteps,
		Labels:   built.Labels,
		Logger:   logger,
	}

	solve := solver.Solve
	if opts.Parallel {
		solve = solver.SolveParallel
	}

	outcome, searchErr := solve(ctx, cfg)
	if outcome == nil {
		return nil, fmt.Errorf("failed to run search: %w", searchErr)
	}

	logger.Info("Search complete",
		zap.String("problem", problem.Name),
		zap.String("date", opts.Date),
		zap.String("status", string(outcome.Status)),
		zap.Int64("steps", outcome.Steps),
		zap.Duration("duration", outcome.Duration))

	run := &db.Run{
		ID:           uuid.New().String(),
		CreatedAt:    time.Now(),
		ProblemName:  problem.Name,
		DispatchDate: opts.Date,
		Status:       string(outcome.Status),
		Steps:        outcome.Steps,
		Trace:        outcome.Trace,
	}
	placements := buildPlacements(run.ID, built, outcome.Assignment)

	// The caller's context may already be cancelled for aborted runs; the record is still wanted
	if err := store.InsertRun(context.WithoutCancel(ctx), run, placements); err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}

	logger.Debug("Recorded run", zap.String("run_id", run.ID), zap.Int("placements", len(placements)))

	result := &DispatchResult{
		RunID:   run.ID,
		Outcome: outcome,
		Built:   built,
	}

	if searchErr != nil {
		return result, fmt.Errorf("search aborted: %w", searchErr)
	}

	return result, nil
}

// buildPlacements flattens an assignment into placement records (none for a nil assignment)
func buildPlacements(runID string, built *BuiltInstance, assignment solver.Assignment) []db.Placement {
	var placements []db.Placement
	for area, workers := range assignment {
		for position, worker := range workers {
			placements = append(placements, db.Placement{
				RunID:       runID,
				AreaIndex:   area,
				AreaName:    built.Labels.AreaLabel(area),
				Position:    position,
				WorkerIndex: built.ProblemWorkerIndex(worker),
				WorkerName:  built.Labels.WorkerLabel(worker),
				Supervisor:  built.Instance.IsSupervisor(worker),
			})
		}
	}
	return placements
}
