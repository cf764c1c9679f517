package solver

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Status is the outcome kind of a search
type Status string

const (
	// StatusFeasible means a complete assignment satisfying every enabled constraint was found
	StatusFeasible Status = "feasible"

	// StatusInfeasible means the search was exhausted without a valid complete assignment
	StatusInfeasible Status = "infeasible"

	// StatusAborted means the search stopped early (step budget or cancellation)
	StatusAborted Status = "aborted"
)

// Config contains the inputs for a search
type Config struct {
	Instance *Instance

	// Extra criteria enforced after the instance's enabled constraint classes
	Extra []Criterion

	// MaxSteps bounds the number of branch attempts (0 means unbounded).
	// Large instances can take impractical time, so deployments should set this.
	MaxSteps int

	// Labels render indices in the trace (defaults to IndexLabels)
	Labels Labeler

	// Logger receives start/finish summaries (defaults to a no-op logger)
	Logger *zap.Logger
}

// Outcome is the result of a search
type Outcome struct {
	Status Status

	// Success is true only for StatusFeasible
	Success bool

	// Assignment is a deep copy of the accepted assignment (nil unless Success)
	Assignment Assignment

	// Trace describes the active constraints and the result; advisory text only
	Trace string

	// Steps is the number of branch attempts made
	Steps int64

	Duration time.Duration
}

// stepCounter is shared by every branch of a search
type stepCounter struct {
	steps atomic.Int64
	max   int64
}

func (c *stepCounter) tick() error {
	n := c.steps.Add(1)
	if c.max > 0 && n > c.max {
		return fmt.Errorf("%w: more than %d steps", ErrStepBudgetExceeded, c.max)
	}
	return nil
}

// search is a single-threaded depth-first backtracking search over workers.
// It exclusively owns its SearchState.
type search struct {
	ctx      context.Context
	criteria []Criterion
	state    *SearchState
	counter  *stepCounter

	solution Assignment
}

func newSearch(ctx context.Context, cfg Config, criteria []Criterion, counter *stepCounter) *search {
	return &search{
		ctx:      ctx,
		criteria: criteria,
		state:    NewSearchState(cfg.Instance),
		counter:  counter,
	}
}

// run places worker and every worker after it.
// It returns true once a complete valid assignment has been stored in s.solution,
// which halts all further branching up the call chain.
func (s *search) run(worker int) (bool, error) {
	inst := s.state.Instance
	if worker == inst.WorkerCount() {
		if len(ValidateComplete(s.state, s.criteria)) > 0 {
			return false, nil
		}
		s.solution = s.state.Areas.Clone()
		return true, nil
	}

	for _, area := range inst.candidateAreas(worker) {
		found, err := s.try(worker, area)
		if err != nil || found {
			return found, err
		}
	}

	return false, nil
}

// try attempts a single branch: worker placed in area.
// The placement is always undone before returning.
func (s *search) try(worker, area int) (bool, error) {
	if err := s.ctx.Err(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrSearchCancelled, err)
	}
	if err := s.counter.tick(); err != nil {
		return false, err
	}

	if !allowsPlacement(s.state, worker, area, s.criteria) {
		return false, nil
	}

	undo := s.state.place(worker, area)
	defer undo()

	if !isPartialValid(s.state, worker, area, s.criteria) {
		return false, nil
	}

	return s.run(worker + 1)
}

// Solve runs the backtracking search and returns the first feasible assignment found.
//
// The constraint classes enforced are the ones enabled by the instance's toggles,
// followed by cfg.Extra.
//
// Infeasibility is not an error: it is reported with StatusInfeasible. An error is returned
// only when the search was aborted (ErrStepBudgetExceeded or ErrSearchCancelled); the
// outcome is still returned with StatusAborted and its trace.
func Solve(ctx context.Context, cfg Config) (*Outcome, error) {
	if cfg.Instance == nil {
		return nil, fmt.Errorf("%w: nil instance", ErrInvalidInstance)
	}
	cfg = withDefaults(cfg)

	start := time.Now()
	criteria := activeCriteria(cfg)
	counter := &stepCounter{max: int64(cfg.MaxSteps)}
	s := newSearch(ctx, cfg, criteria, counter)

	found, err := s.run(0)

	return finish(cfg, criteria, counter, start, found, s.solution, err)
}

func withDefaults(cfg Config) Config {
	if cfg.Labels == nil {
		cfg.Labels = IndexLabels{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg
}

// finish builds the outcome shared by Solve and SolveParallel
func finish(cfg Config, criteria []Criterion, counter *stepCounter, start time.Time, found bool, solution Assignment, err error) (*Outcome, error) {
	outcome := &Outcome{
		Status:   StatusInfeasible,
		Steps:    counter.steps.Load(),
		Duration: time.Since(start),
	}

	switch {
	case err != nil:
		outcome.Status = StatusAborted
	case found:
		outcome.Status = StatusFeasible
		outcome.Success = true
		outcome.Assignment = solution
	}

	outcome.Trace = BuildTrace(cfg.Instance, cfg.Extra, cfg.Labels, outcome)

	cfg.Logger.Debug("Search finished",
		zap.String("status", string(outcome.Status)),
		zap.Int("workers", cfg.Instance.WorkerCount()),
		zap.Int("areas", cfg.Instance.AreaCount()),
		zap.Int("criteria", len(criteria)),
		zap.Int64("steps", outcome.Steps),
		zap.Duration("duration", outcome.Duration))

	return outcome, err
}
