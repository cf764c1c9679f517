package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// branchResult is the result of exploring one candidate area for worker 0
type branchResult struct {
	found    bool
	solution Assignment
	err      error
}

// SolveParallel explores each of worker 0's candidate areas concurrently.
//
// Every branch owns an independent partial assignment. When branch i succeeds, all branches
// after i are cancelled; branches before i run to completion. The lowest-index success wins,
// so a search that completes returns exactly what Solve returns. The step budget is shared
// across branches, so aborted runs can stop at a different point than Solve would.
func SolveParallel(ctx context.Context, cfg Config) (*Outcome, error) {
	if cfg.Instance == nil {
		return nil, fmt.Errorf("%w: nil instance", ErrInvalidInstance)
	}
	cfg = withDefaults(cfg)

	start := time.Now()
	criteria := activeCriteria(cfg)
	counter := &stepCounter{max: int64(cfg.MaxSteps)}
	candidates := cfg.Instance.candidateAreas(0)

	cfg.Logger.Debug("Starting parallel search", zap.Int("branches", len(candidates)))

	results := make([]branchResult, len(candidates))
	cancels := make([]context.CancelFunc, len(candidates))
	branchCtxs := make([]context.Context, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	for i := range candidates {
		branchCtxs[i], cancels[i] = context.WithCancel(gctx)
	}
	defer func() {
		for _, cancel := range cancels {
			cancel()
		}
	}()

	for i, area := range candidates {
		g.Go(func() error {
			s := newSearch(branchCtxs[i], cfg, criteria, counter)
			found, err := s.try(0, area)
			results[i] = branchResult{found: found, solution: s.solution, err: err}

			if found {
				for _, cancel := range cancels[i+1:] {
					cancel()
				}
			}

			// A spent budget is shared, so stop every branch
			if errors.Is(err, ErrStepBudgetExceeded) {
				return err
			}
			return nil
		})
	}
	groupErr := g.Wait()

	// Lower branches were never cancelled by a sibling's success, so the first
	// result that is either an error or a solution decides the outcome.
	for _, r := range results {
		if r.err != nil {
			if groupErr != nil {
				return finish(cfg, criteria, counter, start, false, nil, groupErr)
			}
			return finish(cfg, criteria, counter, start, false, nil, r.err)
		}
		if r.found {
			return finish(cfg, criteria, counter, start, true, r.solution, nil)
		}
	}

	return finish(cfg, criteria, counter, start, false, nil, nil)
}
