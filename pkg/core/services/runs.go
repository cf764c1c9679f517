package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/site-dispatch/pkg/db"
)

// RunReader defines the database operations needed to read recorded runs
type RunReader interface {
	GetRuns(ctx context.Context, limit int) ([]db.Run, error)
	GetRun(ctx context.Context, runID string) (*db.Run, error)
	GetPlacements(ctx context.Context, runID string) ([]db.Placement, error)
}

// RunDetail is a recorded run with its placements
type RunDetail struct {
	Run        *db.Run
	Placements []db.Placement
}

// ListRuns returns recorded runs, most recent first (limit <= 0 means all)
func ListRuns(ctx context.Context, store RunReader, logger *zap.Logger, limit int) ([]db.Run, error) {
	logger.Debug("Fetching runs", zap.Int("limit", limit))

	runs, err := store.GetRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	logger.Debug("Found runs", zap.Int("count", len(runs)))

	return runs, nil
}

// GetRun returns a recorded run and its placements.
// An unknown ID fails with an error wrapping db.ErrRunNotFound.
func GetRun(ctx context.Context, store RunReader, logger *zap.Logger, runID string) (*RunDetail, error) {
	logger.Debug("Fetching run", zap.String("run_id", runID))

	run, err := store.GetRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch run: %w", err)
	}

	placements, err := store.GetPlacements(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch placements: %w", err)
	}

	logger.Debug("Found run",
		zap.String("run_id", run.ID),
		zap.String("status", run.Status),
		zap.Int("placements", len(placements)))

	return &RunDetail{Run: run, Placements: placements}, nil
}

// GroupByArea groups placements by area index in ascending order, keeping placement order
func GroupByArea(placements []db.Placement) [][]db.Placement {
	var groups [][]db.Placement
	for _, p := range placements {
		if len(groups) == 0 || groups[len(groups)-1][0].AreaIndex != p.AreaIndex {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], p)
	}
	return groups
}
