package services

import (
	"context"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jakechorley/site-dispatch/pkg/core/model"
)

// PlanDay is the dispatch for one day of a plan
type PlanDay struct {
	Date     string
	Result   *DispatchResult
	Absent   []string
	Override bool
}

// PlanDispatch dispatches the crew for each day in [start, start+days).
//
// Overrides whose RRule (with DTSTART at the plan start) has an occurrence on a day are
// applied to that day's instance in file order: absent workers are removed, minimum
// headcounts replaced and constraint toggles overridden. Every day is solved and recorded
// as an independent run. On error the days dispatched so far are returned with it.
func PlanDispatch(
	ctx context.Context,
	store DispatchStore,
	logger *zap.Logger,
	problem *model.Problem,
	start time.Time,
	days int,
	opts DispatchOptions,
) ([]PlanDay, error) {
	if days <= 0 {
		return nil, fmt.Errorf("day count must be positive, got %d", days)
	}

	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	logger.Debug("Planning dispatch",
		zap.String("problem", problem.Name),
		zap.String("start", start.Format("2006-01-02")),
		zap.Int("days", days))

	adjustments, err := overridesByDate(problem.Overrides, start, days, logger)
	if err != nil {
		return nil, err
	}

	plan := make([]PlanDay, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		adj := adjustments[date]

		built, err := buildInstance(problem, adj, logger)
		if err != nil {
			return plan, fmt.Errorf("failed to build instance for %s: %w", date, err)
		}

		dayOpts := opts
		dayOpts.Date = date
		result, err := dispatchBuilt(ctx, store, logger, problem, built, dayOpts)

		day := PlanDay{Date: date, Result: result, Override: adj != nil}
		if adj != nil {
			for _, w := range problem.Workers {
				if adj.absent[w.Name] {
					day.Absent = append(day.Absent, w.Name)
				}
			}
		}
		if result != nil {
			plan = append(plan, day)
		}
		if err != nil {
			return plan, fmt.Errorf("failed to dispatch %s: %w", date, err)
		}
	}

	return plan, nil
}

// overridesByDate expands each override's RRule over the plan window and merges the
// overrides matching each date. Dates without overrides are absent from the map.
func overridesByDate(overrides []model.Override, start time.Time, days int, logger *zap.Logger) (map[string]*dayAdjustments, error) {
	result := make(map[string]*dayAdjustments)
	end := start.AddDate(0, 0, days)

	for i, override := range overrides {
		rule, err := rrule.StrToRRule(override.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for override %d: %w", i, err)
		}
		rule.DTStart(start)

		matched := 0
		for _, occurrence := range rule.Between(start, end, true) {
			// end is the first instant after the plan window
			if !occurrence.Before(end) {
				continue
			}
			matched++

			date := occurrence.Format("2006-01-02")
			adj, ok := result[date]
			if !ok {
				adj = &dayAdjustments{
					absent:       make(map[string]bool),
					minHeadcount: make(map[string]int),
				}
				result[date] = adj
			}

			for _, name := range override.AbsentWorkers {
				adj.absent[name] = true
			}
			for area, minimum := range override.MinHeadcount {
				adj.minHeadcount[area] = minimum
			}
			if override.Constraints != nil {
				adj.constraints = append(adj.constraints, override.Constraints)
			}
		}

		logger.Debug("Expanded override",
			zap.Int("index", i),
			zap.String("rrule", override.RRule),
			zap.Int("matching_days", matched),
			zap.Int("absent_workers", len(override.AbsentWorkers)))
	}

	return result, nil
}
