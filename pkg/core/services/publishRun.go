package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/site-dispatch/internal/config"
	"github.com/jakechorley/site-dispatch/pkg/clients/sheetsclient"
	"github.com/jakechorley/site-dispatch/pkg/db"
)

var (
	// ErrRunNotFeasible is returned when publishing a run that found no assignment
	ErrRunNotFeasible = errors.New("run is not feasible")

	// ErrNoPublishSheet is returned when publishing without a configured spreadsheet
	ErrNoPublishSheet = errors.New("publishSheetID is not configured")
)

// DispatchPublisher writes a dispatch to a spreadsheet
type DispatchPublisher interface {
	PublishDispatch(spreadsheetID string, dispatch *sheetsclient.PublishedDispatch) error
}

// PublishRun publishes a recorded feasible run to the configured spreadsheet
func PublishRun(
	ctx context.Context,
	store RunReader,
	publisher DispatchPublisher,
	cfg *config.Config,
	logger *zap.Logger,
	runID string,
) (*sheetsclient.PublishedDispatch, error) {
	if cfg.PublishSheetID == "" {
		return nil, ErrNoPublishSheet
	}

	detail, err := GetRun(ctx, store, logger, runID)
	if err != nil {
		return nil, err
	}

	if detail.Run.Status != db.RunStatusFeasible {
		return nil, fmt.Errorf("%w: run %s is %s", ErrRunNotFeasible, runID, detail.Run.Status)
	}

	published := buildPublishedDispatch(detail)

	logger.Info("Publishing run",
		zap.String("run_id", runID),
		zap.String("tab", published.TabTitle),
		zap.Int("areas", len(published.Areas)))

	if err := publisher.PublishDispatch(cfg.PublishSheetID, published); err != nil {
		return nil, fmt.Errorf("failed to publish run: %w", err)
	}

	return published, nil
}

func buildPublishedDispatch(detail *RunDetail) *sheetsclient.PublishedDispatch {
	date := detail.Run.DispatchDate
	if date == "" {
		date = detail.Run.CreatedAt.Format("2006-01-02")
	}

	published := &sheetsclient.PublishedDispatch{
		TabTitle: fmt.Sprintf("%s %s", detail.Run.ProblemName, date),
		RunID:    detail.Run.ID,
	}

	for _, group := range GroupByArea(detail.Placements) {
		area := sheetsclient.PublishedArea{Name: group[0].AreaName}
		for _, p := range group {
			if p.Supervisor {
				area.Supervisors = append(area.Supervisors, p.WorkerName)
			}
			area.Workers = append(area.Workers, p.WorkerName)
		}
		published.Areas = append(published.Areas, area)
	}

	return published
}
