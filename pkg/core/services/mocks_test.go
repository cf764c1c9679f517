package services

import (
	"context"
	"fmt"

	"github.com/jakechorley/site-dispatch/pkg/core/model"
	"github.com/jakechorley/site-dispatch/pkg/db"
)

// mockRunStore implements DispatchStore and RunReader for testing
type mockRunStore struct {
	runs          []db.Run
	placements    map[string][]db.Placement
	insertErr     error
	getRunsErr    error
	placementsErr error
}

func newMockRunStore() *mockRunStore {
	return &mockRunStore{placements: make(map[string][]db.Placement)}
}

func (m *mockRunStore) InsertRun(ctx context.Context, run *db.Run, placements []db.Placement) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.runs = append(m.runs, *run)
	m.placements[run.ID] = append([]db.Placement(nil), placements...)
	return nil
}

func (m *mockRunStore) GetRuns(ctx context.Context, limit int) ([]db.Run, error) {
	if m.getRunsErr != nil {
		return nil, m.getRunsErr
	}
	var runs []db.Run
	for i := len(m.runs) - 1; i >= 0; i-- {
		if limit > 0 && len(runs) == limit {
			break
		}
		runs = append(runs, m.runs[i])
	}
	return runs, nil
}

func (m *mockRunStore) GetRun(ctx context.Context, runID string) (*db.Run, error) {
	for i := range m.runs {
		if m.runs[i].ID == runID {
			run := m.runs[i]
			return &run, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", db.ErrRunNotFound, runID)
}

func (m *mockRunStore) GetPlacements(ctx context.Context, runID string) ([]db.Placement, error) {
	if m.placementsErr != nil {
		return nil, m.placementsErr
	}
	return m.placements[runID], nil
}

func boolPtr(b bool) *bool {
	return &b
}

// northYard is two areas needing one worker each, two supervisors and Bo/Cy kept apart
func northYard() *model.Problem {
	return &model.Problem{
		Name: "north yard",
		Areas: []model.AreaSpec{
			{Name: "Pour", MinHeadcount: 1},
			{Name: "Scaffold", MinHeadcount: 1},
		},
		Workers: []model.WorkerSpec{
			{Name: "Al", Supervisor: true},
			{Name: "Bo", Supervisor: true},
			{Name: "Cy"},
			{Name: "Di"},
		},
		ForbiddenPairs: [][]string{{"Bo", "Cy"}},
	}
}
