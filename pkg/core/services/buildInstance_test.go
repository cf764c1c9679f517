package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/site-dispatch/pkg/core/model"
	"github.com/jakechorley/site-dispatch/pkg/core/solver"
)

func TestBuildInstance(t *testing.T) {
	logger := zap.NewNop()

	t.Run("resolves names to indices in file order", func(t *testing.T) {
		built, err := BuildInstance(northYard(), logger)
		require.NoError(t, err)

		inst := built.Instance
		assert.Equal(t, 4, inst.WorkerCount())
		assert.Equal(t, 2, inst.AreaCount())
		assert.Equal(t, []int{0, 1}, inst.Supervisors())
		assert.True(t, inst.Forbidden(1, 2))
		assert.False(t, inst.Forbidden(0, 3))
		assert.Equal(t, solver.AllConstraints(), inst.Toggles())
		assert.Empty(t, built.Dropped)

		assert.Equal(t, "Cy", built.Labels.WorkerLabel(2))
		assert.Equal(t, "Scaffold", built.Labels.AreaLabel(1))
		assert.Equal(t, 3, built.ProblemWorkerIndex(3))
	})

	t.Run("maps eligible areas", func(t *testing.T) {
		problem := northYard()
		problem.Workers[2].Areas = []string{"Scaffold"}

		built, err := BuildInstance(problem, logger)
		require.NoError(t, err)

		assert.Equal(t, []int{1}, built.Instance.Worker(2).EligibleAreas)
		assert.Equal(t, []int{0, 1}, built.Instance.Worker(3).EligibleAreas)
	})

	t.Run("drops and reports malformed entries", func(t *testing.T) {
		problem := northYard()
		problem.ForbiddenPairs = append(problem.ForbiddenPairs, []string{"Al", "Zed"}, []string{"Di", "Di"}, []string{"Cy", "Bo"})
		problem.Workers[2].Areas = []string{"Nowhere"}

		built, err := BuildInstance(problem, logger)
		require.NoError(t, err)

		assert.Equal(t, []solver.DroppedEntry{
			{Kind: solver.DroppedEligibleArea, Value: "Cy: Nowhere", Reason: "unknown area"},
			{Kind: solver.DroppedForbiddenPair, Value: "Al and Zed", Reason: "unknown worker"},
			{Kind: solver.DroppedForbiddenPair, Value: "Di and Di", Reason: "self pair"},
			{Kind: solver.DroppedForbiddenPair, Value: "Cy and Bo", Reason: "duplicate"},
		}, built.Dropped)

		// Cy's only eligible area was unknown, so Cy may work anywhere
		assert.Equal(t, []int{0, 1}, built.Instance.Worker(2).EligibleAreas)
		assert.Len(t, built.Instance.ForbiddenPairs(), 1)
	})

	t.Run("applies constraint toggles", func(t *testing.T) {
		problem := northYard()
		problem.Constraints = &model.Constraints{
			SupervisorCoverage: boolPtr(false),
			Preference:         boolPtr(true),
		}

		built, err := BuildInstance(problem, logger)
		require.NoError(t, err)

		assert.Equal(t, solver.ConstraintToggles{
			Preference:         true,
			ForbiddenPairs:     true,
			SupervisorCoverage: false,
			MinHeadcount:       true,
		}, built.Instance.Toggles())
	})
}

func TestBuildInstance_DayAdjustments(t *testing.T) {
	adj := &dayAdjustments{
		absent:       map[string]bool{"Bo": true},
		minHeadcount: map[string]int{"Pour": 2},
		constraints:  []*model.Constraints{{ForbiddenPairs: boolPtr(false)}},
	}

	built, err := buildInstance(northYard(), adj, zap.NewNop())
	require.NoError(t, err)

	inst := built.Instance
	require.Equal(t, 3, inst.WorkerCount())
	assert.Equal(t, "Al", built.Labels.WorkerLabel(0))
	assert.Equal(t, "Cy", built.Labels.WorkerLabel(1))
	assert.Equal(t, "Di", built.Labels.WorkerLabel(2))
	assert.Equal(t, 2, built.ProblemWorkerIndex(1))

	assert.Equal(t, []int{0}, inst.Supervisors())
	assert.Equal(t, 2, inst.Area(0).MinHeadcount)
	assert.Equal(t, 1, inst.Area(1).MinHeadcount)

	// The Bo/Cy pair is skipped, not reported
	assert.Empty(t, inst.ForbiddenPairs())
	assert.Empty(t, built.Dropped)
	assert.False(t, inst.Toggles().ForbiddenPairs)
}

func TestBuildInstance_EveryWorkerAbsent(t *testing.T) {
	adj := &dayAdjustments{absent: map[string]bool{"Al": true, "Bo": true, "Cy": true, "Di": true}}

	_, err := buildInstance(northYard(), adj, zap.NewNop())
	assert.ErrorIs(t, err, solver.ErrInvalidInstance)
}

func TestToggles(t *testing.T) {
	t.Run("nil means everything on", func(t *testing.T) {
		assert.Equal(t, solver.AllConstraints(), toggles(nil, nil))
	})

	t.Run("later overrides win", func(t *testing.T) {
		base := &model.Constraints{MinHeadcount: boolPtr(false), Preference: boolPtr(false)}
		overrides := []*model.Constraints{
			{MinHeadcount: boolPtr(true)},
			nil,
			{Preference: boolPtr(true), SupervisorCoverage: boolPtr(false)},
		}

		got := toggles(base, overrides)

		assert.Equal(t, solver.ConstraintToggles{
			Preference:         true,
			ForbiddenPairs:     true,
			SupervisorCoverage: false,
			MinHeadcount:       true,
		}, got)
	})
}

func TestNameLabels_OutOfRange(t *testing.T) {
	labels := &NameLabels{workers: []string{"Al"}, areas: []string{"Pour"}}

	assert.Equal(t, "Al", labels.WorkerLabel(0))
	assert.Equal(t, "W3", labels.WorkerLabel(3))
	assert.Equal(t, "A1", labels.AreaLabel(1))
}
