package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/site-dispatch/pkg/core/model"
	"github.com/jakechorley/site-dispatch/pkg/core/solver"
)

// NameLabels renders solver indices with the names from a problem file
type NameLabels struct {
	workers []string
	areas   []string
}

var _ solver.Labeler = (*NameLabels)(nil)

func (l *NameLabels) WorkerLabel(worker int) string {
	if worker < 0 || worker >= len(l.workers) {
		return solver.IndexLabels{}.WorkerLabel(worker)
	}
	return l.workers[worker]
}

func (l *NameLabels) AreaLabel(area int) string {
	if area < 0 || area >= len(l.areas) {
		return solver.IndexLabels{}.AreaLabel(area)
	}
	return l.areas[area]
}

// BuiltInstance is a solver instance together with what is needed to present it
type BuiltInstance struct {
	Instance *solver.Instance
	Labels   *NameLabels

	// Dropped lists input entries discarded while building (unknown names, self pairs, duplicates)
	Dropped []solver.DroppedEntry

	// workerRefs maps solver worker indices to indices in problem.Workers
	workerRefs []int
}

// ProblemWorkerIndex returns the problem file index of a solver worker
func (b *BuiltInstance) ProblemWorkerIndex(worker int) int {
	return b.workerRefs[worker]
}

// dayAdjustments are the override effects for a single dispatch day
type dayAdjustments struct {
	absent       map[string]bool
	minHeadcount map[string]int
	constraints  []*model.Constraints
}

// BuildInstance translates a problem file into a solver instance.
// Names are resolved to indices in file order. Forbidden pairs and eligible areas naming
// unknown workers or areas are dropped, logged at Warn and listed in the result.
func BuildInstance(problem *model.Problem, logger *zap.Logger) (*BuiltInstance, error) {
	return buildInstance(problem, nil, logger)
}

func buildInstance(problem *model.Problem, adj *dayAdjustments, logger *zap.Logger) (*BuiltInstance, error) {
	if adj == nil {
		adj = &dayAdjustments{}
	}

	built := &BuiltInstance{Labels: &NameLabels{}}

	// Present workers, in file order
	solverIndex := make(map[string]int, len(problem.Workers))
	for i, w := range problem.Workers {
		if adj.absent[w.Name] {
			logger.Debug("Worker absent", zap.String("worker", w.Name))
			continue
		}
		solverIndex[w.Name] = len(built.workerRefs)
		built.workerRefs = append(built.workerRefs, i)
		built.Labels.workers = append(built.Labels.workers, w.Name)
	}

	minimums := make([]int, len(problem.Areas))
	areaIndex := make(map[string]int, len(problem.Areas))
	for i, a := range problem.Areas {
		areaIndex[a.Name] = i
		minimums[i] = a.MinHeadcount
		if override, ok := adj.minHeadcount[a.Name]; ok {
			logger.Debug("Overriding minimum headcount",
				zap.String("area", a.Name),
				zap.Int("default", a.MinHeadcount),
				zap.Int("override", override))
			minimums[i] = override
		}
		built.Labels.areas = append(built.Labels.areas, a.Name)
	}

	input := solver.InstanceInput{
		WorkerCount:   len(built.workerRefs),
		MinHeadcounts: minimums,
		EligibleAreas: make(map[int][]int),
		Toggles:       toggles(problem.Constraints, adj.constraints),
	}

	for _, ref := range built.workerRefs {
		w := problem.Workers[ref]
		idx := solverIndex[w.Name]
		if w.Supervisor {
			input.Supervisors = append(input.Supervisors, idx)
		}
		for _, name := range w.Areas {
			area, ok := areaIndex[name]
			if !ok {
				built.drop(logger, solver.DroppedEligibleArea, fmt.Sprintf("%s: %s", w.Name, name), "unknown area")
				continue
			}
			input.EligibleAreas[idx] = append(input.EligibleAreas[idx], area)
		}
	}

	for _, pair := range problem.ForbiddenPairs {
		value := fmt.Sprintf("%s and %s", pair[0], pair[1])
		if problem.WorkerIndex(pair[0]) < 0 || problem.WorkerIndex(pair[1]) < 0 {
			built.drop(logger, solver.DroppedForbiddenPair, value, "unknown worker")
			continue
		}

		a, aPresent := solverIndex[pair[0]]
		b, bPresent := solverIndex[pair[1]]
		if !aPresent || !bPresent {
			// Not malformed; the pair simply cannot matter today
			logger.Debug("Skipping forbidden pair with absent worker", zap.String("pair", value))
			continue
		}
		input.ForbiddenPairs = append(input.ForbiddenPairs, [2]int{a, b})
	}

	inst, report, err := solver.NewInstance(input)
	if err != nil {
		return nil, fmt.Errorf("failed to build instance: %w", err)
	}
	for _, entry := range report.Dropped {
		built.drop(logger, entry.Kind, describeDropped(entry, built.Labels), entry.Reason)
	}
	built.Instance = inst

	logger.Debug("Built instance",
		zap.String("problem", problem.Name),
		zap.Int("workers", inst.WorkerCount()),
		zap.Int("areas", inst.AreaCount()),
		zap.Int("forbidden_pairs", len(inst.ForbiddenPairs())),
		zap.Int("dropped", len(built.Dropped)))

	return built, nil
}

func (b *BuiltInstance) drop(logger *zap.Logger, kind, value, reason string) {
	logger.Warn("Dropping input entry",
		zap.String("kind", kind),
		zap.String("value", value),
		zap.String("reason", reason))
	b.Dropped = append(b.Dropped, solver.DroppedEntry{Kind: kind, Value: value, Reason: reason})
}

// describeDropped names the workers of a forbidden pair the solver dropped by index.
// Only self pairs and duplicates reach the solver, so both indices are in range.
func describeDropped(entry solver.DroppedEntry, labels *NameLabels) string {
	if entry.Kind != solver.DroppedForbiddenPair {
		return entry.Value
	}
	var a, b int
	if _, err := fmt.Sscanf(entry.Value, "(%d, %d)", &a, &b); err != nil {
		return entry.Value
	}
	return fmt.Sprintf("%s and %s", labels.WorkerLabel(a), labels.WorkerLabel(b))
}

// toggles resolves the constraint toggles: everything on, then the problem's settings,
// then each override's settings in order
func toggles(base *model.Constraints, overrides []*model.Constraints) solver.ConstraintToggles {
	t := solver.AllConstraints()
	for _, c := range append([]*model.Constraints{base}, overrides...) {
		if c == nil {
			continue
		}
		setToggle(&t.Preference, c.Preference)
		setToggle(&t.ForbiddenPairs, c.ForbiddenPairs)
		setToggle(&t.SupervisorCoverage, c.SupervisorCoverage)
		setToggle(&t.MinHeadcount, c.MinHeadcount)
	}
	return t
}

func setToggle(dst *bool, value *bool) {
	if value != nil {
		*dst = *value
	}
}
