package solver

import (
	"fmt"
	"slices"
)

// InstanceInput is the raw, index-based description of a problem
type InstanceInput struct {
	// WorkerCount is N (must be at least 1)
	WorkerCount int

	// MinHeadcounts holds one non-negative minimum per area; its length is M
	MinHeadcounts []int

	// ForbiddenPairs are worker index pairs that must never share an area.
	// Unknown workers, self-pairs and duplicates are dropped and reported.
	ForbiddenPairs [][2]int

	// Supervisors lists supervisor worker indices. Out-of-range entries are dropped and reported.
	Supervisors []int

	// EligibleAreas maps a worker index to the areas it may work in.
	// A missing or empty entry means every area.
	EligibleAreas map[int][]int

	Toggles ConstraintToggles
}

// DroppedEntry describes an input entry that was discarded while building an instance
type DroppedEntry struct {
	Kind   string
	Value  string
	Reason string
}

// BuildReport lists everything NewInstance silently dropped.
// Dropping forbidden pairs changes solvability, so callers should surface it.
type BuildReport struct {
	Dropped []DroppedEntry
}

func (r *BuildReport) drop(kind, value, reason string) {
	r.Dropped = append(r.Dropped, DroppedEntry{Kind: kind, Value: value, Reason: reason})
}

// Entry kinds reported in BuildReport
const (
	DroppedForbiddenPair = "forbidden_pair"
	DroppedSupervisor    = "supervisor"
	DroppedEligibleArea  = "eligible_area"
)

// NewInstance validates the input and builds an immutable Instance.
//
// Structural problems (no workers, no areas, negative minimums) fail with ErrInvalidInstance.
// Malformed entries inside the lists are dropped rather than failing the request,
// and each drop is recorded in the returned BuildReport.
func NewInstance(input InstanceInput) (*Instance, *BuildReport, error) {
	n := input.WorkerCount
	m := len(input.MinHeadcounts)

	if n < 1 {
		return nil, nil, fmt.Errorf("%w: worker count must be at least 1, got %d", ErrInvalidInstance, n)
	}
	if m < 1 {
		return nil, nil, fmt.Errorf("%w: area count must be at least 1, got %d", ErrInvalidInstance, m)
	}

	report := &BuildReport{}

	areas := make([]Area, m)
	for i, minimum := range input.MinHeadcounts {
		if minimum < 0 {
			return nil, nil, fmt.Errorf("%w: area %d has negative minimum headcount %d", ErrInvalidInstance, i, minimum)
		}
		areas[i] = Area{Index: i, MinHeadcount: minimum}
	}

	workers := make([]Worker, n)
	for i := range workers {
		workers[i] = Worker{
			Index:         i,
			EligibleAreas: buildEligibleAreas(i, input.EligibleAreas[i], m, report),
		}
	}
	for worker := range input.EligibleAreas {
		if worker < 0 || worker >= n {
			report.drop(DroppedEligibleArea, fmt.Sprintf("worker %d", worker), "unknown worker")
		}
	}

	for _, s := range input.Supervisors {
		if s < 0 || s >= n {
			report.drop(DroppedSupervisor, fmt.Sprintf("%d", s), "unknown worker")
			continue
		}
		workers[s].Supervisor = true
	}

	forbidden := make([][]bool, n)
	for i := range forbidden {
		forbidden[i] = make([]bool, n)
	}

	var pairs []Pair
	for _, raw := range input.ForbiddenPairs {
		a, b := raw[0], raw[1]
		value := fmt.Sprintf("(%d, %d)", a, b)
		switch {
		case a < 0 || a >= n || b < 0 || b >= n:
			report.drop(DroppedForbiddenPair, value, "unknown worker")
			continue
		case a == b:
			report.drop(DroppedForbiddenPair, value, "self pair")
			continue
		case forbidden[a][b]:
			report.drop(DroppedForbiddenPair, value, "duplicate")
			continue
		}
		forbidden[a][b] = true
		forbidden[b][a] = true
		pairs = append(pairs, Pair{A: min(a, b), B: max(a, b)})
	}

	return &Instance{
		workers:   workers,
		areas:     areas,
		forbidden: forbidden,
		pairs:     pairs,
		toggles:   input.Toggles,
	}, report, nil
}

// buildEligibleAreas normalises a worker's eligible areas: sorted, de-duplicated, in range,
// and defaulting to every area when nothing valid remains
func buildEligibleAreas(worker int, requested []int, areaCount int, report *BuildReport) []int {
	eligible := make([]int, 0, len(requested))
	for _, area := range requested {
		if area < 0 || area >= areaCount {
			report.drop(DroppedEligibleArea, fmt.Sprintf("worker %d area %d", worker, area), "unknown area")
			continue
		}
		eligible = append(eligible, area)
	}
	slices.Sort(eligible)
	eligible = slices.Compact(eligible)

	if len(eligible) == 0 {
		eligible = make([]int, areaCount)
		for i := range eligible {
			eligible[i] = i
		}
	}
	return eligible
}
