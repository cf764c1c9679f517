package solver

import "slices"

// ConstraintToggles switch each constraint class on or off.
// A disabled constraint stays in the instance (and in the trace) but is inert during search.
type ConstraintToggles struct {
	Preference         bool
	ForbiddenPairs     bool
	SupervisorCoverage bool
	MinHeadcount       bool
}

// AllConstraints returns toggles with every constraint class enabled
func AllConstraints() ConstraintToggles {
	return ConstraintToggles{
		Preference:         true,
		ForbiddenPairs:     true,
		SupervisorCoverage: true,
		MinHeadcount:       true,
	}
}

// Worker is a single crew member identified by a stable index
type Worker struct {
	Index int

	// Supervisor marks workers that satisfy the per-area supervisor coverage requirement
	Supervisor bool

	// EligibleAreas lists the area indices this worker may be placed in, ascending.
	// Never empty: an unrestricted worker lists every area.
	EligibleAreas []int
}

// Area is a work area with a minimum headcount requirement
type Area struct {
	Index        int
	MinHeadcount int
}

// Pair is an unordered pair of worker indices, stored with A < B
type Pair struct {
	A int
	B int
}

// Instance is an immutable problem instance handed to the solver.
// Build it with NewInstance.
type Instance struct {
	workers []Worker
	areas   []Area

	// forbidden is a symmetric, irreflexive N×N relation
	forbidden [][]bool

	// pairs holds the de-duplicated forbidden pairs in input order, for tracing
	pairs []Pair

	toggles ConstraintToggles
}

// WorkerCount returns N
func (inst *Instance) WorkerCount() int {
	return len(inst.workers)
}

// AreaCount returns M
func (inst *Instance) AreaCount() int {
	return len(inst.areas)
}

// Worker returns a copy of the worker with the given index
func (inst *Instance) Worker(i int) Worker {
	w := inst.workers[i]
	w.EligibleAreas = slices.Clone(w.EligibleAreas)
	return w
}

// Area returns the area with the given index
func (inst *Instance) Area(i int) Area {
	return inst.areas[i]
}

// Forbidden reports whether workers a and b must never share an area
func (inst *Instance) Forbidden(a, b int) bool {
	return inst.forbidden[a][b]
}

// ForbiddenPairs returns a copy of the forbidden pair list
func (inst *Instance) ForbiddenPairs() []Pair {
	return slices.Clone(inst.pairs)
}

func (inst *Instance) isEligible(worker, area int) bool {
	_, found := slices.BinarySearch(inst.workers[worker].EligibleAreas, area)
	return found
}

// IsSupervisor reports whether worker i is in the supervisor set
func (inst *Instance) IsSupervisor(i int) bool {
	return inst.workers[i].Supervisor
}

// Supervisors returns the supervisor indices in ascending order
func (inst *Instance) Supervisors() []int {
	var supervisors []int
	for _, w := range inst.workers {
		if w.Supervisor {
			supervisors = append(supervisors, w.Index)
		}
	}
	return supervisors
}

// Toggles returns the constraint toggles of the instance
func (inst *Instance) Toggles() ConstraintToggles {
	return inst.toggles
}

// CandidateAreas returns a copy of the areas tried for a worker, in branching order.
// With the preference constraint on this is the worker's eligible set, otherwise every area.
func (inst *Instance) CandidateAreas(worker int) []int {
	return slices.Clone(inst.candidateAreas(worker))
}

// candidateAreas is CandidateAreas without the copy; callers must not modify the result
func (inst *Instance) candidateAreas(worker int) []int {
	if inst.toggles.Preference {
		return inst.workers[worker].EligibleAreas
	}
	all := make([]int, len(inst.areas))
	for i := range all {
		all[i] = i
	}
	return all
}

// Assignment maps each area index to the workers placed in it, in placement order
type Assignment [][]int

// Clone returns a deep copy of the assignment
func (a Assignment) Clone() Assignment {
	clone := make(Assignment, len(a))
	for i, members := range a {
		clone[i] = slices.Clone(members)
		if clone[i] == nil {
			clone[i] = []int{}
		}
	}
	return clone
}

// AreaOf returns the area the worker is placed in, or -1 if unplaced
func (a Assignment) AreaOf(worker int) int {
	for area, members := range a {
		if slices.Contains(members, worker) {
			return area
		}
	}
	return -1
}

// PlacedCount returns the number of workers placed across all areas
func (a Assignment) PlacedCount() int {
	count := 0
	for _, members := range a {
		count += len(members)
	}
	return count
}

// SearchState is the in-progress partial assignment owned by the active search.
// Criteria read it; only the search mutates it.
type SearchState struct {
	Instance *Instance

	// Areas is the partial assignment
	Areas Assignment

	// Placed is the number of workers placed so far (workers 0..Placed-1)
	Placed int
}

// NewSearchState creates an empty search state for the instance
func NewSearchState(inst *Instance) *SearchState {
	areas := make(Assignment, inst.AreaCount())
	for i := range areas {
		areas[i] = make([]int, 0, inst.WorkerCount())
	}
	return &SearchState{
		Instance: inst,
		Areas:    areas,
	}
}

// Unplaced returns the number of workers not yet placed
func (s *SearchState) Unplaced() int {
	return s.Instance.WorkerCount() - s.Placed
}

// Headcount returns the number of workers currently in the area
func (s *SearchState) Headcount(area int) int {
	return len(s.Areas[area])
}

// place appends the worker to the area and returns the undo function
func (s *SearchState) place(worker, area int) func() {
	s.Areas[area] = append(s.Areas[area], worker)
	s.Placed++
	return func() {
		members := s.Areas[area]
		// The worker is always the last member appended to this area
		s.Areas[area] = members[:len(members)-1]
		s.Placed--
	}
}
