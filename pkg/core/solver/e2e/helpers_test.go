package e2e

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/site-dispatch/pkg/core/solver"
)

// solve builds the instance and runs the sequential search
func solve(t *testing.T, input solver.InstanceInput) *solver.Outcome {
	t.Helper()
	inst, _, err := solver.NewInstance(input)
	require.NoError(t, err)

	outcome, err := solver.Solve(context.Background(), solver.Config{Instance: inst})
	require.NoError(t, err)
	return outcome
}

func solveParallel(t *testing.T, input solver.InstanceInput) *solver.Outcome {
	t.Helper()
	inst, _, err := solver.NewInstance(input)
	require.NoError(t, err)

	outcome, err := solver.SolveParallel(context.Background(), solver.Config{Instance: inst})
	require.NoError(t, err)
	return outcome
}

// checkAssignment independently verifies a complete assignment against every enabled
// constraint and returns a description of each problem found
func checkAssignment(input solver.InstanceInput, assignment solver.Assignment) []string {
	var problems []string
	areaCount := len(input.MinHeadcounts)

	if len(assignment) != areaCount {
		return []string{fmt.Sprintf("assignment has %d areas, want %d", len(assignment), areaCount)}
	}

	seen := make(map[int]int)
	for area, members := range assignment {
		for _, w := range members {
			seen[w]++
			if input.Toggles.Preference {
				eligible := input.EligibleAreas[w]
				if len(eligible) > 0 && !slices.Contains(eligible, area) {
					problems = append(problems, fmt.Sprintf("worker %d not eligible for area %d", w, area))
				}
			}
		}
	}
	for w := range input.WorkerCount {
		if seen[w] != 1 {
			problems = append(problems, fmt.Sprintf("worker %d placed %d times", w, seen[w]))
		}
	}
	if len(seen) != input.WorkerCount {
		problems = append(problems, "assignment contains unknown workers")
	}

	for area, members := range assignment {
		if input.Toggles.ForbiddenPairs {
			for _, p := range input.ForbiddenPairs {
				if p[0] != p[1] && slices.Contains(members, p[0]) && slices.Contains(members, p[1]) {
					problems = append(problems, fmt.Sprintf("forbidden pair %v shares area %d", p, area))
				}
			}
		}
		if input.Toggles.MinHeadcount && len(members) < input.MinHeadcounts[area] {
			problems = append(problems, fmt.Sprintf("area %d has %d workers, minimum %d", area, len(members), input.MinHeadcounts[area]))
		}
		if input.Toggles.SupervisorCoverage {
			covered := false
			for _, w := range members {
				if slices.Contains(input.Supervisors, w) {
					covered = true
				}
			}
			if !covered {
				problems = append(problems, fmt.Sprintf("area %d has no supervisor", area))
			}
		}
	}

	return problems
}

// randomInput generates a small well-formed instance
func randomInput(r *rand.Rand) solver.InstanceInput {
	workers := 1 + r.IntN(6)
	areas := 1 + r.IntN(3)

	input := solver.InstanceInput{
		WorkerCount:   workers,
		MinHeadcounts: make([]int, areas),
		EligibleAreas: map[int][]int{},
		Toggles: solver.ConstraintToggles{
			Preference:         r.IntN(2) == 0,
			ForbiddenPairs:     r.IntN(2) == 0,
			SupervisorCoverage: r.IntN(2) == 0,
			MinHeadcount:       r.IntN(2) == 0,
		},
	}
	for a := range areas {
		input.MinHeadcounts[a] = r.IntN(3)
	}
	for w := range workers {
		if r.IntN(3) == 0 {
			input.Supervisors = append(input.Supervisors, w)
		}
		if r.IntN(3) == 0 {
			input.EligibleAreas[w] = []int{r.IntN(areas)}
		}
	}
	if workers > 1 {
		for range r.IntN(workers) {
			a, b := r.IntN(workers), r.IntN(workers)
			if a != b {
				input.ForbiddenPairs = append(input.ForbiddenPairs, [2]int{a, b})
			}
		}
	}
	return input
}
