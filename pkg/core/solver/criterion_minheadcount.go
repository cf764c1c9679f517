package solver

import (
	"fmt"
	"strings"
)

// MinHeadcountCriterion requires every area to reach its minimum headcount.
//
// Partial state:
//   - Returns false if the total shortfall across all areas exceeds the number of workers
//     still to be placed, since no completion could then meet every minimum.
//
// Complete state:
//   - Every area's headcount must be at least its minimum.
//
// Inert when the instance's MinHeadcount toggle is off.
type MinHeadcountCriterion struct{}

// NewMinHeadcountCriterion creates a new MinHeadcountCriterion
func NewMinHeadcountCriterion() *MinHeadcountCriterion {
	return &MinHeadcountCriterion{}
}

func (c *MinHeadcountCriterion) Name() string {
	return "MinHeadcount"
}

func (c *MinHeadcountCriterion) enabled(toggles ConstraintToggles) bool {
	return toggles.MinHeadcount
}

func (c *MinHeadcountCriterion) AllowsPlacement(state *SearchState, worker, area int) bool {
	return true
}

func (c *MinHeadcountCriterion) IsPartialValid(state *SearchState, worker, area int) bool {
	if !c.enabled(state.Instance.Toggles()) {
		return true
	}
	return Shortfall(state) <= state.Unplaced()
}

// Shortfall returns the total number of workers still needed to bring every area to its minimum
func Shortfall(state *SearchState) int {
	shortfall := 0
	for area := range state.Areas {
		shortfall += max(state.Instance.Area(area).MinHeadcount-state.Headcount(area), 0)
	}
	return shortfall
}

func (c *MinHeadcountCriterion) ValidateComplete(state *SearchState) []AreaViolation {
	if !c.enabled(state.Instance.Toggles()) {
		return nil
	}

	var violations []AreaViolation
	for area := range state.Areas {
		headcount := state.Headcount(area)
		minimum := state.Instance.Area(area).MinHeadcount
		if headcount < minimum {
			violations = append(violations, AreaViolation{
				AreaIndex:     area,
				CriterionName: c.Name(),
				Description:   fmt.Sprintf("Area is understaffed: has %d workers but minimum is %d", headcount, minimum),
			})
		}
	}
	return violations
}

func (c *MinHeadcountCriterion) Describe(inst *Instance, labels Labeler) []string {
	minimums := make([]string, inst.AreaCount())
	for i := range minimums {
		minimums[i] = fmt.Sprintf("%s=%d", labels.AreaLabel(i), inst.Area(i).MinHeadcount)
	}
	return []string{"Minimum headcount: " + strings.Join(minimums, ", ")}
}
