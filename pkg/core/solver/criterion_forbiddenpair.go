package solver

import "fmt"

// ForbiddenPairCriterion keeps forbidden pairs out of the same area.
//
// Partial state:
//   - Returns false if the newly placed worker shares the area with a worker they are
//     paired with. Other areas were already checked when their members were placed.
//
// Complete state:
//   - Re-checks every area for forbidden pairs.
//
// Inert when the instance's ForbiddenPairs toggle is off.
type ForbiddenPairCriterion struct{}

// NewForbiddenPairCriterion creates a new ForbiddenPairCriterion
func NewForbiddenPairCriterion() *ForbiddenPairCriterion {
	return &ForbiddenPairCriterion{}
}

func (c *ForbiddenPairCriterion) Name() string {
	return "ForbiddenPair"
}

func (c *ForbiddenPairCriterion) enabled(toggles ConstraintToggles) bool {
	return toggles.ForbiddenPairs
}

func (c *ForbiddenPairCriterion) AllowsPlacement(state *SearchState, worker, area int) bool {
	return true
}

func (c *ForbiddenPairCriterion) IsPartialValid(state *SearchState, worker, area int) bool {
	if !c.enabled(state.Instance.Toggles()) {
		return true
	}
	for _, other := range state.Areas[area] {
		if other != worker && state.Instance.Forbidden(worker, other) {
			return false
		}
	}
	return true
}

func (c *ForbiddenPairCriterion) ValidateComplete(state *SearchState) []AreaViolation {
	if !c.enabled(state.Instance.Toggles()) {
		return nil
	}

	var violations []AreaViolation
	for area, members := range state.Areas {
		for i, a := range members {
			for _, b := range members[i+1:] {
				if state.Instance.Forbidden(a, b) {
					violations = append(violations, AreaViolation{
						AreaIndex:     area,
						CriterionName: c.Name(),
						Description:   fmt.Sprintf("Workers %d and %d are a forbidden pair", a, b),
					})
				}
			}
		}
	}
	return violations
}

func (c *ForbiddenPairCriterion) Describe(inst *Instance, labels Labeler) []string {
	pairs := inst.ForbiddenPairs()
	lines := []string{fmt.Sprintf("Forbidden pairs: %d", len(pairs))}
	for _, p := range pairs {
		lines = append(lines, fmt.Sprintf("%s and %s must not share an area", labels.WorkerLabel(p.A), labels.WorkerLabel(p.B)))
	}
	return lines
}
