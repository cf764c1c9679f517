package solver

import (
	"fmt"
	"strings"
)

// PreferenceCriterion keeps every worker inside their eligible areas.
// The search already branches only over eligible areas when this is enabled,
// so the checks confirm rather than prune.
//
// Inert when the instance's Preference toggle is off.
type PreferenceCriterion struct{}

// NewPreferenceCriterion creates a new PreferenceCriterion
func NewPreferenceCriterion() *PreferenceCriterion {
	return &PreferenceCriterion{}
}

func (c *PreferenceCriterion) Name() string {
	return "Preference"
}

func (c *PreferenceCriterion) enabled(toggles ConstraintToggles) bool {
	return toggles.Preference
}

func (c *PreferenceCriterion) AllowsPlacement(state *SearchState, worker, area int) bool {
	return true
}

func (c *PreferenceCriterion) IsPartialValid(state *SearchState, worker, area int) bool {
	if !c.enabled(state.Instance.Toggles()) {
		return true
	}
	return state.Instance.isEligible(worker, area)
}

func (c *PreferenceCriterion) ValidateComplete(state *SearchState) []AreaViolation {
	if !c.enabled(state.Instance.Toggles()) {
		return nil
	}

	var violations []AreaViolation
	for area, members := range state.Areas {
		for _, worker := range members {
			if !state.Instance.isEligible(worker, area) {
				violations = append(violations, AreaViolation{
					AreaIndex:     area,
					CriterionName: c.Name(),
					Description:   fmt.Sprintf("Worker %d is not eligible for this area", worker),
				})
			}
		}
	}
	return violations
}

func (c *PreferenceCriterion) Describe(inst *Instance, labels Labeler) []string {
	var lines []string
	for i := range inst.WorkerCount() {
		eligible := inst.workers[i].EligibleAreas
		if len(eligible) == inst.AreaCount() {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s eligible for: %s",
			labels.WorkerLabel(i), strings.Join(joinLabels(eligible, labels.AreaLabel), ", ")))
	}
	if len(lines) == 0 {
		return []string{"Every worker is eligible for every area"}
	}
	return lines
}
