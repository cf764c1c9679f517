package solver

import (
	"fmt"
	"strings"
)

// SupervisorCoverageCriterion requires at least one supervisor in every area.
//
// Placement:
//   - While an area is below its minimum headcount, only supervisors may be placed in it.
//     This fills each area's quota with supervisors first. It is a heuristic and does not
//     prove that coverage is still achievable.
//
// Partial state:
//   - Advisory only; coverage is not checked until every worker is placed.
//
// Complete state:
//   - Every area must contain at least one supervisor. With an empty supervisor set this
//     can never hold, so the instance is infeasible.
//
// Inert when the instance's SupervisorCoverage toggle is off.
type SupervisorCoverageCriterion struct{}

// NewSupervisorCoverageCriterion creates a new SupervisorCoverageCriterion
func NewSupervisorCoverageCriterion() *SupervisorCoverageCriterion {
	return &SupervisorCoverageCriterion{}
}

func (c *SupervisorCoverageCriterion) Name() string {
	return "SupervisorCoverage"
}

func (c *SupervisorCoverageCriterion) enabled(toggles ConstraintToggles) bool {
	return toggles.SupervisorCoverage
}

func (c *SupervisorCoverageCriterion) AllowsPlacement(state *SearchState, worker, area int) bool {
	inst := state.Instance
	if !c.enabled(inst.Toggles()) {
		return true
	}
	if state.Headcount(area) < inst.Area(area).MinHeadcount && !inst.IsSupervisor(worker) {
		return false
	}
	return true
}

func (c *SupervisorCoverageCriterion) IsPartialValid(state *SearchState, worker, area int) bool {
	return true
}

func (c *SupervisorCoverageCriterion) ValidateComplete(state *SearchState) []AreaViolation {
	if !c.enabled(state.Instance.Toggles()) {
		return nil
	}

	var violations []AreaViolation
	for area, members := range state.Areas {
		hasSupervisor := false
		for _, worker := range members {
			if state.Instance.IsSupervisor(worker) {
				hasSupervisor = true
				break
			}
		}
		if !hasSupervisor {
			violations = append(violations, AreaViolation{
				AreaIndex:     area,
				CriterionName: c.Name(),
				Description:   fmt.Sprintf("Area has no supervisor among its %d workers", len(members)),
			})
		}
	}
	return violations
}

func (c *SupervisorCoverageCriterion) Describe(inst *Instance, labels Labeler) []string {
	supervisors := inst.Supervisors()
	if len(supervisors) == 0 {
		if c.enabled(inst.Toggles()) {
			return []string{"Supervisors: none, every area needs one so no assignment can succeed"}
		}
		return []string{"Supervisors: none"}
	}
	return []string{"Supervisors: " + strings.Join(joinLabels(supervisors, labels.WorkerLabel), ", ")}
}
