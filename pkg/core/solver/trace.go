package solver

import (
	"fmt"
	"strings"
)

// BuildTrace renders the human-readable trace for an outcome.
// Every constraint class is described, disabled ones marked "(off)", followed by the extra criteria.
// The wording is diagnostic only and carries no compatibility guarantee.
func BuildTrace(inst *Instance, extra []Criterion, labels Labeler, outcome *Outcome) string {
	if labels == nil {
		labels = IndexLabels{}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Workers: %d, areas: %d\n", inst.WorkerCount(), inst.AreaCount())

	t := inst.Toggles()
	fmt.Fprintf(&b, "Constraints: preference=%s forbiddenPairs=%s supervisorCoverage=%s minHeadcount=%s\n",
		onOff(t.Preference), onOff(t.ForbiddenPairs), onOff(t.SupervisorCoverage), onOff(t.MinHeadcount))

	for _, c := range builtinCriteria() {
		suffix := ""
		if !c.enabled(t) {
			suffix = " (off)"
		}
		for _, line := range c.Describe(inst, labels) {
			fmt.Fprintf(&b, "[%s] %s%s\n", c.Name(), line, suffix)
		}
	}
	for _, c := range extra {
		for _, line := range c.Describe(inst, labels) {
			fmt.Fprintf(&b, "[%s] %s\n", c.Name(), line)
		}
	}

	if outcome == nil {
		return b.String()
	}

	switch outcome.Status {
	case StatusFeasible:
		b.WriteString("Assignment found:\n")
		for area, members := range outcome.Assignment {
			names := make([]string, len(members))
			for i, worker := range members {
				names[i] = labels.WorkerLabel(worker)
			}
			fmt.Fprintf(&b, "%s: %s\n", labels.AreaLabel(area), strings.Join(names, ", "))
		}
	case StatusInfeasible:
		b.WriteString("No valid assignment found.\n")
	case StatusAborted:
		fmt.Fprintf(&b, "Search aborted after %d steps.\n", outcome.Steps)
	}

	return b.String()
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
