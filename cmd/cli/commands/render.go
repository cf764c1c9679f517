package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jakechorley/site-dispatch/pkg/core/services"
	"github.com/jakechorley/site-dispatch/pkg/core/solver"
	"github.com/jakechorley/site-dispatch/pkg/db"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

func statusColor(status string) string {
	switch status {
	case db.RunStatusFeasible:
		return colorGreen
	case db.RunStatusInfeasible:
		return colorRed
	default:
		return colorYellow
	}
}

func colorStatus(status string) string {
	return statusColor(status) + status + colorReset
}

// renderDispatch prints a dispatch result: dropped entries, status, the assignment and
// optionally the full trace
func renderDispatch(w io.Writer, result *services.DispatchResult, showTrace bool) {
	outcome := result.Outcome

	if len(result.Built.Dropped) > 0 {
		fmt.Fprintf(w, "%sDropped %d input entries:%s\n", colorYellow, len(result.Built.Dropped), colorReset)
		for _, d := range result.Built.Dropped {
			fmt.Fprintf(w, "  - %s %s (%s)\n", d.Kind, d.Value, d.Reason)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Run %s: %s %s(%d steps, %s)%s\n",
		result.RunID, colorStatus(string(outcome.Status)), colorDim, outcome.Steps, outcome.Duration.Round(time.Microsecond), colorReset)

	if outcome.Success {
		renderAssignment(w, result.Built, outcome.Assignment)
	}

	if showTrace {
		fmt.Fprintf(w, "\n%s", outcome.Trace)
	}
}

func renderAssignment(w io.Writer, built *services.BuiltInstance, assignment solver.Assignment) {
	for area, workers := range assignment {
		names := make([]string, len(workers))
		for i, worker := range workers {
			names[i] = built.Labels.WorkerLabel(worker)
			if built.Instance.IsSupervisor(worker) {
				names[i] += "*"
			}
		}
		minimum := built.Instance.Area(area).MinHeadcount
		fmt.Fprintf(w, "  %-16s %d/%d  %s\n", built.Labels.AreaLabel(area), len(workers), minimum, strings.Join(names, ", "))
	}
}

// renderRun prints a recorded run and its placements grouped by area
func renderRun(w io.Writer, detail *services.RunDetail) {
	run := detail.Run
	fmt.Fprintf(w, "Run:     %s\n", run.ID)
	fmt.Fprintf(w, "Problem: %s\n", run.ProblemName)
	if run.DispatchDate != "" {
		fmt.Fprintf(w, "Date:    %s\n", run.DispatchDate)
	}
	fmt.Fprintf(w, "Created: %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Status:  %s (%d steps)\n\n", colorStatus(run.Status), run.Steps)

	for _, group := range services.GroupByArea(detail.Placements) {
		names := make([]string, len(group))
		for i, p := range group {
			names[i] = p.WorkerName
			if p.Supervisor {
				names[i] += "*"
			}
		}
		fmt.Fprintf(w, "  %-16s %s\n", group[0].AreaName, strings.Join(names, ", "))
	}

	fmt.Fprintf(w, "\n%s", run.Trace)
}

// renderRuns prints one line per run
func renderRuns(w io.Writer, runs []db.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	for _, run := range runs {
		date := run.DispatchDate
		if date == "" {
			date = "-"
		}
		fmt.Fprintf(w, "%s  %s  %-10s  %-20s  %s\n",
			run.ID,
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			date,
			run.ProblemName,
			colorStatus(run.Status))
	}
}
