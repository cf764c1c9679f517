package db

import "time"

// Run statuses mirror solver outcome statuses
const (
	RunStatusFeasible   = "feasible"
	RunStatusInfeasible = "infeasible"
	RunStatusAborted    = "aborted"
)

// Run is a recorded dispatch (one solver invocation)
type Run struct {
	ID           string
	CreatedAt    time.Time
	ProblemName  string
	DispatchDate string // Date format, empty for undated runs
	Status       string
	Steps        int64
	Trace        string
}

// Placement is a worker placed in an area by a feasible run
type Placement struct {
	RunID       string
	AreaIndex   int
	AreaName    string
	Position    int // placement order within the area
	WorkerIndex int
	WorkerName  string
	Supervisor  bool
}
