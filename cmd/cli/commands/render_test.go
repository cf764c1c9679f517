package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/site-dispatch/pkg/core/services"
	"github.com/jakechorley/site-dispatch/pkg/db"
)

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status   string
		expected string
	}{
		{db.RunStatusFeasible, colorGreen},
		{db.RunStatusInfeasible, colorRed},
		{db.RunStatusAborted, colorYellow},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.expected, statusColor(tt.status))
		})
	}
}

func TestRenderRuns(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		renderRuns(&buf, nil)
		assert.Equal(t, "No runs recorded.\n", buf.String())
	})

	t.Run("one line per run", func(t *testing.T) {
		var buf bytes.Buffer
		renderRuns(&buf, []db.Run{
			{ID: "run-2", CreatedAt: time.Now(), ProblemName: "north yard", DispatchDate: "2026-03-03", Status: db.RunStatusFeasible},
			{ID: "run-1", CreatedAt: time.Now(), ProblemName: "north yard", Status: db.RunStatusAborted},
		})

		out := buf.String()
		assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))
		assert.Contains(t, out, "run-2")
		assert.Contains(t, out, "2026-03-03")
		assert.Contains(t, out, colorYellow+"aborted"+colorReset)
	})
}

func TestRenderRun(t *testing.T) {
	detail := &services.RunDetail{
		Run: &db.Run{
			ID:          "run-2",
			CreatedAt:   time.Now(),
			ProblemName: "north yard",
			Status:      db.RunStatusFeasible,
			Steps:       9,
			Trace:       "Assignment found:\n",
		},
		Placements: []db.Placement{
			{AreaIndex: 0, AreaName: "Pour", WorkerName: "Al", Supervisor: true},
			{AreaIndex: 0, AreaName: "Pour", Position: 1, WorkerName: "Cy"},
			{AreaIndex: 1, AreaName: "Scaffold", WorkerName: "Bo", Supervisor: true},
		},
	}

	var buf bytes.Buffer
	renderRun(&buf, detail)

	out := buf.String()
	assert.Contains(t, out, "Problem: north yard")
	assert.NotContains(t, out, "Date:")
	assert.Contains(t, out, "Al*, Cy")
	assert.Contains(t, out, "Bo*")
	assert.Contains(t, out, "(9 steps)")
	assert.Contains(t, out, "Assignment found:")
}
