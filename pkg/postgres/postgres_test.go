//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/site-dispatch/pkg/db"
)

// testDatabaseEnv names a disposable database; every test truncates its tables
const testDatabaseEnv = "SITE_DISPATCH_TEST_DATABASE_URL"

func openTestDB(t *testing.T) *DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping PostgreSQL test in short mode")
	}
	connString := os.Getenv(testDatabaseEnv)
	if connString == "" {
		t.Skipf("%s not set", testDatabaseEnv)
	}

	ctx := context.Background()
	d, err := NewDB(ctx, connString, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(d.Close)

	_, err = d.pool.Exec(ctx, `TRUNCATE dispatch_run CASCADE`)
	require.NoError(t, err)
	return d
}

func TestRunMigrations_Idempotent(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, d.RunMigrations(ctx))

	var count int
	require.NoError(t, d.pool.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE filename = '001_create_runs.sql'`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestInsertAndGetRun(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	runID := uuid.NewString()
	created := time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)
	run := &db.Run{
		ID:           runID,
		CreatedAt:    created,
		ProblemName:  "north yard",
		DispatchDate: "2026-03-02",
		Status:       db.RunStatusFeasible,
		Steps:        12,
		Trace:        "Assignment found:",
	}
	placements := []db.Placement{
		{RunID: runID, AreaIndex: 1, AreaName: "Scaffold", Position: 0, WorkerIndex: 1, WorkerName: "Bo", Supervisor: true},
		{RunID: runID, AreaIndex: 0, AreaName: "Pour", Position: 1, WorkerIndex: 2, WorkerName: "Cy"},
		{RunID: runID, AreaIndex: 0, AreaName: "Pour", Position: 0, WorkerIndex: 0, WorkerName: "Al", Supervisor: true},
	}

	require.NoError(t, d.InsertRun(ctx, run, placements))

	t.Run("get run round trips fields", func(t *testing.T) {
		got, err := d.GetRun(ctx, runID)
		require.NoError(t, err)

		assert.Equal(t, runID, got.ID)
		assert.True(t, created.Equal(got.CreatedAt))
		assert.Equal(t, "north yard", got.ProblemName)
		assert.Equal(t, "2026-03-02", got.DispatchDate)
		assert.Equal(t, db.RunStatusFeasible, got.Status)
		assert.Equal(t, int64(12), got.Steps)
		assert.Equal(t, "Assignment found:", got.Trace)
	})

	t.Run("placements ordered by area then position", func(t *testing.T) {
		got, err := d.GetPlacements(ctx, runID)
		require.NoError(t, err)

		require.Len(t, got, 3)
		assert.Equal(t, "Al", got[0].WorkerName)
		assert.True(t, got[0].Supervisor)
		assert.Equal(t, "Cy", got[1].WorkerName)
		assert.Equal(t, "Bo", got[2].WorkerName)
		assert.Equal(t, runID, got[2].RunID)
	})

	t.Run("unknown run", func(t *testing.T) {
		_, err := d.GetRun(ctx, uuid.NewString())
		assert.ErrorIs(t, err, db.ErrRunNotFound)
	})

	t.Run("duplicate run id is rejected", func(t *testing.T) {
		assert.Error(t, d.InsertRun(ctx, run, nil))
	})
}

func TestInsertRunIsAtomic(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	runID := uuid.NewString()
	run := &db.Run{ID: runID, CreatedAt: time.Now(), ProblemName: "p", Status: db.RunStatusFeasible}
	placements := []db.Placement{
		{RunID: runID, AreaIndex: 0, AreaName: "A", WorkerIndex: 0, WorkerName: "Al"},
		{RunID: runID, AreaIndex: 1, AreaName: "B", WorkerIndex: 0, WorkerName: "Al"},
	}

	require.Error(t, d.InsertRun(ctx, run, placements))

	_, err := d.GetRun(ctx, runID)
	assert.ErrorIs(t, err, db.ErrRunNotFound)
}

func TestGetRuns(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ids := []string{uuid.NewString(), uuid.NewString(), uuid.NewString()}
	for i, id := range ids {
		run := &db.Run{
			ID:          id,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
			ProblemName: "p",
			Status:      db.RunStatusInfeasible,
		}
		require.NoError(t, d.InsertRun(ctx, run, nil))
	}

	t.Run("most recent first", func(t *testing.T) {
		runs, err := d.GetRuns(ctx, 0)
		require.NoError(t, err)

		require.Len(t, runs, 3)
		assert.Equal(t, ids[2], runs[0].ID)
		assert.Equal(t, ids[1], runs[1].ID)
		assert.Equal(t, ids[0], runs[2].ID)
		assert.Empty(t, runs[0].DispatchDate)
	})

	t.Run("limit", func(t *testing.T) {
		runs, err := d.GetRuns(ctx, 2)
		require.NoError(t, err)

		require.Len(t, runs, 2)
		assert.Equal(t, ids[2], runs[0].ID)
	})
}
