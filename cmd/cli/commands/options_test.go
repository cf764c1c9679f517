package commands

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/site-dispatch/internal/config"
)

func TestDispatchOptions(t *testing.T) {
	defaults := config.SolverConfig{MaxSteps: 1000, Timeout: time.Minute, Parallel: true}

	tests := []struct {
		name     string
		args     []string
		maxSteps int
		timeout  time.Duration
		parallel bool
	}{
		{"config defaults", nil, 1000, time.Minute, true},
		{"flags override", []string{"--max-steps=50", "--timeout=5s", "--parallel=false"}, 50, 5 * time.Second, false},
		{"explicit zero removes the budget", []string{"--max-steps=0"}, 0, time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test"}
			addSolverFlags(cmd)
			require.NoError(t, cmd.ParseFlags(tt.args))

			opts := dispatchOptions(cmd, defaults)

			assert.Equal(t, tt.maxSteps, opts.MaxSteps)
			assert.Equal(t, tt.timeout, opts.Timeout)
			assert.Equal(t, tt.parallel, opts.Parallel)
			assert.Empty(t, opts.Date)
		})
	}
}
