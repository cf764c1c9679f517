package commands

import (
	"github.com/spf13/cobra"

	"github.com/jakechorley/site-dispatch/internal/config"
	"github.com/jakechorley/site-dispatch/pkg/core/services"
)

// addSolverFlags registers the search limit flags shared by solve and plan
func addSolverFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("parallel", false, "Explore the first worker's areas concurrently")
	cmd.Flags().Int("max-steps", 0, "Abort after this many branch attempts (0 = unbounded)")
	cmd.Flags().Duration("timeout", 0, "Abort the search after this long (0 = no limit)")
}

// dispatchOptions starts from the configured solver defaults and applies any flags the
// user set explicitly
func dispatchOptions(cmd *cobra.Command, cfg config.SolverConfig) services.DispatchOptions {
	opts := services.DispatchOptions{
		MaxSteps: cfg.MaxSteps,
		Timeout:  cfg.Timeout,
		Parallel: cfg.Parallel,
	}

	flags := cmd.Flags()
	if flags.Changed("parallel") {
		opts.Parallel, _ = flags.GetBool("parallel")
	}
	if flags.Changed("max-steps") {
		opts.MaxSteps, _ = flags.GetInt("max-steps")
	}
	if flags.Changed("timeout") {
		opts.Timeout, _ = flags.GetDuration("timeout")
	}

	return opts
}
