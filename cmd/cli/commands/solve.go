package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/site-dispatch/pkg/core/model"
	"github.com/jakechorley/site-dispatch/pkg/core/services"
)

// SolveCmd creates the solve command
func SolveCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <problem.yaml>",
		Short: "Assign the crew in a problem file to areas and record the run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, err := model.LoadProblemFromPath(args[0])
			if err != nil {
				return err
			}

			date, _ := cmd.Flags().GetString("date")
			showTrace, _ := cmd.Flags().GetBool("trace")
			opts := dispatchOptions(cmd, app.Cfg.Solver)
			opts.Date = date

			app.Logger.Debug("solve command",
				zap.String("problem", problem.Name),
				zap.Int("max_steps", opts.MaxSteps),
				zap.Duration("timeout", opts.Timeout),
				zap.Bool("parallel", opts.Parallel))

			result, err := services.Dispatch(app.Ctx, app.Database, app.Logger, problem, opts)
			if result != nil {
				fmt.Println()
				renderDispatch(os.Stdout, result, showTrace)
				fmt.Println()
			}
			return err
		},
	}

	addSolverFlags(cmd)
	cmd.Flags().Bool("trace", false, "Print the full search trace")
	cmd.Flags().String("date", "", "Dispatch date to record (YYYY-MM-DD)")

	return cmd
}
