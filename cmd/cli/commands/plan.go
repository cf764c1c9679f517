package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/site-dispatch/pkg/core/model"
	"github.com/jakechorley/site-dispatch/pkg/core/services"
)

// PlanCmd creates the plan command
func PlanCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <problem.yaml> <start> <days>",
		Short: "Dispatch the crew for each day of a period, applying overrides",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, err := model.LoadProblemFromPath(args[0])
			if err != nil {
				return err
			}

			start, err := time.Parse("2006-01-02", args[1])
			if err != nil {
				return fmt.Errorf("start must be a date in YYYY-MM-DD format: %w", err)
			}

			days, err := strconv.Atoi(args[2])
			if err != nil || days < 1 {
				return fmt.Errorf("days must be a positive integer, got: %s", args[2])
			}

			showTrace, _ := cmd.Flags().GetBool("trace")
			opts := dispatchOptions(cmd, app.Cfg.Solver)

			plan, err := services.PlanDispatch(app.Ctx, app.Database, app.Logger, problem, start, days, opts)
			for _, day := range plan {
				fmt.Printf("\n%s", day.Date)
				if parsed, perr := time.Parse("2006-01-02", day.Date); perr == nil {
					fmt.Printf(" (%s)", parsed.Weekday())
				}
				if len(day.Absent) > 0 {
					fmt.Printf(" %sabsent: %s%s", colorDim, strings.Join(day.Absent, ", "), colorReset)
				}
				fmt.Println()
				renderDispatch(os.Stdout, day.Result, showTrace)
			}
			fmt.Println()

			return err
		},
	}

	addSolverFlags(cmd)
	cmd.Flags().Bool("trace", false, "Print the full search trace for each day")

	return cmd
}
