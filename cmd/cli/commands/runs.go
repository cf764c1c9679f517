package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jakechorley/site-dispatch/pkg/core/services"
)

// RunsCmd creates the runs command
func RunsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded dispatch runs, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			runs, err := services.ListRuns(app.Ctx, app.Database, app.Logger, limit)
			if err != nil {
				return err
			}

			fmt.Println()
			renderRuns(os.Stdout, runs)
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 = all)")

	return cmd
}

// ShowCmd creates the show command
func ShowCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a recorded run with its placements and trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := services.GetRun(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Println()
			renderRun(os.Stdout, detail)
			fmt.Println()

			return nil
		},
	}
}
