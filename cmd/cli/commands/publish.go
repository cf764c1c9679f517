package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/site-dispatch/pkg/core/services"
)

// PublishCmd creates the publish command
func PublishCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <run-id>",
		Short: "Publish a feasible run to the configured Google Sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.SheetsClient()
			if err != nil {
				return err
			}

			published, err := services.PublishRun(app.Ctx, app.Database, client, app.Cfg, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n%s✓ Published run %s to tab %q%s\n\n", colorGreen, published.RunID, published.TabTitle, colorReset)

			return nil
		},
	}
}
