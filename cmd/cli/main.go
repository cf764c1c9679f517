package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/site-dispatch/cmd/cli/commands"
	"github.com/jakechorley/site-dispatch/internal/config"
	"github.com/jakechorley/site-dispatch/pkg/db"
	"github.com/jakechorley/site-dispatch/pkg/postgres"
	"github.com/jakechorley/site-dispatch/pkg/sqlite"
	"github.com/jakechorley/site-dispatch/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "site-dispatch",
		Short:        "Site Dispatch CLI - Assign a crew to work areas",
		Long:         `A CLI tool that assigns workers to construction-site areas under headcount, pairing, eligibility and supervisor constraints, and records every run.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app == nil {
				return
			}
			if app.Database != nil {
				app.Database.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs on the console")
	rootCmd.MarkPersistentFlagRequired("env")

	app = &commands.AppContext{Ctx: context.Background()}

	rootCmd.AddCommand(commands.SolveCmd(app))
	rootCmd.AddCommand(commands.PlanCmd(app))
	rootCmd.AddCommand(commands.RunsCmd(app))
	rootCmd.AddCommand(commands.ShowCmd(app))
	rootCmd.AddCommand(commands.PublishCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and database
func initApp() error {
	var err error
	app.Env = env

	app.Logger, err = logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Starting application", zap.String("environment", env))

	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Database, err = openDatabase(app.Ctx, app.Cfg, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	return nil
}

// openDatabase uses PostgreSQL when a database URL is configured and SQLite otherwise
func openDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (db.Database, error) {
	if cfg.DatabaseURL != "" {
		logger.Debug("Connecting to PostgreSQL")
		pg, err := postgres.NewDB(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}

	logger.Debug("Opening SQLite database", zap.String("path", cfg.SQLitePath))
	lite, err := sqlite.NewDB(ctx, cfg.SQLitePath, logger)
	if err != nil {
		return nil, err
	}
	return lite, nil
}
