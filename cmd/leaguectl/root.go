package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/qw-league/internal/app"
	"github.com/riskibarqy/qw-league/internal/config"
	"github.com/riskibarqy/qw-league/internal/platform/logging"
)

// cli holds state shared by every subcommand. Config and logger are loaded
// once before any command runs.
type cli struct {
	cfg      config.Config
	logger   *logging.Logger
	logLevel string
	storage  string
	asJSON   bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "leaguectl",
		Short:         "QuakeWorld league maintenance tool",
		Long:          "Stage hub results, run the import and aggregation pipeline, query derived tables and move league data in and out of workbooks.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return c.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")
	flags.StringVar(&c.storage, "storage", "", "override STORAGE_DRIVER (postgres, memory)")
	flags.BoolVar(&c.asJSON, "json", false, "print JSON instead of tables")

	root.AddCommand(
		c.enqueueCmd(),
		c.processCmd(),
		c.aggregateCmd(),
		c.queryCmd(),
		c.endpointCmd("standings", "Show team standings"),
		c.endpointCmd("players", "Show player stats"),
		c.endpointCmd("games", "Show the per-round schedule with played results"),
		c.exportCmd(),
		c.loadSheetCmd(),
		c.migrateCmd(),
	)
	return root
}

func (c *cli) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.storage != "" {
		cfg.StorageDriver = c.storage
		if cfg.StorageDriver != config.StoragePostgres && cfg.StorageDriver != config.StorageMemory {
			return fmt.Errorf("invalid --storage %q", c.storage)
		}
	}
	if c.logLevel != "" {
		cfg.LogLevel = logging.ParseLevel(c.logLevel)
	}
	// Metrics have no scrape endpoint in a one-shot process.
	cfg.MetricsEnabled = false

	c.cfg = cfg
	c.logger = logging.NewConsole(cfg.LogLevel).Named("leaguectl")
	logging.SetDefault(c.logger)
	return nil
}

// withApp builds the league services for the duration of fn.
func (c *cli) withApp(ctx context.Context, fn func(*app.App) error) error {
	a, err := app.New(ctx, c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(a)
}
