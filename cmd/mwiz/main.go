// mwiz is a console client for a metadata generation backend: it dispatches
// description generation, drives the draft review workflow and browses the
// governance dashboards.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwizard/mwiz-cli/internal/api"
	"github.com/mwizard/mwiz-cli/internal/command"
	"github.com/mwizard/mwiz-cli/internal/config"
	"github.com/mwizard/mwiz-cli/internal/generate"
	"github.com/mwizard/mwiz-cli/internal/history"
	"github.com/mwizard/mwiz-cli/internal/logger"
	"github.com/mwizard/mwiz-cli/internal/review"
	"github.com/mwizard/mwiz-cli/internal/tasks"
)

var (
	version     = "dev"
	cfgBaseDir  string
	globalFlags = struct {
		debug bool
	}{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mwiz",
		Short: "mwiz - metadata generation and review console",
		Long: `mwiz is a console client for an AI metadata generation backend.
It dispatches table and column description generation, drives the draft
review workflow, and browses the governance dashboards.`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if globalFlags.debug {
				logger.SetGlobalLevel(logger.DEBUG)
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			// Override base directory if specified via flag
			if cfgBaseDir != "" {
				cfg.BaseDir = cfgBaseDir
				if err := cfg.Validate(); err != nil {
					return fmt.Errorf("invalid configuration: %w", err)
				}
			}

			client := api.NewClient(cfg.APIURL, api.ResolveToken())

			// Task history is best-effort: a broken local database should
			// not block dispatching.
			var sink tasks.Sink
			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				logger.Warn("task history unavailable: %v", err)
				store = nil
			} else {
				sink = store
			}

			tracker := tasks.NewTracker(sink)
			deps := &command.Deps{
				Config:     cfg,
				Client:     client,
				Tracker:    tracker,
				History:    store,
				Dispatcher: generate.NewDispatcher(client, cfg, tracker),
				Session:    review.NewSession(client, cfg),
			}

			cmd.SetContext(command.WithDeps(cmd.Context(), deps))
			return nil
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&cfgBaseDir, "dir", "",
		"Base directory for mwiz state (default: $MWIZ_HOME or ~/.mwiz)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.debug, "debug", false, "Enable debug output")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "global",
		Title: "Global Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "metadata",
		Title: "Metadata Generation:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "governance",
		Title: "Review & Governance:",
	})

	rootCmd.AddCommand(
		// Global Commands - configuration and the interactive interface
		command.NewConfigCommand("global"),
		command.NewAuthCommand("global"),
		command.NewUICommand("global"),
		command.NewVersionCommand("global", version),

		// Metadata Generation - backend dispatches
		command.NewGenerateCommand("metadata"),
		command.NewRegenerateCommand("metadata"),
		command.NewTasksCommand("metadata"),

		// Review & Governance
		command.NewReviewCommand("governance"),
		command.NewDashboardCommand("governance"),
	)

	rootCmd.SetVersionTemplate("mwiz version {{.Version}}\n")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
