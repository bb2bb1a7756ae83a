// Package command contains CLI command implementations.
package command

import (
	"github.com/spf13/cobra"

	"github.com/mwizard/mwiz-cli/internal/api"
	"github.com/mwizard/mwiz-cli/internal/output"
)

// NewGenerateCommand creates the generation command group
func NewGenerateCommand(groupId string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate draft descriptions for tables and columns",
		Long: `Dispatch description generation against the backend.

The scope is taken from the configuration: table-level commands need
project, dataset and table ids; dataset-level commands need project and
dataset ids. Each dispatch is tracked as a task (see 'mwiz tasks').`,
		GroupID: groupId,
	}

	cmd.AddCommand(
		newGenerateRunCommand("table", "Generate a description for the configured table",
			func(deps *Deps) (*api.MessageResponse, error) {
				return deps.Dispatcher.GenerateTableDescription()
			}),
		newGenerateRunCommand("columns", "Generate descriptions for the configured table's columns",
			func(deps *Deps) (*api.MessageResponse, error) {
				return deps.Dispatcher.GenerateColumnsDescriptions()
			}),
		newGenerateRunCommand("dataset", "Generate descriptions for every table in the dataset",
			func(deps *Deps) (*api.MessageResponse, error) {
				return deps.Dispatcher.GenerateDatasetTablesDescriptions()
			}),
		newGenerateRunCommand("dataset-columns", "Generate descriptions for every table and column in the dataset",
			func(deps *Deps) (*api.MessageResponse, error) {
				return deps.Dispatcher.GenerateDatasetTablesColumnsDescriptions()
			}),
	)

	return cmd
}

func newGenerateRunCommand(use, short string, dispatch func(*Deps) (*api.MessageResponse, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := RequireDeps(cmd.Context())
			if err != nil {
				return err
			}
			quiet, _ := cmd.Flags().GetBool("quiet")
			printer := output.NewPrinter(output.FormatTable, quiet)

			msg, err := dispatch(deps)
			if err != nil {
				return err
			}
			printer.Success(msg.Message)
			return nil
		},
	}

	cmd.Flags().Bool("quiet", false, "Suppress non-error output")
	return cmd
}
