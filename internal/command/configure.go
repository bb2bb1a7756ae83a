package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwizard/mwiz-cli/internal/output"
)

// NewConfigCommand creates the configuration command group
func NewConfigCommand(groupId string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change the client configuration",
		Long: `Inspect and edit the configuration under the base directory.

Settings can also be supplied via MWIZ_* environment variables or a .env
file; environment values override the config file for the running command
but are not written back to it.`,
		GroupID: groupId,
	}

	cmd.AddCommand(
		newConfigShowCommand(),
		newConfigSetCommand(),
	)

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := RequireDeps(cmd.Context())
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			printer := output.NewPrinter(output.Format(format), false)
			return printer.PrintConfig(deps.Config)
		},
	}

	cmd.Flags().String("format", "table", "Output format (table, json, yaml)")
	return cmd
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set a configuration value and save it",
		Long: `Set one configuration value and write the config file.

Examples:
  mwiz config set project_id my-project
  mwiz config set dataset_id analytics
  mwiz config set use_profile true
  mwiz config set description_handling prepend`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := RequireDeps(cmd.Context())
			if err != nil {
				return err
			}
			printer := output.NewPrinter(output.FormatTable, false)

			if err := deps.Config.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := deps.Config.Save(); err != nil {
				return err
			}
			printer.Success(fmt.Sprintf("%s = %s", args[0], args[1]))
			return nil
		},
	}
}
