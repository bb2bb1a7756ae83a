package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwizard/mwiz-cli/internal/output"
)

// NewRegenerateCommand creates the regeneration command group
func NewRegenerateCommand(groupId string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regenerate",
		Short: "Re-run generation for marked tables and columns",
		Long: `Re-run description generation for objects previously marked for
regeneration, or for an explicit selection of object name patterns.`,
		GroupID: groupId,
	}

	cmd.AddCommand(
		newRegenerateAllCommand(),
		newRegenerateSelectedCommand(),
		newRegenerateCountsCommand(),
	)

	return cmd
}

func newRegenerateAllCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Regenerate every marked object in the configured dataset",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := RequireDeps(cmd.Context())
			if err != nil {
				return err
			}
			quiet, _ := cmd.Flags().GetBool("quiet")
			printer := output.NewPrinter(output.FormatTable, quiet)

			msg, err := deps.Dispatcher.RegenerateAll()
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

func newRegenerateSelectedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selected [object-pattern...]",
		Short: "Regenerate objects matching the given name patterns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := RequireDeps(cmd.Context())
			if err != nil {
				return err
			}
			quiet, _ := cmd.Flags().GetBool("quiet")
			printer := output.NewPrinter(output.FormatTable, quiet)

			result, err := deps.Dispatcher.RegenerateSelected(args)
			if err != nil {
				return err
			}

			printer.Success(fmt.Sprintf("regenerated %d objects", len(result.RegeneratedObjects)))
			for _, obj := range result.RegeneratedObjects {
				printer.Info(fmt.Sprintf("%s (%s)", obj.Object, obj.Status))
			}
			return nil
		},
	}

	cmd.Flags().Bool("quiet", false, "Suppress non-error output")
	return cmd
}

func newRegenerateCountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counts",
		Short: "Show how many objects are marked for regeneration",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := RequireDeps(cmd.Context())
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			printer := output.NewPrinter(output.Format(format), false)

			counts, err := deps.Dispatcher.GetRegenerationCounts()
			if err != nil {
				return err
			}
			return printer.PrintCounts(counts)
		},
	}

	cmd.Flags().String("format", "table", "Output format (table, json, yaml)")
	return cmd
}
