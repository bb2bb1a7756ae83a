package command

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwizard/mwiz-cli/internal/output"
)

// NewTasksCommand creates the task log command group
func NewTasksCommand(groupId string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Show dispatched generation tasks",
		Long: `Inspect the task log.

'mwiz tasks' shows the current process's in-memory log; 'mwiz tasks
history' reads the records persisted across runs.`,
		GroupID: groupId,
		Args:    cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := RequireDeps(cmd.Context())
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			printer := output.NewPrinter(output.Format(format), false)
			return printer.PrintTasks(deps.Tracker.List())
		},
	}

	cmd.Flags().String("format", "table", "Output format (table, json, yaml)")

	cmd.AddCommand(
		newTasksHistoryCommand(),
		newTasksPruneCommand(),
	)

	return cmd
}

func newTasksHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show persisted task history",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := RequireDeps(cmd.Context())
			if err != nil {
				return err
			}
			if deps.History == nil {
				return fmt.Errorf("task history database unavailable")
			}
			limit, _ := cmd.Flags().GetInt("limit")
			format, _ := cmd.Flags().GetString("format")
			printer := output.NewPrinter(output.Format(format), false)

			records, err := deps.History.Recent(limit)
			if err != nil {
				return err
			}
			return printer.PrintHistory(records)
		},
	}

	cmd.Flags().Int("limit", 50, "Maximum number of records to show")
	cmd.Flags().String("format", "table", "Output format (table, json, yaml)")
	return cmd
}

func newTasksPruneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old task history records",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := RequireDeps(cmd.Context())
			if err != nil {
				return err
			}
			if deps.History == nil {
				return fmt.Errorf("task history database unavailable")
			}
			days, _ := cmd.Flags().GetInt("older-than")
			printer := output.NewPrinter(output.FormatTable, false)

			cutoff := time.Now().AddDate(0, 0, -days)
			if err := deps.History.Prune(cutoff); err != nil {
				return err
			}
			printer.Success(fmt.Sprintf("pruned records older than %d days", days))
			return nil
		},
	}

	cmd.Flags().Int("older-than", 30, "Delete records older than this many days")
	return cmd
}
