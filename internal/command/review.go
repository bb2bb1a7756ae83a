package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwizard/mwiz-cli/internal/api"
	"github.com/mwizard/mwiz-cli/internal/output"
	"github.com/mwizard/mwiz-cli/internal/util"
)

// NewReviewCommand creates the review command group
func NewReviewCommand(groupId string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review, accept and edit generated descriptions",
		Long: `Work through generated draft descriptions table by table.

Most subcommands take a table FQN (project.dataset.table) and an optional
--column flag to address one of its columns. For an interactive review
workflow use 'mwiz ui' instead.`,
		GroupID: groupId,
	}

	cmd.AddCommand(
		newReviewListCommand(),
		newReviewShowCommand(),
		newReviewAcceptCommand(),
		newReviewEditCommand(),
		newReviewCommentCommand(),
		newReviewMarkCommand(),
		newReviewRejectCommand(),
	)

	return cmd
}

func newReviewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items awaiting review",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := RequireDeps(cmd.Context())
			if err != nil {
				return err
			}
			if err := deps.Config.RequireProject(); err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			printer := output.NewPrinter(output.Format(format), false)

			list, err := deps.Client.GetReviewItems(
				deps.Config.ClientSettings(), deps.Config.DatasetSettings())
			if err != nil {
				return err
			}
			return printer.PrintReviewList(list.Items)
		},
	}

	cmd.Flags().String("format", "table", "Output format (table, json, yaml)")
	return cmd
}

func newReviewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [table-fqn]",
		Short: "Show a table's draft, or one column's with --column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := RequireDeps(cmd.Context())
			if err != nil {
				return err
			}
			column, _ := cmd.Flags().GetString("column")
			format, _ := cmd.Flags().GetString("format")
			printer := output.NewPrinter(output.Format(format), false)

			tableSettings, err := tableSettingsForFQN(deps, args[0])
			if err != nil {
				return err
			}

			item, err := deps.Client.GetReviewItemDetails(
				deps.Config.ClientSettings(), tableSettings, column)
			if err != nil {
				return err
			}
			return printer.PrintReviewItem(item)
		},
	}

	cmd.Flags().String("column", "", "Column name within the table")
	cmd.Flags().String("format", "table", "Output format (table, json, yaml)")
	return cmd
}

func newReviewAcceptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accept [table-fqn]",
		Short: "Accept a draft description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := RequireDeps(cmd.Context())
			if err != nil {
				return err
			}
			column, _ := cmd.Flags().GetString("column")
			quiet, _ := cmd.Flags().GetBool("quiet")
			printer := output.NewPrinter(output.FormatTable, quiet)

			tableSettings, err := tableSettingsForFQN(deps, args[0])
			if err != nil {
				return err
			}

			var msg *api.MessageResponse
			if column == "" {
				msg, err = deps.Client.AcceptTableDraftDescription(
					deps.Config.ClientOptions(), deps.Config.ClientSettings(),
					tableSettings, deps.Config.DatasetSettings())
			} else {
				msg, err = deps.Client.AcceptColumnDraftDescription(
					deps.Config.ClientOptions(), deps.Config.ClientSettings(),
					tableSettings, deps.Config.DatasetSettings(), column)
			}
			if err != nil {
				return err
			}
			printer.Success(msg.Message)
			return nil
		},
	}

	cmd.Flags().String("column", "", "Column name within the table")
	cmd.Flags().Bool("quiet", false, "Suppress non-error output")
	return cmd
}

func newReviewEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [table-fqn]",
		Short: "Replace a draft description's text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := RequireDeps(cmd.Context())
			if err != nil {
				return err
			}
			column, _ := cmd.Flags().GetString("column")
			description, _ := cmd.Flags().GetString("description")
			isHTML, _ := cmd.Flags().GetBool("html")
			quiet, _ := cmd.Flags().GetBool("quiet")
			printer := output.NewPrinter(output.FormatTable, quiet)

			if description == "" {
				return fmt.Errorf("--description is required")
			}

			tableSettings, err := tableSettingsForFQN(deps, args[0])
			if err != nil {
				return err
			}

			if column == "" {
				_, err = deps.Client.UpdateTableDraftDescription(
					deps.Config.ClientSettings(), tableSettings, description, isHTML)
			} else {
				_, err = deps.Client.UpdateColumnDraftDescription(
					deps.Config.ClientSettings(), tableSettings, column, description, isHTML)
			}
			if err != nil {
				return err
			}
			printer.Success("draft description updated")
			return nil
		},
	}

	cmd.Flags().String("column", "", "Column name within the table")
	cmd.Flags().String("description", "", "New draft description text")
	cmd.Flags().Bool("html", false, "Store the description as HTML")
	cmd.Flags().Bool("quiet", false, "Suppress non-error output")
	return cmd
}

func newReviewCommentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment [table-fqn]",
		Short: "Attach a reviewer comment to a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := RequireDeps(cmd.Context())
			if err != nil {
				return err
			}
			column, _ := cmd.Flags().GetString("column")
			message, _ := cmd.Flags().GetString("message")
			quiet, _ := cmd.Flags().GetBool("quiet")
			printer := output.NewPrinter(output.FormatTable, quiet)

			if message == "" {
				return fmt.Errorf("--message is required")
			}

			tableSettings, err := tableSettingsForFQN(deps, args[0])
			if err != nil {
				return err
			}

			stored, err := deps.Client.AddComment(
				deps.Config.ClientSettings(), tableSettings, message, column)
			if err != nil {
				return err
			}
			if stored == "" {
				stored = message
			}
			printer.Success(fmt.Sprintf("comment added: %s", stored))
			return nil
		},
	}

	cmd.Flags().String("column", "", "Column name within the table")
	cmd.Flags().String("message", "", "Comment text")
	cmd.Flags().Bool("quiet", false, "Suppress non-error output")
	return cmd
}

func newReviewMarkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mark [table-fqn]",
		Short: "Mark a table or column for regeneration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := RequireDeps(cmd.Context())
			if err != nil {
				return err
			}
			column, _ := cmd.Flags().GetString("column")
			quiet, _ := cmd.Flags().GetBool("quiet")
			printer := output.NewPrinter(output.FormatTable, quiet)

			if _, _, _, err := util.SplitTableFQN(args[0]); err != nil {
				return err
			}

			msg, err := deps.Client.MarkForRegeneration(
				deps.Config.ClientSettings(), args[0], column)
			if err != nil {
				return err
			}
			printer.Success(msg.Message)
			return nil
		},
	}

	cmd.Flags().String("column", "", "Column name within the table")
	cmd.Flags().Bool("quiet", false, "Suppress non-error output")
	return cmd
}

func newReviewRejectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reject [table-fqn]",
		Short: "Reject a draft description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := RequireDeps(cmd.Context())
			if err != nil {
				return err
			}
			column, _ := cmd.Flags().GetString("column")
			quiet, _ := cmd.Flags().GetBool("quiet")
			printer := output.NewPrinter(output.FormatTable, quiet)

			if _, _, _, err := util.SplitTableFQN(args[0]); err != nil {
				return err
			}

			id := util.TableItemID(args[0])
			if column != "" {
				id = util.ColumnItemID(args[0], column)
			}

			if err := deps.Client.RejectReviewItem(deps.Config.ClientSettings(), id); err != nil {
				return err
			}
			printer.Success("draft rejected")
			return nil
		},
	}

	cmd.Flags().String("column", "", "Column name within the table")
	cmd.Flags().Bool("quiet", false, "Suppress non-error output")
	return cmd
}

// tableSettingsForFQN resolves a project.dataset.table argument.
func tableSettingsForFQN(deps *Deps, fqn string) (api.TableSettings, error) {
	projectID, datasetID, tableID, err := util.SplitTableFQN(fqn)
	if err != nil {
		return api.TableSettings{}, err
	}
	return deps.Config.TableSettingsFor(projectID, datasetID, tableID), nil
}
