package command

import (
	"github.com/spf13/cobra"

	"github.com/mwizard/mwiz-cli/internal/dashboard"
	"github.com/mwizard/mwiz-cli/internal/output"
)

// NewDashboardCommand creates the dashboard command group
func NewDashboardCommand(groupId string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Browse the governance dashboards",
		Long: `Print the data contracts, compliance and publishing dashboards.

The dashboards render placeholder data; they take no backend calls and
edits are not persisted.`,
		GroupID: groupId,
	}

	cmd.AddCommand(
		newDashboardContractsCommand(),
		newDashboardComplianceCommand(),
		newDashboardPublishingCommand(),
	)

	return cmd
}

func newDashboardContractsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contracts",
		Short: "Show the data contract SLA dashboard",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, _ := cmd.Flags().GetString("status")
			format, _ := cmd.Flags().GetString("format")
			printer := output.NewPrinter(output.Format(format), false)
			return printer.PrintContracts(dashboard.ContractsByStatus(status))
		},
	}

	cmd.Flags().String("status", "", "Filter by status (healthy, at_risk, breached)")
	cmd.Flags().String("format", "table", "Output format (table, json, yaml)")
	return cmd
}

func newDashboardComplianceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compliance",
		Short: "Show retention and access policies",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("kind")
			format, _ := cmd.Flags().GetString("format")
			printer := output.NewPrinter(output.Format(format), false)
			return printer.PrintPolicies(dashboard.PoliciesByKind(kind))
		},
	}

	cmd.Flags().String("kind", "", "Filter by kind (retention, access)")
	cmd.Flags().String("format", "table", "Output format (table, json, yaml)")
	return cmd
}

func newDashboardPublishingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publishing",
		Short: "Show publishing destinations",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			printer := output.NewPrinter(output.Format(format), false)
			return printer.PrintDestinations(dashboard.Destinations())
		},
	}

	cmd.Flags().String("format", "table", "Output format (table, json, yaml)")
	return cmd
}
