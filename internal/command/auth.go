package command

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwizard/mwiz-cli/internal/api"
	"github.com/mwizard/mwiz-cli/internal/output"
	"github.com/mwizard/mwiz-cli/internal/util"
)

// NewAuthCommand creates the auth command group
func NewAuthCommand(groupId string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the backend API token",
		Long: `Store, inspect and remove the bearer token used for backend calls.

The token lives in the OS keyring; MWIZ_API_TOKEN overrides it when set.
Local backends usually need no token at all.`,
		GroupID: groupId,
	}

	cmd.AddCommand(
		newAuthLoginCommand(),
		newAuthLogoutCommand(),
		newAuthStatusCommand(),
	)

	return cmd
}

func newAuthLoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API token in the OS keyring",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := output.NewPrinter(output.FormatTable, false)

			token, _ := cmd.Flags().GetString("token")
			if token == "" {
				fmt.Fprint(os.Stderr, "API token: ")
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}
				token = strings.TrimSpace(line)
			}
			if token == "" {
				return fmt.Errorf("empty token")
			}

			if err := api.StoreToken(token); err != nil {
				return fmt.Errorf("failed to store token: %w", err)
			}
			printer.Success("token stored")
			return nil
		},
	}

	cmd.Flags().String("token", "", "Token value (prompted for when omitted)")
	return cmd
}

func newAuthLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the API token from the OS keyring",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := output.NewPrinter(output.FormatTable, false)

			if err := api.DeleteToken(); err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}
			printer.Success("token removed")
			return nil
		},
	}
}

func newAuthStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a token is configured",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := output.NewPrinter(output.FormatTable, false)

			token := api.ResolveToken()
			if token == "" {
				printer.Info("no token configured")
				return nil
			}
			printer.Info(fmt.Sprintf("token configured: %s", util.MaskToken(token)))
			return nil
		},
	}
}
