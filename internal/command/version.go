package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command. clientVersion is the
// build-time version of this binary.
func NewVersionCommand(groupId, clientVersion string) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Show client and backend versions",
		GroupID: groupId,
		Args:    cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "mwiz version %s\n", clientVersion)

			deps, err := RequireDeps(cmd.Context())
			if err != nil {
				return err
			}
			serverVersion, err := deps.Client.Version()
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "backend unreachable: %v\n", err)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "backend version %s\n", serverVersion)
			return nil
		},
	}
}
