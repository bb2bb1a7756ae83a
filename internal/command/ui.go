// Package command provides UI command functionality
package command

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mwizard/mwiz-cli/internal/logger"
	"github.com/mwizard/mwiz-cli/internal/tui"
)

// NewUICommand creates the UI command
func NewUICommand(groupId string) *cobra.Command {
	return &cobra.Command{
		Use:     "ui",
		Short:   "Launch the interactive terminal interface",
		Long:    "Launch the mwiz terminal user interface for generation, review and the governance dashboards.",
		RunE:    runUI,
		GroupID: groupId,
	}
}

func runUI(cmd *cobra.Command, args []string) error {
	deps, err := RequireDeps(cmd.Context())
	if err != nil {
		return err
	}

	// The TUI owns the terminal; send log lines to a file for the duration.
	log := logger.Get()
	if err := log.UseFile(deps.Config.BaseDir); err == nil {
		defer log.Close()
	}

	model := tui.NewModel(deps.Config, deps.Client, deps.Dispatcher, deps.Session)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
