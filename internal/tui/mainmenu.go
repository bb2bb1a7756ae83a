// Package tui provides main menu functionality
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MainMenuModel represents the main menu state
type MainMenuModel struct {
	choices []string
	cursor  int
}

// NewMainMenuModel creates a new main menu model
func NewMainMenuModel() *MainMenuModel {
	return &MainMenuModel{
		choices: []string{
			"Configuration",
			"Generate Descriptions",
			"Review Drafts",
			"Data Contracts",
			"Compliance",
			"Publishing",
			"Exit",
		},
	}
}

// Init returns the initial command for the main menu
func (m MainMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the main menu
func (m MainMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}

		case "enter", " ":
			switch m.cursor {
			case 0:
				return m, func() tea.Msg { return NavigateMsg(ConfigView) }
			case 1:
				return m, func() tea.Msg { return NavigateMsg(GenerateView) }
			case 2:
				return m, func() tea.Msg { return NavigateMsg(ReviewListView) }
			case 3:
				return m, func() tea.Msg { return NavigateMsg(ContractsView) }
			case 4:
				return m, func() tea.Msg { return NavigateMsg(ComplianceView) }
			case 5:
				return m, func() tea.Msg { return NavigateMsg(PublishingView) }
			case 6:
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

// View renders the main menu
func (m MainMenuModel) View() string {
	s := "\nChoose an option:\n\n"

	for i, choice := range m.choices {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}

		line := cursor + " " + choice
		if m.cursor == i {
			s += selectedItemStyle.Render(line)
		} else {
			s += normalItemStyle.Render(line)
		}
		s += "\n"
	}

	s += "\n"
	return s
}

// Styles for main menu
var (
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)
