// Package tui provides the review item list
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwizard/mwiz-cli/internal/api"
)

// ReviewListModel represents the review list state
type ReviewListModel struct {
	items  []api.ReviewItem
	cursor int
}

// NewReviewListModel creates a new review list model
func NewReviewListModel() *ReviewListModel {
	return &ReviewListModel{}
}

// SetItems replaces the displayed item list
func (m *ReviewListModel) SetItems(items []api.ReviewItem) {
	m.items = items
	if m.cursor >= len(items) {
		m.cursor = 0
	}
}

// Init returns the initial command for the review list
func (m ReviewListModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the review list
func (m ReviewListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}

		case "enter", " ":
			if len(m.items) > 0 && m.cursor < len(m.items) {
				index := m.cursor
				return m, func() tea.Msg { return EnterReviewMsg(index) }
			}

		case "r":
			return m, func() tea.Msg { return ReloadReviewMsg{} }
		}
	}

	return m, nil
}

// View renders the review list
func (m ReviewListModel) View() string {
	if len(m.items) == 0 {
		return noItemsStyle.Render(
			"\nNo items found for review\n\nPress 'r' to reload\nPress 'esc' to go back",
		)
	}

	s := fmt.Sprintf("\nItems awaiting review (%d):\n\n", len(m.items))

	for i, item := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}

		badge := ""
		switch {
		case item.Accepted():
			badge = acceptedBadgeStyle.Render(" [accepted]")
		case item.MarkedForRegeneration:
			badge = markedBadgeStyle.Render(" [regen]")
		}

		line := fmt.Sprintf("%s %-7s %s", cursor, item.Type, item.Name)
		if m.cursor == i {
			s += selectedItemStyle.Render(line) + badge
		} else {
			s += normalItemStyle.Render(line) + badge
		}
		s += "\n"
	}

	return s
}

// Styles for the review list
var (
	noItemsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	acceptedBadgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	markedBadgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)
