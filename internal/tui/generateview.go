// Package tui provides the generation dispatch view
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwizard/mwiz-cli/internal/api"
	"github.com/mwizard/mwiz-cli/internal/generate"
	"github.com/mwizard/mwiz-cli/internal/tasks"
)

// generateAction is one dispatchable entry of the action list.
type generateAction struct {
	label    string
	dispatch func(d *generate.Dispatcher) (*api.MessageResponse, error)
}

// GenerateModel represents the generation view state
type GenerateModel struct {
	dispatcher *generate.Dispatcher
	actions    []generateAction
	cursor     int

	busy      bool
	spinner   spinner.Model
	lastMsg   string
	lastFail  string
	showTasks bool
	counts    *api.RegenerationCounts
}

// DispatchDoneMsg signals a completed dispatch
type DispatchDoneMsg string

// DispatchFailedMsg signals a failed dispatch
type DispatchFailedMsg string

// CountsLoadedMsg carries the regeneration backlog counts
type CountsLoadedMsg api.RegenerationCounts

// NewGenerateModel creates a new generation view
func NewGenerateModel(dispatcher *generate.Dispatcher) *GenerateModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &GenerateModel{
		dispatcher: dispatcher,
		spinner:    sp,
		actions: []generateAction{
			{"Generate table description", func(d *generate.Dispatcher) (*api.MessageResponse, error) {
				return d.GenerateTableDescription()
			}},
			{"Generate column descriptions", func(d *generate.Dispatcher) (*api.MessageResponse, error) {
				return d.GenerateColumnsDescriptions()
			}},
			{"Generate descriptions for all tables in dataset", func(d *generate.Dispatcher) (*api.MessageResponse, error) {
				return d.GenerateDatasetTablesDescriptions()
			}},
			{"Generate descriptions for all tables and columns in dataset", func(d *generate.Dispatcher) (*api.MessageResponse, error) {
				return d.GenerateDatasetTablesColumnsDescriptions()
			}},
			{"Regenerate all marked objects", func(d *generate.Dispatcher) (*api.MessageResponse, error) {
				return d.RegenerateAll()
			}},
		},
	}
}

// Init returns the initial command
func (m GenerateModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the generation view
func (m GenerateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.actions)-1 {
				m.cursor++
			}

		case "enter", " ":
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.lastMsg = ""
			m.lastFail = ""
			action := m.actions[m.cursor]
			return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
				msg, err := action.dispatch(m.dispatcher)
				if err != nil {
					return DispatchFailedMsg(err.Error())
				}
				return DispatchDoneMsg(msg.Message)
			})

		case "t":
			m.showTasks = !m.showTasks

		case "c":
			return m, func() tea.Msg {
				counts, err := m.dispatcher.GetRegenerationCounts()
				if err != nil {
					return DispatchFailedMsg(err.Error())
				}
				return CountsLoadedMsg(*counts)
			}
		}

	case DispatchDoneMsg:
		m.busy = false
		m.lastMsg = string(msg)

	case DispatchFailedMsg:
		m.busy = false
		m.lastFail = string(msg)

	case CountsLoadedMsg:
		counts := api.RegenerationCounts(msg)
		m.counts = &counts

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// View renders the generation view
func (m GenerateModel) View() string {
	s := "\nDispatch an action:\n\n"

	for i, action := range m.actions {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}

		line := cursor + " " + action.label
		if m.cursor == i {
			s += selectedItemStyle.Render(line)
		} else {
			s += normalItemStyle.Render(line)
		}
		s += "\n"
	}

	if m.busy {
		s += "\n" + m.spinner.View() + " dispatching..."
	}
	if m.lastMsg != "" {
		s += "\n" + dispatchOKStyle.Render("✓ "+m.lastMsg)
	}
	if m.lastFail != "" {
		s += "\n" + dispatchFailStyle.Render("✗ "+m.lastFail)
	}
	if m.counts != nil {
		s += fmt.Sprintf("\nMarked for regeneration: %d tables, %d columns (press c to refresh)",
			m.counts.Tables, m.counts.Columns)
	} else {
		s += "\n\nPress c to fetch regeneration counts"
	}

	if m.showTasks {
		s += "\n\n" + m.tasksPopover()
	}
	return s
}

// tasksPopover renders the task tracker overlay, newest first.
func (m GenerateModel) tasksPopover() string {
	list := m.dispatcher.Tracker().List()
	if len(list) == 0 {
		return taskPopoverStyle.Render("No tasks dispatched yet")
	}

	body := "Tasks:\n"
	for _, task := range list {
		line := fmt.Sprintf("%s  %-45s %s",
			task.Timestamp.Format("15:04:05"), task.Action, task.Status)
		if task.Status == tasks.StatusFailed && task.Error != "" {
			line += "  " + task.Error
		}
		body += line + "\n"
	}
	return taskPopoverStyle.Render(body)
}

// Styles for the generation view
var (
	dispatchOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dispatchFailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	taskPopoverStyle  = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("241")).
				Padding(0, 1)
)
