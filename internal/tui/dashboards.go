// Package tui provides the governance dashboard views
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwizard/mwiz-cli/internal/dashboard"
)

// DashboardModel renders one fixed dataset as a navigable table. The data
// is placeholder content; rows are selectable but not editable.
type DashboardModel struct {
	headers []string
	load    func(filter string) [][]string

	filters   []string // cycled by the filter key; index 0 is "no filter"
	filterIdx int

	rows   [][]string
	cursor int
}

func newDashboardModel(headers []string, filters []string, load func(filter string) [][]string) *DashboardModel {
	m := &DashboardModel{headers: headers, filters: filters, load: load}
	m.rows = load("")
	return m
}

// NewContractsModel creates the data contract SLA dashboard
func NewContractsModel() *DashboardModel {
	return newDashboardModel(
		[]string{"ID", "NAME", "DATASET", "SLA", "FRESHNESS", "STATUS", "VIOLATIONS"},
		[]string{"", dashboard.StatusHealthy, dashboard.StatusAtRisk, dashboard.StatusBreached},
		func(filter string) [][]string {
			var rows [][]string
			for _, c := range dashboard.ContractsByStatus(filter) {
				rows = append(rows, []string{
					c.ID, c.Name, c.Dataset, c.SLA, c.Freshness, c.Status,
					fmt.Sprintf("%d", c.Violations),
				})
			}
			return rows
		},
	)
}

// NewComplianceModel creates the retention and access policy dashboard
func NewComplianceModel() *DashboardModel {
	return newDashboardModel(
		[]string{"ID", "NAME", "KIND", "SCOPE", "RULE", "STATUS"},
		[]string{"", "retention", "access"},
		func(filter string) [][]string {
			var rows [][]string
			for _, p := range dashboard.PoliciesByKind(filter) {
				rows = append(rows, []string{p.ID, p.Name, p.Kind, p.Scope, p.Rule, p.Status})
			}
			return rows
		},
	)
}

// NewPublishingModel creates the publishing destination dashboard
func NewPublishingModel() *DashboardModel {
	return newDashboardModel(
		[]string{"ID", "NAME", "KIND", "TARGET", "SCHEDULE", "LAST PUBLISHED", "STATUS"},
		[]string{""},
		func(filter string) [][]string {
			var rows [][]string
			for _, d := range dashboard.Destinations() {
				rows = append(rows, []string{
					d.ID, d.Name, d.Kind, d.Target, d.Schedule, d.LastPublished, d.Status,
				})
			}
			return rows
		},
	)
}

// Init returns the initial command
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for a dashboard view
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}

		case "f":
			if len(m.filters) > 1 {
				m.filterIdx = (m.filterIdx + 1) % len(m.filters)
				m.rows = m.load(m.filters[m.filterIdx])
				m.cursor = 0
			}
		}
	}

	return m, nil
}

// View renders a dashboard table
func (m DashboardModel) View() string {
	s := "\n"
	if filter := m.filters[m.filterIdx]; filter != "" {
		s += dashFilterStyle.Render("filter: "+filter) + "\n\n"
	}

	widths := m.columnWidths()

	s += dashHeaderStyle.Render(renderRow(m.headers, widths)) + "\n"

	if len(m.rows) == 0 {
		s += noItemsStyle.Render("  No rows match") + "\n"
		return s
	}

	for i, row := range m.rows {
		line := renderRow(row, widths)
		if m.cursor == i {
			s += selectedItemStyle.Render("> " + line)
		} else {
			s += normalItemStyle.Render("  " + line)
		}
		s += "\n"
	}

	return s
}

func (m DashboardModel) columnWidths() []int {
	widths := make([]int, len(m.headers))
	for i, h := range m.headers {
		widths[i] = len(h)
	}
	for _, row := range m.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

func renderRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	return strings.Join(parts, "  ")
}

// Styles for the dashboards
var (
	dashHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250")).PaddingLeft(2)
	dashFilterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)
