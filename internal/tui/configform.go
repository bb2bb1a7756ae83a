// Package tui provides the configuration form
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwizard/mwiz-cli/internal/config"
)

type configRowKind int

const (
	rowText configRowKind = iota
	rowBool
	rowChoice
)

// configRow is one editable line of the form.
type configRow struct {
	label   string
	kind    configRowKind
	input   textinput.Model
	value   bool
	choice  string
	choices []string
	apply   func(cfg *config.Config, r *configRow)
}

// ConfigFormModel represents the configuration form state
type ConfigFormModel struct {
	cfg     *config.Config
	rows    []configRow
	cursor  int
	editing bool
	status  string
}

func newTextRow(label, value string, apply func(cfg *config.Config, r *configRow)) configRow {
	input := textinput.New()
	input.SetValue(value)
	input.CharLimit = 200
	input.Width = 50
	return configRow{label: label, kind: rowText, input: input, apply: apply}
}

func newBoolRow(label string, value bool, apply func(cfg *config.Config, r *configRow)) configRow {
	return configRow{label: label, kind: rowBool, value: value, apply: apply}
}

// NewConfigFormModel creates a configuration form pre-filled from cfg
func NewConfigFormModel(cfg *config.Config) *ConfigFormModel {
	rows := []configRow{
		newTextRow("API URL", cfg.APIURL, func(c *config.Config, r *configRow) { c.APIURL = r.input.Value() }),
		newTextRow("Project ID", cfg.ProjectID, func(c *config.Config, r *configRow) { c.ProjectID = r.input.Value() }),
		newTextRow("LLM Location", cfg.LLMLocation, func(c *config.Config, r *configRow) { c.LLMLocation = r.input.Value() }),
		newTextRow("Dataplex Location", cfg.DataplexLocation, func(c *config.Config, r *configRow) { c.DataplexLocation = r.input.Value() }),
		newTextRow("Dataset ID", cfg.DatasetID, func(c *config.Config, r *configRow) { c.DatasetID = r.input.Value() }),
		newTextRow("Table ID", cfg.TableID, func(c *config.Config, r *configRow) { c.TableID = r.input.Value() }),
		newTextRow("Documentation URI", cfg.DocumentationURI, func(c *config.Config, r *configRow) { c.DocumentationURI = r.input.Value() }),
		newBoolRow("Use lineage tables", cfg.Options.UseLineageTables, func(c *config.Config, r *configRow) { c.Options.UseLineageTables = r.value }),
		newBoolRow("Use lineage processes", cfg.Options.UseLineageProcesses, func(c *config.Config, r *configRow) { c.Options.UseLineageProcesses = r.value }),
		newBoolRow("Use profile", cfg.Options.UseProfile, func(c *config.Config, r *configRow) { c.Options.UseProfile = r.value }),
		newBoolRow("Use data quality", cfg.Options.UseDataQuality, func(c *config.Config, r *configRow) { c.Options.UseDataQuality = r.value }),
		newBoolRow("Use external documents", cfg.Options.UseExtDocuments, func(c *config.Config, r *configRow) { c.Options.UseExtDocuments = r.value }),
		newBoolRow("Persist to catalog", cfg.Options.PersistToDataplexCatalog, func(c *config.Config, r *configRow) { c.Options.PersistToDataplexCatalog = r.value }),
		newBoolRow("Stage for review", cfg.Options.StageForReview, func(c *config.Config, r *configRow) { c.Options.StageForReview = r.value }),
		newBoolRow("Top values in description", cfg.Options.TopValuesInDescription, func(c *config.Config, r *configRow) { c.Options.TopValuesInDescription = r.value }),
		{
			label:   "Description handling",
			kind:    rowChoice,
			choice:  cfg.Options.DescriptionHandling,
			choices: []string{"append", "prepend", "replace"},
			apply:   func(c *config.Config, r *configRow) { c.Options.DescriptionHandling = r.choice },
		},
		newTextRow("Description prefix", cfg.Options.DescriptionPrefix, func(c *config.Config, r *configRow) { c.Options.DescriptionPrefix = r.input.Value() }),
	}

	return &ConfigFormModel{cfg: cfg, rows: rows}
}

// Editing reports whether a text field currently has focus.
func (m ConfigFormModel) Editing() bool {
	return m.editing
}

// Help returns the footer help line for the current mode.
func (m ConfigFormModel) Help() string {
	if m.editing {
		return "enter: confirm • esc: cancel edit"
	}
	return "↑/↓: navigate • enter: edit/toggle • s: save • esc: back"
}

// Init returns the initial command
func (m ConfigFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the configuration form
func (m ConfigFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.editing {
		switch keyMsg.String() {
		case "enter", "esc":
			m.rows[m.cursor].input.Blur()
			m.editing = false
			if keyMsg.String() == "enter" {
				m.status = ""
			}
			return m, nil
		default:
			var cmd tea.Cmd
			m.rows[m.cursor].input, cmd = m.rows[m.cursor].input.Update(msg)
			return m, cmd
		}
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "enter", " ":
		row := &m.rows[m.cursor]
		switch row.kind {
		case rowText:
			m.editing = true
			row.input.Focus()
			return m, textinput.Blink
		case rowBool:
			row.value = !row.value
			m.status = ""
		case rowChoice:
			row.choice = nextChoice(row.choices, row.choice)
			m.status = ""
		}

	case "s":
		for i := range m.rows {
			m.rows[i].apply(m.cfg, &m.rows[i])
		}
		if err := m.cfg.Save(); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
		} else {
			m.status = "configuration saved"
		}
	}

	return m, nil
}

func nextChoice(choices []string, current string) string {
	for i, c := range choices {
		if c == current {
			return choices[(i+1)%len(choices)]
		}
	}
	return choices[0]
}

// View renders the configuration form
func (m ConfigFormModel) View() string {
	s := "\n"

	for i, row := range m.rows {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}

		var value string
		switch row.kind {
		case rowText:
			if m.editing && m.cursor == i {
				value = row.input.View()
			} else {
				value = row.input.Value()
				if value == "" {
					value = "(unset)"
				}
			}
		case rowBool:
			value = "off"
			if row.value {
				value = "on"
			}
		case rowChoice:
			value = row.choice
		}

		line := fmt.Sprintf("%s %-28s %s", cursor, row.label, value)
		if m.cursor == i {
			s += fieldFocusedStyle.Render(line)
		} else {
			s += fieldBlurredStyle.Render(line)
		}
		s += "\n"
	}

	if m.status != "" {
		s += "\n" + statusStyle.Render(m.status)
	}
	return s
}

// Styles for the configuration form
var (
	fieldFocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	fieldBlurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)
