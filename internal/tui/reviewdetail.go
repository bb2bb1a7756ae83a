// Package tui provides the single-item review view
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwizard/mwiz-cli/internal/review"
)

type reviewDetailMode int

const (
	detailViewing reviewDetailMode = iota
	detailEditing
	detailCommenting
)

// ReviewDetailModel represents the review detail view state
type ReviewDetailModel struct {
	session *review.Session
	mode    reviewDetailMode

	editor       textarea.Model
	commentInput textinput.Model
	info         string
}

// NewReviewDetailModel creates a new review detail model
func NewReviewDetailModel(session *review.Session) *ReviewDetailModel {
	editor := textarea.New()
	editor.CharLimit = 0

	commentInput := textinput.New()
	commentInput.Placeholder = "Add a comment"
	commentInput.CharLimit = 500
	commentInput.Width = 60

	return &ReviewDetailModel{
		session:      session,
		editor:       editor,
		commentInput: commentInput,
	}
}

// Editing reports whether a text-entry mode is active.
func (m ReviewDetailModel) Editing() bool {
	return m.mode != detailViewing
}

// SetInfo sets the transient status line.
func (m *ReviewDetailModel) SetInfo(info string) {
	m.info = info
}

// Help returns the footer help line for the current mode.
func (m ReviewDetailModel) Help() string {
	switch m.mode {
	case detailEditing:
		return "ctrl+s: save draft • esc: cancel"
	case detailCommenting:
		return "enter: add comment • esc: cancel"
	}
	return "n/p: item • tab: column • a: accept • e: edit • c: comment • " +
		"m: mark regen • x: reject • r: refresh • esc: back"
}

// Init returns the initial command
func (m ReviewDetailModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the review detail view
func (m ReviewDetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	switch m.mode {
	case detailEditing:
		if isKey {
			switch keyMsg.String() {
			case "esc":
				m.mode = detailViewing
				m.editor.Blur()
				return m, nil
			case "ctrl+s":
				m.mode = detailViewing
				m.editor.Blur()
				description := m.editor.Value()
				return m, m.op("draft saved", func() error {
					return m.session.SaveEdit(description)
				})
			}
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd

	case detailCommenting:
		if isKey {
			switch keyMsg.String() {
			case "esc":
				m.mode = detailViewing
				m.commentInput.Blur()
				return m, nil
			case "enter":
				m.mode = detailViewing
				m.commentInput.Blur()
				comment := m.commentInput.Value()
				if comment == "" {
					return m, nil
				}
				return m, m.op("comment added", func() error {
					return m.session.AddComment(comment)
				})
			}
		}
		var cmd tea.Cmd
		m.commentInput, cmd = m.commentInput.Update(msg)
		return m, cmd
	}

	if !isKey {
		return m, nil
	}

	switch keyMsg.String() {
	case "n", "right":
		return m, m.op("", m.session.NextItem)

	case "p", "left":
		return m, m.op("", m.session.PrevItem)

	case "tab", "l":
		m.session.NextColumn()
		m.info = ""

	case "shift+tab", "h":
		m.session.PrevColumn()
		m.info = ""

	case "a":
		return m, m.op("draft accepted", m.session.Accept)

	case "e":
		item := m.session.Displayed()
		if item == nil {
			return m, nil
		}
		m.mode = detailEditing
		m.editor.SetValue(item.DraftDescription)
		m.editor.Focus()
		return m, textarea.Blink

	case "c":
		m.mode = detailCommenting
		m.commentInput.SetValue("")
		m.commentInput.Focus()
		return m, textinput.Blink

	case "m":
		return m, m.op("marked for regeneration", m.session.MarkForRegeneration)

	case "x":
		return m, m.op("draft rejected", m.session.Reject)

	case "r":
		return m, m.op("refreshed", m.session.Refresh)
	}

	return m, nil
}

// op wraps a session call as a command producing a change or error message.
func (m ReviewDetailModel) op(info string, call func() error) tea.Cmd {
	return func() tea.Msg {
		if err := call(); err != nil {
			return SessionErrorMsg(err.Error())
		}
		return ReviewChangedMsg{Info: info}
	}
}

// View renders the review detail view
func (m ReviewDetailModel) View() string {
	item := m.session.Displayed()
	if item == nil {
		return noItemsStyle.Render("\nNo item selected\n")
	}

	s := "\n" + detailNameStyle.Render(item.Name) + "\n"
	s += fmt.Sprintf("Type: %s    Status: %s", item.Type, item.Status)
	if item.MarkedForRegeneration || item.TableMarkedForRegeneration {
		s += "    " + markedBadgeStyle.Render("[marked for regeneration]")
	}
	s += "\n"
	if item.Metadata != nil && item.Metadata.GenerationDate != "" {
		s += fmt.Sprintf("Generated: %s\n", item.Metadata.GenerationDate)
	}

	s += "\n" + detailLabelStyle.Render("Current description") + "\n"
	s += renderDescription(item.CurrentDescription)

	s += "\n" + detailLabelStyle.Render("Draft description") + "\n"
	if m.mode == detailEditing {
		s += m.editor.View() + "\n"
	} else {
		s += renderDescription(item.DraftDescription)
	}

	if len(item.Comments) > 0 {
		s += "\n" + detailLabelStyle.Render("Comments") + "\n"
		for _, comment := range item.Comments {
			s += "  - " + comment + "\n"
		}
	}

	if m.mode == detailCommenting {
		s += "\n" + m.commentInput.View() + "\n"
	}

	if m.info != "" {
		s += "\n" + statusStyle.Render(m.info)
	}
	if lastErr := m.session.LastError(); lastErr != "" {
		s += "\n" + errorStyle.Render(lastErr)
	}
	return s
}

func renderDescription(text string) string {
	if text == "" {
		return detailEmptyStyle.Render("  (none)") + "\n"
	}
	return "  " + text + "\n"
}

// Styles for the review detail view
var (
	detailNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	detailLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	detailEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)
