// Package tui provides the terminal user interface for mwiz
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwizard/mwiz-cli/internal/api"
	"github.com/mwizard/mwiz-cli/internal/config"
	"github.com/mwizard/mwiz-cli/internal/generate"
	"github.com/mwizard/mwiz-cli/internal/review"
)

// ViewState represents the current view in the TUI
type ViewState int

const (
	MainMenuView ViewState = iota
	ConfigView
	GenerateView
	ReviewListView
	ReviewDetailView
	ContractsView
	ComplianceView
	PublishingView
)

// Model represents the main TUI application state
type Model struct {
	// Navigation
	currentView ViewState
	width       int
	height      int

	// Dependencies
	cfg        *config.Config
	client     *api.Client
	dispatcher *generate.Dispatcher
	session    *review.Session

	// State
	loading bool
	error   string

	// Views
	mainMenu         *MainMenuModel
	configView       *ConfigFormModel
	generateView     *GenerateModel
	reviewListView   *ReviewListModel
	reviewDetailView *ReviewDetailModel
	dashboardViews   map[ViewState]*DashboardModel
}

// NewModel creates a new TUI model
func NewModel(cfg *config.Config, client *api.Client, dispatcher *generate.Dispatcher, session *review.Session) *Model {
	return &Model{
		currentView:      MainMenuView,
		cfg:              cfg,
		client:           client,
		dispatcher:       dispatcher,
		session:          session,
		mainMenu:         NewMainMenuModel(),
		configView:       NewConfigFormModel(cfg),
		generateView:     NewGenerateModel(dispatcher),
		reviewListView:   NewReviewListModel(),
		reviewDetailView: NewReviewDetailModel(session),
		dashboardViews: map[ViewState]*DashboardModel{
			ContractsView:  NewContractsModel(),
			ComplianceView: NewComplianceModel(),
			PublishingView: NewPublishingModel(),
		},
	}
}

// Init returns initial commands for the application
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Text-entry modes swallow every key except their own controls.
		if !m.capturesInput() {
			switch msg.String() {
			case "ctrl+c", "q":
				if m.currentView == MainMenuView {
					return m, tea.Quit
				}
				m.currentView = m.parentView()
				m.error = ""
				return m, nil

			case "esc":
				m.currentView = m.parentView()
				m.error = ""
				return m, nil
			}
		} else if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case NavigateMsg:
		m.currentView = ViewState(msg)
		m.error = ""
		switch m.currentView {
		case ReviewListView:
			if !m.session.HasLoaded() {
				m.loading = true
				cmds = append(cmds, m.loadReviewItems())
			} else {
				m.reviewListView.SetItems(m.session.Items())
			}
		case ConfigView:
			m.configView = NewConfigFormModel(m.cfg) // Reset form
		}

	case ReloadReviewMsg:
		m.loading = true
		cmds = append(cmds, m.loadReviewItems())

	case ReviewItemsLoadedMsg:
		m.loading = false
		m.reviewListView.SetItems(m.session.Items())

	case EnterReviewMsg:
		m.loading = true
		cmds = append(cmds, m.enterReview(int(msg)))

	case ReviewEnteredMsg:
		m.loading = false
		m.currentView = ReviewDetailView
		m.error = ""
		cmds = append(cmds, m.prefetchNext())

	case ReviewChangedMsg:
		m.loading = false
		m.reviewListView.SetItems(m.session.Items())
		if msg.Info != "" {
			m.reviewDetailView.SetInfo(msg.Info)
		}
		if m.currentView == ReviewDetailView {
			cmds = append(cmds, m.prefetchNext())
		}

	case SessionErrorMsg:
		// The session keeps stale data usable; surface the error and stay.
		m.loading = false
		m.error = string(msg)
	}

	// Update current view
	switch m.currentView {
	case MainMenuView:
		var menuModel tea.Model
		menuModel, cmd = m.mainMenu.Update(msg)
		if mm, ok := menuModel.(MainMenuModel); ok {
			m.mainMenu = &mm
		}
		cmds = append(cmds, cmd)

	case ConfigView:
		var formModel tea.Model
		formModel, cmd = m.configView.Update(msg)
		if fm, ok := formModel.(ConfigFormModel); ok {
			m.configView = &fm
		}
		cmds = append(cmds, cmd)

	case GenerateView:
		var genModel tea.Model
		genModel, cmd = m.generateView.Update(msg)
		if gm, ok := genModel.(GenerateModel); ok {
			m.generateView = &gm
		}
		cmds = append(cmds, cmd)

	case ReviewListView:
		var listModel tea.Model
		listModel, cmd = m.reviewListView.Update(msg)
		if lm, ok := listModel.(ReviewListModel); ok {
			m.reviewListView = &lm
		}
		cmds = append(cmds, cmd)

	case ReviewDetailView:
		var detailModel tea.Model
		detailModel, cmd = m.reviewDetailView.Update(msg)
		if dm, ok := detailModel.(ReviewDetailModel); ok {
			m.reviewDetailView = &dm
		}
		cmds = append(cmds, cmd)

	case ContractsView, ComplianceView, PublishingView:
		var dashModel tea.Model
		dashModel, cmd = m.dashboardViews[m.currentView].Update(msg)
		if dm, ok := dashModel.(DashboardModel); ok {
			m.dashboardViews[m.currentView] = &dm
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// capturesInput reports whether the active view is in a text-entry mode.
func (m Model) capturesInput() bool {
	switch m.currentView {
	case ConfigView:
		return m.configView.Editing()
	case ReviewDetailView:
		return m.reviewDetailView.Editing()
	}
	return false
}

// parentView is where esc/q leads from the current view.
func (m Model) parentView() ViewState {
	if m.currentView == ReviewDetailView {
		m.session.BackToList()
		return ReviewListView
	}
	return MainMenuView
}

// View renders the current view
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string

	header := m.headerView()

	switch m.currentView {
	case MainMenuView:
		content = m.mainMenu.View()
	case ConfigView:
		content = m.configView.View()
	case GenerateView:
		content = m.generateView.View()
	case ReviewListView:
		if m.loading {
			content = "Loading review items..."
		} else {
			content = m.reviewListView.View()
		}
	case ReviewDetailView:
		if m.loading {
			content = "Loading item details..."
		} else {
			content = m.reviewDetailView.View()
		}
	case ContractsView, ComplianceView, PublishingView:
		content = m.dashboardViews[m.currentView].View()
	default:
		content = "View not implemented"
	}

	if m.error != "" {
		content += "\n" + errorStyle.Render("Error: "+m.error)
	}

	footer := m.footerView()

	return header + "\n" + content + "\n" + footer
}

// headerView renders the application header
func (m Model) headerView() string {
	title := titleStyle.Render("mwiz")

	var subtitle string
	switch m.currentView {
	case MainMenuView:
		subtitle = "Main Menu"
	case ConfigView:
		subtitle = "Configuration"
	case GenerateView:
		subtitle = "Generate Descriptions"
	case ReviewListView:
		subtitle = "Review Drafts"
	case ReviewDetailView:
		subtitle = m.detailBreadcrumb()
	case ContractsView:
		subtitle = "Data Contracts"
	case ComplianceView:
		subtitle = "Compliance"
	case PublishingView:
		subtitle = "Publishing"
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitleStyle.Render(subtitle))
}

func (m Model) detailBreadcrumb() string {
	current := m.session.Current()
	if current == nil {
		return "Review Drafts"
	}
	index := m.session.CurrentIndex() + 1
	total := len(m.session.Items())
	if colIdx, colTotal := m.session.ColumnPosition(); colIdx >= 0 {
		return fmt.Sprintf("Review Drafts › %s (%d/%d) › column %d/%d",
			current.Name, index, total, colIdx+1, colTotal)
	}
	return fmt.Sprintf("Review Drafts › %s (%d/%d)", current.Name, index, total)
}

// footerView renders the application footer with help
func (m Model) footerView() string {
	help := ""
	switch m.currentView {
	case MainMenuView:
		help = "↑/↓: navigate • enter: select • q: quit"
	case ConfigView:
		help = m.configView.Help()
	case GenerateView:
		help = "↑/↓: navigate • enter: dispatch • t: toggle tasks • esc: back"
	case ReviewListView:
		help = "↑/↓: navigate • enter: review • r: reload • esc: back"
	case ReviewDetailView:
		help = m.reviewDetailView.Help()
	case ContractsView, ComplianceView, PublishingView:
		help = "↑/↓: navigate • f: filter • esc: back"
	}

	return helpStyle.Render(help)
}

// loadReviewItems creates a command that fetches the review item list
func (m Model) loadReviewItems() tea.Cmd {
	return func() tea.Msg {
		if err := m.session.LoadItems(); err != nil {
			return SessionErrorMsg(err.Error())
		}
		return ReviewItemsLoadedMsg{}
	}
}

// enterReview creates a command that opens the review view at index
func (m Model) enterReview(index int) tea.Cmd {
	return func() tea.Msg {
		if err := m.session.EnterReview(index); err != nil {
			return SessionErrorMsg(err.Error())
		}
		return ReviewEnteredMsg{}
	}
}

// prefetchNext warms the details cache for the next item in the background
func (m Model) prefetchNext() tea.Cmd {
	return func() tea.Msg {
		m.session.PrefetchNext()
		return nil
	}
}

// Custom messages
type NavigateMsg ViewState
type SessionErrorMsg string

// ReloadReviewMsg requests a fresh fetch of the review item list
type ReloadReviewMsg struct{}

// ReviewItemsLoadedMsg signals that the item list was (re)loaded
type ReviewItemsLoadedMsg struct{}

// EnterReviewMsg requests the review detail view for a list index
type EnterReviewMsg int

// ReviewEnteredMsg signals that item details are ready to display
type ReviewEnteredMsg struct{}

// ReviewChangedMsg signals a completed review operation
type ReviewChangedMsg struct {
	Info string
}

// Styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
