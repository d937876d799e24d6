package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		cardTitleStyle.Render("Keys"),
		renderKeyHelp("1/d", "dashboard"),
		renderKeyHelp("2/a", "activity list"),
		renderKeyHelp("3/s", "weekly stats"),
		renderKeyHelp("4/i", "import files"),
		renderKeyHelp("j/k", "move cursor"),
		renderKeyHelp("r", "reload current screen"),
		renderKeyHelp("esc", "close help"),
		renderKeyHelp("q", "quit"),
	))
}
