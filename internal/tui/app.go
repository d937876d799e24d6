package tui

import (
	"runlog/internal/config"
	"runlog/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen identifiers
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenActivities
	ScreenStats
	ScreenImport
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	dashboard  DashboardModel
	activities ActivitiesModel
	stats      StatsModel
	importView ImportModel
	help       HelpModel

	// Window dimensions
	width  int
	height int
}

// NewApp creates a new App with all dependencies
func NewApp(importSvc *service.ImportService, querySvc *service.QueryService, display config.DisplayConfig) *App {
	units := NewUnits(display)
	return &App{
		screen:     ScreenDashboard,
		dashboard:  NewDashboardModel(querySvc, units),
		activities: NewActivitiesModel(querySvc, units),
		stats:      NewStatsModel(querySvc, units),
		importView: NewImportModel(importSvc),
		help:       NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		// The import screen owns the keyboard while a path is being typed
		if a.screen == ScreenImport && a.importView.typing {
			break
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "d", "1":
			return a.switchTo(ScreenDashboard, a.dashboard.Init())
		case "a", "2":
			return a.switchTo(ScreenActivities, a.activities.Init())
		case "s", "3":
			return a.switchTo(ScreenStats, a.stats.Init())
		case "i", "4":
			return a.switchTo(ScreenImport, a.importView.Init())
		case "?", "5":
			if a.screen != ScreenHelp {
				a.prevScreen = a.screen
				a.screen = ScreenHelp
			}
			return a, nil
		case "esc":
			if a.screen == ScreenHelp {
				a.screen = a.prevScreen
				return a, nil
			}
		}
	}

	return a.updateScreen(msg)
}

func (a *App) switchTo(screen Screen, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if a.screen == screen {
		return a, nil
	}
	a.screen = screen
	return a, cmd
}

func (a *App) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var screenModel tea.Model

	switch a.screen {
	case ScreenDashboard:
		screenModel, cmd = a.dashboard.Update(msg)
		a.dashboard = screenModel.(DashboardModel)
	case ScreenActivities:
		screenModel, cmd = a.activities.Update(msg)
		a.activities = screenModel.(ActivitiesModel)
	case ScreenStats:
		screenModel, cmd = a.stats.Update(msg)
		a.stats = screenModel.(StatsModel)
	case ScreenImport:
		screenModel, cmd = a.importView.Update(msg)
		a.importView = screenModel.(ImportModel)
	case ScreenHelp:
		screenModel, cmd = a.help.Update(msg)
		a.help = screenModel.(HelpModel)
	}

	return a, cmd
}

// View renders the current screen with app chrome
func (a *App) View() string {
	var body string
	switch a.screen {
	case ScreenDashboard:
		body = a.dashboard.View()
	case ScreenActivities:
		body = a.activities.View()
	case ScreenStats:
		body = a.stats.View()
	case ScreenImport:
		body = a.importView.View()
	case ScreenHelp:
		body = a.help.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("runlog"),
		a.renderNav(),
		body,
		statusStyle.Render("q quit · ? help"),
	)
}

func (a *App) renderNav() string {
	labels := []string{"[1] Dashboard", "[2] Activities", "[3] Stats", "[4] Import"}
	screens := []Screen{ScreenDashboard, ScreenActivities, ScreenStats, ScreenImport}

	items := make([]string, len(labels))
	for i, label := range labels {
		if screens[i] == a.screen {
			items[i] = navActiveStyle.Render(label)
		} else {
			items[i] = label
		}
	}
	return navStyle.Render(lipgloss.JoinHorizontal(lipgloss.Left, items[0], "  ", items[1], "  ", items[2], "  ", items[3]))
}
