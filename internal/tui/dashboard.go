package tui

import (
	"fmt"
	"time"

	"runlog/internal/analysis"
	"runlog/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// dashboardWeeks is how far back the dashboard report reaches.
const dashboardWeeks = 12

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	querySvc *service.QueryService
	units    Units
	report   *service.Report
	loading  bool
	err      error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(qs *service.QueryService, units Units) DashboardModel {
	return DashboardModel{
		querySvc: qs,
		units:    units,
		loading:  true,
	}
}

type dashboardLoadedMsg struct {
	report *service.Report
	err    error
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadReport
}

func (m DashboardModel) loadReport() tea.Msg {
	from := time.Now().AddDate(0, 0, -7*dashboardWeeks)
	report, err := m.querySvc.BuildReport(from, time.Time{})
	return dashboardLoadedMsg{report: report, err: err}
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.report = msg.report
		m.err = msg.err
	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.loadReport
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "Loading..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.report == nil || m.report.Summary.TotalActivities == 0 {
		return cardStyle.Render("No activities in the last 12 weeks. Press 4 to import some.")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderSummary(),
		m.renderChart(),
	)
}

func (m DashboardModel) renderSummary() string {
	s := m.report.Summary

	lines := []string{
		cardTitleStyle.Render(fmt.Sprintf("Last %d weeks", dashboardWeeks)),
		renderMetric("Distance", m.units.FormatDistance(s.TotalKm)),
		renderMetric("Activities", fmt.Sprintf("%d", s.TotalActivities)),
		renderMetric("Avg / week", m.units.FormatDistance(s.AvgPerWeek)),
		renderMetric("Avg / activity", m.units.FormatDistance(s.AvgPerActivity)),
	}
	if s.MaxWeek != nil {
		lines = append(lines, renderMetric("Best week",
			fmt.Sprintf("%s (%s)", m.units.FormatDistance(s.MaxWeek.TotalKm), s.MaxWeek.WeekLabel)))
	}
	for _, td := range analysis.SortedByKm(s.TypeBreakdown) {
		lines = append(lines, renderMetric("  "+td.Type, m.units.FormatDistance(td.Km)))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m DashboardModel) renderChart() string {
	title := cardTitleStyle.Render(fmt.Sprintf("Weekly distance (%s)", m.units.DistanceLabel()))

	data := make([]float64, len(m.report.Weeks))
	for i, w := range m.report.Weeks {
		data[i] = m.units.DistanceValue(w.TotalKm)
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(1),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}
