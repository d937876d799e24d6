package tui

import (
	"fmt"

	"runlog/internal/model"
	"runlog/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const activitiesPageSize = 15

// ActivitiesModel is the activity list screen model
type ActivitiesModel struct {
	querySvc   *service.QueryService
	units      Units
	activities []model.Activity
	loading    bool
	err        error
	cursor     int
	offset     int
}

// NewActivitiesModel creates a new activities model
func NewActivitiesModel(qs *service.QueryService, units Units) ActivitiesModel {
	return ActivitiesModel{
		querySvc: qs,
		units:    units,
		loading:  true,
	}
}

type activitiesLoadedMsg struct {
	activities []model.Activity
	err        error
}

// Init initializes the activities screen
func (m ActivitiesModel) Init() tea.Cmd {
	return m.loadActivities
}

func (m ActivitiesModel) loadActivities() tea.Msg {
	acts, err := m.querySvc.RecentActivities(500)
	return activitiesLoadedMsg{activities: acts, err: err}
}

// Update handles messages
func (m ActivitiesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case activitiesLoadedMsg:
		m.loading = false
		m.activities = msg.activities
		m.err = msg.err
		m.cursor = 0
		m.offset = 0

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.activities)-1 {
				m.cursor++
				if m.cursor >= m.offset+activitiesPageSize {
					m.offset = m.cursor - activitiesPageSize + 1
				}
			}
		case "r":
			m.loading = true
			return m, m.loadActivities
		}
	}
	return m, nil
}

// View renders the activity list
func (m ActivitiesModel) View() string {
	if m.loading {
		return "Loading..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if len(m.activities) == 0 {
		return cardStyle.Render("No activities stored yet. Press 4 to import some.")
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-10s  %-28s  %-8s  %8s  %8s",
		"Date", "Name", "Type", "Dist", "Time"))

	rows := []string{header}
	end := m.offset + activitiesPageSize
	if end > len(m.activities) {
		end = len(m.activities)
	}
	for i := m.offset; i < end; i++ {
		a := m.activities[i]
		line := fmt.Sprintf("%-10s  %-28s  %-8s  %8s  %8s",
			a.Date.Format("2006-01-02"),
			truncate(a.Name, 28),
			truncate(a.Type, 8),
			m.units.FormatDistanceValue(a.DistanceKm),
			FormatDuration(a.MovingTime),
		)
		if i == m.cursor {
			rows = append(rows, tableSelectedStyle.Render(line))
		} else {
			rows = append(rows, tableRowStyle.Render(line))
		}
	}

	footer := statusStyle.Render(fmt.Sprintf("%d of %d", m.cursor+1, len(m.activities)))
	return lipgloss.JoinVertical(lipgloss.Left, append(rows, footer)...)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
