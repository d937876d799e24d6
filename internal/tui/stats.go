package tui

import (
	"fmt"
	"time"

	"runlog/internal/analysis"
	"runlog/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const statsPageSize = 15

// statsRangeWeeks is how far back the stats screen reaches by default.
const statsRangeWeeks = 104 // 2 years

// StatsModel is the weekly stats screen model
type StatsModel struct {
	querySvc *service.QueryService
	units    Units
	weeks    []analysis.WeekBucket
	summary  analysis.Summary
	loading  bool
	err      error
	cursor   int
	offset   int
}

// NewStatsModel creates a new stats model
func NewStatsModel(qs *service.QueryService, units Units) StatsModel {
	return StatsModel{
		querySvc: qs,
		units:    units,
		loading:  true,
	}
}

type statsLoadedMsg struct {
	report *service.Report
	err    error
}

// Init initializes the stats screen
func (m StatsModel) Init() tea.Cmd {
	return m.loadStats
}

func (m StatsModel) loadStats() tea.Msg {
	from := time.Now().AddDate(0, 0, -7*statsRangeWeeks)
	report, err := m.querySvc.BuildReport(from, time.Time{})
	return statsLoadedMsg{report: report, err: err}
}

// Update handles messages
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.report != nil {
			m.weeks = msg.report.Weeks
			m.summary = msg.report.Summary
		}
		// Newest week at the top
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
			if m.cursor < len(m.weeks)-1 {
				m.cursor++
				if m.cursor >= m.offset+statsPageSize {
					m.offset = m.cursor - statsPageSize + 1
				}
			}
		case "r":
			m.loading = true
			return m, m.loadStats
		}
	}
	return m, nil
}

// View renders the weekly stats table
func (m StatsModel) View() string {
	if m.loading {
		return "Loading..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if len(m.weeks) == 0 {
		return cardStyle.Render("No activities stored yet. Press 4 to import some.")
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-20s  %10s  %6s",
		"Week", "Distance", "Count"))

	rows := []string{header}
	end := m.offset + statsPageSize
	if end > len(m.weeks) {
		end = len(m.weeks)
	}
	for i := m.offset; i < end; i++ {
		// Render newest first
		w := m.weeks[len(m.weeks)-1-i]
		line := fmt.Sprintf("%-20s  %10s  %6d",
			w.WeekLabel,
			m.units.FormatDistance(w.TotalKm),
			w.ActivityCount,
		)
		if i == m.cursor {
			rows = append(rows, tableSelectedStyle.Render(line))
		} else {
			rows = append(rows, tableRowStyle.Render(line))
		}
	}

	footer := statusStyle.Render(fmt.Sprintf("%d weeks · %s total · avg %s/week",
		m.summary.WeekCount,
		m.units.FormatDistance(m.summary.TotalKm),
		m.units.FormatDistance(m.summary.AvgPerWeek)))

	return lipgloss.JoinVertical(lipgloss.Left, append(rows, footer)...)
}
