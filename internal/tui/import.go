package tui

import (
	"context"
	"fmt"

	"runlog/internal/service"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ImportModel is the file-import screen model
type ImportModel struct {
	importSvc *service.ImportService
	input     textinput.Model
	typing    bool
	running   bool
	result    *service.ImportResult
	err       error
}

// NewImportModel creates a new import model
func NewImportModel(is *service.ImportService) ImportModel {
	ti := textinput.New()
	ti.Placeholder = "path/to/export.csv or activity.gpx"
	ti.CharLimit = 512
	ti.Width = 60

	return ImportModel{
		importSvc: is,
		input:     ti,
	}
}

type importDoneMsg struct {
	result *service.ImportResult
	err    error
}

// Init initializes the import screen
func (m ImportModel) Init() tea.Cmd {
	return nil
}

func (m ImportModel) runImport(path string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.importSvc.ImportAll(context.Background(), []string{path}, nil)
		return importDoneMsg{result: result, err: err}
	}
}

// Update handles messages
func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case importDoneMsg:
		m.running = false
		m.result = msg.result
		m.err = msg.err

	case tea.KeyMsg:
		if m.typing {
			switch msg.String() {
			case "enter":
				path := m.input.Value()
				m.typing = false
				m.input.Blur()
				if path != "" && !m.running {
					m.running = true
					m.result = nil
					m.err = nil
					return m, m.runImport(path)
				}
			case "esc":
				m.typing = false
				m.input.Blur()
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				return m, cmd
			}
			return m, nil
		}

		if msg.String() == "enter" && !m.running {
			m.typing = true
			return m, m.input.Focus()
		}
	}
	return m, nil
}

// View renders the import screen
func (m ImportModel) View() string {
	lines := []string{
		cardTitleStyle.Render("Import activity files"),
		"Supported: bulk export .csv, single-activity .gpx",
		"",
		m.input.View(),
		"",
	}

	switch {
	case m.running:
		lines = append(lines, "Importing...")
	case m.err != nil:
		lines = append(lines, errorStyle.Render(fmt.Sprintf("Import failed: %v", m.err)))
	case m.result != nil:
		lines = append(lines, successStyle.Render(
			fmt.Sprintf("Imported %d activities from %d file(s)", m.result.Imported, m.result.FilesProcessed)))
		for _, err := range m.result.Errors {
			lines = append(lines, errorStyle.Render(err.Error()))
		}
	default:
		lines = append(lines, statusStyle.Render("Press enter to type a file path"))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
