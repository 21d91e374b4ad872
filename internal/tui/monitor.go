package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focusflow/internal/monitor"
)

type monitorModel struct {
	mon      *monitor.Monitor
	watching bool
	width    int
	height   int

	log       []string
	alert     *monitor.Alert
	escalated bool
}

func newMonitorModel(m *monitor.Monitor, watching bool) monitorModel {
	return monitorModel{mon: m, watching: watching}
}

func (m *monitorModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// apply folds a finished check into the view state.
func (m *monitorModel) apply(result monitor.CheckResult) {
	m.log = result.Log
	m.alert = result.Alert
	m.escalated = result.Escalated
}

func (m monitorModel) update(msg tea.Msg) (monitorModel, tea.Cmd) {
	// Checks are triggered globally; nothing view-local to handle yet.
	return m, nil
}

func (m monitorModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Focus Monitor")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  "+m.mon.ActivitySummary(m.watching)))
	rows = append(rows, "")

	if m.alert != nil {
		label := warningStyle.Bold(true).Render("⚠ " + string(m.alert.Verdict))
		if m.escalated {
			label = errorStyle.Bold(true).Render("🚨 " + string(m.alert.Verdict) + ", time to refocus!")
		}
		rows = append(rows, alertPanelStyle.Width(w-4).Render(
			lipgloss.JoinVertical(lipgloss.Left, label, m.alert.Message),
		))
		rows = append(rows, "")
	}

	rows = append(rows, titleStyle.Render("Check Log"))
	if len(m.log) == 0 {
		rows = append(rows, mutedStyle.Render("  No checks yet. Press c to run one."))
	} else {
		// Newest entries at the bottom, trimmed to the visible area.
		visible := m.log
		if budget := m.height - len(rows) - 4; budget > 0 && len(visible) > budget {
			visible = visible[len(visible)-budget:]
		}
		for _, entry := range visible {
			rows = append(rows, "  "+entry)
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  c: check now  E: export history"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
