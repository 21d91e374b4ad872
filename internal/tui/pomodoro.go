package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focusflow/internal/pomodoro"
)

type pomodoroModel struct {
	timer  *pomodoro.Timer
	width  int
	height int
}

func newPomodoroModel(workMinutes, breakMinutes int) pomodoroModel {
	return pomodoroModel{
		timer: pomodoro.NewWithDurations(workMinutes*60, breakMinutes*60),
	}
}

func (p *pomodoroModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p pomodoroModel) update(msg tea.Msg) (pomodoroModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		_, ring := p.timer.Tick()
		if ring {
			label := "Break time! ☕ \a"
			if p.timer.WorkPhase() {
				label = "Back to work! 🎯 \a"
			}
			return p, okStatus("%s", label)
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Pause):
			if p.timer.Running() {
				p.timer.Pause()
			} else {
				p.timer.Start()
			}
		case key.Matches(msg, keys.Start):
			p.timer.Start()
		case key.Matches(msg, keys.Reset):
			p.timer.Reset()
		}
	}
	return p, nil
}

func (p pomodoroModel) view() string {
	w := p.width - 4

	title := titleStyle.Render("Pomodoro")

	display := p.timer.Display()
	var timeDisplay, phaseLabel string
	switch {
	case !p.timer.Running():
		timeDisplay = timerStyle.Width(w - 6).Render(display)
		phaseLabel = mutedStyle.Render(p.timer.Phase() + " (paused)")
	case p.timer.WorkPhase():
		timeDisplay = accentStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(display)
		phaseLabel = accentStyle.Bold(true).Render("WORK")
	default:
		timeDisplay = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(display)
		phaseLabel = successStyle.Bold(true).Render("BREAK")
	}

	controls := mutedStyle.Render("space: start/pause  r: reset")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center,
			title, "", timeDisplay, phaseLabel, "", controls,
		),
	)
}
