package tui

import (
	"time"

	"github.com/sadopc/focusflow/internal/monitor"
	"github.com/sadopc/focusflow/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTasks viewState = iota
	viewMonitor
	viewStats
	viewPomodoro
)

var viewNames = []string{"Tasks", "Monitor", "Stats", "Pomodoro"}

// --- Messages ---

type tasksDataMsg struct {
	tasks []store.Task
}

type statsDataMsg struct {
	today  store.TodayStats
	streak int
	series store.ChartSeries
}

type checkDoneMsg struct {
	result monitor.CheckResult
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func statusLabel(s store.Status) string {
	switch s {
	case store.StatusDone:
		return "✅"
	case store.StatusInProgress:
		return "🔄"
	default:
		return "⏳"
	}
}
