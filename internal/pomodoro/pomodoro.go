// Package pomodoro implements a tick-driven work/break interval timer.
package pomodoro

import "fmt"

const (
	WorkSeconds  = 25 * 60
	BreakSeconds = 5 * 60
)

// Timer alternates between a work phase and a break phase. It has no
// internal clock; the owner calls Tick once per elapsed second, which keeps
// the timer trivially testable and lets the TUI drive it from its own tick
// loop.
type Timer struct {
	workSeconds  int
	breakSeconds int

	remaining int
	running   bool
	workPhase bool
}

func New() *Timer {
	return NewWithDurations(WorkSeconds, BreakSeconds)
}

// NewWithDurations builds a timer with custom phase lengths in seconds.
// Non-positive values fall back to the defaults.
func NewWithDurations(work, brk int) *Timer {
	if work <= 0 {
		work = WorkSeconds
	}
	if brk <= 0 {
		brk = BreakSeconds
	}
	return &Timer{
		workSeconds:  work,
		breakSeconds: brk,
		remaining:    work,
		workPhase:    true,
	}
}

// Start resumes the countdown from the current remaining time.
func (t *Timer) Start() { t.running = true }

// Pause halts the countdown without losing the remaining time.
func (t *Timer) Pause() { t.running = false }

// Reset stops the timer and restores a full work phase.
func (t *Timer) Reset() {
	t.running = false
	t.workPhase = true
	t.remaining = t.workSeconds
}

// Tick advances the timer by one second. When a phase ends the timer flips
// to the other phase, pauses, and reports playSound so the caller can ring
// a bell. Ticking a paused timer changes nothing.
func (t *Timer) Tick() (display string, playSound bool) {
	if t.running {
		t.remaining--
		if t.remaining <= 0 {
			playSound = true
			t.running = false
			t.workPhase = !t.workPhase
			if t.workPhase {
				t.remaining = t.workSeconds
			} else {
				t.remaining = t.breakSeconds
			}
		}
	}
	return t.Display(), playSound
}

// Display formats the remaining time as MM:SS.
func (t *Timer) Display() string {
	return fmt.Sprintf("%02d:%02d", t.remaining/60, t.remaining%60)
}

// Running reports whether the countdown is active.
func (t *Timer) Running() bool { return t.running }

// WorkPhase reports whether the timer is in the work phase.
func (t *Timer) WorkPhase() bool { return t.workPhase }

// Remaining returns the remaining seconds in the current phase.
func (t *Timer) Remaining() int { return t.remaining }

// Phase names the current phase for display.
func (t *Timer) Phase() string {
	if t.workPhase {
		return "Work"
	}
	return "Break"
}
