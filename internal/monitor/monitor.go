// Package monitor runs periodic focus checks: it reads the active task and
// recent activity, asks the verdict provider to classify them, tracks
// escalation state, and folds verdicts into the metrics store.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sadopc/focusflow/internal/feed"
	"github.com/sadopc/focusflow/internal/store"
	"github.com/sadopc/focusflow/internal/verdict"
)

const (
	// logCap bounds the rolling check log; oldest entries drop first.
	logCap = 20
	// recentWindow is how many feed events each check sends to the provider.
	recentWindow = 10
	// escalationThreshold is the run length of consecutive negative
	// verdicts that triggers stronger feedback.
	escalationThreshold = 3
)

// Alert signals a negative verdict to the presentation layer.
type Alert struct {
	Verdict verdict.Verdict
	Message string
}

// CheckResult is what one focus check produces. Log is the full rolling log
// oldest first; Alert is non-nil for Distracted and Idle verdicts; Escalated
// reports that a negative run has crossed the threshold.
type CheckResult struct {
	Log       []string
	Alert     *Alert
	Escalated bool
}

// Monitor owns the focus-check state machine. Checks must be serialized by
// the caller; the scheduler and the manual-trigger path share one instance
// and take turns.
type Monitor struct {
	tasks    store.Store
	activity *feed.Feed
	provider verdict.Provider

	consecutiveDistracted int
	consecutiveIdle       int

	log []string

	// textMode replaces the filesystem feed with a free-text buffer,
	// used for sandboxed demo runs without a workspace to watch.
	textMode bool
	text     string
}

func New(tasks store.Store, activity *feed.Feed, provider verdict.Provider) *Monitor {
	return &Monitor{
		tasks:    tasks,
		activity: activity,
		provider: provider,
	}
}

// SetProvider attaches or replaces the verdict provider.
func (m *Monitor) SetProvider(p verdict.Provider) { m.provider = p }

// SetTextMode switches between filesystem-feed and text-buffer activity.
func (m *Monitor) SetTextMode(on bool) { m.textMode = on }

// SetText replaces the text buffer used in text mode.
func (m *Monitor) SetText(text string) string {
	m.text = text
	return fmt.Sprintf("✅ Text updated (%d characters)", len(text))
}

// ConsecutiveDistracted returns the current distraction run length.
func (m *Monitor) ConsecutiveDistracted() int { return m.consecutiveDistracted }

// ConsecutiveIdle returns the current idle run length.
func (m *Monitor) ConsecutiveIdle() int { return m.consecutiveIdle }

// Log returns a copy of the rolling check log, oldest first.
func (m *Monitor) Log() []string {
	out := make([]string, len(m.log))
	copy(out, m.log)
	return out
}

// RunCheck performs one focus check. It never returns an error: missing
// provider, missing task and provider failures all degrade to explanatory
// log text per the always-succeeds-with-a-message policy.
func (m *Monitor) RunCheck(ctx context.Context) CheckResult {
	if m.provider == nil {
		return CheckResult{Log: []string{"⚠️ Agent not initialized. Check configuration."}}
	}

	active, err := m.tasks.ActiveTask()
	if err != nil {
		slog.Warn("focus check could not read active task", "error", err)
		return CheckResult{Log: []string{fmt.Sprintf("⚠️ Could not read active task: %v", err)}}
	}

	// No active task: synthesize Idle locally. No provider call, no
	// escalation update, no metrics write. Being between tasks is a
	// distinct condition from idling on an active one.
	if active == nil {
		res := verdict.Result{
			Verdict: verdict.Idle,
			Message: "No active task selected. Pick a task to get started! 🎯",
		}
		m.appendLog(res)
		return CheckResult{
			Log:   m.Log(),
			Alert: &Alert{Verdict: res.Verdict, Message: res.Message},
		}
	}

	res := m.provider.Classify(ctx, &verdict.TaskInfo{
		ID:          active.ID,
		Title:       active.Title,
		Description: active.Description,
	}, m.recentActivity())

	switch res.Verdict {
	case verdict.OnTrack:
		m.consecutiveDistracted = 0
		m.consecutiveIdle = 0
	case verdict.Distracted:
		m.consecutiveDistracted++
	case verdict.Idle:
		m.consecutiveIdle++
	}

	if err := m.tasks.RecordCheck(active.ID, active.Title, res.Verdict, res.Message); err != nil {
		slog.Warn("could not record focus check", "error", err)
	}

	m.appendLog(res)

	out := CheckResult{Log: m.Log()}
	if res.Verdict == verdict.Distracted || res.Verdict == verdict.Idle {
		out.Alert = &Alert{Verdict: res.Verdict, Message: res.Message}
		out.Escalated = m.consecutiveDistracted >= escalationThreshold ||
			m.consecutiveIdle >= escalationThreshold
	}
	return out
}

func (m *Monitor) recentActivity() []feed.Event {
	if m.textMode {
		if m.text == "" {
			return nil
		}
		content := feed.Tail(m.text, feed.MaxContentChars)
		return []feed.Event{{
			Kind:    feed.KindTextEdit,
			Source:  "demo_workspace",
			Content: content,
			Time:    time.Now(),
		}}
	}
	return m.activity.Recent(recentWindow)
}

func (m *Monitor) appendLog(res verdict.Result) {
	emoji := "💤"
	switch res.Verdict {
	case verdict.OnTrack:
		emoji = "✅"
	case verdict.Distracted:
		emoji = "⚠️"
	}
	m.log = append(m.log, fmt.Sprintf("%s [%s] %s", emoji, res.Verdict, res.Message))
	if len(m.log) > logCap {
		m.log = m.log[len(m.log)-logCap:]
	}
}

// ActivitySummary describes recent activity for display.
func (m *Monitor) ActivitySummary(watching bool) string {
	if m.textMode {
		return fmt.Sprintf("📝 Text content: %d characters", len(m.text))
	}
	if !watching {
		return "⏸️ Monitoring is not active"
	}
	recent := m.activity.Recent(5)
	if len(recent) == 0 {
		return "💤 No recent file activity"
	}
	summary := ""
	for _, e := range recent {
		summary += fmt.Sprintf("• %s: %s\n", e.Kind, e.Source)
	}
	return summary[:len(summary)-1]
}
