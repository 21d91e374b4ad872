package verdict

import (
	"context"

	"github.com/sadopc/focusflow/internal/feed"
)

// Verdict classifies current activity relative to the active task.
type Verdict string

const (
	OnTrack    Verdict = "On Track"
	Distracted Verdict = "Distracted"
	Idle       Verdict = "Idle"
)

// Valid reports whether v is one of the three known verdicts.
func (v Verdict) Valid() bool {
	return v == OnTrack || v == Distracted || v == Idle
}

// Result is the outcome of one classification.
type Result struct {
	Verdict   Verdict
	Message   string
	Reasoning string
}

// TaskInfo is the slice of a task the classifier needs.
type TaskInfo struct {
	ID          int64
	Title       string
	Description string
}

// Provider maps (active task, recent activity) to a verdict. Implementations
// must absorb their own failures: Classify never panics and never needs an
// error return; a broken backend degrades to a conservative On Track result
// rather than raising false alarms.
type Provider interface {
	Classify(ctx context.Context, task *TaskInfo, recent []feed.Event) Result
}
