package store

import (
	"time"

	"github.com/sadopc/focusflow/internal/verdict"
)

// Status is a task's lifecycle state.
type Status string

const (
	StatusTodo       Status = "Todo"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

type Task struct {
	ID                int64
	Title             string
	Description       string
	Status            Status
	EstimatedDuration string // opaque display string, e.g. "30 min"
	Position          int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TaskUpdate is a partial task mutation; nil fields are left unchanged.
type TaskUpdate struct {
	Title             *string
	Description       *string
	Status            *Status
	EstimatedDuration *string
	Position          *int
}

// HistoryEntry is one recorded focus check. The task title is denormalized
// so history survives task deletion and renames.
type HistoryEntry struct {
	ID        int64
	TaskID    int64
	TaskTitle string
	Verdict   verdict.Verdict
	Message   string
	Timestamp time.Time
}

// DayStats aggregates one calendar day of focus checks.
type DayStats struct {
	Date                  string // "2006-01-02"
	OnTrack               int
	Distracted            int
	Idle                  int
	MaxConsecutiveOnTrack int
	FocusScore            float64
}

// TodayStats is the dashboard view of today's DayStats.
type TodayStats struct {
	OnTrack     int
	Distracted  int
	Idle        int
	MaxStreak   int
	FocusScore  float64 // rounded to 1 decimal
	TotalChecks int
}

// ChartSeries holds seven aligned arrays for the weekly chart, oldest day
// first, with explicit zeros for days without data.
type ChartSeries struct {
	Dates       []string // "01/02"
	FocusScores []float64
	OnTrack     []int
	Distracted  []int
	Idle        []int
}
