package store

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sadopc/focusflow/internal/verdict"
)

var (
	// ErrEmptyTitle rejects tasks whose title is empty or whitespace-only.
	ErrEmptyTitle = errors.New("task title must not be empty")
	// ErrInvalidStatus rejects statuses outside Todo / In Progress / Done.
	ErrInvalidStatus = errors.New("invalid status: must be Todo, In Progress or Done")
	// ErrNotFound reports a mutation that referenced a missing task.
	ErrNotFound = errors.New("task not found")
)

// Store is the persistence surface shared by the SQLite and in-memory
// backends. Both must produce identical observable behavior for every
// operation; only durability across restarts differs.
type Store interface {
	// Tasks.
	AddTask(title, description, duration string, status Status) (int64, error)
	GetTask(id int64) (*Task, error)
	ListTasks() ([]Task, error)
	UpdateTask(id int64, upd TaskUpdate) error
	DeleteTask(id int64) error
	ReorderTasks(ids []int64) error
	SetActiveTask(id int64) (bool, error)
	ActiveTask() (*Task, error)
	ClearTasks() error

	// Focus metrics.
	RecordCheck(taskID int64, taskTitle string, v verdict.Verdict, message string) error
	TodayStats() (TodayStats, error)
	CurrentStreak() (int, error)
	WeeklyStats() ([]DayStats, error)
	History(limit int) ([]HistoryEntry, error)
	ChartSeries() (ChartSeries, error)
	ClearMetrics() error

	Close() error
}

// Open returns the durable SQLite store at dbPath, falling back to the
// in-memory store with a logged warning when the durable store cannot
// initialize (e.g. unwritable filesystem). The caller always gets a fully
// functional store.
func Open(dbPath string) Store {
	s, err := NewSQLite(dbPath)
	if err != nil {
		slog.Warn("durable store unavailable, falling back to in-memory storage", "path", dbPath, "error", err)
		return NewMemory()
	}
	return s
}

// DefaultDBPath returns ~/.config/focusflow/focusflow.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "focusflow", "focusflow.db"), nil
}
