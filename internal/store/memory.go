package store

import (
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sadopc/focusflow/internal/verdict"
)

// Memory is the ephemeral Store backend, used for demo and sandboxed runs
// and as the automatic fallback when the durable store cannot initialize.
// It mirrors the SQLite backend's observable behavior operation for
// operation; only persistence across restarts differs.
type Memory struct {
	mu sync.Mutex

	tasks  []Task
	nextID int64

	history    []HistoryEntry
	nextHistID int64
	streaks    map[string]*DayStats

	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		streaks: make(map[string]*DayStats),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (m *Memory) Close() error { return nil }

// --- Tasks ---

func (m *Memory) AddTask(title, description, duration string, status Status) (int64, error) {
	if strings.TrimSpace(title) == "" {
		return 0, ErrEmptyTitle
	}
	if !status.Valid() {
		status = StatusTodo
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	maxPos := 0
	for i := range m.tasks {
		if m.tasks[i].Position > maxPos {
			maxPos = m.tasks[i].Position
		}
	}

	m.nextID++
	now := m.now()
	m.tasks = append(m.tasks, Task{
		ID:                m.nextID,
		Title:             title,
		Description:       description,
		Status:            status,
		EstimatedDuration: duration,
		Position:          maxPos + 1,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	return m.nextID, nil
}

func (m *Memory) GetTask(id int64) (*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.tasks {
		if m.tasks[i].ID == id {
			t := m.tasks[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (m *Memory) ListTasks() ([]Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Task, len(m.tasks))
	copy(out, m.tasks)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *Memory) UpdateTask(id int64, upd TaskUpdate) error {
	if upd.Status != nil && !upd.Status.Valid() {
		return ErrInvalidStatus
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.tasks {
		if m.tasks[i].ID != id {
			continue
		}
		t := &m.tasks[i]
		if upd.Title != nil {
			t.Title = *upd.Title
		}
		if upd.Description != nil {
			t.Description = *upd.Description
		}
		if upd.Status != nil {
			t.Status = *upd.Status
		}
		if upd.EstimatedDuration != nil {
			t.EstimatedDuration = *upd.EstimatedDuration
		}
		if upd.Position != nil {
			t.Position = *upd.Position
		}
		t.UpdatedAt = m.now()
		return nil
	}
	return ErrNotFound
}

func (m *Memory) DeleteTask(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *Memory) ReorderTasks(ids []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byID := make(map[int64]*Task, len(m.tasks))
	for i := range m.tasks {
		byID[m.tasks[i].ID] = &m.tasks[i]
	}
	for pos, id := range ids {
		if t, ok := byID[id]; ok {
			t.Position = pos + 1
		}
	}
	return nil
}

func (m *Memory) SetActiveTask(id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var target *Task
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			target = &m.tasks[i]
			break
		}
	}
	if target == nil || target.Status == StatusDone {
		return false, nil
	}

	now := m.now()
	for i := range m.tasks {
		if m.tasks[i].Status == StatusInProgress {
			m.tasks[i].Status = StatusTodo
			m.tasks[i].UpdatedAt = now
		}
	}
	target.Status = StatusInProgress
	target.UpdatedAt = now
	return true, nil
}

func (m *Memory) ActiveTask() (*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var active *Task
	for i := range m.tasks {
		t := &m.tasks[i]
		if t.Status != StatusInProgress {
			continue
		}
		if active == nil || t.Position < active.Position {
			active = t
		}
	}
	if active == nil {
		return nil, nil
	}
	out := *active
	return &out, nil
}

func (m *Memory) ClearTasks() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = nil
	return nil
}

// --- Focus metrics ---

func (m *Memory) RecordCheck(taskID int64, taskTitle string, v verdict.Verdict, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	today := now.Format("2006-01-02")

	m.nextHistID++
	m.history = append(m.history, HistoryEntry{
		ID:        m.nextHistID,
		TaskID:    taskID,
		TaskTitle: taskTitle,
		Verdict:   v,
		Message:   message,
		Timestamp: now,
	})

	day, ok := m.streaks[today]
	if !ok {
		day = &DayStats{Date: today}
		m.streaks[today] = day
	}

	switch v {
	case verdict.OnTrack:
		day.OnTrack++
	case verdict.Distracted:
		day.Distracted++
	case verdict.Idle:
		day.Idle++
	}

	if consecutive := m.trailingOnTrackLocked(today); consecutive > day.MaxConsecutiveOnTrack {
		day.MaxConsecutiveOnTrack = consecutive
	}

	if total := day.OnTrack + day.Distracted + day.Idle; total > 0 {
		day.FocusScore = float64(day.OnTrack) / float64(total) * 100
	}
	return nil
}

func (m *Memory) trailingOnTrackLocked(day string) int {
	count := 0
	for i := len(m.history) - 1; i >= 0; i-- {
		e := m.history[i]
		if e.Timestamp.Format("2006-01-02") != day {
			break
		}
		if e.Verdict != verdict.OnTrack {
			break
		}
		count++
	}
	return count
}

func (m *Memory) TodayStats() (TodayStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	day, ok := m.streaks[m.now().Format("2006-01-02")]
	if !ok {
		return TodayStats{}, nil
	}
	return TodayStats{
		OnTrack:     day.OnTrack,
		Distracted:  day.Distracted,
		Idle:        day.Idle,
		MaxStreak:   day.MaxConsecutiveOnTrack,
		FocusScore:  math.Round(day.FocusScore*10) / 10,
		TotalChecks: day.OnTrack + day.Distracted + day.Idle,
	}, nil
}

func (m *Memory) CurrentStreak() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trailingOnTrackLocked(m.now().Format("2006-01-02")), nil
}

func (m *Memory) WeeklyStats() ([]DayStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var stats []DayStats
	for i := 0; i < 7; i++ {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		if day, ok := m.streaks[date]; ok {
			stats = append(stats, *day)
		}
	}
	return stats, nil
}

func (m *Memory) History(limit int) ([]HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.history)
	if limit >= 0 && limit < n {
		n = limit
	}
	out := make([]HistoryEntry, 0, n)
	for i := len(m.history) - 1; i >= len(m.history)-n; i-- {
		out = append(out, m.history[i])
	}
	return out, nil
}

func (m *Memory) ChartSeries() (ChartSeries, error) {
	weekly, err := m.WeeklyStats()
	if err != nil {
		return ChartSeries{}, err
	}
	m.mu.Lock()
	now := m.now()
	m.mu.Unlock()
	return buildChartSeries(now, weekly), nil
}

func (m *Memory) ClearMetrics() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = nil
	m.streaks = make(map[string]*DayStats)
	return nil
}
