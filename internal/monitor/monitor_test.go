package monitor

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/sadopc/focusflow/internal/feed"
	"github.com/sadopc/focusflow/internal/store"
	"github.com/sadopc/focusflow/internal/verdict"
)

// stubProvider returns canned results in order, repeating the last one.
type stubProvider struct {
	results []verdict.Result
	calls   int

	lastTask   *verdict.TaskInfo
	lastEvents []feed.Event
}

func (p *stubProvider) Classify(_ context.Context, task *verdict.TaskInfo, events []feed.Event) verdict.Result {
	p.lastTask = task
	p.lastEvents = events
	i := p.calls
	if i >= len(p.results) {
		i = len(p.results) - 1
	}
	p.calls++
	return p.results[i]
}

func newTestMonitor(t *testing.T, results ...verdict.Result) (*Monitor, store.Store, *stubProvider) {
	t.Helper()
	s := store.NewMemory()
	t.Cleanup(func() { s.Close() })
	p := &stubProvider{results: results}
	return New(s, feed.New(), p), s, p
}

func activeTask(t *testing.T, s store.Store, title string) int64 {
	t.Helper()
	id, err := s.AddTask(title, "", "", store.StatusTodo)
	if err != nil {
		t.Fatal(err)
	}
	ok, err := s.SetActiveTask(id)
	if err != nil || !ok {
		t.Fatalf("set active: ok=%v err=%v", ok, err)
	}
	return id
}

// ============================================================
// run_check paths
// ============================================================

func TestRunCheckNoProvider(t *testing.T) {
	m := New(store.NewMemory(), feed.New(), nil)

	result := m.RunCheck(context.Background())
	if len(result.Log) != 1 || !strings.Contains(result.Log[0], "not initialized") {
		t.Fatalf("expected uninitialized message, got %v", result.Log)
	}
	if result.Alert != nil || result.Escalated {
		t.Fatal("no provider should not alert")
	}
	// No state mutation.
	if len(m.Log()) != 0 {
		t.Fatal("rolling log must stay empty")
	}
}

func TestRunCheckNoActiveTask(t *testing.T) {
	m, s, p := newTestMonitor(t, verdict.Result{Verdict: verdict.OnTrack})

	result := m.RunCheck(context.Background())
	if p.calls != 0 {
		t.Fatal("provider must not be called without an active task")
	}
	if len(result.Log) != 1 || !strings.Contains(result.Log[0], "Idle") {
		t.Fatalf("expected local Idle verdict, got %v", result.Log)
	}
	if result.Alert == nil || result.Alert.Verdict != verdict.Idle {
		t.Fatalf("expected Idle alert, got %+v", result.Alert)
	}
	if result.Escalated {
		t.Fatal("no-task Idle must not escalate")
	}
	if m.ConsecutiveIdle() != 0 {
		t.Fatal("no-task Idle must not move escalation counters")
	}

	// No metrics write either.
	stats, _ := s.TodayStats()
	if stats.TotalChecks != 0 {
		t.Fatalf("expected no metrics write, got %+v", stats)
	}
}

func TestRunCheckOnTrackEndToEnd(t *testing.T) {
	m, s, p := newTestMonitor(t, verdict.Result{
		Verdict: verdict.OnTrack,
		Message: "Nice, editing parser.go!",
	})
	activeTask(t, s, "Write parser")

	fd := feed.New()
	fd.Record(feed.KindModified, "parser.go", "func parse() {}", time.Now())
	m.activity = fd

	result := m.RunCheck(context.Background())
	if len(result.Log) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(result.Log))
	}
	entry := result.Log[0]
	if !strings.Contains(entry, "On Track") || !strings.Contains(entry, "Nice, editing parser.go!") {
		t.Fatalf("unexpected log entry: %q", entry)
	}
	if !strings.HasPrefix(entry, "✅") {
		t.Fatalf("expected ✅ prefix, got %q", entry)
	}
	if result.Alert != nil {
		t.Fatal("On Track must not alert")
	}
	if m.ConsecutiveDistracted() != 0 {
		t.Fatal("counter should stay at 0")
	}

	// Provider saw the task and the feed event.
	if p.lastTask == nil || p.lastTask.Title != "Write parser" {
		t.Fatalf("provider got wrong task: %+v", p.lastTask)
	}
	if len(p.lastEvents) != 1 || p.lastEvents[0].Source != "parser.go" {
		t.Fatalf("provider got wrong events: %+v", p.lastEvents)
	}

	// Metrics recorded.
	stats, _ := s.TodayStats()
	if stats.OnTrack != 1 || stats.FocusScore != 100.0 {
		t.Fatalf("expected recorded On Track with score 100, got %+v", stats)
	}
}

// ============================================================
// Escalation
// ============================================================

func TestEscalationMonotonicity(t *testing.T) {
	m, s, _ := newTestMonitor(t, verdict.Result{Verdict: verdict.Distracted, Message: "reddit again"})
	activeTask(t, s, "task")

	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		result := m.RunCheck(ctx)
		if m.ConsecutiveDistracted() != i {
			t.Fatalf("after %d checks expected counter %d, got %d", i, i, m.ConsecutiveDistracted())
		}
		if result.Alert == nil {
			t.Fatalf("check %d: Distracted should alert", i)
		}
		if escalated := i >= 3; result.Escalated != escalated {
			t.Fatalf("check %d: expected escalated=%v", i, escalated)
		}
	}
}

func TestOnTrackResetsCounters(t *testing.T) {
	m, s, _ := newTestMonitor(t,
		verdict.Result{Verdict: verdict.Distracted},
		verdict.Result{Verdict: verdict.Idle},
		verdict.Result{Verdict: verdict.OnTrack},
		verdict.Result{Verdict: verdict.Distracted},
	)
	activeTask(t, s, "task")

	ctx := context.Background()
	m.RunCheck(ctx)
	m.RunCheck(ctx)
	if m.ConsecutiveDistracted() != 1 || m.ConsecutiveIdle() != 1 {
		t.Fatalf("Idle must not reset the distraction counter: d=%d i=%d",
			m.ConsecutiveDistracted(), m.ConsecutiveIdle())
	}

	m.RunCheck(ctx)
	if m.ConsecutiveDistracted() != 0 || m.ConsecutiveIdle() != 0 {
		t.Fatal("On Track must reset both counters")
	}

	// Re-escalation starts from scratch.
	result := m.RunCheck(ctx)
	if m.ConsecutiveDistracted() != 1 || result.Escalated {
		t.Fatalf("expected fresh run of 1, got %d escalated=%v", m.ConsecutiveDistracted(), result.Escalated)
	}
}

// ============================================================
// Rolling log
// ============================================================

func TestRollingLogCap(t *testing.T) {
	m, s, _ := newTestMonitor(t, verdict.Result{Verdict: verdict.OnTrack, Message: "m"})
	activeTask(t, s, "task")

	ctx := context.Background()
	for i := 0; i < 21; i++ {
		m.RunCheck(ctx)
	}
	log := m.Log()
	if len(log) != 20 {
		t.Fatalf("expected 20 log entries, got %d", len(log))
	}
}

// ============================================================
// Text mode
// ============================================================

func TestTextModeSynthesizesEvent(t *testing.T) {
	m, s, p := newTestMonitor(t, verdict.Result{Verdict: verdict.OnTrack})
	activeTask(t, s, "task")

	m.SetTextMode(true)
	msg := m.SetText("writing some go code")
	if !strings.Contains(msg, "20 characters") {
		t.Fatalf("unexpected update message: %q", msg)
	}

	m.RunCheck(context.Background())
	if len(p.lastEvents) != 1 {
		t.Fatalf("expected 1 synthetic event, got %d", len(p.lastEvents))
	}
	e := p.lastEvents[0]
	if e.Kind != feed.KindTextEdit || e.Source != "demo_workspace" || e.Content != "writing some go code" {
		t.Fatalf("unexpected synthetic event: %+v", e)
	}
}

func TestTextModeEmptyBuffer(t *testing.T) {
	m, s, p := newTestMonitor(t, verdict.Result{Verdict: verdict.Idle})
	activeTask(t, s, "task")

	m.SetTextMode(true)
	m.RunCheck(context.Background())
	if len(p.lastEvents) != 0 {
		t.Fatalf("empty buffer should yield no events, got %d", len(p.lastEvents))
	}
}

func TestTextModeTruncatesBuffer(t *testing.T) {
	m, s, p := newTestMonitor(t, verdict.Result{Verdict: verdict.OnTrack})
	activeTask(t, s, "task")

	m.SetTextMode(true)
	m.SetText(strings.Repeat("a", 600) + "tail")
	m.RunCheck(context.Background())

	content := p.lastEvents[0].Content
	if len(content) != feed.MaxContentChars {
		t.Fatalf("expected %d chars, got %d", feed.MaxContentChars, len(content))
	}
	if !strings.HasSuffix(content, "tail") {
		t.Fatal("truncation should keep the buffer tail")
	}
}

func TestTextModeTruncationKeepsRunesIntact(t *testing.T) {
	m, s, p := newTestMonitor(t, verdict.Result{Verdict: verdict.OnTrack})
	activeTask(t, s, "task")

	m.SetTextMode(true)
	m.SetText(strings.Repeat("世", 200))
	m.RunCheck(context.Background())

	content := p.lastEvents[0].Content
	if !utf8.ValidString(content) {
		t.Fatal("truncation split a multibyte rune")
	}
	if len(content) > feed.MaxContentChars {
		t.Fatalf("expected at most %d bytes, got %d", feed.MaxContentChars, len(content))
	}
}

// ============================================================
// Activity summary
// ============================================================

func TestActivitySummary(t *testing.T) {
	m, _, _ := newTestMonitor(t, verdict.Result{Verdict: verdict.OnTrack})

	if got := m.ActivitySummary(false); !strings.Contains(got, "not active") {
		t.Fatalf("unexpected summary: %q", got)
	}
	if got := m.ActivitySummary(true); !strings.Contains(got, "No recent file activity") {
		t.Fatalf("unexpected summary: %q", got)
	}

	m.activity.Record(feed.KindModified, "main.go", "", time.Now())
	if got := m.ActivitySummary(true); !strings.Contains(got, "main.go") {
		t.Fatalf("unexpected summary: %q", got)
	}

	m.SetTextMode(true)
	m.SetText("abc")
	if got := m.ActivitySummary(true); !strings.Contains(got, "3 characters") {
		t.Fatalf("unexpected summary: %q", got)
	}
}

// ============================================================
// Scheduler
// ============================================================

func TestSchedulerRunsChecks(t *testing.T) {
	m, s, _ := newTestMonitor(t, verdict.Result{Verdict: verdict.OnTrack, Message: "ok"})
	activeTask(t, s, "task")

	results := make(chan CheckResult, 8)
	sched := NewScheduler(m, 10*time.Millisecond, func(r CheckResult) { results <- r })
	sched.Start(context.Background())
	defer sched.Stop()

	select {
	case r := <-results:
		if len(r.Log) == 0 {
			t.Fatal("expected a log entry from scheduled check")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler never ran a check")
	}
}

func TestSchedulerStopIdempotent(t *testing.T) {
	m, _, _ := newTestMonitor(t, verdict.Result{Verdict: verdict.OnTrack})
	sched := NewScheduler(m, time.Hour, nil)

	sched.Stop() // never started
	sched.Start(context.Background())
	if !sched.Running() {
		t.Fatal("scheduler should be running")
	}
	sched.Stop()
	if sched.Running() {
		t.Fatal("scheduler should be stopped")
	}
	sched.Stop()
}
