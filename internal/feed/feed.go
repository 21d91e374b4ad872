package feed

import (
	"strings"
	"sync"
	"time"
)

// Kind classifies an activity event.
type Kind string

const (
	KindCreated  Kind = "created"
	KindModified Kind = "modified"
	KindDeleted  Kind = "deleted"
	KindTextEdit Kind = "text_edit"
)

// Event is a single observed workspace change.
type Event struct {
	Kind    Kind
	Source  string // file path or logical workspace name
	Content string
	Time    time.Time
}

const (
	defaultCap      = 50
	defaultDebounce = time.Second
)

// defaultIgnores are path fragments and suffixes excluded from the feed:
// VCS metadata, dependency directories and compiled artifacts.
var defaultIgnores = []string{
	".git", "__pycache__", ".env", "node_modules", "vendor",
	".venv", "venv", ".idea", ".vscode", "dist", "target",
	".pyc", ".pyo", ".so", ".dll", ".dylib", ".exe", ".o", ".a",
}

// Feed is a bounded, debounced log of recent activity events.
// Writers (the filesystem watcher) and readers (the focus monitor)
// may interleave freely; a mutex guards the ring.
type Feed struct {
	mu       sync.Mutex
	events   []Event
	lastSeen map[string]time.Time

	cap      int
	debounce time.Duration
	ignores  []string
}

func New() *Feed {
	return &Feed{
		lastSeen: make(map[string]time.Time),
		cap:      defaultCap,
		debounce: defaultDebounce,
		ignores:  defaultIgnores,
	}
}

// AddIgnores appends extra ignore patterns to the default set.
func (f *Feed) AddIgnores(patterns ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ignores = append(f.ignores, patterns...)
}

// Record stores an event unless it matches the ignore list or falls inside
// the per-source debounce window. A zero time means "now". Returns whether
// the event was stored.
func (f *Feed) Record(kind Kind, source, content string, at time.Time) bool {
	if at.IsZero() {
		at = time.Now()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ignored(source) {
		return false
	}

	if last, ok := f.lastSeen[source]; ok && at.Sub(last) < f.debounce {
		return false
	}
	f.lastSeen[source] = at

	f.events = append(f.events, Event{Kind: kind, Source: source, Content: content, Time: at})
	if len(f.events) > f.cap {
		f.events = f.events[len(f.events)-f.cap:]
	}
	return true
}

// Recent returns up to limit of the most recent events, oldest first.
func (f *Feed) Recent(limit int) []Event {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := len(f.events)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Event, n)
	copy(out, f.events[len(f.events)-n:])
	return out
}

// Len reports the number of buffered events.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

// Clear empties the feed and the debounce state.
func (f *Feed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = nil
	f.lastSeen = make(map[string]time.Time)
}

func (f *Feed) ignored(source string) bool {
	parts := strings.Split(source, "/")
	for _, pattern := range f.ignores {
		if strings.HasSuffix(source, pattern) {
			return true
		}
		for _, part := range parts {
			if part == pattern {
				return true
			}
		}
	}
	return false
}
