// Package watcher observes a workspace directory tree and pushes change
// events into the activity feed.
package watcher

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sadopc/focusflow/internal/feed"
)

// Watcher wraps fsnotify with recursive directory registration. Events are
// filtered and debounced by the feed itself; the watcher only translates
// filesystem notifications into feed records and captures file content for
// modifications.
type Watcher struct {
	activity *feed.Feed
	root     string

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	done    chan struct{}
	running bool
}

func New(activity *feed.Feed, root string) *Watcher {
	return &Watcher{activity: activity, root: root}
}

// Start begins watching the root directory tree. Directories created while
// watching are registered as they appear. No-op if already running.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	info, err := os.Stat(w.root)
	if err != nil {
		return fmt.Errorf("stat watch root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch root %s is not a directory", w.root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	if err := addRecursive(fsw, w.root); err != nil {
		fsw.Close()
		return err
	}

	w.fsw = fsw
	w.done = make(chan struct{})
	w.running = true
	go w.loop(fsw, w.done)

	slog.Info("watching workspace", "root", w.root)
	return nil
}

// Stop releases the underlying watcher. No-op if not running.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	w.fsw.Close()
	<-w.done
	w.fsw = nil
	w.running = false
}

// Running reports whether the watcher is active.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) loop(fsw *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	for {
		select {
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			w.handle(fsw, ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(fsw *fsnotify.Watcher, ev fsnotify.Event) {
	switch {
	case ev.Op.Has(fsnotify.Create):
		// New directories join the watch set so nested edits are seen.
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if !ignoredDir(ev.Name) {
				if err := addRecursive(fsw, ev.Name); err != nil {
					slog.Warn("could not watch new directory", "path", ev.Name, "error", err)
				}
			}
			return
		}
		w.activity.Record(feed.KindCreated, ev.Name, "", time.Now())

	case ev.Op.Has(fsnotify.Write):
		content := feed.ReadTail(ev.Name, feed.MaxContentChars)
		w.activity.Record(feed.KindModified, ev.Name, content, time.Now())

	case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
		w.activity.Record(feed.KindDeleted, ev.Name, "", time.Now())
	}
}

// addRecursive registers dir and every non-ignored subdirectory.
func addRecursive(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && ignoredDir(path) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

var ignoredDirNames = map[string]bool{
	".git": true, "__pycache__": true, "node_modules": true,
	"vendor": true, ".venv": true, "venv": true,
	".idea": true, ".vscode": true, "dist": true, "target": true,
}

// ignoredDir mirrors the feed's directory exclusions so we never register
// watches inside dependency or VCS trees.
func ignoredDir(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if ignoredDirNames[part] {
			return true
		}
	}
	return false
}
