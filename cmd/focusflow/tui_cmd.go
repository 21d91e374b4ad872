package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/focusflow/internal/tui"
	"github.com/sadopc/focusflow/internal/watcher"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal UI",
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal; logs go to a file instead of stderr.
	logSink := io.Writer(io.Discard)
	if path := logFilePath(); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				defer f.Close()
				logSink = f
			}
		}
	}
	setupLogging(cfg, logSink)

	s := openStore(cfg)
	defer s.Close()

	mon, activity, err := buildMonitor(cfg, s)
	if err != nil {
		return err
	}

	watching := false
	if !cfg.Monitor.TextMode {
		w := watcher.New(activity, cfg.Monitor.WatchPath)
		if err := w.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: file watching disabled: %v\n", err)
		} else {
			watching = true
			defer w.Stop()
		}
	}

	app := tui.NewApp(tui.Options{
		Store:         s,
		Monitor:       mon,
		Watching:      watching,
		CheckInterval: checkInterval(cfg),
		WorkMinutes:   cfg.Pomodoro.WorkMinutes,
		BreakMinutes:  cfg.Pomodoro.BreakMinutes,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
