package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/focusflow/internal/config"
	"github.com/sadopc/focusflow/internal/feed"
	"github.com/sadopc/focusflow/internal/monitor"
	"github.com/sadopc/focusflow/internal/store"
	"github.com/sadopc/focusflow/internal/verdict"
)

var version = "0.1.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "focusflow",
	Short: "FocusFlow - an AI accountability partner for deep work",
	Long: `FocusFlow keeps you honest about the task you said you would work on.
It tracks your task list, watches workspace activity, asks an LLM whether the
activity matches the active task and nags you when you drift.

Run without arguments to open the interactive TUI.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the FocusFlow version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("focusflow %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (default: search standard locations)")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// setupLogging points slog at w with the configured level.
func setupLogging(cfg *config.Config, w io.Writer) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func openStore(cfg *config.Config) store.Store {
	if cfg.Database.InMemory {
		return store.NewMemory()
	}
	return store.Open(cfg.Database.Path)
}

// newProvider builds the verdict backend, or returns nil when no API key is
// configured. A nil provider leaves the monitor reporting that the agent is
// not initialized instead of failing checks.
func newProvider(cfg *config.Config) (verdict.Provider, error) {
	if cfg.Provider.APIKey == "" {
		return nil, nil
	}
	return verdict.NewAgent(verdict.AgentOptions{
		Provider: cfg.Provider.Name,
		APIKey:   cfg.Provider.APIKey,
		Model:    cfg.Provider.Model,
		BaseURL:  cfg.Provider.BaseURL,
		Timeout:  time.Duration(cfg.Provider.TimeoutSeconds) * time.Second,
	})
}

// buildMonitor assembles the activity feed and focus monitor from config.
func buildMonitor(cfg *config.Config, s store.Store) (*monitor.Monitor, *feed.Feed, error) {
	activity := feed.New()
	activity.AddIgnores(cfg.Monitor.Ignore...)

	provider, err := newProvider(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("configure provider: %w", err)
	}

	mon := monitor.New(s, activity, provider)
	mon.SetTextMode(cfg.Monitor.TextMode)
	return mon, activity, nil
}

func checkInterval(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Monitor.IntervalSeconds) * time.Second
}

// logFilePath returns a log destination that will not fight the TUI for
// the terminal.
func logFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "focusflow", "focusflow.log")
}
