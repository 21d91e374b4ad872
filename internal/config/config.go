// Package config loads FocusFlow configuration from YAML files and
// environment variables.
package config

// Config is the root configuration for FocusFlow.
type Config struct {
	Database Database `yaml:"database"`
	Provider Provider `yaml:"provider"`
	Monitor  Monitor  `yaml:"monitor"`
	Pomodoro Pomodoro `yaml:"pomodoro"`
	LogLevel string   `yaml:"log_level"`
}

type Database struct {
	Path     string `yaml:"path"`
	InMemory bool   `yaml:"in_memory"`
}

// Provider selects and configures the verdict backend.
type Provider struct {
	Name           string `yaml:"name"` // "openai" or "anthropic"
	Model          string `yaml:"model"`
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type Monitor struct {
	WatchPath       string   `yaml:"watch_path"`
	IntervalSeconds int      `yaml:"interval_seconds"`
	TextMode        bool     `yaml:"text_mode"`
	Ignore          []string `yaml:"ignore"`
}

type Pomodoro struct {
	WorkMinutes  int `yaml:"work_minutes"`
	BreakMinutes int `yaml:"break_minutes"`
}

// Defaults returns a Config with sensible default values.
func Defaults() *Config {
	return &Config{
		Database: Database{
			Path: "~/.config/focusflow/focusflow.db",
		},
		Provider: Provider{
			Name:           "openai",
			TimeoutSeconds: 15,
		},
		Monitor: Monitor{
			WatchPath:       ".",
			IntervalSeconds: 60,
		},
		Pomodoro: Pomodoro{
			WorkMinutes:  25,
			BreakMinutes: 5,
		},
		LogLevel: "info",
	}
}
