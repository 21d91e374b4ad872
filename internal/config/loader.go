package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// searchPaths returns the ordered list of config file locations to try.
func searchPaths() []string {
	var paths []string

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "focusflow", "focusflow.yaml"))
	}

	paths = append(paths, "focusflow.yaml")

	if envPath := os.Getenv("FOCUSFLOW_CONFIG"); envPath != "" {
		paths = append(paths, envPath)
	}

	return paths
}

// Load reads configuration from YAML files and environment variables.
// Files are loaded in order (each overrides the previous):
// ~/.config/focusflow/focusflow.yaml < ./focusflow.yaml < $FOCUSFLOW_CONFIG
func Load() (*Config, error) {
	cfg := Defaults()

	for _, path := range searchPaths() {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	cfg := Defaults()

	if err := loadFile(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables have higher priority than YAML config values. The provider key
// falls back to the conventional vendor variables so a plain
// OPENAI_API_KEY / ANTHROPIC_API_KEY setup works with zero config.
func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("FOCUSFLOW_API_KEY"); key != "" {
		cfg.Provider.APIKey = key
	}
	if cfg.Provider.APIKey == "" {
		switch cfg.Provider.Name {
		case "openai":
			cfg.Provider.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic":
			cfg.Provider.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	slog.Debug("loading config file", "path", path)

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func validate(cfg *Config) error {
	switch cfg.Provider.Name {
	case "openai", "anthropic", "":
	default:
		return fmt.Errorf("provider.name must be openai or anthropic, got %q", cfg.Provider.Name)
	}

	if cfg.Monitor.IntervalSeconds < 1 {
		return fmt.Errorf("monitor.interval_seconds must be at least 1, got %d", cfg.Monitor.IntervalSeconds)
	}

	if cfg.Pomodoro.WorkMinutes < 1 || cfg.Pomodoro.BreakMinutes < 1 {
		return fmt.Errorf("pomodoro durations must be at least 1 minute")
	}

	cfg.Database.Path = ExpandHome(cfg.Database.Path)
	cfg.Monitor.WatchPath = ExpandHome(cfg.Monitor.WatchPath)

	return nil
}
