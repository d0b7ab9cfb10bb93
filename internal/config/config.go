// Package config handles configuration loading and defaults.
//
// Values are resolved in layers, later layers overriding earlier ones:
// built-in defaults, then the user config file, then the project config
// file, then environment variables, then CLI flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultTasksFile = "tasks.json"
	DefaultPriority  = "medium"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for the tracker.
type Config struct {
	// TasksFile is the path of the JSON file holding the task list.
	TasksFile string `toml:"tasks_file"`

	// DefaultPriority is assigned to new tasks when no priority flag is
	// given.
	DefaultPriority string `toml:"default_priority"`

	// DefaultSort, when set, orders list output if no --sort flag is
	// given. DefaultSortDesc flips the direction.
	DefaultSort     string `toml:"default_sort"`
	DefaultSortDesc bool   `toml:"default_sort_desc"`

	// Logging.
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// NoColor disables styled output in the shell and tables.
	NoColor bool `toml:"no_color"`
}

// Load resolves the configuration. Flags are registered on fs, which the
// caller parses exactly once through this function.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}
	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.TasksFile = DefaultTasksFile
	cfg.DefaultPriority = DefaultPriority
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

func loadConfigFile(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return err
	}
	return nil
}

// findUserConfigFile looks for a per-user config file, preferring the
// XDG location over the home-directory dotfile.
func findUserConfigFile() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}

	candidate := filepath.Join(configDir, "tasktracker", "config.toml")
	if fileExists(candidate) {
		return candidate
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	candidate = filepath.Join(home, ".tasktracker.toml")
	if fileExists(candidate) {
		return candidate
	}
	return ""
}

// findProjectConfigFile looks for a config file in the working
// directory.
func findProjectConfigFile() string {
	if fileExists(".tasktracker.toml") {
		return ".tasktracker.toml"
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKTRACKER_FILE"); v != "" {
		cfg.TasksFile = v
	}
	if v := os.Getenv("TASKTRACKER_DEFAULT_PRIORITY"); v != "" {
		cfg.DefaultPriority = v
	}
	if v := os.Getenv("TASKTRACKER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKTRACKER_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TASKTRACKER_NO_COLOR"); v != "" {
		cfg.NoColor = v == "1" || v == "true"
	}
	// NO_COLOR is the conventional cross-tool opt-out.
	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}
}

func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	fs.StringVar(&cfg.TasksFile, "file", cfg.TasksFile, "Path to the tasks file")
	fs.StringVar(&cfg.TasksFile, "f", cfg.TasksFile, "Path to the tasks file (shorthand)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable styled output")
	return fs.Parse(args)
}
