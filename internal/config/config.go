// Package config handles the XDG configuration directory, the config file,
// and environment overrides.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"todos/internal/logging"
)

const (
	// AppName is the application directory name.
	AppName = "todos"

	// ConfigFile is the optional TOML settings filename.
	ConfigFile = "config.toml"

	// DebugLogFile receives logs while the TUI owns the terminal.
	DebugLogFile = "debug.log"

	// DefaultAPIURL is the base URL of the task backend.
	DefaultAPIURL = "https://mate.academy/students-api"

	// DefaultErrorTTL is how long a notice stays visible before it expires.
	DefaultErrorTTL = 3 * time.Second
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the backend base URL, without the /todos suffix.
	APIURL string

	// UserID identifies whose tasks are fetched. 0 means not configured.
	UserID int

	// ErrorTTL is the lifetime of a user-facing notice.
	ErrorTTL time.Duration

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFormat is one of text, json, logfmt.
	LogFormat string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Logger is set by the dispatcher for the running command.
	Logger *log.Logger
}

// New creates a new Config with defaults and the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todos or $HOME/.config/todos.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:       dir,
		APIURL:    DefaultAPIURL,
		ErrorTTL:  DefaultErrorTTL,
		LogLevel:  "error",
		LogFormat: "text",
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to the TOML config file.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DebugLogPath returns the path of the TUI log file.
func (c *Config) DebugLogPath() string {
	return filepath.Join(c.Dir, DebugLogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasConfigFile checks if the config file exists.
func (c *Config) HasConfigFile() bool {
	_, err := os.Stat(c.FilePath())
	return err == nil
}

// HasUserID reports whether an owner identifier is configured.
func (c *Config) HasUserID() bool {
	return c.UserID > 0
}

// Log returns the configured logger, or one that discards everything.
func (c *Config) Log() *log.Logger {
	if c.Logger == nil {
		return logging.Discard()
	}
	return c.Logger
}
