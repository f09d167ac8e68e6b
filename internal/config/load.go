package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Environment variables that override the config file.
const (
	EnvAPIURL   = "TODOS_API_URL"
	EnvUserID   = "TODOS_USER_ID"
	EnvLogLevel = "TODOS_LOG_LEVEL"
)

// fileConfig mirrors config.toml.
type fileConfig struct {
	APIURL    string `toml:"api_url"`
	UserID    int    `toml:"user_id"`
	ErrorTTL  string `toml:"error_ttl"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// Load builds a Config in priority order:
// 1. Defaults
// 2. config.toml in the config directory (optional)
// 3. Environment variables
// Flags are applied by the caller on the returned Config.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	if err := loadConfigFile(cfg, cfg.FilePath()); err != nil {
		return nil, fmt.Errorf("loading config file %s: %w", cfg.FilePath(), err)
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadConfigFile(cfg *Config, path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	if fc.APIURL != "" {
		cfg.APIURL = fc.APIURL
	}
	if fc.UserID < 0 {
		return fmt.Errorf("invalid user_id: %d", fc.UserID)
	}
	if fc.UserID != 0 {
		cfg.UserID = fc.UserID
	}
	if fc.ErrorTTL != "" {
		ttl, err := time.ParseDuration(fc.ErrorTTL)
		if err != nil {
			return fmt.Errorf("invalid error_ttl: %w", err)
		}
		if ttl <= 0 {
			return fmt.Errorf("invalid error_ttl: must be positive")
		}
		cfg.ErrorTTL = ttl
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(fc.LogLevel)
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = strings.ToLower(fc.LogFormat)
	}
	return nil
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv(EnvUserID); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id < 0 {
			return fmt.Errorf("invalid %s: %s", EnvUserID, v)
		}
		cfg.UserID = id
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	return nil
}

// Save writes the persistent settings to config.toml.
func (c *Config) Save() error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.OpenFile(c.FilePath(), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	fc := fileConfig{
		APIURL:    c.APIURL,
		UserID:    c.UserID,
		ErrorTTL:  c.ErrorTTL.String(),
		LogLevel:  c.LogLevel,
		LogFormat: c.LogFormat,
	}
	if err := toml.NewEncoder(f).Encode(fc); err != nil {
		return fmt.Errorf("encode config file: %w", err)
	}
	return nil
}
