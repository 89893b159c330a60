// Package config loads and validates the .targetorder/config.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/thruflo/targetorder/internal/logging"
	"gopkg.in/yaml.v3"
)

// Dir is the per-project settings directory.
const Dir = ".targetorder"

// Default values for Config.
const (
	DefaultGroupNameFormat = "Group %d"
	DefaultLogLevel        = "warn"
	DefaultProjectFile     = "project.yaml"
	DefaultHistoryFile     = ".targetorder/history.jsonl"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Groups:  Groups{NameFormat: DefaultGroupNameFormat},
		Log:     Log{Level: DefaultLogLevel},
		Project: Project{File: DefaultProjectFile},
		History: History{File: DefaultHistoryFile},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Path returns the config file location under basePath.
func Path(basePath string) string {
	return filepath.Join(basePath, Dir, "config.yaml")
}

// LoadConfig reads and parses the config file under basePath.
// If the file doesn't exist, returns default config.
// Applies defaults for any missing fields.
func LoadConfig(basePath string) (*Config, error) {
	data, err := os.ReadFile(Path(basePath))
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	format := cfg.Groups.NameFormat
	if strings.Count(format, "%d") != 1 || strings.Count(strings.ReplaceAll(format, "%%", ""), "%") != 1 {
		return ValidationError{Field: "groups.name_format", Message: "must contain exactly one %d and no other verbs"}
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return ValidationError{Field: "log.level", Message: "must be one of debug, info, warn, error"}
	}
	if strings.TrimSpace(cfg.Project.File) == "" {
		return ValidationError{Field: "project.file", Message: "required field is empty"}
	}
	return nil
}

// ProjectPath resolves the project snapshot path against basePath.
func (c *Config) ProjectPath(basePath string) string {
	if filepath.IsAbs(c.Project.File) {
		return c.Project.File
	}
	return filepath.Join(basePath, c.Project.File)
}

// HistoryPath resolves the history file against basePath. It returns ""
// when the history is disabled.
func (c *Config) HistoryPath(basePath string) string {
	if c.History.File == "" || filepath.IsAbs(c.History.File) {
		return c.History.File
	}
	return filepath.Join(basePath, c.History.File)
}

// LogLevel returns the configured level. Invalid values fall back to warn;
// LoadConfig rejects them before this is reached.
func (c *Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Log.Level)
	return level
}

// WriteConfig writes cfg to the config file under basePath, creating the
// settings directory if needed.
func WriteConfig(basePath string, cfg *Config) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(basePath, Dir), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(Path(basePath), data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
