// Package config loads intelkit settings from TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vinayprograms/intelkit/errors"
	"github.com/vinayprograms/intelkit/logging"
)

// FileName is the configuration file looked up in the standard paths.
const FileName = "intelkit.toml"

// component is reported in initialization errors raised by this package.
const component = "config"

// Config holds error rendering and logging settings.
type Config struct {
	Errors  ErrorsConfig  `toml:"errors"`
	Logging LoggingConfig `toml:"logging"`
}

// ErrorsConfig controls how error payloads are rendered.
type ErrorsConfig struct {
	// Timestamp is "construction" (default) or "render".
	Timestamp string `toml:"timestamp"`

	// Timezone is an IANA zone name. Empty or "Local" uses the host zone.
	Timezone string `toml:"timezone"`

	// RedactCauses drops original_error from rendered details.
	RedactCauses bool `toml:"redact_causes"`
}

// LoggingConfig controls console logging.
type LoggingConfig struct {
	Level     string `toml:"level"`
	Component string `toml:"component"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Errors: ErrorsConfig{
			Timestamp: string(errors.StampConstruction),
			Timezone:  "Local",
		},
		Logging: LoggingConfig{
			Level:     string(logging.LevelInfo),
			Component: "intelkit",
		},
	}
}

// StandardPaths returns the standard config file locations in order of priority.
func StandardPaths() []string {
	paths := []string{FileName}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "intelkit", FileName))
	}
	return paths
}

// Load loads configuration from the first available standard location.
// Returns the defaults and an empty path when no file exists.
func Load() (*Config, string, error) {
	for _, path := range StandardPaths() {
		if _, err := os.Stat(path); err == nil {
			cfg, err := LoadFile(path)
			if err != nil {
				return nil, path, err
			}
			return cfg, path, nil
		}
	}
	return Default(), "", nil
}

// LoadFile loads configuration from a TOML file.
func LoadFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Initialization(
			fmt.Sprintf("failed to read config file %s", path), component,
			errors.WithCause(err))
	}
	return Parse(string(content))
}

// Parse parses configuration from TOML content. Keys that are not set keep
// their defaults. Unknown keys and invalid values are rejected.
func Parse(content string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(content, cfg)
	if err != nil {
		return nil, errors.Initialization("failed to parse config", component, errors.WithCause(err))
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Initialization(
			fmt.Sprintf("unknown config key %q", undecoded[0].String()), component)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every value can be applied.
func (c *Config) Validate() error {
	if _, err := errors.ParseStampMode(c.Errors.Timestamp); err != nil {
		return errors.Initialization("invalid errors.timestamp", component, errors.WithCause(err))
	}
	if _, err := c.location(); err != nil {
		return errors.Initialization("invalid errors.timezone", component, errors.WithCause(err))
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return errors.Initialization("invalid logging.level", component, errors.WithCause(err))
	}
	return nil
}

func (c *Config) location() (*time.Location, error) {
	switch c.Errors.Timezone {
	case "", "Local":
		return time.Local, nil
	default:
		return time.LoadLocation(c.Errors.Timezone)
	}
}

// Renderer builds the error renderer described by the configuration.
func (c *Config) Renderer() (errors.Renderer, error) {
	if err := c.Validate(); err != nil {
		return errors.Renderer{}, err
	}
	mode, _ := errors.ParseStampMode(c.Errors.Timestamp)
	loc, _ := c.location()
	return errors.Renderer{
		Stamp:        mode,
		Location:     loc,
		RedactCauses: c.Errors.RedactCauses,
	}, nil
}

// Logger builds a logger with the configured level and component.
func (c *Config) Logger() (*logging.Logger, error) {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, errors.Initialization("invalid logging.level", component, errors.WithCause(err))
	}
	logger := logging.New()
	logger.SetLevel(level)
	if c.Logging.Component != "" {
		logger = logger.WithComponent(c.Logging.Component)
	}
	return logger, nil
}
