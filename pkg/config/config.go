// Package config loads the kazama command line defaults from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultRole is the chat role used when none is configured.
const DefaultRole = "user"

// Config holds the settings a user may persist between invocations.
type Config struct {
	Debug   bool   `toml:"debug"`
	Timeout string `toml:"timeout"` // Go duration, e.g. "90s"; empty means no deadline
	Model   string `toml:"model"`   // Used when a command gets no --model
	Role    string `toml:"role"`
	Render  bool   `toml:"render"` // Render chat replies as markdown on terminals
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Role: DefaultRole,
	}
}

// Dir returns the kazama configuration directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".kazama"), nil
}

// Path returns the default configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the configuration. An explicit path must exist; when path is
// empty the default file is read if present and defaults are used otherwise.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFromPath(path)
	}

	defaultPath, err := Path()
	if err != nil {
		return Default(), nil
	}

	cfg, err := LoadFromPath(defaultPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFromPath reads and validates the TOML file at path.
func LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("could not read config %s: %w", path, err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML file %s: %w", path, err)
	}
	if cfg.Role == "" {
		cfg.Role = DefaultRole
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that cannot be checked by decoding alone.
func (c *Config) Validate() error {
	_, err := c.TimeoutDuration()
	return err
}

// TimeoutDuration parses Timeout. Zero means no deadline.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout: must not be negative, got %s", c.Timeout)
	}
	return d, nil
}
