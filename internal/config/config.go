// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/xonecas/inkline/internal/constants"
)

// Config is the root configuration structure.
type Config struct {
	Display DisplayConfig `toml:"display"`
}

// DisplayConfig holds terminal rendering settings.
type DisplayConfig struct {
	// Two56 enables the 256-color palette. Defaults to true.
	Two56 bool `toml:"two56"`

	// Normalize folds problematic wide script blocks (mathematical and
	// fraktur letters) to ASCII before styling. Defaults to true.
	Normalize bool `toml:"normalize"`

	// Width fixes the render width in columns; 0 autodetects from the
	// terminal.
	Width int `toml:"width"`
}

// Load reads configuration from a TOML file and applies environment
// variable overrides. An empty path yields the defaults so callers can run
// without a config file; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Display: DisplayConfig{Two56: true, Normalize: true},
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	if c.Display.Width < 0 {
		return fmt.Errorf("display.width=%d must not be negative", c.Display.Width)
	}
	if c.Display.Width > 0 && c.Display.Width <= constants.TabWidth {
		return fmt.Errorf("display.width=%d must exceed the tab width %d", c.Display.Width, constants.TabWidth)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"INKLINE_WIDTH", func(v string) {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				cfg.Display.Width = n
			}
		}},
		{"INKLINE_NO256", func(v string) {
			if v != "" && v != "0" && v != "false" {
				cfg.Display.Two56 = false
			}
		}},
	} {
		if v := os.Getenv(setter.env); v != "" {
			setter.apply(v)
		}
	}
}

// DataDir returns the path to the inkline data directory (~/.config/inkline).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "inkline"), nil
}
