// Package config loads jarvisctl configuration from TOML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration.
type Config struct {
	Shell         string `toml:"shell"`          // shell wrapping agent commands
	DefaultAgents int    `toml:"default_agents"` // agents per namespace when --agents is omitted
	SSH           string `toml:"ssh"`            // remote tmux host ("user@host"), empty for local
	LogLevel      string `toml:"log_level"`      // debug, info, warn, error
	NoColor       bool   `toml:"no_color"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Shell:         "bash",
		DefaultAgents: 1,
		LogLevel:      "info",
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "jarvisctl", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "jarvisctl", "config.toml")
}

// Load reads configuration from path (DefaultPath when empty). Precedence is
// env > TOML > defaults. A missing file is fine; a malformed one is not.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if shell := os.Getenv("JARVISCTL_SHELL"); shell != "" {
		cfg.Shell = shell
	}
	if ssh := os.Getenv("JARVISCTL_SSH"); ssh != "" {
		cfg.SSH = ssh
	}
	if level := os.Getenv("JARVISCTL_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if agents := os.Getenv("JARVISCTL_DEFAULT_AGENTS"); agents != "" {
		if n, err := strconv.Atoi(agents); err == nil && n > 0 {
			cfg.DefaultAgents = n
		}
	}
	if noColor := os.Getenv("JARVISCTL_NO_COLOR"); noColor != "" {
		cfg.NoColor = noColor == "1" || noColor == "true"
	}

	if cfg.DefaultAgents < 1 {
		cfg.DefaultAgents = 1
	}
	return cfg, nil
}
