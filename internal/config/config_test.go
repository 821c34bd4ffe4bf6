package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"JARVISCTL_SHELL",
		"JARVISCTL_SSH",
		"JARVISCTL_LOG_LEVEL",
		"JARVISCTL_DEFAULT_AGENTS",
		"JARVISCTL_NO_COLOR",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Shell != "bash" || cfg.DefaultAgents != 1 || cfg.LogLevel != "info" {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.SSH != "" || cfg.NoColor {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Shell != "bash" {
		t.Fatalf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadFromTOML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
shell = "zsh"
default_agents = 4
ssh = "ops@build-host"
log_level = "debug"
no_color = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Shell != "zsh" || cfg.DefaultAgents != 4 || cfg.SSH != "ops@build-host" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.LogLevel != "debug" || !cfg.NoColor {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadMalformedTOML(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "shell = [not toml"))
	if err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Fatalf("err = %v, want parse error", err)
	}
}

func TestEnvOverridesTOML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
shell = "zsh"
default_agents = 4
`)
	t.Setenv("JARVISCTL_SHELL", "fish")
	t.Setenv("JARVISCTL_DEFAULT_AGENTS", "7")
	t.Setenv("JARVISCTL_SSH", "ops@edge")
	t.Setenv("JARVISCTL_NO_COLOR", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Shell != "fish" || cfg.DefaultAgents != 7 || cfg.SSH != "ops@edge" || !cfg.NoColor {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadClampsAgentCount(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, "default_agents = -3"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultAgents != 1 {
		t.Fatalf("DefaultAgents = %d, want 1", cfg.DefaultAgents)
	}

	// A junk env value is ignored, not an error.
	t.Setenv("JARVISCTL_DEFAULT_AGENTS", "lots")
	cfg, err = Load(writeConfig(t, "default_agents = 2"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultAgents != 2 {
		t.Fatalf("DefaultAgents = %d, want 2", cfg.DefaultAgents)
	}
}
