package namespace

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ASoldo/jarvisctl/internal/tmux"
)

// Manifest is a declarative description of namespaces to spawn, loaded from
// YAML. It is sugar over the spawn protocol: each entry runs through the same
// ordered, best-effort sequence as `run`, and the first failing namespace
// aborts the rest.
type Manifest struct {
	Namespaces []ManifestEntry `yaml:"namespaces"`
}

// ManifestEntry describes one namespace.
type ManifestEntry struct {
	Name             string   `yaml:"name"`
	Agents           int      `yaml:"agents"`
	WorkingDirectory string   `yaml:"working_directory"`
	Command          []string `yaml:"command"`
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(m.Namespaces) == 0 {
		return nil, fmt.Errorf("%s: manifest names no namespaces", path)
	}

	for i := range m.Namespaces {
		e := &m.Namespaces[i]
		if _, err := ParseName(e.Name); err != nil {
			return nil, fmt.Errorf("%s: namespace %d: %w", path, i, err)
		}
		if len(e.Command) == 0 {
			return nil, fmt.Errorf("%s: namespace %q: %w", path, e.Name, ErrNoCommand)
		}
		if e.Agents == 0 {
			e.Agents = 1
		}
	}
	return &m, nil
}

// Apply spawns every namespace in the manifest, in order, stopping at the
// first failure. Namespaces already spawned stay up.
func (m *Manifest) Apply(r tmux.Runner, log *slog.Logger) ([]*SpawnResult, error) {
	var results []*SpawnResult
	for _, e := range m.Namespaces {
		res, err := Spawn(r, log, SpawnOptions{
			Namespace:  Name(e.Name),
			Agents:     e.Agents,
			WorkingDir: e.WorkingDirectory,
			Command:    e.Command,
		})
		if err != nil {
			return results, fmt.Errorf("namespace %q: %w", e.Name, err)
		}
		results = append(results, res)
	}
	return results, nil
}
