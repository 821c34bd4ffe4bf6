package namespace

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ASoldo/jarvisctl/internal/tmux"
)

// ErrNoCommand rejects a spawn with an empty agent command.
var ErrNoCommand = errors.New("no agent command given")

// DefaultShell is the shell that wraps every agent command. A login shell so
// agents see the same PATH and rc environment an interactive user would.
const DefaultShell = "bash"

// SpawnOptions describes one namespace to create.
type SpawnOptions struct {
	Namespace  Name
	Agents     int      // number of agent windows, >= 1
	WorkingDir string   // optional cd before the command
	Command    []string // argv to run in every agent
	Shell      string   // wrapping shell, DefaultShell when empty
}

// SpawnResult summarizes a completed spawn.
type SpawnResult struct {
	Namespace Name    `json:"namespace"`
	Agents    []Agent `json:"agents"`
}

// Spawn creates a namespace with opts.Agents agent windows, each running the
// same command. Windows are created in index order: agent0 creates the
// detached session, agent1..N-1 are added as windows. The ownership marker is
// set immediately after the session exists, before any further window, so a
// session is discoverable as soon as it can be.
//
// The operation is best-effort, not atomic: the first failing tmux call
// aborts it, and agents already created stay on the server. The one
// compensation made is for a failed marker call: a session that exists but
// is unmarked would be permanently invisible to discovery, so Spawn kills it
// before reporting the error.
func Spawn(r tmux.Runner, log *slog.Logger, opts SpawnOptions) (*SpawnResult, error) {
	if opts.Agents < 1 {
		return nil, fmt.Errorf("agent count must be >= 1, got %d", opts.Agents)
	}
	if len(opts.Command) == 0 {
		return nil, ErrNoCommand
	}
	if _, err := ParseName(string(opts.Namespace)); err != nil {
		return nil, err
	}

	joined := tmux.ShellJoin(opts.Command)
	wrapped := wrapCommand(opts.Shell, opts.WorkingDir, joined)

	result := &SpawnResult{Namespace: opts.Namespace}
	for i := 0; i < opts.Agents; i++ {
		window := WindowName(i)

		var err error
		if i == 0 {
			err = r.Run("new-session", "-d", "-s", string(opts.Namespace), "-n", window, wrapped)
		} else {
			err = r.Run("new-window", "-t", string(opts.Namespace), "-n", window, wrapped)
		}
		if err != nil {
			return nil, fmt.Errorf("create %s in %s: %w", window, opts.Namespace, err)
		}

		if i == 0 {
			if err := Mark(r, opts.Namespace); err != nil {
				// An unmarked session can never be discovered again; kill it
				// rather than leave it orphaned. Best effort, the marker
				// failure is what gets reported.
				_ = Delete(r, opts.Namespace)
				return nil, fmt.Errorf("mark namespace %s: %w", opts.Namespace, err)
			}
		}

		result.Agents = append(result.Agents, Agent{
			Index:      i,
			Window:     window,
			Namespace:  opts.Namespace,
			Command:    joined,
			WorkingDir: opts.WorkingDir,
		})
		log.Info("started agent", "namespace", opts.Namespace, "window", window)
	}

	return result, nil
}

// wrapCommand builds the single tmux argument that runs the agent command
// under a login shell, optionally in a working directory. The shell payload
// is quoted as one word so embedded quotes and spaces survive the shell tmux
// itself uses to launch it.
func wrapCommand(shell, dir, joined string) string {
	if shell == "" {
		shell = DefaultShell
	}
	payload := joined
	if dir != "" {
		payload = fmt.Sprintf("cd %s && %s", tmux.ShellQuote(dir), joined)
	}
	return fmt.Sprintf("%s -lc %s", tmux.ShellQuote(shell), tmux.ShellQuote(payload))
}
