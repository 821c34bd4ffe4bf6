// Package namespace implements the orchestration core of jarvisctl: the
// mapping of logical namespaces and agents onto tmux sessions and windows,
// and the protocols for creating, discovering, and driving them.
//
// All operations in this package are synchronous and sequential. Each tmux
// call blocks until the command exits, and the first failure aborts the
// operation in flight; state already applied to the tmux server stays as it
// is. The server is shared, externally mutable state with no transactions,
// so this package never caches what it has seen.
package namespace

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ASoldo/jarvisctl/internal/tmux"
)

// MarkerKey is the tmux session option jarvisctl sets on every session it
// creates. It is the only signal that distinguishes jarvisctl-managed
// sessions from unrelated ones on a shared server.
const MarkerKey = "@jarvisctl"

// markerOwned is the marker value meaning "managed by jarvisctl".
const markerOwned = "1"

// ErrInvalidName rejects namespace names tmux cannot address.
var ErrInvalidName = errors.New("invalid namespace name")

// Name is a validated namespace name. It doubles as the underlying tmux
// session name, so it must survive tmux target syntax: ':' and '.' separate
// window and pane in a target and would silently retarget commands.
type Name string

// ParseName validates s as a namespace name.
func ParseName(s string) (Name, error) {
	if s == "" {
		return "", fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if strings.ContainsAny(s, ":.") {
		return "", fmt.Errorf("%w %q: must not contain ':' or '.'", ErrInvalidName, s)
	}
	return Name(s), nil
}

// Agent is a single worker window inside a namespace. Agents are created
// only during spawn, index 0 creating the namespace itself, and die with it.
type Agent struct {
	Index      int    `json:"index"`
	Window     string `json:"window"`
	Namespace  Name   `json:"namespace"`
	Command    string `json:"command"`
	WorkingDir string `json:"working_dir,omitempty"`
}

// WindowName formats an agent index as its tmux window name.
func WindowName(index int) string {
	return fmt.Sprintf("agent%d", index)
}

// Target resolves a namespace and agent window to a tmux target.
func Target(ns Name, agent string) string {
	return fmt.Sprintf("%s:%s", ns, agent)
}

// Mark tags a session as managed by jarvisctl. Spawn calls this immediately
// after creating the session; on its own the session is invisible to
// unscoped discovery.
func Mark(r tmux.Runner, ns Name) error {
	return r.Run("set-option", "-t", string(ns), MarkerKey, markerOwned)
}

// IsOwned reports whether a session carries the jarvisctl marker. A session
// without the option, or no session at all, reads as an empty value and is
// simply not owned; only transport failures surface as errors.
func IsOwned(r tmux.Runner, ns Name) (bool, error) {
	out, err := r.Output("show-option", "-qv", "-t", string(ns), MarkerKey)
	if err != nil {
		var exitErr *tmux.ExitError
		if errors.As(err, &exitErr) || errors.Is(err, tmux.ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}
	return strings.TrimSpace(out) == markerOwned, nil
}

// Delete kills a namespace and every agent inside it.
func Delete(r tmux.Runner, ns Name) error {
	return r.Run("kill-session", "-t", string(ns))
}

// Attach attaches the caller's terminal to a namespace. It blocks until the
// user detaches.
func Attach(c *tmux.Client, ns Name) error {
	return c.Interactive("attach", "-t", string(ns))
}

// Exec selects an agent's window and attaches to its namespace.
func Exec(c *tmux.Client, ns Name, agent string) error {
	if err := c.Run("select-window", "-t", Target(ns, agent)); err != nil {
		return err
	}
	return Attach(c, ns)
}
