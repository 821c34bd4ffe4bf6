// Package tmux wraps the tmux binary, which jarvisctl uses as its control
// plane. Every operation shells out to tmux (optionally over ssh), waits for
// it to exit, and reports the result; there are no retries and no local state.
package tmux

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Common errors detected from tmux stderr.
var (
	ErrNoServer        = errors.New("no tmux server running")
	ErrSessionNotFound = errors.New("session not found")
)

// ExitError reports a tmux command that ran but exited non-zero.
type ExitError struct {
	Code    int
	Command string
	Stderr  string
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("tmux %s: exit status %d: %s", e.Command, e.Code, e.Stderr)
	}
	return fmt.Sprintf("tmux %s: exit status %d", e.Command, e.Code)
}

// Runner is the subset of Client the orchestration protocols need. It exists
// so protocol code can be exercised against a recording fake.
type Runner interface {
	// Run executes a tmux command, discarding stdout.
	Run(args ...string) error
	// Output executes a tmux command and returns its trimmed stdout.
	Output(args ...string) (string, error)
}

// Client handles tmux operations, optionally on a remote host.
type Client struct {
	Remote string // "user@host" or empty for local
}

// NewClient creates a new tmux client.
func NewClient(remote string) *Client {
	return &Client{Remote: remote}
}

// DefaultClient is the default local client.
var DefaultClient = NewClient("")

// Output executes a tmux command and returns stdout as text. Invalid UTF-8
// in the output is tolerated; tmux output is treated as opaque text.
func (c *Client) Output(args ...string) (string, error) {
	cmd := c.command(args)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", classify(err, stderr.String(), args)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Run executes a tmux command, ignoring output.
func (c *Client) Run(args ...string) error {
	_, err := c.Output(args...)
	return err
}

// Interactive executes a tmux command with the caller's terminal attached.
// Used for attach-style commands that take over the terminal until the user
// detaches.
func (c *Client) Interactive(args ...string) error {
	var cmd *exec.Cmd
	if c.Remote == "" {
		cmd = exec.Command("tmux", args...)
	} else {
		// -t forces a pty so tmux can attach over ssh.
		sshArgs := append([]string{"-t", c.Remote, "tmux"}, args...)
		cmd = exec.Command("ssh", sshArgs...)
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return classify(err, "", args)
	}
	return nil
}

// IsInstalled checks if tmux is available on the target host.
func (c *Client) IsInstalled() bool {
	if c.Remote == "" {
		_, err := exec.LookPath("tmux")
		return err == nil
	}
	return c.Run("-V") == nil
}

// EnsureInstalled returns an error if tmux is not available.
func (c *Client) EnsureInstalled() error {
	if !c.IsInstalled() {
		return errors.New("tmux is not installed. Install it with: brew install tmux (macOS) or apt install tmux (Linux)")
	}
	return nil
}

// command builds the exec.Cmd for args, local or over ssh.
func (c *Client) command(args []string) *exec.Cmd {
	if c.Remote == "" {
		return exec.Command("tmux", args...)
	}
	// ssh concatenates its arguments with spaces on the remote side.
	// Simple tmux commands survive this; arguments that carry whole shell
	// commands must already be quoted by the caller (see ShellQuote).
	sshArgs := append([]string{c.Remote, "tmux"}, args...)
	return exec.Command("ssh", sshArgs...)
}

// classify turns an exec error into this package's error taxonomy. A command
// that could not be launched at all is a transport failure and is wrapped
// as-is; a command that ran and exited non-zero becomes an *ExitError, or one
// of the sentinel errors when stderr identifies a known condition.
func classify(err error, stderr string, args []string) error {
	name := "tmux"
	if len(args) > 0 {
		name = args[0]
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return fmt.Errorf("tmux %s: %w", name, err)
	}

	stderr = strings.TrimSpace(stderr)
	switch {
	case strings.Contains(stderr, "no server running"),
		strings.Contains(stderr, "error connecting to"),
		strings.Contains(stderr, "server exited unexpectedly"):
		return ErrNoServer
	case strings.Contains(stderr, "session not found"),
		strings.Contains(stderr, "can't find session"):
		return fmt.Errorf("tmux %s: %w", name, ErrSessionNotFound)
	}

	return &ExitError{
		Code:    exitErr.ExitCode(),
		Command: name,
		Stderr:  stderr,
	}
}
