package namespace

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/ASoldo/jarvisctl/internal/tmux"
)

// TellOptions addresses one agent and the file to inject into it.
type TellOptions struct {
	Namespace Name
	Agent     string // window name, e.g. "agent0"
	File      string
}

// Tell types the contents of a file into a running agent. Each line is sent
// as literal keys followed by a line feed (C-j), which inserts a newline in
// the agent's input without submitting it; a single Enter after the last
// line is what makes the agent act on the accumulated input. TUI agents
// distinguish the two, so a multi-line message arrives as one message.
//
// The file is read in full before any key is sent; an unreadable file aborts
// the operation with no host interaction. A tmux failure mid-stream aborts
// immediately, leaving the lines already typed.
func Tell(r tmux.Runner, log *slog.Logger, opts TellOptions) error {
	data, err := os.ReadFile(opts.File)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.File, err)
	}

	target := Target(opts.Namespace, opts.Agent)
	lines := splitLines(string(data))

	for _, line := range lines {
		if err := r.Run("send-keys", "-t", target, "--", line, "C-j"); err != nil {
			return fmt.Errorf("send line to %s: %w", target, err)
		}
	}
	if err := r.Run("send-keys", "-t", target, "Enter"); err != nil {
		return fmt.Errorf("submit to %s: %w", target, err)
	}

	log.Info("injected file", "file", opts.File, "target", target, "lines", len(lines))
	return nil
}

// Watch injects the file once, then keeps re-injecting it every time it is
// written, until ctx is cancelled. The parent directory is watched rather
// than the file itself so editors that replace the file on save (rename over
// it) keep being tracked.
func Watch(ctx context.Context, r tmux.Runner, log *slog.Logger, opts TellOptions) error {
	if err := Tell(r, log, opts); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(opts.File)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := Tell(r, log, opts); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", opts.File, err)
		}
	}
}

// splitLines splits text into lines, normalizing CRLF and dropping the
// trailing newline so it does not produce a spurious empty final line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
