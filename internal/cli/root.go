// Package cli wires the jarvisctl command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ASoldo/jarvisctl/internal/config"
	"github.com/ASoldo/jarvisctl/internal/output"
	"github.com/ASoldo/jarvisctl/internal/tmux"
)

var (
	cfgFile string
	cfg     *config.Config
	sshHost string

	// Global JSON output flag - inherited by all subcommands
	jsonOutput bool

	// Global color control flag - inherited by all subcommands
	noColor bool

	logLevel string
	log      *slog.Logger = slog.Default()

	// Build information - set via ldflags
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "jarvisctl",
	Short: "Orchestrate CLI/TUI workers with tmux",
	Long: `jarvisctl maps namespaces (tmux sessions) and agents (tmux windows)
onto a tmux server and drives long-running terminal workers inside them.

Quick Start:
  jarvisctl run --namespace build --agents 3 -- my-worker --verbose
  jarvisctl list                          # Show owned namespaces and agents
  jarvisctl attach --namespace build      # Attach to a namespace
  jarvisctl tell --namespace build --agent agent0 --file prompt.txt`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		if noColor {
			cfg.NoColor = true
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		level, err := parseLogLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(log)

		// Configure remote client if requested
		remote := cfg.SSH
		if sshHost != "" {
			remote = sshHost
		}
		if remote != "" {
			tmux.DefaultClient = tmux.NewClient(remote)
		}
		return nil
	},
}

func parseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q (use debug, info, warn, error)", s)
}

// formatter returns a formatter configured for the current output mode.
func formatter() *output.Formatter {
	format := output.FormatText
	if jsonOutput {
		format = output.FormatJSON
	}
	return output.NewFormatter(os.Stdout, format, cfg != nil && cfg.NoColor)
}

// client returns the tmux client selected by the global flags.
func client() *tmux.Client {
	return tmux.DefaultClient
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if jsonOutput {
			_ = formatter().JSON(output.NewError(err.Error()))
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter()
			if f.JSONEnabled() {
				return f.JSON(map[string]string{
					"version": Version,
					"commit":  Commit,
					"date":    Date,
				})
			}
			f.Textln("jarvisctl %s (commit %s, built %s)", Version, Commit, Date)
			return nil
		},
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ~/.config/jarvisctl/config.toml)")
	pf.StringVar(&sshHost, "ssh", "", "control tmux on a remote host (user@host)")
	pf.BoolVar(&jsonOutput, "json", false, "output machine-readable JSON")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newInspectCmd(),
		newRunCmd(),
		newAttachCmd(),
		newDeleteCmd(),
		newListCmd(),
		newExecCmd(),
		newTellCmd(),
		newApplyCmd(),
		newDashboardCmd(),
		newVersionCmd(),
	)
}
