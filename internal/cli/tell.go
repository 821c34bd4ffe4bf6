package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ASoldo/jarvisctl/internal/namespace"
)

func newTellCmd() *cobra.Command {
	var nsFlag string
	var agent string
	var file string
	var watch bool

	cmd := &cobra.Command{
		Use:   "tell --namespace NAME --agent AGENT --file PATH",
		Short: "Send file contents to a running agent's input",
		Long: `Type the contents of a file into an agent as if entered at its terminal.
Each line is followed by a line feed (newline within the input), and a
single Enter after the last line submits the whole message.

With --watch, the file is re-sent every time it changes, until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := namespace.ParseName(nsFlag)
			if err != nil {
				return err
			}
			opts := namespace.TellOptions{Namespace: ns, Agent: agent, File: file}

			if watch {
				ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				err := namespace.Watch(ctx, client(), log, opts)
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}

			if err := namespace.Tell(client(), log, opts); err != nil {
				return err
			}
			f := formatter()
			if f.JSONEnabled() {
				return f.JSON(map[string]any{"success": true, "namespace": ns, "agent": agent, "file": file})
			}
			f.Success("Sent '%s' to '%s':'%s'", file, ns, agent)
			return nil
		},
	}

	cmd.Flags().StringVar(&nsFlag, "namespace", "", "namespace of the agent")
	cmd.Flags().StringVar(&agent, "agent", "", "agent window name (e.g. agent0)")
	cmd.Flags().StringVar(&file, "file", "", "file whose contents to send")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep re-sending the file on change")
	_ = cmd.MarkFlagRequired("namespace")
	_ = cmd.MarkFlagRequired("agent")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagFilename("file")
	return cmd
}
