package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ASoldo/jarvisctl/internal/namespace"
	"github.com/ASoldo/jarvisctl/internal/output"
)

func newRunCmd() *cobra.Command {
	var nsFlag string
	var agents int
	var workingDir string

	cmd := &cobra.Command{
		Use:   "run --namespace NAME [--agents N] [--working-directory DIR] -- COMMAND...",
		Short: "Run a worker in a new namespace",
		Long: `Create a new namespace (a detached tmux session) and start N agents in
it, each running the same command under a login shell. The namespace is
tagged as jarvisctl-owned so 'list' can find it later.

Creation is sequential and best-effort: if a step fails, agents already
created stay on the server.

Examples:
  jarvisctl run --namespace build -- make watch
  jarvisctl run --namespace crawl --agents 4 --working-directory /srv/crawl -- ./crawler --poll`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w (pass it after --)", namespace.ErrNoCommand)
			}

			ns, err := namespace.ParseName(nsFlag)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("agents") {
				agents = cfg.DefaultAgents
			}

			res, err := namespace.Spawn(client(), log, namespace.SpawnOptions{
				Namespace:  ns,
				Agents:     agents,
				WorkingDir: workingDir,
				Command:    args,
				Shell:      cfg.Shell,
			})
			if err != nil {
				return err
			}

			f := formatter()
			if f.JSONEnabled() {
				return f.JSON(res)
			}
			f.Success("Started %d %s in '%s'. Attach: jarvisctl attach --namespace %s",
				len(res.Agents), output.Pluralize(len(res.Agents), "agent", "agents"), ns, ns)
			return nil
		},
	}

	cmd.Flags().StringVar(&nsFlag, "namespace", "", "namespace (tmux session) name")
	cmd.Flags().IntVar(&agents, "agents", 1, "number of agents (windows)")
	cmd.Flags().StringVar(&workingDir, "working-directory", "", "working directory for each agent")
	_ = cmd.MarkFlagRequired("namespace")
	_ = cmd.MarkFlagDirname("working-directory")

	return cmd
}
