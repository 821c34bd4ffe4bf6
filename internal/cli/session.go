package cli

import (
	"github.com/spf13/cobra"

	"github.com/ASoldo/jarvisctl/internal/namespace"
)

func newAttachCmd() *cobra.Command {
	var nsFlag string

	cmd := &cobra.Command{
		Use:   "attach --namespace NAME",
		Short: "Attach to a running namespace",
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := namespace.ParseName(nsFlag)
			if err != nil {
				return err
			}
			return namespace.Attach(client(), ns)
		},
	}

	cmd.Flags().StringVar(&nsFlag, "namespace", "", "namespace to attach to")
	_ = cmd.MarkFlagRequired("namespace")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	var nsFlag string

	cmd := &cobra.Command{
		Use:   "delete --namespace NAME",
		Short: "Kill a namespace and every agent in it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := namespace.ParseName(nsFlag)
			if err != nil {
				return err
			}
			if err := namespace.Delete(client(), ns); err != nil {
				return err
			}

			f := formatter()
			if f.JSONEnabled() {
				return f.JSON(map[string]any{"success": true, "namespace": ns})
			}
			f.Success("Deleted namespace '%s'", ns)
			return nil
		},
	}

	cmd.Flags().StringVar(&nsFlag, "namespace", "", "namespace to delete")
	_ = cmd.MarkFlagRequired("namespace")
	return cmd
}

func newExecCmd() *cobra.Command {
	var nsFlag string
	var agent string

	cmd := &cobra.Command{
		Use:   "exec --namespace NAME --agent AGENT",
		Short: "Attach to a specific agent in a namespace",
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := namespace.ParseName(nsFlag)
			if err != nil {
				return err
			}
			return namespace.Exec(client(), ns, agent)
		},
	}

	cmd.Flags().StringVar(&nsFlag, "namespace", "", "namespace of the agent")
	cmd.Flags().StringVar(&agent, "agent", "", "agent window name (e.g. agent0)")
	_ = cmd.MarkFlagRequired("namespace")
	_ = cmd.MarkFlagRequired("agent")
	return cmd
}
