package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ASoldo/jarvisctl/internal/namespace"
)

func newListCmd() *cobra.Command {
	var nsFlag string

	cmd := &cobra.Command{
		Use:   "list [--namespace NAME]",
		Short: "List owned namespaces and their agents",
		Long: `Without --namespace, enumerate every session on the server, keep the ones
tagged as jarvisctl-owned, and show a summary plus agent listing for each.

With --namespace, list that namespace's agents directly. Naming a namespace
bypasses the ownership filter.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter()

			if nsFlag != "" {
				ns, err := namespace.ParseName(nsFlag)
				if err != nil {
					return err
				}
				windows, err := namespace.ListAgents(client(), ns)
				if err != nil {
					return err
				}
				if f.JSONEnabled() {
					return f.JSON(map[string]any{"namespace": ns, "windows": windows})
				}
				f.Textln("Agents in '%s':", ns)
				f.Textln("%s", windows)
				return nil
			}

			listing, err := namespace.List(client())
			if err != nil {
				return err
			}
			if f.JSONEnabled() {
				return f.JSON(listing)
			}

			f.Header("NAMESPACES:")
			if len(listing.Namespaces) == 0 {
				f.Textln("(none)")
				f.Header("AGENTS:")
				f.Textln("(none)")
				return nil
			}
			for _, s := range listing.Namespaces {
				f.Textln("%s", strings.TrimSpace(s.Info))
			}

			f.Line()
			f.Header("AGENTS:")
			for _, s := range listing.Namespaces {
				f.Textln("%s", s.Windows)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&nsFlag, "namespace", "", "list agents of one namespace only")
	return cmd
}
