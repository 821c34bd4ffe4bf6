package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ASoldo/jarvisctl/internal/namespace"
	"github.com/ASoldo/jarvisctl/internal/tui/dashboard"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Open an interactive namespace dashboard",
		Long: `Show owned namespaces in a live view that refreshes periodically.
Press enter to attach to the highlighted namespace, d to delete it,
q to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client().EnsureInstalled(); err != nil {
				return err
			}

			model := dashboard.New(client(), log)
			p := tea.NewProgram(model, tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("dashboard: %w", err)
			}

			m, ok := final.(dashboard.Model)
			if !ok || m.Selected() == "" {
				return nil
			}
			return namespace.Attach(client(), m.Selected())
		},
	}
}
