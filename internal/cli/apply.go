package cli

import (
	"github.com/spf13/cobra"

	"github.com/ASoldo/jarvisctl/internal/namespace"
	"github.com/ASoldo/jarvisctl/internal/output"
)

func newApplyCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "apply --file MANIFEST",
		Short: "Spawn namespaces from a YAML manifest",
		Long: `Spawn one or more namespaces described declaratively in a YAML manifest:

  namespaces:
    - name: build
      agents: 2
      working_directory: /srv/build
      command: ["make", "watch"]
    - name: crawl
      command: ["./crawler", "--poll"]

Namespaces are spawned in manifest order; the first failure stops the rest.
Namespaces already spawned stay up.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := namespace.LoadManifest(file)
			if err != nil {
				return err
			}

			results, applyErr := m.Apply(client(), log)

			f := formatter()
			if f.JSONEnabled() {
				payload := map[string]any{"success": applyErr == nil, "spawned": results}
				if applyErr != nil {
					payload["error"] = applyErr.Error()
				}
				if err := f.JSON(payload); err != nil {
					return err
				}
				return applyErr
			}

			for _, res := range results {
				f.Success("Started %d %s in '%s'",
					len(res.Agents), output.Pluralize(len(res.Agents), "agent", "agents"), res.Namespace)
			}
			return applyErr
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "manifest file to apply")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagFilename("file", "yaml", "yml")
	return cmd
}
