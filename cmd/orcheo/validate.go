package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wiredwork/orcheo/internal/domain/workflow"
)

func newValidateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate a workflow JSON file without executing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger := app.CommandContext(cmd, "command.validate")

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			var wf workflow.Workflow
			if err := json.Unmarshal(raw, &wf); err != nil {
				return fmt.Errorf("%s is not valid workflow JSON: %w", args[0], err)
			}

			if err := wf.Validate(); err != nil {
				return fmt.Errorf("%s failed validation: %w", args[0], err)
			}

			if logger != nil {
				logger.Info(cmd.Context(), "workflow is valid", "id", wf.ID, "nodes", len(wf.Nodes))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (%d nodes)\n", args[0], len(wf.Nodes))
			return nil
		},
	}

	return cmd
}
