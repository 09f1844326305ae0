package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd(app *AppContext, flags *rootFlags) *cobra.Command {
	var team string
	var version int

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved workflow's JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootstrap(app, flags); err != nil {
				return err
			}

			ctx, _ := app.CommandContext(cmd, "command.show")
			wf, err := app.Store.Load(ctx, team, args[0], version)
			if err != nil {
				return fmt.Errorf("loading workflow %s/%s: %w", team, args[0], err)
			}

			raw, err := json.MarshalIndent(wf, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling workflow %s: %w", wf.ID, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "default", "Team namespace the workflow belongs to")
	cmd.Flags().IntVar(&version, "version", 0, "Workflow version to show (0 = highest on disk)")

	return cmd
}
