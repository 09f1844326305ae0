package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(app *AppContext, flags *rootFlags) *cobra.Command {
	var team string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved workflows for a team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootstrap(app, flags); err != nil {
				return err
			}

			ctx, _ := app.CommandContext(cmd, "command.list")
			workflows, err := app.Store.ListTeam(ctx, team)
			if err != nil {
				return fmt.Errorf("listing workflows for team %q: %w", team, err)
			}

			if len(workflows) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no workflows saved for team %q\n", team)
				return nil
			}

			for _, wf := range workflows {
				fmt.Fprintf(cmd.OutOrStdout(), "%-30s v%-3d %s\n", wf.ID, wf.Version, wf.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "default", "Team namespace to list")

	return cmd
}
