package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wiredwork/orcheo/internal/builder"
	"github.com/wiredwork/orcheo/internal/planner"
	"github.com/wiredwork/orcheo/internal/planner/anthropicagent"
	"github.com/wiredwork/orcheo/internal/planner/simulatedagent"
	"github.com/wiredwork/orcheo/internal/tui/streamview"
)

func newPlanCmd(app *AppContext, flags *rootFlags) *cobra.Command {
	var team string
	var existingFlag string

	cmd := &cobra.Command{
		Use:   "plan <description>",
		Short: "Draft a new workflow from a natural-language description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootstrap(app, flags); err != nil {
				return err
			}

			ctx, logger := app.CommandContext(cmd, "command.plan")
			if logger != nil {
				logger.Info(ctx, "planning workflow", "team", team)
			}

			agent, err := newAgentClient(app)
			if err != nil {
				return err
			}

			loop := &planner.Loop{
				Agent:    agent,
				Settings: app.Settings,
				Store:    app.Store,
				Builder: &builder.Builder{
					Agent:              agent,
					CustomConnectorDir: app.Settings.CustomConnectorDir,
				},
			}

			req := planner.Request{Description: args[0], Team: team}
			if existingFlag != "" {
				return fmt.Errorf("refining an existing workflow is not yet wired to a flag; pass its id via --team and rerun plan with the full description")
			}

			failed, err := streamview.Run(loop.Run(ctx, req), os.Stdout)
			if err != nil {
				return err
			}
			if failed {
				return fmt.Errorf("planner run ended with errors")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "default", "Team namespace the drafted workflow belongs to")
	cmd.Flags().StringVar(&existingFlag, "refine", "", "Reserved for future use: id of an existing workflow to refine")

	return cmd
}

// newAgentClient picks the production Anthropic-backed AgentClient when an
// API key is configured, falling back to the scripted simulatedagent
// otherwise — the same fallback the Connector Builder's fallback-to-
// simulator philosophy applies at the service level.
func newAgentClient(app *AppContext) (planner.AgentClient, error) {
	if app.Settings.AnthropicAPIKey == "" {
		return simulatedagent.New(), nil
	}
	maxTokens := 4096
	return anthropicagent.NewFromAPIKey(app.Settings.AnthropicAPIKey, app.Settings.ModelID, maxTokens)
}
