package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wiredwork/orcheo/internal/config"
	"github.com/wiredwork/orcheo/internal/domain/simstate"
	"github.com/wiredwork/orcheo/internal/domain/trace"
	"github.com/wiredwork/orcheo/internal/domain/workflow"
	"github.com/wiredwork/orcheo/internal/engine"
	"github.com/wiredwork/orcheo/internal/registry"
	"github.com/wiredwork/orcheo/internal/service"
	"github.com/wiredwork/orcheo/internal/stream"
	"github.com/wiredwork/orcheo/internal/tui/streamview"
)

func newRunCmd(app *AppContext, flags *rootFlags) *cobra.Command {
	var team string
	var version int

	cmd := &cobra.Command{
		Use:   "run <id>",
		Short: "Execute a previously saved workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootstrap(app, flags); err != nil {
				return err
			}

			ctx, logger := app.CommandContext(cmd, "command.run")
			wf, err := app.Store.Load(ctx, team, args[0], version)
			if err != nil {
				return fmt.Errorf("loading workflow %s/%s: %w", team, args[0], err)
			}
			if logger != nil {
				logger.Info(ctx, "running workflow", "id", wf.ID, "team", wf.Team, "version", wf.Version)
			}

			tr := trace.NewTrace(time.Now())
			reg := registry.New(app.Settings, simstate.New(), &http.Client{}, tr)
			defer reg.Close()

			svcMap, err := resolveServices(ctx, reg, app.Settings, wf)
			if err != nil {
				return err
			}

			events := make(chan stream.Event, 16)
			go func() {
				defer close(events)
				rng := rand.New(rand.NewSource(time.Now().UnixNano()))
				report, err := engine.Execute(ctx, wf, svcMap, trace.NewFailureConfig(), rng, tr)
				if err != nil {
					events <- stream.New(stream.TypeError, err.Error())
					return
				}
				events <- stream.New(stream.TypeExecutionReport, stream.ExecutionReportContent{
					Report: report, Summary: report.ToMarkdown(), Attempt: 0,
				})
				if report.Failed > 0 {
					events <- stream.New(stream.TypeResult, stream.ResultContent{
						Summary: fmt.Sprintf("%d of %d nodes failed", report.Failed, report.TotalSteps),
					})
				} else {
					events <- stream.New(stream.TypeResult, stream.ResultContent{
						Summary: fmt.Sprintf("all %d nodes succeeded", report.TotalSteps),
					})
				}
			}()

			failed, err := streamview.Run(events, os.Stdout)
			if err != nil {
				return err
			}
			if failed {
				return fmt.Errorf("workflow run ended with errors")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "default", "Team namespace the workflow belongs to")
	cmd.Flags().IntVar(&version, "version", 0, "Workflow version to run (0 = highest on disk)")

	return cmd
}

// resolveServices looks up every service tag a workflow's nodes reference
// through the registry, with no Connector Builder fallback — `run`
// executes an already-saved workflow; an unresolvable service here is a
// configuration problem to fix, not a gap worth synthesizing a connector
// for mid-run. In real connector mode, it additionally verifies that none
// of those services silently fell back to the simulator.
func resolveServices(ctx context.Context, reg *registry.Registry, settings *config.Settings, wf workflow.Workflow) (service.Map, error) {
	seen := make(map[string]struct{})
	names := make([]string, 0, len(wf.Nodes))
	services := make(service.Map)
	for _, n := range wf.Nodes {
		if _, ok := seen[n.Service]; ok {
			continue
		}
		seen[n.Service] = struct{}{}
		svc, err := reg.Get(ctx, n.Service)
		if err != nil {
			return nil, fmt.Errorf("resolving service %q: %w", n.Service, err)
		}
		services[n.Service] = svc
		names = append(names, n.Service)
	}

	if settings.ConnectorMode == config.ConnectorModeReal {
		if err := reg.VerifyNoSimulatedFallback(names); err != nil {
			return nil, err
		}
	}

	return services, nil
}
