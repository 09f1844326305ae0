package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/wiredwork/orcheo/internal/config"
	"github.com/wiredwork/orcheo/internal/domain/domainerr"
	"github.com/wiredwork/orcheo/internal/domain/simstate"
	"github.com/wiredwork/orcheo/internal/domain/trace"
	"github.com/wiredwork/orcheo/internal/domain/workflow"
	"github.com/wiredwork/orcheo/internal/engine"
	"github.com/wiredwork/orcheo/internal/registry"
	"github.com/wiredwork/orcheo/internal/sandbox"
	"github.com/wiredwork/orcheo/internal/service"
	"github.com/wiredwork/orcheo/internal/simulator"
	"github.com/wiredwork/orcheo/internal/store"
	"github.com/wiredwork/orcheo/internal/stream"
)

// maxRepairAttempts bounds the number of times the loop re-invokes the agent
// with an execution report or parse error as context, beyond the initial
// draft.
const maxRepairAttempts = 2

// workflowArtifactName is the file the agent is instructed to write its
// workflow JSON to, inside the ephemeral workspace.
const workflowArtifactName = "workflow.json"

const (
	generateMaxTurns = 30
	repairMaxTurns   = 10
)

// BuildRequest describes one connector the loop needs the Connector Builder
// to synthesize before a workflow can execute.
type BuildRequest struct {
	ServiceName     string
	Actions         []string
	WorkflowContext string
}

// BuildResult is what the Connector Builder reports back for one BuildRequest.
type BuildResult struct {
	Built           bool
	DestinationPath string
}

// ConnectorBuilder is the seam between the loop's EXECUTING state and the
// Connector Builder (internal/builder), kept as an interface here so
// planner never imports builder (builder imports planner.AgentClient
// instead, avoiding a cycle).
type ConnectorBuilder interface {
	Build(ctx context.Context, req BuildRequest, emit func(stream.Event)) (BuildResult, error)
}

// Request is one generate-or-modify request into the loop.
type Request struct {
	Description string
	Context     map[string]string
	Team        string
	Existing    *workflow.Workflow
}

// Loop is the Planner–Executor–Repair Loop: it owns one AgentClient, the
// run's Settings, and the collaborators needed to parse, execute, and
// persist a drafted workflow.
type Loop struct {
	Agent     AgentClient
	Settings  *config.Settings
	Store     *store.FileStore // nil disables persistence
	Builder   ConnectorBuilder // nil disables connector synthesis; a service the registry cannot resolve then ends the run with its error
	Catalog   CatalogSearcher
	Knowledge KnowledgeSearcher
	RNG       *rand.Rand
	TempDir   string // parent directory for ephemeral workspaces; defaults to os.TempDir()
}

// Run drives the loop to completion, streaming every event over the
// returned channel and closing it once a terminal state is reached. The
// context governs cancellation: closing it tears down any in-flight
// subprocess via its process group and cleans up the workspace.
func (l *Loop) Run(ctx context.Context, req Request) <-chan stream.Event {
	events := make(chan stream.Event, 16)
	go func() {
		defer close(events)
		l.run(ctx, req, func(e stream.Event) { events <- e })
	}()
	return events
}

func (l *Loop) run(ctx context.Context, req Request, emit func(stream.Event)) {
	parent := l.TempDir
	if parent == "" {
		parent = os.TempDir()
	}
	ws, err := sandbox.NewWorkspace(parent)
	if err != nil {
		emit(stream.New(stream.TypeError, err.Error()))
		return
	}
	defer func() {
		emit(stream.New(stream.TypeWorkspace, stream.WorkspaceContent{Path: ws.Root()}))
		_ = ws.Cleanup()
	}()

	executor := &ToolExecutor{Workspace: ws, Catalog: l.Catalog, Knowledge: l.Knowledge}
	tools := StandardTools()

	systemPrompt, userPrompt := draftPrompts(req, ws.Root())

	if err := RunAgentSession(ctx, l.Agent, systemPrompt, userPrompt, generateMaxTurns, tools, executor, emit); err != nil {
		emit(stream.New(stream.TypeError, err.Error()))
		return
	}

	artifactPath := filepath.Join(ws.Root(), workflowArtifactName)
	if _, err := os.Stat(artifactPath); err != nil {
		emit(stream.New(stream.TypeError, "agent did not produce "+workflowArtifactName))
		return
	}

	var report *trace.Report
	var wf workflow.Workflow

	for attempt := 1; attempt <= maxRepairAttempts+1; attempt++ {
		raw, readErr := os.ReadFile(artifactPath)
		if readErr != nil {
			emit(stream.New(stream.TypeError, readErr.Error()))
			return
		}

		if parseErr := json.Unmarshal(raw, &wf); parseErr != nil {
			emit(stream.New(stream.TypeError, fmt.Sprintf("failed to parse %s (attempt %d): %v", workflowArtifactName, attempt, parseErr)))
			if attempt > maxRepairAttempts {
				return
			}
			if !l.repair(ctx, fmt.Sprintf(
				"The %s file at %s failed to parse with the following error:\n\n%v\n\n"+
					"Read the file, fix the JSON, and write it back.",
				workflowArtifactName, artifactPath, parseErr,
			), attempt, tools, executor, emit) {
				return
			}
			continue
		}

		if validateErr := wf.Validate(); validateErr != nil {
			emit(stream.New(stream.TypeError, fmt.Sprintf("%s failed schema validation (attempt %d): %v", workflowArtifactName, attempt, validateErr)))
			if attempt > maxRepairAttempts {
				return
			}
			if !l.repair(ctx, fmt.Sprintf(
				"The %s file at %s failed schema validation:\n\n%v\n\n"+
					"Read the file, fix the issues, and write it back.",
				workflowArtifactName, artifactPath, validateErr,
			), attempt, tools, executor, emit) {
				return
			}
			continue
		}

		emit(stream.New(stream.TypeWorkflow, wf))

		tr := trace.NewTrace(time.Now())
		services, err := l.assembleServices(ctx, wf, tr, emit)
		if err != nil {
			emit(stream.New(stream.TypeError, err.Error()))
			return
		}

		rng := l.RNG
		if rng == nil {
			rng = rand.New(rand.NewSource(1))
		}
		report, err = engine.Execute(ctx, wf, services, trace.NewFailureConfig(), rng, tr)
		if err != nil {
			emit(stream.New(stream.TypeError, err.Error()))
			return
		}

		emit(stream.New(stream.TypeExecutionReport, stream.ExecutionReportContent{
			Report:  report,
			Summary: report.ToMarkdown(),
			Attempt: attempt,
		}))

		if report.Failed == 0 {
			break
		}
		if attempt > maxRepairAttempts {
			break
		}

		if !l.repair(ctx, fmt.Sprintf(
			"The workflow at %s was executed but had failures.\n\n## Execution Report\n\n%s\n\n"+
				"Read the %s, fix the issues described above, and write the corrected file back.",
			artifactPath, report.ToMarkdown(), workflowArtifactName,
		), attempt, tools, executor, emit) {
			return
		}
	}

	if l.Store != nil && report != nil && report.Failed == 0 {
		wf.Version = 0 // always mint the next version on disk, regardless of what the agent wrote
		saved, err := l.Store.Save(ctx, wf)
		if err != nil {
			emit(stream.New(stream.TypeError, err.Error()))
			return
		}
		emit(stream.New(stream.TypeWorkflowSaved, stream.WorkflowSavedContent{
			ID: saved.ID, Team: saved.Team, Version: saved.Version,
		}))
	}

	emit(stream.New(stream.TypeResult, stream.ResultContent{Summary: resultSummary(report)}))
}

// repair re-invokes the agent with repair context and streams its events.
// It returns false if the session itself errored (a fatal, not retryable,
// condition), true otherwise.
func (l *Loop) repair(ctx context.Context, userPrompt string, attempt int, tools []ToolDefinition, executor *ToolExecutor, emit func(stream.Event)) bool {
	emit(stream.New(stream.TypeText, fmt.Sprintf("Running self-correction (attempt %d/%d)...", attempt, maxRepairAttempts)))
	if err := RunAgentSession(ctx, l.Agent, repairSystemPrompt(), userPrompt, repairMaxTurns, tools, executor, emit); err != nil {
		emit(stream.New(stream.TypeError, err.Error()))
		return false
	}
	return true
}

// assembleServices builds the Services map for wf, synchronously invoking
// l.Builder for every service the workflow references that the registry
// cannot resolve, then falling back to the simulator's service of the same
// name for anything the builder declines or fails to produce. A name the
// simulator does not have is left out of the map, so the executor rejects
// the workflow with an unknown-service error. Every service logs its
// successful steps into tr.
func (l *Loop) assembleServices(ctx context.Context, wf workflow.Workflow, tr *trace.Trace, emit func(stream.Event)) (service.Map, error) {
	state := simstate.New()
	reg := registry.New(l.Settings, state, &http.Client{}, tr)
	defer reg.Close()

	simFallback := simulator.Services(state, tr)

	needed := make(map[string][]string)
	for _, n := range wf.Nodes {
		needed[n.Service] = appendUnique(needed[n.Service], n.Action)
	}

	services := make(service.Map, len(needed))
	for name, actions := range needed {
		svc, err := reg.Get(ctx, name)
		if err == nil {
			services[name] = svc
			continue
		}

		domainErr, ok := err.(*domainerr.DomainError)
		if !ok || domainErr.Code != domainerr.CodeUnknownService || l.Builder == nil {
			return nil, err
		}

		result, buildErr := l.Builder.Build(ctx, BuildRequest{
			ServiceName:     name,
			Actions:         actions,
			WorkflowContext: wf.Description,
		}, emit)
		if buildErr != nil || !result.Built {
			if fallback, ok := simFallback[name]; ok {
				services[name] = fallback
			}
			continue
		}

		reg.Invalidate(name)
		svc, err = reg.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		services[name] = svc
	}
	return services, nil
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

func resultSummary(report *trace.Report) string {
	if report == nil {
		return "planner loop did not reach execution"
	}
	return fmt.Sprintf("%d/%d steps succeeded", report.Successful, report.TotalSteps)
}
