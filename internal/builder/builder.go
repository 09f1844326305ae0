// Package builder implements the Connector Builder: given a service tag the
// Planner Loop could not resolve through the Connector Registry, it runs a
// focused agent session that writes a new Go connector source file, statically
// validates it, and — on success — installs it into the custom connector
// directory so the loop's next registry lookup resolves it.
package builder

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"golang.org/x/sync/singleflight"

	"github.com/wiredwork/orcheo/internal/planner"
	"github.com/wiredwork/orcheo/internal/registry"
	"github.com/wiredwork/orcheo/internal/sandbox"
	"github.com/wiredwork/orcheo/internal/stream"
)

// connectorFileName is the artifact the builder agent is instructed to
// produce inside its ephemeral workspace, mirroring the Planner Loop's
// fixed workflow.json convention.
const connectorFileName = "connector.go"

// defaultMaxTurns bounds the builder's agent session. Shorter than the
// Planner Loop's draft session: writing one connector file is a narrower
// task than drafting and fixing a whole workflow.
const defaultMaxTurns = 15

// safeServiceName matches the service tags the registry and the node
// schema allow: lowercase, starting with a letter, otherwise letters,
// digits, and underscores. A name outside this set is refused outright,
// since it is about to become a filename and a Go identifier fragment.
var safeServiceName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Builder implements planner.ConnectorBuilder.
type Builder struct {
	Agent              planner.AgentClient
	CustomConnectorDir string
	TempDir            string // parent directory for the ephemeral workspace; defaults to os.TempDir()
	MaxTurns           int    // defaults to defaultMaxTurns

	// builds deduplicates concurrent Build calls for the same service tag:
	// two workflow runs missing the same connector at once share one agent
	// session and one dry-build subprocess instead of racing to write the
	// same destination file.
	builds singleflight.Group
}

// Build runs one connector-synthesis session for req.ServiceName. A refused
// or invalid generation is reported via emit and returns
// BuildResult{Built: false}, nil — not an error — so the caller (the
// Planner Loop's service assembly) falls back to the simulator rather than
// aborting the whole run.
func (b *Builder) Build(ctx context.Context, req planner.BuildRequest, emit func(stream.Event)) (planner.BuildResult, error) {
	v, err, _ := b.builds.Do(req.ServiceName, func() (interface{}, error) {
		return b.build(ctx, req, emit)
	})
	if err != nil {
		return planner.BuildResult{}, err
	}
	return v.(planner.BuildResult), nil
}

// build holds the actual synthesis logic; Build only adds singleflight
// deduplication around it.
func (b *Builder) build(ctx context.Context, req planner.BuildRequest, emit func(stream.Event)) (planner.BuildResult, error) {
	if !safeServiceName.MatchString(req.ServiceName) {
		emit(stream.New(stream.TypeError, fmt.Sprintf(
			"refusing to build a connector for invalid service name %q: use only lowercase letters, digits, and underscores",
			req.ServiceName,
		)))
		return planner.BuildResult{}, nil
	}

	parent := b.TempDir
	if parent == "" {
		parent = os.TempDir()
	}
	ws, err := sandbox.NewWorkspace(parent)
	if err != nil {
		return planner.BuildResult{}, fmt.Errorf("builder: creating workspace: %w", err)
	}
	defer func() { _ = ws.Cleanup() }()

	emit(stream.New(stream.TypeText, fmt.Sprintf(
		"No connector found for service %q. Building one automatically...", req.ServiceName,
	)))

	serviceNameCap := capitalize(req.ServiceName)
	systemPrompt := builderSystemPrompt(req.ServiceName, serviceNameCap, ws.Root())
	userPrompt := builderUserPrompt(req.ServiceName, serviceNameCap, ws.Root(), req.WorkflowContext, req.Actions)

	executor := &planner.ToolExecutor{Workspace: ws}
	tools := builderTools()

	maxTurns := b.MaxTurns
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}

	if err := planner.RunAgentSession(ctx, b.Agent, systemPrompt, userPrompt, maxTurns, tools, executor, emit); err != nil {
		emit(stream.New(stream.TypeError, fmt.Sprintf("connector builder session failed for %q: %v", req.ServiceName, err)))
		return planner.BuildResult{}, nil
	}

	candidatePath := filepath.Join(ws.Root(), connectorFileName)
	if _, err := os.Stat(candidatePath); err != nil {
		emit(stream.New(stream.TypeError, fmt.Sprintf(
			"builder agent did not produce %s for %q; the service will fall back to the simulator",
			connectorFileName, req.ServiceName,
		)))
		return planner.BuildResult{}, nil
	}

	if err := registry.ValidateCandidateConnector(ctx, candidatePath, req.ServiceName, req.Actions); err != nil {
		emit(stream.New(stream.TypeError, fmt.Sprintf(
			"connector validation failed for %q: %v; the service will fall back to the simulator",
			req.ServiceName, err,
		)))
		return planner.BuildResult{}, nil
	}

	if err := os.MkdirAll(b.CustomConnectorDir, 0o755); err != nil {
		return planner.BuildResult{}, fmt.Errorf("builder: creating custom connector directory: %w", err)
	}
	dest := filepath.Join(b.CustomConnectorDir, req.ServiceName+".go")
	if err := installFile(candidatePath, dest); err != nil {
		return planner.BuildResult{}, fmt.Errorf("builder: installing connector for %q: %w", req.ServiceName, err)
	}

	emit(stream.New(stream.TypeConnectorBuilt, stream.ConnectorBuiltContent{
		Service:     req.ServiceName,
		Destination: dest,
		Actions:     req.Actions,
	}))
	emit(stream.New(stream.TypeText, fmt.Sprintf(
		"Connector for %q built and saved successfully. Resuming workflow execution...", req.ServiceName,
	)))

	return planner.BuildResult{Built: true, DestinationPath: dest}, nil
}

// builderTools narrows the Planner Loop's standard tool surface to what a
// connector-writing session needs: no catalog or knowledge-base search,
// since those are about the workflow domain, not an HTTP API's shape.
func builderTools() []planner.ToolDefinition {
	var out []planner.ToolDefinition
	for _, t := range planner.StandardTools() {
		switch t.Name {
		case planner.ToolReadFile, planner.ToolWriteFile, planner.ToolRunCommand:
			out = append(out, t)
		}
	}
	return out
}

// installFile moves src to dest, falling back to copying src's contents to
// dest (src itself is left in place) when the rename fails, e.g. when the
// two paths are not on the same filesystem (os.Rename returns
// syscall.EXDEV in that case, reported by the Go runtime as a generic
// *LinkError we don't want to special-case by errno).
func installFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return nil
}
