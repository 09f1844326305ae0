package registry

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"plugin"
	"time"

	"github.com/wiredwork/orcheo/internal/config"
	"github.com/wiredwork/orcheo/internal/domain/trace"
	"github.com/wiredwork/orcheo/internal/service"
)

// dryBuildTimeout bounds the subprocess compile check so a pathological
// generated file (e.g. an infinite const expression) cannot hang a run.
const dryBuildTimeout = 60 * time.Second

// loadCustomConnector validates and loads one agent-built connector file.
//
// Three stages, each of which can reject the file outright (the error is
// returned to the caller; there is no simulator fallback at this point):
//  1. validateSource: go/parser + an AST walk confirm the structural
//     contract without compiling anything.
//  2. dryBuildPlugin: a `go build -buildmode=plugin` subprocess run on the
//     file itself (no scratch module or go.mod is set up for it) — the Go
//     analogue of the subprocess dry-import in the system this is grounded
//     on. A malformed file fails here with a normal compiler diagnostic
//     instead of panicking or corrupting the host process.
//  3. plugin.Open + plugin.Lookup pulls the validated NewFromSettings
//     symbol out of the compiled plugin and calls it to produce a live
//     service.Service.
func loadCustomConnector(ctx context.Context, path, serviceName string, settings *config.Settings, client *http.Client, tr *trace.Trace) (service.Service, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading candidate connector %s: %w", path, err)
	}

	if err := validateSource(src, serviceName, nil); err != nil {
		return nil, fmt.Errorf("custom connector %q failed static validation: %w", serviceName, err)
	}

	soPath, err := dryBuildPlugin(ctx, path, serviceName)
	if err != nil {
		return nil, fmt.Errorf("custom connector %q failed dry build: %w", serviceName, err)
	}
	defer os.Remove(soPath)

	p, err := plugin.Open(soPath)
	if err != nil {
		return nil, fmt.Errorf("loading compiled connector %q: %w", serviceName, err)
	}

	sym, err := p.Lookup("NewFromSettings")
	if err != nil {
		return nil, fmt.Errorf("custom connector %q missing exported NewFromSettings: %w", serviceName, err)
	}
	ctor, ok := sym.(func(*config.Settings, *http.Client, *trace.Trace) service.Service)
	if !ok {
		return nil, fmt.Errorf("custom connector %q NewFromSettings has an unexpected signature", serviceName)
	}

	return ctor(settings, client, tr), nil
}

// ValidateCandidateConnector runs the same two-stage check loadCustomConnector
// uses before trusting a file — static shape validation followed by a
// throwaway plugin-mode compile — without loading the result into this
// process. The Connector Builder calls this on a freshly agent-written file
// before it is ever renamed into the custom connector directory, so a bad
// generation is caught in the builder's own ephemeral workspace.
func ValidateCandidateConnector(ctx context.Context, path, serviceName string, actions []string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading candidate connector %s: %w", path, err)
	}
	if err := validateSource(src, serviceName, actions); err != nil {
		return err
	}
	soPath, err := dryBuildPlugin(ctx, path, serviceName)
	if err != nil {
		return err
	}
	defer os.Remove(soPath)
	return nil
}

// dryBuildPlugin compiles path in plugin mode in a separate go build
// process, writing the .so to a fixed per-service name under os.TempDir()
// and returning that path on success. The go build subprocess is what actually catches type errors
// and bad imports; validateSource only catches shape mistakes a compiler
// wouldn't describe usefully (wrong method set, missing constructor).
func dryBuildPlugin(ctx context.Context, path, serviceName string) (string, error) {
	buildCtx, cancel := context.WithTimeout(ctx, dryBuildTimeout)
	defer cancel()

	out := filepath.Join(os.TempDir(), "orcheo-connector-"+serviceName+".so")
	cmd := exec.CommandContext(buildCtx, "go", "build", "-buildmode=plugin", "-o", out, path)
	cmd.Env = os.Environ()

	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%w: %s", err, string(output))
	}
	return out, nil
}
