// Package registry resolves a service tag to a live service.Service for one
// run: a built-in connector (simulated or real, depending on config.Settings
// and per-service credential availability), or an agent-built custom
// connector loaded from disk after passing static validation.
//
// Unlike the registry it is grounded on, built-ins are not registered via an
// import-time decorator side effect. They are listed explicitly in
// builtinFactories, populated once at package init by a plain assignment —
// no hidden registration order to reason about.
package registry

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/wiredwork/orcheo/internal/config"
	"github.com/wiredwork/orcheo/internal/connector"
	"github.com/wiredwork/orcheo/internal/domain/domainerr"
	"github.com/wiredwork/orcheo/internal/domain/simstate"
	"github.com/wiredwork/orcheo/internal/domain/trace"
	"github.com/wiredwork/orcheo/internal/service"
	"github.com/wiredwork/orcheo/internal/simulator"
)

// wantsReal reports whether mode resolves credentialed services against
// their real connector at all. Hybrid and real resolve identically; they
// differ only in whether the caller is expected to verify afterward that no
// service silently fell back to the simulator (see
// Registry.VerifyNoSimulatedFallback).
func wantsReal(mode config.ConnectorMode) bool {
	return mode == config.ConnectorModeHybrid || mode == config.ConnectorModeReal
}

// factory builds the built-in service.Service for one service tag, choosing
// between the real connector and the in-memory simulator depending on
// whether the run is in hybrid/real mode and that service's credentials are
// actually present. It also reports whether it fell back to the simulator,
// so Registry.Get can track that for later verification in real mode.
type factory func(settings *config.Settings, state *simstate.State, client *http.Client, tr *trace.Trace) (svc service.Service, simulated bool)

// builtinFactories lists every built-in service tag explicitly. Adding a
// sixth built-in service means adding one line here, not wiring a decorator.
var builtinFactories = map[string]factory{
	"hr": func(settings *config.Settings, state *simstate.State, client *http.Client, tr *trace.Trace) (service.Service, bool) {
		if wantsReal(settings.ConnectorMode) && settings.HR.IsConfigured() {
			return connector.NewHR(settings.HR, client, tr), false
		}
		return simulatedService("hr", state, tr), true
	},
	"google": func(settings *config.Settings, state *simstate.State, client *http.Client, tr *trace.Trace) (service.Service, bool) {
		if wantsReal(settings.ConnectorMode) && settings.Google.IsConfigured() {
			return connector.NewGoogle(settings.Google, client, tr), false
		}
		return simulatedService("google", state, tr), true
	},
	"slack": func(settings *config.Settings, state *simstate.State, client *http.Client, tr *trace.Trace) (service.Service, bool) {
		if wantsReal(settings.ConnectorMode) && settings.Slack.IsConfigured() {
			return connector.NewSlack(settings.Slack, client, tr), false
		}
		return simulatedService("slack", state, tr), true
	},
	"jira": func(settings *config.Settings, state *simstate.State, client *http.Client, tr *trace.Trace) (service.Service, bool) {
		if wantsReal(settings.ConnectorMode) && settings.Jira.IsConfigured() {
			return connector.NewJira(settings.Jira, client, tr), false
		}
		return simulatedService("jira", state, tr), true
	},
	"github": func(settings *config.Settings, state *simstate.State, client *http.Client, tr *trace.Trace) (service.Service, bool) {
		if wantsReal(settings.ConnectorMode) && settings.GitHub.IsConfigured() {
			return connector.NewGitHub(settings.GitHub, client, tr), false
		}
		return simulatedService("github", state, tr), true
	},
}

// simulatedService pulls one service out of the full simulator.Services map
// rather than exposing per-service simulator constructors — the simulator
// package still builds all five together since they share one State.
func simulatedService(name string, state *simstate.State, tr *trace.Trace) service.Service {
	return simulator.Services(state, tr)[name]
}

// Registry discovers and instantiates services for one run, caching
// instances for the run's lifetime so dependent nodes in the same workflow
// share one provisioned connector (and, for real connectors, one
// underlying *http.Client).
type Registry struct {
	settings  *config.Settings
	state     *simstate.State
	http      *http.Client
	tr        *trace.Trace
	customDir string

	mu        sync.Mutex
	cache     map[string]service.Service
	simulated map[string]bool
}

// New builds a registry for one run. client is the shared HTTP transport
// every real connector is built over; Close releases its idle connections.
func New(settings *config.Settings, state *simstate.State, client *http.Client, tr *trace.Trace) *Registry {
	return &Registry{
		settings:  settings,
		state:     state,
		http:      client,
		tr:        tr,
		customDir: settings.CustomConnectorDir,
		cache:     make(map[string]service.Service),
		simulated: make(map[string]bool),
	}
}

// Get resolves a live service instance for serviceName, trying built-ins
// first and a loaded custom connector second. It returns a CodeUnknownService
// domainerr.DomainError if neither source has it.
func (r *Registry) Get(ctx context.Context, serviceName string) (service.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[serviceName]; ok {
		return cached, nil
	}

	if build, ok := builtinFactories[serviceName]; ok {
		svc, simulated := build(r.settings, r.state, r.http, r.tr)
		r.cache[serviceName] = svc
		r.simulated[serviceName] = simulated
		return svc, nil
	}

	if r.customDir != "" {
		candidate := filepath.Join(r.customDir, serviceName+".go")
		if _, err := os.Stat(candidate); err == nil {
			svc, err := loadCustomConnector(ctx, candidate, serviceName, r.settings, r.http, r.tr)
			if err != nil {
				return nil, err
			}
			r.cache[serviceName] = svc
			r.simulated[serviceName] = false
			return svc, nil
		}
	}

	return nil, domainerr.NewUnknownServiceError("", serviceName)
}

// VerifyNoSimulatedFallback checks, for every already-resolved service tag
// in names, whether Get fell back to the simulator for it. In real mode the
// caller uses this to confirm the run is actually fully credentialed rather
// than silently partially simulated, per the distinction between hybrid and
// real connector modes. names not yet resolved via Get are ignored.
func (r *Registry) VerifyNoSimulatedFallback(names []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var fallen []string
	for _, name := range names {
		if r.simulated[name] {
			fallen = append(fallen, name)
		}
	}
	if len(fallen) > 0 {
		sort.Strings(fallen)
		return domainerr.NewDependencyError(
			"real connector mode requires credentials for every resolved service, but these fell back to the simulator",
			map[string]interface{}{"services": fallen},
		)
	}
	return nil
}

// Invalidate drops a cached instance so the next Get reloads it — used
// after the Connector Builder replaces a custom connector file mid-session.
func (r *Registry) Invalidate(serviceName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, serviceName)
}

// ListAvailable returns every resolvable service tag: built-ins plus any
// *.go file present in the custom connector directory.
func (r *Registry) ListAvailable() []string {
	names := make(map[string]struct{}, len(builtinFactories))
	for name := range builtinFactories {
		names[name] = struct{}{}
	}
	if r.customDir != "" {
		entries, err := os.ReadDir(r.customDir)
		if err == nil {
			for _, entry := range entries {
				if !entry.IsDir() && filepath.Ext(entry.Name()) == ".go" {
					names[trimGoExt(entry.Name())] = struct{}{}
				}
			}
		}
	}
	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Close closes the idle connections of the registry's shared HTTP client.
// It has no once-guard; each call closes whatever connections are idle.
func (r *Registry) Close() error {
	r.http.CloseIdleConnections()
	return nil
}

func trimGoExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
