package builder

import (
	"fmt"
	"strings"
)

// builderSystemPromptTemplate is genericized from the system this package is
// grounded on: a Python connector-class template becomes a Go
// service.Service implementation, with httpx.AsyncClient swapped for
// *http.Client and the decorator-based registry swapped for the two plain
// exported constructors the Connector Registry's static validator requires.
const builderSystemPromptTemplate = `You are a connector builder. Your sole task is to write a Go source file implementing the %s service and save it as connector.go in your workspace.

## Mandatory type interface

The file must declare exactly one exported type named %sConnector satisfying this shape:

	package main

	import (
		"context"
		"net/http"

		"github.com/wiredwork/orcheo/internal/config"
		"github.com/wiredwork/orcheo/internal/domain/trace"
		"github.com/wiredwork/orcheo/internal/service"
	)

	type %sConnector struct {
		// store credentials and the shared *http.Client and *trace.Trace here
	}

	func NewFromSettings(settings *config.Settings, client *http.Client, tr *trace.Trace) service.Service {
		// construct from settings fields for this service (e.g. settings.%s.APIKey)
		return &%sConnector{...}
	}

	func (c *%sConnector) IsConfigured() bool {
		// true if every required credential is present
	}

	func (c *%sConnector) ServiceName() string {
		return %q
	}

	func (c *%sConnector) Invoke(ctx context.Context, action string, nodeID string, params service.Params) (service.Result, error) {
		// dispatch action to the matching method below
	}

	// One method per required action, named exactly after the action string
	// (e.g. func (c *%sConnector) %s(ctx context.Context, nodeID string, params service.Params) (service.Result, error)):
	//   1. Build the API request using the connector's *http.Client.
	//   2. On failure, return a *service.Error with the matching ErrorKind
	//      (auth_error, permission_denied, not_found, already_exists,
	//      rate_limit, connector_error).
	//   3. Return a service.Result with at minimum a "status" key set to a
	//      past-tense verb (e.g. "created", "sent").

## Hard rules

- Use only the connector's injected *http.Client for outbound calls. Do not import any HTTP client library.
- Do not add any dependency beyond the standard library and this module's own packages (config, trace, service) — no go.mod changes.
- Return a *service.Error (via service.NewError) for any provider failure, never a bare error.
- The connector must be stateless across calls beyond its stored credentials.
- package main — this file is compiled standalone in plugin mode; it is never imported directly by other Go source.

## Workflow

1. Write the connector to %s/connector.go using write_file.
2. Verify it parses with run_command: gofmt -l connector.go
3. If that reports a problem, fix the file and re-verify.
`

func builderSystemPrompt(serviceName, serviceNameCap, workspace string) string {
	return fmt.Sprintf(builderSystemPromptTemplate,
		serviceName, serviceNameCap, serviceNameCap, serviceNameCap, serviceNameCap,
		serviceNameCap, serviceNameCap, serviceName, serviceNameCap, serviceNameCap,
		"<action_name>", workspace,
	)
}

const builderUserPromptTemplate = `Build a connector for service: %s

Required action methods (exact names, implement all of them):
%s

Workflow context (for understanding what params look like at runtime):
%s

Write the connector to: %s/connector.go
Type name must be: %sConnector
ServiceName() must return: %q

After writing, verify with: run_command "gofmt -l connector.go"
`

func builderUserPrompt(serviceName, serviceNameCap, workspace, workflowContext string, actions []string) string {
	list := make([]string, 0, len(actions))
	for _, a := range actions {
		list = append(list, "  - "+a)
	}
	return fmt.Sprintf(builderUserPromptTemplate,
		serviceName, strings.Join(list, "\n"), workflowContext, workspace, serviceNameCap, serviceName,
	)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
