package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wiredwork/orcheo/internal/planner"
	"github.com/wiredwork/orcheo/internal/stream"
)

// staticTextAgent never requests a tool call, so Build never produces
// connector.go — this exercises the "agent did not produce" path without
// reaching candidate validation (which would shell out to `go build`).
type staticTextAgent struct{}

func (staticTextAgent) Complete(context.Context, planner.Request) (planner.Response, error) {
	return planner.Response{Text: "nothing to write", StopReason: "end_turn"}, nil
}

func drain(events []stream.Event, t stream.Type) []stream.Event {
	var out []stream.Event
	for _, e := range events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func TestBuildRefusesUnsafeServiceName(t *testing.T) {
	b := &Builder{Agent: staticTextAgent{}, CustomConnectorDir: t.TempDir(), TempDir: t.TempDir()}

	var events []stream.Event
	result, err := b.Build(context.Background(), planner.BuildRequest{ServiceName: "../etc"}, func(e stream.Event) {
		events = append(events, e)
	})

	require.NoError(t, err)
	require.False(t, result.Built)
	require.NotEmpty(t, drain(events, stream.TypeError))
}

func TestBuildReportsMissingArtifact(t *testing.T) {
	b := &Builder{Agent: staticTextAgent{}, CustomConnectorDir: t.TempDir(), TempDir: t.TempDir()}

	var events []stream.Event
	result, err := b.Build(context.Background(), planner.BuildRequest{
		ServiceName: "zendesk",
		Actions:     []string{"create_ticket"},
	}, func(e stream.Event) {
		events = append(events, e)
	})

	require.NoError(t, err)
	require.False(t, result.Built)
	errs := drain(events, stream.TypeError)
	require.NotEmpty(t, errs)
	require.Contains(t, errs[len(errs)-1].Content, "connector.go")
}

func TestBuilderToolsExcludesCatalogAndKnowledgeSearch(t *testing.T) {
	names := make(map[string]bool)
	for _, tool := range builderTools() {
		names[tool.Name] = true
	}
	require.True(t, names[planner.ToolReadFile])
	require.True(t, names[planner.ToolWriteFile])
	require.True(t, names[planner.ToolRunCommand])
	require.False(t, names[planner.ToolSearchCatalog])
	require.False(t, names[planner.ToolSearchKnowledge])
}

func TestBuilderSystemPromptNamesTypeAndWorkspace(t *testing.T) {
	prompt := builderSystemPrompt("zendesk", "Zendesk", "/tmp/ws")
	require.Contains(t, prompt, "ZendeskConnector")
	require.Contains(t, prompt, "/tmp/ws")
}

func TestBuilderUserPromptListsActions(t *testing.T) {
	prompt := builderUserPrompt("zendesk", "Zendesk", "/tmp/ws", "onboarding workflow", []string{"create_ticket", "close_ticket"})
	require.Contains(t, prompt, "create_ticket")
	require.Contains(t, prompt, "close_ticket")
	require.Contains(t, prompt, "onboarding workflow")
}
