package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wiredwork/orcheo/internal/config"
	"github.com/wiredwork/orcheo/internal/store"
	"github.com/wiredwork/orcheo/internal/stream"
)

const validWorkflowJSON = `{
  "id": "day1-onboarding",
  "name": "Day 1 Onboarding",
  "description": "Creates the HR record for a new hire",
  "team": "default",
  "nodes": [
    {
      "id": "create_hr_record",
      "name": "Create Employee Record",
      "description": "Create the employee's HR record",
      "service": "hr",
      "action": "create_employee",
      "actor": "hr_manager",
      "parameters": [
        {"name": "employee_name", "value": "Alice Chen", "description": "Full name", "required": true}
      ],
      "depends_on": [],
      "outputs": {"employee_id": "The created employee ID"}
    }
  ],
  "edges": [],
  "parameters": {},
  "version": 1
}`

// scriptedClient is a minimal AgentClient double: the first turn writes a
// workflow artifact via the write_file tool, every subsequent turn ends the
// session with no further tool calls.
type scriptedClient struct {
	artifact string
	turn     int
}

func (c *scriptedClient) Complete(_ context.Context, req Request) (Response, error) {
	c.turn++
	if c.turn == 1 {
		return Response{
			ToolCalls: []ToolCall{
				{ID: "call-1", Name: ToolWriteFile, Input: map[string]interface{}{
					"path":    workflowArtifactName,
					"content": c.artifact,
				}},
			},
			StopReason: "tool_use",
		}, nil
	}
	return Response{Text: "done", StopReason: "end_turn"}, nil
}

func newTestLoop(t *testing.T, agent AgentClient) *Loop {
	t.Helper()
	return &Loop{
		Agent:    agent,
		Settings: &config.Settings{ConnectorMode: config.ConnectorModeSimulated},
		TempDir:  t.TempDir(),
	}
}

func drain(ch <-chan stream.Event) []stream.Event {
	var events []stream.Event
	for e := range ch {
		events = append(events, e)
	}
	return events
}

func TestLoopReachesDoneOnFirstDraft(t *testing.T) {
	loop := newTestLoop(t, &scriptedClient{artifact: validWorkflowJSON})

	events := drain(loop.Run(context.Background(), Request{Description: "onboard a new hire"}))

	var sawReport, sawResult bool
	for _, e := range events {
		require.NotEqual(t, stream.TypeError, e.Type, "unexpected error event: %+v", e.Content)
		switch e.Type {
		case stream.TypeExecutionReport:
			sawReport = true
		case stream.TypeResult:
			sawResult = true
		}
	}
	require.True(t, sawReport, "expected an execution_report event")
	require.True(t, sawResult, "expected a terminal result event")
}

func TestLoopPersistsOnSuccessWhenStoreProvided(t *testing.T) {
	loop := newTestLoop(t, &scriptedClient{artifact: validWorkflowJSON})
	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	loop.Store = s

	events := drain(loop.Run(context.Background(), Request{Description: "onboard a new hire"}))

	var saved stream.WorkflowSavedContent
	found := false
	for _, e := range events {
		if e.Type == stream.TypeWorkflowSaved {
			saved = e.Content.(stream.WorkflowSavedContent)
			found = true
		}
	}
	require.True(t, found, "expected a workflow_saved event")
	require.Equal(t, "day1-onboarding", saved.ID)
	require.Equal(t, 1, saved.Version)
}

func TestLoopEmitsErrorWhenArtifactMissing(t *testing.T) {
	loop := newTestLoop(t, staticTextClient{})

	events := drain(loop.Run(context.Background(), Request{Description: "onboard a new hire"}))

	var sawError bool
	for _, e := range events {
		if e.Type == stream.TypeError {
			sawError = true
		}
	}
	require.True(t, sawError, "expected an error event when no artifact is written")
}

type staticTextClient struct{}

func (staticTextClient) Complete(_ context.Context, _ Request) (Response, error) {
	return Response{Text: "I have nothing to write.", StopReason: "end_turn"}, nil
}
