package simulatedagent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wiredwork/orcheo/internal/planner"
)

func TestCompleteWritesWorkflowOnFirstTurn(t *testing.T) {
	c := New()

	resp, err := c.Complete(context.Background(), planner.Request{
		Messages: []planner.Message{planner.Text(planner.RoleUser, "onboard a new hire")},
	})
	require.NoError(t, err)
	require.Len(t, resp.ToolCalls, 1)
	require.Equal(t, planner.ToolWriteFile, resp.ToolCalls[0].Name)
	require.Equal(t, "tool_use", resp.StopReason)
}

func TestCompleteEndsSessionAfterAssistantTurn(t *testing.T) {
	c := New()

	resp, err := c.Complete(context.Background(), planner.Request{
		Messages: []planner.Message{
			planner.Text(planner.RoleUser, "onboard a new hire"),
			{Role: planner.RoleAssistant, Content: []planner.ContentBlock{{ToolName: planner.ToolWriteFile}}},
			{Role: planner.RoleUser, Content: []planner.ContentBlock{{ToolResult: "wrote 10 bytes"}}},
		},
	})
	require.NoError(t, err)
	require.Empty(t, resp.ToolCalls)
	require.Equal(t, "end_turn", resp.StopReason)
}

func TestCustomRenderIsUsed(t *testing.T) {
	called := false
	c := &Client{Render: func(prompt string) (string, error) {
		called = true
		require.Contains(t, prompt, "custom request")
		return DefaultWorkflow, nil
	}}

	_, err := c.Complete(context.Background(), planner.Request{
		Messages: []planner.Message{planner.Text(planner.RoleUser, "custom request")},
	})
	require.NoError(t, err)
	require.True(t, called)
}
