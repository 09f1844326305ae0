// Package simulatedagent implements planner.AgentClient without calling out
// to a real model: it writes a deterministic workflow artifact on its first
// turn of a session. Used by tests and by any run where no Anthropic API
// key is configured, whatever the connector mode.
package simulatedagent

import (
	"context"
	"fmt"

	"github.com/wiredwork/orcheo/internal/planner"
)

// Render builds the workflow.json content to write for one session, given
// the rendered user prompt that started it (the loop's draft or repair
// prompt, which already carries the request, context, and any existing
// workflow or error detail).
type Render func(prompt string) (string, error)

// Client is the scripted AgentClient: the first turn of any session writes
// Render's output via write_file, every following turn ends the session.
type Client struct {
	Render Render
}

// New returns a Client that renders DefaultWorkflow regardless of prompt
// content — enough to drive the loop end to end in tests and demos without
// a live model.
func New() *Client {
	return &Client{Render: func(string) (string, error) { return DefaultWorkflow, nil }}
}

// Complete implements planner.AgentClient.
func (c *Client) Complete(_ context.Context, req planner.Request) (planner.Response, error) {
	if hasAssistantTurn(req.Messages) {
		return planner.Response{Text: "workflow written", StopReason: "end_turn"}, nil
	}

	prompt := lastUserText(req.Messages)
	render := c.Render
	if render == nil {
		render = func(string) (string, error) { return DefaultWorkflow, nil }
	}
	content, err := render(prompt)
	if err != nil {
		return planner.Response{}, fmt.Errorf("simulatedagent: rendering workflow: %w", err)
	}

	return planner.Response{
		ToolCalls: []planner.ToolCall{{
			ID:   "sim-write-1",
			Name: planner.ToolWriteFile,
			Input: map[string]interface{}{
				"path":    "workflow.json",
				"content": content,
			},
		}},
		StopReason: "tool_use",
	}, nil
}

func hasAssistantTurn(messages []planner.Message) bool {
	for _, m := range messages {
		if m.Role == planner.RoleAssistant {
			return true
		}
	}
	return false
}

func lastUserText(messages []planner.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role != planner.RoleUser {
			continue
		}
		for _, block := range messages[i].Content {
			if block.Text != "" {
				return block.Text
			}
		}
	}
	return ""
}

// DefaultWorkflow is a minimal, always-valid onboarding workflow: it
// provisions an HR record and nothing else, so any run of the loop in
// simulated-agent mode reaches EXECUTING without further configuration.
const DefaultWorkflow = `{
  "id": "day1-onboarding",
  "name": "Day 1 Onboarding",
  "description": "Creates the HR record for a new hire",
  "team": "default",
  "nodes": [
    {
      "id": "create_hr_record",
      "name": "Create Employee Record",
      "description": "Create the employee's HR record in the HR Portal",
      "service": "hr",
      "action": "create_employee",
      "actor": "hr_manager",
      "parameters": [
        {"name": "employee_name", "value": "New Hire", "description": "Full name of the new employee", "required": true}
      ],
      "depends_on": [],
      "outputs": {"employee_id": "The created employee ID"}
    }
  ],
  "edges": [],
  "parameters": {},
  "version": 1
}`
