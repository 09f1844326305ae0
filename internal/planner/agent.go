// Package planner implements the Planner–Executor–Repair Loop: a bounded
// generate → parse → execute → fix cycle that drafts a Workflow artifact
// with an LM agent, validates and runs it, and — on failure — re-invokes
// the agent with the execution report as repair context.
package planner

import "context"

// Role identifies who authored a Message in an agent conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ContentBlock is one part of a Message: text, a tool invocation the
// assistant requested, or the result of executing one.
type ContentBlock struct {
	Text       string      `json:"text,omitempty"`
	ToolUseID  string      `json:"tool_use_id,omitempty"`
	ToolName   string      `json:"tool_name,omitempty"`
	ToolInput  interface{} `json:"tool_input,omitempty"`
	ToolResult interface{} `json:"tool_result,omitempty"`
	IsError    bool        `json:"is_error,omitempty"`
}

// Message is one turn in an agent conversation.
type Message struct {
	Role    Role
	Content []ContentBlock
}

// Text returns a Message carrying a single text block.
func Text(role Role, text string) Message {
	return Message{Role: role, Content: []ContentBlock{{Text: text}}}
}

// ToolDefinition describes one tool the agent may call.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]interface{}
}

// Request is one agent turn: the running conversation plus the tool
// surface available to it.
type Request struct {
	System   string
	Messages []Message
	Tools    []ToolDefinition
}

// Response is what the agent produced for one turn: narrative text and/or
// requested tool calls. StopReason mirrors the provider's own value
// ("end_turn", "tool_use", …) for callers that want to branch on it.
type Response struct {
	Text       string
	ToolCalls  []ToolCall
	StopReason string
	Usage      Usage
}

// ToolCall is one tool invocation the agent requested.
type ToolCall struct {
	ID    string
	Name  string
	Input map[string]interface{}
}

// Usage reports token accounting for one Complete call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// AgentClient is the one seam between the Planner Loop and an LM
// transport. planner/anthropicagent provides the production
// implementation over github.com/anthropics/anthropic-sdk-go;
// planner/simulatedagent provides a scripted implementation for tests and
// for any run with no Anthropic API key configured.
type AgentClient interface {
	Complete(ctx context.Context, req Request) (Response, error)
}
