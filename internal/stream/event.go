// Package stream defines the structured event envelope the Planner Loop,
// Connector Builder, and DAG Executor emit while a run progresses, and
// that the CLI's Stream Viewer (or a plain line-printer) consumes.
package stream

// Type identifies the shape of an Event's Content.
type Type string

const (
	// TypeText carries narrative agent output.
	TypeText Type = "text"
	// TypeToolUse marks the start of a tool invocation.
	TypeToolUse Type = "tool_use"
	// TypeToolResult marks a tool invocation's completion.
	TypeToolResult Type = "tool_result"
	// TypeWorkflow carries a parsed workflow payload.
	TypeWorkflow Type = "workflow"
	// TypeExecutionReport carries an execution report, its rendered
	// markdown, and the repair attempt number that produced it.
	TypeExecutionReport Type = "execution_report"
	// TypeConnectorBuilt marks a successful Connector Builder session.
	TypeConnectorBuilt Type = "connector_built"
	// TypeWorkflowSaved marks a workflow persisted to the store.
	TypeWorkflowSaved Type = "workflow_saved"
	// TypeWorkspace carries the ephemeral workspace directory path.
	TypeWorkspace Type = "workspace"
	// TypeResult carries a terminal usage summary.
	TypeResult Type = "result"
	// TypeError carries a terminal error message.
	TypeError Type = "error"
)

// Event is the envelope streamed outward at every stage of a run. Content
// holds the type-specific payload described by the Type* constants above
// (e.g. a string for TypeText/TypeError, an ExecutionReportContent for
// TypeExecutionReport).
type Event struct {
	Type    Type        `json:"type"`
	Content interface{} `json:"content"`
}

// New builds an Event of the given type.
func New(t Type, content interface{}) Event {
	return Event{Type: t, Content: content}
}

// ExecutionReportContent is the TypeExecutionReport payload: the raw
// report, its rendered markdown summary, and which attempt produced it
// (the Planner Loop reports 1 for the initial draft and 2/3 after the first
// and second repair; `orcheo run` reports 0).
type ExecutionReportContent struct {
	Report  interface{} `json:"report"`
	Summary string      `json:"summary"`
	Attempt int         `json:"attempt"`
}

// ConnectorBuiltContent is the TypeConnectorBuilt payload.
type ConnectorBuiltContent struct {
	Service     string   `json:"service"`
	Destination string   `json:"destination"`
	Actions     []string `json:"actions"`
}

// WorkflowSavedContent is the TypeWorkflowSaved payload.
type WorkflowSavedContent struct {
	ID      string `json:"id"`
	Team    string `json:"team"`
	Version int    `json:"version"`
}

// WorkspaceContent is the TypeWorkspace payload.
type WorkspaceContent struct {
	Path string `json:"path"`
}

// ResultContent is the TypeResult payload: a terminal usage summary.
type ResultContent struct {
	Summary string `json:"summary"`
}

// ToolUseContent is the TypeToolUse payload.
type ToolUseContent struct {
	Tool  string      `json:"tool"`
	Input interface{} `json:"input"`
}

// ToolResultContent is the TypeToolResult payload.
type ToolResultContent struct {
	Tool   string      `json:"tool"`
	Output interface{} `json:"output"`
	IsErr  bool        `json:"is_error"`
}
