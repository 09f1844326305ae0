package planner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wiredwork/orcheo/internal/sandbox"
)

// Tool name constants, also used as the agent-facing tool identifiers.
const (
	ToolSearchCatalog   = "search_catalog"
	ToolSearchKnowledge = "search_knowledge_base"
	ToolReadFile        = "read_file"
	ToolWriteFile       = "write_file"
	ToolRunCommand      = "run_command"
)

// CatalogSearcher is the external collaborator backing search_catalog: a
// lookup over the set of available services/actions the planner agent can
// reference in a workflow it drafts. Its implementation lives outside this
// module's core scope (spec.md treats it as an external collaborator).
type CatalogSearcher interface {
	SearchCatalog(ctx context.Context, query string) ([]string, error)
}

// KnowledgeSearcher is the external collaborator backing
// search_knowledge_base: a lookup over the assembled markdown knowledge
// base. Also an external collaborator per spec.md.
type KnowledgeSearcher interface {
	SearchKnowledge(ctx context.Context, query string) ([]string, error)
}

// StandardTools returns the tool surface definitions offered to the
// planner agent: catalog/knowledge-base search, workspace file I/O, and
// the sandboxed command runner.
func StandardTools() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        ToolSearchCatalog,
			Description: "Search the available services and actions catalog for names matching a query.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{"query": map[string]interface{}{"type": "string"}},
				"required":   []string{"query"},
			},
		},
		{
			Name:        ToolSearchKnowledge,
			Description: "Search the assembled knowledge base for relevant documentation snippets.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{"query": map[string]interface{}{"type": "string"}},
				"required":   []string{"query"},
			},
		},
		{
			Name:        ToolReadFile,
			Description: "Read a file's contents from the scratch workspace.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{"path": map[string]interface{}{"type": "string"}},
				"required":   []string{"path"},
			},
		},
		{
			Name:        ToolWriteFile,
			Description: "Write a file's contents in the scratch workspace, creating parent directories as needed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":    map[string]interface{}{"type": "string"},
					"content": map[string]interface{}{"type": "string"},
				},
				"required": []string{"path", "content"},
			},
		},
		{
			Name:        ToolRunCommand,
			Description: "Run a shell command in the scratch workspace with a timeout in seconds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"command":         map[string]interface{}{"type": "string"},
					"timeout_seconds": map[string]interface{}{"type": "integer"},
				},
				"required": []string{"command"},
			},
		},
	}
}

// ToolExecutor runs tool calls the agent requests against one workspace,
// with optional catalog/knowledge-base collaborators.
type ToolExecutor struct {
	Workspace  *sandbox.Workspace
	Catalog    CatalogSearcher
	Knowledge  KnowledgeSearcher
	SandboxOut int
}

// Execute runs one tool call and returns its result payload plus whether
// it represents an error (per the tool_result isError convention).
func (e *ToolExecutor) Execute(ctx context.Context, call ToolCall) (interface{}, bool) {
	switch call.Name {
	case ToolSearchCatalog:
		if e.Catalog == nil {
			return "catalog search is not configured for this run", true
		}
		query, _ := call.Input["query"].(string)
		matches, err := e.Catalog.SearchCatalog(ctx, query)
		if err != nil {
			return err.Error(), true
		}
		return matches, false

	case ToolSearchKnowledge:
		if e.Knowledge == nil {
			return "knowledge base search is not configured for this run", true
		}
		query, _ := call.Input["query"].(string)
		matches, err := e.Knowledge.SearchKnowledge(ctx, query)
		if err != nil {
			return err.Error(), true
		}
		return matches, false

	case ToolReadFile:
		path, _ := call.Input["path"].(string)
		resolved, err := e.Workspace.Resolve(path)
		if err != nil {
			return err.Error(), true
		}
		data, err := os.ReadFile(resolved)
		if err != nil {
			return err.Error(), true
		}
		return string(data), false

	case ToolWriteFile:
		path, _ := call.Input["path"].(string)
		content, _ := call.Input["content"].(string)
		resolved, err := e.Workspace.Resolve(path)
		if err != nil {
			return err.Error(), true
		}
		if err := os.MkdirAll(parentDir(resolved), 0o755); err != nil {
			return err.Error(), true
		}
		if err := os.WriteFile(resolved, []byte(content), 0o644); err != nil {
			return err.Error(), true
		}
		return fmt.Sprintf("wrote %d bytes to %s", len(content), path), false

	case ToolRunCommand:
		command, _ := call.Input["command"].(string)
		timeoutSeconds, _ := call.Input["timeout_seconds"].(float64)
		opts := sandbox.Options{Dir: e.Workspace.Root(), OutputBudget: e.SandboxOut}
		if timeoutSeconds > 0 {
			opts.Timeout = secondsToDuration(timeoutSeconds)
		}
		result, err := sandbox.Run(ctx, command, opts)
		if err != nil {
			return err.Error(), true
		}
		return result, result.ExitCode != 0

	default:
		return fmt.Sprintf("unknown tool %q", call.Name), true
	}
}

func parentDir(path string) string {
	return filepath.Dir(path)
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
