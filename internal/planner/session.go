package planner

import (
	"context"
	"fmt"

	"github.com/wiredwork/orcheo/internal/stream"
)

// RunAgentSession drives one bounded conversation with agent: it sends the
// system/user prompt, executes any tool calls the agent requests against
// executor, feeds the results back, and repeats until the agent stops
// requesting tools or maxTurns is exhausted. Every text and tool event is
// streamed outward via emit. Shared by the Planner Loop and the Connector
// Builder, which both drive one focused tool-calling session and differ
// only in prompts, tool surface, and what they do with the workspace
// afterward.
func RunAgentSession(
	ctx context.Context,
	agent AgentClient,
	systemPrompt, userPrompt string,
	maxTurns int,
	tools []ToolDefinition,
	executor *ToolExecutor,
	emit func(stream.Event),
) error {
	messages := []Message{Text(RoleUser, userPrompt)}

	for turn := 0; turn < maxTurns; turn++ {
		resp, err := agent.Complete(ctx, Request{System: systemPrompt, Messages: messages, Tools: tools})
		if err != nil {
			return fmt.Errorf("agent turn %d: %w", turn, err)
		}

		if resp.Text != "" {
			emit(stream.New(stream.TypeText, resp.Text))
		}

		if len(resp.ToolCalls) == 0 {
			messages = append(messages, Message{Role: RoleAssistant, Content: []ContentBlock{{Text: resp.Text}}})
			return nil
		}

		assistantBlocks := make([]ContentBlock, 0, len(resp.ToolCalls)+1)
		if resp.Text != "" {
			assistantBlocks = append(assistantBlocks, ContentBlock{Text: resp.Text})
		}
		for _, call := range resp.ToolCalls {
			assistantBlocks = append(assistantBlocks, ContentBlock{
				ToolUseID: call.ID,
				ToolName:  call.Name,
				ToolInput: call.Input,
			})
		}
		messages = append(messages, Message{Role: RoleAssistant, Content: assistantBlocks})

		resultBlocks := make([]ContentBlock, 0, len(resp.ToolCalls))
		for _, call := range resp.ToolCalls {
			emit(stream.New(stream.TypeToolUse, stream.ToolUseContent{Tool: call.Name, Input: call.Input}))

			result, isErr := executor.Execute(ctx, call)

			emit(stream.New(stream.TypeToolResult, stream.ToolResultContent{Tool: call.Name, Output: result, IsErr: isErr}))

			resultBlocks = append(resultBlocks, ContentBlock{
				ToolUseID:  call.ID,
				ToolResult: result,
				IsError:    isErr,
			})
		}
		messages = append(messages, Message{Role: RoleUser, Content: resultBlocks})
	}

	return fmt.Errorf("agent session exceeded %d turns without completing", maxTurns)
}
