// Package anthropicagent implements planner.AgentClient over the Anthropic
// Claude Messages API via github.com/anthropics/anthropic-sdk-go.
package anthropicagent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/wiredwork/orcheo/internal/planner"
)

// MessagesClient captures the subset of the Anthropic SDK used by Client,
// so tests can substitute a double instead of a live *sdk.MessageService.
type MessagesClient interface {
	New(ctx context.Context, body sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

// Options configures Client.
type Options struct {
	// Model is the Claude model identifier (e.g. string(sdk.ModelClaudeSonnet4_5)).
	Model string
	// MaxTokens bounds one completion. Required to be positive.
	MaxTokens int
	// Temperature is passed through when positive; the SDK default applies otherwise.
	Temperature float64
}

// Client implements planner.AgentClient on top of Anthropic Claude Messages.
type Client struct {
	msg         MessagesClient
	model       string
	maxTokens   int
	temperature float64
}

// New builds a Client from an already-constructed Anthropic messages client.
func New(msg MessagesClient, opts Options) (*Client, error) {
	if msg == nil {
		return nil, errors.New("anthropicagent: messages client is required")
	}
	if opts.Model == "" {
		return nil, errors.New("anthropicagent: model identifier is required")
	}
	if opts.MaxTokens <= 0 {
		return nil, errors.New("anthropicagent: max tokens must be positive")
	}
	return &Client{msg: msg, model: opts.Model, maxTokens: opts.MaxTokens, temperature: opts.Temperature}, nil
}

// NewFromAPIKey constructs a Client using the Anthropic SDK's default HTTP
// transport, authenticated with apiKey.
func NewFromAPIKey(apiKey, model string, maxTokens int) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("anthropicagent: api key is required")
	}
	ac := sdk.NewClient(option.WithAPIKey(apiKey))
	return New(&ac.Messages, Options{Model: model, MaxTokens: maxTokens})
}

// Complete implements planner.AgentClient.
func (c *Client) Complete(ctx context.Context, req planner.Request) (planner.Response, error) {
	params, err := c.prepareRequest(req)
	if err != nil {
		return planner.Response{}, err
	}
	msg, err := c.msg.New(ctx, *params)
	if err != nil {
		return planner.Response{}, fmt.Errorf("anthropicagent: messages.new: %w", err)
	}
	return translateResponse(msg), nil
}

func (c *Client) prepareRequest(req planner.Request) (*sdk.MessageNewParams, error) {
	if len(req.Messages) == 0 {
		return nil, errors.New("anthropicagent: at least one message is required")
	}

	msgs, err := encodeMessages(req.Messages)
	if err != nil {
		return nil, err
	}

	params := sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		Messages:  msgs,
	}
	if req.System != "" {
		params.System = []sdk.TextBlockParam{{Text: req.System}}
	}
	if c.temperature > 0 {
		params.Temperature = sdk.Float(c.temperature)
	}
	if len(req.Tools) > 0 {
		toolParams, err := encodeTools(req.Tools)
		if err != nil {
			return nil, err
		}
		params.Tools = toolParams
	}
	return &params, nil
}

func encodeMessages(msgs []planner.Message) ([]sdk.MessageParam, error) {
	out := make([]sdk.MessageParam, 0, len(msgs))
	for _, m := range msgs {
		blocks := make([]sdk.ContentBlockParamUnion, 0, len(m.Content))
		for _, block := range m.Content {
			switch {
			case block.ToolResult != nil || block.ToolUseID != "" && block.ToolName == "":
				blocks = append(blocks, encodeToolResult(block))
			case block.ToolName != "":
				blocks = append(blocks, sdk.NewToolUseBlock(block.ToolUseID, block.ToolInput, block.ToolName))
			case block.Text != "":
				blocks = append(blocks, sdk.NewTextBlock(block.Text))
			}
		}
		if len(blocks) == 0 {
			continue
		}
		switch m.Role {
		case planner.RoleUser:
			out = append(out, sdk.NewUserMessage(blocks...))
		case planner.RoleAssistant:
			out = append(out, sdk.NewAssistantMessage(blocks...))
		default:
			return nil, fmt.Errorf("anthropicagent: unsupported message role %q", m.Role)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("anthropicagent: at least one user/assistant message is required")
	}
	return out, nil
}

func encodeToolResult(block planner.ContentBlock) sdk.ContentBlockParamUnion {
	var content string
	switch v := block.ToolResult.(type) {
	case nil:
		content = ""
	case string:
		content = v
	default:
		if data, err := json.Marshal(v); err == nil {
			content = string(data)
		}
	}
	return sdk.NewToolResultBlock(block.ToolUseID, content, block.IsError)
}

func encodeTools(defs []planner.ToolDefinition) ([]sdk.ToolUnionParam, error) {
	out := make([]sdk.ToolUnionParam, 0, len(defs))
	for _, def := range defs {
		if def.Name == "" {
			continue
		}
		if def.Description == "" {
			return nil, fmt.Errorf("anthropicagent: tool %q is missing a description", def.Name)
		}
		schema, err := toolInputSchema(def.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("anthropicagent: tool %q schema: %w", def.Name, err)
		}
		u := sdk.ToolUnionParamOfTool(schema, def.Name)
		if u.OfTool != nil {
			u.OfTool.Description = sdk.String(def.Description)
		}
		out = append(out, u)
	}
	return out, nil
}

func toolInputSchema(schema map[string]interface{}) (sdk.ToolInputSchemaParam, error) {
	if schema == nil {
		return sdk.ToolInputSchemaParam{}, nil
	}
	return sdk.ToolInputSchemaParam{ExtraFields: schema}, nil
}

func translateResponse(msg *sdk.Message) planner.Response {
	resp := planner.Response{StopReason: string(msg.StopReason)}

	var texts []string
	for _, block := range msg.Content {
		switch block.Type {
		case "text":
			if block.Text != "" {
				texts = append(texts, block.Text)
			}
		case "tool_use":
			// block.Input's static type depends on the SDK's content-block union
			// representation; round-tripping through json.Marshal/Unmarshal
			// normalizes it into a plain map regardless of whether the SDK
			// already decoded it or left it as raw JSON.
			if data, err := json.Marshal(block.Input); err == nil {
				var input map[string]interface{}
				if err := json.Unmarshal(data, &input); err == nil {
					resp.ToolCalls = append(resp.ToolCalls, planner.ToolCall{
						ID: block.ID, Name: block.Name, Input: input,
					})
				}
			}
		}
	}
	if len(texts) > 0 {
		joined := texts[0]
		for _, t := range texts[1:] {
			joined += "\n" + t
		}
		resp.Text = joined
	}

	resp.Usage = planner.Usage{
		InputTokens:  int(msg.Usage.InputTokens),
		OutputTokens: int(msg.Usage.OutputTokens),
	}
	return resp
}
