package anthropicgateway

import (
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"

	"github.com/KPowellAi/intro-to-ai-agents/internal/llm/core"
)

// defaultMaxTokens is used when callers do not provide an explicit token budget.
const defaultMaxTokens = 1024

// mapStopReason maps Anthropic stop reasons to canonical values. Anything
// outside the loop contract becomes StopReasonOther; the raw value rides
// along on the Response.
func mapStopReason(reason string) core.StopReason {
	switch reason {
	case "end_turn":
		return core.StopReasonEndTurn
	case "tool_use":
		return core.StopReasonToolUse
	default:
		return core.StopReasonOther
	}
}

// toSDKParams validates and converts a canonical request into SDK params.
func toSDKParams(req *core.Request) (anthropic.MessageNewParams, error) {
	if req == nil {
		return anthropic.MessageNewParams{}, fmt.Errorf("%w: request is nil", core.ErrInvalidRequest)
	}
	if strings.TrimSpace(req.Model) == "" {
		return anthropic.MessageNewParams{}, fmt.Errorf("%w: model is required", core.ErrInvalidRequest)
	}

	messages, err := toSDKMessages(req.Messages)
	if err != nil {
		return anthropic.MessageNewParams{}, err
	}
	if len(messages) == 0 {
		return anthropic.MessageNewParams{}, fmt.Errorf("%w: at least one message is required", core.ErrInvalidRequest)
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(maxTokens),
		Messages:  messages,
	}

	if strings.TrimSpace(req.System) != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if len(req.Tools) > 0 {
		tools, err := toSDKTools(req.Tools)
		if err != nil {
			return anthropic.MessageNewParams{}, err
		}
		params.Tools = tools
	}

	return params, nil
}

// toSDKMessages converts canonical conversation messages into SDK messages.
func toSDKMessages(messages []core.Message) ([]anthropic.MessageParam, error) {
	out := make([]anthropic.MessageParam, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case core.RoleUser:
			blocks, err := toSDKUserBlocks(msg.Content)
			if err != nil {
				return nil, err
			}
			if len(blocks) == 0 {
				continue
			}
			out = append(out, anthropic.NewUserMessage(blocks...))
		case core.RoleAssistant:
			blocks := toSDKAssistantBlocks(msg.Content)
			if len(blocks) == 0 {
				continue
			}
			out = append(out, anthropic.NewAssistantMessage(blocks...))
		default:
			return nil, fmt.Errorf("%w: unsupported role %q", core.ErrInvalidRequest, msg.Role)
		}
	}

	return out, nil
}

// toSDKUserBlocks maps user content: text blocks plus tool_result blocks,
// which the API only accepts on user turns.
func toSDKUserBlocks(content []core.ContentBlock) ([]anthropic.ContentBlockParamUnion, error) {
	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(content))
	for _, item := range content {
		switch item.Type {
		case core.ContentTypeText:
			if item.Text == "" {
				continue
			}
			blocks = append(blocks, anthropic.NewTextBlock(item.Text))
		case core.ContentTypeToolResult:
			if item.ToolResult == nil {
				continue
			}
			if strings.TrimSpace(item.ToolResult.ToolUseID) == "" {
				return nil, fmt.Errorf("%w: tool result missing tool_use_id", core.ErrInvalidRequest)
			}
			blocks = append(blocks, anthropic.NewToolResultBlock(item.ToolResult.ToolUseID, item.ToolResult.Content, false))
		case core.ContentTypeToolUse:
			return nil, fmt.Errorf("%w: tool_use block on user message", core.ErrInvalidRequest)
		}
	}
	return blocks, nil
}

// toSDKAssistantBlocks maps assistant content: text plus tool_use blocks.
func toSDKAssistantBlocks(content []core.ContentBlock) []anthropic.ContentBlockParamUnion {
	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(content))
	for _, item := range content {
		switch item.Type {
		case core.ContentTypeText:
			if item.Text == "" {
				continue
			}
			blocks = append(blocks, anthropic.NewTextBlock(item.Text))
		case core.ContentTypeToolUse:
			if item.ToolUse == nil {
				continue
			}
			use := item.ToolUse
			if strings.TrimSpace(use.ID) == "" || strings.TrimSpace(use.Name) == "" {
				continue
			}
			input := core.DecodeJSONObjectOrEmpty(use.Arguments)
			blocks = append(blocks, anthropic.NewToolUseBlock(use.ID, input, use.Name))
		}
	}
	return blocks
}

// toSDKTools converts canonical tool specs into SDK tool definitions.
func toSDKTools(tools []core.ToolSpec) ([]anthropic.ToolUnionParam, error) {
	out := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, tool := range tools {
		schema, err := core.DecodeToolJSONSchema(tool.Schema)
		if err != nil {
			return nil, fmt.Errorf("decode tool schema for %q: %w", tool.Name, err)
		}
		inputSchema := anthropic.ToolInputSchemaParam{
			Properties: schema.Properties,
			Required:   schema.Required,
		}
		toolParam := anthropic.ToolParam{
			Name:        tool.Name,
			InputSchema: inputSchema,
		}
		if strings.TrimSpace(tool.Description) != "" {
			toolParam.Description = anthropic.String(tool.Description)
		}

		out = append(out, anthropic.ToolUnionParam{OfTool: &toolParam})
	}
	return out, nil
}

// fromSDKMessage maps one SDK message into the canonical response. Block
// kinds outside the loop contract (thinking, server tool use) are dropped.
func fromSDKMessage(message *anthropic.Message) (*core.Response, error) {
	if message == nil {
		return nil, fmt.Errorf("anthropic response message is nil")
	}

	blocks := make([]core.ContentBlock, 0, len(message.Content))
	for _, item := range message.Content {
		switch block := item.AsAny().(type) {
		case anthropic.TextBlock:
			blocks = append(blocks, core.NewTextBlock(block.Text))
		case anthropic.ToolUseBlock:
			rawInput, err := core.MarshalToolInput(block.Input)
			if err != nil {
				return nil, fmt.Errorf("marshal tool_use input: %w", err)
			}
			blocks = append(blocks, core.NewToolUseBlock(block.ID, block.Name, rawInput))
		}
	}

	raw := string(message.StopReason)
	return &core.Response{
		Blocks:        blocks,
		StopReason:    mapStopReason(raw),
		RawStopReason: raw,
		Usage: core.Usage{
			InputTokens:  int(message.Usage.InputTokens),
			OutputTokens: int(message.Usage.OutputTokens),
		},
	}, nil
}
