package llm

import (
	"encoding/json"

	"github.com/KPowellAi/intro-to-ai-agents/internal/llm/core"
	anthropicgateway "github.com/KPowellAi/intro-to-ai-agents/internal/llm/providers/anthropic"
	mockgateway "github.com/KPowellAi/intro-to-ai-agents/internal/llm/providers/mock"
)

type (
	// Gateway is the public non-streaming model contract.
	Gateway = core.Gateway

	// Request and Response aliases define the public completion protocol.
	Request  = core.Request
	Response = core.Response
	ToolSpec = core.ToolSpec

	// Conversation-model aliases.
	Role        = core.Role
	StopReason  = core.StopReason
	ContentType = core.ContentType

	// Message and usage aliases.
	ContentBlock = core.ContentBlock
	ToolUse      = core.ToolUse
	ToolResult   = core.ToolResult
	Message      = core.Message
	Usage        = core.Usage

	// Error-taxonomy aliases for provider and transport failures.
	TransportError = core.TransportError
	ProviderError  = core.ProviderError

	// Anthropic* aliases expose provider-specific configuration and implementation.
	AnthropicConfig  = anthropicgateway.Config
	AnthropicGateway = anthropicgateway.Gateway

	// Mock* aliases expose the scripted gateway for tests and offline demos.
	MockGateway = mockgateway.Gateway
	MockStep    = mockgateway.Step
)

const (
	RoleUser      = core.RoleUser
	RoleAssistant = core.RoleAssistant

	StopReasonEndTurn = core.StopReasonEndTurn
	StopReasonToolUse = core.StopReasonToolUse
	StopReasonOther   = core.StopReasonOther

	ContentTypeText       = core.ContentTypeText
	ContentTypeToolUse    = core.ContentTypeToolUse
	ContentTypeToolResult = core.ContentTypeToolResult
)

var (
	// ErrInvalidRequest indicates malformed canonical request payloads.
	ErrInvalidRequest = core.ErrInvalidRequest
	// ErrMissingAPIKey indicates missing Anthropic API credentials.
	ErrMissingAPIKey = core.ErrMissingAPIKey
)

// NewTextBlock builds a text content block.
func NewTextBlock(text string) ContentBlock {
	return core.NewTextBlock(text)
}

// NewToolUseBlock builds a tool_use content block with detached arguments.
func NewToolUseBlock(id, name string, arguments json.RawMessage) ContentBlock {
	return core.NewToolUseBlock(id, name, arguments)
}

// NewToolResultBlock builds a tool_result content block.
func NewToolResultBlock(toolUseID, content string) ContentBlock {
	return core.NewToolResultBlock(toolUseID, content)
}

// FirstText returns the first non-empty text block, if any.
func FirstText(blocks []ContentBlock) (string, bool) {
	return core.FirstText(blocks)
}

// CollectToolUses extracts tool_use invocations in block order.
func CollectToolUses(blocks []ContentBlock) []ToolUse {
	return core.CollectToolUses(blocks)
}

// CloneBlocks deep-copies a block slice.
func CloneBlocks(blocks []ContentBlock) []ContentBlock {
	return core.CloneBlocks(blocks)
}

// CloneMessages deep-copies a message slice.
func CloneMessages(messages []Message) []Message {
	return core.CloneMessages(messages)
}

// CloneToolSpecs deep-copies a tool spec slice.
func CloneToolSpecs(specs []ToolSpec) []ToolSpec {
	return core.CloneToolSpecs(specs)
}

// NewToolSpecFromStruct reflects a Go struct into a normalized tool schema.
func NewToolSpecFromStruct(name, description string, schemaStruct any) (ToolSpec, error) {
	return core.NewToolSpecFromStruct(name, description, schemaStruct)
}

// NewAnthropicGateway constructs an Anthropic gateway with normalized defaults.
func NewAnthropicGateway(cfg AnthropicConfig) *AnthropicGateway {
	return anthropicgateway.New(cfg)
}

// NewMockGateway constructs a scripted gateway that replays steps in order.
func NewMockGateway(steps ...MockStep) *MockGateway {
	return mockgateway.New(steps...)
}
