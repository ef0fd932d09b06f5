package core

import "encoding/json"

// Role identifies the message author in the canonical conversation format.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// StopReason is the canonical reason a model response ended. Values outside
// the provider contract map to StopReasonOther with the raw value preserved
// on the Response.
type StopReason string

const (
	StopReasonEndTurn StopReason = "end_turn"
	StopReasonToolUse StopReason = "tool_use"
	StopReasonOther   StopReason = "other"
)

// ContentType identifies content block variants.
type ContentType string

const (
	ContentTypeText       ContentType = "text"
	ContentTypeToolUse    ContentType = "tool_use"
	ContentTypeToolResult ContentType = "tool_result"
)

// ToolUse is a model-emitted tool invocation.
type ToolUse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// ToolResult carries the textual outcome for one prior tool invocation.
// ToolUseID must reference a ToolUse.ID from the immediately preceding
// assistant message.
type ToolResult struct {
	ToolUseID string `json:"tool_use_id"`
	Content   string `json:"content"`
}

// ContentBlock is a canonical content unit. Exactly one variant is populated,
// selected by Type; consumers switch exhaustively on Type.
type ContentBlock struct {
	Type       ContentType `json:"type"`
	Text       string      `json:"text,omitempty"`
	ToolUse    *ToolUse    `json:"tool_use,omitempty"`
	ToolResult *ToolResult `json:"tool_result,omitempty"`
}

// NewTextBlock builds a text content block.
func NewTextBlock(text string) ContentBlock {
	return ContentBlock{Type: ContentTypeText, Text: text}
}

// NewToolUseBlock builds a tool_use content block with detached arguments.
func NewToolUseBlock(id, name string, arguments json.RawMessage) ContentBlock {
	return ContentBlock{
		Type: ContentTypeToolUse,
		ToolUse: &ToolUse{
			ID:        id,
			Name:      name,
			Arguments: append(json.RawMessage(nil), arguments...),
		},
	}
}

// NewToolResultBlock builds a tool_result content block.
func NewToolResultBlock(toolUseID, content string) ContentBlock {
	return ContentBlock{
		Type:       ContentTypeToolResult,
		ToolResult: &ToolResult{ToolUseID: toolUseID, Content: content},
	}
}

// Clone returns a deep copy safe to mutate independently.
func (b ContentBlock) Clone() ContentBlock {
	copied := ContentBlock{Type: b.Type, Text: b.Text}
	if b.ToolUse != nil {
		use := *b.ToolUse
		use.Arguments = append(json.RawMessage(nil), b.ToolUse.Arguments...)
		copied.ToolUse = &use
	}
	if b.ToolResult != nil {
		result := *b.ToolResult
		copied.ToolResult = &result
	}
	return copied
}

// CloneBlocks deep-copies a block sequence.
func CloneBlocks(blocks []ContentBlock) []ContentBlock {
	if len(blocks) == 0 {
		return nil
	}
	copied := make([]ContentBlock, 0, len(blocks))
	for _, block := range blocks {
		copied = append(copied, block.Clone())
	}
	return copied
}

// Message is the provider-agnostic conversation record. Messages are
// immutable once appended to a conversation.
type Message struct {
	Role    Role           `json:"role"`
	Content []ContentBlock `json:"content,omitempty"`
}

// Clone returns a deep copy of the message.
func (m Message) Clone() Message {
	return Message{Role: m.Role, Content: CloneBlocks(m.Content)}
}

// CloneMessages deep-copies a message sequence.
func CloneMessages(messages []Message) []Message {
	if len(messages) == 0 {
		return nil
	}
	copied := make([]Message, 0, len(messages))
	for _, msg := range messages {
		copied = append(copied, msg.Clone())
	}
	return copied
}

// FirstText returns the value of the first text block, if any.
func FirstText(blocks []ContentBlock) (string, bool) {
	for _, block := range blocks {
		if block.Type == ContentTypeText {
			return block.Text, true
		}
	}
	return "", false
}

// CollectToolUses returns all tool_use payloads in block order.
func CollectToolUses(blocks []ContentBlock) []ToolUse {
	var uses []ToolUse
	for _, block := range blocks {
		if block.Type != ContentTypeToolUse || block.ToolUse == nil {
			continue
		}
		use := *block.ToolUse
		use.Arguments = append(json.RawMessage(nil), block.ToolUse.Arguments...)
		uses = append(uses, use)
	}
	return uses
}

// Usage tracks provider token accounting for one gateway call.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// TokenCount returns the total tokens consumed by one call.
func (u Usage) TokenCount() int {
	return u.InputTokens + u.OutputTokens
}
