package agent

import (
	"github.com/KPowellAi/intro-to-ai-agents/internal/llm"
)

// Conversation holds the ordered message history for one task. It is
// append-only: messages are deep-copied on the way in and on the way out, so
// an appended message can never be mutated afterwards.
type Conversation struct {
	messages []llm.Message
}

// NewConversation constructs an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{}
}

// AppendUserText appends a user message holding a single text block.
func (c *Conversation) AppendUserText(text string) {
	c.messages = append(c.messages, llm.Message{
		Role:    llm.RoleUser,
		Content: []llm.ContentBlock{llm.NewTextBlock(text)},
	})
}

// AppendAssistantBlocks appends a full model response as one assistant
// message. Recording the response verbatim, tool_use blocks included, is what
// lets later tool_result blocks reference the tool_use IDs it introduced.
func (c *Conversation) AppendAssistantBlocks(blocks []llm.ContentBlock) {
	c.messages = append(c.messages, llm.Message{
		Role:    llm.RoleAssistant,
		Content: llm.CloneBlocks(blocks),
	})
}

// AppendToolResults appends one user message carrying the tool_result blocks
// for every tool_use of the immediately preceding assistant message.
func (c *Conversation) AppendToolResults(results []llm.ContentBlock) {
	c.messages = append(c.messages, llm.Message{
		Role:    llm.RoleUser,
		Content: llm.CloneBlocks(results),
	})
}

// Messages returns a defensive copy of the history.
func (c *Conversation) Messages() []llm.Message {
	return llm.CloneMessages(c.messages)
}

// Len reports the number of appended messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}
