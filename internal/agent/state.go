package agent

import (
	"github.com/KPowellAi/intro-to-ai-agents/internal/llm"
)

// Status is the terminal state of one agent run.
type Status string

const (
	// StatusDone indicates the model finished the task normally.
	StatusDone Status = "done"
	// StatusHaltedLimit indicates the run was abandoned after exhausting the
	// tool-call budget. It is a safety bound, not an error.
	StatusHaltedLimit Status = "halted_limit"
	// StatusHaltedUnexpected indicates the provider returned a stop reason the
	// loop does not understand, or a tool_use response with no tool_use blocks.
	StatusHaltedUnexpected Status = "halted_unexpected"
)

// Outcome is the explicit terminal value of one run. Every run that does not
// fail with a gateway or context error produces one; the loop never ends
// silently.
type Outcome struct {
	Status        Status
	FinalText     string
	RawStopReason string
	ToolCallCount int
	Messages      []llm.Message
}
