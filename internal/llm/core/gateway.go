package core

import (
	"context"
	"encoding/json"
)

// Gateway performs one blocking chat-completion call against the hosted
// model provider. It is the only component permitted to do network I/O, it
// keeps no state across calls, and it never retries: transport and provider
// failures surface to the caller unmodified.
type Gateway interface {
	Complete(ctx context.Context, req *Request) (*Response, error)
}

// ToolSpec describes a tool exposed to the model.
// Schema can be generated from a Go struct via NewToolSpecFromStruct.
type ToolSpec struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Schema      json.RawMessage `json:"schema"`
}

// Clone returns a copy with a detached schema payload.
func (s ToolSpec) Clone() ToolSpec {
	copied := s
	copied.Schema = append(json.RawMessage(nil), s.Schema...)
	return copied
}

// CloneToolSpecs deep-copies a spec sequence.
func CloneToolSpecs(specs []ToolSpec) []ToolSpec {
	if len(specs) == 0 {
		return nil
	}
	copied := make([]ToolSpec, 0, len(specs))
	for _, spec := range specs {
		copied = append(copied, spec.Clone())
	}
	return copied
}

// Request is the provider-agnostic completion request.
type Request struct {
	Model     string
	System    string
	Messages  []Message
	Tools     []ToolSpec
	MaxTokens int
}

// Response is the result of one gateway call. StopReason is tool_use if and
// only if Blocks contains at least one tool_use block; RawStopReason keeps
// the provider's literal value for diagnostics when StopReason is other.
type Response struct {
	Blocks        []ContentBlock
	StopReason    StopReason
	RawStopReason string
	Usage         Usage
}
