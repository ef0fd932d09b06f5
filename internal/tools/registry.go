package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrToolRequired          = errors.New("tool is required")
	ErrToolNameRequired      = errors.New("tool name is required")
	ErrToolAlreadyRegistered = errors.New("tool already registered")
	ErrToolNotFound          = errors.New("tool not found")
)

// Tool is the canonical runtime contract for all built-in tools. Execute
// returns the model-facing textual result; implementations absorb their own
// operational failures into that text and reserve the error return for
// conditions the dispatcher should describe (cancellation, bad params).
type Tool interface {
	Name() string
	Description() string
	Schema() json.RawMessage
	Execute(ctx context.Context, params json.RawMessage) (string, error)
}

// Registry stores tools by name, preserves registration order for catalog
// listings, and dispatches calls by lookup.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewRegistry constructs a registry holding the given tools in order.
// Duplicate names fail registration, so setup errors surface immediately.
func NewRegistry(initial ...Tool) (*Registry, error) {
	r := &Registry{
		tools: make(map[string]Tool, len(initial)),
	}
	for _, tool := range initial {
		if err := r.Register(tool); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register inserts a tool by its canonical name.
func (r *Registry) Register(tool Tool) error {
	if tool == nil {
		return ErrToolRequired
	}
	name := strings.TrimSpace(tool.Name())
	if name == "" {
		return ErrToolNameRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("%w: %s", ErrToolAlreadyRegistered, name)
	}
	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// Get returns a registered tool by name.
func (r *Registry) Get(name string) (Tool, error) {
	lookup := strings.TrimSpace(name)
	if lookup == "" {
		return nil, ErrToolNameRequired
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, ok := r.tools[lookup]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, lookup)
	}
	return tool, nil
}

// Tools returns all registered tools in registration order.
func (r *Registry) Tools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Len reports the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Dispatch resolves and runs a named tool, always returning a textual
// result. Unknown names produce a sentinel the model can read and recover
// from; argument-schema mismatches and residual execution errors are
// likewise rendered as text. Dispatch never panics and never returns an
// error to the caller.
func (r *Registry) Dispatch(ctx context.Context, name string, arguments json.RawMessage) string {
	tool, err := r.Get(name)
	if err != nil {
		return fmt.Sprintf("Unknown tool: %s", strings.TrimSpace(name))
	}

	if err := validateArguments(tool.Schema(), arguments); err != nil {
		return fmt.Sprintf("Error executing tool: %v", err)
	}

	content, err := tool.Execute(ctx, arguments)
	if err != nil {
		return fmt.Sprintf("Error executing tool: %v", err)
	}
	return content
}
