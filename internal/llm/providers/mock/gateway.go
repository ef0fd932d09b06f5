package mockgateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KPowellAi/intro-to-ai-agents/internal/llm/core"
)

// ErrScriptExhausted is returned when Complete is called more times than the
// script has steps.
var ErrScriptExhausted = errors.New("mock gateway script exhausted")

// Step is one scripted Complete outcome: a response or an error.
type Step struct {
	Response *core.Response
	Err      error
}

// Gateway replays a scripted sequence of responses for deterministic tests
// and offline demos. Each Complete call consumes the next step and records a
// deep copy of the request it received.
type Gateway struct {
	Delay time.Duration

	mu    sync.Mutex
	steps []Step
	next  int
	calls []*core.Request
}

// New constructs a gateway that will replay the given steps in order.
func New(steps ...Step) *Gateway {
	return &Gateway{steps: steps}
}

// Complete pops the next scripted step. Requests are recorded even when the
// script is exhausted, so tests can assert on every attempted call.
func (g *Gateway) Complete(ctx context.Context, req *core.Request) (*core.Response, error) {
	if g.Delay > 0 {
		timer := time.NewTimer(g.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, cloneRequest(req))

	if g.next >= len(g.steps) {
		return nil, fmt.Errorf("%w: call %d", ErrScriptExhausted, g.next+1)
	}
	step := g.steps[g.next]
	g.next++

	if step.Err != nil {
		return nil, step.Err
	}
	return cloneResponse(step.Response), nil
}

// CallCount reports how many times Complete has been invoked.
func (g *Gateway) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

// Requests returns the recorded requests in call order.
func (g *Gateway) Requests() []*core.Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*core.Request, len(g.calls))
	copy(out, g.calls)
	return out
}

// LastRequest returns the most recently recorded request, or nil.
func (g *Gateway) LastRequest() *core.Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.calls) == 0 {
		return nil
	}
	return g.calls[len(g.calls)-1]
}

// NewToolUseID mints an identifier in the provider's toolu_ shape.
func NewToolUseID() string {
	return "toolu_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// TextResponse builds an end_turn response holding a single text block.
func TextResponse(text string) *core.Response {
	return &core.Response{
		Blocks:        []core.ContentBlock{core.NewTextBlock(text)},
		StopReason:    core.StopReasonEndTurn,
		RawStopReason: "end_turn",
	}
}

// ToolCall names one tool invocation for ToolUseResponse. Arguments must be
// a JSON object literal.
type ToolCall struct {
	Name      string
	Arguments string
}

// ToolUseResponse builds a tool_use response with one tool_use block per
// call, each carrying a freshly minted ID.
func ToolUseResponse(calls ...ToolCall) *core.Response {
	blocks := make([]core.ContentBlock, 0, len(calls))
	for _, call := range calls {
		blocks = append(blocks, core.NewToolUseBlock(NewToolUseID(), call.Name, json.RawMessage(call.Arguments)))
	}
	return &core.Response{
		Blocks:        blocks,
		StopReason:    core.StopReasonToolUse,
		RawStopReason: "tool_use",
	}
}

func cloneRequest(req *core.Request) *core.Request {
	if req == nil {
		return nil
	}
	out := *req
	out.Messages = core.CloneMessages(req.Messages)
	out.Tools = core.CloneToolSpecs(req.Tools)
	return &out
}

func cloneResponse(resp *core.Response) *core.Response {
	if resp == nil {
		return nil
	}
	out := *resp
	out.Blocks = core.CloneBlocks(resp.Blocks)
	return &out
}
