package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/KPowellAi/intro-to-ai-agents/internal/llm"
)

// doneFallbackText stands in for the final answer when an end_turn response
// carries no text block.
const doneFallbackText = "Task complete."

// Run executes the full agent loop for one task: send the conversation,
// dispatch every requested tool call, feed the results back, and repeat until
// the model finishes or the tool-call budget runs out. Halts are reported as
// outcomes; the error return is reserved for gateway and context failures.
func (a *Agent) Run(ctx context.Context, task string) (Outcome, error) {
	trimmed := strings.TrimSpace(task)
	if trimmed == "" {
		return Outcome{}, ErrTaskRequired
	}

	logger := a.logger.With("run_id", uuid.NewString())
	logger.Debug("run started", "model", a.model, "max_iterations", a.maxIterations)

	conversation := NewConversation()
	conversation.AppendUserText(trimmed)

	toolCallCount := 0
	for {
		response, err := a.complete(ctx, logger, conversation)
		if err != nil {
			return Outcome{}, err
		}

		switch response.StopReason {
		case llm.StopReasonEndTurn:
			text, ok := llm.FirstText(response.Blocks)
			if !ok {
				text = doneFallbackText
			}
			logger.Debug("run finished", "tool_calls", toolCallCount)
			return Outcome{
				Status:        StatusDone,
				FinalText:     text,
				RawStopReason: response.RawStopReason,
				ToolCallCount: toolCallCount,
				Messages:      conversation.Messages(),
			}, nil

		case llm.StopReasonToolUse:
			uses := llm.CollectToolUses(response.Blocks)
			if len(uses) == 0 {
				// Provider contract violation: tool_use with no tool_use blocks.
				logger.Debug("run halted on empty tool_use response")
				return Outcome{
					Status:        StatusHaltedUnexpected,
					RawStopReason: response.RawStopReason,
					ToolCallCount: toolCallCount,
					Messages:      conversation.Messages(),
				}, nil
			}

			conversation.AppendAssistantBlocks(response.Blocks)
			results := a.dispatchBatch(ctx, logger, uses, toolCallCount)
			toolCallCount += len(uses)
			conversation.AppendToolResults(results)

			// The budget is checked after the batch, never mid-batch: every
			// tool_use of the response already has its matching tool_result.
			if toolCallCount >= a.maxIterations {
				logger.Debug("run halted on iteration budget", "tool_calls", toolCallCount)
				return Outcome{
					Status:        StatusHaltedLimit,
					RawStopReason: response.RawStopReason,
					ToolCallCount: toolCallCount,
					Messages:      conversation.Messages(),
				}, nil
			}

		default:
			logger.Debug("run halted on unexpected stop reason", "raw_stop_reason", response.RawStopReason)
			return Outcome{
				Status:        StatusHaltedUnexpected,
				RawStopReason: response.RawStopReason,
				ToolCallCount: toolCallCount,
				Messages:      conversation.Messages(),
			}, nil
		}
	}
}

func (a *Agent) complete(ctx context.Context, logger *slog.Logger, conversation *Conversation) (*llm.Response, error) {
	request := &llm.Request{
		Model:     a.model,
		System:    a.system,
		Messages:  conversation.Messages(),
		Tools:     llm.CloneToolSpecs(a.specs),
		MaxTokens: a.maxTokens,
	}

	started := time.Now()
	response, err := a.gateway.Complete(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("gateway complete: %w", err)
	}

	logger.Debug("gateway round-trip",
		"stop_reason", response.StopReason,
		"tokens", response.Usage.TokenCount(),
		"elapsed", time.Since(started),
	)
	return response, nil
}

// dispatchBatch runs every tool_use of one response and collects one
// tool_result block per call, in block order. Dispatch is total, so a batch
// always yields a full set of results.
func (a *Agent) dispatchBatch(ctx context.Context, logger *slog.Logger, uses []llm.ToolUse, priorCalls int) []llm.ContentBlock {
	if a.parallelTools && len(uses) > 1 {
		return a.dispatchParallel(ctx, logger, uses, priorCalls)
	}

	blocks := make([]llm.ContentBlock, 0, len(uses))
	for i, use := range uses {
		step := priorCalls + i + 1
		a.notifyToolUse(step, use)

		started := time.Now()
		result := a.registry.Dispatch(ctx, use.Name, use.Arguments)
		logger.Debug("tool dispatched", "tool", use.Name, "step", step, "elapsed", time.Since(started))

		a.notifyToolResult(step, use, result)
		blocks = append(blocks, llm.NewToolResultBlock(use.ID, result))
	}
	return blocks
}

// dispatchParallel executes independent dispatches of one batch concurrently.
// Results are collected by block index, so tool_result order always matches
// tool_use order regardless of completion order.
func (a *Agent) dispatchParallel(ctx context.Context, logger *slog.Logger, uses []llm.ToolUse, priorCalls int) []llm.ContentBlock {
	results := make([]string, len(uses))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxParallelDispatch)
	started := time.Now()
	for i, use := range uses {
		a.notifyToolUse(priorCalls+i+1, use)
		group.Go(func() error {
			results[i] = a.registry.Dispatch(groupCtx, use.Name, use.Arguments)
			return nil
		})
	}
	// Dispatch never returns an error, so Wait only synchronizes.
	_ = group.Wait()
	logger.Debug("tool batch dispatched", "tools", len(uses), "elapsed", time.Since(started))

	blocks := make([]llm.ContentBlock, 0, len(uses))
	for i, use := range uses {
		a.notifyToolResult(priorCalls+i+1, use, results[i])
		blocks = append(blocks, llm.NewToolResultBlock(use.ID, results[i]))
	}
	return blocks
}
