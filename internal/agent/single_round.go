package agent

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/KPowellAi/intro-to-ai-agents/internal/llm"
)

// noTextFallback stands in for the answer when the closing response of a
// single round carries no text block.
const noTextFallback = "No text response received."

// SingleRound answers one question with at most one round of tool dispatch:
// if the first response requests tools, the full batch is executed and the
// gateway is called exactly once more for the final answer. Questions the
// model answers directly cost a single gateway call.
func (a *Agent) SingleRound(ctx context.Context, question string) (Outcome, error) {
	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		return Outcome{}, ErrTaskRequired
	}

	logger := a.logger.With("run_id", uuid.NewString())

	conversation := NewConversation()
	conversation.AppendUserText(trimmed)

	response, err := a.complete(ctx, logger, conversation)
	if err != nil {
		return Outcome{}, err
	}

	switch response.StopReason {
	case llm.StopReasonEndTurn:
		text, ok := llm.FirstText(response.Blocks)
		if !ok {
			text = noTextFallback
		}
		return Outcome{
			Status:        StatusDone,
			FinalText:     text,
			RawStopReason: response.RawStopReason,
			Messages:      conversation.Messages(),
		}, nil

	case llm.StopReasonToolUse:
		uses := llm.CollectToolUses(response.Blocks)
		if len(uses) == 0 {
			return Outcome{
				Status:        StatusHaltedUnexpected,
				RawStopReason: response.RawStopReason,
				Messages:      conversation.Messages(),
			}, nil
		}

		conversation.AppendAssistantBlocks(response.Blocks)
		results := a.dispatchBatch(ctx, logger, uses, 0)
		conversation.AppendToolResults(results)

		final, err := a.complete(ctx, logger, conversation)
		if err != nil {
			return Outcome{}, err
		}

		text, ok := llm.FirstText(final.Blocks)
		if !ok {
			text = noTextFallback
		}
		return Outcome{
			Status:        StatusDone,
			FinalText:     text,
			RawStopReason: final.RawStopReason,
			ToolCallCount: len(uses),
			Messages:      conversation.Messages(),
		}, nil

	default:
		return Outcome{
			Status:        StatusHaltedUnexpected,
			RawStopReason: response.RawStopReason,
			Messages:      conversation.Messages(),
		}, nil
	}
}
