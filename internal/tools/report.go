package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/KPowellAi/intro-to-ai-agents/internal/report"
)

const reportToolName = "save_report"

// ReportTool persists model-written reports through the report store. Save
// failures are reported back to the model as text.
type ReportTool struct {
	store *report.Store
}

// NewReportTool constructs a report tool writing through store.
func NewReportTool(store *report.Store) ReportTool {
	return ReportTool{store: store}
}

func (ReportTool) Name() string { return reportToolName }

func (ReportTool) Description() string {
	return "Save a research report to a file. Use this when you have gathered enough information and are ready to save your findings. Write the report in markdown format with clear headings."
}

func (ReportTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{"filename":{"type":"string","description":"The filename for the report, e.g. 'ai_agents_report.md'"},"content":{"type":"string","description":"The full content of the report in markdown format"}},"required":["filename","content"]}`)
}

func (r ReportTool) Execute(ctx context.Context, params json.RawMessage) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	var input struct {
		Filename string `json:"filename"`
		Content  string `json:"content"`
	}
	if err := decodeParams(params, &input); err != nil {
		return "", fmt.Errorf("decode report params: %w", err)
	}

	path, chars, err := r.store.Save(ctx, input.Filename, input.Content)
	if err != nil {
		return fmt.Sprintf("Could not save report: %v", err), nil
	}
	return fmt.Sprintf("Report saved successfully to %s (%d characters)", path, chars), nil
}
