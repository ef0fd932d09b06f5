package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/KPowellAi/intro-to-ai-agents/internal/llm"
)

const (
	bannerRuleWidth    = 50
	displayResultLimit = 400
)

// Trace prints the linear, styled progress of the non-interactive examples:
// banners, per-question headers, tool-use step lines, answers, and the
// per-tool run summary. It never shortens anything fed back to the model,
// only what is shown on screen.
type Trace struct {
	out        io.Writer
	theme      Theme
	toolCounts map[string]int
}

// NewTrace constructs a trace writing styled lines to out.
func NewTrace(out io.Writer, theme Theme) *Trace {
	return &Trace{
		out:        out,
		theme:      theme,
		toolCounts: make(map[string]int),
	}
}

// Banner prints a ruled title block.
func (t *Trace) Banner(lines ...string) {
	rule := strings.Repeat("=", bannerRuleWidth)
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, t.theme.HeaderStyle.Render(rule))
	for _, line := range lines {
		fmt.Fprintln(t.out, t.theme.HeaderStyle.Render("  "+line))
	}
	fmt.Fprintln(t.out, t.theme.HeaderStyle.Render(rule))
}

// QuestionHeader separates one demo question from the next.
func (t *Trace) QuestionHeader(n int, question string) {
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, t.theme.HeaderStyle.Render(fmt.Sprintf("=== Question %d ===", n)))
	fmt.Fprintln(t.out, t.theme.UserPrefixStyle.Render("You:")+" "+question)
	fmt.Fprintln(t.out)
}

// Task announces the research task.
func (t *Trace) Task(task string) {
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, t.theme.UserPrefixStyle.Render("Task:")+" "+task)
	fmt.Fprintln(t.out)
}

// StartWork marks the beginning of an autonomous run.
func (t *Trace) StartWork() {
	fmt.Fprintln(t.out, t.theme.HeaderStyle.Render("--- Agent starting work ---"))
	fmt.Fprintln(t.out)
}

// AgentToolUse prints the single-round dispatch lines: tool name and input.
func (t *Trace) AgentToolUse(use llm.ToolUse) {
	t.record(use.Name)
	fmt.Fprintln(t.out, t.theme.TraceStyle.Render("  [Agent] Using tool: "+use.Name))
	fmt.Fprintln(t.out, t.theme.TraceStyle.Render("  [Agent] Input: "+compactJSON(use.Arguments)))
}

// AgentToolResult prints the dispatch result, shortened for display only.
func (t *Trace) AgentToolResult(result string) {
	fmt.Fprintln(t.out, t.theme.TraceStyle.Render("  [Agent] Result: "+shortenForDisplay(result)))
	fmt.Fprintln(t.out)
}

// StepToolUse prints one numbered loop step with a tool-specific detail line.
func (t *Trace) StepToolUse(step int, use llm.ToolUse) {
	t.record(use.Name)
	fmt.Fprintln(t.out, t.theme.TraceStyle.Render(fmt.Sprintf("  [Step %d] Using tool: %s", step, use.Name)))

	switch use.Name {
	case "search_web":
		if query := gjson.GetBytes(use.Arguments, "query"); query.Exists() {
			fmt.Fprintln(t.out, t.theme.TraceStyle.Render(fmt.Sprintf("           Searching for: %q", query.String())))
		}
	case "get_page_content":
		if url := gjson.GetBytes(use.Arguments, "url"); url.Exists() {
			fmt.Fprintln(t.out, t.theme.TraceStyle.Render("           Reading: "+url.String()))
		}
	case "save_report":
		if filename := gjson.GetBytes(use.Arguments, "filename"); filename.Exists() {
			fmt.Fprintln(t.out, t.theme.TraceStyle.Render("           Saving report: "+filename.String()))
		}
	}
}

// Answer prints the final model reply.
func (t *Trace) Answer(text string) {
	fmt.Fprintln(t.out, t.theme.AssistantPrefixStyle.Render("Claude:")+" "+text)
}

// Finished marks a completed run.
func (t *Trace) Finished(toolCalls int) {
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, t.theme.HeaderStyle.Render(fmt.Sprintf("--- Agent finished (%d tool calls) ---", toolCalls)))
	fmt.Fprintln(t.out)
}

// LimitReached reports the iteration-budget halt.
func (t *Trace) LimitReached() {
	fmt.Fprintln(t.out, t.theme.ErrorStyle.Render("Agent reached maximum iterations. Stopping."))
}

// Unexpected reports an unrecognized stop reason with its raw value.
func (t *Trace) Unexpected(rawStopReason string) {
	fmt.Fprintln(t.out, t.theme.ErrorStyle.Render("Unexpected stop reason: "+rawStopReason))
}

// Error reports a failed run.
func (t *Trace) Error(err error) {
	fmt.Fprintln(t.out, t.theme.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
}

// Summary prints per-tool call counts for the run, sorted by name.
func (t *Trace) Summary() {
	if len(t.toolCounts) == 0 {
		return
	}

	names := make([]string, 0, len(t.toolCounts))
	for name := range t.toolCounts {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(t.out, t.theme.HeaderStyle.Render("Tool calls by name:"))
	for _, name := range names {
		fmt.Fprintln(t.out, t.theme.HeaderStyle.Render(fmt.Sprintf("  %s (%d)", name, t.toolCounts[name])))
	}
}

// ToolCounts returns a copy of the per-tool call counters.
func (t *Trace) ToolCounts() map[string]int {
	counts := make(map[string]int, len(t.toolCounts))
	for name, count := range t.toolCounts {
		counts[name] = count
	}
	return counts
}

func (t *Trace) record(toolName string) {
	name := strings.TrimSpace(toolName)
	if name == "" {
		name = "unknown"
	}
	t.toolCounts[name]++
}

func compactJSON(raw json.RawMessage) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "{}"
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func shortenForDisplay(result string) string {
	trimmed := strings.TrimSpace(result)
	if len(trimmed) <= displayResultLimit {
		return trimmed
	}
	return trimmed[:displayResultLimit] + "…"
}
