package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KPowellAi/intro-to-ai-agents/internal/report"
)

func newTestReportTool(t *testing.T) (ReportTool, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := report.NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return NewReportTool(store), dir
}

func TestReportExecuteSavesFile(t *testing.T) {
	t.Parallel()

	tool, dir := newTestReportTool(t)

	content := "# AI Agents\n\nThey loop."
	params := fmt.Sprintf(`{"filename": "ai_agents_report.md", "content": %q}`, content)

	got, err := tool.Execute(context.Background(), json.RawMessage(params))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	path := filepath.Join(dir, "ai_agents_report.md")
	want := fmt.Sprintf("Report saved successfully to %s (%d characters)", path, len([]rune(content)))
	if got != want {
		t.Fatalf("Execute() = %q, want %q", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != content {
		t.Fatalf("saved content = %q, want %q", data, content)
	}
}

func TestReportExecuteInvalidFilename(t *testing.T) {
	t.Parallel()

	tool, _ := newTestReportTool(t)

	got, err := tool.Execute(context.Background(), json.RawMessage(`{"filename": "../escape.md", "content": "x"}`))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(got, "Could not save report: ") {
		t.Fatalf("Execute() = %q, want save-failure text", got)
	}
}

func TestCatalogsListToolsInOrder(t *testing.T) {
	t.Parallel()

	agentNames := []string{"get_weather", "calculator"}
	for i, tool := range NewAgentTools() {
		if tool.Name() != agentNames[i] {
			t.Fatalf("agent tool %d = %q, want %q", i, tool.Name(), agentNames[i])
		}
	}

	store, err := report.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	researchNames := []string{"search_web", "get_page_content", "save_report"}
	for i, tool := range NewResearchTools(store) {
		if tool.Name() != researchNames[i] {
			t.Fatalf("research tool %d = %q, want %q", i, tool.Name(), researchNames[i])
		}
	}
}
