package tools

import (
	"github.com/KPowellAi/intro-to-ai-agents/internal/report"
)

// NewAgentTools returns the single-round agent's catalog, in the order the
// model sees it: weather lookup, then calculator.
func NewAgentTools() []Tool {
	return []Tool{
		NewWeatherTool(),
		NewCalculatorTool(),
	}
}

// NewResearchTools returns the research agent's catalog: web search, page
// fetch, and report save writing through store.
func NewResearchTools(store *report.Store) []Tool {
	return []Tool{
		NewSearchTool(),
		NewPageTool(),
		NewReportTool(store),
	}
}
