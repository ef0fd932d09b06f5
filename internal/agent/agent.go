package agent

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/KPowellAi/intro-to-ai-agents/internal/llm"
	"github.com/KPowellAi/intro-to-ai-agents/internal/tools"
)

const (
	defaultMaxIterations = 15
	defaultMaxTokens     = 4096
	maxParallelDispatch  = 4
)

var (
	// ErrGatewayRequired indicates missing model gateway dependency.
	ErrGatewayRequired = errors.New("gateway is required")
	// ErrRegistryRequired indicates missing tool registry dependency.
	ErrRegistryRequired = errors.New("tool registry is required")
	// ErrTaskRequired indicates an empty task or question.
	ErrTaskRequired = errors.New("task is required")
)

// ToolUseFunc observes one tool invocation before it is dispatched. Step is
// the 1-based tool-call count across the whole run.
type ToolUseFunc func(step int, use llm.ToolUse)

// ToolResultFunc observes the textual result of one dispatched tool call.
type ToolResultFunc func(step int, use llm.ToolUse, result string)

// Config configures Agent creation.
type Config struct {
	Gateway       llm.Gateway
	Registry      *tools.Registry
	System        string
	Model         string
	MaxTokens     int
	MaxIterations int
	ParallelTools bool
	Logger        *slog.Logger
	OnToolUse     ToolUseFunc
	OnToolResult  ToolResultFunc
}

// Agent owns one gateway, one tool registry, and the loop settings for runs
// against them. Each Run creates its own conversation, so one Agent value can
// serve sequential tasks; concurrent runs each build independent state.
type Agent struct {
	gateway       llm.Gateway
	registry      *tools.Registry
	system        string
	model         string
	maxTokens     int
	maxIterations int
	parallelTools bool
	logger        *slog.Logger
	onToolUse     ToolUseFunc
	onToolResult  ToolResultFunc
	specs         []llm.ToolSpec
}

// New creates an agent with explicit dependencies.
func New(cfg Config) (*Agent, error) {
	if cfg.Gateway == nil {
		return nil, ErrGatewayRequired
	}
	if cfg.Registry == nil {
		return nil, ErrRegistryRequired
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Agent{
		gateway:       cfg.Gateway,
		registry:      cfg.Registry,
		system:        strings.TrimSpace(cfg.System),
		model:         strings.TrimSpace(cfg.Model),
		maxTokens:     maxTokens,
		maxIterations: maxIterations,
		parallelTools: cfg.ParallelTools,
		logger:        logger,
		onToolUse:     cfg.OnToolUse,
		onToolResult:  cfg.OnToolResult,
		specs:         buildToolSpecs(cfg.Registry),
	}, nil
}

func buildToolSpecs(registry *tools.Registry) []llm.ToolSpec {
	catalog := registry.Tools()
	specs := make([]llm.ToolSpec, 0, len(catalog))
	for _, tool := range catalog {
		schema := tool.Schema()
		specs = append(specs, llm.ToolSpec{
			Name:        tool.Name(),
			Description: tool.Description(),
			Schema:      append(json.RawMessage(nil), schema...),
		})
	}
	return specs
}

func (a *Agent) notifyToolUse(step int, use llm.ToolUse) {
	if a.onToolUse != nil {
		a.onToolUse(step, use)
	}
}

func (a *Agent) notifyToolResult(step int, use llm.ToolUse, result string) {
	if a.onToolResult != nil {
		a.onToolResult(step, use, result)
	}
}
