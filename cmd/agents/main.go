package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/KPowellAi/intro-to-ai-agents/internal/agent"
	"github.com/KPowellAi/intro-to-ai-agents/internal/config"
	"github.com/KPowellAi/intro-to-ai-agents/internal/llm"
	"github.com/KPowellAi/intro-to-ai-agents/internal/report"
	"github.com/KPowellAi/intro-to-ai-agents/internal/tools"
	"github.com/KPowellAi/intro-to-ai-agents/internal/tui"
)

const (
	chatSystemPrompt = "You are a friendly, helpful assistant. Keep your responses concise and clear."

	toolsSystemPrompt = "You are a helpful assistant with access to weather and calculator tools. Use them when needed to give accurate answers."

	researchSystemPrompt = `You are a research agent. When given a research task:
1. Search the web to find relevant information (use at least 2 different searches)
2. Read the content of 1-2 promising search results
3. Synthesize your findings into a well-structured report
4. Save the report to a file using save_report

Write your report in markdown format with clear headings and bullet points.
Keep the report concise but informative.`

	defaultResearchTask = "Research the topic of AI agents: what they are, how they work, and their real-world applications. Save a comprehensive report to a file."
)

// defaultDemoQuestions run when `agents tools` gets no arguments. The first
// triggers the weather tool, the second the calculator, and the third needs no
// tool at all.
var defaultDemoQuestions = []string{
	"What's the weather like in London right now?",
	"What is 247 multiplied by 38?",
	"What is an AI agent in simple terms?",
}

var errUnsupportedProvider = errors.New("unsupported provider")

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "agents: %v\n", err)
		os.Exit(1)
	}
}

func execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "agents",
		Short: "agents walks from a plain chatbot to a looping research agent",
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	cmd.AddCommand(
		newChatCmd(&configPath),
		newToolsCmd(&configPath),
		newResearchCmd(&configPath),
	)
	return cmd
}

// runtime bundles the pieces every subcommand needs: loaded config, a
// gateway for the configured provider, and shared output plumbing.
type runtime struct {
	cfg     config.Config
	gateway llm.Gateway
	model   string
	logger  *slog.Logger
	theme   tui.Theme
}

func buildRuntime(configPath string) (runtime, error) {
	cfg, err := config.Load(config.LoadOptions{Path: strings.TrimSpace(configPath)})
	if err != nil {
		return runtime{}, fmt.Errorf("load config: %w", err)
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return runtime{}, err
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))

	gateway, model, err := buildGatewayFromConfig(cfg)
	if err != nil {
		return runtime{}, fmt.Errorf("build gateway: %w", err)
	}

	return runtime{
		cfg:     cfg,
		gateway: gateway,
		model:   model,
		logger:  logger,
		theme:   tui.ResolveTheme(cfg.TUI.Theme),
	}, nil
}

func buildGatewayFromConfig(cfg config.Config) (llm.Gateway, string, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider.Default)) {
	case "", "anthropic":
		settings, err := cfg.AnthropicSettings()
		if err != nil {
			return nil, "", fmt.Errorf("resolve anthropic settings: %w", err)
		}
		if strings.TrimSpace(settings.APIKey) == "" {
			return nil, "", llm.ErrMissingAPIKey
		}

		gateway := llm.NewAnthropicGateway(llm.AnthropicConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Version: settings.Version,
			Timeout: settings.Timeout,
		})
		return gateway, settings.Model, nil
	default:
		return nil, "", fmt.Errorf("%w: %s", errUnsupportedProvider, cfg.Provider.Default)
	}
}

func newChatCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Example 1: a plain chatbot loop, no tools (NOT an agent)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(*configPath)
			if err != nil {
				return err
			}

			app := tui.NewApp(tui.AppConfig{
				Title:     "Simple Chatbot (NOT an Agent)",
				Hint:      "This is a simple chatbot loop.\nType 'quit', 'exit', or 'q' to stop.",
				ModelName: rt.model,
				ThemeName: rt.cfg.TUI.Theme,
				Gateway:   rt.gateway,
				System:    chatSystemPrompt,
				MaxTokens: rt.cfg.Agent.ChatMaxTokens,
			})

			program := tea.NewProgram(app, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("run tui: %w", err)
			}
			return nil
		},
	}
}

func newToolsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tools [question ...]",
		Short: "Example 2: single-round tool dispatch over demo questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(*configPath)
			if err != nil {
				return err
			}

			registry, err := tools.NewRegistry(tools.NewAgentTools()...)
			if err != nil {
				return fmt.Errorf("build tool registry: %w", err)
			}

			trace := tui.NewTrace(cmd.OutOrStdout(), rt.theme)
			ag, err := agent.New(agent.Config{
				Gateway:   rt.gateway,
				Registry:  registry,
				System:    toolsSystemPrompt,
				Model:     rt.model,
				MaxTokens: rt.cfg.Agent.ChatMaxTokens,
				Logger:    rt.logger,
				OnToolUse: func(step int, use llm.ToolUse) {
					trace.AgentToolUse(use)
				},
				OnToolResult: func(step int, use llm.ToolUse, result string) {
					trace.AgentToolResult(result)
				},
			})
			if err != nil {
				return fmt.Errorf("create agent: %w", err)
			}

			questions := demoQuestions(args)
			trace.Banner("Tool-Using Agent", "Watch Claude decide when to use tools!")

			for i, question := range questions {
				trace.QuestionHeader(i+1, question)

				outcome, err := ag.SingleRound(cmd.Context(), question)
				if err != nil {
					trace.Error(err)
					continue
				}
				if outcome.Status == agent.StatusHaltedUnexpected {
					trace.Unexpected(outcome.RawStopReason)
					continue
				}
				trace.Answer(outcome.FinalText)
			}

			trace.Summary()
			return nil
		},
	}
}

func newResearchCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "research [task ...]",
		Short: "Example 3: the full agent loop researching a topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(*configPath)
			if err != nil {
				return err
			}

			store, err := report.NewStore(rt.cfg.Output.Dir)
			if err != nil {
				return fmt.Errorf("open report store: %w", err)
			}

			registry, err := tools.NewRegistry(tools.NewResearchTools(store)...)
			if err != nil {
				return fmt.Errorf("build tool registry: %w", err)
			}

			trace := tui.NewTrace(cmd.OutOrStdout(), rt.theme)
			ag, err := agent.New(agent.Config{
				Gateway:       rt.gateway,
				Registry:      registry,
				System:        researchSystemPrompt,
				Model:         rt.model,
				MaxTokens:     rt.cfg.Agent.ResearchMaxTokens,
				MaxIterations: rt.cfg.Agent.MaxIterations,
				ParallelTools: rt.cfg.Agent.ParallelTools,
				Logger:        rt.logger,
				OnToolUse: func(step int, use llm.ToolUse) {
					trace.StepToolUse(step, use)
				},
			})
			if err != nil {
				return fmt.Errorf("create agent: %w", err)
			}

			task := researchTask(args)
			trace.Banner("Research Agent (Full Agent Loop)", "Watch the agent research a topic step by step!")
			trace.Task(task)
			trace.StartWork()

			outcome, err := ag.Run(cmd.Context(), task)
			if err != nil {
				trace.Error(err)
				return fmt.Errorf("run agent: %w", err)
			}

			switch outcome.Status {
			case agent.StatusDone:
				trace.Finished(outcome.ToolCallCount)
				trace.Answer(outcome.FinalText)
			case agent.StatusHaltedLimit:
				trace.LimitReached()
			case agent.StatusHaltedUnexpected:
				trace.Unexpected(outcome.RawStopReason)
			}

			trace.Summary()
			trace.Banner(fmt.Sprintf("Check the %q folder for the saved report!", rt.cfg.Output.Dir))
			return nil
		},
	}
}

func demoQuestions(args []string) []string {
	questions := make([]string, 0, len(args))
	for _, arg := range args {
		if trimmed := strings.TrimSpace(arg); trimmed != "" {
			questions = append(questions, trimmed)
		}
	}
	if len(questions) == 0 {
		return defaultDemoQuestions
	}
	return questions
}

func researchTask(args []string) string {
	task := strings.TrimSpace(strings.Join(args, " "))
	if task == "" {
		return defaultResearchTask
	}
	return task
}
