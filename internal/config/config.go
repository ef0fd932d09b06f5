package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultProviderName        = "anthropic"
	defaultAnthropicModel      = "claude-sonnet-4-20250514"
	defaultAnthropicVersion    = "2023-06-01"
	defaultAnthropicTimeout    = "90s"
	defaultMaxIterations       = 15
	defaultChatMaxTokens       = 1024
	defaultResearchMaxTokens   = 4096
	defaultOutputDir           = "outputs"
	defaultLogLevel            = "info"
	defaultTUITheme            = "dark"
	defaultConfigRelativePath  = ".config/agents/config.toml"
	envProviderDefault         = "AGENTS_PROVIDER_DEFAULT"
	envAnthropicAPIKey         = "ANTHROPIC_API_KEY"
	envAnthropicModel          = "AGENTS_ANTHROPIC_MODEL"
	envAnthropicBaseURL        = "AGENTS_ANTHROPIC_BASE_URL"
	envAnthropicVersion        = "AGENTS_ANTHROPIC_VERSION"
	envAnthropicTimeout        = "AGENTS_ANTHROPIC_TIMEOUT"
	envAgentMaxIterations      = "AGENTS_MAX_ITERATIONS"
	envOutputDir               = "AGENTS_OUTPUT_DIR"
	envLogLevel                = "AGENTS_LOG_LEVEL"
	envTUITheme                = "AGENTS_TUI_THEME"
)

var (
	// ErrInvalidConfig indicates malformed configuration input.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config is the application configuration root.
type Config struct {
	Provider ProviderConfig `toml:"provider"`
	Agent    AgentConfig    `toml:"agent"`
	Output   OutputConfig   `toml:"output"`
	Log      LogConfig      `toml:"log"`
	TUI      TUIConfig      `toml:"tui"`
}

// ProviderConfig configures model providers.
type ProviderConfig struct {
	Default   string                  `toml:"default"`
	Anthropic AnthropicProviderConfig `toml:"anthropic"`
}

// AnthropicProviderConfig configures Anthropic-specific runtime values.
type AnthropicProviderConfig struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
	Version string `toml:"version"`
	Timeout string `toml:"timeout"`
}

// AgentConfig configures the agent loop.
type AgentConfig struct {
	MaxIterations     int  `toml:"max_iterations"`
	ParallelTools     bool `toml:"parallel_tools"`
	ChatMaxTokens     int  `toml:"chat_max_tokens"`
	ResearchMaxTokens int  `toml:"research_max_tokens"`
}

// OutputConfig configures where reports are saved.
type OutputConfig struct {
	Dir string `toml:"dir"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// TUIConfig configures terminal UI defaults.
type TUIConfig struct {
	Theme string `toml:"theme"`
}

// LoadOptions controls config loading behavior.
type LoadOptions struct {
	Path string
}

// AnthropicSettings is a validated Anthropic runtime settings snapshot.
type AnthropicSettings struct {
	APIKey  string
	Model   string
	BaseURL string
	Version string
	Timeout time.Duration
}

// Default returns application defaults.
func Default() Config {
	return Config{
		Provider: ProviderConfig{
			Default: defaultProviderName,
			Anthropic: AnthropicProviderConfig{
				Model:   defaultAnthropicModel,
				Version: defaultAnthropicVersion,
				Timeout: defaultAnthropicTimeout,
			},
		},
		Agent: AgentConfig{
			MaxIterations:     defaultMaxIterations,
			ChatMaxTokens:     defaultChatMaxTokens,
			ResearchMaxTokens: defaultResearchMaxTokens,
		},
		Output: OutputConfig{
			Dir: defaultOutputDir,
		},
		Log: LogConfig{
			Level: defaultLogLevel,
		},
		TUI: TUIConfig{
			Theme: defaultTUITheme,
		},
	}
}

// Load reads the config file then applies environment variable overrides.
// A missing config file is not an error; defaults apply.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	path := strings.TrimSpace(opts.Path)
	if path == "" {
		path = defaultConfigPath()
	}

	if err := mergeConfigFile(&cfg, path); err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// AnthropicSettings returns validated settings suitable for runtime wiring.
func (c Config) AnthropicSettings() (AnthropicSettings, error) {
	timeout, err := time.ParseDuration(strings.TrimSpace(c.Provider.Anthropic.Timeout))
	if err != nil {
		return AnthropicSettings{}, fmt.Errorf("%w: parse anthropic timeout: %v", ErrInvalidConfig, err)
	}
	if timeout <= 0 {
		return AnthropicSettings{}, fmt.Errorf("%w: anthropic timeout must be positive", ErrInvalidConfig)
	}

	return AnthropicSettings{
		APIKey:  strings.TrimSpace(c.Provider.Anthropic.APIKey),
		Model:   strings.TrimSpace(c.Provider.Anthropic.Model),
		BaseURL: strings.TrimSpace(c.Provider.Anthropic.BaseURL),
		Version: strings.TrimSpace(c.Provider.Anthropic.Version),
		Timeout: timeout,
	}, nil
}

// SlogLevel parses the configured log level.
func (c Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
}

func mergeConfigFile(cfg *Config, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if value, ok := os.LookupEnv(envProviderDefault); ok && strings.TrimSpace(value) != "" {
		cfg.Provider.Default = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv(envAnthropicAPIKey); ok {
		cfg.Provider.Anthropic.APIKey = value
	}
	if value, ok := os.LookupEnv(envAnthropicModel); ok && strings.TrimSpace(value) != "" {
		cfg.Provider.Anthropic.Model = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv(envAnthropicBaseURL); ok && strings.TrimSpace(value) != "" {
		cfg.Provider.Anthropic.BaseURL = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv(envAnthropicVersion); ok && strings.TrimSpace(value) != "" {
		cfg.Provider.Anthropic.Version = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv(envAnthropicTimeout); ok && strings.TrimSpace(value) != "" {
		cfg.Provider.Anthropic.Timeout = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv(envAgentMaxIterations); ok && strings.TrimSpace(value) != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, envAgentMaxIterations, err)
		}
		cfg.Agent.MaxIterations = parsed
	}
	if value, ok := os.LookupEnv(envOutputDir); ok && strings.TrimSpace(value) != "" {
		cfg.Output.Dir = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv(envLogLevel); ok && strings.TrimSpace(value) != "" {
		cfg.Log.Level = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv(envTUITheme); ok && strings.TrimSpace(value) != "" {
		cfg.TUI.Theme = strings.TrimSpace(value)
	}
	return nil
}

func validate(cfg Config) error {
	if strings.TrimSpace(cfg.Provider.Default) == "" {
		return fmt.Errorf("%w: provider.default is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.Provider.Anthropic.Model) == "" {
		return fmt.Errorf("%w: provider.anthropic.model is required", ErrInvalidConfig)
	}
	if cfg.Agent.MaxIterations <= 0 {
		return fmt.Errorf("%w: agent.max_iterations must be positive", ErrInvalidConfig)
	}
	if cfg.Agent.ChatMaxTokens <= 0 || cfg.Agent.ResearchMaxTokens <= 0 {
		return fmt.Errorf("%w: agent token limits must be positive", ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.Output.Dir) == "" {
		return fmt.Errorf("%w: output.dir is required", ErrInvalidConfig)
	}
	if _, err := cfg.AnthropicSettings(); err != nil {
		return err
	}
	if _, err := cfg.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, defaultConfigRelativePath)
}
