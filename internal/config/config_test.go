package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.Provider.Default != "anthropic" {
		t.Fatalf("Provider.Default = %q, want %q", cfg.Provider.Default, "anthropic")
	}
	if cfg.Provider.Anthropic.Model != "claude-sonnet-4-20250514" {
		t.Fatalf("Provider.Anthropic.Model = %q, want %q", cfg.Provider.Anthropic.Model, "claude-sonnet-4-20250514")
	}
	if cfg.Provider.Anthropic.Timeout != "90s" {
		t.Fatalf("Provider.Anthropic.Timeout = %q, want %q", cfg.Provider.Anthropic.Timeout, "90s")
	}
	if cfg.Agent.MaxIterations != 15 {
		t.Fatalf("Agent.MaxIterations = %d, want %d", cfg.Agent.MaxIterations, 15)
	}
	if cfg.Agent.ParallelTools {
		t.Fatalf("Agent.ParallelTools = true, want false")
	}
	if cfg.Agent.ChatMaxTokens != 1024 {
		t.Fatalf("Agent.ChatMaxTokens = %d, want %d", cfg.Agent.ChatMaxTokens, 1024)
	}
	if cfg.Agent.ResearchMaxTokens != 4096 {
		t.Fatalf("Agent.ResearchMaxTokens = %d, want %d", cfg.Agent.ResearchMaxTokens, 4096)
	}
	if cfg.Output.Dir != "outputs" {
		t.Fatalf("Output.Dir = %q, want %q", cfg.Output.Dir, "outputs")
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.TUI.Theme != "dark" {
		t.Fatalf("TUI.Theme = %q, want %q", cfg.TUI.Theme, "dark")
	}
}

func TestLoadFromFileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[provider]
default = "anthropic"

[provider.anthropic]
api_key = "file-key"
model = "file-model"
base_url = "https://file.example"
version = "2024-01-01"
timeout = "30s"

[agent]
max_iterations = 9
parallel_tools = true

[output]
dir = "file-outputs"

[log]
level = "warn"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	t.Setenv("AGENTS_ANTHROPIC_MODEL", "env-model")
	t.Setenv("AGENTS_ANTHROPIC_BASE_URL", "https://env.example")
	t.Setenv("AGENTS_ANTHROPIC_VERSION", "2025-02-02")
	t.Setenv("AGENTS_ANTHROPIC_TIMEOUT", "45s")
	t.Setenv("AGENTS_MAX_ITERATIONS", "4")
	t.Setenv("AGENTS_OUTPUT_DIR", "env-outputs")
	t.Setenv("AGENTS_LOG_LEVEL", "debug")

	cfg, err := Load(LoadOptions{Path: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Provider.Anthropic.APIKey != "env-key" {
		t.Fatalf("APIKey = %q, want %q", cfg.Provider.Anthropic.APIKey, "env-key")
	}
	if cfg.Provider.Anthropic.Model != "env-model" {
		t.Fatalf("Model = %q, want %q", cfg.Provider.Anthropic.Model, "env-model")
	}
	if cfg.Provider.Anthropic.BaseURL != "https://env.example" {
		t.Fatalf("BaseURL = %q, want %q", cfg.Provider.Anthropic.BaseURL, "https://env.example")
	}
	if cfg.Provider.Anthropic.Version != "2025-02-02" {
		t.Fatalf("Version = %q, want %q", cfg.Provider.Anthropic.Version, "2025-02-02")
	}
	if cfg.Provider.Anthropic.Timeout != "45s" {
		t.Fatalf("Timeout = %q, want %q", cfg.Provider.Anthropic.Timeout, "45s")
	}
	if cfg.Agent.MaxIterations != 4 {
		t.Fatalf("MaxIterations = %d, want %d", cfg.Agent.MaxIterations, 4)
	}
	if !cfg.Agent.ParallelTools {
		t.Fatalf("ParallelTools = false, want true (from file)")
	}
	if cfg.Output.Dir != "env-outputs" {
		t.Fatalf("Output.Dir = %q, want %q", cfg.Output.Dir, "env-outputs")
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(LoadOptions{Path: filepath.Join(t.TempDir(), "absent.toml")})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Provider.Anthropic.Model != "claude-sonnet-4-20250514" {
		t.Fatalf("Model = %q, want default", cfg.Provider.Anthropic.Model)
	}
}

func TestAnthropicSettingsParsesTimeout(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Provider.Anthropic.APIKey = "  key  "
	cfg.Provider.Anthropic.Timeout = "15s"

	settings, err := cfg.AnthropicSettings()
	if err != nil {
		t.Fatalf("AnthropicSettings() error = %v", err)
	}
	if settings.APIKey != "key" {
		t.Fatalf("APIKey = %q, want %q", settings.APIKey, "key")
	}
	if settings.Timeout != 15*time.Second {
		t.Fatalf("Timeout = %v, want %v", settings.Timeout, 15*time.Second)
	}
}

func TestAnthropicSettingsRejectsBadTimeout(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Provider.Anthropic.Timeout = "soon"

	if _, err := cfg.AnthropicSettings(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("AnthropicSettings() error = %v, want ErrInvalidConfig", err)
	}
}

func TestSlogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level   string
		want    slog.Level
		wantErr bool
	}{
		{level: "debug", want: slog.LevelDebug},
		{level: "info", want: slog.LevelInfo},
		{level: "", want: slog.LevelInfo},
		{level: "WARN", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
		{level: "loud", wantErr: true},
	}

	for _, tc := range tests {
		cfg := Default()
		cfg.Log.Level = tc.level

		got, err := cfg.SlogLevel()
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("SlogLevel(%q) error = %v, want ErrInvalidConfig", tc.level, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("SlogLevel(%q) error = %v", tc.level, err)
		}
		if got != tc.want {
			t.Fatalf("SlogLevel(%q) = %v, want %v", tc.level, got, tc.want)
		}
	}
}

func TestValidateRejectsNonPositiveIterations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[agent]
max_iterations = 0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	if _, err := Load(LoadOptions{Path: path}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load() error = %v, want ErrInvalidConfig", err)
	}
}
