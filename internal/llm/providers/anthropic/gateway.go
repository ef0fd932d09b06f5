package anthropicgateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/KPowellAi/intro-to-ai-agents/internal/llm/core"
)

const defaultHTTPTimeout = 90 * time.Second

// Config configures the Anthropic gateway.
type Config struct {
	APIKey     string
	BaseURL    string
	Version    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Gateway is a thin non-streaming wrapper around the official
// anthropic-sdk-go client. It performs exactly one Messages API call per
// Complete and never retries; SDK-level retries are disabled explicitly.
type Gateway struct {
	apiKey string
	client anthropic.Client
}

// New constructs a gateway with sane defaults.
func New(cfg Config) *Gateway {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	version := strings.TrimSpace(cfg.Version)

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	clientOptions := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0), // callers own retry policy, not the gateway
	}
	if baseURL != "" {
		clientOptions = append(clientOptions, option.WithBaseURL(baseURL))
	}
	if version != "" {
		clientOptions = append(clientOptions, option.WithHeader("anthropic-version", version))
	}

	return &Gateway{
		apiKey: apiKey,
		client: anthropic.NewClient(clientOptions...),
	}
}

// Complete executes a single Anthropic Messages API request and maps the
// result into the canonical response shape.
func (g *Gateway) Complete(ctx context.Context, req *core.Request) (*core.Response, error) {
	if g == nil {
		return nil, fmt.Errorf("anthropic gateway is nil")
	}
	if strings.TrimSpace(g.apiKey) == "" {
		return nil, core.ErrMissingAPIKey
	}

	params, err := toSDKParams(req)
	if err != nil {
		return nil, err
	}

	message, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return nil, classifyCallError(err)
	}

	return fromSDKMessage(message)
}

// classifyCallError splits SDK call failures into the provider/transport
// taxonomy. Context cancellation and deadline errors pass through untouched
// so callers can match them directly.
func classifyCallError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &core.ProviderError{
			StatusCode: apiErr.StatusCode,
			Message:    strings.TrimSpace(apiErr.Error()),
		}
	}

	return &core.TransportError{Op: "messages.new", Err: err}
}
