package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	weatherToolName = "get_weather"
	weatherBaseURL  = "https://wttr.in"
	weatherTimeout  = 10 * time.Second
	maxWeatherBody  = 1 << 20
)

// WeatherTool reports current conditions for a city via the wttr.in JSON
// API. Lookup failures are rendered as text so the model can react to them.
type WeatherTool struct {
	client  *http.Client
	baseURL string
}

// NewWeatherTool constructs a weather tool against the public wttr.in API.
func NewWeatherTool() WeatherTool {
	return WeatherTool{
		client:  &http.Client{Timeout: weatherTimeout},
		baseURL: weatherBaseURL,
	}
}

func (WeatherTool) Name() string { return weatherToolName }

func (WeatherTool) Description() string {
	return "Get the current weather for a city. Use this when the user asks about weather conditions, temperature, or climate in a specific location."
}

func (WeatherTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{"city":{"type":"string","description":"The city name, e.g. 'London' or 'New York'"}},"required":["city"]}`)
}

func (w WeatherTool) Execute(ctx context.Context, params json.RawMessage) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	var input struct {
		City string `json:"city"`
	}
	if err := decodeParams(params, &input); err != nil {
		return "", fmt.Errorf("decode weather params: %w", err)
	}

	city := strings.TrimSpace(input.City)
	if city == "" {
		return "", errors.New("city is required")
	}

	return w.fetch(ctx, city), nil
}

func (w WeatherTool) fetch(ctx context.Context, city string) string {
	endpoint := fmt.Sprintf("%s/%s?format=j1", w.baseURL, url.PathEscape(city))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return weatherFailure(city, err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return weatherFailure(city, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return weatherFailure(city, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxWeatherBody))
	if err != nil {
		return weatherFailure(city, err)
	}

	current := gjson.GetBytes(body, "current_condition.0")
	if !current.Exists() {
		return weatherFailure(city, errors.New("no current conditions in response"))
	}

	return fmt.Sprintf(
		"Weather in %s: %s°C (%s°F), %s, Humidity: %s%%, Wind: %s mph",
		city,
		current.Get("temp_C").String(),
		current.Get("temp_F").String(),
		current.Get("weatherDesc.0.value").String(),
		current.Get("humidity").String(),
		current.Get("windspeedMiles").String(),
	)
}

func weatherFailure(city string, err error) string {
	return fmt.Sprintf("Could not fetch weather for %s: %v", city, err)
}
