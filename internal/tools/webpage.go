package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	pageToolName     = "get_page_content"
	pageTimeout      = 15 * time.Second
	maxPageBody      = 4 << 20
	maxPageChars     = 3000
	truncationSuffix = "... [content truncated]"
)

var (
	scriptPattern = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	stylePattern  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	tagPattern    = regexp.MustCompile(`<[^>]+>`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

// PageTool fetches a URL, strips the markup, and returns readable text
// capped to a fixed character budget.
type PageTool struct {
	client *http.Client
}

// NewPageTool constructs a page tool that follows redirects.
func NewPageTool() PageTool {
	return PageTool{client: &http.Client{Timeout: pageTimeout}}
}

func (PageTool) Name() string { return pageToolName }

func (PageTool) Description() string {
	return "Get the text content of a web page. Use this after search_web to read the full content of a promising search result."
}

func (PageTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{"url":{"type":"string","description":"The URL of the page to read"}},"required":["url"]}`)
}

func (p PageTool) Execute(ctx context.Context, params json.RawMessage) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	var input struct {
		URL string `json:"url"`
	}
	if err := decodeParams(params, &input); err != nil {
		return "", fmt.Errorf("decode page params: %w", err)
	}

	pageURL := strings.TrimSpace(input.URL)
	if pageURL == "" {
		return "", errors.New("url is required")
	}

	return p.fetch(ctx, pageURL), nil
}

func (p PageTool) fetch(ctx context.Context, pageURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return pageFailure(err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return pageFailure(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBody))
	if err != nil {
		return pageFailure(err)
	}

	return extractReadableText(string(body))
}

// extractReadableText reduces an HTML document to plain text: script and
// style bodies go first, then every remaining tag becomes a space, then
// whitespace collapses. The result is capped at maxPageChars characters.
func extractReadableText(html string) string {
	text := scriptPattern.ReplaceAllString(html, "")
	text = stylePattern.ReplaceAllString(text, "")
	text = tagPattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))

	if runes := []rune(text); len(runes) > maxPageChars {
		text = string(runes[:maxPageChars]) + truncationSuffix
	}
	if text == "" {
		return "Could not extract text content from this page."
	}
	return text
}

func pageFailure(err error) string {
	return fmt.Sprintf("Could not fetch page content: %v", err)
}
