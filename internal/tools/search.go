package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	searchToolName   = "search_web"
	searchBaseURL    = "https://api.duckduckgo.com"
	searchTimeout    = 10 * time.Second
	maxSearchResults = 5
	maxSearchBody    = 4 << 20
)

// SearchResult is one entry in the serialized search response.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// SearchTool queries the DuckDuckGo instant-answer API and serializes the
// top results as an indented JSON array. Failures come back as a one-element
// array carrying the reason, so the model always receives result-shaped data.
type SearchTool struct {
	client  *http.Client
	baseURL string
}

// NewSearchTool constructs a search tool against the public DuckDuckGo API.
func NewSearchTool() SearchTool {
	return SearchTool{
		client:  &http.Client{Timeout: searchTimeout},
		baseURL: searchBaseURL,
	}
}

func (SearchTool) Name() string { return searchToolName }

func (SearchTool) Description() string {
	return "Search the web for information on a topic. Returns a list of search results with titles, URLs, and snippets. Use this to find relevant sources for research."
}

func (SearchTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{"query":{"type":"string","description":"The search query, e.g. 'benefits of renewable energy'"}},"required":["query"]}`)
}

func (s SearchTool) Execute(ctx context.Context, params json.RawMessage) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	var input struct {
		Query string `json:"query"`
	}
	if err := decodeParams(params, &input); err != nil {
		return "", fmt.Errorf("decode search params: %w", err)
	}

	query := strings.TrimSpace(input.Query)
	if query == "" {
		return "", errors.New("query is required")
	}

	return s.search(ctx, query), nil
}

func (s SearchTool) search(ctx context.Context, query string) string {
	endpoint := fmt.Sprintf("%s/?q=%s&format=json&no_html=1", s.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return searchFailure(err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return searchFailure(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return searchFailure(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSearchBody))
	if err != nil {
		return searchFailure(err)
	}

	results := collectSearchResults(body)
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return searchFailure(err)
	}
	return string(data)
}

// collectSearchResults flattens the instant-answer payload: the abstract
// first if present, then related topics including grouped ones, capped at
// maxSearchResults.
func collectSearchResults(body []byte) []SearchResult {
	out := make([]SearchResult, 0, maxSearchResults)

	if abstract := gjson.GetBytes(body, "AbstractText").String(); abstract != "" {
		title := gjson.GetBytes(body, "Heading").String()
		if title == "" {
			title = "No title"
		}
		out = append(out, SearchResult{
			Title:   title,
			URL:     gjson.GetBytes(body, "AbstractURL").String(),
			Snippet: abstract,
		})
	}

	gjson.GetBytes(body, "RelatedTopics").ForEach(func(_, topic gjson.Result) bool {
		if len(out) >= maxSearchResults {
			return false
		}
		if nested := topic.Get("Topics"); nested.Exists() {
			nested.ForEach(func(_, sub gjson.Result) bool {
				if len(out) >= maxSearchResults {
					return false
				}
				if result, ok := topicResult(sub); ok {
					out = append(out, result)
				}
				return true
			})
			return true
		}
		if result, ok := topicResult(topic); ok {
			out = append(out, result)
		}
		return true
	})

	return out
}

func topicResult(topic gjson.Result) (SearchResult, bool) {
	link := topic.Get("FirstURL").String()
	text := strings.TrimSpace(topic.Get("Text").String())
	if link == "" && text == "" {
		return SearchResult{}, false
	}

	title := text
	if idx := strings.Index(text, " - "); idx > 0 {
		title = text[:idx]
	}
	if title == "" {
		title = "No title"
	}
	if text == "" {
		text = "No description"
	}
	return SearchResult{Title: title, URL: link, Snippet: text}, true
}

func searchFailure(err error) string {
	return fmt.Sprintf(`[{"title": "Search error", "url": "", "snippet": %s}]`, strconv.Quote(err.Error()))
}
