package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samvad-hq/echohub-buster/pkg/httpclient"
)

const (
	ProviderTavily       = "tavily"
	tavilyDefaultBaseURL = "https://api.tavily.com/search"
)

// TavilyOptions configures the Tavily client.
type TavilyOptions struct {
	APIKey  string
	BaseURL string
}

type tavilyClient struct {
	client HTTPClient
	opts   TavilyOptions
	log    Logger
}

// NewTavilyClient builds a Searcher for Tavily's news topic.
func NewTavilyClient(client HTTPClient, opts TavilyOptions, log Logger) Searcher {
	if client == nil {
		client = DefaultHTTPClient()
	}
	if strings.TrimSpace(opts.BaseURL) == "" {
		opts.BaseURL = tavilyDefaultBaseURL
	}
	return &tavilyClient{client: client, opts: opts, log: ensureLogger(log)}
}

func (c *tavilyClient) Name() string { return ProviderTavily }

type tavilyRequest struct {
	Query       string `json:"query"`
	Topic       string `json:"topic"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results,omitempty"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

func (c *tavilyClient) Search(ctx context.Context, query string, limit int) ([]Article, error) {
	if strings.TrimSpace(c.opts.APIKey) == "" {
		c.log.WarnObj("tavily api key is not set; skipping news search", "query", query)
		return []Article{}, nil
	}

	req := tavilyRequest{
		Query:       query,
		Topic:       "news",
		SearchDepth: "basic",
		MaxResults:  limit,
	}
	headers := map[string]string{"Authorization": "Bearer " + c.opts.APIKey}

	resp, err := c.client.Post(ctx, c.opts.BaseURL, headers, req)
	if err != nil {
		return nil, fmt.Errorf("tavily request: %w", err)
	}
	body := resp.Body()
	if !httpclient.IsSuccess(resp) {
		return nil, fmt.Errorf("tavily returned status %d body: %s", resp.StatusCode(), responseSnippet(body))
	}

	var decoded tavilyResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode tavily response: %w", err)
	}

	articles := make([]Article, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		articles = append(articles, Article{
			Title:   strings.TrimSpace(r.Title),
			URL:     strings.TrimSpace(r.URL),
			Snippet: strings.TrimSpace(r.Content),
		})
	}
	return articles, nil
}
