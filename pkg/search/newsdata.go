package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/samvad-hq/echohub-buster/pkg/httpclient"
)

const (
	ProviderNewsData       = "newsdata"
	newsDataDefaultBaseURL = "https://newsdata.io/api/1/news"
)

// NewsDataOptions configures the NewsData.io client.
type NewsDataOptions struct {
	APIKey   string
	BaseURL  string
	Language string
	// Category is passed through verbatim; "business, top" is the historical value.
	Category string
}

type newsDataClient struct {
	client HTTPClient
	opts   NewsDataOptions
	log    Logger
}

// NewNewsDataClient builds a Searcher for the NewsData.io latest-news endpoint.
func NewNewsDataClient(client HTTPClient, opts NewsDataOptions, log Logger) Searcher {
	if client == nil {
		client = DefaultHTTPClient()
	}
	if strings.TrimSpace(opts.BaseURL) == "" {
		opts.BaseURL = newsDataDefaultBaseURL
	}
	return &newsDataClient{client: client, opts: opts, log: ensureLogger(log)}
}

func (c *newsDataClient) Name() string { return ProviderNewsData }

type newsDataResponse struct {
	Status  string           `json:"status"`
	Results []newsDataResult `json:"results"`
}

type newsDataResult struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

func (c *newsDataClient) Search(ctx context.Context, query string, limit int) ([]Article, error) {
	if strings.TrimSpace(c.opts.APIKey) == "" {
		c.log.WarnObj("newsdata api key is not set; skipping news search", "query", query)
		return []Article{}, nil
	}

	endpoint, err := c.buildURL(query, limit)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Get(ctx, endpoint, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, fmt.Errorf("newsdata request: %w", err)
	}
	body := resp.Body()
	if !httpclient.IsSuccess(resp) {
		return nil, fmt.Errorf("newsdata returned status %d body: %s", resp.StatusCode(), responseSnippet(body))
	}

	var decoded newsDataResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode newsdata response: %w", err)
	}

	articles := make([]Article, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		articles = append(articles, Article{
			Title:   strings.TrimSpace(r.Title),
			URL:     strings.TrimSpace(r.Link),
			Snippet: firstNonEmpty(r.Description, r.Content),
		})
	}
	return articles, nil
}

func (c *newsDataClient) buildURL(query string, limit int) (string, error) {
	u, err := url.Parse(c.opts.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse newsdata base url: %w", err)
	}
	q := u.Query()
	q.Set("apikey", c.opts.APIKey)
	q.Set("q", query)
	if c.opts.Language != "" {
		q.Set("language", c.opts.Language)
	}
	if c.opts.Category != "" {
		q.Set("category", c.opts.Category)
	}
	if limit > 0 {
		q.Set("size", strconv.Itoa(limit))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
