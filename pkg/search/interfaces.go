package search

import (
	"context"

	"github.com/samvad-hq/echohub-buster/pkg/httpclient"
)

// Article is a single news search hit.
type Article struct {
	Title   string
	URL     string
	Snippet string
}

// Searcher queries a news search provider.
// Implementations return an empty slice, not an error, when no credential is configured.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]Article, error)
}

// HTTPClient aliases the shared httpclient.Client interface for clarity within search.
type HTTPClient = httpclient.Client
