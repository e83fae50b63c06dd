package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/samvad-hq/echohub-buster/internal/domain"
	"github.com/samvad-hq/echohub-buster/internal/logger"
	"github.com/samvad-hq/echohub-buster/pkg/search"
)

const (
	resultsPerQuery      = 1
	defaultSearchTimeout = 10 * time.Second
)

// Retriever fetches the top search hit for each query, one query at a time.
type Retriever struct {
	searcher search.Searcher
	timeout  time.Duration
	log      logger.Logger
}

// NewRetriever wraps a searcher with a per-call timeout.
func NewRetriever(searcher search.Searcher, timeout time.Duration, log logger.Logger) *Retriever {
	if timeout <= 0 {
		timeout = defaultSearchTimeout
	}
	return &Retriever{searcher: searcher, timeout: timeout, log: logger.Ensure(log)}
}

// Retrieve returns at most one article per query, in query order.
// Provider errors are logged and the query contributes nothing.
func (r *Retriever) Retrieve(ctx context.Context, queries []string) []domain.RetrievedArticle {
	out := make([]domain.RetrievedArticle, 0, len(queries))
	for _, q := range queries {
		if ctx.Err() != nil {
			break
		}
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}

		if article, ok := r.searchOne(ctx, q); ok {
			out = append(out, article)
		}
	}
	return out
}

func (r *Retriever) searchOne(ctx context.Context, query string) (domain.RetrievedArticle, bool) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	hits, err := r.searcher.Search(callCtx, query, resultsPerQuery)
	if err != nil {
		r.log.WarnObj("search failed; skipping query", "search_error", map[string]any{
			"provider": r.searcher.Name(),
			"query":    query,
			"error":    err.Error(),
		})
		return domain.RetrievedArticle{}, false
	}
	if len(hits) == 0 {
		r.log.DebugObj("search returned no results", "query", query)
		return domain.RetrievedArticle{}, false
	}

	hit := hits[0]
	return domain.RetrievedArticle{
		Title:          hit.Title,
		URL:            hit.URL,
		ContentSnippet: hit.Snippet,
	}, true
}
