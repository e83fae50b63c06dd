package search

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samvad-hq/echohub-buster/pkg/httpclient"
)

// Options carries every provider's settings; each builder reads what it needs.
type Options struct {
	NewsData NewsDataOptions
	Tavily   TavilyOptions
}

// Builder creates a Searcher for a provider type.
type Builder func(client HTTPClient, opts Options, log Logger) Searcher

// Registry maps provider types to builders.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry returns a registry with optional pre-registered builders.
func NewRegistry(builders map[string]Builder) *Registry {
	r := &Registry{builders: make(map[string]Builder)}
	for typ, b := range builders {
		r.Register(typ, b)
	}
	return r
}

// Register associates a builder with a provider type.
func (r *Registry) Register(typ string, builder Builder) {
	if typ = strings.ToLower(strings.TrimSpace(typ)); typ == "" || builder == nil {
		return
	}

	r.mu.Lock()
	r.builders[typ] = builder
	r.mu.Unlock()
}

// SearcherFor builds the searcher registered for typ.
func (r *Registry) SearcherFor(typ string, client HTTPClient, opts Options, log Logger) (Searcher, error) {
	if r == nil {
		return nil, fmt.Errorf("search registry is nil")
	}
	key := strings.ToLower(strings.TrimSpace(typ))
	if key == "" {
		return nil, fmt.Errorf("search provider is empty")
	}

	r.mu.RLock()
	builder := r.builders[key]
	r.mu.RUnlock()

	if builder == nil {
		return nil, fmt.Errorf("no search provider registered for type %q", typ)
	}
	return builder(client, opts, log), nil
}

// DefaultHTTPClient returns the resty-backed client used by search providers.
func DefaultHTTPClient() HTTPClient { return httpclient.NewRestyClient(15 * time.Second) }

// DefaultRegistry wires up known search providers.
func DefaultRegistry() *Registry {
	return NewRegistry(map[string]Builder{
		ProviderNewsData: func(client HTTPClient, opts Options, log Logger) Searcher {
			return NewNewsDataClient(client, opts.NewsData, log)
		},
		ProviderTavily: func(client HTTPClient, opts Options, log Logger) Searcher {
			return NewTavilyClient(client, opts.Tavily, log)
		},
	})
}
