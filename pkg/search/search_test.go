package search

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/samvad-hq/echohub-buster/pkg/httpclient"
)

type mockResponse struct {
	body       []byte
	statusCode int
}

func (r mockResponse) Body() []byte    { return r.body }
func (r mockResponse) StatusCode() int { return r.statusCode }

type mockHTTPClient struct {
	status int
	body   string
	err    error

	calls   int
	lastURL string
	headers map[string]string
	payload any
}

func (m *mockHTTPClient) respond(rawURL string, headers map[string]string) (httpclient.Response, error) {
	m.calls++
	m.lastURL = rawURL
	m.headers = headers
	if m.err != nil {
		return nil, m.err
	}
	status := m.status
	if status == 0 {
		status = 200
	}
	return mockResponse{body: []byte(m.body), statusCode: status}, nil
}

func (m *mockHTTPClient) Get(_ context.Context, rawURL string, headers map[string]string) (httpclient.Response, error) {
	return m.respond(rawURL, headers)
}

func (m *mockHTTPClient) Post(_ context.Context, rawURL string, headers map[string]string, body any) (httpclient.Response, error) {
	m.payload = body
	return m.respond(rawURL, headers)
}

const sampleNewsData = `{
  "status": "success",
  "results": [
    {"title": " Fed signals caution ", "link": "https://news.example/fed", "description": "", "content": "Rates may stay high."},
    {"title": "Second", "link": "https://news.example/2", "description": "Short desc", "content": "Long content"}
  ]
}`

func TestNewsDataSearchBuildsQueryAndMapsResults(t *testing.T) {
	client := &mockHTTPClient{body: sampleNewsData}
	s := NewNewsDataClient(client, NewsDataOptions{
		APIKey:   "secret",
		Language: "en",
		Category: "business, top",
	}, nil)

	articles, err := s.Search(context.Background(), "apple bearish outlook", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	u, err := url.Parse(client.lastURL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	q := u.Query()
	if u.Host != "newsdata.io" || q.Get("apikey") != "secret" || q.Get("q") != "apple bearish outlook" {
		t.Fatalf("unexpected url %s", client.lastURL)
	}
	if q.Get("size") != "1" || q.Get("language") != "en" || q.Get("category") != "business, top" {
		t.Fatalf("unexpected query params %v", q)
	}

	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].Title != "Fed signals caution" || articles[0].URL != "https://news.example/fed" {
		t.Fatalf("unexpected first article %+v", articles[0])
	}
	if articles[0].Snippet != "Rates may stay high." {
		t.Fatalf("expected content fallback when description empty, got %q", articles[0].Snippet)
	}
	if articles[1].Snippet != "Short desc" {
		t.Fatalf("expected description to win over content, got %q", articles[1].Snippet)
	}
}

func TestNewsDataSearchWithoutKeySkipsNetwork(t *testing.T) {
	client := &mockHTTPClient{body: sampleNewsData}
	s := NewNewsDataClient(client, NewsDataOptions{}, nil)

	articles, err := s.Search(context.Background(), "q", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(articles) != 0 || articles == nil {
		t.Fatalf("expected empty non-nil result, got %#v", articles)
	}
	if client.calls != 0 {
		t.Fatalf("expected no HTTP calls, got %d", client.calls)
	}
}

func TestNewsDataSearchErrorsOnNon2xx(t *testing.T) {
	s := NewNewsDataClient(&mockHTTPClient{status: 429, body: `{"status":"error"}`}, NewsDataOptions{APIKey: "k"}, nil)
	if _, err := s.Search(context.Background(), "q", 1); err == nil {
		t.Fatalf("expected error for 429")
	}
}

func TestNewsDataSearchPropagatesTransportError(t *testing.T) {
	s := NewNewsDataClient(&mockHTTPClient{err: errors.New("dial tcp: timeout")}, NewsDataOptions{APIKey: "k"}, nil)
	if _, err := s.Search(context.Background(), "q", 1); err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestTavilySearchPostsNewsTopic(t *testing.T) {
	client := &mockHTTPClient{body: `{"results":[{"title":"T","url":"https://t.example","content":"C"}]}`}
	s := NewTavilyClient(client, TavilyOptions{APIKey: "tv"}, nil)

	articles, err := s.Search(context.Background(), "oil glut", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if client.headers["Authorization"] != "Bearer tv" {
		t.Fatalf("missing bearer header: %v", client.headers)
	}
	req, ok := client.payload.(tavilyRequest)
	if !ok {
		t.Fatalf("unexpected payload type %T", client.payload)
	}
	if req.Topic != "news" || req.MaxResults != 1 || req.Query != "oil glut" {
		t.Fatalf("unexpected payload %+v", req)
	}
	if len(articles) != 1 || articles[0].Snippet != "C" {
		t.Fatalf("unexpected articles %+v", articles)
	}
}

func TestDefaultRegistryResolvesProviders(t *testing.T) {
	reg := DefaultRegistry()
	for _, typ := range []string{"newsdata", " Tavily "} {
		s, err := reg.SearcherFor(typ, &mockHTTPClient{}, Options{}, nil)
		if err != nil {
			t.Fatalf("SearcherFor(%q): %v", typ, err)
		}
		if s == nil {
			t.Fatalf("nil searcher for %q", typ)
		}
	}
	if _, err := reg.SearcherFor("bing", &mockHTTPClient{}, Options{}, nil); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
