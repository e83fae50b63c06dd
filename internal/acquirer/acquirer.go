package acquirer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/samvad-hq/echohub-buster/internal/domain"
	"github.com/samvad-hq/echohub-buster/internal/logger"
	"github.com/samvad-hq/echohub-buster/pkg/httpclient"
)

const (
	maxHTMLBodyBytes  = 2 << 20 // 2 MiB
	minParagraphChars = 50
	enoughTextChars   = 500
	truncationMarker  = "... (truncated)"
)

// contentSelectors are tried in order until enough paragraph text is collected.
var contentSelectors = []string{
	"article p",
	"div.article-body p",
	"div.content p",
	".story-body p",
	"main p",
	"p",
}

var (
	// ErrInsufficientContent is returned when a page yields too little text to analyze.
	ErrInsufficientContent = errors.New("insufficient article content")
	// ErrFetch is returned when neither the full fetch nor the metadata retry succeeded.
	ErrFetch = errors.New("article fetch failed")
	// ErrInvalidURL is returned for inputs that are not absolute http(s) URLs.
	ErrInvalidURL = errors.New("invalid article url")
)

// Options controls timeouts, length limits and request headers.
type Options struct {
	FetchTimeout time.Duration
	MetaTimeout  time.Duration
	MinChars     int
	MaxChars     int
	UserAgent    string
}

// Acquirer turns a pasted article or an article URL into plain text.
type Acquirer struct {
	client httpclient.Client
	opts   Options
	log    logger.Logger
}

// New constructs an Acquirer with the provided HTTP client (or a resty default).
func New(client httpclient.Client, opts Options, log logger.Logger) *Acquirer {
	opts = normalizeOptions(opts)
	if client == nil {
		client = httpclient.NewRestyClient(opts.FetchTimeout)
	}
	return &Acquirer{client: client, opts: opts, log: logger.Ensure(log)}
}

func normalizeOptions(opts Options) Options {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	if opts.MetaTimeout <= 0 {
		opts.MetaTimeout = 5 * time.Second
	}
	if opts.MinChars <= 0 {
		opts.MinChars = 100
	}
	if opts.MaxChars <= 0 {
		opts.MaxChars = 8000
	}
	return opts
}

// Acquire returns the article text for input. Pasted text never touches the network.
func (a *Acquirer) Acquire(ctx context.Context, input domain.AnalysisInput) (string, error) {
	if input.InputType != domain.InputTypeURL {
		return Truncate(input.NewsInput, a.opts.MaxChars), nil
	}

	pageURL := strings.TrimSpace(input.NewsInput)
	text, err := a.scrape(ctx, pageURL)
	if err != nil {
		return "", err
	}

	if n := utf8.RuneCountInString(text); n < a.opts.MinChars {
		return "", fmt.Errorf("%w: %d chars from %s", ErrInsufficientContent, n, pageURL)
	}
	return Truncate(text, a.opts.MaxChars), nil
}

func (a *Acquirer) scrape(ctx context.Context, rawURL string) (string, error) {
	pageURL, err := parsePageURL(rawURL)
	if err != nil {
		return "", err
	}

	body, err := a.fetch(ctx, pageURL.String(), a.opts.FetchTimeout)
	if err == nil {
		var text string
		text, err = a.extract(body, pageURL)
		if err == nil {
			return text, nil
		}
	}

	a.log.WarnObj("article scrape failed; retrying for metadata", "scrape_error", map[string]any{
		"url":   rawURL,
		"error": err.Error(),
	})
	return a.metadataFallback(ctx, pageURL)
}

func (a *Acquirer) extract(body []byte, pageURL *url.URL) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var sb strings.Builder
	for _, sel := range contentSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if utf8.RuneCountInString(text) > minParagraphChars {
				sb.WriteString(text)
				sb.WriteString("\n")
			}
		})
		if utf8.RuneCountInString(sb.String()) > enoughTextChars {
			break
		}
	}

	text := collapseWhitespace(sb.String())

	if utf8.RuneCountInString(text) < a.opts.MinChars {
		if readable := readableText(body, pageURL); utf8.RuneCountInString(readable) > utf8.RuneCountInString(text) {
			text = readable
		}
	}

	if utf8.RuneCountInString(text) < a.opts.MinChars {
		a.log.WarnObj("scraped very little content", "scrape_meta", map[string]any{
			"url":   pageURL.String(),
			"chars": utf8.RuneCountInString(text),
		})
		meta := parseMeta(doc)
		if meta.Title != "" {
			prefix := meta.Title
			if meta.Description != "" {
				prefix += ". " + meta.Description
			}
			text = strings.TrimSpace(prefix + "\n" + text)
		}
	}

	return text, nil
}

func (a *Acquirer) metadataFallback(ctx context.Context, pageURL *url.URL) (string, error) {
	body, err := a.fetch(ctx, pageURL.String(), a.opts.MetaTimeout)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFetch, pageURL, err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: parse html: %v", ErrFetch, err)
	}

	meta := parseMeta(doc)
	if meta.Title == "" && meta.Description == "" {
		return "", fmt.Errorf("%w: %s has no title or description", ErrFetch, pageURL)
	}
	return fmt.Sprintf("(Failed to scrape full content) Title: %s. Description: %s.",
		orNA(meta.Title), orNA(meta.Description)), nil
}

func (a *Acquirer) fetch(ctx context.Context, rawURL string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := a.client.Get(ctx, rawURL, a.headers())
	if err != nil {
		return nil, fmt.Errorf("http fetch: %w", err)
	}

	body := resp.Body()
	if !httpclient.IsSuccess(resp) {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > 1024 {
			snippet = snippet[:1024]
		}
		return nil, fmt.Errorf("status %d body: %s", resp.StatusCode(), snippet)
	}

	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}
	return body, nil
}

func (a *Acquirer) headers() map[string]string {
	headers := map[string]string{
		"Accept":          "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
	}
	if ua := strings.TrimSpace(a.opts.UserAgent); ua != "" {
		headers["User-Agent"] = ua
	}
	return headers
}

func parsePageURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return u, nil
}

func readableText(body []byte, pageURL *url.URL) string {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return ""
	}
	return collapseWhitespace(article.TextContent)
}

type pageMeta struct {
	Title       string
	Description string
}

func parseMeta(doc *goquery.Document) pageMeta {
	desc, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	return pageMeta{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		Description: strings.TrimSpace(desc),
	}
}

// Truncate cuts text to max characters and appends a truncation marker.
func Truncate(text string, max int) string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max]) + truncationMarker
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
