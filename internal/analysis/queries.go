package analysis

import (
	"context"
	"strings"

	"github.com/samvad-hq/echohub-buster/internal/logger"
	"github.com/samvad-hq/echohub-buster/pkg/llm"
)

const (
	// MaxKeywords caps the keywords passed to query generation.
	MaxKeywords = 5
	// MaxQueries caps the search queries used per request.
	MaxQueries = 3
)

// fallbackSuffixes are appended to the first keywords when the LLM reply is unusable.
var fallbackSuffixes = []string{"outlook", "debate"}

// CombineKeywords concatenates companies, industries and themes in that order,
// drops blanks and case-insensitive duplicates, and keeps at most MaxKeywords.
func CombineKeywords(companies, industries, themes []string) []string {
	out := make([]string, 0, MaxKeywords)
	seen := make(map[string]struct{}, MaxKeywords)

	for _, group := range [][]string{companies, industries, themes} {
		for _, kw := range group {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			key := strings.ToLower(kw)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, kw)
			if len(out) == MaxKeywords {
				return out
			}
		}
	}
	return out
}

// QueryGenerator asks the LLM for contrasting-viewpoint search queries.
type QueryGenerator struct {
	gen llm.Generator
	log logger.Logger
}

// NewQueryGenerator wires a QueryGenerator to an LLM generator.
func NewQueryGenerator(gen llm.Generator, log logger.Logger) *QueryGenerator {
	return &QueryGenerator{gen: gen, log: logger.Ensure(log)}
}

// Generate returns at most MaxQueries queries. It never fails: an empty keyword
// list yields no queries and an unusable LLM reply yields FallbackQueries.
// A valid string array is used as given, even when it holds no usable query.
func (g *QueryGenerator) Generate(ctx context.Context, keywords []string) []string {
	if len(keywords) == 0 {
		return []string{}
	}

	raw, err := g.gen.Generate(ctx, buildQueriesPrompt(keywords))
	if err != nil {
		g.log.WarnObj("query generation failed; using default queries", "llm_error", err.Error())
		return FallbackQueries(keywords)
	}

	var parsed []string
	if err := llm.DecodeJSON(raw, &parsed); err != nil {
		g.log.WarnObj("query reply was not an array of strings; using default queries", "llm_raw_response", raw)
		return FallbackQueries(keywords)
	}

	queries := make([]string, 0, MaxQueries)
	for _, q := range parsed {
		if q = strings.TrimSpace(q); q != "" {
			queries = append(queries, q)
		}
		if len(queries) == MaxQueries {
			break
		}
	}
	if len(queries) == 0 {
		g.log.InfoObj("llm returned no queries", "llm_raw_response", raw)
	}
	return queries
}

// FallbackQueries builds "<kw1> outlook" and "<kw2> debate", skipping absent keywords.
func FallbackQueries(keywords []string) []string {
	out := make([]string, 0, len(fallbackSuffixes))
	for i, suffix := range fallbackSuffixes {
		if i >= len(keywords) {
			break
		}
		kw := strings.TrimSpace(keywords[i])
		if kw == "" {
			continue
		}
		out = append(out, kw+" "+suffix)
	}
	return out
}
