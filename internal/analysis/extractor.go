package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samvad-hq/echohub-buster/internal/domain"
	"github.com/samvad-hq/echohub-buster/internal/logger"
	"github.com/samvad-hq/echohub-buster/pkg/llm"
)

// ErrMissingSummary is returned when the LLM reply decodes but carries no summary.
var ErrMissingSummary = errors.New("llm reply has no summary")

// Extractor summarizes an article and pulls out companies, industries and themes.
type Extractor struct {
	gen llm.Generator
	log logger.Logger
}

// NewExtractor wires an Extractor to an LLM generator.
func NewExtractor(gen llm.Generator, log logger.Logger) *Extractor {
	return &Extractor{gen: gen, log: logger.Ensure(log)}
}

type extractReply struct {
	Summary    string          `json:"summary"`
	Companies  json.RawMessage `json:"companies"`
	Industries json.RawMessage `json:"industries"`
	Themes     json.RawMessage `json:"themes"`
}

// Extract runs the summary/entity prompt. It never fabricates a summary: an LLM
// failure, an unparsable reply or an empty summary is returned as an error.
func (e *Extractor) Extract(ctx context.Context, article string) (domain.OriginalAnalysis, error) {
	raw, err := e.gen.Generate(ctx, buildExtractPrompt(article))
	if err != nil {
		return domain.OriginalAnalysis{}, fmt.Errorf("extract: %w", err)
	}

	var reply extractReply
	if err := llm.DecodeJSON(raw, &reply); err != nil {
		e.log.ErrorObj("extraction reply could not be parsed", "llm_raw_response", raw)
		return domain.OriginalAnalysis{}, fmt.Errorf("extract: %w", err)
	}

	summary := strings.TrimSpace(reply.Summary)
	if summary == "" {
		return domain.OriginalAnalysis{}, fmt.Errorf("extract: %w", ErrMissingSummary)
	}

	return domain.OriginalAnalysis{
		Summary:    summary,
		Companies:  decodeStringList(reply.Companies),
		Industries: decodeStringList(reply.Industries),
		Themes:     decodeStringList(reply.Themes),
	}, nil
}

// decodeStringList tolerates null, a bare string or mixed arrays and always returns a non-nil slice.
func decodeStringList(raw json.RawMessage) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}

	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		var single string
		if json.Unmarshal(raw, &single) == nil {
			items = []any{single}
		}
	}

	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
