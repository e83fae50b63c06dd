package analysis

import (
	"context"
	"strings"

	"github.com/samvad-hq/echohub-buster/internal/domain"
	"github.com/samvad-hq/echohub-buster/internal/logger"
	"github.com/samvad-hq/echohub-buster/pkg/llm"
)

// DivergenceFailure replaces a perspective summary when its LLM call fails.
const DivergenceFailure = "Failed to get a divergent perspective due to an AI error."

// DivergenceAnalyzer compares a retrieved article against the original analysis.
type DivergenceAnalyzer struct {
	gen llm.Generator
	log logger.Logger
}

// NewDivergenceAnalyzer wires a DivergenceAnalyzer to an LLM generator.
func NewDivergenceAnalyzer(gen llm.Generator, log logger.Logger) *DivergenceAnalyzer {
	return &DivergenceAnalyzer{gen: gen, log: logger.Ensure(log)}
}

// Analyze returns free-text divergence for one article, or DivergenceFailure.
func (d *DivergenceAnalyzer) Analyze(ctx context.Context, original domain.OriginalAnalysis, article domain.RetrievedArticle) string {
	keywords := make([]string, 0, len(original.Companies)+len(original.Themes))
	keywords = append(keywords, original.Companies...)
	keywords = append(keywords, original.Themes...)

	prompt := buildDivergencePrompt(original.Summary, keywords, article.Title, article.ContentSnippet)
	text, err := d.gen.Generate(ctx, prompt)
	if err != nil {
		d.log.ErrorObj("divergence analysis failed", "divergence_error", map[string]any{
			"url":   article.URL,
			"error": err.Error(),
		})
		return DivergenceFailure
	}

	text = strings.TrimSpace(text)
	if text == "" {
		d.log.WarnObj("divergence analysis returned empty text", "url", article.URL)
		return DivergenceFailure
	}
	return text
}
