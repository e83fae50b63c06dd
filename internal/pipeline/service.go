package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samvad-hq/echohub-buster/internal/analysis"
	"github.com/samvad-hq/echohub-buster/internal/domain"
	"github.com/samvad-hq/echohub-buster/internal/logger"
	"github.com/samvad-hq/echohub-buster/pkg/publishers"
)

// ContentAcquirer turns a request into article text.
type ContentAcquirer interface {
	Acquire(ctx context.Context, input domain.AnalysisInput) (string, error)
}

// EntityExtractor summarizes article text.
type EntityExtractor interface {
	Extract(ctx context.Context, article string) (domain.OriginalAnalysis, error)
}

// QueryGenerator produces contrasting-viewpoint search queries.
type QueryGenerator interface {
	Generate(ctx context.Context, keywords []string) []string
}

// ArticleRetriever finds one article per query.
type ArticleRetriever interface {
	Retrieve(ctx context.Context, queries []string) []domain.RetrievedArticle
}

// DivergenceAnalyzer frames a retrieved article against the original.
type DivergenceAnalyzer interface {
	Analyze(ctx context.Context, original domain.OriginalAnalysis, article domain.RetrievedArticle) string
}

// EventPublisher receives the finished analysis.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
	Size() int
}

// Deps collects the stages of the pipeline. Publisher is optional.
type Deps struct {
	Acquirer   ContentAcquirer
	Extractor  EntityExtractor
	Queries    QueryGenerator
	Retriever  ArticleRetriever
	Divergence DivergenceAnalyzer
	Publisher  EventPublisher
	Logger     logger.Logger
}

// Service runs one news analysis end to end.
type Service struct {
	acquirer   ContentAcquirer
	extractor  EntityExtractor
	queries    QueryGenerator
	retriever  ArticleRetriever
	divergence DivergenceAnalyzer
	publisher  EventPublisher
	log        logger.Logger
}

// NewService validates deps and builds a Service.
func NewService(d Deps) (*Service, error) {
	switch {
	case d.Acquirer == nil:
		return nil, errors.New("pipeline: acquirer is required")
	case d.Extractor == nil:
		return nil, errors.New("pipeline: extractor is required")
	case d.Queries == nil:
		return nil, errors.New("pipeline: query generator is required")
	case d.Retriever == nil:
		return nil, errors.New("pipeline: retriever is required")
	case d.Divergence == nil:
		return nil, errors.New("pipeline: divergence analyzer is required")
	}
	return &Service{
		acquirer:   d.Acquirer,
		extractor:  d.Extractor,
		queries:    d.Queries,
		retriever:  d.Retriever,
		divergence: d.Divergence,
		publisher:  d.Publisher,
		log:        logger.Ensure(d.Logger),
	}, nil
}

// Analyze acquires, extracts, searches and compares, in that order.
// Only input validation, acquisition and extraction can fail the request.
func (s *Service) Analyze(ctx context.Context, input domain.AnalysisInput) (domain.AnalysisResult, error) {
	input, err := normalizeInput(input)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	article, err := s.acquirer.Acquire(ctx, input)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("%w: %w", ErrAcquisition, err)
	}
	s.log.DebugObj("article acquired", "acquired", map[string]any{
		"input_type": input.InputType,
		"chars":      len([]rune(article)),
	})

	original, err := s.extractor.Extract(ctx, article)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	keywords := analysis.CombineKeywords(original.Companies, original.Industries, original.Themes)
	var queries []string
	if len(keywords) > 0 {
		queries = s.queries.Generate(ctx, keywords)
	}
	s.log.InfoObj("search queries prepared", "queries", map[string]any{
		"keywords": keywords,
		"queries":  queries,
	})

	articles := s.retriever.Retrieve(ctx, queries)

	perspectives := make([]domain.DivergentPerspective, 0, len(articles))
	for _, a := range articles {
		perspectives = append(perspectives, domain.DivergentPerspective{
			Title:   a.Title,
			URL:     a.URL,
			Summary: s.divergence.Analyze(ctx, original, a),
		})
	}

	result := domain.AnalysisResult{
		OriginalAnalysis:      original,
		DivergentPerspectives: perspectives,
	}
	s.publish(ctx, input, result)
	return result, nil
}

func (s *Service) publish(ctx context.Context, input domain.AnalysisInput, result domain.AnalysisResult) {
	if s.publisher == nil || s.publisher.Size() == 0 {
		return
	}
	evt := publishers.NewEvent(input, result)
	delivered, err := s.publisher.Publish(ctx, evt)
	if err != nil {
		s.log.WarnObj("analysis event publish failed", "publish_error", map[string]any{
			"event_id":  evt.ID,
			"delivered": delivered,
			"error":     err.Error(),
		})
		return
	}
	s.log.DebugObj("analysis event published", "event_id", evt.ID)
}

func normalizeInput(input domain.AnalysisInput) (domain.AnalysisInput, error) {
	if strings.TrimSpace(input.NewsInput) == "" {
		return input, ErrInputRequired
	}
	switch input.InputType {
	case "":
		input.InputType = domain.InputTypeText
	case domain.InputTypeText, domain.InputTypeURL:
	default:
		return input, fmt.Errorf("%w: got %q", ErrInvalidInputType, input.InputType)
	}
	if input.InputType == domain.InputTypeURL {
		input.NewsInput = strings.TrimSpace(input.NewsInput)
	}
	return input, nil
}
