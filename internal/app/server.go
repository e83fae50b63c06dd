package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samvad-hq/echohub-buster/internal/acquirer"
	"github.com/samvad-hq/echohub-buster/internal/analysis"
	"github.com/samvad-hq/echohub-buster/internal/api"
	"github.com/samvad-hq/echohub-buster/internal/config"
	"github.com/samvad-hq/echohub-buster/internal/logger"
	"github.com/samvad-hq/echohub-buster/internal/pipeline"
	"github.com/samvad-hq/echohub-buster/pkg/httpclient"
	"github.com/samvad-hq/echohub-buster/pkg/llm"
	"github.com/samvad-hq/echohub-buster/pkg/publishers"
	"github.com/samvad-hq/echohub-buster/pkg/search"
)

// Server is the analysis API runtime. It owns the HTTP listener and the
// publisher clients, and releases both on shutdown.
type Server struct {
	cfg     *config.Config
	handler http.Handler
	fanout  *publishers.Fanout
	log     logger.Logger
}

// NewServer builds every pipeline stage from cfg and mounts the HTTP routes.
func NewServer(ctx context.Context, cfg *config.Config, log logger.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if ctx == nil {
		ctx = context.Background()
	}

	chat, err := llm.NewChatClient(ctx, llm.Config{
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init llm client: %w", err)
	}

	searcher, err := search.DefaultRegistry().SearcherFor(cfg.SearchProvider, search.DefaultHTTPClient(), search.Options{
		NewsData: search.NewsDataOptions{
			APIKey:   cfg.NewsDataAPIKey,
			Language: cfg.SearchLanguage,
			Category: cfg.SearchCategory,
		},
		Tavily: search.TavilyOptions{APIKey: cfg.TavilyAPIKey},
	}, log)
	if err != nil {
		return nil, fmt.Errorf("init search provider: %w", err)
	}

	fanout, err := buildFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		return nil, err
	}

	acq := acquirer.New(httpclient.NewRestyClient(cfg.ScrapeTimeout), acquirer.Options{
		FetchTimeout: cfg.ScrapeTimeout,
		MetaTimeout:  cfg.ScrapeMetaTimeout,
		MinChars:     cfg.MinArticleChars,
		MaxChars:     cfg.MaxArticleChars,
		UserAgent:    cfg.ScrapeUserAgent,
	}, log)

	svc, err := pipeline.NewService(pipeline.Deps{
		Acquirer:   acq,
		Extractor:  analysis.NewExtractor(chat, log),
		Queries:    analysis.NewQueryGenerator(chat, log),
		Retriever:  pipeline.NewRetriever(searcher, cfg.SearchTimeout, log),
		Divergence: analysis.NewDivergenceAnalyzer(chat, log),
		Publisher:  fanout,
		Logger:     log,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init pipeline: %w", err)
	}

	log.InfoObj("analysis pipeline ready", "pipeline_meta", map[string]any{
		"llm_model":        chat.ModelName(),
		"search_provider":  searcher.Name(),
		"publishers_count": fanout.Size(),
	})

	router := api.NewRouter(svc, api.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins(),
		Mode:           ginMode(cfg.Env),
	}, log)

	return &Server{cfg: cfg, handler: router, fanout: fanout, log: log}, nil
}

// Handler exposes the routed HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	if s == nil || s.handler == nil {
		return fmt.Errorf("server is not initialized")
	}
	defer s.closePublishers()

	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.InfoObj("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.InfoObj("http server shutting down", "reason", ctx.Err().Error())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// buildFanout loads the optional publishers file. No file means no publishing.
func buildFanout(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	if path == "" {
		log.InfoObj("no publishers file configured; analysis events are not published", "publishers_file", path)
		return publishers.NewFanout(nil), nil
	}

	publisherReg, err := publishers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := publisherReg.Enabled()

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubClients), nil
}

// closePublishers releases publisher clients, logging any errors encountered.
func (s *Server) closePublishers() {
	if err := s.fanout.Close(); err != nil {
		s.log.ErrorObj("publisher close failed", "error", err.Error())
	}
}

func ginMode(env string) string {
	switch env {
	case "production", "prod":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
