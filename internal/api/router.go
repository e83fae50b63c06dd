package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/samvad-hq/echohub-buster/internal/logger"
)

// RouterConfig holds transport settings for NewRouter.
type RouterConfig struct {
	// AllowedOrigins lists CORS origins. Empty or "*" allows any origin.
	AllowedOrigins []string
	// Mode is the gin mode (debug, release, test). Defaults to release.
	Mode string
}

// NewRouter wires middleware and routes onto a gin engine.
func NewRouter(analyzer Analyzer, cfg RouterConfig, log logger.Logger) *gin.Engine {
	mode := cfg.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	r := gin.New()
	r.Use(RequestID(), Recovery(log), RequestLogger(log))
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	h := NewAnalyzeHandler(analyzer, log)
	r.GET("/", h.Status)
	r.GET("/health", h.Health)
	r.POST("/api/analyze-news", h.AnalyzeNews)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
