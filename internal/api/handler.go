package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samvad-hq/echohub-buster/internal/domain"
	"github.com/samvad-hq/echohub-buster/internal/logger"
	"github.com/samvad-hq/echohub-buster/internal/pipeline"
)

// Client-facing error messages.
const (
	MsgInputRequired    = "News input is required."
	MsgInvalidInputType = `Input type must be "text" or "url".`
	MsgAcquisition      = "Failed to fetch or scrape sufficient article content from the provided URL. Please try pasting the text directly."
	MsgExtraction       = "AI failed to analyze the original news clearly. Please try again or with different text."
	MsgUnexpected       = "An unexpected error occurred during news analysis. Please check server logs."

	statusMessage = "EchoHub Buster Backend is running!"
)

// Analyzer runs the analysis pipeline for one request.
type Analyzer interface {
	Analyze(ctx context.Context, input domain.AnalysisInput) (domain.AnalysisResult, error)
}

// AnalyzeHandler serves the analysis endpoints.
type AnalyzeHandler struct {
	analyzer Analyzer
	log      logger.Logger
}

// NewAnalyzeHandler builds the handler over an Analyzer.
func NewAnalyzeHandler(analyzer Analyzer, log logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer, log: logger.Ensure(log)}
}

type errorResponse struct {
	Error string `json:"error"`
}

// AnalyzeNews handles POST /api/analyze-news.
func (h *AnalyzeHandler) AnalyzeNews(c *gin.Context) {
	var input domain.AnalysisInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.WarnObj("invalid analyze request body", "bind_error", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse{Error: MsgInputRequired})
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), input)
	if err != nil {
		status, msg := mapError(err)
		h.log.ErrorObj("news analysis failed", "analysis_error", map[string]any{
			"request_id": c.GetString(requestIDKey),
			"input_type": input.InputType,
			"status":     status,
			"error":      err.Error(),
		})
		c.JSON(status, errorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Status handles GET /.
func (h *AnalyzeHandler) Status(c *gin.Context) {
	c.String(http.StatusOK, statusMessage)
}

// Health handles GET /health.
func (h *AnalyzeHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, pipeline.ErrInputRequired):
		return http.StatusBadRequest, MsgInputRequired
	case errors.Is(err, pipeline.ErrInvalidInputType):
		return http.StatusBadRequest, MsgInvalidInputType
	case errors.Is(err, pipeline.ErrAcquisition):
		return http.StatusInternalServerError, MsgAcquisition
	case errors.Is(err, pipeline.ErrExtraction):
		return http.StatusInternalServerError, MsgExtraction
	default:
		return http.StatusInternalServerError, MsgUnexpected
	}
}
