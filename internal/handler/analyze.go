// Package handler contains HTTP handlers for the API.
package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lex-ai/internal/domain"
	"github.com/lex-ai/internal/service"
	"go.uber.org/zap"
)

// AnalyzeHandler handles document and text analysis requests.
type AnalyzeHandler struct {
	analyzer *service.Analyzer
	logger   *zap.Logger
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(analyzer *service.Analyzer, logger *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		logger:   logger.Named("analyze_handler"),
	}
}

// HandleDocument processes POST /api/analyze-document requests
// (multipart: file field "document", form field "analysis_type").
func (h *AnalyzeHandler) HandleDocument(c *gin.Context) {
	startTime := time.Now()

	file, err := c.FormFile("document")
	if err != nil {
		if isBodyTooLarge(err) {
			h.logger.Warn("upload rejected, body over size limit", zap.Error(err))
			c.JSON(http.StatusRequestEntityTooLarge, errorEnvelope{
				Status:  "error",
				Message: domain.ErrFileTooLarge.Error(),
			})
			return
		}
		h.logger.Warn("missing document part", zap.Error(err))
		respondError(c, domain.E(domain.KindInvalidInput, "analyze_document", domain.ErrNoDocument))
		return
	}

	analysisType := c.PostForm("analysis_type")

	result, err := h.analyzer.AnalyzeUpload(c.Request.Context(), file, analysisType)
	if err != nil {
		h.logger.Warn("document analysis failed",
			zap.String("filename", file.Filename),
			zap.Error(err),
		)
		respondError(c, err)
		return
	}

	h.logger.Debug("document analysis request served",
		zap.Duration("duration", time.Since(startTime)),
	)

	c.JSON(http.StatusOK, result)
}

// HandleText processes POST /api/analyze-text requests.
func (h *AnalyzeHandler) HandleText(c *gin.Context) {
	var req domain.TextAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		respondError(c, domain.E(domain.KindInvalidInput, "analyze_text", domain.ErrEmptyText))
		return
	}

	result, err := h.analyzer.AnalyzeText(c.Request.Context(), req.Text, req.AnalysisType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// isBodyTooLarge recognizes the MaxBytesReader cutoff, which the multipart
// parser may surface wrapped or flattened into its message.
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}
