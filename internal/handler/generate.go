package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lex-ai/internal/domain"
	"github.com/lex-ai/internal/service"
	"go.uber.org/zap"
)

// GenerateHandler handles document generation requests.
type GenerateHandler struct {
	generator *service.Generator
	logger    *zap.Logger
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(generator *service.Generator, logger *zap.Logger) *GenerateHandler {
	return &GenerateHandler{
		generator: generator,
		logger:    logger.Named("generate_handler"),
	}
}

// Handle processes POST /api/generate-document requests.
func (h *GenerateHandler) Handle(c *gin.Context) {
	var req domain.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		respondError(c, domain.E(domain.KindInvalidInput, "generate_document",
			errors.New("missing required data for document generation")))
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), req.DocumentType, req.Fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
