package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lex-ai/internal/ai"
)

// HealthHandler handles health check requests.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Handle processes GET /health requests.
func (h *HealthHandler) Handle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadyHandler reports readiness: the generative API must be reachable,
// and the identity store mode is included for operators.
type ReadyHandler struct {
	aiClient       ai.Client
	storeAvailable bool
}

// NewReadyHandler creates a new ReadyHandler.
func NewReadyHandler(aiClient ai.Client, storeAvailable bool) *ReadyHandler {
	return &ReadyHandler{
		aiClient:       aiClient,
		storeAvailable: storeAvailable,
	}
}

// Handle processes GET /ready requests. An unreachable generative API
// yields 503; a degraded identity store does not, it only changes the mode.
func (h *ReadyHandler) Handle(c *gin.Context) {
	mode := "full"
	if !h.storeAvailable {
		mode = "session-only"
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	aiStatus := "ok"
	code := http.StatusOK
	if err := h.aiClient.HealthCheck(ctx); err != nil {
		status = "not_ready"
		aiStatus = "unreachable"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status": status,
		"mode":   mode,
		"ai":     aiStatus,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
