// Package handler contains HTTP handlers for the API.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lex-ai/internal/domain"
)

// errorEnvelope is the error response shape for every endpoint.
type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// statusFor maps an error classification to an HTTP status code.
func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError converts a classified error into the JSON error envelope.
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(domain.KindOf(err)), errorEnvelope{
		Status:  "error",
		Message: err.Error(),
	})
}
