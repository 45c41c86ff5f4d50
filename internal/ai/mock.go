// Package ai provides the generative-text client interface and implementations.
package ai

import (
	"context"

	"go.uber.org/zap"
)

// MockClient implements the Client interface without network calls.
// Used in tests and when GEMINI_MOCK_MODE is set.
type MockClient struct {
	logger *zap.Logger
}

// NewMockClient creates a new mock client.
func NewMockClient(logger *zap.Logger) *MockClient {
	return &MockClient{
		logger: logger.Named("mock_ai_client"),
	}
}

// Complete returns a canned response echoing the prompt length.
func (c *MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug("mock completion", zap.Int("prompt_length", len(prompt)))

	return "This is a mock response. Set GEMINI_MOCK_MODE=false and configure " +
		"GEMINI_API_KEY to enable real document analysis and generation.", nil
}

// HealthCheck always returns success for the mock client.
func (c *MockClient) HealthCheck(ctx context.Context) error {
	return nil
}
