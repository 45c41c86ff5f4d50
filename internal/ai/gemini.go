// Package ai provides the generative-text client interface and implementations.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lex-ai/internal/config"
	"github.com/lex-ai/internal/domain"
	"github.com/lex-ai/pkg/textutil"
	"go.uber.org/zap"
)

// GeminiClient implements the Client interface against Google's Gemini API.
type GeminiClient struct {
	config     *config.AIConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// Gemini API request/response structures

type geminiRequest struct {
	Contents         []geminiContent       `json:"contents"`
	GenerationConfig geminiGenConfig       `json:"generationConfig"`
	SafetySettings   []geminiSafetySetting `json:"safetySettings,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP,omitempty"`
	TopK            int     `json:"topK,omitempty"`
}

type geminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiResponse struct {
	Candidates     []geminiCandidate     `json:"candidates"`
	PromptFeedback *geminiPromptFeedback `json:"promptFeedback,omitempty"`
	Error          *geminiError          `json:"error,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

type geminiPromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(cfg *config.AIConfig, logger *zap.Logger) *GeminiClient {
	return &GeminiClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.Named("gemini_client"),
	}
}

// Complete sends the prompt to the Gemini API and returns the generated text.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	startTime := time.Now()
	c.logger.Debug("starting Gemini completion", zap.Int("prompt_length", len(prompt)))

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: prompt}},
			},
		},
		GenerationConfig: geminiGenConfig{
			Temperature:     0.2,
			MaxOutputTokens: c.config.MaxTokens,
			TopP:            0.95,
			TopK:            40,
		},
		SafetySettings: []geminiSafetySetting{
			{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
			{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"},
			{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_NONE"},
			{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_NONE"},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", domain.E(domain.KindUpstream, "marshal_request", err)
	}

	url := c.buildURL()

	var text string
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff
			backoff := time.Duration(attempt*attempt) * time.Second
			c.logger.Debug("retrying Gemini request",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return "", domain.E(domain.KindUpstream, "context_cancelled", ctx.Err())
			case <-time.After(backoff):
			}
		}

		text, lastErr = c.executeRequest(ctx, url, jsonBody)
		if lastErr == nil {
			break
		}

		if !domain.IsRetryable(lastErr) {
			break
		}
	}

	if lastErr != nil {
		return "", lastErr
	}

	c.logger.Debug("Gemini completion finished",
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("response_length", len(text)),
	)

	return text, nil
}

// buildURL constructs the Gemini API URL.
func (c *GeminiClient) buildURL() string {
	baseURL := strings.TrimSuffix(c.config.BaseURL, "/")

	// Support both a full versioned URL and just the base
	if strings.Contains(baseURL, "/v1") || strings.Contains(baseURL, "/v1beta") {
		return fmt.Sprintf("%s/models/%s:generateContent?key=%s", baseURL, c.config.Model, c.config.APIKey)
	}

	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", baseURL, c.config.Model, c.config.APIKey)
}

// executeRequest performs a single HTTP request to the Gemini API.
func (c *GeminiClient) executeRequest(ctx context.Context, url string, jsonBody []byte) (string, error) {
	c.logger.Debug("sending Gemini request",
		zap.String("url", maskAPIKey(url)),
		zap.Int("body_size", len(jsonBody)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", domain.E(domain.KindUpstream, "create_request", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", domain.Retryable(domain.KindUpstream, "gemini_timeout", domain.ErrAITimeout)
		}
		return "", domain.Retryable(domain.KindUpstream, "http_request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.Retryable(domain.KindUpstream, "read_response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.handleHTTPError(resp.StatusCode, body)
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		c.logger.Warn("failed to unmarshal Gemini response",
			zap.Error(err),
			zap.String("body_preview", textutil.Truncate(string(body), 500)),
		)
		return "", domain.E(domain.KindUpstream, "parse_response", err)
	}

	if geminiResp.Error != nil {
		return "", domain.E(domain.KindUpstream, "gemini_api_error",
			fmt.Errorf("[%d] %s: %s", geminiResp.Error.Code, geminiResp.Error.Status, geminiResp.Error.Message))
	}

	if geminiResp.PromptFeedback != nil && geminiResp.PromptFeedback.BlockReason != "" {
		return "", domain.E(domain.KindUpstream, "content_blocked",
			fmt.Errorf("prompt blocked: %s", geminiResp.PromptFeedback.BlockReason))
	}

	if len(geminiResp.Candidates) == 0 {
		c.logger.Warn("no candidates in response",
			zap.String("body", textutil.Truncate(string(body), 1000)),
		)
		return "", domain.E(domain.KindUpstream, "empty_response", domain.ErrEmptyAIResponse)
	}

	candidate := geminiResp.Candidates[0]

	if candidate.FinishReason == "SAFETY" {
		return "", domain.E(domain.KindUpstream, "safety_filter",
			fmt.Errorf("response blocked by safety filter"))
	}

	var textContent strings.Builder
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			textContent.WriteString(part.Text)
		}
	}

	text := textContent.String()
	if text == "" {
		return "", domain.E(domain.KindUpstream, "empty_text", domain.ErrEmptyAIResponse)
	}

	return text, nil
}

// handleHTTPError processes HTTP error responses.
func (c *GeminiClient) handleHTTPError(statusCode int, body []byte) error {
	var errResp geminiResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != nil {
		c.logger.Warn("Gemini API error",
			zap.Int("status", statusCode),
			zap.String("error_status", errResp.Error.Status),
			zap.String("error_message", errResp.Error.Message),
		)
	}

	switch statusCode {
	case http.StatusTooManyRequests:
		return domain.Retryable(domain.KindUpstream, "rate_limit", domain.ErrRateLimited)
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.E(domain.KindUpstream, "auth_error",
			fmt.Errorf("authentication failed (status %d): check your API key", statusCode))
	case http.StatusBadRequest:
		return domain.E(domain.KindUpstream, "bad_request",
			fmt.Errorf("bad request: %s", textutil.Truncate(string(body), 200)))
	case http.StatusNotFound:
		return domain.E(domain.KindUpstream, "model_not_found",
			fmt.Errorf("model not found: check model name in configuration"))
	default:
		if statusCode >= 500 {
			return domain.Retryable(domain.KindUpstream, "gemini_unavailable", domain.ErrAIUnavailable)
		}
		return domain.E(domain.KindUpstream, "gemini_error",
			fmt.Errorf("Gemini API returned status %d: %s", statusCode, textutil.Truncate(string(body), 200)))
	}
}

// HealthCheck verifies the Gemini API is reachable.
func (c *GeminiClient) HealthCheck(ctx context.Context) error {
	url := fmt.Sprintf("%s/v1beta/models?key=%s", strings.TrimSuffix(c.config.BaseURL, "/"), c.config.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Retryable(domain.KindUpstream, "health_check", domain.ErrAIUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Retryable(domain.KindUpstream, "health_check", domain.ErrAIUnavailable)
	}

	return nil
}

// maskAPIKey masks the API key in a URL for safe logging.
func maskAPIKey(url string) string {
	if idx := strings.Index(url, "key="); idx != -1 {
		endIdx := strings.Index(url[idx:], "&")
		if endIdx == -1 {
			return url[:idx] + "key=***"
		}
		return url[:idx] + "key=***" + url[idx+endIdx:]
	}
	return url
}
