package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lex-ai/internal/config"
	"github.com/lex-ai/internal/domain"
	"go.uber.org/zap"
)

func testAIConfig(baseURL string) *config.AIConfig {
	return &config.AIConfig{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		Model:      "gemini-2.0-flash",
		Timeout:    5 * time.Second,
		MaxTokens:  256,
		MaxRetries: 0,
	}
}

func TestGeminiCompleteSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if !strings.Contains(r.URL.Path, "gemini-2.0-flash:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Error("API key not passed as query parameter")
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "Part one. "}, {"text": "Part two."}]},
				"finishReason": "STOP"
			}]
		}`))
	}))
	defer server.Close()

	client := NewGeminiClient(testAIConfig(server.URL), zap.NewNop())

	text, err := client.Complete(context.Background(), "analyze this")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if text != "Part one. Part two." {
		t.Errorf("text = %q, want joined candidate parts", text)
	}
}

func TestGeminiCompleteHTTPErrors(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantRetryable bool
	}{
		{
			name:          "rate limited is retryable",
			status:        http.StatusTooManyRequests,
			body:          `{"error": {"code": 429, "message": "quota", "status": "RESOURCE_EXHAUSTED"}}`,
			wantRetryable: true,
		},
		{
			name:          "server error is retryable",
			status:        http.StatusInternalServerError,
			body:          `{"error": {"code": 500, "message": "backend", "status": "INTERNAL"}}`,
			wantRetryable: true,
		},
		{
			name:          "unauthorized is not retryable",
			status:        http.StatusUnauthorized,
			body:          `{"error": {"code": 401, "message": "bad key", "status": "UNAUTHENTICATED"}}`,
			wantRetryable: false,
		},
		{
			name:          "bad request is not retryable",
			status:        http.StatusBadRequest,
			body:          `{"error": {"code": 400, "message": "invalid", "status": "INVALID_ARGUMENT"}}`,
			wantRetryable: false,
		},
		{
			name:          "model not found is not retryable",
			status:        http.StatusNotFound,
			body:          `{"error": {"code": 404, "message": "no model", "status": "NOT_FOUND"}}`,
			wantRetryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewGeminiClient(testAIConfig(server.URL), zap.NewNop())

			_, err := client.Complete(context.Background(), "prompt")
			if err == nil {
				t.Fatal("expected an error")
			}
			if domain.KindOf(err) != domain.KindUpstream {
				t.Errorf("kind = %v, want KindUpstream", domain.KindOf(err))
			}
			if domain.IsRetryable(err) != tt.wantRetryable {
				t.Errorf("IsRetryable = %v, want %v", domain.IsRetryable(err), tt.wantRetryable)
			}
		})
	}
}

func TestGeminiCompleteRetriesOnRetryableError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": {"code": 500, "message": "backend", "status": "INTERNAL"}}`))
			return
		}
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "recovered"}]}, "finishReason": "STOP"}]}`))
	}))
	defer server.Close()

	cfg := testAIConfig(server.URL)
	cfg.MaxRetries = 1
	client := NewGeminiClient(cfg, zap.NewNop())

	text, err := client.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if text != "recovered" {
		t.Errorf("text = %q, want %q", text, "recovered")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestGeminiCompleteDoesNotRetryNonRetryable(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"code": 401, "message": "bad key", "status": "UNAUTHENTICATED"}}`))
	}))
	defer server.Close()

	cfg := testAIConfig(server.URL)
	cfg.MaxRetries = 3
	client := NewGeminiClient(cfg, zap.NewNop())

	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Fatal("expected an error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retries on auth errors)", calls)
	}
}

func TestGeminiCompleteBlockedAndEmptyResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "safety filter on candidate",
			body: `{"candidates": [{"content": {"parts": []}, "finishReason": "SAFETY"}]}`,
		},
		{
			name: "prompt blocked",
			body: `{"candidates": [], "promptFeedback": {"blockReason": "SAFETY"}}`,
		},
		{
			name: "no candidates",
			body: `{"candidates": []}`,
		},
		{
			name: "candidate with empty text",
			body: `{"candidates": [{"content": {"parts": [{"text": ""}]}, "finishReason": "STOP"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewGeminiClient(testAIConfig(server.URL), zap.NewNop())

			if _, err := client.Complete(context.Background(), "prompt"); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestGeminiBuildURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{
			name:    "bare host gets default version",
			baseURL: "https://generativelanguage.googleapis.com",
			want:    "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent?key=test-key",
		},
		{
			name:    "trailing slash trimmed",
			baseURL: "https://generativelanguage.googleapis.com/",
			want:    "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent?key=test-key",
		},
		{
			name:    "versioned base kept as is",
			baseURL: "https://proxy.example.com/v1beta",
			want:    "https://proxy.example.com/v1beta/models/gemini-2.0-flash:generateContent?key=test-key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewGeminiClient(testAIConfig(tt.baseURL), zap.NewNop())
			if got := client.buildURL(); got != tt.want {
				t.Errorf("buildURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "key at end",
			url:  "https://x.test/v1beta/models/m:generateContent?key=secret",
			want: "https://x.test/v1beta/models/m:generateContent?key=***",
		},
		{
			name: "key followed by other params",
			url:  "https://x.test/path?key=secret&alt=json",
			want: "https://x.test/path?key=***&alt=json",
		},
		{
			name: "no key present",
			url:  "https://x.test/path?alt=json",
			want: "https://x.test/path?alt=json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskAPIKey(tt.url); got != tt.want {
				t.Errorf("maskAPIKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGeminiHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v1beta/models") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"models": []}`))
	}))
	defer server.Close()

	client := NewGeminiClient(testAIConfig(server.URL), zap.NewNop())
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}

	server.Close()
	if err := client.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() should fail when the API is unreachable")
	}
}
