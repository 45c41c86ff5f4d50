package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lex-ai/internal/domain"
	"go.uber.org/zap"
)

func newTestGenerator(t *testing.T, client *stubAIClient) *Generator {
	t.Helper()
	return NewGenerator(client, mustPrompts(t), zap.NewNop())
}

func TestGenerateSuccess(t *testing.T) {
	client := &stubAIClient{response: "EMPLOYMENT AGREEMENT\n\n1. Parties..."}
	generator := newTestGenerator(t, client)

	result, err := generator.Generate(context.Background(), "employment", map[string]string{
		"employer_name": "Acme Corp",
		"employee_name": "Jane Roe",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.Status != "success" {
		t.Errorf("status = %q, want success", result.Status)
	}
	if result.DocumentType != "employment" {
		t.Errorf("document type = %q, want employment", result.DocumentType)
	}
	if result.Document != client.response {
		t.Errorf("document = %q, want verbatim completion", result.Document)
	}
	if result.Timestamp == "" {
		t.Error("timestamp is empty")
	}

	if !strings.Contains(client.lastPrompt, "Employer Name: Acme Corp") {
		t.Errorf("prompt missing field line: %q", client.lastPrompt)
	}
	if !strings.Contains(client.lastPrompt, "Indian labor laws") {
		t.Errorf("prompt missing employment instruction block: %q", client.lastPrompt)
	}
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name    string
		docType string
		fields  map[string]string
	}{
		{name: "missing document type", docType: "", fields: map[string]string{"a": "b"}},
		{name: "nil fields", docType: "nda", fields: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubAIClient{response: "unused"}
			generator := newTestGenerator(t, client)

			_, err := generator.Generate(context.Background(), tt.docType, tt.fields)
			if err == nil {
				t.Fatal("expected an error")
			}
			if domain.KindOf(err) != domain.KindInvalidInput {
				t.Errorf("kind = %v, want KindInvalidInput", domain.KindOf(err))
			}
			if !strings.Contains(err.Error(), "missing required data for document generation") {
				t.Errorf("error = %v", err)
			}
			if client.calls != 0 {
				t.Error("AI client must not be called for invalid input")
			}
		})
	}
}

func TestGenerateEmptyFieldsAllowed(t *testing.T) {
	client := &stubAIClient{response: "NDA text"}
	generator := newTestGenerator(t, client)

	result, err := generator.Generate(context.Background(), "nda", map[string]string{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Document != "NDA text" {
		t.Errorf("document = %q", result.Document)
	}
}

func TestGenerateUpstreamFailure(t *testing.T) {
	client := &stubAIClient{err: domain.Retryable(domain.KindUpstream, "rate_limit", domain.ErrRateLimited)}
	generator := newTestGenerator(t, client)

	_, err := generator.Generate(context.Background(), "lease", map[string]string{"rent": "1000"})
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Errorf("error = %v, want wrapped ErrRateLimited", err)
	}
}
