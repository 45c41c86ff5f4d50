package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorWrapping(t *testing.T) {
	err := E(KindInvalidInput, "analyze_text", ErrEmptyText)

	if got := err.Error(); got != "analyze_text: no text provided for analysis" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrEmptyText) {
		t.Error("classified error should unwrap to its sentinel")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"direct classified error", E(KindUpstream, "op", ErrAIUnavailable), KindUpstream},
		{"wrapped classified error", fmt.Errorf("context: %w", E(KindExtraction, "op", errors.New("x"))), KindExtraction},
		{"plain error defaults to internal", errors.New("plain"), KindInternal},
		{"bare sentinel defaults to internal", ErrEmptyText, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(Retryable(KindUpstream, "rate_limit", ErrRateLimited)) {
		t.Error("Retryable() errors must report retryable")
	}
	if IsRetryable(E(KindUpstream, "auth_error", errors.New("bad key"))) {
		t.Error("E() errors must not report retryable")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("unclassified errors must not report retryable")
	}
	if !IsRetryable(fmt.Errorf("wrap: %w", Retryable(KindUpstream, "op", ErrAIUnavailable))) {
		t.Error("retryability must survive wrapping")
	}
}
