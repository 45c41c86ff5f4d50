// Package domain contains the core domain models and types.
package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	// KindInvalidInput covers missing or malformed request fields,
	// disallowed file extensions and empty text. Maps to 400.
	KindInvalidInput Kind = iota

	// KindUpstream covers failures of the generative-text API. Maps to 500.
	KindUpstream

	// KindExtraction covers text extraction failures for uploads. Maps to 500.
	KindExtraction

	// KindStoreUnavailable covers identity store failures. Never surfaced
	// to callers; logged and bypassed.
	KindStoreUnavailable

	// KindInternal covers anything else that reaches the boundary. Maps to 500.
	KindInternal
)

// Sentinel errors for common failure cases.
var (
	// ErrEmptyText indicates the text to analyze is empty or whitespace only.
	ErrEmptyText = errors.New("no text provided for analysis")

	// ErrNoDocument indicates the multipart request has no document part.
	ErrNoDocument = errors.New("no document part in the request")

	// ErrNoFileSelected indicates the document part has an empty filename.
	ErrNoFileSelected = errors.New("no file selected")

	// ErrFileTooLarge indicates the request body exceeds the upload limit.
	ErrFileTooLarge = errors.New("uploaded file exceeds the maximum allowed size")

	// ErrAITimeout indicates the generative API did not respond in time.
	ErrAITimeout = errors.New("AI service timeout")

	// ErrAIUnavailable indicates the generative API is not available.
	ErrAIUnavailable = errors.New("AI service unavailable")

	// ErrEmptyAIResponse indicates the generative API returned no usable text.
	ErrEmptyAIResponse = errors.New("empty AI response")

	// ErrRateLimited indicates too many requests were made upstream.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidConfig indicates invalid configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStoreDegraded indicates the identity store is running in
	// client-side only mode or could not be reached at startup.
	ErrStoreDegraded = errors.New("identity store unavailable")
)

// Error wraps an error with a boundary classification and operation context.
type Error struct {
	// Kind drives the HTTP status mapping at the handler boundary.
	Kind Kind

	// Op is the operation that failed.
	Op string

	// Err is the underlying error.
	Err error

	// Retryable indicates if the operation can be retried.
	Retryable bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new classified error.
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Retryable creates a classified error that can be retried.
func Retryable(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err, Retryable: true}
}

// KindOf extracts the classification from an error chain.
// Unclassified errors are treated as internal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Retryable
	}
	return false
}
