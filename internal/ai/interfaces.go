// Package ai provides the generative-text client interface and implementations.
package ai

import "context"

// Client defines the interface for generative-text service interactions.
// This interface allows for easy mocking and swapping of providers.
type Client interface {
	// Complete sends a prompt to the service and returns the generated text.
	// The context should carry timeout and cancellation signals.
	Complete(ctx context.Context, prompt string) (string, error)

	// HealthCheck verifies the service is reachable.
	HealthCheck(ctx context.Context) error
}
