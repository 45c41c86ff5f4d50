// Package store provides the external identity/session store integration.
// The store is an optional collaborator: when it is not configured or not
// reachable at startup the service runs in degraded, session-only mode and
// every store call is skipped.
package store

import (
	"context"

	"github.com/lex-ai/internal/domain"
)

// IdentityStore persists user sign-in records. All methods may return an
// error; callers must treat any failure as non-fatal.
type IdentityStore interface {
	// Available reports whether the store can be used. Decided once at
	// construction; false means degraded mode.
	Available() bool

	// GetUser fetches the record for uid. Returns (nil, nil) when the
	// user does not exist.
	GetUser(ctx context.Context, uid string) (*domain.UserRecord, error)

	// CreateUser writes a new user record.
	CreateUser(ctx context.Context, uid string, rec *domain.UserRecord) error

	// UpdateUser overwrites the record for an existing user.
	UpdateUser(ctx context.Context, uid string, rec *domain.UserRecord) error

	// CreateHistoryRoot initializes the per-user history sub-record.
	CreateHistoryRoot(ctx context.Context, uid string) error

	// Close releases the underlying connection.
	Close() error
}

// Disabled is the degraded-mode store used when no store is configured.
type Disabled struct{}

// NewDisabled creates a store that reports unavailable for everything.
func NewDisabled() *Disabled { return &Disabled{} }

func (*Disabled) Available() bool { return false }

func (*Disabled) GetUser(context.Context, string) (*domain.UserRecord, error) {
	return nil, domain.ErrStoreDegraded
}

func (*Disabled) CreateUser(context.Context, string, *domain.UserRecord) error {
	return domain.ErrStoreDegraded
}

func (*Disabled) UpdateUser(context.Context, string, *domain.UserRecord) error {
	return domain.ErrStoreDegraded
}

func (*Disabled) CreateHistoryRoot(context.Context, string) error {
	return domain.ErrStoreDegraded
}

func (*Disabled) Close() error { return nil }
