package service

import (
	"context"
	"errors"

	"github.com/lex-ai/internal/domain"
	"github.com/lex-ai/internal/store"
	"go.uber.org/zap"
)

// Auth orchestrates sign-in/sign-out bookkeeping. The identity store is a
// best-effort mirror: its failures are logged and never surfaced, so
// sign-in and sign-out only fail on malformed input.
type Auth struct {
	store  store.IdentityStore
	logger *zap.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(identityStore store.IdentityStore, logger *zap.Logger) *Auth {
	return &Auth{
		store:  identityStore,
		logger: logger.Named("auth"),
	}
}

// SignIn validates the request, builds the authenticated session and
// mirrors the user record into the identity store when it is available.
func (a *Auth) SignIn(ctx context.Context, req domain.SignInRequest, meta domain.RequestMeta) (domain.UserSession, error) {
	if req.UID == "" {
		return domain.UserSession{}, domain.E(domain.KindInvalidInput, "sign_in",
			errors.New("user ID is required"))
	}

	sess := domain.UserSession{
		UserID:      req.UID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		LoggedIn:    true,
		LoginTime:   domain.Timestamp(),
	}

	a.logger.Info("user signed in",
		zap.String("uid", req.UID),
		zap.String("email", req.Email),
	)

	a.mirrorSignIn(ctx, req, meta)

	return sess, nil
}

// SignOut updates the store best-effort. The caller clears the session
// unconditionally; this method never returns an error.
func (a *Auth) SignOut(ctx context.Context, sess domain.UserSession) {
	if sess.UserID == "" {
		return
	}

	a.logger.Info("user signed out", zap.String("uid", sess.UserID))

	if !a.store.Available() {
		return
	}

	rec, err := a.store.GetUser(ctx, sess.UserID)
	if err != nil || rec == nil {
		if err != nil {
			a.logger.Warn("could not read user record on sign-out", zap.Error(err))
		}
		return
	}

	now := domain.Timestamp()
	rec.LastLogout = now
	rec.LastSeen = now

	if err := a.store.UpdateUser(ctx, sess.UserID, rec); err != nil {
		a.logger.Warn("could not update user logout time", zap.Error(err))
	}
}

// mirrorSignIn upserts the user record: create with loginCount=1 and a
// history root for first-time users, otherwise update the activity fields
// and increment loginCount. The read-then-write increment is not atomic;
// a race between concurrent sign-ins for one uid can lose a count.
func (a *Auth) mirrorSignIn(ctx context.Context, req domain.SignInRequest, meta domain.RequestMeta) {
	if !a.store.Available() {
		a.logger.Debug("identity store unavailable, session-only tracking",
			zap.String("uid", req.UID),
		)
		return
	}

	now := domain.Timestamp()

	existing, err := a.store.GetUser(ctx, req.UID)
	if err != nil {
		a.logger.Warn("could not read user record", zap.Error(err))
		return
	}

	if existing == nil {
		rec := &domain.UserRecord{
			Email:       req.Email,
			DisplayName: req.DisplayName,
			PhotoURL:    req.PhotoURL,
			LastLogin:   now,
			LastSeen:    now,
			LoginCount:  1,
			UserAgent:   meta.UserAgent,
			IPAddress:   meta.IPAddress,
			CreatedAt:   now,
		}

		if err := a.store.CreateUser(ctx, req.UID, rec); err != nil {
			a.logger.Warn("could not create user record", zap.Error(err))
			return
		}

		if err := a.store.CreateHistoryRoot(ctx, req.UID); err != nil {
			a.logger.Warn("could not create history root", zap.Error(err))
		}

		a.logger.Info("created user record", zap.String("uid", req.UID))
		return
	}

	existing.Email = req.Email
	existing.DisplayName = req.DisplayName
	existing.PhotoURL = req.PhotoURL
	existing.LastLogin = now
	existing.LastSeen = now
	existing.LoginCount++
	existing.UserAgent = meta.UserAgent
	existing.IPAddress = meta.IPAddress

	if err := a.store.UpdateUser(ctx, req.UID, existing); err != nil {
		a.logger.Warn("could not update user record", zap.Error(err))
		return
	}

	a.logger.Info("updated user record", zap.String("uid", req.UID))
}
