package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lex-ai/internal/domain"
	"github.com/lex-ai/internal/service"
	"github.com/lex-ai/internal/session"
	"go.uber.org/zap"
)

// AuthHandler handles sign-in and sign-out requests.
type AuthHandler struct {
	auth     *service.Auth
	sessions *session.Manager
	logger   *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.Auth, sessions *session.Manager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		logger:   logger.Named("auth_handler"),
	}
}

// signInResponse is the success envelope for POST /api/auth/signin.
type signInResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	User    signInUser `json:"user"`
}

type signInUser struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// HandleSignIn processes POST /api/auth/signin requests.
func (h *AuthHandler) HandleSignIn(c *gin.Context) {
	var req domain.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid sign-in body", zap.Error(err))
		respondError(c, domain.E(domain.KindInvalidInput, "sign_in", errors.New("no user data provided")))
		return
	}

	meta := domain.RequestMeta{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}

	sess, err := h.auth.SignIn(c.Request.Context(), req, meta)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.sessions.Issue(c, sess); err != nil {
		h.logger.Error("could not issue session cookie", zap.Error(err))
		respondError(c, domain.E(domain.KindInternal, "sign_in", err))
		return
	}

	c.JSON(http.StatusOK, signInResponse{
		Status:  "success",
		Message: "User signed in successfully",
		User: signInUser{
			UID:         req.UID,
			Email:       req.Email,
			DisplayName: req.DisplayName,
		},
	})
}

// HandleSignOut processes POST /api/auth/signout requests. The session is
// cleared unconditionally; store failures never change the outcome.
func (h *AuthHandler) HandleSignOut(c *gin.Context) {
	sess := h.sessions.Current(c)

	h.auth.SignOut(c.Request.Context(), sess)
	h.sessions.Clear(c)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User signed out successfully",
	})
}
