// Package session implements cookie-backed per-connection session state.
// The session payload is serialized to JSON and signed with HMAC-SHA256;
// a missing, malformed or tampered cookie decodes to the anonymous session.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lex-ai/internal/config"
	"github.com/lex-ai/internal/domain"
)

var errBadCookie = errors.New("invalid session cookie")

// Manager issues, reads and clears the signed session cookie.
type Manager struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
}

// NewManager creates a session manager from the session configuration.
func NewManager(cfg config.SessionConfig) *Manager {
	return &Manager{
		secret:     []byte(cfg.Secret),
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
	}
}

// Issue writes the session to the response as a signed cookie.
func (m *Manager) Issue(c *gin.Context, sess domain.UserSession) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	value := m.encode(payload)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, value, int(m.ttl.Seconds()), "/", "", false, true)
	return nil
}

// Current returns the session carried by the request. Any decode failure
// yields the anonymous session.
func (m *Manager) Current(c *gin.Context) domain.UserSession {
	value, err := c.Cookie(m.cookieName)
	if err != nil {
		return domain.UserSession{}
	}

	payload, err := m.decode(value)
	if err != nil {
		return domain.UserSession{}
	}

	var sess domain.UserSession
	if err := json.Unmarshal(payload, &sess); err != nil {
		return domain.UserSession{}
	}

	return sess
}

// Clear removes the session cookie, returning the connection to Anonymous.
func (m *Manager) Clear(c *gin.Context) {
	c.SetCookie(m.cookieName, "", -1, "/", "", false, true)
}

// encode produces base64url(payload).base64url(hmac-sha256(payload)).
func (m *Manager) encode(payload []byte) string {
	sig := m.sign(payload)
	return base64.RawURLEncoding.EncodeToString(payload) + "." + base64.RawURLEncoding.EncodeToString(sig)
}

func (m *Manager) decode(value string) ([]byte, error) {
	parts := strings.SplitN(value, ".", 2)
	if len(parts) != 2 {
		return nil, errBadCookie
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, errBadCookie
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, errBadCookie
	}

	if !hmac.Equal(sig, m.sign(payload)) {
		return nil, errBadCookie
	}

	return payload, nil
}

func (m *Manager) sign(payload []byte) []byte {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write(payload)
	return mac.Sum(nil)
}
