// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lex-ai/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	// Server configuration
	Server ServerConfig

	// AI service configuration
	AI AIConfig

	// Upload handling configuration
	Upload UploadConfig

	// Identity store configuration
	Store StoreConfig

	// Session configuration
	Session SessionConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Port is the HTTP port to listen on.
	Port string

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
}

// AIConfig contains generative-text service settings.
type AIConfig struct {
	// APIKey is the authentication key for the Gemini API.
	APIKey string

	// BaseURL is the base URL for the Gemini API.
	BaseURL string

	// Model is the model to use.
	Model string

	// Timeout is the maximum time to wait for responses.
	Timeout time.Duration

	// MaxTokens is the maximum tokens for the generated response.
	MaxTokens int

	// MaxRetries is the number of retries on transient failures.
	MaxRetries int

	// MockMode enables mock responses for testing without API calls.
	MockMode bool
}

// UploadConfig contains document upload settings.
type UploadConfig struct {
	// Dir is the directory where uploaded documents are written.
	Dir string

	// MaxSize is the maximum allowed upload size in bytes.
	MaxSize int64

	// AllowedExtensions is the allow-set of file extensions (without dot).
	AllowedExtensions []string
}

// StoreConfig contains identity store settings. An empty Addr disables
// the store and the service runs in session-only mode.
type StoreConfig struct {
	Addr     string
	Password string
	DB       int
}

// SessionConfig contains session cookie settings.
type SessionConfig struct {
	// Secret signs the session cookie.
	Secret string

	// CookieName is the name of the session cookie.
	CookieName string

	// TTL is the session cookie lifetime.
	TTL time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnvOrDefault("PORT", "5000"),
			ReadTimeout:  getDurationOrDefault("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationOrDefault("SERVER_WRITE_TIMEOUT", 120*time.Second),
		},
		AI: AIConfig{
			APIKey:     os.Getenv("GEMINI_API_KEY"),
			BaseURL:    getEnvOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			Model:      getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout:    getDurationOrDefault("GEMINI_TIMEOUT", 60*time.Second),
			MaxTokens:  getIntOrDefault("GEMINI_MAX_TOKENS", 4096),
			MaxRetries: getIntOrDefault("GEMINI_MAX_RETRIES", 2),
			MockMode:   getBoolOrDefault("GEMINI_MOCK_MODE", false),
		},
		Upload: UploadConfig{
			Dir:               getEnvOrDefault("UPLOAD_DIR", "uploads"),
			MaxSize:           getInt64OrDefault("MAX_UPLOAD_SIZE", 16<<20),
			AllowedExtensions: getListOrDefault("ALLOWED_EXTENSIONS", []string{"txt", "pdf", "doc", "docx", "rtf"}),
		},
		Store: StoreConfig{
			Addr:     os.Getenv("IDENTITY_STORE_ADDR"),
			Password: os.Getenv("IDENTITY_STORE_PASSWORD"),
			DB:       getIntOrDefault("IDENTITY_STORE_DB", 0),
		},
		Session: SessionConfig{
			Secret:     getEnvOrDefault("SESSION_SECRET", "lex-ai-secure-session-key-2025"),
			CookieName: getEnvOrDefault("SESSION_COOKIE_NAME", "lexai_session"),
			TTL:        getDurationOrDefault("SESSION_TTL", 24*time.Hour),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	// API key is required unless in mock mode
	if !c.AI.MockMode && c.AI.APIKey == "" {
		return fmt.Errorf("%w: GEMINI_API_KEY is required when not in mock mode", domain.ErrInvalidConfig)
	}

	if c.AI.Timeout < time.Second {
		return fmt.Errorf("%w: GEMINI_TIMEOUT must be at least 1 second", domain.ErrInvalidConfig)
	}

	if c.Upload.MaxSize < 1024 {
		return fmt.Errorf("%w: MAX_UPLOAD_SIZE must be at least 1024 bytes", domain.ErrInvalidConfig)
	}

	if len(c.Upload.AllowedExtensions) == 0 {
		return fmt.Errorf("%w: ALLOWED_EXTENSIONS must not be empty", domain.ErrInvalidConfig)
	}

	if c.Session.Secret == "" {
		return fmt.Errorf("%w: SESSION_SECRET must not be empty", domain.ErrInvalidConfig)
	}

	return nil
}

// StoreEnabled reports whether an identity store is configured at all.
func (c *Config) StoreEnabled() bool {
	return c.Store.Addr != ""
}

// Helper functions for reading environment variables

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getInt64OrDefault(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

func getBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getListOrDefault(key string, defaultVal []string) []string {
	if val := os.Getenv(key); val != "" {
		parts := strings.Split(val, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(strings.ToLower(p)); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultVal
}

func getDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		// Try parsing as seconds first (e.g. "15")
		if secs, err := strconv.Atoi(val); err == nil {
			return time.Duration(secs) * time.Second
		}
		// Try parsing as duration string (e.g. "15s", "1m")
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
