package config

import (
	"strings"
	"time"
)

const (
	defaultStoreTimeout = 3 * time.Second
	maxStoreTimeout     = 30 * time.Second
)

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the public base URL of the application (e.g., "https://app.example.com").
	// OAuth callback URLs are derived from it.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CookieDomain is the domain for auth cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// CookieSecure forces the Secure cookie attribute on or off. Unset means "secure outside dev".
	CookieSecure *bool `env:"APP_COOKIE_SECURE"`

	// CORSOrigins lists browser origins allowed to call the API with credentials.
	CORSOrigins []string `env:"HTTP_CORS_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`

	// SignInPath is the client route that renders the sign-in form.
	SignInPath string `env:"HTTP_SIGNIN_PATH" envDefault:"/signin"`

	// StoreTimeout bounds every Postgres/Redis call made while serving a request.
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"3s"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.BaseURL = strings.TrimSuffix(strings.TrimSpace(h.BaseURL), "/")

	if h.StoreTimeout <= 0 {
		h.StoreTimeout = defaultStoreTimeout
	}
	if h.StoreTimeout > maxStoreTimeout {
		h.StoreTimeout = maxStoreTimeout
	}

	if !strings.HasPrefix(h.SignInPath, "/") {
		h.SignInPath = "/" + h.SignInPath
	}

	origins := h.CORSOrigins[:0]
	for _, o := range h.CORSOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	h.CORSOrigins = origins
}
