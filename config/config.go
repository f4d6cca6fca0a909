package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: token signing and federated sign-in configuration
//   - database.go: Postgres, Redis and cache configuration
//   - http.go: HTTP server and cookie configuration
type AppConfig struct {
	// IsDev controls development mode behavior (insecure defaults, mock sign-in).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// DatabaseURL is a full Postgres connection string; it overrides the DB_* fields.
	DatabaseURL string `env:"DATABASE_URL"`

	// Authentication configuration
	Auth AuthConfig

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`
	Cache    CacheConfig

	Admissions AdmissionConfig

	// HTTP server configuration
	HTTP HTTPConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.detectDevMode()

	if c.DatabaseURL != "" {
		c.Postgres.URL = c.DatabaseURL
	}

	c.HTTP.Sanitize()
	c.Auth.Sanitize()
	c.Cache.Sanitize()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// CookieSecure reports whether cookies must always carry the Secure attribute.
// Outside dev mode cookies are secure regardless of the inbound scheme.
func (c *AppConfig) CookieSecure() bool {
	if c.HTTP.CookieSecure != nil {
		return *c.HTTP.CookieSecure
	}
	return !c.IsDev
}
