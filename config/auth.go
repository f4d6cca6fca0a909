package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the federated sign-in mode for the application.
type AuthMode string

const (
	// AuthModeOAuth enables the configured OAuth/OIDC providers.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock enables the local dev provider (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

const (
	defaultTokenTTL   = 7 * 24 * time.Hour
	minTokenSecretLen = 32
)

// TokenConfig configures the self-issued signed token carried in the auth-token cookie.
type TokenConfig struct {
	Secret string        `env:"SECRET"`
	TTL    time.Duration `env:"TTL"    envDefault:"168h"`
	Issuer string        `env:"ISSUER" envDefault:"educonnect"`
}

// OIDCProviderConfig configures an OpenID Connect provider discovered from its issuer.
type OIDCProviderConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	DiscoveryURL string `env:"DISCOVERY_URL" envDefault:"https://accounts.google.com"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
}

// Enabled reports whether the provider has credentials.
func (p OIDCProviderConfig) Enabled() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

// OAuthProviderConfig configures a plain OAuth2 provider (GitHub).
type OAuthProviderConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	Scope        string `env:"SCOPE"         envDefault:"read:user user:email"`
}

// Enabled reports whether the provider has credentials.
func (p OAuthProviderConfig) Enabled() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

// OAuthConfig contains the federated provider client id/secret pairs.
type OAuthConfig struct {
	Google OIDCProviderConfig  `envPrefix:"GOOGLE_"`
	GitHub OAuthProviderConfig `envPrefix:"GITHUB_"`
}

// DevAuthConfig controls the mock sign-in identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	Email string `env:"EMAIL" envDefault:"dev@example.com"`
	Name  string `env:"NAME"  envDefault:"Dev Student"`
	Image string `env:"IMAGE"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which federated providers are registered.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// Token configures the signed auth-token.
	Token TokenConfig `envPrefix:"TOKEN_"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// SessionTTL bounds a federated session when the provider does not report an expiry.
	SessionTTL time.Duration `env:"FEDERATED_SESSION_TTL" envDefault:"720h"`

	// PasswordCost is the bcrypt cost for direct-login passwords.
	PasswordCost int `env:"PASSWORD_HASH_COST" envDefault:"10"`
}

// Sanitize applies defaults for zero or negative durations.
func (a *AuthConfig) Sanitize() {
	if a.Token.TTL <= 0 {
		a.Token.TTL = defaultTokenTTL
	}
	if a.SessionTTL <= 0 {
		a.SessionTTL = 30 * 24 * time.Hour
	}
}

// ErrTokenSecretTooShort is returned when the signing secret is missing or weak.
var ErrTokenSecretTooShort = fmt.Errorf("TOKEN_SECRET must be at least %d characters", minTokenSecretLen)

// Validate checks the auth configuration. Dev mode tolerates a missing secret.
func (a *AuthConfig) Validate(isDev bool) error {
	if !isDev && len(a.Token.Secret) < minTokenSecretLen {
		return ErrTokenSecretTooShort
	}
	if a.Mode == AuthModeMock && !isDev {
		return errors.New("AUTH_MODE=mock is only allowed in development mode")
	}
	return nil
}
