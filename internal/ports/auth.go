package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
)

// BeginInput carries inputs for initiating an auth flow.
type BeginInput struct {
	RedirectURL string
}

// AuthProvider initiates and completes an authentication flow against a federated IdP.
type AuthProvider interface {
	// Name returns the registry key used in /auth/oauth/{provider} routes.
	Name() string

	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// ErrSessionNotFound is returned by SessionStore.Get for a missing or expired session.
var ErrSessionNotFound = errors.New("session not found")

// ErrProviderNotFound is returned when no AuthProvider is registered under a name.
var ErrProviderNotFound = errors.New("auth provider not found")

// SessionStore persists and retrieves federated sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// TokenClaims is the identity carried by a verified signed token.
type TokenClaims struct {
	UserID    string
	Email     string
	Role      domainauth.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenCodec issues and verifies the self-issued signed token.
type TokenCodec interface {
	Issue(userID, email string, role domainauth.Role) (string, error)
	Verify(token string) (TokenClaims, error)
	TTL() time.Duration
}

// PasswordHasher hashes and checks direct-login passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
