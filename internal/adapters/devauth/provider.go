package devauth

// Package devauth provides a config-driven AuthProvider for local development.

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/nazmul162001/educonnect/internal/data/cryptoutil"
	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	"github.com/nazmul162001/educonnect/internal/ports"
)

// ProviderName is the registry key for the dev provider.
const ProviderName = "mock"

// Config controls the dev auth provider behavior.
type Config struct {
	Email           string
	Name            string
	Image           string
	SessionDuration time.Duration // default 8h when zero
	// Now overrides the clock; defaults to time.Now.
	Now func() time.Time
}

// Provider implements ports.AuthProvider for local development.
// Begin redirects straight to our own callback with locally generated state;
// Exchange ignores the code and returns the configured identity.
type Provider struct {
	email, name, image string
	sessionDuration    time.Duration
	now                func() time.Time
}

var _ ports.AuthProvider = (*Provider)(nil)

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	email := domainauth.NormalizeEmail(cfg.Email)
	if email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	dur := cfg.SessionDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	name := cfg.Name
	if name == "" {
		name = email
	}
	return &Provider{email: email, name: name, image: cfg.Image, sessionDuration: dur, now: now}, nil
}

// Name returns the registry key.
func (p *Provider) Name() string { return ProviderName }

// Begin returns the local callback URL with freshly generated state and nonce.
func (p *Provider) Begin(_ context.Context, _ ports.BeginInput) (string, string, string, error) {
	state, err := cryptoutil.RandomToken(18)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := cryptoutil.RandomToken(18)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}
	q := url.Values{"code": {"dev"}, "state": {state}}
	return "/auth/oauth/" + ProviderName + "/callback?" + q.Encode(), state, nonce, nil
}

// Exchange returns the configured identity; state and nonce are validated by the handler.
func (p *Provider) Exchange(_ context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if in.Code == "" {
		return domainauth.Identity{}, errors.New("authorization code is required")
	}
	return domainauth.Identity{
		Provider:  ProviderName,
		Subject:   "dev|" + p.email,
		Email:     p.email,
		Name:      p.name,
		Image:     p.image,
		ExpiresAt: p.now().Add(p.sessionDuration),
	}, nil
}
