package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nazmul162001/educonnect/config"
	"github.com/nazmul162001/educonnect/internal/adapters/devauth"
	"github.com/nazmul162001/educonnect/internal/adapters/github"
	"github.com/nazmul162001/educonnect/internal/adapters/oidc"
	"github.com/nazmul162001/educonnect/internal/adapters/token"
	"github.com/nazmul162001/educonnect/internal/ports"
)

// devTokenSecret signs tokens in dev mode when TOKEN_SECRET is unset.
const devTokenSecret = "educonnect-dev-only-token-secret-do-not-use"

// AuthConfig contains configuration for the federated providers and token codec.
type AuthConfig struct {
	Auth    config.AuthConfig
	IsDev   bool
	BaseURL string
	Logger  *slog.Logger
}

func (c AuthConfig) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// callbackURL is the provider redirect target served by the API.
func (c AuthConfig) callbackURL(provider string) string {
	return c.BaseURL + "/auth/oauth/" + provider + "/callback"
}

// BuildTokenCodec creates the signed-token codec.
func BuildTokenCodec(cfg AuthConfig) (*token.Codec, error) {
	secret := cfg.Auth.Token.Secret
	if secret == "" && cfg.IsDev {
		cfg.logger().Warn("TOKEN_SECRET not set; using the development signing secret")
		secret = devTokenSecret
	}
	codec, err := token.NewCodec(token.Options{
		Secret: secret,
		Issuer: cfg.Auth.Token.Issuer,
		TTL:    cfg.Auth.Token.TTL,
	})
	if err != nil {
		return nil, fmt.Errorf("build token codec: %w", err)
	}
	return codec, nil
}

// BuildProviders creates the federated providers for the configured auth mode.
// Providers that are not configured or fail to initialize are skipped with a warning;
// direct email/password sign-in works without any.
func BuildProviders(ctx context.Context, cfg AuthConfig) []ports.AuthProvider {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		return buildDevProviders(cfg)
	case config.AuthModeOAuth:
		return buildOAuthProviders(ctx, cfg)
	default:
		return nil
	}
}

func buildDevProviders(cfg AuthConfig) []ports.AuthProvider {
	prov, err := devauth.NewProvider(devauth.Config{
		Email: cfg.Auth.DevAuth.Email,
		Name:  cfg.Auth.DevAuth.Name,
		Image: cfg.Auth.DevAuth.Image,

		SessionDuration: cfg.Auth.SessionTTL,
	})
	if err != nil {
		cfg.logger().Warn("failed to create dev auth provider, federated sign-in disabled", "error", err)
		return nil
	}
	return []ports.AuthProvider{prov}
}

func buildOAuthProviders(ctx context.Context, cfg AuthConfig) []ports.AuthProvider {
	var providers []ports.AuthProvider
	oauth := cfg.Auth.OAuth

	if oauth.Google.Enabled() {
		prov, err := oidc.NewProvider(ctx, oidc.ProviderConfig{
			Name:         "google",
			ClientID:     oauth.Google.ClientID,
			ClientSecret: oauth.Google.ClientSecret,
			RedirectURL:  cfg.callbackURL("google"),
			Scope:        oauth.Google.Scope,
			DiscoveryURL: oauth.Google.DiscoveryURL,
		})
		if err != nil {
			cfg.logger().Warn("failed to create google provider, skipping", "error", err)
		} else {
			providers = append(providers, prov)
		}
	}

	if oauth.GitHub.Enabled() {
		prov, err := github.NewProvider(github.Config{
			ClientID:        oauth.GitHub.ClientID,
			ClientSecret:    oauth.GitHub.ClientSecret,
			RedirectURL:     cfg.callbackURL("github"),
			Scope:           oauth.GitHub.Scope,
			SessionDuration: cfg.Auth.SessionTTL,
		})
		if err != nil {
			cfg.logger().Warn("failed to create github provider, skipping", "error", err)
		} else {
			providers = append(providers, prov)
		}
	}

	if len(providers) == 0 {
		cfg.logger().Info("no federated providers configured; direct sign-in only")
	}
	return providers
}
