// Package github provides the GitHub OAuth2 sign-in adapter.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nazmul162001/educonnect/internal/data/cryptoutil"
	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	"github.com/nazmul162001/educonnect/internal/ports"
	"golang.org/x/oauth2"
	githubendpoint "golang.org/x/oauth2/github"
)

const defaultAPIBaseURL = "https://api.github.com"

// Config holds configuration for the GitHub provider.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scope        string
	// SessionDuration bounds the federated session; GitHub tokens carry no expiry. Defaults to 24h.
	SessionDuration time.Duration
	// Endpoint and APIBaseURL override GitHub's URLs (tests, GitHub Enterprise).
	Endpoint   *oauth2.Endpoint
	APIBaseURL string
	HTTPClient *http.Client
}

// Provider implements ports.AuthProvider against GitHub's OAuth apps.
type Provider struct {
	config     *oauth2.Config
	apiBase    string
	httpClient *http.Client
	sessionTTL time.Duration
}

var _ ports.AuthProvider = (*Provider)(nil)

// NewProvider validates cfg and constructs a Provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if cfg.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	endpoint := githubendpoint.Endpoint
	if cfg.Endpoint != nil {
		endpoint = *cfg.Endpoint
	}
	apiBase := strings.TrimSuffix(cfg.APIBaseURL, "/")
	if apiBase == "" {
		apiBase = defaultAPIBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	ttl := cfg.SessionDuration
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	scopes := strings.Fields(cfg.Scope)
	if len(scopes) == 0 {
		scopes = []string{"read:user", "user:email"}
	}

	return &Provider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     endpoint,
		},
		apiBase:    apiBase,
		httpClient: httpClient,
		sessionTTL: ttl,
	}, nil
}

// Name returns the registry key.
func (p *Provider) Name() string { return "github" }

// Begin returns the GitHub authorize URL. GitHub has no nonce; one is still minted
// so the callback handler treats every provider the same.
func (p *Provider) Begin(_ context.Context, in ports.BeginInput) (string, string, string, error) {
	if in.RedirectURL == "" {
		return "", "", "", errors.New("redirect URL is required")
	}
	state, err := cryptoutil.RandomToken(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := cryptoutil.RandomToken(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}
	return p.config.AuthCodeURL(state, oauth2.SetAuthURLParam("allow_signup", "true")), state, nonce, nil
}

// Exchange trades the code for an access token and reads the user's profile and primary email.
func (p *Provider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if in.Code == "" {
		return domainauth.Identity{}, errors.New("authorization code is required")
	}
	if in.State == "" {
		return domainauth.Identity{}, errors.New("state is required")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	tok, err := p.config.Exchange(ctx, in.Code)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("exchange code for token: %w", err)
	}
	client := p.config.Client(ctx, tok)

	var u ghUser
	if getErr := p.getJSON(ctx, client, "/user", &u); getErr != nil {
		return domainauth.Identity{}, getErr
	}
	email := u.Email
	if email == "" {
		var emails []ghEmail
		if getErr := p.getJSON(ctx, client, "/user/emails", &emails); getErr != nil {
			return domainauth.Identity{}, getErr
		}
		email = primaryVerifiedEmail(emails)
	}
	if email == "" {
		return domainauth.Identity{}, errors.New("github account has no verified primary email")
	}

	name := u.Name
	if name == "" {
		name = u.Login
	}
	return domainauth.Identity{
		Provider:  p.Name(),
		Subject:   strconv.FormatInt(u.ID, 10),
		Email:     domainauth.NormalizeEmail(email),
		Name:      name,
		Image:     u.AvatarURL,
		ExpiresAt: time.Now().Add(p.sessionTTL),
	}, nil
}

type ghUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type ghEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func primaryVerifiedEmail(emails []ghEmail) string {
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email
		}
	}
	return ""
}

func (p *Provider) getJSON(ctx context.Context, client *http.Client, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBase+path, nil)
	if err != nil {
		return fmt.Errorf("build github request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("github %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("github %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if decErr := json.NewDecoder(resp.Body).Decode(out); decErr != nil {
		return fmt.Errorf("decode github %s: %w", path, decErr)
	}
	return nil
}
