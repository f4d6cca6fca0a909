package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/nazmul162001/educonnect/internal/core"
	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	"github.com/nazmul162001/educonnect/internal/domain/model"
	apperrors "github.com/nazmul162001/educonnect/internal/errors"
	"github.com/nazmul162001/educonnect/internal/ports"
)

// Client-facing messages for the auth flows.
const (
	MsgInvalidCredentials   = "Invalid email or password"
	MsgUserNotFound         = "User not found"
	MsgNoAccountForEmail    = "No account found with this email"
	MsgWrongCurrentPassword = "Current password is incorrect"
	MsgTokenRequired        = "Authorization token required"
	MsgTokenInvalid         = "Invalid or expired token"
	MsgSignInFailed         = "Sign-in could not be completed"
)

// DirectAuthOptions groups the direct email/password dependencies.
type DirectAuthOptions struct {
	Tokens ports.TokenCodec
	Hasher ports.PasswordHasher
}

// FederatedAuthOptions groups the OAuth dependencies.
type FederatedAuthOptions struct {
	Providers []ports.AuthProvider
	Sessions  ports.SessionStore
	Resolver  *FederatedResolver
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users     core.UserRepository
	Direct    DirectAuthOptions
	Federated FederatedAuthOptions
}

// AuthServiceConfig holds optional settings for AuthService.
type AuthServiceConfig struct {
	// SessionTTL bounds a federated session when the provider reports no expiry.
	SessionTTL   time.Duration
	StoreTimeout time.Duration
	Logger       *slog.Logger
	Now          func() time.Time
}

// AuthService orchestrates direct and federated sign-in, password reset and sign-out.
type AuthService struct {
	users      core.UserRepository
	tokens     ports.TokenCodec
	hasher     ports.PasswordHasher
	providers  map[string]ports.AuthProvider
	sessions   ports.SessionStore
	resolver   *FederatedResolver
	sessionTTL time.Duration
	calls      storeCaller
	logger     *slog.Logger
	now        func() time.Time
}

// NewAuthService constructs a new AuthService. Federated dependencies are optional;
// without them only the direct flows are available.
func NewAuthService(opts AuthServiceOptions, cfg AuthServiceConfig) *AuthService {
	if opts.Users == nil || opts.Direct.Tokens == nil || opts.Direct.Hasher == nil {
		panic("AuthService requires users, token codec and password hasher")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	sessionTTL := cfg.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 30 * 24 * time.Hour
	}

	providers := make(map[string]ports.AuthProvider, len(opts.Federated.Providers))
	for _, p := range opts.Federated.Providers {
		if p != nil {
			providers[p.Name()] = p
		}
	}

	return &AuthService{
		users:      opts.Users,
		tokens:     opts.Direct.Tokens,
		hasher:     opts.Direct.Hasher,
		providers:  providers,
		sessions:   opts.Federated.Sessions,
		resolver:   opts.Federated.Resolver,
		sessionTTL: sessionTTL,
		calls:      newStoreCaller(cfg.StoreTimeout),
		logger:     logger.With("component", "auth_service"),
		now:        now,
	}
}

// AuthResult is a signed-in user with the token to set as the auth-token cookie.
type AuthResult struct {
	User  *domainauth.Principal
	Token string
}

// Register creates a direct-login account and issues its token.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*AuthResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := write(ctx, s.calls, func(c context.Context) (*domainauth.Principal, error) {
		return s.users.Create(c, core.CreateUserParams{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         domainauth.RoleStudent,
		})
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			return nil, &apperrors.AppError{
				Code:    apperrors.ErrCodeConflict,
				Message: "User already exists",
				Field:   "email",
				Cause:   err,
			}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issue(user)
}

// Login verifies email and password and issues a token.
// Unknown email, federated-only account and wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	creds, err := read(ctx, s.calls, func(c context.Context) (*domainauth.Credentials, error) {
		return s.users.GetCredentialsByEmail(c, req.Email)
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthenticated(MsgInvalidCredentials)
		}
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	if !s.hasher.Compare(creds.PasswordHash, req.Password) {
		return nil, apperrors.Unauthenticated(MsgInvalidCredentials)
	}

	user, err := read(ctx, s.calls, func(c context.Context) (*domainauth.Principal, error) {
		return s.users.GetByID(c, creds.UserID)
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthenticated(MsgInvalidCredentials)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return s.issue(user)
}

// Me returns the stored record for a signed token. Only the token proof is accepted.
func (s *AuthService) Me(ctx context.Context, token string) (*domainauth.Principal, error) {
	if token == "" {
		return nil, apperrors.Unauthenticated(MsgTokenRequired)
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.DebugContext(ctx, "me: token rejected", "error", err)
		return nil, apperrors.Unauthenticated(MsgTokenInvalid)
	}

	user, err := read(ctx, s.calls, func(c context.Context) (*domainauth.Principal, error) {
		return s.users.GetByID(c, claims.UserID)
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound(MsgUserNotFound)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// ResetResult reports the outcome of a reset-password call.
type ResetResult struct {
	Email   string
	Changed bool
}

// ResetPassword runs either the verification step (email only) or the change step.
func (s *AuthService) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) (*ResetResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.IsVerifyStep() {
		user, err := read(ctx, s.calls, func(c context.Context) (*domainauth.Principal, error) {
			return s.users.GetByEmail(c, req.Email)
		})
		if err != nil {
			if apperrors.IsNotFound(err) {
				return nil, apperrors.NotFound(MsgNoAccountForEmail)
			}
			return nil, fmt.Errorf("lookup email: %w", err)
		}
		return &ResetResult{Email: user.Email}, nil
	}

	creds, err := read(ctx, s.calls, func(c context.Context) (*domainauth.Credentials, error) {
		return s.users.GetCredentialsByEmail(c, req.Email)
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound(MsgUserNotFound)
		}
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	if !s.hasher.Compare(creds.PasswordHash, req.OldPassword) {
		return nil, apperrors.Unauthenticated(MsgWrongCurrentPassword)
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	err = writeErr(ctx, s.calls, func(c context.Context) error {
		return s.users.UpdatePasswordHash(c, creds.UserID, hash)
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound(MsgUserNotFound)
		}
		return nil, fmt.Errorf("update password: %w", err)
	}

	s.logger.InfoContext(ctx, "password changed", "user_id", creds.UserID)
	return &ResetResult{Email: creds.Email, Changed: true}, nil
}

func (s *AuthService) issue(user *domainauth.Principal) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// TokenTTL is the lifetime of issued tokens, used for the cookie Max-Age.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

// Providers lists the registered federated provider names, sorted.
func (s *AuthService) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for name := range s.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates a federated flow and returns the provider auth URL with state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, provider, redirectURL string) (*BeginLoginResult, error) {
	p, ok := s.providers[provider]
	if !ok {
		return nil, ports.ErrProviderNotFound
	}
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := p.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}
	return &BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Session domainauth.Session
	User    *domainauth.Principal
}

// CompleteLogin exchanges the code for an identity, provisions the stored user and
// persists a federated session bound to it.
func (s *AuthService) CompleteLogin(
	ctx context.Context,
	provider string,
	input CompleteLoginInput,
) (*CompleteLoginResult, error) {
	p, ok := s.providers[provider]
	if !ok {
		return nil, ports.ErrProviderNotFound
	}
	if s.sessions == nil || s.resolver == nil {
		return nil, errors.New("federated sign-in is not configured")
	}
	if input.Code == "" {
		return nil, apperrors.Validation("authorization code is required")
	}
	if input.State == "" {
		return nil, apperrors.Validation("state parameter is required")
	}

	identity, err := p.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		// Rejected codes are client errors.
		return nil, apperrors.Wrap(fmt.Errorf("exchange authorization code: %w", err),
			apperrors.ErrCodeValidation, MsgSignInFailed)
	}

	user, err := s.resolver.Provision(ctx, Assertion{
		Email: identity.Email,
		Name:  identity.Name,
		Image: identity.Image,
	})
	if err != nil {
		return nil, fmt.Errorf("provision user: %w", err)
	}

	now := s.now()
	expiresAt := identity.ExpiresAt
	if expiresAt.IsZero() || expiresAt.After(now.Add(s.sessionTTL)) {
		expiresAt = now.Add(s.sessionTTL)
	}

	session := domainauth.Session{
		ID:        generateSessionID(),
		Provider:  p.Name(),
		Subject:   identity.Subject,
		Email:     user.Email,
		Name:      identity.Name,
		Image:     identity.Image,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}
	if saveErr := writeErr(ctx, s.calls, func(c context.Context) error {
		return s.sessions.Save(c, session)
	}); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	s.logger.InfoContext(ctx, "federated sign-in", "provider", p.Name(), "user_id", user.ID)
	return &CompleteLoginResult{Session: session, User: user}, nil
}

// Logout removes a federated session. The signed token is cleared by the caller.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" || s.sessions == nil {
		return nil
	}
	if err := writeErr(ctx, s.calls, func(c context.Context) error {
		return s.sessions.Delete(c, sessionID)
	}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// generateSessionID creates a random, URL-safe session id.
func generateSessionID() string {
	return uuid.NewString()
}
