package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nazmul162001/educonnect/internal/core"
	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	apperrors "github.com/nazmul162001/educonnect/internal/errors"
	"github.com/nazmul162001/educonnect/internal/ports"
)

var (
	// ErrNoSession means the federated session id is unknown or expired.
	ErrNoSession = errors.New("federated session not found")
	// ErrStoreUnavailable means the session or credential store could not be consulted.
	ErrStoreUnavailable = errors.New("identity store unavailable")
)

// FederatedResolverOptions groups dependencies for FederatedResolver.
type FederatedResolverOptions struct {
	Users    core.UserRepository
	Sessions ports.SessionStore
	Config   FederatedResolverConfig
}

// FederatedResolverConfig holds optional settings for FederatedResolver.
type FederatedResolverConfig struct {
	StoreTimeout time.Duration
	Logger       *slog.Logger
	Now          func() time.Time
}

// FederatedResolver turns a federated session into the stored Principal.
// Sessions bound at callback resolve by user id; display fields are refreshed
// only from a fresh provider assertion during sign-in.
type FederatedResolver struct {
	users    core.UserRepository
	sessions ports.SessionStore
	calls    storeCaller
	logger   *slog.Logger
	now      func() time.Time
}

// NewFederatedResolver constructs a FederatedResolver.
func NewFederatedResolver(opts FederatedResolverOptions) *FederatedResolver {
	if opts.Users == nil {
		panic("FederatedResolver requires a user repository")
	}
	if opts.Sessions == nil {
		panic("FederatedResolver requires a session store")
	}
	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Config.Now
	if now == nil {
		now = time.Now
	}
	return &FederatedResolver{
		users:    opts.Users,
		sessions: opts.Sessions,
		calls:    newStoreCaller(opts.Config.StoreTimeout),
		logger:   logger.With("component", "federated_resolver"),
		now:      now,
	}
}

// Assertion is what a provider asserted about the signed-in user.
// BoundUserID is the record the session was bound to at callback time, if any.
type Assertion struct {
	Email       string
	Name        string
	Image       string
	BoundUserID string
}

// Resolve loads the federated session and returns the current stored Principal.
// It returns ErrNoSession for a missing or expired session and wraps ErrStoreUnavailable
// for any store failure.
func (r *FederatedResolver) Resolve(ctx context.Context, sessionID string) (*domainauth.Principal, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}

	sess, err := read(ctx, r.calls, func(c context.Context) (domainauth.Session, error) {
		s, getErr := r.sessions.Get(c, sessionID)
		if getErr != nil && !errors.Is(getErr, ports.ErrSessionNotFound) {
			return s, apperrors.Unavailable(getErr)
		}
		return s, getErr
	})
	switch {
	case errors.Is(err, ports.ErrSessionNotFound):
		return nil, ErrNoSession
	case err != nil:
		return nil, fmt.Errorf("%w: load session: %w", ErrStoreUnavailable, err)
	}
	if sess.Expired(r.now()) {
		return nil, ErrNoSession
	}

	if sess.UserID != "" {
		return r.reread(ctx, sess.UserID)
	}

	// Unbound: resolve by email and leave stored display fields alone.
	return r.ensure(ctx, Assertion{
		Email: sess.Email,
		Name:  sess.Name,
		Image: sess.Image,
	}, false)
}

// Provision finds or creates the stored record for a fresh provider assertion,
// refreshes its display fields and returns the re-read record.
func (r *FederatedResolver) Provision(ctx context.Context, a Assertion) (*domainauth.Principal, error) {
	return r.ensure(ctx, a, true)
}

func (r *FederatedResolver) ensure(ctx context.Context, a Assertion, refresh bool) (*domainauth.Principal, error) {
	email := domainauth.NormalizeEmail(a.Email)
	if email == "" && a.BoundUserID == "" {
		return nil, ErrNoSession
	}

	existing, err := r.lookup(ctx, email, a.BoundUserID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return r.create(ctx, email, a)
	}

	if refresh && (a.Name != "" || a.Image != "") {
		err = writeErr(ctx, r.calls, func(c context.Context) error {
			return r.users.UpdateDisplay(c, existing.ID, a.Name, a.Image)
		})
		if err != nil && !apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("%w: refresh display fields: %w", ErrStoreUnavailable, err)
		}
	}

	return r.reread(ctx, existing.ID)
}

// lookup finds the record for an assertion. A bound user id is authoritative;
// the email is only consulted for unbound assertions.
func (r *FederatedResolver) lookup(ctx context.Context, email, boundUserID string) (*domainauth.Principal, error) {
	if boundUserID != "" {
		p, err := read(ctx, r.calls, func(c context.Context) (*domainauth.Principal, error) {
			return r.users.GetByID(c, boundUserID)
		})
		switch {
		case err == nil:
			return p, nil
		case apperrors.IsNotFound(err):
			return nil, ErrNoSession
		default:
			return nil, fmt.Errorf("%w: lookup by bound id: %w", ErrStoreUnavailable, err)
		}
	}

	p, err := read(ctx, r.calls, func(c context.Context) (*domainauth.Principal, error) {
		return r.users.GetByEmail(c, email)
	})
	switch {
	case err == nil:
		return p, nil
	case apperrors.IsNotFound(err):
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: lookup by email: %w", ErrStoreUnavailable, err)
	}
}

// create provisions a STUDENT record. A unique violation means a concurrent
// resolution won the race; the winner's record is re-read by email.
func (r *FederatedResolver) create(ctx context.Context, email string, a Assertion) (*domainauth.Principal, error) {
	created, err := write(ctx, r.calls, func(c context.Context) (*domainauth.Principal, error) {
		return r.users.Create(c, core.CreateUserParams{
			Name:  a.Name,
			Email: email,
			Role:  domainauth.RoleStudent,
			Image: a.Image,
		})
	})
	if err == nil {
		r.logger.InfoContext(ctx, "provisioned federated user", "user_id", created.ID)
		return r.reread(ctx, created.ID)
	}
	if !apperrors.IsConflict(err) {
		return nil, fmt.Errorf("%w: provision user: %w", ErrStoreUnavailable, err)
	}

	r.logger.DebugContext(ctx, "concurrent first sign-in, re-reading winner")
	p, err := read(ctx, r.calls, func(c context.Context) (*domainauth.Principal, error) {
		return r.users.GetByEmail(c, email)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: re-read after conflict: %w", ErrStoreUnavailable, err)
	}
	return p, nil
}

func (r *FederatedResolver) reread(ctx context.Context, id string) (*domainauth.Principal, error) {
	p, err := read(ctx, r.calls, func(c context.Context) (*domainauth.Principal, error) {
		return r.users.GetByID(c, id)
	})
	switch {
	case err == nil:
		return p, nil
	case apperrors.IsNotFound(err):
		return nil, ErrNoSession
	default:
		return nil, fmt.Errorf("%w: re-read user: %w", ErrStoreUnavailable, err)
	}
}
