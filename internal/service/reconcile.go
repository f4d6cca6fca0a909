package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nazmul162001/educonnect/internal/core"
	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	apperrors "github.com/nazmul162001/educonnect/internal/errors"
	"github.com/nazmul162001/educonnect/internal/ports"
)

// sessionResolver resolves a federated session id into a Principal.
type sessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*domainauth.Principal, error)
}

// ReconcilerOptions groups dependencies for Reconciler.
type ReconcilerOptions struct {
	Federated sessionResolver
	Tokens    ports.TokenCodec
	Users     core.UserRepository
}

// Reconciler produces the single authoritative Principal for a request.
// Federated sessions are consulted first; the signed token second.
type Reconciler struct {
	federated sessionResolver
	tokens    ports.TokenCodec
	users     core.UserRepository
	calls     storeCaller
	logger    *slog.Logger
}

// NewReconciler constructs a Reconciler. storeTimeout bounds the token-path user read.
func NewReconciler(opts ReconcilerOptions, storeTimeout time.Duration, logger *slog.Logger) *Reconciler {
	if opts.Federated == nil || opts.Tokens == nil || opts.Users == nil {
		panic("Reconciler requires federated resolver, token codec and user repository")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		federated: opts.Federated,
		tokens:    opts.Tokens,
		users:     opts.Users,
		calls:     newStoreCaller(storeTimeout),
		logger:    logger.With("component", "reconciler"),
	}
}

// Reconcile evaluates the proofs in fixed order and short-circuits on the first principal.
// It never returns an error; failures are described by Resolution.Failure and Cause.
func (r *Reconciler) Reconcile(ctx context.Context, attempt domainauth.ProofAttempt) domainauth.Resolution {
	if attempt.Empty() {
		return domainauth.Resolution{Failure: domainauth.FailureNone}
	}

	failure := domainauth.Resolution{Failure: domainauth.FailureInvalidProof}
	for _, kind := range attempt.Kinds() {
		var res domainauth.Resolution
		switch kind {
		case domainauth.ProofFederated:
			res = r.viaFederated(ctx, attempt.SessionID)
		case domainauth.ProofToken:
			res = r.viaToken(ctx, attempt.Token)
		default:
			continue
		}
		if res.Authenticated() {
			return res
		}
		if res.Failure == domainauth.FailureStoreUnavailable || failure.Cause == nil {
			failure = res
		}
	}
	return failure
}

func (r *Reconciler) viaFederated(ctx context.Context, sessionID string) domainauth.Resolution {
	p, err := r.federated.Resolve(ctx, sessionID)
	switch {
	case err == nil:
		return domainauth.Resolution{Principal: p, Proof: domainauth.ProofFederated}
	case errors.Is(err, ErrStoreUnavailable):
		r.logger.WarnContext(ctx, "federated resolution failed", "error", err)
		return domainauth.Resolution{Failure: domainauth.FailureStoreUnavailable, Cause: err}
	default:
		r.logger.DebugContext(ctx, "federated session rejected", "error", err)
		return domainauth.Resolution{Failure: domainauth.FailureInvalidProof, Cause: err}
	}
}

func (r *Reconciler) viaToken(ctx context.Context, token string) domainauth.Resolution {
	claims, err := r.tokens.Verify(token)
	if err != nil {
		r.logger.DebugContext(ctx, "signed token rejected", "error", err)
		return domainauth.Resolution{Failure: domainauth.FailureInvalidProof, Cause: err}
	}

	p, err := read(ctx, r.calls, func(c context.Context) (*domainauth.Principal, error) {
		return r.users.GetByID(c, claims.UserID)
	})
	switch {
	case err == nil:
		return domainauth.Resolution{Principal: p, Proof: domainauth.ProofToken}
	case apperrors.IsNotFound(err):
		r.logger.DebugContext(ctx, "signed token for unknown user", "user_id", claims.UserID)
		return domainauth.Resolution{Failure: domainauth.FailureInvalidProof, Cause: err}
	default:
		r.logger.WarnContext(ctx, "token user lookup failed", "error", err)
		return domainauth.Resolution{Failure: domainauth.FailureStoreUnavailable, Cause: err}
	}
}
