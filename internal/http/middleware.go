package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	"github.com/nazmul162001/educonnect/internal/service"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *respWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.ErrorContext(r.Context(), "panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Message: MsgInternal})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// PrincipalResolver reconciles the proofs carried by a request into a Principal.
type PrincipalResolver interface {
	Reconcile(ctx context.Context, attempt domainauth.ProofAttempt) domainauth.Resolution
}

// proofFromRequest builds the ProofAttempt once per request from its cookies.
func proofFromRequest(r *http.Request) domainauth.ProofAttempt {
	return domainauth.ProofAttempt{
		SessionID: cookieValue(r, CookieSession),
		Token:     cookieValue(r, CookieAuthToken),
	}
}

// Authenticator gates API routes on a reconciled Principal.
type Authenticator struct {
	Resolver PrincipalResolver
	Logger   *slog.Logger
}

func (a *Authenticator) logger() *slog.Logger {
	if a != nil && a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// RequirePrincipal rejects requests that do not resolve to a Principal.
// Allowed requests carry the Principal in their context; its id is the acting identity.
func (a *Authenticator) RequirePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempt := proofFromRequest(r)
		if attempt.Empty() {
			WriteError(w, ErrorParams{Code: http.StatusUnauthorized, Message: service.MsgTokenRequired})
			return
		}

		res := a.Resolver.Reconcile(r.Context(), attempt)
		if !res.Authenticated() {
			a.deny(w, r, res)
			return
		}

		ctx := SetPrincipalInContext(r.Context(), res.Principal, res.Proof)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole must run after RequirePrincipal. It answers 403 when the Principal
// holds none of the given roles.
func (a *Authenticator) RequireRole(roles ...domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				WriteError(w, ErrorParams{Code: http.StatusUnauthorized, Message: service.MsgTokenRequired})
				return
			}
			if !p.HasRole(roles...) {
				WriteError(w, ErrorParams{Code: http.StatusForbidden, Message: service.MsgInsufficientPermissions})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *Authenticator) deny(w http.ResponseWriter, r *http.Request, res domainauth.Resolution) {
	switch res.Failure {
	case domainauth.FailureStoreUnavailable:
		a.logger().ErrorContext(r.Context(), "principal resolution failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", res.Cause))
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Message: MsgInternal})
	case domainauth.FailureNone:
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, Message: service.MsgTokenRequired})
	default:
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, Message: service.MsgTokenInvalid})
	}
}
