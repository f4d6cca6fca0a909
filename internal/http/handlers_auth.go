package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	"github.com/nazmul162001/educonnect/internal/domain/model"
	"github.com/nazmul162001/educonnect/internal/ports"
	"github.com/nazmul162001/educonnect/internal/service"
)

// Success messages for the auth routes.
const (
	MsgRegistered      = "User created successfully"
	MsgLoggedIn        = "Login successful"
	MsgEmailVerified   = "Email verified"
	MsgPasswordChanged = "Password updated successfully"
	MsgSignedOut       = "Signed out"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*service.AuthResult, error)
	Login(ctx context.Context, req model.LoginRequest) (*service.AuthResult, error)
	Me(ctx context.Context, token string) (*domainauth.Principal, error)
	ResetPassword(ctx context.Context, req model.ResetPasswordRequest) (*service.ResetResult, error)
	BeginLogin(ctx context.Context, provider, redirectURL string) (*service.BeginLoginResult, error)
	CompleteLogin(
		ctx context.Context,
		provider string,
		input service.CompleteLoginInput,
	) (*service.CompleteLoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	TokenTTL() time.Duration
}

// ProfileUpdater applies profile edits for the acting principal.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, actingID string, req model.UpdateProfileRequest) (*domainauth.Principal, error)
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc        AuthServiceInterface
	Profiles   ProfileUpdater
	Resolver   PrincipalResolver
	Cookies    CookieConfig
	SignInPath string
	// BaseURL is the public origin used to build provider callback URLs.
	BaseURL string
	Logger  *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *AuthHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	writeAppError(w, r, appErrorParams{Err: err, Logger: h.logger()})
}

// Register creates a direct-login account.
// POST /auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.Svc.Register(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.Cookies.setAuthToken(w, r, res.Token, h.Svc.TokenTTL())
	WriteJSON(w, http.StatusOK, map[string]any{"message": MsgRegistered, "user": res.User})
}

// Login verifies email and password.
// POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.Svc.Login(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.Cookies.setAuthToken(w, r, res.Token, h.Svc.TokenTTL())
	WriteJSON(w, http.StatusOK, map[string]any{"message": MsgLoggedIn, "user": res.User})
}

// Me returns the stored record for the auth-token cookie. Federated sessions are not consulted.
// GET /auth/me.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.Svc.Me(r.Context(), cookieValue(r, CookieAuthToken))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"user": user})
}

// UpdateProfile edits the acting principal's profile. Must run behind RequirePrincipal.
// PUT /auth/update-profile.
func (h *AuthHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, Message: service.MsgTokenRequired})
		return
	}

	var req model.UpdateProfileRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.Profiles.UpdateProfile(r.Context(), p.ID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("X-Session-Update", "true")
	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}

// ResetPassword verifies an email (step 1) or changes the password (step 2).
// POST /auth/reset-password.
func (h *AuthHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ResetPasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.Svc.ResetPassword(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if !res.Changed {
		WriteJSON(w, http.StatusOK, map[string]any{"message": MsgEmailVerified, "email": res.Email})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"message": MsgPasswordChanged})
}

// Session reports the reconciled principal for the request's cookies.
// GET /auth/session.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	res, ok := h.resolve(w, r)
	if !ok {
		return
	}
	if !res.Authenticated() {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          res.Principal,
		"proof":         res.Proof,
	})
}

// Gate runs the page guard for ?path and reports its terminal state.
// GET /auth/gate?path=/profile.
func (h *AuthHandlers) Gate(w http.ResponseWriter, r *http.Request) {
	path := safeRedirectPath(r.URL.Query().Get("path"))
	gate := domainauth.NewGate(path, h.signInPath())

	res, ok := h.resolve(w, r)
	if !ok {
		return
	}

	body := map[string]any{}
	if res.Authenticated() {
		gate.Apply(domainauth.EventResolved)
		body["user"] = res.Principal
	} else {
		gate.Apply(domainauth.EventUnauthenticated)
	}
	body["state"] = gate.State()

	if gate.ShouldPromptSignIn() {
		q := url.Values{}
		q.Set("callbackUrl", path)
		body["signInUrl"] = h.signInPath() + "?" + q.Encode()
	}
	WriteJSON(w, http.StatusOK, body)
}

// resolve reconciles the request's proofs. It writes the 500 itself when the
// store could not be reached and reports false.
func (h *AuthHandlers) resolve(w http.ResponseWriter, r *http.Request) (domainauth.Resolution, bool) {
	attempt := proofFromRequest(r)
	if attempt.Empty() {
		return domainauth.Resolution{Failure: domainauth.FailureNone}, true
	}
	res := h.Resolver.Reconcile(r.Context(), attempt)
	if res.Failure == domainauth.FailureStoreUnavailable {
		h.logger().ErrorContext(r.Context(), "session resolution failed", "error", res.Cause)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Message: MsgInternal})
		return res, false
	}
	return res, true
}

func (h *AuthHandlers) signInPath() string {
	if h.SignInPath == "" {
		return "/signin"
	}
	return h.SignInPath
}

// Logout deletes the federated session and clears both proof cookies.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sid := cookieValue(r, CookieSession); sid != "" {
		if err := h.Svc.Logout(r.Context(), sid); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
	}

	h.Cookies.clear(w, r, CookieSession)
	h.Cookies.clear(w, r, CookieAuthToken)
	WriteJSON(w, http.StatusOK, map[string]any{"message": MsgSignedOut})
}

// OAuthLogin starts a federated flow with the named provider.
// GET /auth/oauth/{provider}/login?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))

	result, err := h.Svc.BeginLogin(r.Context(), provider, h.callbackURL(provider))
	if err != nil {
		if errors.Is(err, ports.ErrProviderNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, Message: "Unknown provider"})
			return
		}
		h.logger().ErrorContext(r.Context(), "begin login failed", "provider", provider, "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Message: MsgInternal})
		return
	}

	h.Cookies.setOAuth(w, r, oauthCookieParams{State: result.State, Nonce: result.Nonce, RedirectURI: redirectURI})
	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// OAuthCallback completes a federated flow and sets the session cookie.
// GET /auth/oauth/{provider}/callback?code=<code>&state=<state>.
func (h *AuthHandlers) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, Message: "Authorization code is required"})
		return
	}
	if state == "" || cookieValue(r, CookieOAuthState) != state {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, Message: "Invalid or missing state parameter"})
		return
	}

	result, err := h.Svc.CompleteLogin(r.Context(), provider, service.CompleteLoginInput{
		Code:  code,
		State: state,
		Nonce: cookieValue(r, CookieOAuthNonce),
	})
	if err != nil {
		if errors.Is(err, ports.ErrProviderNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, Message: "Unknown provider"})
			return
		}
		h.fail(w, r, err)
		return
	}

	h.Cookies.setSession(w, r, result.Session)
	h.Cookies.clear(w, r, CookieOAuthState)
	h.Cookies.clear(w, r, CookieOAuthNonce)
	http.Redirect(w, r, h.Cookies.postLoginRedirect(w, r), http.StatusFound)
}

func (h *AuthHandlers) callbackURL(provider string) string {
	return strings.TrimSuffix(h.BaseURL, "/") + "/auth/oauth/" + url.PathEscape(provider) + "/callback"
}
