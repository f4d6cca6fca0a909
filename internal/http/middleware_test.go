package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	"github.com/nazmul162001/educonnect/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver is a test double for PrincipalResolver.
type fakeResolver struct {
	reconcileFunc func(ctx context.Context, attempt domainauth.ProofAttempt) domainauth.Resolution
	calls         []domainauth.ProofAttempt
}

func (f *fakeResolver) Reconcile(ctx context.Context, attempt domainauth.ProofAttempt) domainauth.Resolution {
	f.calls = append(f.calls, attempt)
	if f.reconcileFunc != nil {
		return f.reconcileFunc(ctx, attempt)
	}
	return domainauth.Resolution{
		Principal: &domainauth.Principal{ID: "user-1", Email: "a@example.com", Role: domainauth.RoleStudent},
		Proof:     domainauth.ProofToken,
	}
}

func resolving(res domainauth.Resolution) *fakeResolver {
	return &fakeResolver{reconcileFunc: func(context.Context, domainauth.ProofAttempt) domainauth.Resolution {
		return res
	}}
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func okHandler(t *testing.T, seen **domainauth.Principal) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		require.True(t, ok)
		*seen = p
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequirePrincipal(t *testing.T) {
	tests := []struct {
		name       string
		cookies    []*http.Cookie
		resolution domainauth.Resolution
		wantStatus int
		wantError  string
	}{
		{
			name:       "no proof",
			wantStatus: http.StatusUnauthorized,
			wantError:  service.MsgTokenRequired,
		},
		{
			name:       "rejected token",
			cookies:    []*http.Cookie{{Name: CookieAuthToken, Value: "bad"}},
			resolution: domainauth.Resolution{Failure: domainauth.FailureInvalidProof},
			wantStatus: http.StatusUnauthorized,
			wantError:  service.MsgTokenInvalid,
		},
		{
			name:    "store unavailable",
			cookies: []*http.Cookie{{Name: CookieSession, Value: "sid"}},
			resolution: domainauth.Resolution{
				Failure: domainauth.FailureStoreUnavailable,
				Cause:   errors.New("redis: connection refused"),
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  MsgInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authn := &Authenticator{Resolver: resolving(tt.resolution)}
			called := false
			h := authn.RequirePrincipal(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

			req := httptest.NewRequest(http.MethodGet, "/admissions", nil)
			for _, c := range tt.cookies {
				req.AddCookie(c)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.False(t, called)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantError, errorMessage(t, rec))
			assert.NotContains(t, rec.Body.String(), "redis")
		})
	}
}

func TestRequirePrincipal_Allowed(t *testing.T) {
	resolver := &fakeResolver{}
	authn := &Authenticator{Resolver: resolver}

	var seen *domainauth.Principal
	req := httptest.NewRequest(http.MethodGet, "/admissions", nil)
	req.AddCookie(&http.Cookie{Name: CookieSession, Value: "sid-1"})
	req.AddCookie(&http.Cookie{Name: CookieAuthToken, Value: "tok-1"})
	rec := httptest.NewRecorder()
	authn.RequirePrincipal(okHandler(t, &seen)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "user-1", seen.ID)
	require.Len(t, resolver.calls, 1)
	assert.Equal(t, domainauth.ProofAttempt{SessionID: "sid-1", Token: "tok-1"}, resolver.calls[0])
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		principal  *domainauth.Principal
		wantStatus int
	}{
		{name: "no principal", wantStatus: http.StatusUnauthorized},
		{
			name:       "student",
			principal:  &domainauth.Principal{ID: "s", Role: domainauth.RoleStudent},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin",
			principal:  &domainauth.Principal{ID: "a", Role: domainauth.RoleAdmin},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "college admin",
			principal:  &domainauth.Principal{ID: "c", Role: domainauth.RoleCollegeAdmin},
			wantStatus: http.StatusNoContent,
		},
	}

	authn := &Authenticator{}
	mw := authn.RequireRole(domainauth.RoleAdmin, domainauth.RoleCollegeAdmin)
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/admissions/x/status", nil)
			req = req.WithContext(SetPrincipalInContext(req.Context(), tt.principal, domainauth.ProofToken))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusForbidden {
				assert.Equal(t, service.MsgInsufficientPermissions, errorMessage(t, rec))
			}
		})
	}
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/colleges", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, MsgInternal, errorMessage(t, rec))
	assert.Contains(t, buf.String(), "boom")
}

func TestLogging_RecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, buf.String(), "status=418")
	assert.Contains(t, buf.String(), "path=/healthz")
}
