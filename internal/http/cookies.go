package httpx

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
)

// Cookie names shared by the handlers and the proof extraction in middleware.
const (
	CookieAuthToken         = "auth-token"
	CookieSession           = "session_id"
	CookieOAuthState        = "oauth_state"
	CookieOAuthNonce        = "oauth_nonce"
	CookiePostLoginRedirect = "post_login_redirect"
)

const oauthCookieTTL = 10 * time.Minute

// CookieConfig controls the attributes of every cookie the API sets.
type CookieConfig struct {
	Domain string
	// ForceSecure sets the Secure attribute regardless of the inbound scheme.
	ForceSecure bool
}

func (c CookieConfig) secure(r *http.Request) bool {
	return c.ForceSecure || r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

func (c CookieConfig) set(w http.ResponseWriter, r *http.Request, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.secure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

// clear expires a cookie, mirroring the attributes used when it was set.
func (c CookieConfig) clear(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.secure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// setAuthToken writes the signed token cookie.
func (c CookieConfig) setAuthToken(w http.ResponseWriter, r *http.Request, token string, ttl time.Duration) {
	c.set(w, r, CookieAuthToken, token, ttl)
}

// setSession writes the federated session cookie based on the session's expiry.
func (c CookieConfig) setSession(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	c.set(w, r, CookieSession, s.ID, time.Until(s.ExpiresAt))
}

// oauthCookieParams groups values needed to set OAuth cookies.
type oauthCookieParams struct {
	State       string
	Nonce       string
	RedirectURI string
}

// setOAuth stores OAuth state, nonce, and the post-login redirect.
func (c CookieConfig) setOAuth(w http.ResponseWriter, r *http.Request, p oauthCookieParams) {
	c.set(w, r, CookieOAuthState, p.State, oauthCookieTTL)
	c.set(w, r, CookieOAuthNonce, p.Nonce, oauthCookieTTL)
	c.set(w, r, CookiePostLoginRedirect, p.RedirectURI, oauthCookieTTL)
}

// postLoginRedirect returns the stored redirect path and clears the cookie.
func (c CookieConfig) postLoginRedirect(w http.ResponseWriter, r *http.Request) string {
	redirectURI := "/"
	if rc, err := r.Cookie(CookiePostLoginRedirect); err == nil {
		redirectURI = safeRedirectPath(rc.Value)
		c.clear(w, r, CookiePostLoginRedirect)
	}
	return redirectURI
}

// cookieValue returns the named cookie's value or "".
func cookieValue(r *http.Request, name string) string {
	if c, err := r.Cookie(name); err == nil {
		return c.Value
	}
	return ""
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	return candidate
}
