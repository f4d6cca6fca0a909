package httpx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nazmul162001/educonnect/internal/core"
	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth       AuthServiceInterface
	Profiles   ProfileUpdater
	Resolver   PrincipalResolver
	Admissions AdmissionServiceInterface
	Colleges   CollegeServiceInterface
	// Health checks keyed by store name, e.g. "postgres", "redis".
	Health map[string]core.HealthChecker

	Cookies     CookieConfig
	CORSOrigins []string
	SignInPath  string
	BaseURL     string
	Logger      *slog.Logger
}

// DefaultCORSOptions returns the credentialed CORS policy for the given origins.
func DefaultCORSOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Content-Type", "Accept", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Session-Update"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

// NewRouter assembles the chi router with shared middleware and every API route mounted.
func NewRouter(s RouterServices) http.Handler {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(Logging(logger))
	r.Use(Recover(logger))
	r.Use(cors.Handler(DefaultCORSOptions(s.CORSOrigins)))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, Message: "Not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, ErrorParams{Code: http.StatusMethodNotAllowed, Message: "Method not allowed"})
	})

	authn := &Authenticator{Resolver: s.Resolver, Logger: logger}

	health := &HealthHandler{Checks: s.Health, Logger: logger}
	r.Method(http.MethodGet, "/healthz", health)
	r.Method(http.MethodHead, "/healthz", health)

	registerAuthRoutes(r, &AuthHandlers{
		Svc:        s.Auth,
		Profiles:   s.Profiles,
		Resolver:   s.Resolver,
		Cookies:    s.Cookies,
		SignInPath: s.SignInPath,
		BaseURL:    s.BaseURL,
		Logger:     logger,
	}, authn)
	registerAdmissionRoutes(r, &AdmissionHandlers{Svc: s.Admissions, Logger: logger}, authn)
	registerCollegeRoutes(r, &CollegeHandlers{Svc: s.Colleges, Logger: logger})

	return r
}

func registerAuthRoutes(r chi.Router, h *AuthHandlers, authn *Authenticator) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Get("/me", h.Me)
		r.Post("/reset-password", h.ResetPassword)
		r.Get("/session", h.Session)
		r.Get("/gate", h.Gate)
		r.Post("/logout", h.Logout)
		r.With(authn.RequirePrincipal).Put("/update-profile", h.UpdateProfile)

		r.Get("/oauth/{provider}/login", h.OAuthLogin)
		r.Get("/oauth/{provider}/callback", h.OAuthCallback)
	})
}

func registerAdmissionRoutes(r chi.Router, h *AdmissionHandlers, authn *Authenticator) {
	r.Route("/admissions", func(r chi.Router) {
		r.Use(authn.RequirePrincipal)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/", h.Update)
		r.With(authn.RequireRole(domainauth.RoleAdmin, domainauth.RoleCollegeAdmin)).
			Patch("/{id}/status", h.UpdateStatus)
	})
}

func registerCollegeRoutes(r chi.Router, h *CollegeHandlers) {
	r.Get("/colleges", h.List)
	r.Get("/colleges/{id}", h.Get)
}
