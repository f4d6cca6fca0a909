package bootstrap

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/nazmul162001/educonnect/config"
	httpx "github.com/nazmul162001/educonnect/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// NewHTTPServer builds the API server. It does not start listening.
func NewHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	handler := httpx.NewRouter(routerServices(appCfg, cfg.Services, logger))

	// Guard against empty addr to avoid listening on Go default
	addr := appCfg.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

func routerServices(cfg *config.AppConfig, svc ServiceContainer, logger *slog.Logger) httpx.RouterServices {
	rs := httpx.RouterServices{
		Health: svc.Health,
		Cookies: httpx.CookieConfig{
			Domain:      cfg.HTTP.CookieDomain,
			ForceSecure: cfg.CookieSecure(),
		},
		CORSOrigins: cfg.HTTP.CORSOrigins,
		SignInPath:  cfg.HTTP.SignInPath,
		BaseURL:     cfg.HTTP.BaseURL,
		Logger:      logger,
	}
	// Leave interface fields nil rather than typed-nil pointers.
	if svc.Auth != nil {
		rs.Auth = svc.Auth
	}
	if svc.Profiles != nil {
		rs.Profiles = svc.Profiles
	}
	if svc.Reconciler != nil {
		rs.Resolver = svc.Reconciler
	}
	if svc.Admissions != nil {
		rs.Admissions = svc.Admissions
	}
	if svc.Colleges != nil {
		rs.Colleges = svc.Colleges
	}
	return rs
}
