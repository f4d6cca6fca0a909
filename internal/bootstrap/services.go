package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nazmul162001/educonnect/config"
	redisadapter "github.com/nazmul162001/educonnect/internal/adapters/redis"
	"github.com/nazmul162001/educonnect/internal/core"
	"github.com/nazmul162001/educonnect/internal/data"
	"github.com/nazmul162001/educonnect/internal/data/cryptoutil"
	"github.com/nazmul162001/educonnect/internal/data/pgxutil"
	"github.com/nazmul162001/educonnect/internal/service"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth       *service.AuthService
	Profiles   *service.ProfileService
	Reconciler *service.Reconciler
	Admissions *service.AdmissionService
	Colleges   *service.CollegeService
	// Health checks keyed by store name.
	Health map[string]core.HealthChecker
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Users      *data.UserRepo
	Admissions *data.AdmissionRepo
	Colleges   core.CollegeRepository
	Cache      *data.RedisCacheRepo
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB, client redis.UniversalClient, cfg config.CacheConfig, logger *slog.Logger) serviceRepositories {
	repos := serviceRepositories{
		Users:      data.NewUserRepo(db),
		Admissions: data.NewAdmissionRepo(db),
		Cache:      data.NewRedisCacheRepo(client),
	}
	repos.Colleges = newCollegeReader(db, repos.Cache, cfg, logger)
	return repos
}

// newCollegeReader wraps the college repository in the Redis read-through cache
// unless CACHE_COLLEGE_TTL is zero.
func newCollegeReader(
	db *sql.DB,
	cache *data.RedisCacheRepo,
	cfg config.CacheConfig,
	logger *slog.Logger,
) core.CollegeRepository {
	colleges := data.NewCollegeRepo(db)
	if cfg.CollegeTTL == 0 {
		return colleges
	}
	return core.NewCollegeCache(core.CollegeCacheOptions{
		Cache:    cache,
		Colleges: colleges,
		Config:   core.CollegeCacheConfig{TTL: cfg.CollegeTTL},
		Logger:   logger,
	})
}

// postgresPinger adapts the database handle to core.HealthChecker.
type postgresPinger struct{ db *sql.DB }

func (p postgresPinger) Ping(ctx context.Context) error { return pgxutil.Ping(ctx, p.db) }

// NewServices wires repositories, auth adapters and services.
func NewServices(ctx context.Context, deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil || deps.DB == nil || deps.RedisClient == nil {
		return ServiceContainer{}, errors.New("config, database and redis are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config
	timeout := cfg.HTTP.StoreTimeout

	repos := buildRepositories(deps.DB, deps.RedisClient, cfg.Cache, logger)

	authCfg := AuthConfig{Auth: cfg.Auth, IsDev: cfg.IsDev, BaseURL: cfg.HTTP.BaseURL, Logger: logger}
	tokens, err := BuildTokenCodec(authCfg)
	if err != nil {
		return ServiceContainer{}, err
	}
	hasher := cryptoutil.NewBcryptHasher(cfg.Auth.PasswordCost)
	sessions := redisadapter.NewSessionStore(deps.RedisClient)

	federated := service.NewFederatedResolver(service.FederatedResolverOptions{
		Users:    repos.Users,
		Sessions: sessions,
		Config:   service.FederatedResolverConfig{StoreTimeout: timeout, Logger: logger},
	})

	auth := service.NewAuthService(service.AuthServiceOptions{
		Users:  repos.Users,
		Direct: service.DirectAuthOptions{Tokens: tokens, Hasher: hasher},
		Federated: service.FederatedAuthOptions{
			Providers: BuildProviders(ctx, authCfg),
			Sessions:  sessions,
			Resolver:  federated,
		},
	}, service.AuthServiceConfig{
		SessionTTL:   cfg.Auth.SessionTTL,
		StoreTimeout: timeout,
		Logger:       logger,
	})

	return ServiceContainer{
		Auth: auth,
		Profiles: service.NewProfileService(service.ProfileServiceOptions{
			Users:        repos.Users,
			StoreTimeout: timeout,
			Logger:       logger,
		}),
		Reconciler: service.NewReconciler(service.ReconcilerOptions{
			Federated: federated,
			Tokens:    tokens,
			Users:     repos.Users,
		}, timeout, logger),
		Admissions: service.NewAdmissionService(service.AdmissionServiceOptions{
			Admissions: repos.Admissions,
			Colleges:   repos.Colleges,
			Config: service.AdmissionServiceConfig{
				EnforceWindow: cfg.Admissions.EnforceWindow,
				StoreTimeout:  timeout,
				Logger:        logger,
			},
		}),
		Colleges: service.NewCollegeService(service.CollegeServiceOptions{
			Colleges:     repos.Colleges,
			StoreTimeout: timeout,
			Logger:       logger,
		}),
		Health: map[string]core.HealthChecker{
			"postgres": postgresPinger{db: deps.DB},
			"redis":    repos.Cache,
		},
	}, nil
}

// RunConfig contains what RunWithShutdown needs to serve and stop.
type RunConfig struct {
	Server          *http.Server
	Logger          *slog.Logger
	ShutdownTimeout time.Duration
}

// RunWithShutdown serves until SIGINT/SIGTERM or a server failure, then shuts the
// server down gracefully. It blocks until the server has stopped.
func RunWithShutdown(ctx context.Context, cfg RunConfig) error {
	if cfg.Server == nil {
		return errors.New("server is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", cfg.Server.Addr)
		if err := cfg.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), timeout)
		defer cancel()
		if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Info("HTTP server stopped")
		return nil
	})
	return g.Wait()
}
