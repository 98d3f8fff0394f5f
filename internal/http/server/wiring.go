// Package server arma el handler HTTP con todas sus dependencias.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/hiredvalley/hired-backend/internal/config"
	"github.com/hiredvalley/hired-backend/internal/domain/repository"
	authctrl "github.com/hiredvalley/hired-backend/internal/http/controllers/auth"
	healthctrl "github.com/hiredvalley/hired-backend/internal/http/controllers/health"
	mw "github.com/hiredvalley/hired-backend/internal/http/middlewares"
	"github.com/hiredvalley/hired-backend/internal/http/router"
	authsvc "github.com/hiredvalley/hired-backend/internal/http/services/auth"
	"github.com/hiredvalley/hired-backend/internal/observability/logger"
	"github.com/hiredvalley/hired-backend/internal/platform"
	"github.com/hiredvalley/hired-backend/internal/platform/gotrue"
	"github.com/hiredvalley/hired-backend/internal/platform/memory"
	"github.com/hiredvalley/hired-backend/internal/platform/postgrest"
	"github.com/hiredvalley/hired-backend/internal/rate"
	"github.com/hiredvalley/hired-backend/internal/store/pg"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	rdb "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Options permite inyectar piezas en tests.
type Options struct {
	Registry *prometheus.Registry
	// Platform reemplaza la construcción por driver (solo tests).
	Platform authsvc.Platform
}

// BuildHandler construye el handler según cfg. cleanup libera pools y clientes.
func BuildHandler(ctx context.Context, cfg *config.Config, opts Options) (http.Handler, func() error, error) {
	log := logger.Named("wiring")

	var closers []func() error
	cleanup := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}
	fail := func(err error) (http.Handler, func() error, error) {
		_ = cleanup()
		return nil, nil, err
	}

	// 1. Métricas
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	httpMetrics, err := mw.NewHTTPMetrics(reg)
	if err != nil {
		return fail(fmt.Errorf("http metrics: %w", err))
	}
	platformMetrics, err := platform.NewMetrics(reg)
	if err != nil {
		return fail(fmt.Errorf("platform metrics: %w", err))
	}

	checks := map[string]healthctrl.Checker{}

	// 2. Platform (identidad + perfiles)
	p := opts.Platform
	if p == nil {
		identity, profiles, err := buildPlatform(ctx, cfg, reg, checks, &closers)
		if err != nil {
			return fail(err)
		}
		p = platform.New(identity, profiles, platform.WithMetrics(platformMetrics))
	}

	// 3. Rate limiter
	var limiter rate.Limiter
	if cfg.Rate.Enabled {
		switch cfg.Rate.Backend {
		case config.RateRedis:
			rc := rdb.NewClient(&rdb.Options{
				Addr:     cfg.Rate.Redis.Addr,
				Password: cfg.Rate.Redis.Password,
				DB:       cfg.Rate.Redis.DB,
			})
			closers = append(closers, rc.Close)
			checks["redis"] = func(ctx context.Context) error { return rc.Ping(ctx).Err() }
			limiter = rate.NewRedisLimiter(rc, cfg.Rate.Redis.Prefix, cfg.Rate.Limit, cfg.Rate.Window)
		default:
			limiter = rate.NewMemoryLimiter(cfg.Rate.Limit, cfg.Rate.Window)
		}
		log.Info("rate limiting enabled",
			logger.String("backend", cfg.Rate.Backend),
			zap.Int("limit", cfg.Rate.Limit),
			zap.Duration("window", cfg.Rate.Window),
		)
	}

	// 4. Services + controllers
	services := authsvc.NewServices(authsvc.Deps{Platform: p})

	handler := router.New(router.Deps{
		Auth:        authctrl.NewControllers(services),
		Health:      healthctrl.NewHealthController(cfg.App.Version, checks),
		Metrics:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		HTTPMetrics: httpMetrics,
		RateLimiter: limiter,
		CORSOrigins: cfg.Server.CORSAllowedOrigins,

		TrustProxyHeaders: cfg.Server.TrustProxyHeaders,
	})

	log.Info("handler ready",
		logger.String("platform", cfg.Platform.Driver),
		logger.String("profiles", cfg.Profiles.Store),
	)
	return handler, cleanup, nil
}

func buildPlatform(
	ctx context.Context,
	cfg *config.Config,
	reg prometheus.Registerer,
	checks map[string]healthctrl.Checker,
	closers *[]func() error,
) (repository.IdentityRepository, repository.ProfileRepository, error) {
	hc := &http.Client{Timeout: cfg.Platform.Timeout}

	var (
		identity repository.IdentityRepository
		mem      *memory.Platform
	)
	switch cfg.Platform.Driver {
	case config.PlatformSupabase:
		gt := gotrue.New(cfg.Platform.URL, cfg.Platform.Key, hc)
		checks["identity"] = gt.Health
		identity = gt
	case config.PlatformMemory:
		var err error
		mem, err = memory.New(memory.Config{
			Secret:    []byte(cfg.Platform.Memory.JWTSecret),
			AccessTTL: cfg.Platform.Memory.AccessTTL,
		})
		if err != nil {
			return nil, nil, err
		}
		identity = mem
	default:
		return nil, nil, fmt.Errorf("unknown platform driver %q", cfg.Platform.Driver)
	}

	switch cfg.Profiles.Store {
	case config.ProfilesPostgREST:
		return identity, postgrest.New(cfg.Platform.URL, cfg.Platform.Key, cfg.Profiles.Table, hc), nil
	case config.ProfilesPostgres:
		st, err := pg.New(ctx, cfg.Profiles.DSN, pg.PoolConfig{
			MaxConns:        cfg.Profiles.Postgres.MaxConns,
			MinConns:        cfg.Profiles.Postgres.MinConns,
			ConnMaxLifetime: cfg.Profiles.Postgres.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("profiles store: %w", err)
		}
		*closers = append(*closers, func() error { st.Close(); return nil })
		if cfg.Profiles.Postgres.AutoMigrate {
			if err := st.Migrate(ctx); err != nil {
				return nil, nil, fmt.Errorf("migrate: %w", err)
			}
		}
		if err := reg.Register(pg.NewPoolCollector(st)); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return nil, nil, err
			}
		}
		checks["database"] = func(ctx context.Context) error { return st.Pool().Ping(ctx) }
		return identity, st.Profiles(), nil
	case config.ProfilesMemory:
		if mem == nil {
			return nil, nil, errors.New("memory profile store requires the memory platform")
		}
		return identity, mem, nil
	default:
		return nil, nil, fmt.Errorf("unknown profile store %q", cfg.Profiles.Store)
	}
}
