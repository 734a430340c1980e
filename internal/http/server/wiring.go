// Package server arma el handler HTTP con todas sus dependencias a partir
// de la configuración y corre el http.Server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	rdb "github.com/redis/go-redis/v9"

	"github.com/dropDatabas3/wizauth/internal/cache"
	"github.com/dropDatabas3/wizauth/internal/config"
	authctrl "github.com/dropDatabas3/wizauth/internal/http/controllers/auth"
	debugctrl "github.com/dropDatabas3/wizauth/internal/http/controllers/debug"
	healthctrl "github.com/dropDatabas3/wizauth/internal/http/controllers/health"
	socialctrl "github.com/dropDatabas3/wizauth/internal/http/controllers/social"
	usersctrl "github.com/dropDatabas3/wizauth/internal/http/controllers/users"
	"github.com/dropDatabas3/wizauth/internal/http/router"
	authsvc "github.com/dropDatabas3/wizauth/internal/http/services/auth"
	healthsvc "github.com/dropDatabas3/wizauth/internal/http/services/health"
	"github.com/dropDatabas3/wizauth/internal/jwt"
	"github.com/dropDatabas3/wizauth/internal/metrics"
	"github.com/dropDatabas3/wizauth/internal/observability/logger"
	"github.com/dropDatabas3/wizauth/internal/profile"
	"github.com/dropDatabas3/wizauth/internal/provider"
	"github.com/dropDatabas3/wizauth/internal/rate"
)

// Components expone las piezas construidas (los subcomandos de token y los
// tests las usan sin levantar HTTP).
type Components struct {
	Provider *provider.Client
	Issuer   *jwt.Issuer
	Verifier *jwt.Verifier
	Profiles *profile.Service
	Limiter  rate.Limiter
	Registry *prometheus.Registry
}

// BuildTokens arma sólo issuer + verifier.
func BuildTokens(cfg *config.Config) (*jwt.Issuer, *jwt.Verifier, error) {
	strategies, err := jwt.DefaultStrategies(jwt.StrategyConfig{
		LocalSecret:    cfg.JWT.Secret,
		LocalAlgorithm: cfg.JWT.Algorithm,
		ProviderSecret: cfg.Provider.JWTSecret,
		LegacyLenient:  cfg.Auth.LegacyLenient,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("wiring: strategies: %w", err)
	}
	verifier, err := jwt.NewVerifier(strategies)
	if err != nil {
		return nil, nil, fmt.Errorf("wiring: verifier: %w", err)
	}
	issuer, err := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.AccessTTL())
	if err != nil {
		return nil, nil, fmt.Errorf("wiring: issuer: %w", err)
	}
	return issuer, verifier, nil
}

// BuildHandler construye el handler completo. cleanup cierra pools y
// conexiones; es seguro llamarlo aunque BuildHandler haya fallado a medias.
func BuildHandler(ctx context.Context, cfg *config.Config) (http.Handler, *Components, func() error, error) {
	log := logger.L().With(logger.Component("wiring"))
	var closers []func() error
	cleanup := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}
	fail := func(err error) (http.Handler, *Components, func() error, error) {
		return nil, nil, cleanup, err
	}

	// 1) Provider gateway
	pc, err := provider.New(provider.Config{
		BaseURL: cfg.Provider.URL,
		APIKey:  cfg.Provider.APIKey,
		Timeout: cfg.Provider.Timeout,
	})
	if err != nil {
		return fail(fmt.Errorf("wiring: provider: %w", err))
	}

	// 2) Tokens
	issuer, verifier, err := BuildTokens(cfg)
	if err != nil {
		return fail(err)
	}
	log.Info("verifier ready", logger.Any("strategies", verifier.Strategies()), logger.String("token_mode", cfg.Auth.TokenMode))

	// Redis compartido entre rate limit e identity cache; se abre sólo si alguno lo pide.
	var (
		redisClient rdb.UniversalClient
		redisCheck  healthsvc.CheckFunc
	)
	sharedRedis := func() rdb.UniversalClient {
		if redisClient == nil {
			redisClient = rdb.NewUniversalClient(&rdb.UniversalOptions{
				Addrs: []string{cfg.Rate.Redis.Addr},
				DB:    cfg.Rate.Redis.DB,
			})
			closers = append(closers, redisClient.Close)
			redisCheck = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		}
		return redisClient
	}

	// 3) Perfiles
	var (
		store         profile.Store
		profilesCheck healthsvc.CheckFunc
	)
	switch cfg.Profiles.Driver {
	case "postgres":
		pg, err := profile.NewPGStore(ctx, cfg.Profiles.DSN, cfg.Profiles.Table)
		if err != nil {
			return fail(fmt.Errorf("wiring: profiles postgres: %w", err))
		}
		closers = append(closers, func() error { pg.Close(); return nil })
		if cfg.Profiles.AutoMigrate {
			if err := pg.Migrate(ctx); err != nil {
				return fail(fmt.Errorf("wiring: profiles migrate: %w", err))
			}
		}
		store = pg
		profilesCheck = pg.Ping
	default:
		store = profile.NewRESTStore(pc, cfg.Profiles.Table)
	}

	// Identity cache (opcional): evita repetir who-am-i/admin en cada /users/me.
	var lookup profile.IdentityLookup = pc
	if cfg.IdentityCache.Enabled {
		var c cache.Client
		switch cfg.IdentityCache.Driver {
		case "redis":
			c = cache.NewRedis(sharedRedis(), cfg.IdentityCache.Prefix, cfg.IdentityCache.TTL)
		default:
			c = cache.NewMemory(cfg.IdentityCache.Prefix, cfg.IdentityCache.TTL)
		}
		closers = append(closers, c.Close)
		lookup = profile.NewCachedLookup(pc, c, cfg.IdentityCache.TTL)
		log.Info("identity cache enabled",
			logger.String("driver", cfg.IdentityCache.Driver),
			logger.String("ttl", cfg.IdentityCache.TTL.String()),
		)
	}
	profiles := profile.NewService(store, profile.NewEmailResolver(lookup))
	log.Info("profile store ready", logger.String("driver", cfg.Profiles.Driver), logger.String("table", cfg.Profiles.Table))

	// 4) Rate limit (opcional)
	var limiter rate.Limiter
	if cfg.Rate.Enabled {
		switch cfg.Rate.Driver {
		case "redis":
			limiter = rate.NewRedisLimiter(sharedRedis(), cfg.Rate.Redis.Prefix, cfg.Rate.Limit, cfg.Rate.Window)
		default:
			limiter = rate.NewMemoryLimiter(cfg.Rate.Limit, cfg.Rate.Window)
		}
		log.Info("rate limit enabled",
			logger.String("driver", cfg.Rate.Driver),
			logger.Int("limit", cfg.Rate.Limit),
			logger.String("window", cfg.Rate.Window.String()),
		)
	}

	// 5) Métricas
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := metrics.Register(reg); err != nil {
		return fail(fmt.Errorf("wiring: metrics: %w", err))
	}

	// 6) Services -> controllers -> router
	authServices := authsvc.NewServices(authsvc.Deps{
		Provider:  pc,
		Issuer:    issuer,
		TokenMode: cfg.Auth.TokenMode,
		AccessTTL: cfg.AccessTTL(),
		Profiles:  profiles,
	})
	healthServices := healthsvc.NewServices(healthsvc.Deps{
		Version:       cfg.App.Version,
		TokenMode:     cfg.Auth.TokenMode,
		Issuer:        issuer,
		Verifier:      verifier,
		ProviderCheck: pc.Health,
		ProfilesCheck: profilesCheck,
		RedisCheck:    redisCheck,
	})

	deps := router.Deps{
		Prefix:      cfg.Server.APIPrefix,
		CORSOrigins: cfg.Server.CORSOrigins,
		Verifier:    verifier,
		RateLimiter: limiter,
		Auth:        authctrl.NewControllers(authServices),
		Social:      socialctrl.NewControllers(authServices),
		Users:       usersctrl.NewControllers(profiles),
		Health:      healthctrl.NewControllers(healthServices),
		Metrics:     metrics.Handler(reg),
	}
	if cfg.Auth.DebugInspect {
		deps.Debug = debugctrl.NewTokenController(verifier)
		log.Warn("debug token inspection enabled", logger.String("route", cfg.Server.APIPrefix+"/debug/token"))
	}

	comps := &Components{
		Provider: pc,
		Issuer:   issuer,
		Verifier: verifier,
		Profiles: profiles,
		Limiter:  limiter,
		Registry: reg,
	}
	return router.New(deps), comps, cleanup, nil
}
