package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/akademate/pkg/config"
	"github.com/dmitrymomot/akademate/pkg/feature"
	"github.com/dmitrymomot/akademate/pkg/flagfile"
	"github.com/dmitrymomot/akademate/pkg/httpserver"
	"github.com/dmitrymomot/akademate/pkg/logger"
	"github.com/dmitrymomot/akademate/pkg/pg"
	"github.com/dmitrymomot/akademate/pkg/pgstore"
	"github.com/dmitrymomot/akademate/pkg/redis"
	"github.com/dmitrymomot/akademate/pkg/requestid"
	"github.com/dmitrymomot/akademate/pkg/tenant"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"flagsvc"`
	LogLevel string `env:"LOG_LEVEL"`
}

// app holds the dependencies shared by the sub-commands.
type app struct {
	log      *slog.Logger
	flagsCfg feature.Config
	pgCfg    pg.Config

	pool    *pgxpool.Pool
	redis   *goredis.Client
	flags   feature.FlagStore
	tenants interface {
		tenant.Provider
		tenant.Saver
	}

	metricsRegistry *prometheus.Registry
	registry        *feature.Registry
	checks          []httpserver.Check
	closers         []func()
}

func newLogger() (*slog.Logger, error) {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(requestid.LoggerExtractor(), tenant.LoggerExtractor()),
	), nil
}

// newApp connects the configured storage and cache and builds the registry.
func newApp(ctx context.Context, log *slog.Logger) (*app, error) {
	a := &app{log: log, metricsRegistry: prometheus.NewRegistry()}
	if err := config.Load(&a.flagsCfg); err != nil {
		return nil, err
	}
	a.metricsRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if err := a.openStorage(ctx); err != nil {
		a.close()
		return nil, err
	}

	opts := append(a.flagsCfg.Options(),
		feature.WithLogger(log),
		feature.WithMetrics(feature.NewMetrics(a.metricsRegistry)),
	)
	cache, err := a.openCache(ctx)
	if err != nil {
		a.close()
		return nil, err
	}
	if cache != nil {
		opts = append(opts, feature.WithCache(cache))
	}
	a.registry = feature.NewRegistry(a.flags, a.tenants, opts...)

	return a, nil
}

func (a *app) openStorage(ctx context.Context) error {
	switch a.flagsCfg.Storage {
	case feature.StorageMemory:
		flags, err := feature.NewMemoryStore()
		if err != nil {
			return err
		}
		a.flags = flags
		a.tenants = tenant.NewMemoryProvider()
		a.log.InfoContext(ctx, "using in-memory storage")
		return nil

	case feature.StoragePostgres:
		pool, err := a.connectPostgres(ctx)
		if err != nil {
			return err
		}
		a.flags = pgstore.NewFlagStore(pool)
		a.tenants = pgstore.NewTenantStore(pool)
		a.checks = append(a.checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})
		return nil
	}
	return fmt.Errorf("unknown storage backend %q", a.flagsCfg.Storage)
}

func (a *app) connectPostgres(ctx context.Context) (*pgxpool.Pool, error) {
	if a.pool != nil {
		return a.pool, nil
	}
	if err := config.Load(&a.pgCfg); err != nil {
		return nil, err
	}
	pool, err := pg.Connect(ctx, a.pgCfg)
	if err != nil {
		return nil, err
	}
	a.pool = pool
	a.closers = append(a.closers, pool.Close)
	return pool, nil
}

func (a *app) openCache(ctx context.Context) (feature.ResultCache, error) {
	if err := a.flagsCfg.CheckCache(); err != nil {
		return nil, err
	}
	switch a.flagsCfg.Cache {
	case feature.CacheNone, "":
		return nil, nil

	case feature.CacheMemory:
		return feature.NewMemoryCache(a.flagsCfg.CacheSize), nil

	case feature.CacheRedis:
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.redis = client
		a.closers = append(a.closers, func() {
			if err := client.Close(); err != nil {
				a.log.Error("failed to close redis client", logger.Error(err))
			}
		})
		a.checks = append(a.checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
		return feature.NewKVCache(redis.NewStorageWithConfig(client, cfg), a.flagsCfg.CachePrefix, a.log), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", a.flagsCfg.Cache)
}

// seed applies the configured seed file, if any.
func (a *app) seed(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	_, err := flagfile.LoadAndApply(ctx, path, a.registry, a.tenants, a.log)
	return err
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

var errNoSeedFile = errors.New("no seed file given, use --file or FLAG_SEED_FILE")
