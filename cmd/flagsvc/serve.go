package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/akademate/modules/featureflags"
	"github.com/dmitrymomot/akademate/pkg/config"
	"github.com/dmitrymomot/akademate/pkg/feature"
	"github.com/dmitrymomot/akademate/pkg/flagfile"
	"github.com/dmitrymomot/akademate/pkg/httpserver"
	"github.com/dmitrymomot/akademate/pkg/logger"
	"github.com/dmitrymomot/akademate/pkg/requestid"
)

const readinessTimeout = 2 * time.Second

func serveCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving (postgres storage)")
	return cmd
}

func serve(ctx context.Context, migrate bool) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	logger.SetAsDefault(log)

	a, err := newApp(ctx, log)
	if err != nil {
		return err
	}
	defer a.close()

	if migrate && a.pool != nil {
		if err := runMigrations(ctx, a); err != nil {
			return err
		}
	}

	if a.flagsCfg.Storage == feature.StorageMemory {
		if err := a.seed(ctx, a.flagsCfg.SeedFile); err != nil {
			return err
		}
	}

	var httpCfg httpserver.Config
	if err := config.Load(&httpCfg); err != nil {
		return err
	}

	router := featureflags.Router(featureflags.RouterOptions{
		Flags:   featureflags.NewService(a.registry, featureflags.WithLogger(log)),
		Health:  httpserver.LivenessHandler(),
		Ready:   httpserver.ReadinessHandler(log, readinessTimeout, a.checks...),
		Metrics: promhttp.HandlerFor(a.metricsRegistry, promhttp.HandlerOpts{Registry: a.metricsRegistry}),
	}, requestid.Middleware, middleware.Recoverer)

	server := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx, router)
	})
	if a.flagsCfg.Storage == feature.StorageMemory && a.flagsCfg.SeedWatch && a.flagsCfg.SeedFile != "" {
		g.Go(func() error {
			return flagfile.Watch(ctx, a.flagsCfg.SeedFile, log, func(ctx context.Context, f *flagfile.File) error {
				_, err := flagfile.Apply(ctx, f, a.registry, a.tenants, log)
				return err
			})
		})
	}
	return g.Wait()
}
