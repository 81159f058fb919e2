package featureflags

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Mountable is a module exposing its own routes.
type Mountable interface {
	Handle() http.Handler
}

// RouterOptions selects the handlers mounted by Router. Nil entries are skipped.
type RouterOptions struct {
	Flags   Mountable
	Health  http.Handler
	Ready   http.Handler
	Metrics http.Handler
}

// Router mounts the flag API under /api/feature-flags next to the operational
// endpoints.
//
//	r := featureflags.Router(featureflags.RouterOptions{
//		Flags:   featureflags.NewService(registry, featureflags.WithLogger(log)),
//		Health:  httpserver.LivenessHandler(),
//		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
//	})
func Router(opts RouterOptions, middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares...)

	if opts.Flags != nil {
		r.Mount("/api/feature-flags", opts.Flags.Handle())
	}
	if opts.Health != nil {
		r.Method(http.MethodGet, "/health/live", opts.Health)
	}
	if opts.Ready != nil {
		r.Method(http.MethodGet, "/health/ready", opts.Ready)
	}
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	return r
}
