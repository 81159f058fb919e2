package feature

import (
	"log/slog"
	"time"
)

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithCache enables result caching. Entries live for the TTL set by
// WithCacheTTL. Writes invalidate them through the cache, so instances that
// share storage must share the cache as well.
func WithCache(c ResultCache) RegistryOption {
	return func(r *Registry) {
		r.cache = c
	}
}

// WithCacheTTL sets how long cached results stay valid.
func WithCacheTTL(ttl time.Duration) RegistryOption {
	return func(r *Registry) {
		if ttl > 0 {
			r.cacheTTL = ttl
		}
	}
}

// WithLoadTimeout bounds a storage load shared by concurrent Evaluate calls.
// The load is detached from the cancellation of the caller that started it.
func WithLoadTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.loadTimeout = d
		}
	}
}

// WithPlanRanks replaces the default plan ordering.
func WithPlanRanks(ranks PlanRanks) RegistryOption {
	return func(r *Registry) {
		if len(ranks) > 0 {
			r.ranks = ranks
		}
	}
}

// WithStrictPlans denies gated flags to tenants whose plan, or whose flag's
// required plan, is missing from the plan ranks.
func WithStrictPlans() RegistryOption {
	return func(r *Registry) {
		r.strict = true
	}
}

// WithMaxWriteAttempts bounds the compare-and-swap retries of override writes.
func WithMaxWriteAttempts(n int) RegistryOption {
	return func(r *Registry) {
		if n > 0 {
			r.writeAttempts = n
		}
	}
}

// WithLogger sets the registry logger.
func WithLogger(log *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.logger = log
		}
	}
}

// WithMetrics sets the Prometheus collectors updated by the registry.
func WithMetrics(m *Metrics) RegistryOption {
	return func(r *Registry) {
		r.metrics = m
	}
}
