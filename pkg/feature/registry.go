package feature

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/akademate/pkg/logger"
	"github.com/dmitrymomot/akademate/pkg/tenant"
)

const (
	defaultCacheTTL      = 5 * time.Second
	defaultLoadTimeout   = 10 * time.Second
	defaultWriteAttempts = 5
)

// Registry evaluates flags for tenants and manages the flag catalogue.
// It is safe for concurrent use.
type Registry struct {
	flags   FlagStore
	tenants tenant.Provider

	ranks         PlanRanks
	strict        bool
	writeAttempts int

	cache       ResultCache
	cacheTTL    time.Duration
	loadTimeout time.Duration
	loads       singleflight.Group
	gen         atomic.Uint64

	logger  *slog.Logger
	metrics *Metrics
}

// NewRegistry creates a registry reading definitions from flags and tenant
// plans from tenants.
func NewRegistry(flags FlagStore, tenants tenant.Provider, opts ...RegistryOption) *Registry {
	r := &Registry{
		flags:         flags,
		tenants:       tenants,
		ranks:         DefaultPlanRanks(),
		writeAttempts: defaultWriteAttempts,
		cacheTTL:      defaultCacheTTL,
		loadTimeout:   defaultLoadTimeout,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(logger.Component("feature.registry"))
	return r
}

// PlanRanks returns the plan ordering the registry evaluates with.
func (r *Registry) PlanRanks() PlanRanks {
	return r.ranks
}

func (r *Registry) eligibility() EligibilityFunc {
	if r.strict {
		return r.ranks.EligibleStrict
	}
	return r.ranks.Eligible
}

// Evaluate returns the evaluation of every flag for tenantID, ordered by key.
func (r *Registry) Evaluate(ctx context.Context, tenantID string) (results []Result, err error) {
	defer func(start time.Time) { r.metrics.observe("evaluate", start, err) }(time.Now())

	id, err := parseTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	ctx = tenant.WithID(ctx, id)
	key := id.String()

	if r.cache != nil {
		cached, ok := r.cache.Get(ctx, key)
		r.metrics.cacheLookup(ok)
		if ok {
			return cached, nil
		}
	}

	gen := r.gen.Load()
	flight := r.loads.DoChan(fmt.Sprintf("%s@%d", key, gen), func() (any, error) {
		// The load outlives the caller that started it; joined callers
		// share its result.
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.loadTimeout)
		defer cancel()

		var version string
		if r.cache != nil {
			version = r.cache.Version(lctx, key)
		}
		loaded, err := r.load(lctx, id)
		if err != nil {
			return nil, err
		}
		if r.cache != nil {
			r.cache.Set(lctx, key, version, loaded, r.cacheTTL)
		}
		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-flight:
		if res.Err != nil {
			return nil, res.Err
		}
		return cloneResults(res.Val.([]Result)), nil
	}
}

// EvaluateFlag returns the evaluation of a single flag for tenantID.
func (r *Registry) EvaluateFlag(ctx context.Context, tenantID, key string) (res Result, err error) {
	defer func(start time.Time) { r.metrics.observe("evaluate_flag", start, err) }(time.Now())

	id, err := parseTenantID(tenantID)
	if err != nil {
		return Result{}, err
	}
	if key == "" {
		return Result{}, errors.Join(ErrInvalidInput, errors.New("flag key is required"))
	}
	ctx = tenant.WithID(ctx, id)

	if r.cache != nil {
		if cached, ok := r.cache.Get(ctx, id.String()); ok {
			r.metrics.cacheLookup(true)
			for _, res := range cached {
				if res.Key == key {
					return res, nil
				}
			}
			return Result{}, ErrFlagNotFound
		}
		r.metrics.cacheLookup(false)
	}

	t, err := r.tenant(ctx, id)
	if err != nil {
		return Result{}, err
	}

	def, err := r.flags.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrFlagNotFound) {
			return Result{}, ErrFlagNotFound
		}
		return Result{}, r.storageError(ctx, "load flag", err)
	}

	return Evaluate(def, id.String(), t.Plan, r.eligibility()), nil
}

func (r *Registry) load(ctx context.Context, id uuid.UUID) ([]Result, error) {
	t, err := r.tenant(ctx, id)
	if err != nil {
		return nil, err
	}

	defs, err := r.flags.List(ctx)
	if err != nil {
		return nil, r.storageError(ctx, "list flags", err)
	}
	sortDefinitions(defs)

	eligible := r.eligibility()
	results := make([]Result, 0, len(defs))
	for _, def := range defs {
		results = append(results, Evaluate(def, id.String(), t.Plan, eligible))
	}

	r.logger.DebugContext(ctx, "flags evaluated", logger.Plan(t.Plan), slog.Int("count", len(results)))
	return results, nil
}

func (r *Registry) tenant(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	t, err := r.tenants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, r.storageError(ctx, "load tenant", err)
	}
	return t, nil
}

func (r *Registry) invalidate(ctx context.Context, tenantID string) {
	r.gen.Add(1)
	if r.cache != nil {
		r.cache.Delete(context.WithoutCancel(ctx), tenantID)
	}
}

func (r *Registry) purge(ctx context.Context) {
	r.gen.Add(1)
	if r.cache != nil {
		r.cache.Purge(context.WithoutCancel(ctx))
	}
}

func (r *Registry) storageError(ctx context.Context, op string, err error) error {
	r.logger.ErrorContext(ctx, "storage failure", logger.Event(op), logger.Error(err))
	return errors.Join(ErrStorageUnavailable, err)
}

func parseTenantID(s string) (uuid.UUID, error) {
	id, err := tenant.ParseID(s)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalidInput, err)
	}
	return id, nil
}
