// Package feature evaluates per-tenant feature flags.
//
// A flag Definition has a type (boolean, percentage or variant), a default
// value, an optional minimum subscription plan and an ordered list of tenant
// overrides. Evaluation of one flag for one tenant is a pure function:
//
//  1. The first override registered for the tenant replaces the default.
//  2. PlanRanks decides whether the tenant plan satisfies the flag's plan
//     requirement. Unknown plan names are granted access unless the registry
//     runs with WithStrictPlans.
//  3. Ineligible tenants get false, except for variant flags which keep
//     their value. Eligible percentage flags compare Bucket(tenantID), a
//     stable number in [0, 100), against the rollout value.
//
// # Registry
//
// Registry ties evaluation to storage. It reads definitions from a
// FlagStore and tenant plans from a tenant.Provider:
//
//	store, _ := feature.NewMemoryStore(defs...)
//	reg := feature.NewRegistry(store, tenants,
//		feature.WithCache(feature.NewMemoryCache(4096)),
//		feature.WithCacheTTL(5*time.Second),
//		feature.WithLogger(log),
//	)
//
//	results, err := reg.Evaluate(ctx, tenantID)
//	switch {
//	case errors.Is(err, feature.ErrInvalidInput):
//	case errors.Is(err, feature.ErrTenantNotFound):
//	case errors.Is(err, feature.ErrStorageUnavailable):
//	}
//
// Override writes are compare-and-swap operations on the flag version and
// are retried on conflict. Every write invalidates the cached results it
// affects before returning, so the next read observes it.
//
// # Values
//
// Values travel as opaque JSON documents. Bool, Percent and Variant build
// them; AsBool and AsNumber read them back.
package feature
