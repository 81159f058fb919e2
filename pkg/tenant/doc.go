// Package tenant describes the tenants feature flags are evaluated for.
//
// The flag service only needs a tenant's id and subscription plan. Tenants
// are loaded through a Provider; MemoryProvider serves tests and file-seeded
// deployments, while the Postgres implementation lives in pkg/pgstore.
//
// Handlers store the tenant id a request targets with WithID, and
// LoggerExtractor makes it appear as tenant_id on every log line:
//
//	log := logger.New(logger.WithContextExtractors(tenant.LoggerExtractor()))
//	ctx = tenant.WithID(ctx, id)
//	log.InfoContext(ctx, "evaluated flags")
package tenant
