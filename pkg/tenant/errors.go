package tenant

import "errors"

var (
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")
	// ErrInvalidTenant is returned by Save for a tenant missing its id or plan.
	ErrInvalidTenant = errors.New("invalid tenant")
)
