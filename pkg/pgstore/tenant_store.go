package pgstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/akademate/pkg/pg"
	"github.com/dmitrymomot/akademate/pkg/tenant"
)

// TenantStore reads tenants from the tenants table.
type TenantStore struct {
	db DBTX
}

var (
	_ tenant.Provider = (*TenantStore)(nil)
	_ tenant.Saver    = (*TenantStore)(nil)
)

// NewTenantStore creates a store running queries on db.
func NewTenantStore(db DBTX) *TenantStore {
	return &TenantStore{db: db}
}

func (s *TenantStore) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := s.db.QueryRow(ctx,
		`SELECT id, name, plan, active, created_at FROM tenants WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Plan, &t.Active, &t.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("get tenant %s: %w", id, err)
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

// Save inserts the tenant or updates name, plan and active flag of an
// existing one.
func (s *TenantStore) Save(ctx context.Context, t *tenant.Tenant) error {
	if t == nil || t.ID == uuid.Nil || t.Plan == "" {
		return tenant.ErrInvalidTenant
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO tenants (id, name, plan, active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, plan = EXCLUDED.plan, active = EXCLUDED.active`,
		t.ID, t.Name, t.Plan, t.Active,
	)
	if err != nil {
		return fmt.Errorf("save tenant %s: %w", t.ID, err)
	}
	return nil
}
