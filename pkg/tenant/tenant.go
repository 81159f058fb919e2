package tenant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/akademate/pkg/validator"
)

// Tenant is the slice of tenant data the flag service reads.
// Tenants are owned by the tenant-management subsystem and are read-only here.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Plan      string    `json:"plan"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Provider loads tenants from a data source.
type Provider interface {
	// GetByID returns ErrTenantNotFound if no tenant has the given id.
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
}

// Saver stores tenants. Only seeding tools write tenants.
type Saver interface {
	Save(ctx context.Context, t *Tenant) error
}

// ParseID parses a tenant id in the 36 character hyphenated form.
// Braced, URN and unhyphenated spellings are rejected.
func ParseID(s string) (uuid.UUID, error) {
	if err := validator.Apply(validator.ValidUUID("tenantId", s)); err != nil {
		return uuid.Nil, errors.Join(ErrInvalidIdentifier, err)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalidIdentifier, err)
	}
	return id, nil
}
