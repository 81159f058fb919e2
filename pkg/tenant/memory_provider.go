package tenant

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryProvider keeps tenants in memory.
type MemoryProvider struct {
	mu      sync.RWMutex
	tenants map[uuid.UUID]Tenant
}

// NewMemoryProvider creates a provider holding the given tenants.
func NewMemoryProvider(tenants ...Tenant) *MemoryProvider {
	p := &MemoryProvider{tenants: make(map[uuid.UUID]Tenant, len(tenants))}
	for _, t := range tenants {
		p.tenants[t.ID] = t
	}
	return p
}

func (p *MemoryProvider) GetByID(_ context.Context, id uuid.UUID) (*Tenant, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	t, ok := p.tenants[id]
	if !ok {
		return nil, ErrTenantNotFound
	}
	return &t, nil
}

func (p *MemoryProvider) Save(_ context.Context, t *Tenant) error {
	if t == nil || t.ID == uuid.Nil || t.Plan == "" {
		return ErrInvalidTenant
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.tenants[t.ID] = *t
	return nil
}
