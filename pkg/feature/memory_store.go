package feature

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MemoryStore is an in-memory FlagStore.
// It's useful for testing and single-instance deployments seeded from a file.
type MemoryStore struct {
	flags map[string]*Definition
	mu    sync.RWMutex
	now   func() time.Time
}

// NewMemoryStore creates a store populated with the given definitions.
func NewMemoryStore(initial ...Definition) (*MemoryStore, error) {
	store := &MemoryStore{
		flags: make(map[string]*Definition),
		now:   time.Now,
	}

	for _, def := range initial {
		if def.Key == "" {
			return nil, errors.Join(ErrInvalidFlag, errors.New("flag key cannot be empty"))
		}
		if _, exists := store.flags[def.Key]; exists {
			return nil, errors.Join(ErrFlagExists, errors.New(def.Key))
		}

		stored := def.Clone()
		if stored.Version == 0 {
			stored.Version = 1
		}
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = store.now()
		}
		if stored.UpdatedAt.IsZero() {
			stored.UpdatedAt = stored.CreatedAt
		}
		store.flags[def.Key] = &stored
	}

	return store, nil
}

// List returns copies of all definitions.
func (m *MemoryStore) List(_ context.Context) ([]Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Definition, 0, len(m.flags))
	for _, def := range m.flags {
		result = append(result, def.Clone())
	}
	return result, nil
}

// Get returns a copy of the definition registered under key.
func (m *MemoryStore) Get(_ context.Context, key string) (Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	def, exists := m.flags[key]
	if !exists {
		return Definition{}, ErrFlagNotFound
	}
	return def.Clone(), nil
}

// Create stores a new definition.
func (m *MemoryStore) Create(_ context.Context, def Definition) (Definition, error) {
	if def.Key == "" {
		return Definition{}, errors.Join(ErrInvalidFlag, errors.New("flag key cannot be empty"))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.flags[def.Key]; exists {
		return Definition{}, ErrFlagExists
	}

	stored := def.Clone()
	if stored.Overrides == nil {
		stored.Overrides = []Override{}
	}
	stored.Version = 1
	stored.CreatedAt = m.now()
	stored.UpdatedAt = stored.CreatedAt
	m.flags[def.Key] = &stored

	return stored.Clone(), nil
}

// Update replaces the mutable attributes of an existing definition.
func (m *MemoryStore) Update(_ context.Context, def Definition) (Definition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, exists := m.flags[def.Key]
	if !exists {
		return Definition{}, ErrFlagNotFound
	}

	updated := existing.Clone()
	updated.Description = def.Description
	updated.Type = def.Type
	updated.DefaultValue = def.DefaultValue.Clone()
	updated.PlanRequirement = def.PlanRequirement
	updated.Version++
	updated.UpdatedAt = m.now()
	m.flags[def.Key] = &updated

	return updated.Clone(), nil
}

// Delete removes a definition.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.flags[key]; !exists {
		return ErrFlagNotFound
	}
	delete(m.flags, key)
	return nil
}

// ReplaceOverrides swaps the override list when expectedVersion matches.
func (m *MemoryStore) ReplaceOverrides(_ context.Context, key string, overrides []Override, expectedVersion int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, exists := m.flags[key]
	if !exists {
		return ErrFlagNotFound
	}
	if existing.Version != expectedVersion {
		return ErrVersionConflict
	}

	updated := existing.Clone()
	updated.Overrides = Definition{Overrides: overrides}.Clone().Overrides
	if updated.Overrides == nil {
		updated.Overrides = []Override{}
	}
	updated.Version++
	updated.UpdatedAt = m.now()
	m.flags[key] = &updated

	return nil
}
