package feature

import "context"

// FlagStore persists flag definitions.
//
// Implementations return ErrFlagNotFound for unknown keys and ErrFlagExists
// when creating a duplicate key. Any other failure is treated by the
// registry as a storage outage.
type FlagStore interface {
	// List returns every definition. Order is not significant.
	List(ctx context.Context) ([]Definition, error)

	// Get returns the definition registered under key.
	Get(ctx context.Context, key string) (Definition, error)

	// Create stores a new definition with version 1.
	Create(ctx context.Context, def Definition) (Definition, error)

	// Update replaces description, type, default value and plan requirement
	// of an existing definition and bumps its version. Overrides are kept.
	Update(ctx context.Context, def Definition) (Definition, error)

	// Delete removes the definition registered under key.
	Delete(ctx context.Context, key string) error

	// ReplaceOverrides swaps the override list when the stored version still
	// equals expectedVersion and returns ErrVersionConflict otherwise.
	ReplaceOverrides(ctx context.Context, key string, overrides []Override, expectedVersion int64) error
}
