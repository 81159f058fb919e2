package feature

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrymomot/akademate/pkg/logger"
	"github.com/dmitrymomot/akademate/pkg/tenant"
)

// SetOverride pins value for tenantID on the flag registered under key and
// returns the stored value. A null value is stored as is and evaluates as
// if no override existed.
func (r *Registry) SetOverride(ctx context.Context, tenantID, key string, value Value) (stored Value, err error) {
	defer func(start time.Time) { r.metrics.observe("set_override", start, err) }(time.Now())

	id, err := parseTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, errors.Join(ErrInvalidInput, errors.New("flag key is required"))
	}
	if !value.IsNull() {
		if err := validateValue(value); err != nil {
			return nil, err
		}
	}
	ctx = tenant.WithID(ctx, id)
	tid := id.String()

	stored = value.Clone()
	if stored == nil {
		stored = Value(jsonNull)
	}

	err = r.modifyOverrides(ctx, key, func(overrides []Override) ([]Override, bool) {
		return upsertOverride(overrides, tid, stored), true
	})
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, tid)
	r.logger.InfoContext(ctx, "override stored", logger.FlagKey(key))
	return stored.Clone(), nil
}

// RemoveOverride deletes the override of tenantID on the flag registered
// under key. Removing a missing override is not an error.
func (r *Registry) RemoveOverride(ctx context.Context, tenantID, key string) (err error) {
	defer func(start time.Time) { r.metrics.observe("remove_override", start, err) }(time.Now())

	id, err := parseTenantID(tenantID)
	if err != nil {
		return err
	}
	if key == "" {
		return errors.Join(ErrInvalidInput, errors.New("flag key is required"))
	}
	ctx = tenant.WithID(ctx, id)
	tid := id.String()

	err = r.modifyOverrides(ctx, key, func(overrides []Override) ([]Override, bool) {
		return removeOverride(overrides, tid)
	})
	if err != nil {
		return err
	}

	r.invalidate(ctx, tid)
	r.logger.InfoContext(ctx, "override removed", logger.FlagKey(key))
	return nil
}

// modifyOverrides applies fn to the current override list and writes the
// result with a compare-and-swap on the flag version, retrying on conflict.
func (r *Registry) modifyOverrides(ctx context.Context, key string, fn func([]Override) ([]Override, bool)) error {
	for attempt := 1; ; attempt++ {
		def, err := r.flags.Get(ctx, key)
		if err != nil {
			if errors.Is(err, ErrFlagNotFound) {
				return ErrFlagNotFound
			}
			return r.storageError(ctx, "load flag", err)
		}

		next, changed := fn(def.Overrides)
		if !changed {
			return nil
		}

		err = r.flags.ReplaceOverrides(ctx, key, next, def.Version)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, ErrFlagNotFound):
			return ErrFlagNotFound
		case !errors.Is(err, ErrVersionConflict):
			return r.storageError(ctx, "replace overrides", err)
		}

		r.metrics.conflict()
		if attempt >= r.writeAttempts {
			r.logger.WarnContext(ctx, "override write gave up after conflicts",
				logger.FlagKey(key), logger.Attempt(attempt))
			return ErrVersionConflict
		}
		r.logger.DebugContext(ctx, "override write conflict, retrying",
			logger.FlagKey(key), logger.Attempt(attempt))
	}
}

// upsertOverride replaces the first entry for tenantID, drops any later
// duplicates and appends a new entry when none exists.
func upsertOverride(overrides []Override, tenantID string, value Value) []Override {
	next := make([]Override, 0, len(overrides)+1)
	found := false
	for _, o := range overrides {
		if o.TenantID != tenantID {
			next = append(next, o)
			continue
		}
		if !found {
			next = append(next, Override{TenantID: tenantID, Value: value})
			found = true
		}
	}
	if !found {
		next = append(next, Override{TenantID: tenantID, Value: value})
	}
	return next
}

func removeOverride(overrides []Override, tenantID string) ([]Override, bool) {
	next := make([]Override, 0, len(overrides))
	for _, o := range overrides {
		if o.TenantID != tenantID {
			next = append(next, o)
		}
	}
	return next, len(next) != len(overrides)
}

func validateValue(v Value) error {
	if !json.Valid(v) {
		return errors.Join(ErrInvalidInput, errors.New("value must be valid JSON"))
	}
	return nil
}

// Definitions returns every flag definition ordered by key.
func (r *Registry) Definitions(ctx context.Context) (defs []Definition, err error) {
	defer func(start time.Time) { r.metrics.observe("list_definitions", start, err) }(time.Now())

	defs, err = r.flags.List(ctx)
	if err != nil {
		return nil, r.storageError(ctx, "list flags", err)
	}
	sortDefinitions(defs)
	return defs, nil
}

// Definition returns the definition registered under key.
func (r *Registry) Definition(ctx context.Context, key string) (Definition, error) {
	def, err := r.flags.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrFlagNotFound) {
			return Definition{}, ErrFlagNotFound
		}
		return Definition{}, r.storageError(ctx, "load flag", err)
	}
	return def, nil
}

// CreateDefinition validates and registers a new flag.
func (r *Registry) CreateDefinition(ctx context.Context, def Definition) (created Definition, err error) {
	defer func(start time.Time) { r.metrics.observe("create_definition", start, err) }(time.Now())

	def.Overrides, err = canonicalOverrides(def.Overrides)
	if err != nil {
		return Definition{}, err
	}
	if err := ValidateDefinition(def, r.ranks); err != nil {
		return Definition{}, err
	}

	created, err = r.flags.Create(ctx, def)
	if err != nil {
		if errors.Is(err, ErrFlagExists) {
			return Definition{}, ErrFlagExists
		}
		return Definition{}, r.storageError(ctx, "create flag", err)
	}

	r.purge(ctx)
	r.logger.InfoContext(ctx, "flag created", logger.FlagKey(created.Key))
	return created, nil
}

// UpdateDefinition replaces the type, default value, plan requirement and
// description of an existing flag. Overrides are left untouched.
func (r *Registry) UpdateDefinition(ctx context.Context, def Definition) (updated Definition, err error) {
	defer func(start time.Time) { r.metrics.observe("update_definition", start, err) }(time.Now())

	def.Overrides = nil
	if err := ValidateDefinition(def, r.ranks); err != nil {
		return Definition{}, err
	}

	updated, err = r.flags.Update(ctx, def)
	if err != nil {
		if errors.Is(err, ErrFlagNotFound) {
			return Definition{}, ErrFlagNotFound
		}
		return Definition{}, r.storageError(ctx, "update flag", err)
	}

	r.purge(ctx)
	r.logger.InfoContext(ctx, "flag updated", logger.FlagKey(updated.Key))
	return updated, nil
}

// DeleteDefinition removes a flag together with its overrides.
func (r *Registry) DeleteDefinition(ctx context.Context, key string) (err error) {
	defer func(start time.Time) { r.metrics.observe("delete_definition", start, err) }(time.Now())

	if key == "" {
		return errors.Join(ErrInvalidInput, errors.New("flag key is required"))
	}

	if err = r.flags.Delete(ctx, key); err != nil {
		if errors.Is(err, ErrFlagNotFound) {
			return ErrFlagNotFound
		}
		return r.storageError(ctx, "delete flag", err)
	}

	r.purge(ctx)
	r.logger.InfoContext(ctx, "flag deleted", logger.FlagKey(key))
	return nil
}

// canonicalOverrides lower-cases tenant ids so lookups match evaluated ids.
func canonicalOverrides(overrides []Override) ([]Override, error) {
	if overrides == nil {
		return nil, nil
	}
	out := make([]Override, len(overrides))
	for i, o := range overrides {
		id, err := parseTenantID(o.TenantID)
		if err != nil {
			return nil, errors.Join(ErrInvalidFlag, err)
		}
		out[i] = Override{TenantID: id.String(), Value: o.Value.Clone()}
	}
	return out, nil
}
