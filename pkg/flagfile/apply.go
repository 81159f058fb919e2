package flagfile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/akademate/pkg/feature"
	"github.com/dmitrymomot/akademate/pkg/logger"
	"github.com/dmitrymomot/akademate/pkg/tenant"
)

// Catalogue is the registry surface used to upsert flags.
type Catalogue interface {
	CreateDefinition(ctx context.Context, def feature.Definition) (feature.Definition, error)
	UpdateDefinition(ctx context.Context, def feature.Definition) (feature.Definition, error)
	SetOverride(ctx context.Context, tenantID, key string, value feature.Value) (feature.Value, error)
	PlanRanks() feature.PlanRanks
}

// Summary counts what Apply wrote.
type Summary struct {
	Tenants   int
	Created   int
	Updated   int
	Overrides int
}

func (s Summary) attrs() []any {
	return []any{
		slog.Int("tenants", s.Tenants),
		slog.Int("created", s.Created),
		slog.Int("updated", s.Updated),
		slog.Int("overrides", s.Overrides),
	}
}

// Apply upserts the tenants and flags of f. Existing flags get their
// definition replaced and every listed override set; overrides missing from
// the file are kept. A nil saver skips the tenants.
//
// The whole file is validated before the first write, so a rejected file
// leaves the catalogue as it was.
func Apply(ctx context.Context, f *File, catalogue Catalogue, saver tenant.Saver, log *slog.Logger) (Summary, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	var sum Summary

	tenants, defs, err := f.validate(catalogue.PlanRanks())
	if err != nil {
		return sum, errors.Join(ErrApply, err)
	}

	if saver != nil {
		for _, t := range tenants {
			if err := saver.Save(ctx, &t); err != nil {
				return sum, errors.Join(ErrApply, fmt.Errorf("tenant %s: %w", t.ID, err))
			}
			sum.Tenants++
		}
	}

	for _, def := range defs {
		_, err := catalogue.CreateDefinition(ctx, def)
		switch {
		case err == nil:
			sum.Created++
			sum.Overrides += len(def.Overrides)
			continue
		case !errors.Is(err, feature.ErrFlagExists):
			return sum, errors.Join(ErrApply, fmt.Errorf("flag %q: %w", def.Key, err))
		}

		if _, err := catalogue.UpdateDefinition(ctx, def); err != nil {
			return sum, errors.Join(ErrApply, fmt.Errorf("flag %q: %w", def.Key, err))
		}
		sum.Updated++
		for _, o := range def.Overrides {
			if _, err := catalogue.SetOverride(ctx, o.TenantID, def.Key, o.Value); err != nil {
				return sum, errors.Join(ErrApply, fmt.Errorf("flag %q override %s: %w", def.Key, o.TenantID, err))
			}
			sum.Overrides++
		}
	}

	log.InfoContext(ctx, "flag file applied", sum.attrs()...)
	return sum, nil
}

// validate converts every entry of f and checks it against the rules the
// registry enforces on writes.
func (f *File) validate(ranks feature.PlanRanks) ([]tenant.Tenant, []feature.Definition, error) {
	tenants, err := f.TenantList()
	if err != nil {
		return nil, nil, err
	}
	for i, t := range tenants {
		if t.ID == uuid.Nil || t.Plan == "" {
			return nil, nil, fmt.Errorf("tenants[%d]: %w", i, tenant.ErrInvalidTenant)
		}
	}

	defs := f.Definitions()
	seen := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		if _, dup := seen[def.Key]; dup {
			return nil, nil, fmt.Errorf("flag %q: %w: duplicate key", def.Key, feature.ErrInvalidFlag)
		}
		seen[def.Key] = struct{}{}
		if err := feature.ValidateDefinition(def, ranks); err != nil {
			return nil, nil, fmt.Errorf("flag %q: %w", def.Key, err)
		}
	}
	return tenants, defs, nil
}

// LoadAndApply reads path and applies it.
func LoadAndApply(ctx context.Context, path string, catalogue Catalogue, saver tenant.Saver, log *slog.Logger) (Summary, error) {
	f, err := Load(path)
	if err != nil {
		return Summary{}, err
	}
	if log != nil {
		log = log.With(logger.Component("flagfile"), slog.String("path", path))
	}
	return Apply(ctx, f, catalogue, saver, log)
}
