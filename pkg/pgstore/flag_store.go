package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/akademate/pkg/feature"
	"github.com/dmitrymomot/akademate/pkg/pg"
)

const flagColumns = `key, description, type, default_value, overrides, plan_requirement, version, created_at, updated_at`

// FlagStore keeps flag definitions in the feature_flags table.
// Overrides are stored as a JSONB array on the flag row and replaced as a
// whole under an optimistic version check.
type FlagStore struct {
	db DBTX
}

var _ feature.FlagStore = (*FlagStore)(nil)

// NewFlagStore creates a store running queries on db.
func NewFlagStore(db DBTX) *FlagStore {
	return &FlagStore{db: db}
}

func (s *FlagStore) List(ctx context.Context) ([]feature.Definition, error) {
	rows, err := s.db.Query(ctx, `SELECT `+flagColumns+` FROM feature_flags ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list flags: %w", err)
	}
	defer rows.Close()

	var defs []feature.Definition
	for rows.Next() {
		def, err := scanFlag(rows)
		if err != nil {
			return nil, fmt.Errorf("list flags: %w", err)
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list flags: %w", err)
	}
	return defs, nil
}

func (s *FlagStore) Get(ctx context.Context, key string) (feature.Definition, error) {
	row := s.db.QueryRow(ctx, `SELECT `+flagColumns+` FROM feature_flags WHERE key = $1`, key)
	def, err := scanFlag(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return feature.Definition{}, feature.ErrFlagNotFound
		}
		return feature.Definition{}, fmt.Errorf("get flag %q: %w", key, err)
	}
	return def, nil
}

func (s *FlagStore) Create(ctx context.Context, def feature.Definition) (feature.Definition, error) {
	overrides, err := encodeOverrides(def.Overrides)
	if err != nil {
		return feature.Definition{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO feature_flags (key, description, type, default_value, overrides, plan_requirement)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+flagColumns,
		def.Key, def.Description, string(def.Type), []byte(def.DefaultValue), overrides, nullable(def.PlanRequirement),
	)
	created, err := scanFlag(row)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return feature.Definition{}, feature.ErrFlagExists
		}
		return feature.Definition{}, fmt.Errorf("create flag %q: %w", def.Key, err)
	}
	return created, nil
}

func (s *FlagStore) Update(ctx context.Context, def feature.Definition) (feature.Definition, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE feature_flags
		SET description = $2, type = $3, default_value = $4, plan_requirement = $5,
		    version = version + 1, updated_at = now()
		WHERE key = $1
		RETURNING `+flagColumns,
		def.Key, def.Description, string(def.Type), []byte(def.DefaultValue), nullable(def.PlanRequirement),
	)
	updated, err := scanFlag(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return feature.Definition{}, feature.ErrFlagNotFound
		}
		return feature.Definition{}, fmt.Errorf("update flag %q: %w", def.Key, err)
	}
	return updated, nil
}

func (s *FlagStore) Delete(ctx context.Context, key string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM feature_flags WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete flag %q: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return feature.ErrFlagNotFound
	}
	return nil
}

func (s *FlagStore) ReplaceOverrides(ctx context.Context, key string, overrides []feature.Override, expectedVersion int64) error {
	encoded, err := encodeOverrides(overrides)
	if err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE feature_flags
		SET overrides = $2, version = version + 1, updated_at = now()
		WHERE key = $1 AND version = $3`,
		key, encoded, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("replace overrides of %q: %w", key, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	err = s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM feature_flags WHERE key = $1)`, key).Scan(&exists)
	if err != nil {
		return fmt.Errorf("replace overrides of %q: %w", key, err)
	}
	if !exists {
		return feature.ErrFlagNotFound
	}
	return feature.ErrVersionConflict
}

func scanFlag(row pgx.Row) (feature.Definition, error) {
	var (
		def          feature.Definition
		typ          string
		defaultValue []byte
		overrides    []byte
		plan         *string
		createdAt    time.Time
		updatedAt    time.Time
	)
	err := row.Scan(&def.Key, &def.Description, &typ, &defaultValue, &overrides, &plan,
		&def.Version, &createdAt, &updatedAt)
	if err != nil {
		return feature.Definition{}, err
	}

	def.Type = feature.Type(typ)
	def.DefaultValue = feature.Value(defaultValue)
	def.CreatedAt = createdAt.UTC()
	def.UpdatedAt = updatedAt.UTC()
	if plan != nil {
		def.PlanRequirement = *plan
	}
	if len(overrides) > 0 {
		if err := json.Unmarshal(overrides, &def.Overrides); err != nil {
			return feature.Definition{}, errors.Join(errors.New("decode overrides"), err)
		}
	}
	if def.Overrides == nil {
		def.Overrides = []feature.Override{}
	}
	return def, nil
}

func encodeOverrides(overrides []feature.Override) ([]byte, error) {
	if overrides == nil {
		overrides = []feature.Override{}
	}
	b, err := json.Marshal(overrides)
	if err != nil {
		return nil, fmt.Errorf("encode overrides: %w", err)
	}
	return b, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
