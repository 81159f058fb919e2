package flagfile

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/akademate/pkg/feature"
	"github.com/dmitrymomot/akademate/pkg/tenant"
)

//go:embed schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// File is a parsed seed file.
type File struct {
	Tenants []TenantEntry `json:"tenants"`
	Flags   []FlagEntry   `json:"flags"`
}

// TenantEntry describes a tenant to store. Active defaults to true.
type TenantEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Plan   string `json:"plan"`
	Active *bool  `json:"active"`
}

// FlagEntry describes a flag definition with its initial overrides.
type FlagEntry struct {
	Key             string          `json:"key"`
	Description     string          `json:"description"`
	Type            feature.Type    `json:"type"`
	Default         feature.Value   `json:"default"`
	PlanRequirement string          `json:"planRequirement"`
	Overrides       []OverrideEntry `json:"overrides"`
}

// OverrideEntry pins a flag value for one tenant.
type OverrideEntry struct {
	TenantID string        `json:"tenantId"`
	Value    feature.Value `json:"value"`
}

// Load reads and parses the seed file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}
	return Parse(data)
}

// Parse decodes a YAML (or JSON) seed document and checks it against the
// embedded JSON schema.
func Parse(data []byte) (*File, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidFile, err)
	}
	if doc == nil {
		return &File{}, nil
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Join(ErrInvalidFile, err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, errors.Join(ErrInvalidFile, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, errors.Join(ErrInvalidFile, errors.New(strings.Join(msgs, "; ")))
	}

	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, errors.Join(ErrInvalidFile, err)
	}
	return &f, nil
}

// Definitions converts the flag entries into registry definitions.
func (f *File) Definitions() []feature.Definition {
	defs := make([]feature.Definition, 0, len(f.Flags))
	for _, e := range f.Flags {
		def := feature.Definition{
			Key:             e.Key,
			Description:     e.Description,
			Type:            e.Type,
			DefaultValue:    e.Default,
			PlanRequirement: e.PlanRequirement,
		}
		for _, o := range e.Overrides {
			def.Overrides = append(def.Overrides, feature.Override{
				TenantID: strings.ToLower(o.TenantID),
				Value:    o.Value,
			})
		}
		defs = append(defs, def)
	}
	return defs
}

// TenantList converts the tenant entries.
func (f *File) TenantList() ([]tenant.Tenant, error) {
	out := make([]tenant.Tenant, 0, len(f.Tenants))
	for i, e := range f.Tenants {
		id, err := uuid.Parse(e.ID)
		if err != nil {
			return nil, errors.Join(ErrInvalidFile, fmt.Errorf("tenants[%d].id: %w", i, err))
		}
		active := true
		if e.Active != nil {
			active = *e.Active
		}
		out = append(out, tenant.Tenant{ID: id, Name: e.Name, Plan: e.Plan, Active: active})
	}
	return out, nil
}
