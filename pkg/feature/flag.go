package feature

import (
	"slices"
	"time"
)

// Type is the evaluation kind of a flag.
type Type string

const (
	TypeBoolean    Type = "boolean"
	TypePercentage Type = "percentage"
	TypeVariant    Type = "variant"
)

// Valid reports whether t is a known flag type.
func (t Type) Valid() bool {
	switch t {
	case TypeBoolean, TypePercentage, TypeVariant:
		return true
	}
	return false
}

// Override pins a flag value for a single tenant.
type Override struct {
	TenantID string `json:"tenantId"`
	Value    Value  `json:"value"`
}

// Definition is a flag as stored in the registry.
type Definition struct {
	Key             string     `json:"key"`
	Description     string     `json:"description,omitempty"`
	Type            Type       `json:"type"`
	DefaultValue    Value      `json:"defaultValue"`
	Overrides       []Override `json:"overrides"`
	PlanRequirement string     `json:"planRequirement,omitempty"`
	Version         int64      `json:"version"`
	CreatedAt       time.Time  `json:"createdAt,omitzero"`
	UpdatedAt       time.Time  `json:"updatedAt,omitzero"`
}

// Override returns the first override registered for tenantID.
func (d Definition) Override(tenantID string) (Override, bool) {
	for _, o := range d.Overrides {
		if o.TenantID == tenantID {
			return o, true
		}
	}
	return Override{}, false
}

// Clone returns a deep copy of the definition.
func (d Definition) Clone() Definition {
	c := d
	c.DefaultValue = d.DefaultValue.Clone()
	if d.Overrides != nil {
		c.Overrides = make([]Override, len(d.Overrides))
		for i, o := range d.Overrides {
			c.Overrides[i] = Override{TenantID: o.TenantID, Value: o.Value.Clone()}
		}
	}
	return c
}

// Result is the evaluation of one flag for one tenant.
type Result struct {
	Key             string  `json:"key"`
	Type            Type    `json:"type"`
	DefaultValue    Value   `json:"defaultValue"`
	PlanRequirement *string `json:"planRequirement"`
	OverrideValue   Value   `json:"overrideValue"`
	Eligible        bool    `json:"eligible"`
	EffectiveValue  Value   `json:"effectiveValue"`
}

func cloneResults(results []Result) []Result {
	out := slices.Clone(results)
	for i := range out {
		out[i].DefaultValue = out[i].DefaultValue.Clone()
		out[i].OverrideValue = out[i].OverrideValue.Clone()
		out[i].EffectiveValue = out[i].EffectiveValue.Clone()
		if p := out[i].PlanRequirement; p != nil {
			req := *p
			out[i].PlanRequirement = &req
		}
	}
	return out
}

func sortDefinitions(defs []Definition) {
	slices.SortFunc(defs, func(a, b Definition) int {
		switch {
		case a.Key < b.Key:
			return -1
		case a.Key > b.Key:
			return 1
		}
		return 0
	})
}
