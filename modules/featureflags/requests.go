package featureflags

import (
	"github.com/dmitrymomot/akademate/pkg/feature"
)

type evaluateRequest struct {
	TenantID string `query:"tenantId"`
}

type evaluateFlagRequest struct {
	Key      string `path:"key" query:"-"`
	TenantID string `path:"-" query:"tenantId"`
}

type setOverrideRequest struct {
	TenantID string        `json:"tenantId"`
	Key      string        `json:"key"`
	Value    feature.Value `json:"value"`
}

type removeOverrideRequest struct {
	Key      string `path:"key"`
	TenantID string `path:"tenantId"`
}

type definitionRequest struct {
	Key             string             `path:"key" json:"key"`
	Description     string             `path:"-" json:"description"`
	Type            feature.Type       `path:"-" json:"type"`
	DefaultValue    feature.Value      `path:"-" json:"defaultValue"`
	PlanRequirement string             `path:"-" json:"planRequirement"`
	Overrides       []feature.Override `path:"-" json:"overrides"`
}

func (r definitionRequest) definition() feature.Definition {
	return feature.Definition{
		Key:             r.Key,
		Description:     r.Description,
		Type:            r.Type,
		DefaultValue:    r.DefaultValue,
		PlanRequirement: r.PlanRequirement,
		Overrides:       r.Overrides,
	}
}

type definitionKeyRequest struct {
	Key string `path:"key"`
}

type flagsResponse struct {
	Flags []feature.Result `json:"flags"`
}

type overrideResponse struct {
	OverrideValue feature.Value `json:"overrideValue"`
}

type definitionsResponse struct {
	Definitions []feature.Definition `json:"definitions"`
}
