package featureflags

import (
	"context"

	"github.com/dmitrymomot/akademate/pkg/feature"
)

// Registry is the part of *feature.Registry the HTTP module serves.
type Registry interface {
	Evaluate(ctx context.Context, tenantID string) ([]feature.Result, error)
	EvaluateFlag(ctx context.Context, tenantID, key string) (feature.Result, error)
	SetOverride(ctx context.Context, tenantID, key string, value feature.Value) (feature.Value, error)
	RemoveOverride(ctx context.Context, tenantID, key string) error

	Definitions(ctx context.Context) ([]feature.Definition, error)
	Definition(ctx context.Context, key string) (feature.Definition, error)
	CreateDefinition(ctx context.Context, def feature.Definition) (feature.Definition, error)
	UpdateDefinition(ctx context.Context, def feature.Definition) (feature.Definition, error)
	DeleteDefinition(ctx context.Context, key string) error
}

var _ Registry = (*feature.Registry)(nil)
