package feature_test

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/akademate/pkg/feature"
	"github.com/dmitrymomot/akademate/pkg/tenant"
)

func jsonMarshal(v any) (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}

// mockFlagStore is a testify mock of feature.FlagStore.
type mockFlagStore struct {
	mock.Mock
}

func (m *mockFlagStore) List(ctx context.Context) ([]feature.Definition, error) {
	args := m.Called(ctx)
	defs, _ := args.Get(0).([]feature.Definition)
	return defs, args.Error(1)
}

func (m *mockFlagStore) Get(ctx context.Context, key string) (feature.Definition, error) {
	args := m.Called(ctx, key)
	def, _ := args.Get(0).(feature.Definition)
	return def, args.Error(1)
}

func (m *mockFlagStore) Create(ctx context.Context, def feature.Definition) (feature.Definition, error) {
	args := m.Called(ctx, def)
	out, _ := args.Get(0).(feature.Definition)
	return out, args.Error(1)
}

func (m *mockFlagStore) Update(ctx context.Context, def feature.Definition) (feature.Definition, error) {
	args := m.Called(ctx, def)
	out, _ := args.Get(0).(feature.Definition)
	return out, args.Error(1)
}

func (m *mockFlagStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockFlagStore) ReplaceOverrides(ctx context.Context, key string, overrides []feature.Override, expectedVersion int64) error {
	return m.Called(ctx, key, overrides, expectedVersion).Error(0)
}

// mockTenants is a testify mock of tenant.Provider.
type mockTenants struct {
	mock.Mock
}

func (m *mockTenants) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*tenant.Tenant)
	return t, args.Error(1)
}
