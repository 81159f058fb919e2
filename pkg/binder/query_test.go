package binder_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/akademate/pkg/binder"
)

func TestQuery(t *testing.T) {
	t.Parallel()

	type listRequest struct {
		TenantID string   `query:"tenantId"`
		Keys     []string `query:"key"`
		Limit    *int     `query:"limit"`
		Verbose  bool     `query:"verbose"`
		Ignored  string   `query:"-"`
	}

	t.Run("binds tagged fields", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?tenantId=%203f2b8c1e-9d4a-4e6b-8f1a-2c3d4e5f6a7b%20&key=a,b&key=c&limit=10&verbose=yes&ignored=x", nil)

		var got listRequest
		require.NoError(t, binder.Query()(req, &got))

		assert.Equal(t, "3f2b8c1e-9d4a-4e6b-8f1a-2c3d4e5f6a7b", got.TenantID)
		assert.Equal(t, []string{"a", "b", "c"}, got.Keys)
		require.NotNil(t, got.Limit)
		assert.Equal(t, 10, *got.Limit)
		assert.True(t, got.Verbose)
		assert.Empty(t, got.Ignored)
	})

	t.Run("missing parameters keep zero values", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		var got listRequest
		require.NoError(t, binder.Query()(req, &got))
		assert.Empty(t, got.TenantID)
		assert.Nil(t, got.Limit)
	})

	t.Run("invalid number", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?limit=ten", nil)

		var got listRequest
		err := binder.Query()(req, &got)
		assert.ErrorIs(t, err, binder.ErrFailedToParseQuery)
		assert.Contains(t, err.Error(), "Limit")
	})

	t.Run("invalid target", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		var s string
		assert.ErrorIs(t, binder.Query()(req, &s), binder.ErrFailedToParseQuery)
		assert.ErrorIs(t, binder.Query()(req, nil), binder.ErrFailedToParseQuery)
	})
}
