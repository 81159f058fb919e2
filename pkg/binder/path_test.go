package binder_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/akademate/pkg/binder"
)

type overridePath struct {
	Key      string `path:"key"`
	TenantID string `path:"tenantId"`
	Version  *int64 `path:"version"`
	Note     string `path:"-"`
}

func staticParams(params map[string]string) binder.PathExtractor {
	return func(_ *http.Request, name string) string { return params[name] }
}

func TestPath(t *testing.T) {
	t.Parallel()

	t.Run("binds tagged parameters", func(t *testing.T) {
		t.Parallel()
		extract := staticParams(map[string]string{
			"key":      "beta-rollout",
			"tenantId": " 3f2b8c1e-9d4a-4e6b-8f1a-2c3d4e5f6a7b ",
			"version":  "7",
			"Note":     "ignored",
		})

		got := overridePath{Note: "kept"}
		require.NoError(t, binder.Path(extract)(httptest.NewRequest(http.MethodDelete, "/", nil), &got))

		assert.Equal(t, "beta-rollout", got.Key)
		assert.Equal(t, "3f2b8c1e-9d4a-4e6b-8f1a-2c3d4e5f6a7b", got.TenantID)
		require.NotNil(t, got.Version)
		assert.Equal(t, int64(7), *got.Version)
		assert.Equal(t, "kept", got.Note)
	})

	t.Run("missing parameters keep zero values", func(t *testing.T) {
		t.Parallel()
		var got overridePath
		require.NoError(t, binder.Path(staticParams(nil))(httptest.NewRequest(http.MethodGet, "/", nil), &got))
		assert.Empty(t, got.Key)
		assert.Nil(t, got.Version)
	})

	t.Run("untagged fields use the lower-cased name", func(t *testing.T) {
		t.Parallel()
		var got struct{ Slug string }
		require.NoError(t, binder.Path(staticParams(map[string]string{"slug": "new-gradebook"}))(httptest.NewRequest(http.MethodGet, "/", nil), &got))
		assert.Equal(t, "new-gradebook", got.Slug)
	})

	t.Run("invalid number", func(t *testing.T) {
		t.Parallel()
		var got overridePath
		err := binder.Path(staticParams(map[string]string{"version": "seven"}))(httptest.NewRequest(http.MethodGet, "/", nil), &got)
		assert.ErrorIs(t, err, binder.ErrFailedToParsePath)
		assert.Contains(t, err.Error(), "Version")
	})

	t.Run("bad targets", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		var s string

		assert.ErrorIs(t, binder.Path(nil)(req, &overridePath{}), binder.ErrFailedToParsePath)
		assert.ErrorIs(t, binder.Path(staticParams(nil))(req, nil), binder.ErrFailedToParsePath)
		assert.ErrorIs(t, binder.Path(staticParams(nil))(req, overridePath{}), binder.ErrFailedToParsePath)
		assert.ErrorIs(t, binder.Path(staticParams(nil))(req, &s), binder.ErrFailedToParsePath)
	})

	t.Run("chi url params", func(t *testing.T) {
		t.Parallel()
		var got overridePath
		r := chi.NewRouter()
		r.Delete("/flags/{key}/overrides/{tenantId}", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, binder.Path(chi.URLParam)(r, &got))
			w.WriteHeader(http.StatusNoContent)
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/flags/ai-tutor/overrides/3f2b8c1e-9d4a-4e6b-8f1a-2c3d4e5f6a7b", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "ai-tutor", got.Key)
		assert.Equal(t, "3f2b8c1e-9d4a-4e6b-8f1a-2c3d4e5f6a7b", got.TenantID)
	})
}
