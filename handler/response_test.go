package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/akademate/handler"
)

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("writes the value as body", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		err := handler.JSON(map[string]any{"flags": []string{"a"}}).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"flags":["a"]}`, rec.Body.String())
	})

	t.Run("custom status", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		err := handler.JSON(struct{}{}, handler.WithJSONStatus(http.StatusCreated)).Render(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("encoding failure writes nothing", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		err := handler.JSON(map[string]any{"ch": make(chan int)}).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Error(t, err)
		assert.Empty(t, rec.Body.String())
		assert.Empty(t, rec.Header().Get("Content-Type"))
	})
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"http error with message", handler.ErrNotFound.WithMessage("Flag not found"), http.StatusNotFound, `{"error":"Flag not found"}`},
		{"http error without message", handler.ErrConflict, http.StatusConflict, `{"error":"Conflict"}`},
		{"wrapped http error", errors.Join(errors.New("cause"), handler.ErrBadRequest.WithMessage("Invalid request")), http.StatusBadRequest, `{"error":"Invalid request"}`},
		{"plain error hides internals", errors.New("pq: connection refused"), http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			require.NoError(t, handler.JSONError(tt.err).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, handler.Empty().Render(rec, httptest.NewRequest(http.MethodDelete, "/", nil)))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Empty(t, rec.Header().Get("Content-Type"))
}

func TestContext(t *testing.T) {
	t.Parallel()

	type key struct{}
	base, cancel := context.WithCancel(context.WithValue(context.Background(), key{}, "value"))
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(base)
	rec := httptest.NewRecorder()

	ctx := handler.NewContext(rec, req)
	assert.Same(t, req, ctx.Request())
	assert.Equal(t, rec, ctx.ResponseWriter())
	assert.Equal(t, "value", ctx.Value(key{}))
	require.NoError(t, ctx.Err())

	cancel()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestError(t *testing.T) {
	t.Parallel()

	h := handler.HandlerFunc[handler.Context, struct{}](func(handler.Context, struct{}) handler.Response {
		return handler.Error(handler.ErrConflict.WithMessage("Version conflict"))
	})

	rec := httptest.NewRecorder()
	handler.Wrap(h)(rec, httptest.NewRequest(http.MethodPatch, "/", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"Version conflict"}`, rec.Body.String())
}
