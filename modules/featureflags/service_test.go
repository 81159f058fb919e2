package featureflags_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/akademate/modules/featureflags"
	"github.com/dmitrymomot/akademate/pkg/feature"
	"github.com/dmitrymomot/akademate/pkg/tenant"
)

const proTenant = "11111111-1111-1111-1111-111111111111"

type apiFixture struct {
	server *httptest.Server
	store  *feature.MemoryStore
}

func newAPI(t *testing.T) apiFixture {
	t.Helper()

	store, err := feature.NewMemoryStore(
		feature.Definition{Key: "new-gradebook", Type: feature.TypeBoolean, DefaultValue: feature.Bool(true)},
		feature.Definition{Key: "ai-tutor", Type: feature.TypeBoolean, DefaultValue: feature.Bool(true), PlanRequirement: "enterprise"},
	)
	require.NoError(t, err)

	tenants := tenant.NewMemoryProvider(tenant.Tenant{ID: uuid.MustParse(proTenant), Name: "Acme", Plan: "pro", Active: true})
	registry := feature.NewRegistry(store, tenants, feature.WithCache(feature.NewMemoryCache(16)))

	srv := httptest.NewServer(featureflags.Router(featureflags.RouterOptions{
		Flags: featureflags.NewService(registry),
	}))
	t.Cleanup(srv.Close)

	return apiFixture{server: srv, store: store}
}

func (f apiFixture) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, f.server.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	}
	return resp.StatusCode, decoded
}

func flagByKey(t *testing.T, body map[string]any, key string) map[string]any {
	t.Helper()
	flags, ok := body["flags"].([]any)
	require.True(t, ok, "flags must be an array")
	for _, f := range flags {
		m := f.(map[string]any)
		if m["key"] == key {
			return m
		}
	}
	t.Fatalf("flag %q not in response", key)
	return nil
}

func TestService_Evaluate(t *testing.T) {
	t.Parallel()
	api := newAPI(t)

	t.Run("returns every flag", func(t *testing.T) {
		t.Parallel()
		code, body := api.do(t, http.MethodGet, "/api/feature-flags?tenantId="+proTenant, "")
		require.Equal(t, http.StatusOK, code)

		flags := body["flags"].([]any)
		require.Len(t, flags, 2)
		assert.Equal(t, "ai-tutor", flags[0].(map[string]any)["key"])

		tutor := flagByKey(t, body, "ai-tutor")
		assert.Equal(t, false, tutor["eligible"])
		assert.Equal(t, false, tutor["effectiveValue"])
		assert.Equal(t, "enterprise", tutor["planRequirement"])
		assert.Nil(t, tutor["overrideValue"])

		gradebook := flagByKey(t, body, "new-gradebook")
		assert.Equal(t, true, gradebook["effectiveValue"])
		assert.Nil(t, gradebook["planRequirement"])
	})

	t.Run("invalid tenant id", func(t *testing.T) {
		t.Parallel()
		for _, path := range []string{
			"/api/feature-flags?tenantId=bad",
			"/api/feature-flags",
		} {
			code, body := api.do(t, http.MethodGet, path, "")
			assert.Equal(t, http.StatusBadRequest, code, path)
			assert.Equal(t, map[string]any{"error": "Invalid tenantId"}, body, path)
		}
	})

	t.Run("unknown tenant", func(t *testing.T) {
		t.Parallel()
		code, body := api.do(t, http.MethodGet, "/api/feature-flags?tenantId="+uuid.NewString(), "")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, map[string]any{"error": "Tenant not found"}, body)
	})

	t.Run("single flag", func(t *testing.T) {
		t.Parallel()
		code, body := api.do(t, http.MethodGet, "/api/feature-flags/new-gradebook?tenantId="+proTenant, "")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "new-gradebook", body["key"])
		assert.Equal(t, true, body["eligible"])

		code, body = api.do(t, http.MethodGet, "/api/feature-flags/missing?tenantId="+proTenant, "")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, map[string]any{"error": "Flag not found"}, body)
	})
}

func TestService_SetOverride(t *testing.T) {
	t.Parallel()

	t.Run("override changes the effective value", func(t *testing.T) {
		t.Parallel()
		api := newAPI(t)

		code, body := api.do(t, http.MethodPatch, "/api/feature-flags",
			`{"tenantId":"`+proTenant+`","key":"new-gradebook","value":false}`)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, map[string]any{"overrideValue": false}, body)

		code, body = api.do(t, http.MethodGet, "/api/feature-flags?tenantId="+proTenant, "")
		require.Equal(t, http.StatusOK, code)
		gradebook := flagByKey(t, body, "new-gradebook")
		assert.Equal(t, false, gradebook["overrideValue"])
		assert.Equal(t, false, gradebook["effectiveValue"])
	})

	t.Run("override on a gated flag stays ineligible", func(t *testing.T) {
		t.Parallel()
		api := newAPI(t)

		code, _ := api.do(t, http.MethodPatch, "/api/feature-flags",
			`{"tenantId":"`+proTenant+`","key":"ai-tutor","value":true}`)
		require.Equal(t, http.StatusOK, code)

		_, body := api.do(t, http.MethodGet, "/api/feature-flags?tenantId="+proTenant, "")
		tutor := flagByKey(t, body, "ai-tutor")
		assert.Equal(t, true, tutor["overrideValue"])
		assert.Equal(t, false, tutor["effectiveValue"])
	})

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()
		api := newAPI(t)
		code, body := api.do(t, http.MethodPatch, "/api/feature-flags",
			`{"tenantId":"`+proTenant+`","key":"missing","value":true}`)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, map[string]any{"error": "Flag not found"}, body)
	})

	t.Run("invalid requests", func(t *testing.T) {
		t.Parallel()
		api := newAPI(t)
		for name, payload := range map[string]string{
			"bad tenant":    `{"tenantId":"nope","key":"new-gradebook","value":true}`,
			"empty key":     `{"tenantId":"` + proTenant + `","key":"","value":true}`,
			"broken json":   `{"tenantId":`,
			"unknown field": `{"tenantId":"` + proTenant + `","key":"new-gradebook","value":true,"extra":1}`,
		} {
			code, body := api.do(t, http.MethodPatch, "/api/feature-flags", payload)
			assert.Equal(t, http.StatusBadRequest, code, name)
			assert.Equal(t, map[string]any{"error": "Invalid request"}, body, name)
		}
	})

	t.Run("remove override", func(t *testing.T) {
		t.Parallel()
		api := newAPI(t)

		code, _ := api.do(t, http.MethodPatch, "/api/feature-flags",
			`{"tenantId":"`+proTenant+`","key":"new-gradebook","value":false}`)
		require.Equal(t, http.StatusOK, code)

		code, _ = api.do(t, http.MethodDelete, "/api/feature-flags/new-gradebook/overrides/"+proTenant, "")
		require.Equal(t, http.StatusNoContent, code)

		def, err := api.store.Get(context.Background(), "new-gradebook")
		require.NoError(t, err)
		assert.Empty(t, def.Overrides)

		code, body := api.do(t, http.MethodDelete, "/api/feature-flags/missing/overrides/"+proTenant, "")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, map[string]any{"error": "Flag not found"}, body)
	})
}

func TestService_Definitions(t *testing.T) {
	t.Parallel()
	api := newAPI(t)

	code, body := api.do(t, http.MethodPost, "/api/feature-flags/definitions",
		`{"key":"beta-rollout","type":"percentage","defaultValue":25,"description":"Staged rollout"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "beta-rollout", body["key"])
	assert.EqualValues(t, 1, body["version"])

	code, body = api.do(t, http.MethodPost, "/api/feature-flags/definitions",
		`{"key":"beta-rollout","type":"boolean","defaultValue":true}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, map[string]any{"error": "Flag already exists"}, body)

	code, body = api.do(t, http.MethodPost, "/api/feature-flags/definitions",
		`{"key":"too-much","type":"percentage","defaultValue":150}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, map[string]any{"error": "Invalid flag definition"}, body)

	code, body = api.do(t, http.MethodPut, "/api/feature-flags/definitions/beta-rollout",
		`{"type":"percentage","defaultValue":100}`)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 100, body["defaultValue"])
	assert.EqualValues(t, 2, body["version"])

	code, body = api.do(t, http.MethodGet, "/api/feature-flags/definitions/beta-rollout", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "percentage", body["type"])

	code, body = api.do(t, http.MethodGet, "/api/feature-flags/definitions", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["definitions"], 3)

	code, _ = api.do(t, http.MethodDelete, "/api/feature-flags/definitions/beta-rollout", "")
	assert.Equal(t, http.StatusNoContent, code)

	code, body = api.do(t, http.MethodDelete, "/api/feature-flags/definitions/beta-rollout", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, map[string]any{"error": "Flag not found"}, body)
}

type failingRegistry struct {
	featureflags.Registry
}

func (failingRegistry) Evaluate(context.Context, string) ([]feature.Result, error) {
	return nil, errors.Join(feature.ErrStorageUnavailable, errors.New("dial tcp 10.0.0.1:5432: connection refused"))
}

func TestService_StorageFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(featureflags.Router(featureflags.RouterOptions{
		Flags: featureflags.NewService(failingRegistry{}),
	}))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/api/feature-flags?tenantId=" + proTenant)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, map[string]any{"error": "Internal server error"}, body)
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r := featureflags.Router(featureflags.RouterOptions{Health: ok, Metrics: ok})

	for path, want := range map[string]int{
		"/health/live":       http.StatusOK,
		"/metrics":           http.StatusOK,
		"/health/ready":      http.StatusNotFound,
		"/api/feature-flags": http.StatusNotFound,
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rec.Code, path)
	}
}
