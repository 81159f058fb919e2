package binder

import "net/http"

// Query creates a binder for URL query parameters using the `query` tag.
//
//	type listRequest struct {
//		TenantID string   `query:"tenantId"`
//		Keys     []string `query:"key"`
//	}
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}
