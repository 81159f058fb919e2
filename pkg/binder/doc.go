// Package binder populates request structs from HTTP requests.
//
// Each binder has the signature func(*http.Request, any) error and handles
// one data source, selected by struct tags:
//
//   - JSON(): the request body, using `json` tags. Unknown fields and
//     trailing data are rejected and bodies are capped at DefaultMaxJSONSize.
//   - Query(): URL query parameters, using `query` tags.
//   - Path(extractor): router path parameters, using `path` tags.
//
// Binders are combined with handler.WithBinders; each one fills only the
// fields it owns:
//
//	type getFlagRequest struct {
//		Key      string `path:"key"`
//		TenantID string `query:"tenantId"`
//	}
//
//	router.Get("/{key}", handler.Wrap(getFlag,
//		handler.WithBinders[handler.Context, getFlagRequest](
//			binder.Path(chi.URLParam),
//			binder.Query(),
//		),
//	))
//
// String values are trimmed and stripped of control characters. Binding
// failures wrap one of the package errors (ErrInvalidJSON,
// ErrFailedToParseQuery, ErrFailedToParsePath, ErrUnsupportedMediaType,
// ErrMissingContentType) so callers can map them with errors.Is.
package binder
