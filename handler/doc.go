// Package handler provides typed HTTP handlers for JSON APIs.
//
// A HandlerFunc receives a Context and a request value already populated
// by binders, and returns a Response. Wrap adapts it to http.HandlerFunc:
//
//	type setOverrideRequest struct {
//		TenantID string          `json:"tenantId"`
//		Key      string          `json:"key"`
//		Value    json.RawMessage `json:"value"`
//	}
//
//	router.Patch("/", handler.Wrap(setOverride,
//		handler.WithBinders[handler.Context, setOverrideRequest](binder.JSON()),
//		handler.WithErrorHandler[handler.Context, setOverrideRequest](errorHandler),
//	))
//
// Responses: JSON(v) writes v as the body, JSONError(err) writes
// {"error": message} using the status of the HTTPError in err's chain, and
// Empty() writes 204.
//
// Binding, nil-response and rendering failures go to the ErrorHandler.
// NewErrorHandler logs them with the request id and renders them through an
// ErrorClassifier, so each API decides which message a failure maps to.
package handler
