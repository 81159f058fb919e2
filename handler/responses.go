package handler

import "net/http"

// statusResponse writes a status line with no body.
type statusResponse int

func (s statusResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(int(s))
	return nil
}

// Empty responds 204 No Content.
func Empty() Response { return statusResponse(http.StatusNoContent) }

// Status responds with code and no body.
func Status(code int) Response { return statusResponse(code) }

// errorResponse defers to the error handler configured on Wrap.
type errorResponse struct{ err error }

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error { return e.err }

// Error returns a response that hands err to the wrapper's error handler,
// which logs and renders it.
func Error(err error) Response { return errorResponse{err: err} }
