package handler

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrorBody is the JSON document sent for every failed request.
type ErrorBody struct {
	Error string `json:"error"`
}

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	payload, err := json.Marshal(j.body)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(j.status)
	_, err = w.Write(append(payload, '\n'))
	return err
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

// WithJSONStatus sets the HTTP status code. The default is 200.
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// JSON renders v as the response body. The body is marshalled before any
// header is written, so encoding failures reach the error handler intact.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders {"error": message} with the status of err.
// Errors that are not an HTTPError become a 500 with a generic message.
func JSONError(err error) Response {
	httpErr := AsHTTPError(err)
	return &jsonResponse{
		status: httpErr.Code,
		body:   ErrorBody{Error: httpErr.Text()},
	}
}

// AsHTTPError extracts the HTTPError from err's chain, falling back to
// ErrInternalServerError.
func AsHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return ErrInternalServerError
}
