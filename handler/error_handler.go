package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/akademate/pkg/binder"
	"github.com/dmitrymomot/akademate/pkg/logger"
	"github.com/dmitrymomot/akademate/pkg/requestid"
)

// ErrorClassifier maps an error returned by a binder, a handler or a
// response to the HTTPError sent to the client.
type ErrorClassifier func(err error) HTTPError

// ClassifyError is the default ErrorClassifier. HTTPErrors pass through,
// binding failures become 400 or 415 and everything else is a 500.
func ClassifyError(err error) HTTPError {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return ErrUnsupportedMedia
	case errors.Is(err, binder.ErrInvalidJSON),
		errors.Is(err, binder.ErrFailedToParseQuery),
		errors.Is(err, binder.ErrFailedToParsePath):
		return ErrBadRequest
	}
	return ErrInternalServerError
}

// NewErrorHandler creates an error handler that logs the failure and
// writes {"error": message}. Client errors are logged at warn level and
// server errors at error level. A nil classify uses ClassifyError.
func NewErrorHandler(log *slog.Logger, classify ErrorClassifier) ErrorHandler[Context] {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if classify == nil {
		classify = ClassifyError
	}
	log = log.With(logger.Component("http.error_handler"))

	return func(ctx Context, err error) {
		r := ctx.Request()
		httpErr := classify(err)

		level := slog.LevelError
		if httpErr.Code < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request failed",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			slog.Int("status_code", httpErr.Code),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		if renderErr := JSONError(httpErr).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to write error response", logger.Error(renderErr))
		}
	}
}
