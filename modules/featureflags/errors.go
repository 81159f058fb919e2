package featureflags

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/akademate/handler"
	"github.com/dmitrymomot/akademate/pkg/binder"
	"github.com/dmitrymomot/akademate/pkg/feature"
)

var (
	errInvalidTenantID  = handler.NewHTTPError(http.StatusBadRequest, "invalid_tenant_id", "Invalid tenantId")
	errInvalidRequest   = handler.NewHTTPError(http.StatusBadRequest, "invalid_request", "Invalid request")
	errInvalidFlag      = handler.NewHTTPError(http.StatusBadRequest, "invalid_flag", "Invalid flag definition")
	errTenantNotFound   = handler.NewHTTPError(http.StatusNotFound, "tenant_not_found", "Tenant not found")
	errFlagNotFound     = handler.NewHTTPError(http.StatusNotFound, "flag_not_found", "Flag not found")
	errFlagExists       = handler.NewHTTPError(http.StatusConflict, "flag_exists", "Flag already exists")
	errVersionConflict  = handler.NewHTTPError(http.StatusConflict, "version_conflict", "Flag was modified concurrently, retry")
	errUnsupportedMedia = handler.ErrUnsupportedMedia.WithMessage("Content-Type must be application/json")
)

// classifier maps registry and binder errors to HTTP errors. badInput is
// the 400 reported for malformed input on the route.
func classifier(badInput handler.HTTPError) handler.ErrorClassifier {
	return func(err error) handler.HTTPError {
		switch {
		case errors.Is(err, binder.ErrUnsupportedMediaType):
			return errUnsupportedMedia
		case errors.Is(err, binder.ErrInvalidJSON),
			errors.Is(err, binder.ErrMissingContentType),
			errors.Is(err, binder.ErrFailedToParseQuery),
			errors.Is(err, binder.ErrFailedToParsePath),
			errors.Is(err, feature.ErrInvalidInput):
			return badInput
		case errors.Is(err, feature.ErrInvalidFlag):
			return errInvalidFlag
		case errors.Is(err, feature.ErrTenantNotFound):
			return errTenantNotFound
		case errors.Is(err, feature.ErrFlagNotFound):
			return errFlagNotFound
		case errors.Is(err, feature.ErrFlagExists):
			return errFlagExists
		case errors.Is(err, feature.ErrVersionConflict):
			return errVersionConflict
		}
		return handler.ClassifyError(err)
	}
}
