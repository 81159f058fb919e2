package feature

import "errors"

// Predefined errors for the feature package.
var (
	// ErrInvalidInput indicates a malformed tenant id, flag key or request payload.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTenantNotFound indicates the tenant does not exist.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrFlagNotFound indicates that the requested feature flag was not found.
	ErrFlagNotFound = errors.New("feature flag not found")

	// ErrFlagExists indicates a definition with the same key is already registered.
	ErrFlagExists = errors.New("feature flag already exists")

	// ErrInvalidFlag indicates that the provided flag definition is invalid.
	ErrInvalidFlag = errors.New("invalid feature flag definition")

	// ErrVersionConflict indicates the flag changed between read and write.
	ErrVersionConflict = errors.New("feature flag version conflict")

	// ErrInvalidConfig indicates an unusable combination of registry settings.
	ErrInvalidConfig = errors.New("invalid feature configuration")

	// ErrStorageUnavailable indicates the backing store could not serve the request.
	ErrStorageUnavailable = errors.New("feature storage unavailable")
)
