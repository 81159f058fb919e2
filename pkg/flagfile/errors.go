package flagfile

import "errors"

var (
	ErrInvalidFile = errors.New("invalid flag file")
	ErrReadFile    = errors.New("failed to read flag file")
	ErrApply       = errors.New("failed to apply flag file")
)
