package redis

import "errors"

// Connection errors.
var (
	ErrEmptyConnectionURL           = errors.New("redis: connection URL is empty, set REDIS_URL")
	ErrFailedToParseRedisConnString = errors.New("redis: invalid connection URL")
	ErrRedisNotReady                = errors.New("redis: server not reachable")
	ErrHealthcheckFailed            = errors.New("redis: ping failed")
)

// Storage errors.
var (
	ErrStorageOperation = errors.New("redis: storage operation failed")
	ErrEmptyPrefix      = errors.New("redis: key prefix is empty")
)
