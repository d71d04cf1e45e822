package repository

import "errors"

// Sentinel kinds for store construction errors.
var (
	ErrUnknownDriver = errors.New("unknown store driver")
	ErrMissingDSN    = errors.New("missing connection settings for store driver")
	ErrNilClient     = errors.New("redis client cannot be nil")
)
