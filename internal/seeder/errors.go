package seeder

import "errors"

// Sentinel errors for seeding runs.
var (
	ErrUnhealthy        = errors.New("service unhealthy")
	ErrRejected         = errors.New("game rejected")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrVerification     = errors.New("verification failed")
	ErrInvalidConfig    = errors.New("invalid seeder config")
)
