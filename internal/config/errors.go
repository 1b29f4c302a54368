package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates an unknown backend or a missing
	// DSN or directory for the selected backend.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSyncConfigs indicates a non-positive max batch size or a
	// malformed scope spec.
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidServerConfigs indicates a missing listen address or timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidWorkerConfigs indicates a janitor without namespace TTL.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)

// ErrReadingEnv wraps failures to convert an environment variable.
var ErrReadingEnv = errors.New("error reading env configs")
