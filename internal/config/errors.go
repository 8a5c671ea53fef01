package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidConfig indicates a structurally impossible value in the
	// merged config (for example, a negative retention).
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidAdapterConfigs indicates invalid remote adapter settings
	// (for example, a remote tier without an address).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an enabled tier without its location).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing encryption secret for the device tier).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidIdentityConfigs indicates that neither a user id nor a
	// token carrying one was supplied.
	ErrInvalidIdentityConfigs = errors.New("invalid identity configuration")
	// ErrInvalidOrchestratorConfigs indicates an unknown tier name or
	// conflict strategy.
	ErrInvalidOrchestratorConfigs = errors.New("invalid orchestrator configuration")
	// ErrInvalidCacheConfigs indicates an enabled cache tier without an
	// address.
	ErrInvalidCacheConfigs = errors.New("invalid cache configuration")
	// ErrInvalidServerConfigs indicates missing server listen or token
	// settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
