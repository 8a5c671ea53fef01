// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the raw configuration shared by the client runtime and
// the progress server. It is populated by merging environment variables,
// command-line flags and an optional JSON file; [GetClientConfig] and
// [GetServerConfig] derive validated views with defaults applied.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds keys, token parameters and process identity.
	App App `envPrefix:"APP_"`

	// Identity is the player the client runtime acts for.
	Identity Identity `envPrefix:"IDENTITY_"`

	// Storage holds the local tier locations and the server database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Cache holds the networked cache tier settings.
	Cache Cache `envPrefix:"CACHE_"`

	// Adapter holds the remote progress store endpoint used by the client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Orchestrator tunes the save orchestrator and sync reconciler.
	Orchestrator Orchestrator `envPrefix:"ORCHESTRATOR_"`

	// Server holds listen addresses of the progress server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level secrets and identity.
type App struct {
	// HashKey is the HMAC key for request body integrity checks.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// EncryptionSecret seeds the per-user keys of the device tier.
	// Env: APP_ENCRYPTION_SECRET
	EncryptionSecret string `env:"ENCRYPTION_SECRET"`

	// TokenSignKey signs and verifies JWT tokens on the server.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of tokens issued by the token tool.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is reported by GET /api/version/.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// ClientID is stamped on every delta this client creates.
	// Env: APP_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`

	// MetricsAddress, when set, exposes /metrics of the client runtime.
	// Env: APP_METRICS_ADDRESS
	MetricsAddress string `env:"METRICS_ADDRESS"`
}

// Identity is supplied by the external session collaborator. When only the
// token is given the user id is read from its subject.
type Identity struct {
	// Env: IDENTITY_USER_ID
	UserID string `env:"USER_ID"`
	// Env: IDENTITY_TOKEN
	Token string `env:"TOKEN"`
}

// Storage groups every persistence location.
type Storage struct {
	// DB is the server-side PostgreSQL database.
	DB DB `envPrefix:"DB_"`

	// Local holds the client tier locations.
	Local Local `envPrefix:"LOCAL_"`

	// BackupRetention is the number of backups kept per user and tier.
	// Env: STORAGE_BACKUP_RETENTION
	BackupRetention int `env:"BACKUP_RETENTION"`
}

// DB holds connection settings for the server database.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Local holds client-side storage locations.
type Local struct {
	// SQLiteDSN is the path of the database tier file.
	// Env: STORAGE_LOCAL_SQLITE_DSN
	SQLiteDSN string `env:"SQLITE_DSN"`

	// DeviceDir holds the durable encrypted device tier.
	// Env: STORAGE_LOCAL_DEVICE_DIR
	DeviceDir string `env:"DEVICE_DIR"`

	// SessionDir holds the session tier; a temporary directory is used
	// when empty.
	// Env: STORAGE_LOCAL_SESSION_DIR
	SessionDir string `env:"SESSION_DIR"`
}

// Cache configures the Redis-backed cache tier.
type Cache struct {
	// Env: CACHE_ADDRESS
	Address string `env:"ADDRESS"`
	// Env: CACHE_PASSWORD
	Password string `env:"PASSWORD"`
	// Env: CACHE_DB
	DB int `env:"DB"`

	// OperationTimeout bounds every networked cache call.
	// Env: CACHE_OPERATION_TIMEOUT
	OperationTimeout time.Duration `env:"OPERATION_TIMEOUT"`

	// ProbeInterval is the period of the liveness probe.
	// Env: CACHE_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// Env: CACHE_BACKOFF_BASE
	BackoffBase time.Duration `env:"BACKOFF_BASE"`
	// Env: CACHE_BACKOFF_MAX
	BackoffMax time.Duration `env:"BACKOFF_MAX"`
	// Env: CACHE_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`
}

// Adapter holds the remote progress store endpoint.
type Adapter struct {
	// HTTPAddress is the base URL or host:port of the progress server.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every remote call.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Orchestrator tunes saving and reconciliation.
type Orchestrator struct {
	// Tiers is the ordered list of enabled tiers.
	// Env: ORCHESTRATOR_TIERS (comma separated)
	Tiers []string `env:"TIERS" envSeparator:","`

	// ConflictStrategy is one of client-wins, server-wins, merge.
	// Env: ORCHESTRATOR_CONFLICT_STRATEGY
	ConflictStrategy string `env:"CONFLICT_STRATEGY"`

	// BackupThrottle is the minimum gap between two emergency backups of
	// the same user.
	// Env: ORCHESTRATOR_BACKUP_THROTTLE
	BackupThrottle time.Duration `env:"BACKUP_THROTTLE"`

	// DeltaWindow is the number of deltas kept per user.
	// Env: ORCHESTRATOR_DELTA_WINDOW
	DeltaWindow int `env:"DELTA_WINDOW"`

	// Minimum intervals between saves of each priority.
	// Env: ORCHESTRATOR_LOW_INTERVAL, ORCHESTRATOR_MEDIUM_INTERVAL, ORCHESTRATOR_HIGH_INTERVAL
	LowInterval    time.Duration `env:"LOW_INTERVAL"`
	MediumInterval time.Duration `env:"MEDIUM_INTERVAL"`
	HighInterval   time.Duration `env:"HIGH_INTERVAL"`

	// FlushTimeout bounds the teardown flush to the device tier.
	// Env: ORCHESTRATOR_FLUSH_TIMEOUT
	FlushTimeout time.Duration `env:"FLUSH_TIMEOUT"`
}

// Server holds network and timeout settings of the progress server.
type Server struct {
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds background job settings.
type Workers struct {
	// SyncInterval is the period of the remote reconciliation job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// GetStructuredConfig loads and merges the configuration from environment
// variables, command-line flags and the JSON file, in that order of
// precedence: a field already set by an earlier source is kept.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
