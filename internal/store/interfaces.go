// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-save-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Tier is one backend of the fallback chain. Implementations never panic and
// never return errors past their boundary: every failure is reported through
// the returned [models.StorageResult] or a false flag.
type Tier interface {
	// Name identifies the tier in results, logs and metrics.
	Name() models.TierName

	// Save writes snapshot as the user's canonical record (or into the
	// emergency slot with opts.Emergency). The previous canonical record is
	// pushed into the backup ring, which is pruned to the retention.
	Save(ctx context.Context, userID string, snapshot models.Snapshot, opts models.SaveOptions) models.StorageResult

	// Load reads the canonical record, the n-th most recent backup
	// (opts.Backup) or the emergency slot (opts.Emergency). The snapshot is
	// returned as stored; callers validate and repair it.
	Load(ctx context.Context, userID string, opts models.LoadOptions) models.StorageResult

	// Delete removes every record of the user. It reports false only when
	// the tier failed; deleting an unknown user succeeds.
	Delete(ctx context.Context, userID string) bool

	// Exists reports whether a canonical record is stored under key.
	Exists(ctx context.Context, key string) bool

	// Clear removes every record of every user.
	Clear(ctx context.Context) bool
}

// CacheClient is the narrow surface of the networked cache used by the cache
// tier. Get and LRange report absent keys as [ErrCacheMiss] and an empty
// slice respectively.
type CacheClient interface {
	Ping(ctx context.Context) error
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// RPush appends value to the list under key and trims the list to its
	// newest keep entries.
	RPush(ctx context.Context, key string, value []byte, keep int) error
	LRange(ctx context.Context, key string) ([][]byte, error)

	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error

	Close() error
}

// RemoteClient is the authoritative remote store as seen by the remote tier
// and the sync reconciler.
type RemoteClient interface {
	SaveProgress(ctx context.Context, snapshot models.Snapshot) (models.RemoteMeta, error)
	SaveDelta(ctx context.Context, delta models.Delta) (models.RemoteMeta, error)
	LoadProgress(ctx context.Context, userID string) (models.Snapshot, error)
	LoadMeta(ctx context.Context, userID string) (models.RemoteMeta, error)
	DeleteProgress(ctx context.Context, userID string) error
}

// ProgressRepository is the server-side store of canonical snapshots.
type ProgressRepository interface {
	// SaveProgress stores snapshot when its version is newer than the stored
	// one and moves the previous record into the backup history. A stale
	// version yields [models.ErrVersionConflict].
	SaveProgress(ctx context.Context, snapshot models.Snapshot) (models.RemoteMeta, error)
	LoadProgress(ctx context.Context, userID string) (models.Snapshot, error)
	LoadMeta(ctx context.Context, userID string) (models.RemoteMeta, error)
	LoadBackups(ctx context.Context, userID string) ([]models.BackupRecord, error)
	DeleteProgress(ctx context.Context, userID string) error
}

// SyncRecordRepository persists the reconciler's bookkeeping.
type SyncRecordRepository interface {
	SaveSyncRecord(ctx context.Context, record models.SyncRecord) error
	// LastSyncRecord returns [models.ErrNotFound] for a user never synced.
	LastSyncRecord(ctx context.Context, userID string) (models.SyncRecord, error)
}
