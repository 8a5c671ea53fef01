// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// TierName identifies one storage backend in the fallback chain.
type TierName string

const (
	TierMemory   TierName = "memory"
	TierSession  TierName = "session"
	TierDevice   TierName = "device"
	TierDatabase TierName = "database"
	TierCache    TierName = "cache"
	TierRemote   TierName = "remote"
)

// StorageResult is the uniform outcome of every tier operation. Tiers never
// return errors past their boundary; failures are reported here.
type StorageResult struct {
	Success   bool          `json:"success"`
	Tier      TierName      `json:"tier"`
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration"`
	Size      int           `json:"size"`

	// Err holds the failure cause; Kind is its classification.
	Err     error     `json:"-"`
	Message string    `json:"message,omitempty"`
	Kind    ErrorKind `json:"kind,omitempty"`

	// Warning is set when the operation succeeded in a degraded way
	// (e.g. written to the fallback cache only).
	Warning string `json:"warning,omitempty"`

	// Repaired is set when the returned snapshot went through repair.
	Repaired bool `json:"repaired,omitempty"`

	// Snapshot is the loaded snapshot. Nil for save and failed loads.
	Snapshot *Snapshot `json:"snapshot,omitempty"`

	// Version is the version the tier holds after the operation.
	Version int64 `json:"version,omitempty"`
}

// Fail fills the failure fields of r from err.
func (r StorageResult) Fail(err error) StorageResult {
	r.Success = false
	r.Err = err
	r.Kind = KindOf(err)
	if err != nil {
		r.Message = err.Error()
	}
	return r
}

// SaveOptions tunes a single tier write.
type SaveOptions struct {
	// Delta, when set, lets tiers that support it store the patch instead
	// of the full snapshot.
	Delta *Delta

	// Emergency stores the snapshot in the tier's emergency slot instead of
	// the canonical record.
	Emergency bool
}

// LoadOptions tunes a single tier read.
type LoadOptions struct {
	// Backup selects the n-th most recent backup (1-based). Zero reads the
	// canonical record.
	Backup int

	// Emergency reads the emergency slot.
	Emergency bool
}

// StoredRecord is the persisted layout of one user's canonical record.
type StoredRecord struct {
	Snapshot     Snapshot `json:"snapshot"`
	Version      int64    `json:"version"`
	LastModified int64    `json:"lastModified"`
}

// BackupRecord is one entry of the bounded backup ring.
type BackupRecord struct {
	Snapshot  Snapshot `json:"snapshot"`
	Timestamp int64    `json:"timestamp"`
	Version   int64    `json:"version"`
}

// NewStoredRecord wraps s into its persisted layout.
func NewStoredRecord(s Snapshot) StoredRecord {
	return StoredRecord{Snapshot: s, Version: s.Version, LastModified: s.LastModified}
}

// NewBackupRecord wraps s into a backup entry taken at t.
func NewBackupRecord(s Snapshot, t time.Time) BackupRecord {
	return BackupRecord{Snapshot: s, Timestamp: t.UnixMilli(), Version: s.Version}
}
