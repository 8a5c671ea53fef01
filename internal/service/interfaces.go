// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-save-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=ServerProgressServiceWrapper

// SaveOrchestrator is the single authority accepting save requests. It rate
// limits saves per user and priority, keeps at most one pending save per
// user, lets one save run at a time and fans accepted snapshots out across
// the configured tiers.
type SaveOrchestrator interface {
	// Save validates and repairs req.Snapshot, assigns the next version and
	// writes it to every tier. A request arriving before its priority's
	// interval elapsed, or while another save is running, replaces the
	// user's pending save and is reported with Queued set. Critical
	// requests bypass both checks.
	Save(ctx context.Context, req models.SaveRequest) models.SaveResult

	// CreateEmergencyBackup keeps snapshot as the user's emergency backup.
	// It returns false when the backup was throttled.
	CreateEmergencyBackup(ctx context.Context, userID string, snapshot models.Snapshot) bool

	// EmergencyBackup returns the newest verified in-memory emergency backup
	// of the user.
	EmergencyBackup(userID string) (models.BackupRecord, bool)

	// Forget drops every piece of per-user state: the last accepted
	// snapshot, the pending save, the emergency backup and the delta history.
	Forget(userID string)

	// IsSaving reports whether a save is being written.
	IsSaving() bool

	// LastResult returns the outcome of the most recently finished or
	// queued save, including saves run from the pending slot.
	LastResult() (models.SaveResult, bool)

	// Close stops the pending timers and flushes emergency backups and
	// pending saves to the device tier within the flush timeout.
	Close(ctx context.Context) error
}

// Merger resolves two diverged copies of the same player's state.
type Merger interface {
	// Merge combines local and remote field by field. The result carries
	// version max(local, remote)+1.
	Merge(local, remote models.Snapshot) models.Snapshot
}

// SyncReconciler decides on load whether the local copy, the remote copy or
// a merge of both becomes canonical, and pushes the result back.
type SyncReconciler interface {
	Merger

	// Reconcile compares local (nil when no tier holds a copy) with the
	// remote store and returns the canonical snapshot. The result never
	// carries an error kind that should block the UI: a failing remote
	// yields the local copy with Outcome failed.
	Reconcile(ctx context.Context, userID string, local *models.Snapshot) models.SyncResult
}

// ProgressService is the facade the UI talks to.
type ProgressService interface {
	// Save hands snapshot to the orchestrator with the given priority.
	Save(ctx context.Context, userID string, snapshot models.Snapshot, priority models.SavePriority) models.SaveResult

	// Load reads the newest local copy, recovers a newer emergency backup,
	// replays outstanding deltas, reconciles with the remote store and
	// returns a validated, repaired snapshot. A user with no copy anywhere
	// gets the default state.
	Load(ctx context.Context, userID string) models.LoadResult

	// CreateEmergencyBackup keeps snapshot as the user's emergency backup.
	CreateEmergencyBackup(ctx context.Context, userID string, snapshot models.Snapshot) bool

	// Sync reconciles the newest local copy with the remote store and
	// persists the outcome locally when the remote copy or a merge won.
	Sync(ctx context.Context, userID string) models.SyncResult

	// DeleteUserData removes the user from every tier and the remote store.
	// It reports false when any of them failed.
	DeleteUserData(ctx context.Context, userID string) bool

	IsSaving() bool
	IsLoading() bool

	// LastSaveResult and LastLoadResult return the outcome of the most
	// recent call, false before the first one.
	LastSaveResult() (models.SaveResult, bool)
	LastLoadResult() (models.LoadResult, bool)
}

// SyncJob periodically reconciles the user's progress with the remote store.
type SyncJob interface {
	// Start launches the background loop. A running job is stopped first.
	Start(ctx context.Context, userID string, interval time.Duration)

	// Stop cancels the loop and waits until it has exited.
	Stop()
}

// ServerProgressService is the server-side store of canonical progress
// behind the HTTP API.
type ServerProgressService interface {
	// SaveProgress stores snapshot as the user's canonical copy. Its version
	// must be newer than the stored one.
	SaveProgress(ctx context.Context, userID string, snapshot models.Snapshot) (models.RemoteMeta, error)

	// SaveDelta applies d to the stored copy and stores the result.
	SaveDelta(ctx context.Context, userID string, d models.Delta) (models.RemoteMeta, error)

	LoadProgress(ctx context.Context, userID string) (models.Snapshot, error)
	LoadMeta(ctx context.Context, userID string) (models.RemoteMeta, error)
	DeleteProgress(ctx context.Context, userID string) error
}

// ServerProgressServiceWrapper decorates a ServerProgressService with
// additional behavior such as validation.
type ServerProgressServiceWrapper interface {
	Wrap(ServerProgressService) ServerProgressService
}

// AppInfoService exposes build information of the server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
