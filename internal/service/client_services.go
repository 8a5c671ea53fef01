package service

import (
	"github.com/MKhiriev/go-save-keeper/internal/config"
	"github.com/MKhiriev/go-save-keeper/internal/crypto"
	"github.com/MKhiriev/go-save-keeper/internal/delta"
	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/store"
	"github.com/MKhiriev/go-save-keeper/internal/validators"
)

// ClientServices groups the services of the client runtime. Orchestrator,
// Reconciler and ProgressService share one codec and one delta history.
type ClientServices struct {
	Orchestrator    SaveOrchestrator
	Reconciler      SyncReconciler
	ProgressService ProgressService
	SyncJob         SyncJob
}

// NewClientServices wires the services over the tier chain. remote and signer
// may be nil: without a remote store no reconciliation takes place, without
// a signer emergency backups are kept unsigned.
func NewClientServices(storages *store.ClientStorages, remote store.RemoteClient, signer crypto.Signer, cfg *config.ClientConfig, logger *logger.Logger) *ClientServices {
	integrity := validators.NewSnapshotValidator()
	codec := delta.NewCodec()
	history := delta.NewHistory(cfg.Orchestrator.DeltaWindow)
	merger := NewMerger()

	// a nil *FileTier must not end up as a non-nil store.Tier
	var device store.Tier
	if storages.Device != nil {
		device = storages.Device
	}

	orchestrator := NewSaveOrchestrator(storages.Tiers, OrchestratorDeps{
		Integrity: integrity,
		Merger:    merger,
		Codec:     codec,
		History:   history,
		Device:    device,
		Signer:    signer,
	}, OrchestratorOptions{
		Intervals:      cfg.Orchestrator.Intervals,
		BackupThrottle: cfg.Orchestrator.BackupThrottle,
		FlushTimeout:   cfg.Orchestrator.FlushTimeout,
		ClientID:       cfg.App.ClientID,
	}, logger)

	var reconciler SyncReconciler
	if remote != nil {
		reconciler = NewSyncReconciler(ReconcilerDeps{
			Remote:    remote,
			Records:   storages.SyncRecords,
			Integrity: integrity,
			Codec:     codec,
			Merger:    merger,
		}, cfg.Orchestrator.ConflictStrategy, cfg.App.ClientID, logger)
	}

	progress := NewProgressService(storages.Tiers, ProgressDeps{
		Orchestrator: orchestrator,
		Reconciler:   reconciler,
		Integrity:    integrity,
		Codec:        codec,
		History:      history,
		Remote:       remote,
		Device:       device,
	}, logger)

	return &ClientServices{
		Orchestrator:    orchestrator,
		Reconciler:      reconciler,
		ProgressService: progress,
		SyncJob:         NewSyncJob(progress, logger),
	}
}
