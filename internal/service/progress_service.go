// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-save-keeper/internal/delta"
	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/store"
	"github.com/MKhiriev/go-save-keeper/internal/validators"
	"github.com/MKhiriev/go-save-keeper/models"
)

// ProgressDeps are the collaborators of the ProgressService facade.
// Reconciler, Remote and Device are optional.
type ProgressDeps struct {
	Orchestrator SaveOrchestrator
	Reconciler   SyncReconciler
	Integrity    validators.Integrity
	Codec        *delta.Codec
	History      *delta.History

	// Remote is the authoritative store; DeleteUserData removes the user
	// there too.
	Remote store.RemoteClient

	// Device holds the durable emergency slot checked on load.
	Device store.Tier
}

// progressService is the UI facade. It owns no persistence of its own: saves
// go through the orchestrator, loads read the tier chain and the reconciler.
type progressService struct {
	tiers        []store.Tier
	orchestrator SaveOrchestrator
	reconciler   SyncReconciler
	integrity    validators.Integrity
	codec        *delta.Codec
	history      *delta.History
	remote       store.RemoteClient
	device       store.Tier

	now    func() time.Time
	logger *logger.Logger

	loading atomic.Int32

	mu       sync.Mutex
	lastLoad *models.LoadResult
}

// NewProgressService builds the facade over tiers (in fallback order).
func NewProgressService(tiers []store.Tier, deps ProgressDeps, logger *logger.Logger) ProgressService {
	return newProgressService(tiers, deps, logger)
}

func newProgressService(tiers []store.Tier, deps ProgressDeps, logger *logger.Logger) *progressService {
	if deps.Integrity == nil {
		deps.Integrity = validators.NewSnapshotValidator()
	}
	if deps.Codec == nil {
		deps.Codec = delta.NewCodec()
	}
	if deps.History == nil {
		deps.History = delta.NewHistory(delta.DefaultWindow)
	}

	return &progressService{
		tiers:        tiers,
		orchestrator: deps.Orchestrator,
		reconciler:   deps.Reconciler,
		integrity:    deps.Integrity,
		codec:        deps.Codec,
		history:      deps.History,
		remote:       deps.Remote,
		device:       deps.Device,
		now:          time.Now,
		logger:       logger,
	}
}

// Save implements ProgressService.
func (p *progressService) Save(ctx context.Context, userID string, snapshot models.Snapshot, priority models.SavePriority) models.SaveResult {
	return p.orchestrator.Save(ctx, models.SaveRequest{
		UserID:   userID,
		Snapshot: snapshot,
		Priority: priority,
	})
}

// CreateEmergencyBackup implements ProgressService.
func (p *progressService) CreateEmergencyBackup(ctx context.Context, userID string, snapshot models.Snapshot) bool {
	return p.orchestrator.CreateEmergencyBackup(ctx, userID, snapshot)
}

// IsSaving implements ProgressService.
func (p *progressService) IsSaving() bool {
	return p.orchestrator.IsSaving()
}

// IsLoading implements ProgressService.
func (p *progressService) IsLoading() bool {
	return p.loading.Load() > 0
}

// LastSaveResult implements ProgressService.
func (p *progressService) LastSaveResult() (models.SaveResult, bool) {
	return p.orchestrator.LastResult()
}

// LastLoadResult implements ProgressService.
func (p *progressService) LastLoadResult() (models.LoadResult, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.lastLoad == nil {
		return models.LoadResult{}, false
	}
	return *p.lastLoad, true
}

// Load implements ProgressService.
func (p *progressService) Load(ctx context.Context, userID string) models.LoadResult {
	p.loading.Add(1)
	defer p.loading.Add(-1)

	res := p.load(ctx, userID)

	p.mu.Lock()
	p.lastLoad = &res
	p.mu.Unlock()

	return res
}

func (p *progressService) load(ctx context.Context, userID string) models.LoadResult {
	log := p.logger.WithUser(userID)

	if userID == "" {
		return failedLoad(models.ErrEmptyUserID, "load rejected")
	}

	local, source := p.readLocal(ctx, userID)

	var repaired []string
	if local != nil {
		fixed, fields := p.repair(*local)
		if len(fields) > 0 {
			log.Warn().Str("func", "progressService.load").Strs("fields", fields).Msg("loaded snapshot repaired")
			fixed = p.adopt(ctx, userID, fixed)
			repaired = fields
		}
		local = &fixed
	}

	if p.reconciler != nil {
		synced := p.reconciler.Reconcile(ctx, userID, local)
		if synced.Err != nil {
			log.Warn().Err(synced.Err).Str("func", "progressService.load").
				Str("outcome", string(synced.Outcome)).
				Msg("sync with remote store incomplete, continuing with the best copy")
		}
		if changed(local, synced) {
			s := p.adopt(ctx, userID, *synced.Snapshot)
			local = &s
			if synced.Source != models.SourceLocal {
				source = synced.Source
			}
		}
	}

	if local == nil {
		s := models.NewDefaultSnapshot(userID, p.now().UnixMilli())
		log.Info().Str("func", "progressService.load").Msg("no stored progress, starting from defaults")
		return models.LoadResult{Success: true, Snapshot: &s, Source: models.SourceDefault, Message: "new player"}
	}

	return models.LoadResult{
		Success:  true,
		Snapshot: local,
		Source:   source,
		Repaired: len(repaired) > 0,
		Message:  "loaded",
	}
}

// changed reports whether the reconciler produced a copy other than local.
func changed(local *models.Snapshot, synced models.SyncResult) bool {
	if synced.Snapshot == nil {
		return false
	}
	return local == nil || synced.Source != models.SourceLocal || synced.Snapshot.Version != local.Version
}

// readLocal returns the first copy found in the tier chain, brought up to
// date with the recorded delta history, or a newer emergency backup.
func (p *progressService) readLocal(ctx context.Context, userID string) (*models.Snapshot, string) {
	log := p.logger.WithUser(userID)

	var local *models.Snapshot
	for _, tier := range p.tiers {
		r := tier.Load(ctx, userID, models.LoadOptions{})
		if r.Success && r.Snapshot != nil {
			s := r.Snapshot.Clone()
			local = &s
			break
		}
		if r.Err != nil && !errors.Is(r.Err, models.ErrNotFound) {
			log.Warn().Err(r.Err).Str("func", "progressService.readLocal").Str("tier", string(r.Tier)).Msg("tier unavailable on load")
		}
	}

	if local != nil {
		p.catchUp(userID, local)
	}

	if em, ok := p.newestEmergency(ctx, userID); ok && (local == nil || em.LastModified > local.LastModified) {
		log.Info().Str("func", "progressService.readLocal").Msg("emergency backup is newer than every stored copy, recovering it")

		if local != nil {
			// the recovered state supersedes the stored one
			em.Version = local.Version
		}
		em = p.adopt(ctx, userID, em)
		return &em, models.SourceEmergency
	}

	return local, models.SourceLocal
}

// catchUp replays deltas recorded after the copy's version.
func (p *progressService) catchUp(userID string, s *models.Snapshot) {
	deltas, err := p.history.Since(userID, s.Version)
	if err != nil || len(deltas) == 0 {
		return
	}

	next, err := p.codec.ApplyAll(*s, deltas)
	if err != nil {
		p.logger.Warn().Err(err).Str("func", "progressService.catchUp").Str("user_id", userID).Msg("error replaying delta history")
		return
	}
	*s = next
}

// newestEmergency returns the newer of the in-memory and the device tier
// emergency backups.
func (p *progressService) newestEmergency(ctx context.Context, userID string) (models.Snapshot, bool) {
	var (
		best  models.Snapshot
		found bool
	)

	if rec, ok := p.orchestrator.EmergencyBackup(userID); ok {
		best, found = rec.Snapshot, true
	}

	if p.device != nil {
		r := p.device.Load(ctx, userID, models.LoadOptions{Emergency: true})
		if r.Success && r.Snapshot != nil && (!found || r.Snapshot.LastModified > best.LastModified) {
			best, found = r.Snapshot.Clone(), true
		}
	}

	return best, found
}

// repair validates s and returns a repaired copy when it is invalid.
func (p *progressService) repair(s models.Snapshot) (models.Snapshot, []string) {
	if p.integrity.Check(s).Valid {
		return s, nil
	}
	return p.integrity.Repair(s)
}

// adopt writes a snapshot obtained from the remote store, a merge, a repair
// or an emergency backup back through the orchestrator and returns it with
// the version it was stored under.
func (p *progressService) adopt(ctx context.Context, userID string, s models.Snapshot) models.Snapshot {
	res := p.orchestrator.Save(ctx, models.SaveRequest{UserID: userID, Snapshot: s, Priority: models.PriorityCritical, Adopt: true})
	if !res.Success {
		p.logger.Err(res.Err).Str("func", "progressService.adopt").Str("user_id", userID).Msg("error persisting adopted snapshot")
		return s
	}

	out := s.Clone()
	out.UserID = userID
	out.Version = res.Version
	validators.Seal(&out)
	return out
}

// Sync implements ProgressService.
func (p *progressService) Sync(ctx context.Context, userID string) models.SyncResult {
	if p.reconciler == nil {
		return models.SyncResult{Source: models.SourceLocal, Method: models.SyncMethodNone, Outcome: models.SyncFailed, Err: ErrRemoteNotConfigured}
	}

	local, _ := p.readLocal(ctx, userID)
	res := p.reconciler.Reconcile(ctx, userID, local)
	if changed(local, res) {
		s := p.adopt(ctx, userID, *res.Snapshot)
		res.Snapshot = &s
	}
	return res
}

// DeleteUserData implements ProgressService.
func (p *progressService) DeleteUserData(ctx context.Context, userID string) bool {
	log := p.logger.WithUser(userID)
	if userID == "" {
		return false
	}

	p.orchestrator.Forget(userID)
	p.history.Reset(userID)

	ok := true
	for _, tier := range p.tiers {
		if !tier.Delete(ctx, userID) {
			log.Error().Str("func", "progressService.DeleteUserData").Str("tier", string(tier.Name())).Msg("error deleting user data")
			ok = false
		}
	}

	if p.remote != nil {
		if err := p.remote.DeleteProgress(ctx, userID); err != nil && !errors.Is(err, models.ErrNotFound) {
			log.Err(err).Str("func", "progressService.DeleteUserData").Msg("error deleting remote progress")
			ok = false
		}
	}

	return ok
}

func failedLoad(err error, msg string) models.LoadResult {
	return models.LoadResult{
		Message: msg + ": " + err.Error(),
		Kind:    models.KindOf(err),
		Err:     err,
	}
}
