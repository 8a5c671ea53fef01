// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/MKhiriev/go-save-keeper/internal/delta"
	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/metrics"
	"github.com/MKhiriev/go-save-keeper/internal/store"
	"github.com/MKhiriev/go-save-keeper/internal/validators"
	"github.com/MKhiriev/go-save-keeper/models"
)

// ReconcilerDeps are the collaborators of a SyncReconciler.
type ReconcilerDeps struct {
	Remote    store.RemoteClient
	Records   store.SyncRecordRepository
	Integrity validators.Integrity
	Codec     *delta.Codec
	Merger    Merger
}

// syncReconciler implements SyncReconciler.
//
// One cycle:
//  1. fetch the remote metadata; skip everything when nothing changed on
//     either side since the last successful sync (fast path);
//  2. fetch and check the remote snapshot; an invalid remote copy loses to
//     the local one, which is pushed as a correction;
//  3. pick the side that is ahead, or resolve a divergence with the
//     configured strategy;
//  4. push the winner back when the remote is behind, as a delta when the
//     remote is exactly one version behind and the delta is efficient;
//  5. record the outcome.
type syncReconciler struct {
	Merger

	remote    store.RemoteClient
	records   store.SyncRecordRepository
	integrity validators.Integrity
	codec     *delta.Codec
	strategy  models.ConflictStrategy
	clientID  string

	now    func() time.Time
	tracer trace.Tracer
	logger *logger.Logger
}

// NewSyncReconciler returns a reconciler resolving divergence with strategy.
// An unknown strategy falls back to merge.
func NewSyncReconciler(deps ReconcilerDeps, strategy models.ConflictStrategy, clientID string, logger *logger.Logger) SyncReconciler {
	return newSyncReconciler(deps, strategy, clientID, logger)
}

func newSyncReconciler(deps ReconcilerDeps, strategy models.ConflictStrategy, clientID string, logger *logger.Logger) *syncReconciler {
	if !strategy.Valid() {
		strategy = models.StrategyMerge
	}
	if deps.Integrity == nil {
		deps.Integrity = validators.NewSnapshotValidator()
	}
	if deps.Codec == nil {
		deps.Codec = delta.NewCodec()
	}
	if deps.Merger == nil {
		deps.Merger = NewMerger()
	}
	if deps.Records == nil {
		deps.Records = store.NewMemorySyncRecords()
	}

	return &syncReconciler{
		Merger:    deps.Merger,
		remote:    deps.Remote,
		records:   deps.Records,
		integrity: deps.Integrity,
		codec:     deps.Codec,
		strategy:  strategy,
		clientID:  clientID,
		now:       time.Now,
		tracer:    otel.Tracer(tracerName),
		logger:    logger,
	}
}

// Reconcile implements SyncReconciler.
func (r *syncReconciler) Reconcile(ctx context.Context, userID string, local *models.Snapshot) models.SyncResult {
	ctx, span := r.tracer.Start(ctx, "SyncReconciler.Reconcile", trace.WithAttributes(
		attribute.String("user_id", userID),
		attribute.String("strategy", string(r.strategy)),
	))
	defer span.End()

	res := r.reconcile(ctx, userID, local)

	span.SetAttributes(
		attribute.String("source", res.Source),
		attribute.String("method", string(res.Method)),
		attribute.String("outcome", string(res.Outcome)),
	)
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
	}
	metrics.CountSync(string(res.Method), string(res.Outcome))

	return res
}

func (r *syncReconciler) reconcile(ctx context.Context, userID string, local *models.Snapshot) models.SyncResult {
	log := r.logger.WithUser(userID).WithSpan(ctx)

	if local != nil {
		l := local.Clone()
		local = &l
	}
	localResult := models.SyncResult{Snapshot: local, Source: models.SourceLocal, Method: models.SyncMethodNone}

	if userID == "" {
		localResult.Outcome = models.SyncFailed
		localResult.Err = models.ErrEmptyUserID
		return localResult
	}
	if r.remote == nil {
		localResult.Outcome = models.SyncFailed
		localResult.Err = ErrRemoteNotConfigured
		return localResult
	}

	meta, err := r.remote.LoadMeta(ctx, userID)
	switch {
	case errors.Is(err, models.ErrNotFound):
		if local == nil {
			localResult.Outcome = models.SyncSuccess
			return localResult
		}
		log.Info().Str("func", "syncReconciler.reconcile").Msg("remote has no copy, pushing local")
		return r.push(ctx, localResult, nil)

	case err != nil:
		log.Err(err).Str("func", "syncReconciler.reconcile").Msg("error loading remote metadata")
		localResult.Outcome = models.SyncFailed
		localResult.Err = fmt.Errorf("load remote metadata: %w", err)
		return r.record(ctx, userID, localResult)
	}

	if r.fastPath(ctx, userID, meta, local) {
		log.Debug().Str("func", "syncReconciler.reconcile").Msg("nothing changed since the last sync")
		localResult.Outcome = models.SyncSuccess
		return localResult
	}

	remote, err := r.remote.LoadProgress(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "syncReconciler.reconcile").Msg("error loading remote snapshot")
		localResult.Outcome = models.SyncFailed
		localResult.Err = fmt.Errorf("load remote snapshot: %w", err)
		return r.record(ctx, userID, localResult)
	}

	report := r.integrity.Check(remote)
	remoteValid := report.Valid && remote.UserID == userID

	if local == nil {
		if remoteValid {
			return r.record(ctx, userID, models.SyncResult{
				Snapshot: &remote, Source: models.SourceRemote, Method: models.SyncMethodNone, Outcome: models.SyncSuccess,
			})
		}

		log.Warn().Err(report.Err()).Str("func", "syncReconciler.reconcile").Msg("remote copy invalid, repairing it")
		repaired, _ := r.integrity.Repair(remote)
		repaired.UserID = userID
		repaired.Version = remote.Version + 1
		validators.Seal(&repaired)
		return r.push(ctx, models.SyncResult{Snapshot: &repaired, Source: models.SourceRemote}, nil)
	}

	if !remoteValid {
		log.Warn().Err(report.Err()).Str("func", "syncReconciler.reconcile").
			Int64("remote_version", remote.Version).
			Msg("remote copy invalid, local wins")
		return r.push(ctx, r.supersede(localResult, remote), nil)
	}

	switch {
	case r.sameState(*local, remote):
		localResult.Outcome = models.SyncSuccess
		return r.record(ctx, userID, localResult)

	case local.Version > remote.Version && local.LastModified >= remote.LastModified:
		return r.push(ctx, localResult, &remote)

	case remote.Version > local.Version && remote.LastModified >= local.LastModified:
		return r.record(ctx, userID, models.SyncResult{
			Snapshot: &remote, Source: models.SourceRemote, Method: models.SyncMethodNone, Outcome: models.SyncSuccess,
		})
	}

	log.Info().Str("func", "syncReconciler.reconcile").
		Int64("local_version", local.Version).
		Int64("remote_version", remote.Version).
		Str("strategy", string(r.strategy)).
		Msg("local and remote diverged")

	switch r.strategy {
	case models.StrategyServerWins:
		return r.record(ctx, userID, models.SyncResult{
			Snapshot: &remote, Source: models.SourceRemote, Method: models.SyncMethodNone, Outcome: models.SyncSuccess,
		})

	case models.StrategyClientWins:
		return r.push(ctx, r.supersede(localResult, remote), &remote)

	default:
		merged := r.Merge(*local, remote)
		return r.push(ctx, models.SyncResult{Snapshot: &merged, Source: models.SourceMerged, Merged: true}, &remote)
	}
}

// fastPath reports whether neither side changed since the last successful
// sync.
func (r *syncReconciler) fastPath(ctx context.Context, userID string, meta models.RemoteMeta, local *models.Snapshot) bool {
	if local == nil {
		return false
	}

	last, err := r.records.LastSyncRecord(ctx, userID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			r.logger.Warn().Err(err).Str("func", "syncReconciler.fastPath").Str("user_id", userID).Msg("error reading sync record")
		}
		return false
	}

	return last.Outcome == models.SyncSuccess &&
		meta.Version == last.Version &&
		meta.LastModified <= last.SyncedAt &&
		local.Version == last.Version &&
		local.LastModified <= last.SyncedAt
}

// sameState reports whether both copies hold the same version and differ in
// volatile fields only.
func (r *syncReconciler) sameState(local, remote models.Snapshot) bool {
	if local.Version != remote.Version {
		return false
	}
	d, err := r.codec.Create(remote, local, r.clientID)
	return err == nil && d == nil
}

// supersede keeps the local state unchanged but lifts its version above the
// remote one so the push is accepted.
func (r *syncReconciler) supersede(res models.SyncResult, remote models.Snapshot) models.SyncResult {
	s := res.Snapshot.Clone()
	if s.Version <= remote.Version {
		s.Version = remote.Version + 1
	}
	validators.Seal(&s)
	res.Snapshot = &s
	return res
}

// push sends res.Snapshot to the remote store and records the outcome. base
// is the remote copy the delta is computed against, nil to force a full
// transfer.
func (r *syncReconciler) push(ctx context.Context, res models.SyncResult, base *models.Snapshot) models.SyncResult {
	snapshot := *res.Snapshot
	log := r.logger.WithUser(snapshot.UserID).WithSpan(ctx)

	method, meta, err := r.send(ctx, snapshot, base)
	res.Method = method

	if err != nil {
		log.Err(err).Str("func", "syncReconciler.push").
			Str("method", string(method)).
			Int64("version", snapshot.Version).
			Msg("error pushing to remote store")
		res.Outcome = models.SyncPartial
		res.Err = fmt.Errorf("%w: %w", ErrPushFailed, err)
		return r.record(ctx, snapshot.UserID, res)
	}

	res.Pushed = true
	res.Outcome = models.SyncSuccess
	return r.recordAt(ctx, snapshot.UserID, res, meta.LastModified)
}

func (r *syncReconciler) send(ctx context.Context, snapshot models.Snapshot, base *models.Snapshot) (models.SyncMethod, models.RemoteMeta, error) {
	if base != nil && base.Version == snapshot.Version-1 {
		d, err := r.codec.Create(*base, snapshot, r.clientID)
		if err == nil && d != nil {
			optimized := delta.Optimize(*d)
			if delta.IsEfficient(snapshot, optimized) {
				meta, err := r.remote.SaveDelta(ctx, optimized)
				if err == nil {
					return models.SyncMethodDelta, meta, nil
				}
				if !errors.Is(err, models.ErrVersionConflict) {
					return models.SyncMethodDelta, models.RemoteMeta{}, err
				}
				r.logger.Warn().Err(err).Str("func", "syncReconciler.send").
					Str("user_id", snapshot.UserID).
					Msg("delta rejected, falling back to full snapshot")
			}
		}
	}

	meta, err := r.remote.SaveProgress(ctx, snapshot)
	return models.SyncMethodFull, meta, err
}

func (r *syncReconciler) record(ctx context.Context, userID string, res models.SyncResult) models.SyncResult {
	return r.recordAt(ctx, userID, res, 0)
}

// recordAt stores the sync record. The timestamp is never older than the
// remote's own modification time so the next fast path check holds.
func (r *syncReconciler) recordAt(ctx context.Context, userID string, res models.SyncResult, remoteModified int64) models.SyncResult {
	rec := models.SyncRecord{
		UserID:   userID,
		SyncedAt: max(r.now().UnixMilli(), remoteModified),
		Method:   res.Method,
		Outcome:  res.Outcome,
	}
	if res.Snapshot != nil {
		rec.Version = res.Snapshot.Version
	}

	if err := r.records.SaveSyncRecord(ctx, rec); err != nil {
		r.logger.Warn().Err(err).Str("func", "syncReconciler.recordAt").Str("user_id", userID).Msg("error saving sync record")
	}
	return res
}
