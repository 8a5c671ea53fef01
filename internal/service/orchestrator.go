// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/MKhiriev/go-save-keeper/internal/crypto"
	"github.com/MKhiriev/go-save-keeper/internal/delta"
	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/metrics"
	"github.com/MKhiriev/go-save-keeper/internal/store"
	"github.com/MKhiriev/go-save-keeper/internal/validators"
	"github.com/MKhiriev/go-save-keeper/models"
)

const tracerName = "github.com/MKhiriev/go-save-keeper/internal/service"

// Orchestrator defaults used when options leave a value unset.
const (
	DefaultBackupThrottle = 500 * time.Millisecond
	DefaultFlushTimeout   = 2 * time.Second
)

// OrchestratorOptions tune a SaveOrchestrator.
type OrchestratorOptions struct {
	// Intervals is the minimum gap between two saves of one user per
	// priority. Missing priorities use models.DefaultIntervals.
	Intervals map[models.SavePriority]time.Duration

	// BackupThrottle is the minimum gap between two emergency backups of
	// one user.
	BackupThrottle time.Duration

	// FlushTimeout bounds the flush performed by Close.
	FlushTimeout time.Duration

	// ClientID is stamped on created deltas.
	ClientID string
}

// OrchestratorDeps are the collaborators of a SaveOrchestrator. Device and
// Signer are optional.
type OrchestratorDeps struct {
	Integrity validators.Integrity
	Merger    Merger
	Codec     *delta.Codec
	History   *delta.History

	// Device receives emergency backups and pending saves on Close.
	Device store.Tier

	// Signer signs in-memory emergency backups.
	Signer crypto.Signer
}

type pendingSave struct {
	req      models.SaveRequest
	timer    *time.Timer
	due      bool
	queuedAt time.Time
}

type emergencyBackup struct {
	record    models.BackupRecord
	signature string
}

type saveOrchestrator struct {
	tiers     []store.Tier
	device    store.Tier
	integrity validators.Integrity
	merger    Merger
	codec     *delta.Codec
	history   *delta.History
	signer    crypto.Signer
	opts      OrchestratorOptions

	now    func() time.Time
	tracer trace.Tracer
	logger *logger.Logger

	mu        sync.Mutex
	lastSave  map[string]time.Time
	pending   map[string]*pendingSave
	emergency map[string]emergencyBackup
	latest    map[string]models.Snapshot
	writers   map[string]*sync.Mutex
	inFlight  bool
	active    int
	closed    bool
	last      *models.SaveResult

	wg sync.WaitGroup
}

// NewSaveOrchestrator returns an orchestrator writing to tiers in the given
// order. The caller owns its lifecycle and must call Close on teardown.
func NewSaveOrchestrator(tiers []store.Tier, deps OrchestratorDeps, opts OrchestratorOptions, logger *logger.Logger) SaveOrchestrator {
	return newSaveOrchestrator(tiers, deps, opts, logger)
}

func newSaveOrchestrator(tiers []store.Tier, deps OrchestratorDeps, opts OrchestratorOptions, logger *logger.Logger) *saveOrchestrator {
	intervals := make(map[models.SavePriority]time.Duration, len(models.DefaultIntervals))
	for p, d := range models.DefaultIntervals {
		intervals[p] = d
	}
	for p, d := range opts.Intervals {
		intervals[p] = d
	}
	opts.Intervals = intervals

	if opts.BackupThrottle <= 0 {
		opts.BackupThrottle = DefaultBackupThrottle
	}
	if opts.FlushTimeout <= 0 {
		opts.FlushTimeout = DefaultFlushTimeout
	}
	if deps.Integrity == nil {
		deps.Integrity = validators.NewSnapshotValidator()
	}
	if deps.Codec == nil {
		deps.Codec = delta.NewCodec()
	}
	if deps.History == nil {
		deps.History = delta.NewHistory(delta.DefaultWindow)
	}

	return &saveOrchestrator{
		tiers:     tiers,
		device:    deps.Device,
		integrity: deps.Integrity,
		merger:    deps.Merger,
		codec:     deps.Codec,
		history:   deps.History,
		signer:    deps.Signer,
		opts:      opts,
		now:       time.Now,
		tracer:    otel.Tracer(tracerName),
		logger:    logger,
		lastSave:  make(map[string]time.Time),
		pending:   make(map[string]*pendingSave),
		emergency: make(map[string]emergencyBackup),
		latest:    make(map[string]models.Snapshot),
		writers:   make(map[string]*sync.Mutex),
	}
}

// Save implements SaveOrchestrator.
func (o *saveOrchestrator) Save(ctx context.Context, req models.SaveRequest) models.SaveResult {
	log := o.logger.WithUser(req.UserID)

	if req.UserID == "" {
		return o.remember(failedSave(models.ErrEmptyUserID, "save rejected"))
	}
	if req.Snapshot.UserID != "" && req.Snapshot.UserID != req.UserID {
		err := fmt.Errorf("%w: %w", models.ErrValidation, ErrUserMismatch)
		log.Err(err).Str("func", "saveOrchestrator.Save").Str("snapshot_user", req.Snapshot.UserID).Msg("save rejected")
		return o.remember(failedSave(err, "save rejected"))
	}
	if _, known := models.DefaultIntervals[req.Priority]; !known {
		req.Priority = models.PriorityMedium
	}

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return o.remember(failedSave(ErrOrchestratorClosed, "save rejected"))
	}

	critical := req.Priority == models.PriorityCritical
	if !critical {
		wait := o.waitLocked(req.UserID, req.Priority)
		if wait > 0 || o.inFlight {
			if req.WithBackup {
				o.backupLocked(req.UserID, req.Snapshot)
			}
			o.enqueueLocked(req, wait)
			o.mu.Unlock()

			log.Debug().Str("func", "saveOrchestrator.Save").
				Str("priority", string(req.Priority)).
				Dur("wait", wait).
				Msg("save queued")
			metrics.CountSave(string(req.Priority), metrics.OutcomeQueued)
			return o.remember(models.SaveResult{Success: true, Queued: true, Message: "save queued"})
		}
		o.inFlight = true
	}

	// the request supersedes whatever was queued for the user
	o.dropPendingLocked(req.UserID)
	o.lastSave[req.UserID] = o.now()
	o.active++
	o.mu.Unlock()

	res := o.execute(ctx, req)

	o.mu.Lock()
	o.active--
	if !critical {
		o.inFlight = false
		o.releaseLocked()
	}
	o.mu.Unlock()

	return o.remember(res)
}

// writer returns the mutex serializing the writes of userID.
func (o *saveOrchestrator) writer(userID string) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()

	w, ok := o.writers[userID]
	if !ok {
		w = &sync.Mutex{}
		o.writers[userID] = w
	}
	return w
}

// waitLocked returns how long the user must still wait before a save of
// priority p may run.
func (o *saveOrchestrator) waitLocked(userID string, p models.SavePriority) time.Duration {
	last, ok := o.lastSave[userID]
	if !ok {
		return 0
	}
	wait := o.opts.Intervals[p] - o.now().Sub(last)
	if wait < 0 {
		return 0
	}
	return wait
}

// execute runs one save: prepare, fan out, bookkeeping.
func (o *saveOrchestrator) execute(ctx context.Context, req models.SaveRequest) models.SaveResult {
	ctx, span := o.tracer.Start(ctx, "SaveOrchestrator.Save", trace.WithAttributes(
		attribute.String("user_id", req.UserID),
		attribute.String("priority", string(req.Priority)),
	))
	defer span.End()

	log := o.logger.WithUser(req.UserID).WithSpan(ctx)

	// version assignment and fan-out of one user never interleave, even for
	// critical saves that skip the in-flight guard
	writer := o.writer(req.UserID)
	writer.Lock()
	defer writer.Unlock()

	if len(o.tiers) == 0 {
		span.SetStatus(codes.Error, ErrNoTiersConfigured.Error())
		return o.finish(req, failedSave(ErrNoTiersConfigured, "save failed"))
	}

	prepared, base, err := o.prepare(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "saveOrchestrator.execute").Msg("error preparing snapshot")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return o.finish(req, failedSave(err, "save failed"))
	}
	snapshot := prepared.snapshot

	if req.WithBackup {
		o.mu.Lock()
		o.backupLocked(req.UserID, snapshot)
		o.mu.Unlock()
	}

	opts := models.SaveOptions{}
	d := o.createDelta(base, snapshot)
	if d != nil && delta.IsEfficient(snapshot, *d) {
		opts.Delta = d
	}

	results := make([]models.StorageResult, 0, len(o.tiers))
	var tierErrs []error
	for _, tier := range o.tiers {
		r := tier.Save(ctx, req.UserID, snapshot, opts)
		results = append(results, r)
		if !r.Success {
			tierErrs = append(tierErrs, fmt.Errorf("%s: %w", r.Tier, r.Err))
			log.Warn().Err(r.Err).
				Str("func", "saveOrchestrator.execute").
				Str("tier", string(r.Tier)).
				Msg("tier rejected the write")
			continue
		}
		if r.Warning != "" {
			log.Warn().Str("func", "saveOrchestrator.execute").
				Str("tier", string(r.Tier)).
				Str("warning", r.Warning).
				Msg("tier accepted the write degraded")
		}
	}

	if len(tierErrs) == len(o.tiers) {
		err = fmt.Errorf("%w: %w", ErrAllTiersRejected, errors.Join(tierErrs...))
		_, hasBackup := o.EmergencyBackup(req.UserID)

		log.Err(err).Str("func", "saveOrchestrator.execute").
			Int64("version", snapshot.Version).
			Bool("emergency_backup", hasBackup).
			Msg("no tier accepted the write")
		span.RecordError(err)
		span.SetStatus(codes.Error, "all tiers rejected")

		res := models.SaveResult{
			Version:  snapshot.Version,
			Fatal:    !hasBackup,
			Message:  "no storage tier accepted the save",
			Kind:     models.KindAllTiersRejected,
			Err:      err,
			Tiers:    results,
			Repaired: prepared.repaired,
			Merged:   prepared.merged,
		}
		return o.finish(req, res)
	}

	o.mu.Lock()
	o.latest[req.UserID] = snapshot.Clone()
	o.mu.Unlock()

	if d != nil {
		o.history.Record(*d)
	} else {
		o.history.Reset(req.UserID)
	}

	span.SetAttributes(attribute.Int64("version", snapshot.Version), attribute.Int("tiers_accepted", len(o.tiers)-len(tierErrs)))

	res := models.SaveResult{
		Success:  true,
		Version:  snapshot.Version,
		Message:  "saved",
		Tiers:    results,
		Repaired: prepared.repaired,
		Merged:   prepared.merged,
	}
	if len(tierErrs) > 0 {
		res.Message = fmt.Sprintf("saved to %d of %d tiers", len(o.tiers)-len(tierErrs), len(o.tiers))
	}
	return o.finish(req, res)
}

func (o *saveOrchestrator) finish(req models.SaveRequest, res models.SaveResult) models.SaveResult {
	result := metrics.OutcomeSuccess
	if !res.Success {
		result = metrics.OutcomeFailure
	}
	metrics.CountSave(string(req.Priority), result)
	return res
}

// createDelta diffs the previously accepted snapshot against the new one.
// It returns nil when there is no usable base.
func (o *saveOrchestrator) createDelta(base *models.Snapshot, snapshot models.Snapshot) *models.Delta {
	if base == nil || base.Version != snapshot.Version-1 {
		return nil
	}

	d, err := o.codec.Create(*base, snapshot, o.opts.ClientID)
	if err != nil {
		o.logger.Warn().Err(err).Str("func", "saveOrchestrator.createDelta").Msg("error creating delta, writing full snapshot")
		return nil
	}
	if d == nil {
		return nil
	}

	optimized := delta.Optimize(*d)
	return &optimized
}

// remember keeps res as the last result and returns it.
func (o *saveOrchestrator) remember(res models.SaveResult) models.SaveResult {
	o.mu.Lock()
	o.last = &res
	o.mu.Unlock()
	return res
}

// LastResult implements SaveOrchestrator.
func (o *saveOrchestrator) LastResult() (models.SaveResult, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.last == nil {
		return models.SaveResult{}, false
	}
	return *o.last, true
}

// IsSaving implements SaveOrchestrator.
func (o *saveOrchestrator) IsSaving() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.active > 0
}

// Forget implements SaveOrchestrator.
func (o *saveOrchestrator) Forget(userID string) {
	o.mu.Lock()
	o.dropPendingLocked(userID)
	delete(o.lastSave, userID)
	delete(o.emergency, userID)
	delete(o.latest, userID)
	o.mu.Unlock()

	o.history.Reset(userID)
}

func failedSave(err error, msg string) models.SaveResult {
	return models.SaveResult{
		Message: fmt.Sprintf("%s: %v", msg, err),
		Kind:    models.KindOf(err),
		Err:     err,
	}
}
