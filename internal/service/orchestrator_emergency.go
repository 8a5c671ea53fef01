package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-save-keeper/internal/metrics"
	"github.com/MKhiriev/go-save-keeper/models"
)

// CreateEmergencyBackup implements SaveOrchestrator.
func (o *saveOrchestrator) CreateEmergencyBackup(_ context.Context, userID string, snapshot models.Snapshot) bool {
	if userID == "" {
		return false
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return false
	}
	return o.backupLocked(userID, snapshot)
}

// backupLocked keeps snapshot as the user's emergency backup unless the
// previous one is younger than the throttle.
func (o *saveOrchestrator) backupLocked(userID string, snapshot models.Snapshot) bool {
	now := o.now()

	if prev, ok := o.emergency[userID]; ok {
		if now.UnixMilli()-prev.record.Timestamp < o.opts.BackupThrottle.Milliseconds() {
			metrics.CountEmergencyBackup(false)
			return false
		}
	}

	s := snapshot.Clone()
	s.UserID = userID
	record := models.NewBackupRecord(s, now)

	o.emergency[userID] = emergencyBackup{record: record, signature: o.sign(record)}
	metrics.CountEmergencyBackup(true)
	return true
}

// EmergencyBackup implements SaveOrchestrator. A backup whose signature no
// longer matches is dropped.
func (o *saveOrchestrator) EmergencyBackup(userID string) (models.BackupRecord, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	e, ok := o.emergency[userID]
	if !ok {
		return models.BackupRecord{}, false
	}
	if !o.verify(e) {
		o.logger.Error().Err(ErrEmergencyBackupFailed).
			Str("func", "saveOrchestrator.EmergencyBackup").
			Str("user_id", userID).
			Msg("dropping emergency backup")
		delete(o.emergency, userID)
		return models.BackupRecord{}, false
	}

	rec := e.record
	rec.Snapshot = rec.Snapshot.Clone()
	return rec, true
}

func (o *saveOrchestrator) sign(record models.BackupRecord) string {
	if o.signer == nil {
		return ""
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return ""
	}
	return o.signer.Sign(payload)
}

func (o *saveOrchestrator) verify(e emergencyBackup) bool {
	if o.signer == nil {
		return true
	}
	payload, err := json.Marshal(e.record)
	if err != nil {
		return false
	}
	return o.signer.Verify(payload, e.signature)
}

// Close implements SaveOrchestrator. Pending saves are written to the device
// tier as canonical records and emergency backups into its emergency slot,
// all within the flush timeout. Running saves are waited for within the same
// deadline.
func (o *saveOrchestrator) Close(ctx context.Context) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true

	pending := make([]models.SaveRequest, 0, len(o.pending))
	for userID, p := range o.pending {
		if p.timer != nil {
			p.timer.Stop()
		}
		pending = append(pending, p.req)
		delete(o.pending, userID)
	}

	backups := make([]emergencyBackup, 0, len(o.emergency))
	for _, e := range o.emergency {
		if o.verify(e) {
			backups = append(backups, e)
		}
	}
	o.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, o.opts.FlushTimeout)
	defer cancel()

	log := o.logger.With().Str("func", "saveOrchestrator.Close").Logger()

	var errs []error
	if o.device == nil {
		if len(pending)+len(backups) > 0 {
			log.Warn().Int("pending", len(pending)).Int("backups", len(backups)).Msg("no device tier, nothing flushed")
		}
	} else {
		for _, req := range pending {
			prepared, _, err := o.prepare(ctx, req)
			if err != nil {
				errs = append(errs, fmt.Errorf("pending save of %s: %w", req.UserID, err))
				continue
			}
			if r := o.device.Save(ctx, req.UserID, prepared.snapshot, models.SaveOptions{}); !r.Success {
				errs = append(errs, fmt.Errorf("pending save of %s: %w", req.UserID, r.Err))
			}
		}

		for _, e := range backups {
			userID := e.record.Snapshot.UserID
			if r := o.device.Save(ctx, userID, e.record.Snapshot, models.SaveOptions{Emergency: true}); !r.Success {
				errs = append(errs, fmt.Errorf("emergency backup of %s: %w", userID, r.Err))
			}
		}
	}

	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		errs = append(errs, fmt.Errorf("waiting for running saves: %w", ctx.Err()))
	}

	if len(errs) > 0 {
		err := fmt.Errorf("%w: %w", ErrFlushIncomplete, errors.Join(errs...))
		log.Err(err).Msg("flush on close incomplete")
		return err
	}

	log.Info().Int("pending", len(pending)).Int("backups", len(backups)).Msg("orchestrator closed")
	return nil
}
