package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-save-keeper/internal/metrics"
	"github.com/MKhiriev/go-save-keeper/models"
)

// DefaultBackupRetention is the backup ring size used when none is given.
const DefaultBackupRetention = 3

const (
	opSave   = "save"
	opLoad   = "load"
	opDelete = "delete"
	opExists = "exists"
	opClear  = "clear"
)

// tierOp times one tier operation and fills the common result fields.
type tierOp struct {
	tier  models.TierName
	op    string
	start time.Time
}

func begin(tier models.TierName, op string) tierOp {
	return tierOp{tier: tier, op: op, start: time.Now()}
}

func (o tierOp) done(r models.StorageResult) models.StorageResult {
	r.Tier = o.tier
	r.Timestamp = o.start
	r.Duration = time.Since(o.start)
	metrics.ObserveTier(string(o.tier), o.op, r.Success, r.Duration)
	return r
}

func (o tierOp) ok(r models.StorageResult) models.StorageResult {
	r.Success = true
	return o.done(r)
}

func (o tierOp) fail(err error) models.StorageResult {
	return o.done(models.StorageResult{}.Fail(timeoutError(err)))
}

func (o tierOp) flag(success bool) bool {
	metrics.ObserveTier(string(o.tier), o.op, success, time.Since(o.start))
	return success
}

func (o tierOp) saved(snapshot models.Snapshot, size int) models.StorageResult {
	return o.ok(models.StorageResult{Size: size, Version: snapshot.Version})
}

func (o tierOp) loaded(snapshot models.Snapshot, size int) models.StorageResult {
	return o.ok(models.StorageResult{Size: size, Version: snapshot.Version, Snapshot: &snapshot})
}

// timeoutError turns an expired context into models.ErrTimeout.
func timeoutError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, models.ErrTimeout) {
		return fmt.Errorf("%w: %w", models.ErrTimeout, err)
	}
	return err
}

func checkUser(userID string) error {
	if userID == "" {
		return models.ErrEmptyUserID
	}
	return nil
}

func encodedSize(v any) int {
	data, err := json.Marshal(v)
	if err != nil {
		return 0
	}
	return len(data)
}

// pushBackup puts rec in front of ring and drops what exceeds retention.
func pushBackup(ring []models.BackupRecord, rec models.BackupRecord, retention int) []models.BackupRecord {
	if retention <= 0 {
		return nil
	}

	out := make([]models.BackupRecord, 0, min(len(ring)+1, retention))
	out = append(out, rec)
	for _, b := range ring {
		if len(out) == retention {
			break
		}
		out = append(out, b)
	}
	return out
}

// pickBackup returns the n-th most recent backup, 1-based.
func pickBackup(ring []models.BackupRecord, n int) (models.BackupRecord, error) {
	if n < 1 || n > len(ring) {
		return models.BackupRecord{}, fmt.Errorf("%w: %w: position %d of %d", models.ErrNotFound, ErrBackupNotFound, n, len(ring))
	}
	return ring[n-1], nil
}

// userRecords is everything a tier keeps for one user. File tiers persist it
// as a single document.
type userRecords struct {
	Record    *models.StoredRecord  `json:"record,omitempty"`
	Backups   []models.BackupRecord `json:"backups,omitempty"`
	Emergency *models.BackupRecord  `json:"emergency,omitempty"`
}

func (u *userRecords) empty() bool {
	return u.Record == nil && len(u.Backups) == 0 && u.Emergency == nil
}

func (u *userRecords) save(snapshot models.Snapshot, opts models.SaveOptions, retention int, now time.Time) {
	if opts.Emergency {
		rec := models.NewBackupRecord(snapshot, now)
		u.Emergency = &rec
		return
	}

	if u.Record != nil {
		u.Backups = pushBackup(u.Backups, models.NewBackupRecord(u.Record.Snapshot, now), retention)
	}
	rec := models.NewStoredRecord(snapshot)
	u.Record = &rec
}

func (u *userRecords) load(opts models.LoadOptions) (models.Snapshot, error) {
	switch {
	case opts.Emergency:
		if u.Emergency == nil {
			return models.Snapshot{}, fmt.Errorf("%w: no emergency backup", models.ErrNotFound)
		}
		return u.Emergency.Snapshot, nil

	case opts.Backup > 0:
		b, err := pickBackup(u.Backups, opts.Backup)
		if err != nil {
			return models.Snapshot{}, err
		}
		return b.Snapshot, nil

	default:
		if u.Record == nil {
			return models.Snapshot{}, models.ErrNotFound
		}
		return u.Record.Snapshot, nil
	}
}
