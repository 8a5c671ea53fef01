// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/models"
)

// DatabaseTier keeps records in the local SQLite database. It also persists
// the sync records of the reconciler.
type DatabaseTier struct {
	db        *DB
	retention int
	logger    *logger.Logger
	name      models.TierName
}

// NewDatabaseTier wraps an already migrated SQLite connection.
func NewDatabaseTier(db *DB, retention int, log *logger.Logger) *DatabaseTier {
	return &DatabaseTier{
		db:        db,
		retention: retention,
		logger:    log,
		name:      models.TierDatabase,
	}
}

func (d *DatabaseTier) Name() models.TierName {
	return d.name
}

func (d *DatabaseTier) Save(ctx context.Context, userID string, snapshot models.Snapshot, opts models.SaveOptions) models.StorageResult {
	op := begin(d.name, opSave)
	if err := checkUser(userID); err != nil {
		return op.fail(err)
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return op.fail(fmt.Errorf("%w: %w", ErrEncodingRecord, err))
	}

	if opts.Emergency {
		err = d.saveEmergency(ctx, userID, snapshot.Version, payload)
	} else {
		err = d.saveRecord(ctx, userID, snapshot, payload)
	}
	if err != nil {
		return op.fail(err)
	}

	return op.saved(snapshot, len(payload))
}

func (d *DatabaseTier) saveEmergency(ctx context.Context, userID string, version int64, payload []byte) error {
	query, args, err := d.db.builder().
		Insert(tableProgressEmergency).
		Columns("user_id", "snapshot", "version", "created_at").
		Values(userID, string(payload), version, time.Now().UnixMilli()).
		Suffix(upsertEmergencySQLite).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = d.db.ExecContext(ctx, query, args...); err != nil {
		d.logger.Err(err).
			Str("func", "DatabaseTier.saveEmergency").
			Str("user_id", userID).
			Msg("failed to store emergency backup")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// saveRecord moves the current record into the backup table, writes the new
// one and prunes the backups in a single transaction.
func (d *DatabaseTier) saveRecord(ctx context.Context, userID string, snapshot models.Snapshot, payload []byte) error {
	log := d.logger
	now := time.Now().UnixMilli()

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "DatabaseTier.saveRecord").Str("user_id", userID).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	b := d.db.builder()

	selectQuery, selectArgs, err := b.Select("snapshot", "version").
		From(tableProgress).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		prevSnapshot string
		prevVersion  int64
	)
	err = tx.QueryRowContext(ctx, selectQuery, selectArgs...).Scan(&prevSnapshot, &prevVersion)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		log.Err(err).Str("func", "DatabaseTier.saveRecord").Str("user_id", userID).Msg("failed to read current record")
		return fmt.Errorf("%w: %w", ErrScanningRow, err)
	default:
		backupQuery, backupArgs, err := b.Insert(tableProgressBackups).
			Columns("user_id", "snapshot", "version", "created_at").
			Values(userID, prevSnapshot, prevVersion, now).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, backupQuery, backupArgs...); err != nil {
			log.Err(err).Str("func", "DatabaseTier.saveRecord").Str("user_id", userID).Msg("failed to store backup")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	upsertQuery, upsertArgs, err := b.Insert(tableProgress).
		Columns("user_id", "snapshot", "version", "last_modified", "updated_at").
		Values(userID, string(payload), snapshot.Version, snapshot.LastModified, now).
		Suffix(upsertProgressSQLite).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, upsertQuery, upsertArgs...); err != nil {
		log.Err(err).Str("func", "DatabaseTier.saveRecord").Str("user_id", userID).Msg("failed to store record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	pruneQuery, pruneArgs, err := b.Delete(tableProgressBackups).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Expr(keepNewestBackups, userID, d.retention)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, pruneQuery, pruneArgs...); err != nil {
		log.Err(err).Str("func", "DatabaseTier.saveRecord").Str("user_id", userID).Msg("failed to prune backups")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "DatabaseTier.saveRecord").Str("user_id", userID).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

func (d *DatabaseTier) Load(ctx context.Context, userID string, opts models.LoadOptions) models.StorageResult {
	op := begin(d.name, opLoad)
	if err := checkUser(userID); err != nil {
		return op.fail(err)
	}

	b := d.db.builder()
	var query sq.SelectBuilder
	switch {
	case opts.Emergency:
		query = b.Select("snapshot").From(tableProgressEmergency).Where(sq.Eq{"user_id": userID})
	case opts.Backup > 0:
		query = b.Select("snapshot").
			From(tableProgressBackups).
			Where(sq.Eq{"user_id": userID}).
			OrderBy("id DESC").
			Limit(1).
			Offset(uint64(opts.Backup - 1))
	default:
		query = b.Select("snapshot").From(tableProgress).Where(sq.Eq{"user_id": userID})
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return op.fail(fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err))
	}

	var payload string
	err = d.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		if opts.Backup > 0 {
			return op.fail(fmt.Errorf("%w: %w: position %d", models.ErrNotFound, ErrBackupNotFound, opts.Backup))
		}
		return op.fail(models.ErrNotFound)
	}
	if err != nil {
		d.logger.Err(err).Str("func", "DatabaseTier.Load").Str("user_id", userID).Msg("failed to read record")
		return op.fail(fmt.Errorf("%w: %w", ErrScanningRow, err))
	}

	var snapshot models.Snapshot
	if err = json.Unmarshal([]byte(payload), &snapshot); err != nil {
		d.logger.Err(err).Str("func", "DatabaseTier.Load").Str("user_id", userID).Msg("failed to decode record")
		return op.fail(fmt.Errorf("%w: %w", ErrDecodingRecord, err))
	}

	return op.loaded(snapshot, len(payload))
}

func (d *DatabaseTier) Delete(ctx context.Context, userID string) bool {
	op := begin(d.name, opDelete)
	return op.flag(d.deleteWhere(ctx, "DatabaseTier.Delete", sq.Eq{"user_id": userID}))
}

func (d *DatabaseTier) Clear(ctx context.Context) bool {
	op := begin(d.name, opClear)
	return op.flag(d.deleteWhere(ctx, "DatabaseTier.Clear", nil))
}

// deleteWhere removes matching rows from every progress table in one
// transaction. A nil pred removes everything.
func (d *DatabaseTier) deleteWhere(ctx context.Context, fn string, pred any) bool {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		d.logger.Err(err).Str("func", fn).Msg("failed to begin transaction")
		return false
	}
	defer tx.Rollback()

	for _, table := range []string{tableProgress, tableProgressBackups, tableProgressEmergency, tableSyncRecords} {
		q := d.db.builder().Delete(table)
		if pred != nil {
			q = q.Where(pred)
		}
		query, args, err := q.ToSql()
		if err != nil {
			d.logger.Err(err).Str("func", fn).Str("table", table).Msg("failed to build query")
			return false
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			d.logger.Err(err).Str("func", fn).Str("table", table).Msg("failed to delete rows")
			return false
		}
	}

	if err = tx.Commit(); err != nil {
		d.logger.Err(err).Str("func", fn).Msg("failed to commit transaction")
		return false
	}
	return true
}

func (d *DatabaseTier) Exists(ctx context.Context, key string) bool {
	query, args, err := d.db.builder().
		Select("1").
		From(tableProgress).
		Where(sq.Eq{"user_id": key}).
		ToSql()
	if err != nil {
		return false
	}

	var one int
	return d.db.QueryRowContext(ctx, query, args...).Scan(&one) == nil
}

// SaveSyncRecord appends record and keeps the newest records of the user.
func (d *DatabaseTier) SaveSyncRecord(ctx context.Context, record models.SyncRecord) error {
	b := d.db.builder()

	query, args, err := b.Insert(tableSyncRecords).
		Columns("user_id", "synced_at", "version", "method", "outcome").
		Values(record.UserID, record.SyncedAt, record.Version, string(record.Method), string(record.Outcome)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = d.db.ExecContext(ctx, query, args...); err != nil {
		d.logger.Err(err).
			Str("func", "DatabaseTier.SaveSyncRecord").
			Str("user_id", record.UserID).
			Msg("failed to store sync record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	pruneQuery, pruneArgs, err := b.Delete(tableSyncRecords).
		Where(sq.Eq{"user_id": record.UserID}).
		Where(sq.Expr(keepNewestSyncs, record.UserID, syncRecordsKept)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = d.db.ExecContext(ctx, pruneQuery, pruneArgs...); err != nil {
		// the record itself is stored
		d.logger.Warn().Err(err).
			Str("func", "DatabaseTier.SaveSyncRecord").
			Str("user_id", record.UserID).
			Msg("failed to prune sync records")
	}
	return nil
}

// LastSyncRecord returns the newest sync record of userID.
func (d *DatabaseTier) LastSyncRecord(ctx context.Context, userID string) (models.SyncRecord, error) {
	query, args, err := d.db.builder().
		Select("user_id", "synced_at", "version", "method", "outcome").
		From(tableSyncRecords).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return models.SyncRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		rec             models.SyncRecord
		method, outcome string
	)
	err = d.db.QueryRowContext(ctx, query, args...).Scan(&rec.UserID, &rec.SyncedAt, &rec.Version, &method, &outcome)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncRecord{}, models.ErrNotFound
	}
	if err != nil {
		d.logger.Err(err).Str("func", "DatabaseTier.LastSyncRecord").Str("user_id", userID).Msg("failed to read sync record")
		return models.SyncRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	rec.Method = models.SyncMethod(method)
	rec.Outcome = models.SyncOutcome(outcome)
	return rec, nil
}
