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

// progressRepository is the PostgreSQL-backed implementation of
// [ProgressRepository]. Writes are guarded by an optimistic version check
// under a row lock; the replaced record moves to progress_history, which is
// pruned to the retention.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext].
type progressRepository struct {
	*DB
	retention int
}

// NewProgressRepository constructs a [ProgressRepository] keeping retention
// history entries per user.
func NewProgressRepository(db *DB, retention int) ProgressRepository {
	return &progressRepository{
		DB:        db,
		retention: retention,
	}
}

func (p *progressRepository) SaveProgress(ctx context.Context, snapshot models.Snapshot) (models.RemoteMeta, error) {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return models.RemoteMeta{}, fmt.Errorf("%w: %w", ErrEncodingRecord, err)
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "progressRepository.SaveProgress").
			Str("user_id", snapshot.UserID).
			Msg("failed to begin transaction")
		return models.RemoteMeta{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, p.classifyDBError(err))
	}
	defer tx.Rollback()

	b := p.builder()

	selectQuery, selectArgs, err := b.Select("snapshot", "version").
		From(tableProgress).
		Where(sq.Eq{"user_id": snapshot.UserID}).
		Suffix(lockProgressRow).
		ToSql()
	if err != nil {
		return models.RemoteMeta{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		current        []byte
		currentVersion int64
	)
	err = tx.QueryRowContext(ctx, selectQuery, selectArgs...).Scan(&current, &currentVersion)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = p.insertProgress(ctx, tx, snapshot, payload)
	case err != nil:
		log.Err(err).
			Str("func", "progressRepository.SaveProgress").
			Str("user_id", snapshot.UserID).
			Msg("failed to read current progress")
		return models.RemoteMeta{}, fmt.Errorf("%w: %w", ErrScanningRow, p.classifyDBError(err))
	case snapshot.Version <= currentVersion:
		log.Info().
			Str("func", "progressRepository.SaveProgress").
			Str("user_id", snapshot.UserID).
			Int64("stored_version", currentVersion).
			Int64("incoming_version", snapshot.Version).
			Msg("rejected stale progress")
		return models.RemoteMeta{}, fmt.Errorf("%w: stored %d, incoming %d", models.ErrVersionConflict, currentVersion, snapshot.Version)
	default:
		err = p.replaceProgress(ctx, tx, snapshot, payload, current, currentVersion)
	}
	if err != nil {
		log.Err(err).
			Str("func", "progressRepository.SaveProgress").
			Str("user_id", snapshot.UserID).
			Msg("failed to store progress")
		return models.RemoteMeta{}, err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "progressRepository.SaveProgress").
			Str("user_id", snapshot.UserID).
			Msg("failed to commit transaction")
		return models.RemoteMeta{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, p.classifyDBError(err))
	}

	return models.RemoteMeta{Version: snapshot.Version, LastModified: snapshot.LastModified}, nil
}

// insertProgress stores the first record of a user. A concurrent first write
// surfaces as a unique violation, i.e. a version conflict.
func (p *progressRepository) insertProgress(ctx context.Context, tx *sql.Tx, snapshot models.Snapshot, payload []byte) error {
	query, args, err := p.builder().
		Insert(tableProgress).
		Columns("user_id", "snapshot", "version", "last_modified").
		Values(snapshot.UserID, payload, snapshot.Version, snapshot.LastModified).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, p.classifyDBError(err))
	}
	return nil
}

func (p *progressRepository) replaceProgress(ctx context.Context, tx *sql.Tx, snapshot models.Snapshot, payload, current []byte, currentVersion int64) error {
	b := p.builder()

	historyQuery, historyArgs, err := b.Insert(tableProgressHistory).
		Columns("user_id", "snapshot", "version").
		Values(snapshot.UserID, current, currentVersion).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, historyQuery, historyArgs...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, p.classifyDBError(err))
	}

	updateQuery, updateArgs, err := b.Update(tableProgress).
		Set("snapshot", payload).
		Set("version", snapshot.Version).
		Set("last_modified", snapshot.LastModified).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"user_id": snapshot.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, p.classifyDBError(err))
	}

	pruneQuery, pruneArgs, err := b.Delete(tableProgressHistory).
		Where(sq.Eq{"user_id": snapshot.UserID}).
		Where(sq.Expr(keepNewestHistory, snapshot.UserID, p.retention)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, pruneQuery, pruneArgs...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, p.classifyDBError(err))
	}
	return nil
}

func (p *progressRepository) LoadProgress(ctx context.Context, userID string) (models.Snapshot, error) {
	log := logger.FromContext(ctx)

	query, args, err := p.builder().
		Select("snapshot").
		From(tableProgress).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var payload []byte
	err = p.DB.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Snapshot{}, models.ErrNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "progressRepository.LoadProgress").
			Str("user_id", userID).
			Msg("failed to read progress")
		return models.Snapshot{}, fmt.Errorf("%w: %w", ErrScanningRow, p.classifyDBError(err))
	}

	var snapshot models.Snapshot
	if err = json.Unmarshal(payload, &snapshot); err != nil {
		log.Err(err).
			Str("func", "progressRepository.LoadProgress").
			Str("user_id", userID).
			Msg("failed to decode progress")
		return models.Snapshot{}, fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}
	return snapshot, nil
}

func (p *progressRepository) LoadMeta(ctx context.Context, userID string) (models.RemoteMeta, error) {
	query, args, err := p.builder().
		Select("version", "last_modified").
		From(tableProgress).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return models.RemoteMeta{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var meta models.RemoteMeta
	err = p.DB.QueryRowContext(ctx, query, args...).Scan(&meta.Version, &meta.LastModified)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RemoteMeta{}, models.ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "progressRepository.LoadMeta").
			Str("user_id", userID).
			Msg("failed to read progress metadata")
		return models.RemoteMeta{}, fmt.Errorf("%w: %w", ErrScanningRow, p.classifyDBError(err))
	}
	return meta, nil
}

func (p *progressRepository) LoadBackups(ctx context.Context, userID string) ([]models.BackupRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := p.builder().
		Select("snapshot", "version", "created_at").
		From(tableProgressHistory).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "progressRepository.LoadBackups").
			Str("user_id", userID).
			Msg("failed to execute query for progress history")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, p.classifyDBError(err))
	}
	defer rows.Close()

	backups := make([]models.BackupRecord, 0, p.retention)
	for rows.Next() {
		var (
			payload   []byte
			rec       models.BackupRecord
			createdAt time.Time
		)
		if err = rows.Scan(&payload, &rec.Version, &createdAt); err != nil {
			log.Err(err).
				Str("func", "progressRepository.LoadBackups").
				Str("user_id", userID).
				Msg("failed to scan progress history row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if err = json.Unmarshal(payload, &rec.Snapshot); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodingRecord, err)
		}
		rec.Timestamp = createdAt.UnixMilli()
		backups = append(backups, rec)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).
			Str("func", "progressRepository.LoadBackups").
			Str("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return backups, nil
}

// DeleteProgress removes the record and the history of a user. Deleting an
// unknown user is not an error.
func (p *progressRepository) DeleteProgress(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "progressRepository.DeleteProgress").Str("user_id", userID).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, p.classifyDBError(err))
	}
	defer tx.Rollback()

	for _, table := range []string{tableProgressHistory, tableProgress} {
		query, args, err := p.builder().Delete(table).Where(sq.Eq{"user_id": userID}).ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "progressRepository.DeleteProgress").
				Str("user_id", userID).
				Str("table", table).
				Msg("failed to delete progress")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, p.classifyDBError(err))
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "progressRepository.DeleteProgress").Str("user_id", userID).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, p.classifyDBError(err))
	}
	return nil
}
