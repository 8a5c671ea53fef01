package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-save-keeper/internal/delta"
	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/store"
	"github.com/MKhiriev/go-save-keeper/models"
)

type serverProgressService struct {
	repo  store.ProgressRepository
	codec *delta.Codec

	logger *logger.Logger
}

// NewServerProgressService returns the progress service behind the HTTP API.
func NewServerProgressService(repo store.ProgressRepository, codec *delta.Codec, logger *logger.Logger) ServerProgressService {
	if codec == nil {
		codec = delta.NewCodec()
	}
	return &serverProgressService{
		repo:   repo,
		codec:  codec,
		logger: logger,
	}
}

func (s *serverProgressService) SaveProgress(ctx context.Context, userID string, snapshot models.Snapshot) (models.RemoteMeta, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return models.RemoteMeta{}, models.ErrEmptyUserID
	}
	if snapshot.UserID == "" {
		snapshot.UserID = userID
	}
	if snapshot.UserID != userID {
		log.Warn().Str("func", "serverProgressService.SaveProgress").
			Str("user_id", userID).
			Str("snapshot_user", snapshot.UserID).
			Msg("snapshot belongs to another user")
		return models.RemoteMeta{}, fmt.Errorf("%w: %w", models.ErrValidation, ErrUserMismatch)
	}

	meta, err := s.repo.SaveProgress(ctx, snapshot)
	if err != nil {
		log.Err(err).Str("func", "serverProgressService.SaveProgress").
			Str("user_id", userID).
			Int64("version", snapshot.Version).
			Msg("error saving progress")
		return models.RemoteMeta{}, err
	}

	return meta, nil
}

// SaveDelta applies d to the stored copy. A delta built against another
// version than the stored one, or for a user with no stored copy, yields
// [models.ErrVersionConflict] so the client falls back to a full upload.
func (s *serverProgressService) SaveDelta(ctx context.Context, userID string, d models.Delta) (models.RemoteMeta, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return models.RemoteMeta{}, models.ErrEmptyUserID
	}
	if d.UserID == "" {
		d.UserID = userID
	}
	if d.UserID != userID {
		return models.RemoteMeta{}, fmt.Errorf("%w: %w", models.ErrValidation, ErrUserMismatch)
	}

	base, err := s.repo.LoadProgress(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return models.RemoteMeta{}, fmt.Errorf("%w: no stored progress to apply the delta to", models.ErrVersionConflict)
	}
	if err != nil {
		log.Err(err).Str("func", "serverProgressService.SaveDelta").Str("user_id", userID).Msg("error loading base snapshot")
		return models.RemoteMeta{}, err
	}

	next, err := s.codec.Apply(base, d)
	if err != nil {
		log.Warn().Err(err).Str("func", "serverProgressService.SaveDelta").
			Str("user_id", userID).
			Int64("stored", base.Version).
			Int64("base", d.BaseVersion).
			Msg("delta rejected")
		return models.RemoteMeta{}, err
	}

	return s.SaveProgress(ctx, userID, next)
}

func (s *serverProgressService) LoadProgress(ctx context.Context, userID string) (models.Snapshot, error) {
	if userID == "" {
		return models.Snapshot{}, models.ErrEmptyUserID
	}
	return s.repo.LoadProgress(ctx, userID)
}

func (s *serverProgressService) LoadMeta(ctx context.Context, userID string) (models.RemoteMeta, error) {
	if userID == "" {
		return models.RemoteMeta{}, models.ErrEmptyUserID
	}
	return s.repo.LoadMeta(ctx, userID)
}

func (s *serverProgressService) DeleteProgress(ctx context.Context, userID string) error {
	if userID == "" {
		return models.ErrEmptyUserID
	}
	if err := s.repo.DeleteProgress(ctx, userID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "serverProgressService.DeleteProgress").Str("user_id", userID).Msg("error deleting progress")
		return err
	}
	return nil
}
