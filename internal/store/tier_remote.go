package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/models"
)

// RemoteTier writes through to the authoritative remote store. It keeps no
// backups or emergency slot of its own: the server keeps the history.
type RemoteTier struct {
	client  RemoteClient
	timeout time.Duration
	logger  *logger.Logger
	name    models.TierName
}

const defaultRemoteTimeout = 10 * time.Second

// NewRemoteTier wraps client; every call runs under timeout.
func NewRemoteTier(client RemoteClient, timeout time.Duration, log *logger.Logger) *RemoteTier {
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	return &RemoteTier{
		client:  client,
		timeout: timeout,
		logger:  log,
		name:    models.TierRemote,
	}
}

func (r *RemoteTier) Name() models.TierName {
	return r.name
}

// Save pushes the delta when one is given and falls back to the full
// snapshot on a version conflict.
func (r *RemoteTier) Save(ctx context.Context, userID string, snapshot models.Snapshot, opts models.SaveOptions) models.StorageResult {
	op := begin(r.name, opSave)
	if err := checkUser(userID); err != nil {
		return op.fail(err)
	}
	if opts.Emergency {
		return op.fail(fmt.Errorf("%w: emergency slot", ErrUnsupported))
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if opts.Delta != nil {
		meta, err := r.client.SaveDelta(ctx, *opts.Delta)
		if err == nil {
			res := op.saved(snapshot, encodedSize(opts.Delta))
			res.Version = meta.Version
			return res
		}
		if !errors.Is(err, models.ErrVersionConflict) {
			r.logger.Err(err).Str("func", "RemoteTier.Save").Str("user_id", userID).Msg("failed to push delta")
			return op.fail(err)
		}
		r.logger.Info().
			Str("func", "RemoteTier.Save").
			Str("user_id", userID).
			Int64("base_version", opts.Delta.BaseVersion).
			Msg("remote rejected delta, sending full snapshot")
	}

	meta, err := r.client.SaveProgress(ctx, snapshot)
	if err != nil {
		r.logger.Err(err).Str("func", "RemoteTier.Save").Str("user_id", userID).Msg("failed to push snapshot")
		return op.fail(err)
	}

	res := op.saved(snapshot, encodedSize(snapshot))
	res.Version = meta.Version
	return res
}

func (r *RemoteTier) Load(ctx context.Context, userID string, opts models.LoadOptions) models.StorageResult {
	op := begin(r.name, opLoad)
	if err := checkUser(userID); err != nil {
		return op.fail(err)
	}
	if opts.Emergency || opts.Backup > 0 {
		return op.fail(fmt.Errorf("%w: backups", ErrUnsupported))
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	snapshot, err := r.client.LoadProgress(ctx, userID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			r.logger.Err(err).Str("func", "RemoteTier.Load").Str("user_id", userID).Msg("failed to load snapshot")
		}
		return op.fail(err)
	}
	return op.loaded(snapshot, encodedSize(snapshot))
}

func (r *RemoteTier) Delete(ctx context.Context, userID string) bool {
	op := begin(r.name, opDelete)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.client.DeleteProgress(ctx, userID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		r.logger.Err(err).Str("func", "RemoteTier.Delete").Str("user_id", userID).Msg("failed to delete remote progress")
		return op.flag(false)
	}
	return op.flag(true)
}

func (r *RemoteTier) Exists(ctx context.Context, key string) bool {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.client.LoadMeta(ctx, key)
	return err == nil
}

// Clear is not offered by the remote store; progress of other users is
// never touched from a client.
func (r *RemoteTier) Clear(_ context.Context) bool {
	return begin(r.name, opClear).flag(false)
}
