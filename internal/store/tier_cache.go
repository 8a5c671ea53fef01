package store

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-save-keeper/internal/delta"
	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/metrics"
	"github.com/MKhiriev/go-save-keeper/internal/validators"
	"github.com/MKhiriev/go-save-keeper/models"
)

const (
	cacheKeyPrefix = "progress:"

	defaultCacheTimeout = 2 * time.Second

	warnFallback         = "served by in-process fallback cache"
	warnChecksumMismatch = "critical checksum mismatch in cache"
)

// CacheOptions tunes [NewCacheTier].
type CacheOptions struct {
	OperationTimeout time.Duration
	Backoff          BackoffPolicy
	// DeltaWindow is the longest delta chain kept before a full snapshot
	// is written again.
	DeltaWindow int
	Retention   int
}

// cacheMeta is stored beside the base snapshot of a user.
type cacheMeta struct {
	Version      int64  `json:"version"`
	LastModified int64  `json:"lastModified"`
	Checksum     string `json:"checksum"`
	Deltas       int    `json:"deltas"`
}

// CacheTier stores gzip-compressed records in a networked cache. Every write
// is mirrored to an in-process fallback first, so the tier keeps answering
// while the cache is unreachable.
type CacheTier struct {
	client   CacheClient
	conn     *cacheConnection
	fallback *MemoryTier
	codec    *delta.Codec
	opts     CacheOptions
	logger   *logger.Logger
	name     models.TierName
}

// NewCacheTier wraps client. Call Connect before use.
func NewCacheTier(client CacheClient, opts CacheOptions, log *logger.Logger) *CacheTier {
	if opts.DeltaWindow <= 0 {
		opts.DeltaWindow = delta.DefaultWindow
	}
	if opts.OperationTimeout <= 0 {
		opts.OperationTimeout = defaultCacheTimeout
	}
	return &CacheTier{
		client:   client,
		conn:     newCacheConnection(client, opts.Backoff, opts.OperationTimeout, log),
		fallback: NewMemoryTier(opts.Retention),
		codec:    delta.NewCodec(),
		opts:     opts,
		logger:   log,
		name:     models.TierCache,
	}
}

func (c *CacheTier) Name() models.TierName {
	return c.name
}

// Connect makes the first connection attempt; on failure reconnection
// continues in the background and the fallback serves requests.
func (c *CacheTier) Connect(ctx context.Context) error {
	return c.conn.connect(ctx)
}

// State returns the current connection state.
func (c *CacheTier) State() CacheState {
	return c.conn.State()
}

// Probe checks the liveness of the cache.
func (c *CacheTier) Probe(ctx context.Context) CacheState {
	return c.conn.probe(ctx)
}

// Reinitialize resets the retry budget and reconnects.
func (c *CacheTier) Reinitialize(ctx context.Context) error {
	return c.conn.reinitialize(ctx)
}

// Close stops reconnection and closes the client.
func (c *CacheTier) Close() error {
	c.conn.close()
	return c.client.Close()
}

func baseKey(userID string) string      { return cacheKeyPrefix + userID }
func metaKey(userID string) string      { return cacheKeyPrefix + userID + ":meta" }
func deltasKey(userID string) string    { return cacheKeyPrefix + userID + ":deltas" }
func backupsKey(userID string) string   { return cacheKeyPrefix + userID + ":backups" }
func emergencyKey(userID string) string { return cacheKeyPrefix + userID + ":emergency" }

// call runs fn under the operation timeout and feeds failures to the state
// machine.
func (c *CacheTier) call(ctx context.Context, fn func(ctx context.Context) error) error {
	if c.conn.State() != CacheConnected {
		return ErrCacheUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.OperationTimeout)
	defer cancel()

	err := timeoutError(fn(ctx))
	if err != nil && !errors.Is(err, ErrCacheMiss) && !errors.Is(err, ErrDecodingRecord) {
		c.conn.fail(err)
		if !errors.Is(err, models.ErrTierUnavailable) {
			err = fmt.Errorf("%w: %w", models.ErrTierUnavailable, err)
		}
	}
	return err
}

func compress(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingRecord, err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err = zw.Write(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingRecord, err)
	}
	if err = zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingRecord, err)
	}
	return buf.Bytes(), nil
}

func decompress(data []byte, v any) error {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}
	if err = json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}
	return nil
}

func (c *CacheTier) Save(ctx context.Context, userID string, snapshot models.Snapshot, opts models.SaveOptions) models.StorageResult {
	op := begin(c.name, opSave)
	if err := checkUser(userID); err != nil {
		return op.fail(err)
	}

	if fb := c.fallback.Save(ctx, userID, snapshot, opts); !fb.Success {
		return op.fail(fb.Err)
	}

	var (
		size int
		err  error
	)
	switch {
	case opts.Emergency:
		size, err = c.saveEmergency(ctx, userID, snapshot)
	case opts.Delta != nil:
		size, err = c.saveDelta(ctx, userID, snapshot, *opts.Delta)
	default:
		size, err = c.saveFull(ctx, userID, snapshot)
	}
	if err != nil {
		c.logger.Warn().Err(err).
			Str("func", "CacheTier.Save").
			Str("user_id", userID).
			Msg("cache write failed, kept in fallback")
		metrics.CountCacheFallback()
		r := op.saved(snapshot, encodedSize(snapshot))
		r.Warning = warnFallback
		return r
	}

	return op.saved(snapshot, size)
}

func (c *CacheTier) saveEmergency(ctx context.Context, userID string, snapshot models.Snapshot) (int, error) {
	payload, err := compress(models.NewBackupRecord(snapshot, time.Now()))
	if err != nil {
		return 0, err
	}
	return len(payload), c.call(ctx, func(ctx context.Context) error {
		return c.client.Set(ctx, emergencyKey(userID), payload, 0)
	})
}

// saveDelta appends d to the user's delta list when it extends the cached
// chain; otherwise it falls back to a full write.
func (c *CacheTier) saveDelta(ctx context.Context, userID string, snapshot models.Snapshot, d models.Delta) (int, error) {
	meta, err := c.readMeta(ctx, userID)
	if err != nil && !errors.Is(err, ErrCacheMiss) {
		return 0, err
	}
	if err != nil || meta.Version != d.BaseVersion || d.NewVersion != snapshot.Version || meta.Deltas >= c.opts.DeltaWindow {
		return c.saveFull(ctx, userID, snapshot)
	}

	payload, err := json.Marshal(d)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrEncodingRecord, err)
	}

	checksum, err := validators.ChecksumCritical(snapshot.Critical)
	if err != nil {
		return 0, err
	}

	err = c.call(ctx, func(ctx context.Context) error {
		if err := c.client.RPush(ctx, deltasKey(userID), payload, c.opts.DeltaWindow); err != nil {
			return err
		}
		return c.writeMeta(ctx, userID, cacheMeta{
			Version:      snapshot.Version,
			LastModified: snapshot.LastModified,
			Checksum:     checksum,
			Deltas:       meta.Deltas + 1,
		})
	})
	return len(payload), err
}

// saveFull moves the current cached state into the backup list, writes the
// snapshot as the new base and resets the delta list.
func (c *CacheTier) saveFull(ctx context.Context, userID string, snapshot models.Snapshot) (int, error) {
	prev, _, err := c.current(ctx, userID)
	switch {
	case errors.Is(err, ErrCacheMiss):
	case err != nil:
		return 0, err
	default:
		backup, err := compress(models.NewBackupRecord(prev, time.Now()))
		if err != nil {
			return 0, err
		}
		if err = c.call(ctx, func(ctx context.Context) error {
			return c.client.RPush(ctx, backupsKey(userID), backup, c.opts.Retention)
		}); err != nil {
			return 0, err
		}
	}

	payload, err := compress(snapshot)
	if err != nil {
		return 0, err
	}
	checksum, err := validators.ChecksumCritical(snapshot.Critical)
	if err != nil {
		return 0, err
	}

	err = c.call(ctx, func(ctx context.Context) error {
		if err := c.client.Set(ctx, baseKey(userID), payload, 0); err != nil {
			return err
		}
		if err := c.client.Del(ctx, deltasKey(userID)); err != nil {
			return err
		}
		return c.writeMeta(ctx, userID, cacheMeta{
			Version:      snapshot.Version,
			LastModified: snapshot.LastModified,
			Checksum:     checksum,
		})
	})
	return len(payload), err
}

func (c *CacheTier) readMeta(ctx context.Context, userID string) (cacheMeta, error) {
	var meta cacheMeta
	err := c.call(ctx, func(ctx context.Context) error {
		data, err := c.client.Get(ctx, metaKey(userID))
		if err != nil {
			return err
		}
		if err = json.Unmarshal(data, &meta); err != nil {
			return fmt.Errorf("%w: %w", ErrDecodingRecord, err)
		}
		return nil
	})
	return meta, err
}

func (c *CacheTier) writeMeta(ctx context.Context, userID string, meta cacheMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, metaKey(userID), data, 0)
}

// current rebuilds the cached state: base snapshot plus the outstanding
// deltas. The second return value is false when the critical checksum does
// not match the one stored beside the base.
func (c *CacheTier) current(ctx context.Context, userID string) (models.Snapshot, bool, error) {
	var (
		base    models.Snapshot
		meta    cacheMeta
		entries [][]byte
	)
	err := c.call(ctx, func(ctx context.Context) error {
		data, err := c.client.Get(ctx, baseKey(userID))
		if err != nil {
			return err
		}
		if err = decompress(data, &base); err != nil {
			return err
		}

		raw, err := c.client.Get(ctx, metaKey(userID))
		if err != nil {
			return err
		}
		if err = json.Unmarshal(raw, &meta); err != nil {
			return fmt.Errorf("%w: %w", ErrDecodingRecord, err)
		}

		entries, err = c.client.LRange(ctx, deltasKey(userID))
		return err
	})
	if err != nil {
		return models.Snapshot{}, false, err
	}

	if len(entries) > 0 {
		deltas := make([]models.Delta, 0, len(entries))
		for _, e := range entries {
			var d models.Delta
			if err = json.Unmarshal(e, &d); err != nil {
				return models.Snapshot{}, false, fmt.Errorf("%w: %w", ErrDecodingRecord, err)
			}
			if d.BaseVersion >= base.Version {
				deltas = append(deltas, d)
			}
		}
		if base, err = c.codec.ApplyAll(base, deltas); err != nil {
			return models.Snapshot{}, false, err
		}
		base.LastModified = meta.LastModified
	}

	checksum, err := validators.ChecksumCritical(base.Critical)
	if err != nil {
		return models.Snapshot{}, false, err
	}
	return base, checksum == meta.Checksum, nil
}

func (c *CacheTier) Load(ctx context.Context, userID string, opts models.LoadOptions) models.StorageResult {
	op := begin(c.name, opLoad)
	if err := checkUser(userID); err != nil {
		return op.fail(err)
	}

	var (
		snapshot models.Snapshot
		intact   = true
		err      error
	)
	switch {
	case opts.Emergency:
		snapshot, err = c.loadBackupRecord(ctx, emergencyKey(userID), 0)
	case opts.Backup > 0:
		snapshot, err = c.loadBackupRecord(ctx, backupsKey(userID), opts.Backup)
	default:
		snapshot, intact, err = c.current(ctx, userID)
	}

	fb := c.fallback.Load(ctx, userID, opts)

	switch {
	case err == nil:
		// the fallback may hold writes made while the cache was down
		if fb.Success && fb.Snapshot.Version > snapshot.Version {
			r := op.loaded(*fb.Snapshot, fb.Size)
			r.Warning = warnFallback
			return r
		}
		r := op.loaded(snapshot, encodedSize(snapshot))
		if !intact {
			c.logger.Warn().
				Str("func", "CacheTier.Load").
				Str("user_id", userID).
				Msg(warnChecksumMismatch)
			r.Warning = warnChecksumMismatch
		}
		return r

	case fb.Success:
		metrics.CountCacheFallback()
		r := op.loaded(*fb.Snapshot, fb.Size)
		r.Warning = warnFallback
		return r

	case errors.Is(err, ErrCacheMiss):
		return op.fail(fb.Err)

	default:
		return op.fail(err)
	}
}

// loadBackupRecord reads a single backup record (n == 0) or the n-th most
// recent entry of a backup list.
func (c *CacheTier) loadBackupRecord(ctx context.Context, key string, n int) (models.Snapshot, error) {
	var rec models.BackupRecord
	err := c.call(ctx, func(ctx context.Context) error {
		if n == 0 {
			data, err := c.client.Get(ctx, key)
			if err != nil {
				return err
			}
			return decompress(data, &rec)
		}

		entries, err := c.client.LRange(ctx, key)
		if err != nil {
			return err
		}
		if n > len(entries) {
			return ErrCacheMiss
		}
		return decompress(entries[len(entries)-n], &rec)
	})
	return rec.Snapshot, err
}

func (c *CacheTier) Delete(ctx context.Context, userID string) bool {
	op := begin(c.name, opDelete)

	ok := c.fallback.Delete(ctx, userID)
	err := c.call(ctx, func(ctx context.Context) error {
		return c.client.Del(ctx, baseKey(userID), metaKey(userID), deltasKey(userID), backupsKey(userID), emergencyKey(userID))
	})
	if err != nil {
		c.logger.Err(err).Str("func", "CacheTier.Delete").Str("user_id", userID).Msg("failed to delete cached records")
		return op.flag(false)
	}
	return op.flag(ok)
}

func (c *CacheTier) Exists(ctx context.Context, key string) bool {
	var found bool
	err := c.call(ctx, func(ctx context.Context) error {
		var err error
		found, err = c.client.Exists(ctx, baseKey(key))
		return err
	})
	if err == nil && found {
		return true
	}
	return c.fallback.Exists(ctx, key)
}

func (c *CacheTier) Clear(ctx context.Context) bool {
	op := begin(c.name, opClear)

	c.fallback.Clear(ctx)
	err := c.call(ctx, func(ctx context.Context) error {
		return c.client.DeletePrefix(ctx, cacheKeyPrefix)
	})
	if err != nil {
		c.logger.Err(err).Str("func", "CacheTier.Clear").Msg("failed to clear cache")
		return op.flag(false)
	}
	return op.flag(true)
}
