// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-save-keeper/internal/crypto"
	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/models"
)

const recordFileExt = ".json"

// recordCodec turns the per-user document into file bytes and back.
type recordCodec interface {
	encode(userID string, recs userRecords) ([]byte, error)
	decode(userID string, data []byte) (userRecords, error)
}

type plainCodec struct{}

func (plainCodec) encode(_ string, recs userRecords) ([]byte, error) {
	data, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingRecord, err)
	}
	return data, nil
}

func (plainCodec) decode(_ string, data []byte) (userRecords, error) {
	var recs userRecords
	if err := json.Unmarshal(data, &recs); err != nil {
		return userRecords{}, fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}
	return recs, nil
}

// sealedFile is the on-disk layout of the device tier. Payload is the
// encrypted JSON of userRecords bound to UserID.
type sealedFile struct {
	UserID  string `json:"userId"`
	Payload string `json:"payload"`
}

type sealedCodec struct {
	encryptor crypto.Encryptor
}

func (c sealedCodec) encode(userID string, recs userRecords) ([]byte, error) {
	plain, err := plainCodec{}.encode(userID, recs)
	if err != nil {
		return nil, err
	}

	blob, err := c.encryptor.Encrypt(plain, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingRecord, err)
	}

	data, err := json.Marshal(sealedFile{UserID: userID, Payload: blob})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingRecord, err)
	}
	return data, nil
}

func (c sealedCodec) decode(userID string, data []byte) (userRecords, error) {
	var f sealedFile
	if err := json.Unmarshal(data, &f); err != nil {
		return userRecords{}, fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}
	if f.UserID != userID {
		return userRecords{}, fmt.Errorf("%w: file belongs to %q", ErrDecodingRecord, f.UserID)
	}

	plain, err := c.encryptor.Decrypt(f.Payload, userID)
	if err != nil {
		return userRecords{}, fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}
	return plainCodec{}.decode(userID, plain)
}

// FileTier stores one JSON document per user in a directory. Writes are
// atomic; a crash leaves either the previous or the new document.
type FileTier struct {
	name      models.TierName
	dir       string
	codec     recordCodec
	retention int
	logger    *logger.Logger

	mu sync.Mutex
}

// NewDeviceTier returns the durable on-device tier rooted at dir. Every
// document is encrypted for its user by encryptor.
func NewDeviceTier(dir string, encryptor crypto.Encryptor, retention int, log *logger.Logger) (*FileTier, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		log.Err(err).Str("func", "NewDeviceTier").Str("dir", dir).Msg("error creating device tier directory")
		return nil, fmt.Errorf("%w: %w", ErrWritingFile, err)
	}

	return &FileTier{
		name:      models.TierDevice,
		dir:       dir,
		codec:     sealedCodec{encryptor: encryptor},
		retention: retention,
		logger:    log,
	}, nil
}

func (t *FileTier) Name() models.TierName {
	return t.name
}

// Dir returns the directory holding the documents.
func (t *FileTier) Dir() string {
	return t.dir
}

// fileKey keeps arbitrary user ids safe as file names.
func fileKey(userID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(userID))
}

func (t *FileTier) path(userID string) string {
	return filepath.Join(t.dir, fileKey(userID)+recordFileExt)
}

// read returns an empty document when the user has no file yet.
func (t *FileTier) read(userID string) (userRecords, error) {
	data, err := os.ReadFile(t.path(userID))
	if errors.Is(err, fs.ErrNotExist) {
		return userRecords{}, nil
	}
	if err != nil {
		return userRecords{}, fmt.Errorf("%w: %w", ErrReadingFile, err)
	}
	return t.codec.decode(userID, data)
}

func (t *FileTier) write(userID string, recs userRecords) (int, error) {
	data, err := t.codec.encode(userID, recs)
	if err != nil {
		return 0, err
	}
	if err = writeFileAtomic(t.path(userID), data); err != nil {
		return 0, err
	}
	return len(data), nil
}

func (t *FileTier) Save(ctx context.Context, userID string, snapshot models.Snapshot, opts models.SaveOptions) models.StorageResult {
	op := begin(t.name, opSave)
	if err := checkUser(userID); err != nil {
		return op.fail(err)
	}
	if err := ctx.Err(); err != nil {
		return op.fail(err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	recs, err := t.read(userID)
	if err != nil {
		// an unreadable document is replaced rather than blocking every save
		t.logger.Warn().Err(err).
			Str("func", "FileTier.Save").
			Str("tier", string(t.name)).
			Str("user_id", userID).
			Msg("discarding unreadable record file")
		recs = userRecords{}
	}

	recs.save(snapshot, opts, t.retention, time.Now())

	size, err := t.write(userID, recs)
	if err != nil {
		t.logger.Err(err).
			Str("func", "FileTier.Save").
			Str("tier", string(t.name)).
			Str("user_id", userID).
			Msg("error writing record file")
		return op.fail(fmt.Errorf("%w: %w", models.ErrTierUnavailable, err))
	}

	return op.saved(snapshot, size)
}

func (t *FileTier) Load(ctx context.Context, userID string, opts models.LoadOptions) models.StorageResult {
	op := begin(t.name, opLoad)
	if err := checkUser(userID); err != nil {
		return op.fail(err)
	}
	if err := ctx.Err(); err != nil {
		return op.fail(err)
	}

	t.mu.Lock()
	recs, err := t.read(userID)
	t.mu.Unlock()
	if err != nil {
		t.logger.Err(err).
			Str("func", "FileTier.Load").
			Str("tier", string(t.name)).
			Str("user_id", userID).
			Msg("error reading record file")
		return op.fail(err)
	}

	snapshot, err := recs.load(opts)
	if err != nil {
		return op.fail(err)
	}
	return op.loaded(snapshot, encodedSize(snapshot))
}

func (t *FileTier) Delete(_ context.Context, userID string) bool {
	op := begin(t.name, opDelete)

	t.mu.Lock()
	defer t.mu.Unlock()

	err := os.Remove(t.path(userID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		t.logger.Err(err).
			Str("func", "FileTier.Delete").
			Str("tier", string(t.name)).
			Str("user_id", userID).
			Msg("error removing record file")
		return op.flag(false)
	}
	return op.flag(true)
}

func (t *FileTier) Exists(_ context.Context, key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	recs, err := t.read(key)
	return err == nil && recs.Record != nil
}

func (t *FileTier) Clear(_ context.Context) bool {
	op := begin(t.name, opClear)

	t.mu.Lock()
	defer t.mu.Unlock()

	entries, err := os.ReadDir(t.dir)
	if err != nil {
		t.logger.Err(err).Str("func", "FileTier.Clear").Str("tier", string(t.name)).Msg("error listing records")
		return op.flag(false)
	}

	ok := true
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), recordFileExt) {
			continue
		}
		if err = os.Remove(filepath.Join(t.dir, e.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			t.logger.Err(err).Str("func", "FileTier.Clear").Str("file", e.Name()).Msg("error removing record file")
			ok = false
		}
	}
	return op.flag(ok)
}
