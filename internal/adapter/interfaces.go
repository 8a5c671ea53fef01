// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport to the authoritative remote
// progress store.
//
// The primary abstraction is [RemoteStore], which decouples the remote tier
// and the reconciler from the underlying protocol. The package ships an
// HTTP/REST implementation ([NewHTTPRemoteStore]).
//
// HTTP status codes are mapped to the models error taxonomy by mapHTTPError
// so that callers can use [errors.Is] without knowing the transport: 404 is
// [models.ErrNotFound], 409 is [models.ErrVersionConflict], 5xx and
// transport failures are [models.ErrTierUnavailable].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-save-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// RemoteStore defines transport-agnostic communication with the progress
// server. The server identifies the player from the bearer token; the
// userID arguments are checked against it.
type RemoteStore interface {
	// SetToken stores the bearer token attached to every request.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter.
	Token() string

	// SaveProgress uploads a full snapshot. Returns a wrapped
	// [models.ErrVersionConflict] when the server holds the same or a newer
	// version.
	SaveProgress(ctx context.Context, snapshot models.Snapshot) (models.RemoteMeta, error)

	// SaveDelta uploads a delta. Returns a wrapped
	// [models.ErrVersionConflict] when the server is not at the delta's
	// base version.
	SaveDelta(ctx context.Context, delta models.Delta) (models.RemoteMeta, error)

	// LoadProgress downloads the full snapshot of userID.
	LoadProgress(ctx context.Context, userID string) (models.Snapshot, error)

	// LoadMeta fetches version and lastModified only.
	LoadMeta(ctx context.Context, userID string) (models.RemoteMeta, error)

	// DeleteProgress removes the remote progress and its history.
	DeleteProgress(ctx context.Context, userID string) error
}
