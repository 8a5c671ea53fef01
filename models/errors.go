// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every component. Callers match with [errors.Is].
var (
	// ErrValidation marks a structurally invalid snapshot. Recovered locally
	// by repair and never surfaced as fatal.
	ErrValidation = errors.New("snapshot validation failed")

	// ErrVersionConflict marks a delta whose base version does not match the
	// target snapshot, or a write whose version is not newer than the stored
	// one. Triggers a fallback to full-state transfer.
	ErrVersionConflict = errors.New("version conflict")

	// ErrTierUnavailable marks an unreachable storage or cache tier.
	ErrTierUnavailable = errors.New("storage tier unavailable")

	// ErrIntegrityMismatch marks a checksum mismatch of the critical section.
	ErrIntegrityMismatch = errors.New("integrity hash mismatch")

	// ErrTimeout is a deadline hit on a networked operation. It is an
	// ErrTierUnavailable for every errors.Is check.
	ErrTimeout = fmt.Errorf("%w: timeout", ErrTierUnavailable)

	// ErrNotFound is returned when a tier holds no record for the user.
	ErrNotFound = errors.New("snapshot not found")

	// ErrEmptyUserID is returned when an operation is called without a user.
	ErrEmptyUserID = errors.New("empty user id")
)

// ErrorKind is the machine-checkable classification of a failure.
type ErrorKind string

const (
	KindNone             ErrorKind = ""
	KindValidation       ErrorKind = "validation"
	KindVersionConflict  ErrorKind = "version_conflict"
	KindTierUnavailable  ErrorKind = "tier_unavailable"
	KindIntegrity        ErrorKind = "integrity_mismatch"
	KindTimeout          ErrorKind = "timeout"
	KindNotFound         ErrorKind = "not_found"
	KindInvalidArgument  ErrorKind = "invalid_argument"
	KindInternal         ErrorKind = "internal"
	KindAllTiersRejected ErrorKind = "all_tiers_rejected"
)

// KindOf classifies err. ErrTimeout is checked before ErrTierUnavailable
// since it wraps it.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrTierUnavailable):
		return KindTierUnavailable
	case errors.Is(err, ErrVersionConflict):
		return KindVersionConflict
	case errors.Is(err, ErrIntegrityMismatch):
		return KindIntegrity
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrEmptyUserID):
		return KindInvalidArgument
	default:
		return KindInternal
	}
}
