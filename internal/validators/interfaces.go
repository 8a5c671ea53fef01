// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks snapshots and deltas against the structural
// invariants of the progress model and repairs what can be repaired.
//
// Core concepts:
//   - Validator: generic interface returning a single error for any value.
//   - Integrity: snapshot-specific contract producing a full [Report] and a
//     repaired copy together with the list of repaired field paths.
//
// Repair never raises values: fill is clamped down to capacity, invalid
// numbers are replaced by the documented defaults and missing sections are
// rebuilt from defaults.
package validators

import (
	"context"

	"github.com/MKhiriev/go-save-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/validators_mock.go -package=mock

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {
	// Validate validates the provided input and optionally restricts
	// validation to the named sections ("critical", "regular", "extended").
	Validate(context.Context, any, ...string) error
}

// Integrity is the validate/repair contract used by the storage engine.
type Integrity interface {
	// Check reports every error and warning found in s.
	Check(s models.Snapshot, sections ...string) Report

	// Repair returns a corrected copy of s and the repaired field paths.
	// A valid snapshot is returned unchanged with an empty list.
	Repair(s models.Snapshot) (models.Snapshot, []string)
}
