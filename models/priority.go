// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SavePriority selects the minimum interval between two saves of one user.
type SavePriority string

const (
	PriorityLow      SavePriority = "low"
	PriorityMedium   SavePriority = "medium"
	PriorityHigh     SavePriority = "high"
	PriorityCritical SavePriority = "critical"
)

// DefaultIntervals are the minimum inter-save intervals per priority.
var DefaultIntervals = map[SavePriority]time.Duration{
	PriorityLow:      30 * time.Second,
	PriorityMedium:   5 * time.Second,
	PriorityHigh:     time.Second,
	PriorityCritical: 0,
}

// SaveRequest is what the UI hands to the orchestrator.
type SaveRequest struct {
	UserID   string
	Snapshot Snapshot
	Priority SavePriority

	// WithBackup snapshots the accepted state into the emergency store.
	WithBackup bool

	// Adopt marks a copy taken over from the remote store. Its version is
	// kept when ahead of the stored one; any other save advances by one.
	Adopt bool
}

// SaveResult is the orchestrator's answer to one save request.
type SaveResult struct {
	Success bool
	Queued  bool
	Version int64

	// Fatal is set when zero tiers accepted the write and no emergency
	// backup exists for the user.
	Fatal bool

	Message string
	Kind    ErrorKind
	Err     error

	// Tiers holds the per-tier outcome in the configured order.
	Tiers []StorageResult

	// Repaired lists the field paths fixed before writing.
	Repaired []string

	Merged bool
}

// LoadResult is the facade's answer to one load request.
type LoadResult struct {
	Success  bool
	Snapshot *Snapshot
	Source   string
	Repaired bool
	Message  string
	Kind     ErrorKind
	Err      error
}
