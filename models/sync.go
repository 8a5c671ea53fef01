// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncMethod is the transfer used to push reconciled state to the remote.
type SyncMethod string

const (
	SyncMethodNone  SyncMethod = "none"
	SyncMethodFull  SyncMethod = "full"
	SyncMethodDelta SyncMethod = "delta"
)

// SyncOutcome is the result of one reconcile cycle.
type SyncOutcome string

const (
	SyncSuccess SyncOutcome = "success"
	SyncPartial SyncOutcome = "partial"
	SyncFailed  SyncOutcome = "failed"
)

// ConflictStrategy decides which copy wins when local and remote diverged.
type ConflictStrategy string

const (
	StrategyClientWins ConflictStrategy = "client-wins"
	StrategyServerWins ConflictStrategy = "server-wins"
	StrategyMerge      ConflictStrategy = "merge"
)

// Valid reports whether s is a known strategy.
func (s ConflictStrategy) Valid() bool {
	switch s {
	case StrategyClientWins, StrategyServerWins, StrategyMerge:
		return true
	}
	return false
}

// SyncRecord is the reconciler's own bookkeeping of the last sync of a user.
// It is never part of the player-visible state.
type SyncRecord struct {
	UserID   string      `json:"userId"`
	SyncedAt int64       `json:"syncedAt"`
	Version  int64       `json:"version"`
	Method   SyncMethod  `json:"method"`
	Outcome  SyncOutcome `json:"outcome"`
}

// RemoteMeta is the cheap metadata of the remote copy, fetched before the
// full payload.
type RemoteMeta struct {
	Version      int64 `json:"version"`
	LastModified int64 `json:"lastModified"`
}

// SyncResult is the outcome of a reconcile call.
type SyncResult struct {
	Snapshot *Snapshot   `json:"snapshot,omitempty"`
	Source   string      `json:"source"`
	Method   SyncMethod  `json:"method"`
	Outcome  SyncOutcome `json:"outcome"`
	Merged   bool        `json:"merged"`
	Pushed   bool        `json:"pushed"`
	Err      error       `json:"-"`
}

// Sources reported in SyncResult.Source.
const (
	SourceLocal     = "local"
	SourceRemote    = "remote"
	SourceMerged    = "merged"
	SourceEmergency = "emergency"
	SourceDefault   = "default"
)
