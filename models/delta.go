// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// OperationType is the kind of a single patch operation (RFC 6902 subset).
type OperationType string

const (
	OpAdd     OperationType = "add"
	OpRemove  OperationType = "remove"
	OpReplace OperationType = "replace"
	OpMove    OperationType = "move"
	OpCopy    OperationType = "copy"
	OpTest    OperationType = "test"
)

// Operation addresses one field of a snapshot by JSON pointer (RFC 6901).
// From is only set for move and copy.
type Operation struct {
	Op    OperationType   `json:"op"`
	Path  string          `json:"path"`
	From  string          `json:"from,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

// Delta is a patch between two consecutive versions of the same user's
// snapshot. It applies only to a snapshot whose Version equals BaseVersion.
type Delta struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	BaseVersion int64       `json:"baseVersion"`
	NewVersion  int64       `json:"newVersion"`
	CreatedAt   int64       `json:"createdAt"`
	ClientID    string      `json:"clientId"`
	ChangeCount int         `json:"changeCount"`
	Operations  []Operation `json:"operations"`
}
