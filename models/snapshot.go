// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Snapshot is one versioned copy of a player's persisted progress.
//
// A Snapshot is split into three priority sections:
//   - Critical: currencies, upgrade levels and container fill state; must
//     always be internally consistent and is covered by IntegrityHash.
//   - Regular: inventory items, achievements and aggregate statistics.
//   - Extended: preferences, audio settings and diagnostic logs.
//
// The repair metadata fields (WasRepaired, RepairedAt, RepairedFields)
// describe the snapshot and never participate in validation.
type Snapshot struct {
	// UserID is the stable owner identifier. Immutable once set.
	UserID string `json:"userId"`

	// Version starts at 1 on the first save and grows by exactly one per
	// successful write.
	Version int64 `json:"version"`

	// LastModified is the Unix timestamp of the last mutation in milliseconds.
	LastModified int64 `json:"lastModified"`

	Critical CriticalState `json:"critical"`
	Regular  RegularState  `json:"regular"`
	Extended ExtendedState `json:"extended"`

	// IntegrityHash is the hex SHA-256 of the canonical JSON encoding of
	// Critical. Recomputed on every write.
	IntegrityHash string `json:"integrityHash,omitempty"`

	WasRepaired    bool     `json:"wasRepaired,omitempty"`
	RepairedAt     int64    `json:"repairedAt,omitempty"`
	RepairedFields []string `json:"repairedFields,omitempty"`
}

// CriticalState holds the resource counters and upgrade levels of a player.
// Inventory and Upgrades are pointers so that a missing section can be told
// apart from a zero-valued one.
type CriticalState struct {
	Inventory *Inventory `json:"inventory,omitempty"`
	Upgrades  *Upgrades  `json:"upgrades,omitempty"`

	Coins float64 `json:"coins"`
	Gems  float64 `json:"gems"`

	ContainerSnot     float64 `json:"containerSnot"`
	ContainerCapacity float64 `json:"containerCapacity"`
	ContainerLevel    int     `json:"containerLevel"`
}

// Inventory is the player's carried resource pouch.
type Inventory struct {
	Snot     float64 `json:"snot"`
	Capacity float64 `json:"capacity"`
	Level    int     `json:"level"`
}

// Upgrades holds the purchased upgrade levels. Every level starts at 1.
type Upgrades struct {
	PickSpeed     int `json:"pickSpeed"`
	Capacity      int `json:"capacity"`
	AutoCollector int `json:"autoCollector"`
	Multiplier    int `json:"multiplier"`
}

// RegularState holds the lower-frequency part of the progress.
type RegularState struct {
	Items        []Item     `json:"items"`
	Achievements []string   `json:"achievements"`
	Statistics   Statistics `json:"statistics"`
}

// Item is a single inventory entry. Items are merged by ID.
type Item struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Quantity     int    `json:"quantity"`
	LastModified int64  `json:"lastModified"`
}

// Statistics aggregates lifetime counters.
type Statistics struct {
	TotalSnotCollected float64 `json:"totalSnotCollected"`
	TotalClicks        int64   `json:"totalClicks"`
	PlayTimeSeconds    int64   `json:"playTimeSeconds"`
	SessionsPlayed     int64   `json:"sessionsPlayed"`
}

// ExtendedState holds preferences and diagnostics. It may be dropped under
// storage pressure.
type ExtendedState struct {
	Settings      *Settings      `json:"settings,omitempty"`
	SoundSettings *SoundSettings `json:"soundSettings,omitempty"`
	Logs          []LogEntry     `json:"logs,omitempty"`
}

// Settings are general user preferences.
type Settings struct {
	Language      string `json:"language"`
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	AutoSave      bool   `json:"autoSave"`
}

// SoundSettings are audio volumes in the [0, 1] range.
type SoundSettings struct {
	Master  float64 `json:"master"`
	Music   float64 `json:"music"`
	Effects float64 `json:"effects"`
	Muted   bool    `json:"muted"`
}

// LogEntry is a diagnostic record kept alongside the progress.
type LogEntry struct {
	At      int64  `json:"at"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Clone returns a deep copy of s. Mutating the copy never affects s.
func (s Snapshot) Clone() Snapshot {
	c := s

	if s.Critical.Inventory != nil {
		inv := *s.Critical.Inventory
		c.Critical.Inventory = &inv
	}
	if s.Critical.Upgrades != nil {
		upg := *s.Critical.Upgrades
		c.Critical.Upgrades = &upg
	}
	if s.Regular.Items != nil {
		c.Regular.Items = make([]Item, len(s.Regular.Items))
		copy(c.Regular.Items, s.Regular.Items)
	}
	if s.Regular.Achievements != nil {
		c.Regular.Achievements = make([]string, len(s.Regular.Achievements))
		copy(c.Regular.Achievements, s.Regular.Achievements)
	}
	if s.Extended.Settings != nil {
		st := *s.Extended.Settings
		c.Extended.Settings = &st
	}
	if s.Extended.SoundSettings != nil {
		snd := *s.Extended.SoundSettings
		c.Extended.SoundSettings = &snd
	}
	if s.Extended.Logs != nil {
		c.Extended.Logs = make([]LogEntry, len(s.Extended.Logs))
		copy(c.Extended.Logs, s.Extended.Logs)
	}
	if s.RepairedFields != nil {
		c.RepairedFields = make([]string, len(s.RepairedFields))
		copy(c.RepairedFields, s.RepairedFields)
	}

	return c
}

// ModifiedAt returns LastModified as a time.Time.
func (s Snapshot) ModifiedAt() time.Time {
	return time.UnixMilli(s.LastModified)
}
