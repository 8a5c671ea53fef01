// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Documented defaults applied by repair and to brand-new players.
const (
	DefaultCapacity = 1.0
	DefaultLevel    = 1
	DefaultCurrency = 0.0
)

// DefaultInventory returns an empty pouch of the smallest size.
func DefaultInventory() *Inventory {
	return &Inventory{Snot: 0, Capacity: DefaultCapacity, Level: DefaultLevel}
}

// DefaultUpgrades returns every upgrade at its starting level.
func DefaultUpgrades() *Upgrades {
	return &Upgrades{
		PickSpeed:     DefaultLevel,
		Capacity:      DefaultLevel,
		AutoCollector: DefaultLevel,
		Multiplier:    DefaultLevel,
	}
}

// DefaultSettings returns the out-of-the-box preferences.
func DefaultSettings() *Settings {
	return &Settings{Language: "en", Theme: "light", Notifications: true, AutoSave: true}
}

// DefaultSoundSettings returns the out-of-the-box audio levels.
func DefaultSoundSettings() *SoundSettings {
	return &SoundSettings{Master: 1, Music: 0.7, Effects: 0.8}
}

// NewDefaultSnapshot builds the state of a brand-new player. Version is 0
// until the first save.
func NewDefaultSnapshot(userID string, nowMillis int64) Snapshot {
	return Snapshot{
		UserID:       userID,
		LastModified: nowMillis,
		Critical: CriticalState{
			Inventory:         DefaultInventory(),
			Upgrades:          DefaultUpgrades(),
			Coins:             DefaultCurrency,
			Gems:              DefaultCurrency,
			ContainerSnot:     0,
			ContainerCapacity: DefaultCapacity,
			ContainerLevel:    DefaultLevel,
		},
		Regular: RegularState{
			Items:        []Item{},
			Achievements: []string{},
		},
		Extended: ExtendedState{
			Settings:      DefaultSettings(),
			SoundSettings: DefaultSoundSettings(),
		},
	}
}
