package service

import (
	"time"

	"github.com/MKhiriev/go-save-keeper/internal/validators"
	"github.com/MKhiriev/go-save-keeper/models"
)

// fieldMerger merges two copies section by section:
//
//	currencies, fills, capacities, levels  max of both sides
//	achievements                            union
//	items                                   by id, newest lastModified wins
//	upgrades and everything else            the more recently modified side
type fieldMerger struct {
	now func() time.Time
}

// NewMerger returns the field-wise merger used by the reconciler and the
// orchestrator.
func NewMerger() Merger {
	return &fieldMerger{now: time.Now}
}

// Merge implements Merger. Neither input is modified.
func (m *fieldMerger) Merge(local, remote models.Snapshot) models.Snapshot {
	newer, older := local, remote
	if remote.LastModified > local.LastModified {
		newer, older = remote, local
	}

	out := newer.Clone()
	if out.UserID == "" {
		out.UserID = older.UserID
	}

	out.Critical = mergeCritical(newer.Critical, older.Critical)
	out.Regular.Items = mergeItems(newer.Regular.Items, older.Regular.Items)
	out.Regular.Achievements = union(newer.Regular.Achievements, older.Regular.Achievements)

	out.Version = max(local.Version, remote.Version) + 1
	out.LastModified = max(m.now().UnixMilli(), local.LastModified, remote.LastModified)

	out.WasRepaired = false
	out.RepairedAt = 0
	out.RepairedFields = nil
	validators.Seal(&out)

	return out
}

func mergeCritical(newer, older models.CriticalState) models.CriticalState {
	out := models.CriticalState{
		Coins:             max(newer.Coins, older.Coins),
		Gems:              max(newer.Gems, older.Gems),
		ContainerSnot:     max(newer.ContainerSnot, older.ContainerSnot),
		ContainerCapacity: max(newer.ContainerCapacity, older.ContainerCapacity),
		ContainerLevel:    max(newer.ContainerLevel, older.ContainerLevel),
	}

	switch {
	case newer.Inventory != nil && older.Inventory != nil:
		out.Inventory = &models.Inventory{
			Snot:     max(newer.Inventory.Snot, older.Inventory.Snot),
			Capacity: max(newer.Inventory.Capacity, older.Inventory.Capacity),
			Level:    max(newer.Inventory.Level, older.Inventory.Level),
		}
	case newer.Inventory != nil:
		inv := *newer.Inventory
		out.Inventory = &inv
	case older.Inventory != nil:
		inv := *older.Inventory
		out.Inventory = &inv
	}

	// upgrades move as a whole with the newer side
	switch {
	case newer.Upgrades != nil:
		upg := *newer.Upgrades
		out.Upgrades = &upg
	case older.Upgrades != nil:
		upg := *older.Upgrades
		out.Upgrades = &upg
	}

	return out
}

// mergeItems keeps the newer side's order and appends items only the older
// side has. On equal timestamps the newer side wins.
func mergeItems(newer, older []models.Item) []models.Item {
	if newer == nil && older == nil {
		return nil
	}

	olderByID := make(map[string]models.Item, len(older))
	for _, it := range older {
		olderByID[it.ID] = it
	}

	out := make([]models.Item, 0, len(newer)+len(older))
	seen := make(map[string]struct{}, len(newer))
	for _, it := range newer {
		if o, ok := olderByID[it.ID]; ok && o.LastModified > it.LastModified {
			it = o
		}
		out = append(out, it)
		seen[it.ID] = struct{}{}
	}
	for _, it := range older {
		if _, ok := seen[it.ID]; !ok {
			out = append(out, it)
			seen[it.ID] = struct{}{}
		}
	}
	return out
}

func union(a, b []string) []string {
	if a == nil && b == nil {
		return nil
	}

	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
