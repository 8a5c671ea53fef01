// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/MKhiriev/go-save-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestValidator() *SnapshotValidator {
	return NewSnapshotValidator().WithClock(func() time.Time { return fixedNow })
}

func validSnapshot() models.Snapshot {
	s := models.NewDefaultSnapshot("U", fixedNow.UnixMilli())
	s.Version = 1
	s.Critical.ContainerSnot = 100
	s.Critical.ContainerCapacity = 1000
	s.Critical.Inventory.Snot = 5
	s.Critical.Inventory.Capacity = 50
	s.Critical.Coins = 42
	s.Regular.Items = []models.Item{{ID: "shovel", Type: "tool", Quantity: 1, LastModified: 10}}
	s.Regular.Achievements = []string{"first-click"}
	Seal(&s)
	return s
}

// ---------------------------------------------------------------------------
// Validate dispatch
// ---------------------------------------------------------------------------

func TestValidate_Dispatch(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, "a string"), ErrUnsupportedType)
	})

	t.Run("snapshot value", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, validSnapshot()))
	})

	t.Run("snapshot pointer", func(t *testing.T) {
		s := validSnapshot()
		require.NoError(t, v.Validate(ctx, &s))
	})

	t.Run("nil snapshot pointer", func(t *testing.T) {
		var s *models.Snapshot
		require.ErrorIs(t, v.Validate(ctx, s), ErrUnsupportedType)
	})

	t.Run("unknown section", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, validSnapshot(), "bogus"), ErrUnknownField)
	})

	t.Run("invalid snapshot wraps ErrValidation", func(t *testing.T) {
		s := validSnapshot()
		s.Critical.Inventory = nil
		err := v.Validate(ctx, s)
		require.ErrorIs(t, err, models.ErrValidation)
		require.ErrorIs(t, err, ErrMissingSection)
	})

	t.Run("section filter skips other sections", func(t *testing.T) {
		s := validSnapshot()
		s.Extended.Settings = nil
		require.NoError(t, v.Validate(ctx, s, SectionCritical))
		require.ErrorIs(t, v.Validate(ctx, s, SectionExtended), ErrMissingSection)
	})
}

// ---------------------------------------------------------------------------
// Check
// ---------------------------------------------------------------------------

func TestCheck(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name    string
		mutate  func(s *models.Snapshot)
		wantErr error
	}{
		{"empty user id", func(s *models.Snapshot) { s.UserID = "" }, ErrEmptyUserID},
		{"negative version", func(s *models.Snapshot) { s.Version = -1 }, ErrInvalidVersion},
		{"NaN coins", func(s *models.Snapshot) { s.Critical.Coins = math.NaN() }, ErrNotFinite},
		{"negative gems", func(s *models.Snapshot) { s.Critical.Gems = -1 }, ErrNegative},
		{"zero capacity", func(s *models.Snapshot) { s.Critical.ContainerCapacity = 0 }, ErrBelowMinimum},
		{"zero level", func(s *models.Snapshot) { s.Critical.ContainerLevel = 0 }, ErrBelowMinimum},
		{"fill over capacity", func(s *models.Snapshot) { s.Critical.ContainerSnot = 5000 }, ErrFillExceedsCapacity},
		{"inventory fill over capacity", func(s *models.Snapshot) { s.Critical.Inventory.Snot = 51 }, ErrFillExceedsCapacity},
		{"missing upgrades", func(s *models.Snapshot) { s.Critical.Upgrades = nil }, ErrMissingSection},
		{"empty item id", func(s *models.Snapshot) { s.Regular.Items[0].ID = "" }, ErrEmptyItemID},
		{"negative statistics", func(s *models.Snapshot) { s.Regular.Statistics.TotalClicks = -3 }, ErrNegative},
		{"missing sound settings", func(s *models.Snapshot) { s.Extended.SoundSettings = nil }, ErrMissingSection},
		{"volume out of range", func(s *models.Snapshot) { s.Extended.SoundSettings.Music = 2 }, ErrOutOfRange},
		{"hash mismatch", func(s *models.Snapshot) { s.IntegrityHash = "deadbeef" }, models.ErrIntegrityMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSnapshot()
			tt.mutate(&s)

			report := v.Check(s)
			require.False(t, report.Valid)
			assert.ErrorIs(t, report.Err(), tt.wantErr)
		})
	}

	t.Run("valid snapshot", func(t *testing.T) {
		report := v.Check(validSnapshot())
		assert.True(t, report.Valid)
		assert.Empty(t, report.Errors)
		assert.NoError(t, report.Err())
	})

	t.Run("missing hash is a warning only", func(t *testing.T) {
		s := validSnapshot()
		s.IntegrityHash = ""
		report := v.Check(s)
		assert.True(t, report.Valid)
		assert.NotEmpty(t, report.Warnings)
	})

	t.Run("changed critical field breaks the hash", func(t *testing.T) {
		s := validSnapshot()
		s.Critical.Coins++
		report := v.Check(s)
		assert.ErrorIs(t, report.Err(), models.ErrIntegrityMismatch)
	})
}

// ---------------------------------------------------------------------------
// Repair
// ---------------------------------------------------------------------------

func TestRepair_ValidSnapshotIsNoOp(t *testing.T) {
	v := newTestValidator()

	snapshots := []models.Snapshot{
		validSnapshot(),
		func() models.Snapshot {
			s := validSnapshot()
			s.IntegrityHash = ""
			return s
		}(),
		func() models.Snapshot {
			s := validSnapshot()
			s.WasRepaired = true
			s.RepairedAt = 1
			s.RepairedFields = []string{"critical.coins"}
			return s
		}(),
		func() models.Snapshot {
			s := validSnapshot()
			s.Critical.ContainerSnot = s.Critical.ContainerCapacity
			Seal(&s)
			return s
		}(),
	}

	for i, s := range snapshots {
		repaired, fields := v.Repair(s)
		assert.Empty(t, fields, "snapshot %d", i)
		assert.Equal(t, s, repaired, "snapshot %d", i)
	}
}

func TestRepair_MissingInventory(t *testing.T) {
	v := newTestValidator()
	s := validSnapshot()
	s.Critical.Inventory = nil

	repaired, fields := v.Repair(s)

	require.NotNil(t, repaired.Critical.Inventory)
	assert.Equal(t, models.Inventory{Snot: 0, Capacity: 1, Level: 1}, *repaired.Critical.Inventory)
	assert.True(t, repaired.WasRepaired)
	assert.Equal(t, fixedNow.UnixMilli(), repaired.RepairedAt)
	assert.Contains(t, fields, "critical.inventory")
	assert.Contains(t, fields, "integrityHash")
	assert.Equal(t, fields, repaired.RepairedFields)
	assert.True(t, v.Check(repaired).Valid)

	// input is untouched
	assert.Nil(t, s.Critical.Inventory)
}

func TestRepair_ClampsFillDownToCapacity(t *testing.T) {
	v := newTestValidator()

	t.Run("container", func(t *testing.T) {
		s := validSnapshot()
		s.Critical.ContainerSnot = 2500
		repaired, fields := v.Repair(s)

		assert.Equal(t, 1000.0, repaired.Critical.ContainerSnot)
		assert.Equal(t, 1000.0, repaired.Critical.ContainerCapacity)
		assert.Contains(t, fields, "critical.containerSnot")
	})

	t.Run("NaN capacity falls back to default and fill follows", func(t *testing.T) {
		s := validSnapshot()
		s.Critical.ContainerCapacity = math.NaN()
		repaired, fields := v.Repair(s)

		assert.Equal(t, 1.0, repaired.Critical.ContainerCapacity)
		assert.Equal(t, 1.0, repaired.Critical.ContainerSnot)
		assert.LessOrEqual(t, repaired.Critical.ContainerSnot, repaired.Critical.ContainerCapacity)
		assert.Contains(t, fields, "critical.containerCapacity")
	})

	t.Run("inventory", func(t *testing.T) {
		s := validSnapshot()
		s.Critical.Inventory.Snot = math.Inf(1)
		repaired, _ := v.Repair(s)

		assert.Equal(t, 0.0, repaired.Critical.Inventory.Snot)
	})
}

func TestRepair_Defaults(t *testing.T) {
	v := newTestValidator()
	s := validSnapshot()
	s.Critical.Coins = math.NaN()
	s.Critical.Gems = -5
	s.Critical.ContainerLevel = 0
	s.Critical.Upgrades = nil
	s.Regular.Items = append(s.Regular.Items, models.Item{ID: "", Quantity: 3}, models.Item{ID: "gem", Quantity: -2})
	s.Regular.Statistics.SessionsPlayed = -1
	s.Extended.Settings = nil
	s.Extended.SoundSettings.Master = math.NaN()
	s.Extended.SoundSettings.Effects = 3
	s.Version = -4

	repaired, fields := v.Repair(s)

	assert.Equal(t, 0.0, repaired.Critical.Coins)
	assert.Equal(t, 0.0, repaired.Critical.Gems)
	assert.Equal(t, 1, repaired.Critical.ContainerLevel)
	assert.Equal(t, models.DefaultUpgrades(), repaired.Critical.Upgrades)
	require.Len(t, repaired.Regular.Items, 2)
	assert.Equal(t, 0, repaired.Regular.Items[1].Quantity)
	assert.Equal(t, int64(0), repaired.Regular.Statistics.SessionsPlayed)
	assert.Equal(t, models.DefaultSettings(), repaired.Extended.Settings)
	assert.Equal(t, models.DefaultSoundSettings().Master, repaired.Extended.SoundSettings.Master)
	assert.Equal(t, 1.0, repaired.Extended.SoundSettings.Effects)
	assert.Equal(t, int64(0), repaired.Version)
	assert.NotEmpty(t, fields)

	report := v.Check(repaired)
	assert.True(t, report.Valid, "errors: %v", report.Errors)
}

func TestRepair_Idempotent(t *testing.T) {
	v := newTestValidator()
	s := validSnapshot()
	s.Critical.Inventory = nil
	s.Critical.ContainerSnot = 9999
	s.Extended.SoundSettings = nil

	once, fields := v.Repair(s)
	require.NotEmpty(t, fields)

	twice, fields2 := v.Repair(once)
	assert.Empty(t, fields2)
	assert.Equal(t, once, twice)
}

func TestRepair_HashMismatchIsRecomputed(t *testing.T) {
	v := newTestValidator()
	s := validSnapshot()
	s.IntegrityHash = "corrupted"

	repaired, fields := v.Repair(s)

	assert.Equal(t, []string{"integrityHash"}, fields)
	assert.True(t, VerifyChecksum(repaired))
	assert.Equal(t, s.Critical, repaired.Critical)
}

func TestRepair_MissingHashStaysMissingWhenCriticalIsValid(t *testing.T) {
	v := newTestValidator()
	s := validSnapshot()
	s.IntegrityHash = ""
	s.Extended.Settings = nil

	repaired, fields := v.Repair(s)

	assert.Equal(t, []string{"extended.settings"}, fields)
	assert.Empty(t, repaired.IntegrityHash)
}

// ---------------------------------------------------------------------------
// Checksum
// ---------------------------------------------------------------------------

func TestChecksumCritical(t *testing.T) {
	s := validSnapshot()

	sum1, err := ChecksumCritical(s.Critical)
	require.NoError(t, err)
	sum2, err := ChecksumCritical(s.Clone().Critical)
	require.NoError(t, err)
	assert.Equal(t, sum1, sum2)
	assert.Len(t, sum1, 64)

	s.Critical.Gems = 1
	sum3, err := ChecksumCritical(s.Critical)
	require.NoError(t, err)
	assert.NotEqual(t, sum1, sum3)

	s.Critical.Gems = math.NaN()
	_, err = ChecksumCritical(s.Critical)
	assert.Error(t, err)
}
