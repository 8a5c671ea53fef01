// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-save-keeper/internal/crypto"
	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/mock"
	"github.com/MKhiriev/go-save-keeper/internal/store"
	"github.com/MKhiriev/go-save-keeper/models"
)

func newTestOrchestrator(tiers []store.Tier, deps OrchestratorDeps, opts OrchestratorOptions) *saveOrchestrator {
	if deps.Merger == nil {
		deps.Merger = NewMerger()
	}
	return newSaveOrchestrator(tiers, deps, opts, logger.Nop())
}

func critical(s models.Snapshot) models.SaveRequest {
	return models.SaveRequest{UserID: testUser, Snapshot: s, Priority: models.PriorityCritical}
}

func TestSaveOrchestrator_VersionIsMonotonic(t *testing.T) {
	ctx := context.Background()
	tier := store.NewMemoryTier(3)
	o := newTestOrchestrator([]store.Tier{tier}, OrchestratorDeps{}, OrchestratorOptions{})

	first := o.Save(ctx, critical(progress(testUser, 100, 0, baseTime)))
	require.True(t, first.Success, first.Message)
	assert.Equal(t, int64(1), first.Version)

	second := o.Save(ctx, critical(progress(testUser, 150, 0, baseTime+1000)))
	require.True(t, second.Success, second.Message)
	assert.Equal(t, int64(2), second.Version)

	loaded := loadCanonical(tier, testUser)
	require.True(t, loaded.Success)
	assert.Equal(t, int64(2), loaded.Snapshot.Version)
	assert.Equal(t, 150.0, loaded.Snapshot.Critical.ContainerSnot)
	assert.NotEmpty(t, loaded.Snapshot.IntegrityHash)
}

func TestSaveOrchestrator_VersionRule(t *testing.T) {
	tests := []struct {
		name     string
		stored   int64 // 0 = no stored copy
		incoming int64
		adopt    bool
		want     int64
		merged   bool
	}{
		{name: "new user without version", incoming: 0, want: 1},
		{name: "new user keeps a higher version", incoming: 7, want: 7},
		{name: "unversioned save follows stored", stored: 4, incoming: 0, want: 5},
		{name: "same version advances", stored: 4, incoming: 4, want: 5},
		{name: "ahead version advances by one", stored: 4, incoming: 9, want: 5},
		{name: "adopted remote version is kept", stored: 4, incoming: 9, adopt: true, want: 9},
		{name: "adopted version not ahead advances", stored: 4, incoming: 4, adopt: true, want: 5},
		{name: "stale version is merged", stored: 4, incoming: 2, want: 5, merged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			tier := store.NewMemoryTier(3)
			if tt.stored > 0 {
				tier.Save(ctx, testUser, sealed(testUser, 50, tt.stored, baseTime), models.SaveOptions{})
			}
			o := newTestOrchestrator([]store.Tier{tier}, OrchestratorDeps{}, OrchestratorOptions{})

			req := critical(progress(testUser, 60, tt.incoming, baseTime+10))
			req.Adopt = tt.adopt
			res := o.Save(ctx, req)

			require.True(t, res.Success, res.Message)
			assert.Equal(t, tt.want, res.Version)
			assert.Equal(t, tt.merged, res.Merged)
		})
	}
}

func TestSaveOrchestrator_StaleSnapshotIsMerged(t *testing.T) {
	ctx := context.Background()
	tier := store.NewMemoryTier(3)
	o := newTestOrchestrator([]store.Tier{tier}, OrchestratorDeps{}, OrchestratorOptions{})

	require.True(t, o.Save(ctx, critical(progress(testUser, 100, 0, baseTime))).Success)

	newer := progress(testUser, 150, 1, baseTime+1000)
	newer.Regular.Items = []models.Item{{ID: "sword", Type: "weapon", Quantity: 1, LastModified: baseTime + 1000}}
	require.Equal(t, int64(2), o.Save(ctx, critical(newer)).Version)

	// вкладка со старой версией 1 пишет поверх версии 2
	stale := progress(testUser, 120, 1, baseTime+500)
	stale.Regular.Achievements = []string{"first-click"}
	res := o.Save(ctx, critical(stale))

	require.True(t, res.Success, res.Message)
	assert.True(t, res.Merged)
	assert.Equal(t, int64(3), res.Version)

	loaded := loadCanonical(tier, testUser)
	require.True(t, loaded.Success)
	assert.Equal(t, 150.0, loaded.Snapshot.Critical.ContainerSnot)
	assert.Contains(t, loaded.Snapshot.Regular.Achievements, "first-click")
	require.Len(t, loaded.Snapshot.Regular.Items, 1)
	assert.Equal(t, "sword", loaded.Snapshot.Regular.Items[0].ID)
}

func TestSaveOrchestrator_StaleSnapshotWithoutMerger(t *testing.T) {
	ctx := context.Background()
	tier := store.NewMemoryTier(3)
	tier.Save(ctx, testUser, sealed(testUser, 50, 4, baseTime), models.SaveOptions{})
	o := newSaveOrchestrator([]store.Tier{tier}, OrchestratorDeps{}, OrchestratorOptions{}, logger.Nop())

	res := o.Save(ctx, critical(progress(testUser, 60, 2, baseTime+10)))

	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, models.ErrVersionConflict)
	assert.Equal(t, models.KindVersionConflict, res.Kind)
}

func TestSaveOrchestrator_RepairsBeforeWriting(t *testing.T) {
	ctx := context.Background()
	tier := store.NewMemoryTier(3)
	o := newTestOrchestrator([]store.Tier{tier}, OrchestratorDeps{}, OrchestratorOptions{})

	res := o.Save(ctx, critical(progress(testUser, 900, 0, baseTime)))

	require.True(t, res.Success, res.Message)
	assert.Contains(t, res.Repaired, "critical.containerSnot")

	loaded := loadCanonical(tier, testUser)
	require.True(t, loaded.Success)
	assert.Equal(t, 500.0, loaded.Snapshot.Critical.ContainerSnot)
	assert.True(t, loaded.Snapshot.WasRepaired)
}

func TestSaveOrchestrator_RejectsBadRequests(t *testing.T) {
	ctx := context.Background()
	o := newTestOrchestrator([]store.Tier{store.NewMemoryTier(3)}, OrchestratorDeps{}, OrchestratorOptions{})

	t.Run("empty user", func(t *testing.T) {
		res := o.Save(ctx, models.SaveRequest{Snapshot: progress("", 1, 0, baseTime), Priority: models.PriorityCritical})
		assert.False(t, res.Success)
		assert.ErrorIs(t, res.Err, models.ErrEmptyUserID)
	})

	t.Run("snapshot of another user", func(t *testing.T) {
		res := o.Save(ctx, critical(progress("player-2", 1, 0, baseTime)))
		assert.False(t, res.Success)
		assert.ErrorIs(t, res.Err, ErrUserMismatch)
		assert.ErrorIs(t, res.Err, models.ErrValidation)
	})

	t.Run("closed", func(t *testing.T) {
		require.NoError(t, o.Close(ctx))
		res := o.Save(ctx, critical(progress(testUser, 1, 0, baseTime)))
		assert.False(t, res.Success)
		assert.ErrorIs(t, res.Err, ErrOrchestratorClosed)
	})
}

func TestSaveOrchestrator_NoTiers(t *testing.T) {
	o := newTestOrchestrator(nil, OrchestratorDeps{}, OrchestratorOptions{})

	res := o.Save(context.Background(), critical(progress(testUser, 1, 0, baseTime)))

	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, ErrNoTiersConfigured)
}

func TestSaveOrchestrator_IntervalQueuesAndCoalesces(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	tier := store.NewMemoryTier(3)
	o := newTestOrchestrator([]store.Tier{tier}, OrchestratorDeps{Device: tier}, OrchestratorOptions{})
	o.now = clock.Now

	medium := func(snot float64) models.SaveRequest {
		return models.SaveRequest{UserID: testUser, Snapshot: progress(testUser, snot, 0, baseTime), Priority: models.PriorityMedium}
	}

	first := o.Save(ctx, medium(10))
	require.True(t, first.Success)
	assert.False(t, first.Queued)

	clock.Advance(time.Second)
	second := o.Save(ctx, medium(20))
	assert.True(t, second.Success)
	assert.True(t, second.Queued)

	third := o.Save(ctx, medium(30))
	assert.True(t, third.Queued)

	o.mu.Lock()
	require.Len(t, o.pending, 1)
	assert.Equal(t, 30.0, o.pending[testUser].req.Snapshot.Critical.ContainerSnot)
	o.mu.Unlock()

	last, ok := o.LastResult()
	require.True(t, ok)
	assert.True(t, last.Queued)

	// канонической остаётся первая запись, пока очередь не сброшена
	assert.Equal(t, 10.0, loadCanonical(tier, testUser).Snapshot.Critical.ContainerSnot)

	require.NoError(t, o.Close(ctx))

	loaded := loadCanonical(tier, testUser)
	require.True(t, loaded.Success)
	assert.Equal(t, int64(2), loaded.Snapshot.Version)
	assert.Equal(t, 30.0, loaded.Snapshot.Critical.ContainerSnot)
}

func TestSaveOrchestrator_CriticalBypassesQueue(t *testing.T) {
	ctx := context.Background()
	tier := store.NewMemoryTier(3)
	o := newTestOrchestrator([]store.Tier{tier}, OrchestratorDeps{}, OrchestratorOptions{
		Intervals: map[models.SavePriority]time.Duration{models.PriorityLow: time.Hour},
	})
	defer o.Close(ctx)

	low := models.SaveRequest{UserID: testUser, Snapshot: progress(testUser, 10, 0, baseTime), Priority: models.PriorityLow}
	require.False(t, o.Save(ctx, low).Queued)
	require.True(t, o.Save(ctx, low).Queued)

	res := o.Save(ctx, critical(progress(testUser, 99, 0, baseTime+1)))

	require.True(t, res.Success)
	assert.False(t, res.Queued)
	assert.Equal(t, int64(2), res.Version)

	o.mu.Lock()
	assert.Empty(t, o.pending, "critical save supersedes the queued one")
	o.mu.Unlock()
}

func TestSaveOrchestrator_ConcurrentCriticalSavesGetDistinctVersions(t *testing.T) {
	ctx := context.Background()
	tier := &slowTier{MemoryTier: store.NewMemoryTier(3), delay: 50 * time.Millisecond}
	o := newTestOrchestrator([]store.Tier{tier}, OrchestratorDeps{}, OrchestratorOptions{})

	require.Equal(t, int64(1), o.Save(ctx, critical(progress(testUser, 10, 0, baseTime))).Version)

	results := make(chan models.SaveResult, 2)
	var wg sync.WaitGroup
	for _, snot := range []float64{20, 30} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- o.Save(ctx, critical(progress(testUser, snot, 1, baseTime+1000)))
		}()
	}
	wg.Wait()
	close(results)

	var versions []int64
	for res := range results {
		require.True(t, res.Success, res.Message)
		versions = append(versions, res.Version)
	}
	assert.ElementsMatch(t, []int64{2, 3}, versions)

	// каждая принятая запись получает новую версию
	assert.Equal(t, []int64{1, 2, 3}, tier.versions())
	assert.Equal(t, int64(3), loadCanonical(tier, testUser).Snapshot.Version)
}

func TestSaveOrchestrator_CriticalWaitsForSameUserWrite(t *testing.T) {
	ctx := context.Background()
	tier := newGatedTier()
	o := newTestOrchestrator([]store.Tier{tier}, OrchestratorDeps{}, OrchestratorOptions{})

	first := make(chan models.SaveResult, 1)
	go func() {
		first <- o.Save(ctx, models.SaveRequest{UserID: testUser, Snapshot: progress(testUser, 10, 0, baseTime), Priority: models.PriorityHigh})
	}()
	select {
	case <-tier.entered:
	case <-time.After(time.Second):
		t.Fatal("first save never reached the tier")
	}

	second := make(chan models.SaveResult, 1)
	go func() {
		second <- o.Save(ctx, critical(progress(testUser, 20, 0, baseTime+1)))
	}()

	select {
	case <-tier.entered:
		t.Fatal("critical save of the same user reached the tier while another write was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(tier.gate)

	assert.Equal(t, int64(1), (<-first).Version)
	assert.Equal(t, int64(2), (<-second).Version)
	require.NoError(t, o.Close(ctx))
}

func TestSaveOrchestrator_CriticalSavesOfOtherUsersRunInParallel(t *testing.T) {
	ctx := context.Background()
	tier := newGatedTier()
	o := newTestOrchestrator([]store.Tier{tier}, OrchestratorDeps{}, OrchestratorOptions{})

	done := make(chan models.SaveResult, 2)
	for _, user := range []string{"player-a", "player-b"} {
		go func() {
			done <- o.Save(ctx, models.SaveRequest{UserID: user, Snapshot: progress(user, 10, 0, baseTime), Priority: models.PriorityCritical})
		}()
	}

	for range 2 {
		select {
		case <-tier.entered:
		case <-time.After(time.Second):
			t.Fatal("critical saves of different users must not wait for each other")
		}
	}
	close(tier.gate)

	for range 2 {
		res := <-done
		require.True(t, res.Success, res.Message)
		assert.Equal(t, int64(1), res.Version)
	}
}

func TestSaveOrchestrator_UnknownPriorityIsMedium(t *testing.T) {
	ctx := context.Background()
	o := newTestOrchestrator([]store.Tier{store.NewMemoryTier(3)}, OrchestratorDeps{}, OrchestratorOptions{})
	defer o.Close(ctx)

	require.True(t, o.Save(ctx, models.SaveRequest{UserID: testUser, Snapshot: progress(testUser, 1, 0, baseTime), Priority: "urgent"}).Success)

	res := o.Save(ctx, models.SaveRequest{UserID: testUser, Snapshot: progress(testUser, 2, 0, baseTime), Priority: "urgent"})
	assert.True(t, res.Queued, "second save within the medium interval is queued")
}

func TestSaveOrchestrator_SaveWhileInFlightRunsAfterward(t *testing.T) {
	ctx := context.Background()
	tier := newGatedTier()
	o := newTestOrchestrator([]store.Tier{tier}, OrchestratorDeps{}, OrchestratorOptions{
		Intervals: map[models.SavePriority]time.Duration{models.PriorityHigh: 0},
	})

	done := make(chan models.SaveResult, 1)
	go func() {
		done <- o.Save(ctx, models.SaveRequest{UserID: testUser, Snapshot: progress(testUser, 10, 0, baseTime), Priority: models.PriorityHigh})
	}()

	select {
	case <-tier.entered:
	case <-time.After(time.Second):
		t.Fatal("first save never reached the tier")
	}
	assert.True(t, o.IsSaving())

	high := func(snot float64) models.SaveRequest {
		return models.SaveRequest{UserID: testUser, Snapshot: progress(testUser, snot, 0, baseTime), Priority: models.PriorityHigh}
	}
	assert.True(t, o.Save(ctx, high(20)).Queued)
	assert.True(t, o.Save(ctx, high(30)).Queued)

	close(tier.gate)

	first := <-done
	require.True(t, first.Success)
	assert.Equal(t, int64(1), first.Version)

	require.NoError(t, o.Close(ctx))

	saves := tier.saved()
	require.Len(t, saves, 2, "the two queued requests coalesce into one save")
	assert.Equal(t, int64(2), saves[1].Version)
	assert.Equal(t, 30.0, saves[1].Critical.ContainerSnot)
	assert.False(t, o.IsSaving())
}

func TestSaveOrchestrator_AllTiersRejected(t *testing.T) {
	tests := []struct {
		name       string
		withBackup bool
		wantFatal  bool
	}{
		{name: "without emergency backup", wantFatal: true},
		{name: "with emergency backup", withBackup: true, wantFatal: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			tier := mock.NewMockTier(ctrl)

			down := models.StorageResult{Tier: models.TierCache}
			tier.EXPECT().Load(gomock.Any(), testUser, gomock.Any()).Return(down.Fail(models.ErrNotFound)).AnyTimes()
			tier.EXPECT().Save(gomock.Any(), testUser, gomock.Any(), gomock.Any()).Return(down.Fail(models.ErrTierUnavailable))

			o := newTestOrchestrator([]store.Tier{tier}, OrchestratorDeps{}, OrchestratorOptions{})
			req := critical(progress(testUser, 10, 0, baseTime))
			req.WithBackup = tt.withBackup

			res := o.Save(context.Background(), req)

			assert.False(t, res.Success)
			assert.Equal(t, tt.wantFatal, res.Fatal)
			assert.Equal(t, models.KindAllTiersRejected, res.Kind)
			assert.ErrorIs(t, res.Err, ErrAllTiersRejected)
			assert.ErrorIs(t, res.Err, models.ErrTierUnavailable)
			require.Len(t, res.Tiers, 1)
		})
	}
}

func TestSaveOrchestrator_PartialFanOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	broken := mock.NewMockTier(ctrl)
	down := models.StorageResult{Tier: models.TierCache}
	broken.EXPECT().Load(gomock.Any(), testUser, gomock.Any()).Return(down.Fail(models.ErrTierUnavailable)).AnyTimes()
	broken.EXPECT().Save(gomock.Any(), testUser, gomock.Any(), gomock.Any()).Return(down.Fail(models.ErrTierUnavailable))

	healthy := store.NewMemoryTier(3)
	o := newTestOrchestrator([]store.Tier{broken, healthy}, OrchestratorDeps{}, OrchestratorOptions{})

	res := o.Save(context.Background(), critical(progress(testUser, 10, 0, baseTime)))

	require.True(t, res.Success)
	assert.Equal(t, "saved to 1 of 2 tiers", res.Message)
	require.Len(t, res.Tiers, 2)
	assert.False(t, res.Tiers[0].Success)
	assert.True(t, res.Tiers[1].Success)
}

func TestSaveOrchestrator_RecordsDeltaHistory(t *testing.T) {
	ctx := context.Background()
	o := newTestOrchestrator([]store.Tier{store.NewMemoryTier(3)}, OrchestratorDeps{}, OrchestratorOptions{ClientID: "tab-1"})

	require.True(t, o.Save(ctx, critical(progress(testUser, 10, 0, baseTime))).Success)
	require.True(t, o.Save(ctx, critical(progress(testUser, 20, 0, baseTime+1))).Success)

	require.Equal(t, 1, o.history.Len(testUser))
	d, ok := o.history.Latest(testUser)
	require.True(t, ok)
	assert.Equal(t, int64(1), d.BaseVersion)
	assert.Equal(t, int64(2), d.NewVersion)
	assert.Equal(t, "tab-1", d.ClientID)
}

func TestSaveOrchestrator_EmergencyBackupThrottle(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	o := newTestOrchestrator([]store.Tier{store.NewMemoryTier(3)}, OrchestratorDeps{}, OrchestratorOptions{BackupThrottle: 500 * time.Millisecond})
	o.now = clock.Now

	assert.True(t, o.CreateEmergencyBackup(ctx, testUser, progress(testUser, 1, 0, baseTime)))

	clock.Advance(100 * time.Millisecond)
	assert.False(t, o.CreateEmergencyBackup(ctx, testUser, progress(testUser, 2, 0, baseTime)), "throttled")

	clock.Advance(500 * time.Millisecond)
	assert.True(t, o.CreateEmergencyBackup(ctx, testUser, progress(testUser, 3, 0, baseTime)))

	rec, ok := o.EmergencyBackup(testUser)
	require.True(t, ok)
	assert.Equal(t, 3.0, rec.Snapshot.Critical.ContainerSnot)
	assert.Equal(t, clock.Now().UnixMilli(), rec.Timestamp)

	assert.False(t, o.CreateEmergencyBackup(ctx, "", progress("", 1, 0, baseTime)))
}

func TestSaveOrchestrator_EmergencyBackupSignature(t *testing.T) {
	ctx := context.Background()
	signer, err := crypto.NewSigner("backup-key")
	require.NoError(t, err)

	o := newTestOrchestrator([]store.Tier{store.NewMemoryTier(3)}, OrchestratorDeps{Signer: signer}, OrchestratorOptions{})
	require.True(t, o.CreateEmergencyBackup(ctx, testUser, progress(testUser, 42, 0, baseTime)))

	rec, ok := o.EmergencyBackup(testUser)
	require.True(t, ok)
	assert.Equal(t, 42.0, rec.Snapshot.Critical.ContainerSnot)

	// подменяем содержимое в обход подписи
	o.mu.Lock()
	e := o.emergency[testUser]
	e.record.Snapshot.Critical.Coins = 1_000_000
	o.emergency[testUser] = e
	o.mu.Unlock()

	_, ok = o.EmergencyBackup(testUser)
	assert.False(t, ok, "tampered backup is rejected")

	o.mu.Lock()
	assert.NotContains(t, o.emergency, testUser, "tampered backup is dropped")
	o.mu.Unlock()
}

func TestSaveOrchestrator_CloseFlushesEmergencyBackups(t *testing.T) {
	ctx := context.Background()
	device := store.NewMemoryTier(3)
	o := newTestOrchestrator([]store.Tier{store.NewMemoryTier(3)}, OrchestratorDeps{Device: device}, OrchestratorOptions{})

	require.True(t, o.CreateEmergencyBackup(ctx, testUser, progress(testUser, 77, 3, baseTime)))
	require.NoError(t, o.Close(ctx))

	loaded := device.Load(ctx, testUser, models.LoadOptions{Emergency: true})
	require.True(t, loaded.Success)
	assert.Equal(t, 77.0, loaded.Snapshot.Critical.ContainerSnot)

	// повторный Close ничего не делает
	assert.NoError(t, o.Close(ctx))
	assert.False(t, o.CreateEmergencyBackup(ctx, testUser, progress(testUser, 1, 0, baseTime)))
}

func TestSaveOrchestrator_CloseReportsFlushFailures(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	device := mock.NewMockTier(ctrl)
	device.EXPECT().Save(gomock.Any(), testUser, gomock.Any(), models.SaveOptions{Emergency: true}).
		Return(models.StorageResult{Tier: models.TierDevice}.Fail(models.ErrTierUnavailable))

	o := newTestOrchestrator([]store.Tier{store.NewMemoryTier(3)}, OrchestratorDeps{Device: device}, OrchestratorOptions{})
	require.True(t, o.CreateEmergencyBackup(ctx, testUser, progress(testUser, 5, 0, baseTime)))

	err := o.Close(ctx)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFlushIncomplete))
	assert.True(t, errors.Is(err, models.ErrTierUnavailable))
}

func TestSaveOrchestrator_Forget(t *testing.T) {
	ctx := context.Background()
	o := newTestOrchestrator([]store.Tier{store.NewMemoryTier(3)}, OrchestratorDeps{}, OrchestratorOptions{})

	require.True(t, o.Save(ctx, critical(progress(testUser, 10, 0, baseTime))).Success)
	require.True(t, o.Save(ctx, critical(progress(testUser, 20, 0, baseTime))).Success)
	require.True(t, o.CreateEmergencyBackup(ctx, testUser, progress(testUser, 30, 0, baseTime)))

	o.Forget(testUser)

	_, ok := o.EmergencyBackup(testUser)
	assert.False(t, ok)
	assert.Zero(t, o.history.Len(testUser))

	o.mu.Lock()
	assert.NotContains(t, o.latest, testUser)
	assert.NotContains(t, o.lastSave, testUser)
	o.mu.Unlock()
}
