// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-save-keeper/internal/delta"
	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/mock"
	"github.com/MKhiriev/go-save-keeper/internal/store"
	"github.com/MKhiriev/go-save-keeper/models"
)

// newTestProgressService wires a real orchestrator over tiers. remote is
// optional; pass a nil interface, not a typed nil.
func newTestProgressService(t *testing.T, tiers []store.Tier, remote store.RemoteClient, device store.Tier) *progressService {
	t.Helper()

	codec := delta.NewCodec()
	history := delta.NewHistory(delta.DefaultWindow)
	merger := NewMerger()

	orchestrator := newSaveOrchestrator(tiers, OrchestratorDeps{
		Merger:  merger,
		Codec:   codec,
		History: history,
		Device:  device,
	}, OrchestratorOptions{}, logger.Nop())
	t.Cleanup(func() { _ = orchestrator.Close(context.Background()) })

	var reconciler SyncReconciler
	if remote != nil {
		reconciler = NewSyncReconciler(ReconcilerDeps{Remote: remote, Codec: codec, Merger: merger}, models.StrategyMerge, "tab-1", logger.Nop())
	}

	return newProgressService(tiers, ProgressDeps{
		Orchestrator: orchestrator,
		Reconciler:   reconciler,
		Codec:        codec,
		History:      history,
		Remote:       remote,
		Device:       device,
	}, logger.Nop())
}

func TestProgressService_LoadNewPlayer(t *testing.T) {
	p := newTestProgressService(t, []store.Tier{store.NewMemoryTier(3)}, nil, nil)

	_, ok := p.LastLoadResult()
	require.False(t, ok)

	res := p.Load(context.Background(), testUser)

	require.True(t, res.Success)
	assert.Equal(t, models.SourceDefault, res.Source)
	require.NotNil(t, res.Snapshot)
	assert.Equal(t, testUser, res.Snapshot.UserID)
	assert.Equal(t, models.DefaultCapacity, res.Snapshot.Critical.ContainerCapacity)
	assert.NotNil(t, res.Snapshot.Critical.Upgrades)

	last, ok := p.LastLoadResult()
	require.True(t, ok)
	assert.Equal(t, res.Source, last.Source)
	assert.False(t, p.IsLoading())
}

func TestProgressService_LoadEmptyUser(t *testing.T) {
	p := newTestProgressService(t, []store.Tier{store.NewMemoryTier(3)}, nil, nil)

	res := p.Load(context.Background(), "")

	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, models.ErrEmptyUserID)
	assert.Equal(t, models.KindInvalidArgument, res.Kind)
}

func TestProgressService_LoadFallsThroughTiers(t *testing.T) {
	ctx := context.Background()
	first := store.NewMemoryTier(3)
	second := store.NewMemoryTier(3)
	second.Save(ctx, testUser, sealed(testUser, 50, 3, baseTime), models.SaveOptions{})

	p := newTestProgressService(t, []store.Tier{first, second}, nil, nil)

	res := p.Load(ctx, testUser)

	require.True(t, res.Success)
	assert.Equal(t, models.SourceLocal, res.Source)
	assert.Equal(t, int64(3), res.Snapshot.Version)
	assert.Equal(t, 50.0, res.Snapshot.Critical.ContainerSnot)
	assert.False(t, res.Repaired)
}

func TestProgressService_LoadReplaysDeltaHistory(t *testing.T) {
	ctx := context.Background()
	tier := store.NewMemoryTier(3)
	v1 := sealed(testUser, 10, 1, baseTime)
	tier.Save(ctx, testUser, v1, models.SaveOptions{})

	p := newTestProgressService(t, []store.Tier{tier}, nil, nil)

	v2 := sealed(testUser, 20, 2, baseTime+1000)
	d, err := p.codec.Create(v1, v2, "tab-1")
	require.NoError(t, err)
	require.NotNil(t, d)
	p.history.Record(*d)

	res := p.Load(ctx, testUser)

	require.True(t, res.Success)
	assert.Equal(t, int64(2), res.Snapshot.Version)
	assert.Equal(t, 20.0, res.Snapshot.Critical.ContainerSnot)
}

func TestProgressService_LoadRepairsCorruptedCopy(t *testing.T) {
	ctx := context.Background()
	tier := store.NewMemoryTier(3)
	broken := sealed(testUser, 900, 1, baseTime)
	tier.Save(ctx, testUser, broken, models.SaveOptions{})

	p := newTestProgressService(t, []store.Tier{tier}, nil, nil)

	res := p.Load(ctx, testUser)

	require.True(t, res.Success)
	assert.True(t, res.Repaired)
	assert.Equal(t, 500.0, res.Snapshot.Critical.ContainerSnot)
	assert.Equal(t, int64(2), res.Snapshot.Version)

	// исправленная копия записана обратно
	stored := loadCanonical(tier, testUser)
	require.True(t, stored.Success)
	assert.Equal(t, 500.0, stored.Snapshot.Critical.ContainerSnot)
}

func TestProgressService_LoadRecoversEmergencyBackup(t *testing.T) {
	ctx := context.Background()

	t.Run("in memory", func(t *testing.T) {
		tier := store.NewMemoryTier(3)
		tier.Save(ctx, testUser, sealed(testUser, 10, 2, baseTime), models.SaveOptions{})
		p := newTestProgressService(t, []store.Tier{tier}, nil, nil)

		require.True(t, p.CreateEmergencyBackup(ctx, testUser, progress(testUser, 99, 2, baseTime+5000)))

		res := p.Load(ctx, testUser)

		require.True(t, res.Success)
		assert.Equal(t, models.SourceEmergency, res.Source)
		assert.Equal(t, 99.0, res.Snapshot.Critical.ContainerSnot)
		assert.Equal(t, int64(3), res.Snapshot.Version)
	})

	t.Run("device slot", func(t *testing.T) {
		device := store.NewMemoryTier(3)
		device.Save(ctx, testUser, sealed(testUser, 10, 2, baseTime), models.SaveOptions{})
		device.Save(ctx, testUser, sealed(testUser, 77, 2, baseTime+5000), models.SaveOptions{Emergency: true})
		p := newTestProgressService(t, []store.Tier{device}, nil, device)

		res := p.Load(ctx, testUser)

		require.True(t, res.Success)
		assert.Equal(t, models.SourceEmergency, res.Source)
		assert.Equal(t, 77.0, res.Snapshot.Critical.ContainerSnot)
		assert.Equal(t, int64(3), res.Snapshot.Version)
	})

	t.Run("older backup is ignored", func(t *testing.T) {
		tier := store.NewMemoryTier(3)
		tier.Save(ctx, testUser, sealed(testUser, 10, 2, baseTime+5000), models.SaveOptions{})
		p := newTestProgressService(t, []store.Tier{tier}, nil, nil)

		require.True(t, p.CreateEmergencyBackup(ctx, testUser, progress(testUser, 99, 1, baseTime)))

		res := p.Load(ctx, testUser)

		assert.Equal(t, models.SourceLocal, res.Source)
		assert.Equal(t, 10.0, res.Snapshot.Critical.ContainerSnot)
	})
}

func TestProgressService_LoadTakesNewerRemote(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteClient(ctrl)

	tier := store.NewMemoryTier(3)
	tier.Save(ctx, testUser, sealed(testUser, 10, 2, baseTime), models.SaveOptions{})
	newer := sealed(testUser, 300, 5, baseTime+5000)

	remote.EXPECT().LoadMeta(gomock.Any(), testUser).Return(metaOf(newer), nil)
	remote.EXPECT().LoadProgress(gomock.Any(), testUser).Return(newer, nil)

	p := newTestProgressService(t, []store.Tier{tier}, remote, nil)

	res := p.Load(ctx, testUser)

	require.True(t, res.Success)
	assert.Equal(t, models.SourceRemote, res.Source)
	assert.Equal(t, int64(5), res.Snapshot.Version)
	assert.Equal(t, 300.0, res.Snapshot.Critical.ContainerSnot)

	stored := loadCanonical(tier, testUser)
	assert.Equal(t, int64(5), stored.Snapshot.Version, "remote copy is persisted locally")
}

func TestProgressService_LoadWithRemoteDown(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteClient(ctrl)

	tier := store.NewMemoryTier(3)
	tier.Save(ctx, testUser, sealed(testUser, 10, 2, baseTime), models.SaveOptions{})
	remote.EXPECT().LoadMeta(gomock.Any(), testUser).Return(models.RemoteMeta{}, models.ErrTimeout)

	p := newTestProgressService(t, []store.Tier{tier}, remote, nil)

	res := p.Load(ctx, testUser)

	require.True(t, res.Success, "a failing remote never blocks the load")
	assert.Equal(t, models.SourceLocal, res.Source)
	assert.Equal(t, int64(2), res.Snapshot.Version)
}

func TestProgressService_SaveDelegatesToOrchestrator(t *testing.T) {
	ctx := context.Background()
	tier := store.NewMemoryTier(3)
	p := newTestProgressService(t, []store.Tier{tier}, nil, nil)

	res := p.Save(ctx, testUser, progress(testUser, 15, 0, baseTime), models.PriorityCritical)

	require.True(t, res.Success)
	assert.Equal(t, int64(1), res.Version)
	assert.False(t, p.IsSaving())

	last, ok := p.LastSaveResult()
	require.True(t, ok)
	assert.Equal(t, int64(1), last.Version)
	assert.True(t, tier.Exists(ctx, testUser))
}

func TestProgressService_Sync(t *testing.T) {
	ctx := context.Background()

	t.Run("without remote", func(t *testing.T) {
		p := newTestProgressService(t, []store.Tier{store.NewMemoryTier(3)}, nil, nil)

		res := p.Sync(ctx, testUser)

		assert.Equal(t, models.SyncFailed, res.Outcome)
		assert.ErrorIs(t, res.Err, ErrRemoteNotConfigured)
	})

	t.Run("merged copy is persisted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		remote := mock.NewMockRemoteClient(ctrl)

		tier := store.NewMemoryTier(3)
		tier.Save(ctx, testUser, sealed(testUser, 160, 2, baseTime+1000), models.SaveOptions{})
		theirs := sealed(testUser, 170, 2, baseTime+2000)
		theirs.Regular.Achievements = []string{"hoarder"}

		remote.EXPECT().LoadMeta(gomock.Any(), testUser).Return(metaOf(theirs), nil)
		remote.EXPECT().LoadProgress(gomock.Any(), testUser).Return(theirs, nil)
		remote.EXPECT().SaveDelta(gomock.Any(), gomock.Any()).Return(models.RemoteMeta{Version: 3, LastModified: baseTime + 3000}, nil).MaxTimes(1)
		remote.EXPECT().SaveProgress(gomock.Any(), gomock.Any()).Return(models.RemoteMeta{Version: 3, LastModified: baseTime + 3000}, nil).MaxTimes(1)

		p := newTestProgressService(t, []store.Tier{tier}, remote, nil)

		res := p.Sync(ctx, testUser)

		assert.Equal(t, models.SyncSuccess, res.Outcome)
		assert.True(t, res.Merged)
		require.NotNil(t, res.Snapshot)
		assert.Equal(t, 170.0, res.Snapshot.Critical.ContainerSnot)
		assert.Equal(t, int64(3), res.Snapshot.Version)

		stored := loadCanonical(tier, testUser)
		require.True(t, stored.Success)
		assert.Equal(t, int64(3), stored.Snapshot.Version)
		assert.Contains(t, stored.Snapshot.Regular.Achievements, "hoarder")
	})
}

func TestProgressService_DeleteUserData(t *testing.T) {
	ctx := context.Background()

	t.Run("everywhere", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		remote := mock.NewMockRemoteClient(ctrl)
		remote.EXPECT().DeleteProgress(gomock.Any(), testUser).Return(models.ErrNotFound)

		tier := store.NewMemoryTier(3)
		p := newTestProgressService(t, []store.Tier{tier}, remote, nil)
		require.True(t, p.Save(ctx, testUser, progress(testUser, 15, 0, baseTime), models.PriorityCritical).Success)
		require.True(t, p.CreateEmergencyBackup(ctx, testUser, progress(testUser, 16, 0, baseTime)))

		assert.True(t, p.DeleteUserData(ctx, testUser))
		assert.False(t, tier.Exists(ctx, testUser))

		_, ok := p.orchestrator.EmergencyBackup(testUser)
		assert.False(t, ok)

		// после удаления следующая запись снова начинается с версии 1
		res := p.Save(ctx, testUser, progress(testUser, 1, 0, baseTime), models.PriorityCritical)
		assert.Equal(t, int64(1), res.Version)
	})

	t.Run("failing tier", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tier := mock.NewMockTier(ctrl)
		tier.EXPECT().Delete(gomock.Any(), testUser).Return(false)
		tier.EXPECT().Name().Return(models.TierDatabase).AnyTimes()

		p := newTestProgressService(t, []store.Tier{tier}, nil, nil)

		assert.False(t, p.DeleteUserData(ctx, testUser))
	})

	t.Run("empty user", func(t *testing.T) {
		p := newTestProgressService(t, []store.Tier{store.NewMemoryTier(3)}, nil, nil)
		assert.False(t, p.DeleteUserData(ctx, ""))
	})
}
