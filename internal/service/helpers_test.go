package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-save-keeper/internal/store"
	"github.com/MKhiriev/go-save-keeper/internal/validators"
	"github.com/MKhiriev/go-save-keeper/models"
)

const testUser = "player-1"

// baseTime is 2023-11-14T22:13:20Z in milliseconds.
const baseTime int64 = 1_700_000_000_000

// progress builds a valid, unsealed snapshot with the container holding snot.
func progress(userID string, snot float64, version, lastModified int64) models.Snapshot {
	s := models.NewDefaultSnapshot(userID, lastModified)
	s.Version = version
	s.Critical.ContainerCapacity = 500
	s.Critical.ContainerSnot = snot
	return s
}

// sealed is progress with the integrity hash set.
func sealed(userID string, snot float64, version, lastModified int64) models.Snapshot {
	s := progress(userID, snot, version, lastModified)
	validators.Seal(&s)
	return s
}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.UnixMilli(baseTime)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// gatedTier is a memory tier whose saves block until the gate is opened.
type gatedTier struct {
	*store.MemoryTier

	entered chan struct{}
	gate    chan struct{}

	mu    sync.Mutex
	saves []models.Snapshot
}

func newGatedTier() *gatedTier {
	return &gatedTier{
		MemoryTier: store.NewMemoryTier(3),
		entered:    make(chan struct{}, 16),
		gate:       make(chan struct{}),
	}
}

func (g *gatedTier) Save(ctx context.Context, userID string, snapshot models.Snapshot, opts models.SaveOptions) models.StorageResult {
	g.entered <- struct{}{}
	<-g.gate

	g.mu.Lock()
	g.saves = append(g.saves, snapshot)
	g.mu.Unlock()

	return g.MemoryTier.Save(ctx, userID, snapshot, opts)
}

func (g *gatedTier) saved() []models.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.Snapshot(nil), g.saves...)
}

// loadCanonical reads the canonical record of the user from tier.
func loadCanonical(tier store.Tier, userID string) models.StorageResult {
	return tier.Load(context.Background(), userID, models.LoadOptions{})
}

// slowTier is a memory tier whose saves take delay.
type slowTier struct {
	*store.MemoryTier
	delay time.Duration

	mu    sync.Mutex
	saves []int64
}

func (s *slowTier) Save(ctx context.Context, userID string, snapshot models.Snapshot, opts models.SaveOptions) models.StorageResult {
	time.Sleep(s.delay)

	s.mu.Lock()
	s.saves = append(s.saves, snapshot.Version)
	s.mu.Unlock()

	return s.MemoryTier.Save(ctx, userID, snapshot, opts)
}

func (s *slowTier) versions() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.saves...)
}
