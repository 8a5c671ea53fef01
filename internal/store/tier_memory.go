package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-save-keeper/models"
)

// MemoryTier keeps records in process memory. It is the fastest tier and the
// in-process fallback of the cache tier.
type MemoryTier struct {
	mu        sync.RWMutex
	users     map[string]*userRecords
	retention int
	name      models.TierName
}

// NewMemoryTier returns an empty memory tier keeping retention backups per user.
func NewMemoryTier(retention int) *MemoryTier {
	return &MemoryTier{
		users:     make(map[string]*userRecords),
		retention: retention,
		name:      models.TierMemory,
	}
}

func (m *MemoryTier) Name() models.TierName {
	return m.name
}

func (m *MemoryTier) Save(ctx context.Context, userID string, snapshot models.Snapshot, opts models.SaveOptions) models.StorageResult {
	op := begin(m.name, opSave)
	if err := checkUser(userID); err != nil {
		return op.fail(err)
	}
	if err := ctx.Err(); err != nil {
		return op.fail(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	recs, ok := m.users[userID]
	if !ok {
		recs = &userRecords{}
		m.users[userID] = recs
	}
	recs.save(snapshot.Clone(), opts, m.retention, time.Now())

	return op.saved(snapshot, encodedSize(snapshot))
}

func (m *MemoryTier) Load(ctx context.Context, userID string, opts models.LoadOptions) models.StorageResult {
	op := begin(m.name, opLoad)
	if err := checkUser(userID); err != nil {
		return op.fail(err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	recs, ok := m.users[userID]
	if !ok {
		return op.fail(models.ErrNotFound)
	}
	snapshot, err := recs.load(opts)
	if err != nil {
		return op.fail(err)
	}

	snapshot = snapshot.Clone()
	return op.loaded(snapshot, encodedSize(snapshot))
}

func (m *MemoryTier) Delete(_ context.Context, userID string) bool {
	op := begin(m.name, opDelete)

	m.mu.Lock()
	delete(m.users, userID)
	m.mu.Unlock()

	return op.flag(true)
}

func (m *MemoryTier) Exists(_ context.Context, key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs, ok := m.users[key]
	return ok && recs.Record != nil
}

func (m *MemoryTier) Clear(_ context.Context) bool {
	op := begin(m.name, opClear)

	m.mu.Lock()
	m.users = make(map[string]*userRecords)
	m.mu.Unlock()

	return op.flag(true)
}

// Len returns the number of users with at least one record.
func (m *MemoryTier) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}
