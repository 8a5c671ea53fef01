package store

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-save-keeper/models"
)

// memorySyncRecords keeps the last sync record per user when no database
// tier is configured.
type memorySyncRecords struct {
	mu      sync.RWMutex
	records map[string]models.SyncRecord
}

// NewMemorySyncRecords returns a process-local [SyncRecordRepository].
func NewMemorySyncRecords() SyncRecordRepository {
	return &memorySyncRecords{records: make(map[string]models.SyncRecord)}
}

func (m *memorySyncRecords) SaveSyncRecord(_ context.Context, record models.SyncRecord) error {
	m.mu.Lock()
	m.records[record.UserID] = record
	m.mu.Unlock()
	return nil
}

func (m *memorySyncRecords) LastSyncRecord(_ context.Context, userID string) (models.SyncRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[userID]
	if !ok {
		return models.SyncRecord{}, models.ErrNotFound
	}
	return rec, nil
}
