package delta

import (
	"fmt"
	"sync"

	"github.com/MKhiriev/go-save-keeper/models"
)

// DefaultWindow is the number of deltas kept per user.
const DefaultWindow = 10

// History is a bounded per-user window of recently created deltas, oldest
// first. It is safe for concurrent use.
type History struct {
	mu     sync.RWMutex
	window int
	deltas map[string][]models.Delta
}

// NewHistory returns a History keeping at most window deltas per user.
// A non-positive window falls back to DefaultWindow.
func NewHistory(window int) *History {
	if window <= 0 {
		window = DefaultWindow
	}
	return &History{window: window, deltas: make(map[string][]models.Delta)}
}

// Record appends d to its user's window and prunes the oldest entries. A
// delta that does not continue the chain restarts it.
func (h *History) Record(d models.Delta) {
	h.mu.Lock()
	defer h.mu.Unlock()

	list := h.deltas[d.UserID]
	if n := len(list); n > 0 && list[n-1].NewVersion != d.BaseVersion {
		list = nil
	}

	list = append(list, d)
	if len(list) > h.window {
		list = append([]models.Delta(nil), list[len(list)-h.window:]...)
	}
	h.deltas[d.UserID] = list
}

// Since returns the chain of deltas that brings a snapshot at version up to
// the newest recorded version. It is empty when version is already current
// and fails with ErrBrokenChain when the window no longer reaches back far
// enough.
func (h *History) Since(userID string, version int64) ([]models.Delta, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	list := h.deltas[userID]
	if len(list) == 0 || list[len(list)-1].NewVersion <= version {
		return nil, nil
	}

	for i, d := range list {
		if d.BaseVersion == version {
			return append([]models.Delta(nil), list[i:]...), nil
		}
	}

	return nil, fmt.Errorf("%w: user %s, version %d, window starts at %d",
		ErrBrokenChain, userID, version, list[0].BaseVersion)
}

// Latest returns the newest recorded delta for the user.
func (h *History) Latest(userID string) (models.Delta, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	list := h.deltas[userID]
	if len(list) == 0 {
		return models.Delta{}, false
	}
	return list[len(list)-1], true
}

// Len returns the number of deltas kept for the user.
func (h *History) Len(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.deltas[userID])
}

// Reset forgets every delta of the user. Called after a full snapshot
// supersedes the chain and on data deletion.
func (h *History) Reset(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.deltas, userID)
}
