package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/models"
)

// DefaultSyncInterval is used when Start is given a non-positive interval.
const DefaultSyncInterval = 5 * time.Minute

// syncer is the part of ProgressService the job drives.
type syncer interface {
	Sync(ctx context.Context, userID string) models.SyncResult
}

type syncJob struct {
	syncer syncer
	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a syncJob that calls Sync on a ticker. The job is idle
// until Start is called.
func NewSyncJob(s syncer, logger *logger.Logger) SyncJob {
	return &syncJob{syncer: s, logger: logger}
}

// Start implements SyncJob. It stops any previously running job, then
// launches a background goroutine that reconciles the user every interval.
// The goroutine exits when ctx is cancelled or Stop is called.
func (j *syncJob) Start(ctx context.Context, userID string, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				res := j.syncer.Sync(jobCtx, userID)
				if res.Err != nil {
					j.logger.Warn().Err(res.Err).
						Str("func", "syncJob.Start").
						Str("user_id", userID).
						Str("outcome", string(res.Outcome)).
						Msg("periodic sync incomplete")
				}
			}
		}
	}()
}

// Stop implements SyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is not
// running.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
