package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-save-keeper/internal/service"
)

type syncWorker struct {
	job      service.SyncJob
	userID   string
	interval time.Duration
}

// NewSyncWorker runs job for userID every interval while the worker runs.
func NewSyncWorker(job service.SyncJob, userID string, interval time.Duration) Worker {
	return &syncWorker{job: job, userID: userID, interval: interval}
}

func (s *syncWorker) Run(ctx context.Context) {
	s.job.Start(ctx, s.userID, s.interval)
	<-ctx.Done()
	s.job.Stop()
}
