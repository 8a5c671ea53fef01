// Package workers runs the background jobs of the client runtime: periodic
// reconciliation with the remote store, the cache liveness probe and the
// metrics listener.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled and
// releases everything the worker started before returning.
type Worker interface {
	Run(ctx context.Context)
}

// WorkerFunc adapts a function to [Worker].
type WorkerFunc func(ctx context.Context)

func (f WorkerFunc) Run(ctx context.Context) {
	f(ctx)
}
