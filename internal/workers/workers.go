package workers

import (
	"context"
	"sync"
)

// Workers runs a set of workers side by side.
type Workers struct {
	workers []Worker
}

// NewWorkers groups ws. Nil workers are skipped so that optional jobs can be
// passed unconditionally.
func NewWorkers(ws ...Worker) *Workers {
	out := &Workers{}
	for _, w := range ws {
		if w != nil {
			out.workers = append(out.workers, w)
		}
	}
	return out
}

// Run starts every worker in its own goroutine and blocks until all of them
// returned after ctx was cancelled.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}
	wg.Wait()
}

// Len returns the number of workers.
func (w *Workers) Len() int {
	return len(w.workers)
}
