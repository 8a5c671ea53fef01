package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-save-keeper/models"
)

// enqueueLocked puts req into the user's single pending slot, replacing any
// earlier request. With wait > 0 a timer makes the slot due later; with
// wait == 0 the slot is due at once and only waits for the in-flight save.
func (o *saveOrchestrator) enqueueLocked(req models.SaveRequest, wait time.Duration) {
	o.dropPendingLocked(req.UserID)

	p := &pendingSave{req: req, queuedAt: o.now()}
	o.pending[req.UserID] = p

	if wait <= 0 {
		p.due = true
		return
	}
	p.timer = time.AfterFunc(wait, func() { o.fire(req.UserID, p) })
}

func (o *saveOrchestrator) dropPendingLocked(userID string) {
	if p, ok := o.pending[userID]; ok {
		if p.timer != nil {
			p.timer.Stop()
		}
		delete(o.pending, userID)
	}
}

// fire runs when a pending slot's interval elapsed. A slot replaced in the
// meantime is ignored.
func (o *saveOrchestrator) fire(userID string, p *pendingSave) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || o.pending[userID] != p {
		return
	}
	p.timer = nil
	p.due = true

	if o.inFlight {
		return
	}
	o.startLocked(userID, p)
}

// releaseLocked starts the oldest due pending save once the in-flight guard
// is free.
func (o *saveOrchestrator) releaseLocked() {
	if o.closed || o.inFlight {
		return
	}

	var (
		nextUser string
		next     *pendingSave
	)
	for userID, p := range o.pending {
		if !p.due {
			continue
		}
		if next == nil || p.queuedAt.Before(next.queuedAt) {
			nextUser, next = userID, p
		}
	}
	if next != nil {
		o.startLocked(nextUser, next)
	}
}

func (o *saveOrchestrator) startLocked(userID string, p *pendingSave) {
	delete(o.pending, userID)
	o.inFlight = true
	o.active++
	o.lastSave[userID] = o.now()
	o.wg.Add(1)

	go o.runPending(p.req)
}

// runPending executes a save taken from the pending slot. It is detached
// from the caller that queued it.
func (o *saveOrchestrator) runPending(req models.SaveRequest) {
	defer o.wg.Done()

	ctx := o.logger.WithContext(context.Background())
	res := o.execute(ctx, req)
	o.remember(res)

	if !res.Success {
		o.logger.Err(res.Err).Str("func", "saveOrchestrator.runPending").
			Str("user_id", req.UserID).
			Msg("queued save failed")
	}

	o.mu.Lock()
	o.active--
	o.inFlight = false
	o.releaseLocked()
	o.mu.Unlock()
}
