package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-save-keeper/internal/validators"
	"github.com/MKhiriev/go-save-keeper/models"
)

type preparedSave struct {
	snapshot models.Snapshot
	repaired []string
	merged   bool
}

// prepare repairs the incoming snapshot and assigns its version:
//
//	no stored copy                       ->  max(1, incoming)
//	incoming == 0 or incoming >= stored  ->  stored+1, max(stored+1, incoming) when adopting
//	0 < incoming < stored                ->  merge(incoming, stored), version stored+1
//
// It returns the previously accepted snapshot as the delta base, nil when
// none is known.
func (o *saveOrchestrator) prepare(ctx context.Context, req models.SaveRequest) (preparedSave, *models.Snapshot, error) {
	snapshot := req.Snapshot.Clone()
	snapshot.UserID = req.UserID
	// recomputed below; a hash left over from the loaded copy is not damage
	snapshot.IntegrityHash = ""
	if snapshot.LastModified <= 0 {
		snapshot.LastModified = o.now().UnixMilli()
	}

	snapshot, repaired := o.integrity.Repair(snapshot)

	stored := o.stored(ctx, req.UserID)

	out := preparedSave{repaired: repaired}
	incoming := snapshot.Version

	switch {
	case stored == nil:
		snapshot.Version = max(1, incoming)

	case incoming > 0 && incoming < stored.Version:
		if o.merger == nil {
			return preparedSave{}, nil, models.ErrVersionConflict
		}
		merged := o.merger.Merge(snapshot, *stored)
		merged, fixed := o.integrity.Repair(merged)
		merged.Version = stored.Version + 1

		o.logger.Info().Str("func", "saveOrchestrator.prepare").
			Str("user_id", req.UserID).
			Int64("incoming", incoming).
			Int64("stored", stored.Version).
			Msg("stale snapshot merged with the stored copy")

		snapshot = merged
		out.merged = true
		out.repaired = append(out.repaired, fixed...)

	case req.Adopt:
		snapshot.Version = max(stored.Version+1, incoming)

	default:
		snapshot.Version = stored.Version + 1
	}

	validators.Seal(&snapshot)
	out.snapshot = snapshot

	return out, stored, nil
}

// stored returns the newest accepted snapshot of the user: the one this
// orchestrator wrote last or, after a restart, the first copy found in the
// tier chain. A user unknown to every tier yields nil.
func (o *saveOrchestrator) stored(ctx context.Context, userID string) *models.Snapshot {
	o.mu.Lock()
	s, ok := o.latest[userID]
	o.mu.Unlock()
	if ok {
		return &s
	}

	var unavailable int
	for _, tier := range o.tiers {
		r := tier.Load(ctx, userID, models.LoadOptions{})
		if r.Success && r.Snapshot != nil {
			found := r.Snapshot.Clone()

			o.mu.Lock()
			// a concurrent critical save may have won the race
			if cur, ok := o.latest[userID]; ok && cur.Version >= found.Version {
				found = cur
			} else {
				o.latest[userID] = found
			}
			o.mu.Unlock()

			return &found
		}
		if !errors.Is(r.Err, models.ErrNotFound) {
			unavailable++
		}
	}

	if unavailable > 0 {
		o.logger.Warn().Str("func", "saveOrchestrator.stored").
			Str("user_id", userID).
			Int("failed_tiers", unavailable).
			Msg("stored version unknown on some tiers, assuming a new user")
	}
	return nil
}
