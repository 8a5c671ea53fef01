package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/store"
)

// DefaultProbeInterval is used for non-positive intervals.
const DefaultProbeInterval = 30 * time.Second

// CacheProber is the part of [store.CacheTier] the probe drives.
type CacheProber interface {
	Probe(ctx context.Context) store.CacheState
}

type cacheProbe struct {
	cache    CacheProber
	interval time.Duration
	logger   *logger.Logger
}

// NewCacheProbe checks the cache every interval so silent disconnects are
// noticed between writes. An unavailable cache is only reported: it stays
// unavailable until someone calls Reinitialize on the tier.
func NewCacheProbe(cache CacheProber, interval time.Duration, logger *logger.Logger) Worker {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	return &cacheProbe{cache: cache, interval: interval, logger: logger}
}

func (p *cacheProbe) Run(ctx context.Context) {
	t := time.NewTicker(p.interval)
	defer t.Stop()

	last := store.CacheState("")
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}

		state := p.cache.Probe(ctx)
		if state == last {
			continue
		}

		if state == store.CacheUnavailable {
			p.logger.Warn().Str("func", "cacheProbe.Run").
				Str("from", string(last)).
				Msg("cache gave up reconnecting, writes go to the fallback until it is reinitialized")
		} else {
			p.logger.Info().Str("func", "cacheProbe.Run").
				Str("from", string(last)).
				Str("to", string(state)).
				Msg("cache state changed")
		}
		last = state
	}
}
