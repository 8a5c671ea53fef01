// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/metrics"
	"github.com/MKhiriev/go-save-keeper/models"
)

// CacheState is the connection health of the cache tier.
//
//	disconnected -> connecting -> connected
//	connected -> disconnected             (operation or probe failure)
//	connecting -> unavailable             (after BackoffPolicy.MaxRetries failures)
//	unavailable -> connecting             (Reinitialize only)
type CacheState string

const (
	CacheDisconnected CacheState = "disconnected"
	CacheConnecting   CacheState = "connecting"
	CacheConnected    CacheState = "connected"
	CacheUnavailable  CacheState = "unavailable"
)

var allCacheStates = []string{
	string(CacheDisconnected),
	string(CacheConnecting),
	string(CacheConnected),
	string(CacheUnavailable),
}

// ErrCacheUnavailable is returned by cache operations while the connection
// is not established.
var ErrCacheUnavailable = fmt.Errorf("%w: cache is not connected", models.ErrTierUnavailable)

// BackoffPolicy bounds the automatic reconnection.
type BackoffPolicy struct {
	Base       time.Duration
	Max        time.Duration
	MaxRetries int
}

// Delay is the wait before the given 0-based attempt: Base doubled per
// attempt, capped at Max.
func (p BackoffPolicy) Delay(attempt int) time.Duration {
	d := p.Base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= p.Max || d <= 0 {
			return p.Max
		}
	}
	return min(d, p.Max)
}

// cacheConnection owns the state machine and the reconnect loop.
type cacheConnection struct {
	client  CacheClient
	policy  BackoffPolicy
	timeout time.Duration
	logger  *logger.Logger

	mu           sync.Mutex
	state        CacheState
	retries      int
	reconnecting bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	sleep func(ctx context.Context, d time.Duration) error
}

func newCacheConnection(client CacheClient, policy BackoffPolicy, timeout time.Duration, log *logger.Logger) *cacheConnection {
	ctx, cancel := context.WithCancel(context.Background())
	c := &cacheConnection{
		client:  client,
		policy:  policy,
		timeout: timeout,
		logger:  log,
		state:   CacheDisconnected,
		ctx:     ctx,
		cancel:  cancel,
		sleep:   sleepCtx,
	}
	metrics.SetCacheState(string(CacheDisconnected), allCacheStates)
	return c
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *cacheConnection) State() CacheState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// setState must be called with mu held.
func (c *cacheConnection) setState(s CacheState) {
	if c.state == s {
		return
	}
	c.logger.Info().
		Str("func", "cacheConnection.setState").
		Str("from", string(c.state)).
		Str("to", string(s)).
		Msg("cache connection state changed")
	c.state = s
	metrics.SetCacheState(string(s), allCacheStates)
}

func (c *cacheConnection) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return timeoutError(c.client.Ping(ctx))
}

// connect makes one connection attempt. On failure the reconnect loop takes
// over.
func (c *cacheConnection) connect(ctx context.Context) error {
	c.mu.Lock()
	c.setState(CacheConnecting)
	c.mu.Unlock()

	err := c.ping(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Warn().Err(err).Str("func", "cacheConnection.connect").Msg("cache is not reachable")
		c.setState(CacheDisconnected)
		c.startReconnectLocked()
		return fmt.Errorf("%w: %w", models.ErrTierUnavailable, err)
	}

	c.retries = 0
	c.setState(CacheConnected)
	return nil
}

// reinitialize leaves the unavailable state and starts over.
func (c *cacheConnection) reinitialize(ctx context.Context) error {
	c.mu.Lock()
	c.retries = 0
	c.state = CacheDisconnected
	c.mu.Unlock()

	return c.connect(ctx)
}

// fail reports a failed operation. Misses are not failures.
func (c *cacheConnection) fail(err error) {
	if err == nil || errors.Is(err, ErrCacheMiss) || errors.Is(err, context.Canceled) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != CacheConnected {
		return
	}
	c.logger.Warn().Err(err).Str("func", "cacheConnection.fail").Msg("cache operation failed, reconnecting")
	c.setState(CacheDisconnected)
	c.startReconnectLocked()
}

// probe pings a connected cache and restarts the reconnect loop of a
// disconnected one that has no loop running.
func (c *cacheConnection) probe(ctx context.Context) CacheState {
	switch c.State() {
	case CacheConnected:
		if err := c.ping(ctx); err != nil {
			c.fail(err)
		}
	case CacheDisconnected:
		c.mu.Lock()
		c.startReconnectLocked()
		c.mu.Unlock()
	}
	return c.State()
}

func (c *cacheConnection) startReconnectLocked() {
	if c.reconnecting || c.state == CacheUnavailable || c.ctx.Err() != nil {
		return
	}
	c.reconnecting = true
	c.wg.Add(1)
	go c.reconnectLoop()
}

func (c *cacheConnection) reconnectLoop() {
	defer c.wg.Done()

	for {
		c.mu.Lock()
		if c.state == CacheConnected {
			c.reconnecting = false
			c.mu.Unlock()
			return
		}
		if c.retries >= c.policy.MaxRetries {
			c.setState(CacheUnavailable)
			c.reconnecting = false
			c.mu.Unlock()
			c.logger.Error().
				Str("func", "cacheConnection.reconnectLoop").
				Int("retries", c.policy.MaxRetries).
				Msg("cache marked unavailable until reinitialised")
			return
		}
		attempt := c.retries
		c.retries++
		c.mu.Unlock()

		if err := c.sleep(c.ctx, c.policy.Delay(attempt)); err != nil {
			c.mu.Lock()
			c.reconnecting = false
			c.mu.Unlock()
			return
		}

		c.mu.Lock()
		c.setState(CacheConnecting)
		c.mu.Unlock()

		err := c.ping(c.ctx)

		c.mu.Lock()
		if err == nil {
			c.retries = 0
			c.setState(CacheConnected)
			c.reconnecting = false
			c.mu.Unlock()
			return
		}
		c.setState(CacheDisconnected)
		c.mu.Unlock()

		c.logger.Debug().Err(err).
			Str("func", "cacheConnection.reconnectLoop").
			Int("attempt", attempt+1).
			Msg("cache reconnect attempt failed")
	}
}

// close stops the reconnect loop and waits for it.
func (c *cacheConnection) close() {
	c.cancel()
	c.wg.Wait()
}
