// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/mock"
	"github.com/MKhiriev/go-save-keeper/internal/store"
)

func TestWorkers_RunAllUntilCancelled(t *testing.T) {
	var started, stopped atomic.Int32
	worker := WorkerFunc(func(ctx context.Context) {
		started.Add(1)
		<-ctx.Done()
		stopped.Add(1)
	})

	ws := NewWorkers(worker, nil, worker, worker)
	require.Equal(t, 3, ws.Len())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ws.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return started.Load() == 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
	assert.Equal(t, int32(3), stopped.Load())
}

func TestWorkers_Empty(t *testing.T) {
	ws := NewWorkers()
	// пустой набор не блокирует
	ws.Run(context.Background())
	assert.Zero(t, ws.Len())
}

func TestSyncWorker(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := mock.NewMockSyncJob(ctrl)

	ctx, cancel := context.WithCancel(context.Background())

	gomock.InOrder(
		job.EXPECT().Start(gomock.Any(), "player-1", time.Minute),
		job.EXPECT().Stop(),
	)

	done := make(chan struct{})
	go func() {
		NewSyncWorker(job, "player-1", time.Minute).Run(ctx)
		close(done)
	}()

	cancel()
	<-done
}

type fakeProber struct {
	mu      sync.Mutex
	states  []store.CacheState
	probes  int
	reinits int
}

func (f *fakeProber) Probe(context.Context) store.CacheState {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.states[min(f.probes, len(f.states)-1)]
	f.probes++
	return s
}

// Reinitialize mirrors store.CacheTier so that a probe reaching for it
// through a type assertion would be counted.
func (f *fakeProber) Reinitialize(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reinits++
	return nil
}

func (f *fakeProber) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.probes, f.reinits
}

func TestCacheProbe_ReportsUnavailableWithoutReinitializing(t *testing.T) {
	var buf bytes.Buffer
	prober := &fakeProber{states: []store.CacheState{
		store.CacheConnected,
		store.CacheUnavailable,
	}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewCacheProbe(prober, 5*time.Millisecond, &logger.Logger{Logger: zerolog.New(&buf)}).Run(ctx)
		close(done)
	}()

	// недоступный кэш остаётся недоступным: проба только пишет в лог
	require.Eventually(t, func() bool {
		probes, _ := prober.counts()
		return probes >= 5
	}, time.Second, time.Millisecond)
	cancel()
	<-done

	_, reinits := prober.counts()
	assert.Zero(t, reinits)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "cache gave up reconnecting"), "unavailable state is reported once")
	assert.Contains(t, out, `"to":"connected"`)
}

func TestNewCacheProbe_DefaultInterval(t *testing.T) {
	p := NewCacheProbe(&fakeProber{}, 0, logger.Nop()).(*cacheProbe)
	assert.Equal(t, DefaultProbeInterval, p.interval)
}

func TestMetricsServer(t *testing.T) {
	assert.Nil(t, NewMetricsServer("", logger.Nop()))

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewMetricsServer(addr, logger.Nop()).Run(ctx)
		close(done)
	}()

	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://%s/metrics", addr))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		body = string(b)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, body, "go_goroutines")

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("metrics server did not stop")
	}
}
