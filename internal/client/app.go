package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-save-keeper/internal/config"
	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/service"
	"github.com/MKhiriev/go-save-keeper/internal/store"
	"github.com/MKhiriev/go-save-keeper/internal/workers"
)

// ErrCacheNotConfigured is returned by ReinitializeCache when the tier chain
// has no cache tier.
var ErrCacheNotConfigured = errors.New("cache tier is not configured")

// cacheReinitializer is the part of [store.CacheTier] the operator drives.
type cacheReinitializer interface {
	Reinitialize(ctx context.Context) error
}

type App struct {
	services *service.ClientServices
	storages io.Closer
	workers  *workers.Workers
	cache    cacheReinitializer

	// reinit delivers operator requests to reconnect the cache (SIGHUP).
	reinit <-chan os.Signal

	identity     Identity
	flushTimeout time.Duration

	logger *logger.Logger
}

// NewApp wires the background workers: the sync job when a remote store is
// configured, the cache probe when the cache tier is enabled and the metrics
// listener when it has an address.
func NewApp(services *service.ClientServices, storages *store.ClientStorages, identity Identity, cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	if services == nil || storages == nil {
		return nil, errors.New("client app needs services and storages")
	}

	var syncWorker, probe workers.Worker
	if services.Reconciler != nil && identity.Valid {
		syncWorker = workers.NewSyncWorker(services.SyncJob, identity.UserID, cfg.Workers.SyncInterval)
	}
	var cache cacheReinitializer
	if storages.Cache != nil {
		cache = storages.Cache
		probe = workers.NewCacheProbe(storages.Cache, cfg.Cache.ProbeInterval, logger)
	}

	return &App{
		services:     services,
		storages:     storages,
		cache:        cache,
		workers:      workers.NewWorkers(syncWorker, probe, workers.NewMetricsServer(cfg.App.MetricsAddress, logger)),
		identity:     identity,
		flushTimeout: cfg.Orchestrator.FlushTimeout,
		logger:       logger,
	}, nil
}

// Run blocks until SIGINT or SIGTERM and then flushes pending saves and
// emergency backups before closing the tiers. SIGHUP reinitializes a cache
// tier that gave up reconnecting.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	a.reinit = hup

	return a.run(ctx)
}

// ReinitializeCache resets the retry budget of the cache tier and reconnects.
// It is the only way out of the unavailable state.
func (a *App) ReinitializeCache(ctx context.Context) error {
	if a.cache == nil {
		return ErrCacheNotConfigured
	}
	if err := a.cache.Reinitialize(ctx); err != nil {
		a.logger.Err(err).Str("func", "App.ReinitializeCache").Msg("cache reinitialization failed")
		return fmt.Errorf("reinitialize cache: %w", err)
	}
	a.logger.Info().Str("func", "App.ReinitializeCache").Msg("cache reinitialized")
	return nil
}

func (a *App) run(ctx context.Context) error {
	if !a.identity.Valid {
		return errors.Join(ErrInvalidIdentity, a.shutdown())
	}
	log := a.logger.WithUser(a.identity.UserID)

	res := a.services.ProgressService.Load(ctx, a.identity.UserID)
	if !res.Success || res.Snapshot == nil {
		log.Warn().Err(res.Err).Str("func", "App.run").Str("kind", string(res.Kind)).Msg("progress not loaded")
	} else {
		log.Info().Str("func", "App.run").
			Str("source", res.Source).
			Int64("version", res.Snapshot.Version).
			Bool("repaired", res.Repaired).
			Msg("progress loaded")
	}

	workersCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.workers.Run(workersCtx)
	}()

wait:
	for {
		select {
		case <-ctx.Done():
			break wait
		case <-a.reinit:
			// failures are logged; the cache stays unavailable until the next request
			_ = a.ReinitializeCache(ctx)
		}
	}
	cancel()
	<-done

	log.Info().Str("func", "App.run").Msg("shutting down")
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.flushTimeout)
	defer cancel()

	var errs []error
	if err := a.services.Orchestrator.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("flush: %w", err))
	}
	if err := a.storages.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close tiers: %w", err))
	}
	return errors.Join(errs...)
}
