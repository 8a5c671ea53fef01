package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-save-keeper/internal/config"
	"github.com/MKhiriev/go-save-keeper/internal/crypto"
	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/models"
)

// ErrMissingDependency is returned when a configured tier lacks its
// collaborator.
var ErrMissingDependency = errors.New("missing tier dependency")

// ClientDeps are the collaborators some tiers need. Cache may be nil, in
// which case a Redis client is built from the configuration.
type ClientDeps struct {
	Encryptor crypto.Encryptor
	Remote    RemoteClient
	Cache     CacheClient
}

// ClientStorages groups the tier chain of the client runtime in the
// configured order together with typed handles on the tiers that need
// lifecycle management.
type ClientStorages struct {
	// Tiers is the fallback chain in the configured order.
	Tiers []Tier

	Session  *SessionTier
	Device   *FileTier
	Database *DatabaseTier
	Cache    *CacheTier

	// SyncRecords is backed by the database tier when one is configured.
	SyncRecords SyncRecordRepository

	db *DB
}

// NewClientStorages builds every configured tier. The SQLite database is
// created and migrated on first use; the cache tier starts connecting and
// serves from its fallback until the cache is reachable.
func NewClientStorages(ctx context.Context, cfg *config.ClientConfig, deps ClientDeps, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Str("func", "NewClientStorages").Msg("creating storage tiers...")

	s := &ClientStorages{}
	retention := cfg.Storage.BackupRetention

	for _, name := range cfg.Orchestrator.Tiers {
		var tier Tier

		switch name {
		case models.TierMemory:
			tier = NewMemoryTier(retention)

		case models.TierSession:
			session, err := NewSessionTier(cfg.Storage.SessionDir, retention, log)
			if err != nil {
				s.Close()
				return nil, err
			}
			s.Session, tier = session, session

		case models.TierDevice:
			if deps.Encryptor == nil {
				s.Close()
				return nil, fmt.Errorf("%w: device tier needs an encryptor", ErrMissingDependency)
			}
			device, err := NewDeviceTier(cfg.Storage.DeviceDir, deps.Encryptor, retention, log)
			if err != nil {
				s.Close()
				return nil, err
			}
			s.Device, tier = device, device

		case models.TierDatabase:
			db, err := NewConnectSQLite(ctx, cfg.Storage.SQLiteDSN, log)
			if err != nil {
				s.Close()
				return nil, fmt.Errorf("sqlite connection error: %w", err)
			}
			s.db = db
			if err = db.Migrate(); err != nil {
				s.Close()
				return nil, fmt.Errorf("migration failed: %w", err)
			}
			s.Database = NewDatabaseTier(db, retention, log)
			tier = s.Database

		case models.TierCache:
			client := deps.Cache
			if client == nil {
				client = NewRedisCacheClient(RedisOptions{
					Address:  cfg.Cache.Address,
					Password: cfg.Cache.Password,
					DB:       cfg.Cache.DB,
					Timeout:  cfg.Cache.OperationTimeout,
				})
			}
			s.Cache = NewCacheTier(client, CacheOptions{
				OperationTimeout: cfg.Cache.OperationTimeout,
				Backoff: BackoffPolicy{
					Base:       cfg.Cache.BackoffBase,
					Max:        cfg.Cache.BackoffMax,
					MaxRetries: cfg.Cache.MaxRetries,
				},
				DeltaWindow: cfg.Orchestrator.DeltaWindow,
				Retention:   retention,
			}, log)
			if err := s.Cache.Connect(ctx); err != nil {
				log.Warn().Err(err).Str("func", "NewClientStorages").Msg("cache not reachable yet, using fallback")
			}
			tier = s.Cache

		case models.TierRemote:
			if deps.Remote == nil {
				s.Close()
				return nil, fmt.Errorf("%w: remote tier needs a remote client", ErrMissingDependency)
			}
			tier = NewRemoteTier(deps.Remote, cfg.Adapter.RequestTimeout, log)

		default:
			s.Close()
			return nil, fmt.Errorf("%w: unknown tier %q", ErrMissingDependency, name)
		}

		s.Tiers = append(s.Tiers, tier)
	}

	if s.Database != nil {
		s.SyncRecords = s.Database
	} else {
		s.SyncRecords = NewMemorySyncRecords()
	}

	return s, nil
}

// Close releases the session directory, the cache connection and the
// database.
func (s *ClientStorages) Close() error {
	var errs []error
	if s.Session != nil {
		errs = append(errs, s.Session.Close())
	}
	if s.Cache != nil {
		errs = append(errs, s.Cache.Close())
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	return errors.Join(errs...)
}
