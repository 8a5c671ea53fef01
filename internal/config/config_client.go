package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-save-keeper/internal/utils"
	"github.com/MKhiriev/go-save-keeper/models"
)

// Defaults applied by the client view when a value is not configured.
const (
	DefaultRequestTimeout   = 3 * time.Second
	DefaultBackupRetention  = 3
	DefaultProbeInterval    = 30 * time.Second
	DefaultBackoffBase      = 500 * time.Millisecond
	DefaultBackoffMax       = 30 * time.Second
	DefaultMaxRetries       = 5
	DefaultBackupThrottle   = 500 * time.Millisecond
	DefaultDeltaWindow      = 10
	DefaultFlushTimeout     = 2 * time.Second
	DefaultSyncInterval     = 5 * time.Minute
	DefaultConflictStrategy = models.StrategyMerge
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// HashKey is the HMAC key used for request body integrity checks.
	HashKey string
	// EncryptionSecret seeds the device tier encryption keys.
	EncryptionSecret string
	// ClientID is stamped on created deltas.
	ClientID string
	// MetricsAddress enables the client /metrics listener when set.
	MetricsAddress string
}

// ClientIdentity is the player the runtime acts for.
type ClientIdentity struct {
	UserID string
	Token  string
}

// ClientAdapter holds network settings used by the remote tier.
type ClientAdapter struct {
	// HTTPAddress is the base address of the progress server.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientStorage groups the local tier locations.
type ClientStorage struct {
	SQLiteDSN       string
	DeviceDir       string
	SessionDir      string
	BackupRetention int
}

// ClientCache holds the cache tier connection and retry settings.
type ClientCache struct {
	Address          string
	Password         string
	DB               int
	OperationTimeout time.Duration
	ProbeInterval    time.Duration
	BackoffBase      time.Duration
	BackoffMax       time.Duration
	MaxRetries       int
}

// ClientOrchestrator tunes the save orchestrator and reconciler.
type ClientOrchestrator struct {
	// Tiers is the validated tier order.
	Tiers            []models.TierName
	ConflictStrategy models.ConflictStrategy
	BackupThrottle   time.Duration
	DeltaWindow      int
	// Intervals holds the minimum gap between saves per priority.
	Intervals    map[models.SavePriority]time.Duration
	FlushTimeout time.Duration
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the remote sync job runs.
	SyncInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App          ClientApp
	Identity     ClientIdentity
	Adapter      ClientAdapter
	Storage      ClientStorage
	Cache        ClientCache
	Orchestrator ClientOrchestrator
	Workers      ClientWorkers
}

// HasTier reports whether name is enabled.
func (cfg *ClientConfig) HasTier(name models.TierName) bool {
	return slices.Contains(cfg.Orchestrator.Tiers, name)
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, applies defaults and validates the
// resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewClientConfig(cfg)
}

// NewClientConfig derives the client view from an already merged config.
func NewClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App: ClientApp{
			HashKey:          cfg.App.HashKey,
			EncryptionSecret: cfg.App.EncryptionSecret,
			ClientID:         cfg.App.ClientID,
			MetricsAddress:   cfg.App.MetricsAddress,
		},
		Identity: ClientIdentity{
			UserID: cfg.Identity.UserID,
			Token:  cfg.Identity.Token,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: orDefault(cfg.Adapter.RequestTimeout, DefaultRequestTimeout),
		},
		Storage: ClientStorage{
			SQLiteDSN:       cfg.Storage.Local.SQLiteDSN,
			DeviceDir:       cfg.Storage.Local.DeviceDir,
			SessionDir:      cfg.Storage.Local.SessionDir,
			BackupRetention: orDefault(cfg.Storage.BackupRetention, DefaultBackupRetention),
		},
		Cache: ClientCache{
			Address:          cfg.Cache.Address,
			Password:         cfg.Cache.Password,
			DB:               cfg.Cache.DB,
			OperationTimeout: orDefault(cfg.Cache.OperationTimeout, DefaultRequestTimeout),
			ProbeInterval:    orDefault(cfg.Cache.ProbeInterval, DefaultProbeInterval),
			BackoffBase:      orDefault(cfg.Cache.BackoffBase, DefaultBackoffBase),
			BackoffMax:       orDefault(cfg.Cache.BackoffMax, DefaultBackoffMax),
			MaxRetries:       orDefault(cfg.Cache.MaxRetries, DefaultMaxRetries),
		},
		Orchestrator: ClientOrchestrator{
			Tiers:            tierOrder(cfg),
			ConflictStrategy: models.ConflictStrategy(orDefault(cfg.Orchestrator.ConflictStrategy, string(DefaultConflictStrategy))),
			BackupThrottle:   orDefault(cfg.Orchestrator.BackupThrottle, DefaultBackupThrottle),
			DeltaWindow:      orDefault(cfg.Orchestrator.DeltaWindow, DefaultDeltaWindow),
			Intervals:        intervals(cfg.Orchestrator),
			FlushTimeout:     orDefault(cfg.Orchestrator.FlushTimeout, DefaultFlushTimeout),
		},
		Workers: ClientWorkers{
			SyncInterval: orDefault(cfg.Workers.SyncInterval, DefaultSyncInterval),
		},
	}

	if clientCfg.App.ClientID == "" {
		clientCfg.App.ClientID = utils.NewUUIDGenerator().Generate()
	}

	// the session collaborator may hand over the token only
	if clientCfg.Identity.UserID == "" && clientCfg.Identity.Token != "" {
		userID, err := utils.ParseUserIDFromJWT(clientCfg.Identity.Token)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidIdentityConfigs, err)
		}
		clientCfg.Identity.UserID = userID
	}

	return clientCfg, clientCfg.validate()
}

// tierOrder returns the configured tiers, or every tier whose location is
// configured when none are listed.
func tierOrder(cfg *StructuredConfig) []models.TierName {
	if len(cfg.Orchestrator.Tiers) > 0 {
		tiers := make([]models.TierName, 0, len(cfg.Orchestrator.Tiers))
		for _, t := range cfg.Orchestrator.Tiers {
			tiers = append(tiers, models.TierName(t))
		}
		return tiers
	}

	tiers := []models.TierName{models.TierMemory, models.TierSession}
	if cfg.Storage.Local.DeviceDir != "" {
		tiers = append(tiers, models.TierDevice)
	}
	if cfg.Storage.Local.SQLiteDSN != "" {
		tiers = append(tiers, models.TierDatabase)
	}
	if cfg.Cache.Address != "" {
		tiers = append(tiers, models.TierCache)
	}
	if cfg.Adapter.HTTPAddress != "" {
		tiers = append(tiers, models.TierRemote)
	}
	return tiers
}

func intervals(o Orchestrator) map[models.SavePriority]time.Duration {
	out := make(map[models.SavePriority]time.Duration, len(models.DefaultIntervals))
	for p, d := range models.DefaultIntervals {
		out[p] = d
	}
	if o.LowInterval > 0 {
		out[models.PriorityLow] = o.LowInterval
	}
	if o.MediumInterval > 0 {
		out[models.PriorityMedium] = o.MediumInterval
	}
	if o.HighInterval > 0 {
		out[models.PriorityHigh] = o.HighInterval
	}
	return out
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
