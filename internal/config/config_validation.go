// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-save-keeper/models"
)

// validate rejects values that no view can use. An empty config is valid:
// each view checks what its own process requires.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.BackupRetention < 0 {
		return fmt.Errorf("%w: negative backup retention", ErrInvalidConfig)
	}
	if cfg.Orchestrator.DeltaWindow < 0 {
		return fmt.Errorf("%w: negative delta window", ErrInvalidConfig)
	}
	if cfg.Cache.MaxRetries < 0 {
		return fmt.Errorf("%w: negative cache retries", ErrInvalidConfig)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Identity.UserID == "" {
		return ErrInvalidIdentityConfigs
	}

	if !cfg.Orchestrator.ConflictStrategy.Valid() {
		return fmt.Errorf("%w: unknown conflict strategy %q", ErrInvalidOrchestratorConfigs, cfg.Orchestrator.ConflictStrategy)
	}
	if len(cfg.Orchestrator.Tiers) == 0 {
		return fmt.Errorf("%w: no tiers enabled", ErrInvalidOrchestratorConfigs)
	}

	seen := make(map[models.TierName]struct{}, len(cfg.Orchestrator.Tiers))
	for _, tier := range cfg.Orchestrator.Tiers {
		if _, dup := seen[tier]; dup {
			return fmt.Errorf("%w: tier %q listed twice", ErrInvalidOrchestratorConfigs, tier)
		}
		seen[tier] = struct{}{}

		switch tier {
		case models.TierMemory, models.TierSession:
		case models.TierDevice:
			if cfg.Storage.DeviceDir == "" {
				return fmt.Errorf("%w: device tier without directory", ErrInvalidStorageConfigs)
			}
			if cfg.App.EncryptionSecret == "" {
				return fmt.Errorf("%w: device tier without encryption secret", ErrInvalidAppConfigs)
			}
		case models.TierDatabase:
			if cfg.Storage.SQLiteDSN == "" || strings.Contains(cfg.Storage.SQLiteDSN, "memory") {
				return fmt.Errorf("%w: database tier needs a file DSN", ErrInvalidStorageConfigs)
			}
		case models.TierCache:
			if cfg.Cache.Address == "" {
				return ErrInvalidCacheConfigs
			}
		case models.TierRemote:
			if cfg.Adapter.HTTPAddress == "" {
				return ErrInvalidAdapterConfigs
			}
			if cfg.App.HashKey == "" {
				return fmt.Errorf("%w: remote tier without hash key", ErrInvalidAppConfigs)
			}
		default:
			return fmt.Errorf("%w: unknown tier %q", ErrInvalidOrchestratorConfigs, tier)
		}
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty http address", ErrInvalidServerConfigs)
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return fmt.Errorf("%w: token sign key and issuer are required", ErrInvalidServerConfigs)
	}

	return nil
}
