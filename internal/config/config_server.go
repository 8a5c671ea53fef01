package config

import (
	"fmt"
	"time"
)

// Server defaults.
const (
	DefaultServerRequestTimeout = 10 * time.Second
	DefaultTokenDuration        = 24 * time.Hour
)

// ServerApp holds the secrets the progress server needs.
type ServerApp struct {
	HashKey       string
	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration
	Version       string
}

// ServerStorage holds the PostgreSQL settings of the progress server.
type ServerStorage struct {
	DSN             string
	BackupRetention int
}

// ServerConfig is the progress server view of [StructuredConfig].
type ServerConfig struct {
	App     ServerApp
	Storage ServerStorage
	Server  Server
}

// GetServerConfig builds and validates the server view from the merged
// structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewServerConfig(cfg)
}

// NewServerConfig derives the server view from an already merged config.
func NewServerConfig(cfg *StructuredConfig) (*ServerConfig, error) {
	serverCfg := &ServerConfig{
		App: ServerApp{
			HashKey:       cfg.App.HashKey,
			TokenSignKey:  cfg.App.TokenSignKey,
			TokenIssuer:   cfg.App.TokenIssuer,
			TokenDuration: orDefault(cfg.App.TokenDuration, DefaultTokenDuration),
			Version:       cfg.App.Version,
		},
		Storage: ServerStorage{
			DSN:             cfg.Storage.DB.DSN,
			BackupRetention: orDefault(cfg.Storage.BackupRetention, DefaultBackupRetention),
		},
		Server: Server{
			HTTPAddress:    cfg.Server.HTTPAddress,
			GRPCAddress:    cfg.Server.GRPCAddress,
			RequestTimeout: orDefault(cfg.Server.RequestTimeout, DefaultServerRequestTimeout),
		},
	}

	return serverCfg, serverCfg.validate()
}
