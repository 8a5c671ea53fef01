package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the JSON file layout.
// Durations accept both "30s" strings and integer nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		HashKey          string   `json:"hash_key"`
		EncryptionSecret string   `json:"encryption_secret"`
		TokenSignKey     string   `json:"token_sign_key"`
		TokenIssuer      string   `json:"token_issuer"`
		TokenDuration    Duration `json:"token_duration"`
		Version          string   `json:"version"`
		ClientID         string   `json:"client_id"`
		MetricsAddress   string   `json:"metrics_address"`
	} `json:"app,omitempty"`

	Identity struct {
		UserID string `json:"user_id"`
		Token  string `json:"token"`
	} `json:"identity,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Local struct {
			SQLiteDSN  string `json:"sqlite_dsn"`
			DeviceDir  string `json:"device_dir"`
			SessionDir string `json:"session_dir"`
		} `json:"local,omitempty"`

		BackupRetention int `json:"backup_retention"`
	} `json:"storage,omitempty"`

	Cache struct {
		Address          string   `json:"address"`
		Password         string   `json:"password"`
		DB               int      `json:"db"`
		OperationTimeout Duration `json:"operation_timeout"`
		ProbeInterval    Duration `json:"probe_interval"`
		BackoffBase      Duration `json:"backoff_base"`
		BackoffMax       Duration `json:"backoff_max"`
		MaxRetries       int      `json:"max_retries"`
	} `json:"cache,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Orchestrator struct {
		Tiers            []string `json:"tiers"`
		ConflictStrategy string   `json:"conflict_strategy"`
		BackupThrottle   Duration `json:"backup_throttle"`
		DeltaWindow      int      `json:"delta_window"`
		LowInterval      Duration `json:"low_interval"`
		MediumInterval   Duration `json:"medium_interval"`
		HighInterval     Duration `json:"high_interval"`
		FlushTimeout     Duration `json:"flush_timeout"`
	} `json:"orchestrator,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			HashKey:          jsonCfg.App.HashKey,
			EncryptionSecret: jsonCfg.App.EncryptionSecret,
			TokenSignKey:     jsonCfg.App.TokenSignKey,
			TokenIssuer:      jsonCfg.App.TokenIssuer,
			TokenDuration:    time.Duration(jsonCfg.App.TokenDuration),
			Version:          jsonCfg.App.Version,
			ClientID:         jsonCfg.App.ClientID,
			MetricsAddress:   jsonCfg.App.MetricsAddress,
		},
		Identity: Identity{
			UserID: jsonCfg.Identity.UserID,
			Token:  jsonCfg.Identity.Token,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Local: Local{
				SQLiteDSN:  jsonCfg.Storage.Local.SQLiteDSN,
				DeviceDir:  jsonCfg.Storage.Local.DeviceDir,
				SessionDir: jsonCfg.Storage.Local.SessionDir,
			},
			BackupRetention: jsonCfg.Storage.BackupRetention,
		},
		Cache: Cache{
			Address:          jsonCfg.Cache.Address,
			Password:         jsonCfg.Cache.Password,
			DB:               jsonCfg.Cache.DB,
			OperationTimeout: time.Duration(jsonCfg.Cache.OperationTimeout),
			ProbeInterval:    time.Duration(jsonCfg.Cache.ProbeInterval),
			BackoffBase:      time.Duration(jsonCfg.Cache.BackoffBase),
			BackoffMax:       time.Duration(jsonCfg.Cache.BackoffMax),
			MaxRetries:       jsonCfg.Cache.MaxRetries,
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Orchestrator: Orchestrator{
			Tiers:            jsonCfg.Orchestrator.Tiers,
			ConflictStrategy: jsonCfg.Orchestrator.ConflictStrategy,
			BackupThrottle:   time.Duration(jsonCfg.Orchestrator.BackupThrottle),
			DeltaWindow:      jsonCfg.Orchestrator.DeltaWindow,
			LowInterval:      time.Duration(jsonCfg.Orchestrator.LowInterval),
			MediumInterval:   time.Duration(jsonCfg.Orchestrator.MediumInterval),
			HighInterval:     time.Duration(jsonCfg.Orchestrator.HighInterval),
			FlushTimeout:     time.Duration(jsonCfg.Orchestrator.FlushTimeout),
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
