package main

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-save-keeper/internal/adapter"
	"github.com/MKhiriev/go-save-keeper/internal/client"
	"github.com/MKhiriev/go-save-keeper/internal/config"
	"github.com/MKhiriev/go-save-keeper/internal/crypto"
	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/service"
	"github.com/MKhiriev/go-save-keeper/internal/store"
	"github.com/MKhiriev/go-save-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := buildInfo()
	fmt.Println(info)

	log := logger.NewClientLogger("save-keeper-client")
	log.Info().Str("version", info.BuildVersion()).Str("commit", info.BuildCommit()).Msg("client starting")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	identity := client.IdentityFromConfig(cfg.Identity, time.Now())

	var remote adapter.RemoteStore
	if cfg.Adapter.HTTPAddress != "" {
		remote, err = adapter.NewHTTPRemoteStore(cfg.Adapter, cfg.App, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create remote adapter")
		}
		remote.SetToken(identity.Token)
	}

	var encryptor crypto.Encryptor
	if cfg.App.EncryptionSecret != "" {
		if encryptor, err = crypto.NewEncryptor(cfg.App.EncryptionSecret); err != nil {
			log.Fatal().Err(err).Msg("create encryptor")
		}
	}

	var signer crypto.Signer
	if cfg.App.HashKey != "" {
		if signer, err = crypto.NewSigner(cfg.App.HashKey); err != nil {
			log.Fatal().Err(err).Msg("create signer")
		}
	}

	deps := store.ClientDeps{Encryptor: encryptor}
	var remoteClient store.RemoteClient
	if remote != nil {
		deps.Remote, remoteClient = remote, remote
	}

	storages, err := store.NewClientStorages(context.Background(), cfg, deps, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create storage tiers")
	}

	services := service.NewClientServices(storages, remoteClient, signer, cfg, log)

	app, err := client.NewApp(services, storages, identity, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func buildInfo() models.AppBuildInfo {
	return models.NewAppBuildInfo(orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
