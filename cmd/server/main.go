package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-save-keeper/internal/config"
	"github.com/MKhiriev/go-save-keeper/internal/handler"
	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/server"
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
	info := models.NewAppBuildInfo(orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
	fmt.Println(info)

	log := logger.NewLogger("save-keeper-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = info.BuildVersion()
	}

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
