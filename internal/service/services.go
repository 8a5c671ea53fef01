package service

import (
	"github.com/MKhiriev/go-save-keeper/internal/config"
	"github.com/MKhiriev/go-save-keeper/internal/delta"
	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/store"
)

// Services groups the services of the progress server.
type Services struct {
	ProgressService ServerProgressService
	AppInfoService  AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.ServerConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	progress := NewServerProgressService(storages.ProgressRepository, delta.NewCodec(), logger)

	return &Services{
		ProgressService: NewProgressValidationService().Wrap(progress),
		AppInfoService:  appInfo,
	}, nil
}
