package http

import (
	"github.com/MKhiriev/go-save-keeper/internal/config"
	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/service"
	"github.com/MKhiriev/go-save-keeper/internal/utils"
)

// Handler serves the progress API of the authoritative remote store.
type Handler struct {
	services *service.Services

	// tokenSignKey and tokenIssuer verify bearer tokens.
	tokenSignKey string
	tokenIssuer  string

	logger *logger.Logger
}

// NewHandler creates a Handler. It also initialises the body hash pool with
// cfg.HashKey, so the hashing middleware must not be used before.
func NewHandler(services *service.Services, cfg config.ServerApp, logger *logger.Logger) *Handler {
	utils.InitHasherPool(cfg.HashKey)

	logger.Info().Msg("http handler created")
	return &Handler{
		services:     services,
		tokenSignKey: cfg.TokenSignKey,
		tokenIssuer:  cfg.TokenIssuer,
		logger:       logger,
	}
}
