package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-save-keeper/internal/config"
	"github.com/MKhiriev/go-save-keeper/internal/logger"
)

// Storages groups the repositories of the progress server.
type Storages struct {
	ProgressRepository ProgressRepository

	db *DB
}

// NewStorages connects to PostgreSQL, applies the migrations and builds the
// repositories.
func NewStorages(ctx context.Context, cfg config.ServerStorage, log *logger.Logger) (*Storages, error) {
	log.Info().Str("func", "NewStorages").Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DSN, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		ProgressRepository: NewProgressRepository(db, cfg.BackupRetention),
		db:                 db,
	}, nil
}

// Close closes the database pool.
func (s *Storages) Close() error {
	return s.db.Close()
}
