package store

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/validators"
	"github.com/MKhiriev/go-save-keeper/models"
)

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// snapshotAt builds a sealed default snapshot at the given version.
func snapshotAt(userID string, version int64, coins float64) models.Snapshot {
	s := models.NewDefaultSnapshot(userID, 1_700_000_000_000+version)
	s.Version = version
	s.Critical.Coins = coins
	validators.Seal(&s)
	return s
}

func nopLogger() *logger.Logger {
	return logger.Nop()
}
