// Package migrations embeds the goose schema migrations of both databases:
// the SQLite file behind the client database tier and the PostgreSQL store
// of the progress server.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Dialect selects the migration set and the goose dialect.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "pgx"
)

var errNilDB = errors.New("db is nil")

//go:embed sqlite/*.sql postgres/*.sql
var embedMigrations embed.FS

func dir(dialect Dialect) string {
	if dialect == DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// Migrate applies every pending migration of dialect to db.
func Migrate(db *sql.DB, dialect Dialect) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", errNilDB)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir(dialect)); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
