// Package migrations embeds the goose schema migrations of every supported
// database dialect.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite3/*.sql mysql/*.sql
var embedMigrations embed.FS

// ErrUnknownDialect is returned for a driver without embedded migrations.
var ErrUnknownDialect = errors.New("unknown migration dialect")

// dialects maps database/sql driver names to the goose dialect and the
// directory holding its migrations.
var dialects = map[string]struct {
	goose string
	dir   string
}{
	"pgx":     {goose: "pgx", dir: "postgres"},
	"sqlite3": {goose: "sqlite3", dir: "sqlite3"},
	"mysql":   {goose: "mysql", dir: "mysql"},
}

// Migrate applies all pending migrations of driver to db.
func Migrate(db *sql.DB, driver string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("migration error: %w: %q", ErrUnknownDialect, driver)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(d.goose); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, d.dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
