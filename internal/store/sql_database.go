// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/migrations"
)

// DB is a database handle together with the SQL dialect of its driver.
type DB struct {
	*sql.DB
	dialect dialect
	logger  *logger.Logger
}

// NewConnect opens and pings a connection pool for cfg.Driver.
//
// Supported drivers are "pgx" (PostgreSQL), "sqlite3" and "mysql". MySQL
// DSNs must enable parseTime so DATETIME columns scan into time.Time, and
// clientFoundRows so conditional updates report matched rows.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	d, ok := dialects[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}

	// establish connection
	conn, err := sql.Open(d.driver, cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnect").Str("driver", d.driver).Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
		conn.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnect").Str("driver", d.driver).Msg("error connecting database (ping)")
		conn.Close()
		return nil, fmt.Errorf("error connecting database: %w", err)
	}
	log.Info().Str("func", "NewConnect").Str("driver", d.driver).Msg("connected to database successfully")

	return newDB(conn, d, log), nil
}

func newDB(conn *sql.DB, d dialect, log *logger.Logger) *DB {
	return &DB{
		DB:      conn,
		dialect: d,
		logger:  log,
	}
}

// Migrate applies the embedded schema migrations of the driver.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect.driver)
}
