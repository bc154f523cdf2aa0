package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// newDBFromSQL wraps a *sql.DB with the dialect of driver.
func newDBFromSQL(db *sql.DB, driver string) *DB {
	return newDB(db, dialects[driver], logger.Nop())
}

func newTestUserRepo(t *testing.T, driver string) (*userRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	repo := NewUserRepository(newDBFromSQL(db, driver), logger.Nop()).(*userRepository)
	repo.now = func() time.Time { return fixedNow }
	return repo, mock
}

func newTestItemRepo(t *testing.T, driver string) (*itemRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	repo := NewItemRepository(newDBFromSQL(db, driver), logger.Nop()).(*itemRepository)
	repo.now = func() time.Time { return fixedNow }
	return repo, mock
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}
