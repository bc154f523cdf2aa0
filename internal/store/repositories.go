package store

import "github.com/MKhiriev/go-pass-vault/internal/logger"

// Repositories groups the repositories sharing one database handle.
type Repositories struct {
	UserRepository UserRepository
	ItemRepository ItemRepository
}

// NewRepositories constructs all repositories on top of db.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository: NewUserRepository(db, log),
		ItemRepository: NewItemRepository(db, log),
	}
}
