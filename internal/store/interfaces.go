package store

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ErrorClassificator decides whether a database error is transient.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository persists local user records and their vault-level key
// material.
type UserRepository interface {
	// FindOrCreate returns the user with identity.ID, creating it on first
	// contact. The identity timestamp of an existing user is never updated.
	FindOrCreate(ctx context.Context, identity models.Identity) (models.User, error)

	// FindByID returns the user with the given internal id.
	FindByID(ctx context.Context, userID int64) (models.User, error)

	// SetVaultKey stores a minted vault key. It fails with
	// [ErrVaultKeyAlreadyMinted] if the user already has one.
	SetVaultKey(ctx context.Context, userID int64, vaultKey string) error

	// SaveVaultBlob stores blob only if vaultKey is still the current key of
	// the user, otherwise it fails with [ErrVaultKeyMismatch].
	SaveVaultBlob(ctx context.Context, userID int64, vaultKey, blob string) error

	// RotateVault swaps oldKey for newKey together with the blob re-sealed
	// under newKey. It fails with [ErrVaultKeyMismatch] if oldKey is no
	// longer current.
	RotateVault(ctx context.Context, userID int64, oldKey, newKey, blob string) error
}

// ItemRepository persists sealed vault items of every kind.
type ItemRepository interface {
	// Create inserts item and returns it with ID and CreatedAt set.
	Create(ctx context.Context, item models.SealedItem) (models.SealedItem, error)

	// CreateBatch inserts all items in one transaction.
	CreateBatch(ctx context.Context, items []models.SealedItem) ([]models.SealedItem, error)

	// Get returns one item owned by userID.
	Get(ctx context.Context, userID int64, kind models.ItemKind, id int64) (models.SealedItem, error)

	// List returns all items of kind owned by userID ordered by id.
	List(ctx context.Context, userID int64, kind models.ItemKind) ([]models.SealedItem, error)

	// ListAll returns all items of every kind owned by userID.
	ListAll(ctx context.Context, userID int64) ([]models.SealedItem, error)

	// ListByScheme returns up to limit items of any owner tagged scheme,
	// ordered by kind then id, starting after the cursor position.
	ListByScheme(ctx context.Context, scheme models.KeyScheme, after models.UpgradeCursor, limit int) ([]models.SealedItem, error)

	// Replace overwrites scheme and all fields of an item owned by
	// item.UserID.
	Replace(ctx context.Context, item models.SealedItem) error

	// Upgrade is [ItemRepository.Replace] conditional on the stored scheme
	// still being from. It fails with [ErrItemNotFound] otherwise.
	Upgrade(ctx context.Context, item models.SealedItem, from models.KeyScheme) error

	// Delete removes an item owned by userID.
	Delete(ctx context.Context, userID int64, kind models.ItemKind, id int64) error
}
