package service

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// IdentityService turns bearer tokens into identities and identities into
// local users.
type IdentityService interface {
	// ParseToken verifies tokenString and returns the identity it carries.
	ParseToken(ctx context.Context, tokenString string) (models.Identity, error)

	// Resolve returns the local user of identity, creating it on first
	// contact. The returned user carries the frozen identity attributes.
	Resolve(ctx context.Context, identity models.Identity) (models.User, error)
}

// ItemService provides plaintext CRUD over sealed vault items. The owner is
// always passed explicitly; its stored identity keys every seal and open.
type ItemService interface {
	Create(ctx context.Context, user models.User, item models.PlainItem) (models.PlainItem, error)
	Get(ctx context.Context, user models.User, kind models.ItemKind, id int64) (models.PlainItem, error)

	// List never fails because of a single undecryptable item: such items
	// are returned with DecryptFailed set and no fields.
	List(ctx context.Context, user models.User, kind models.ItemKind) ([]models.PlainItem, error)

	Replace(ctx context.Context, user models.User, item models.PlainItem) (models.PlainItem, error)
	Delete(ctx context.Context, user models.User, kind models.ItemKind, id int64) error
}

// VaultService manages the vault-level key and the sealed snapshot of a
// user's vault.
type VaultService interface {
	// MintKey generates and stores the vault key. It fails with
	// ErrVaultKeyAlreadyMinted on the second call.
	MintKey(ctx context.Context, user models.User) error

	// SealSnapshot seals every item of the user into the vault blob. Items
	// that fail to decrypt do not stop the snapshot; they are reported in
	// the returned Skipped list.
	SealSnapshot(ctx context.Context, user models.User) (models.SnapshotReport, error)

	// OpenSnapshot opens the vault blob.
	OpenSnapshot(ctx context.Context, user models.User) (models.VaultSnapshot, error)

	// ImportSnapshot re-creates the snapshot items under the per-field
	// scheme and returns the number of items created.
	ImportSnapshot(ctx context.Context, user models.User) (int, error)

	// RotateKey replaces the vault key and re-seals the blob with it in one
	// conditional update.
	RotateKey(ctx context.Context, user models.User) error
}

// UpgradeService converts legacy items to the canonical scheme.
type UpgradeService interface {
	// UpgradeLegacy converts up to limit legacy items found after the
	// cursor. The report carries the cursor for the next pass.
	UpgradeLegacy(ctx context.Context, after models.UpgradeCursor, limit int) (models.UpgradeReport, error)
}

// AppInfoService exposes build information of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// ItemServiceWrapper defines middleware composition for ItemService.
// Implementations wrap an existing ItemService to add behavior such as
// validation.
type ItemServiceWrapper interface {
	Wrap(ItemService) ItemService
}
