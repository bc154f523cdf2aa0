package models

import "time"

// User is the local account record of a principal managed by the external
// authentication provider.
//
// The record is created on first contact and its identity columns are never
// updated afterwards: ExternalID and IdentityCreatedAt are the inputs of the
// per-field key derivation.
type User struct {
	// UserID is the internal identifier used as a foreign key by vault items.
	UserID int64 `json:"-"`

	// ExternalID is the identifier issued by the authentication provider.
	ExternalID string `json:"external_id"`

	// IdentityCreatedAt is the provider-side account creation timestamp,
	// stored in UTC with second precision.
	IdentityCreatedAt time.Time `json:"identity_created_at"`

	// VaultKey is the vault-level random key. Empty until minted.
	// It is never exposed via JSON.
	VaultKey string `json:"-"`

	// VaultBlob is the sealed JSON snapshot of the whole vault. Empty until
	// the first snapshot is sealed.
	VaultBlob string `json:"-"`

	// VaultUpdatedAt is the time the vault blob was last written.
	VaultUpdatedAt *time.Time `json:"vault_updated_at,omitempty"`

	// CreatedAt is the time the local record was created.
	CreatedAt time.Time `json:"created_at"`
}

// Identity returns the frozen identity attributes of the user.
func (u User) Identity() Identity {
	return NewIdentity(u.ExternalID, u.IdentityCreatedAt)
}

// HasVaultKey reports whether a vault-level key was already minted.
func (u User) HasVaultKey() bool {
	return u.VaultKey != ""
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
