package crypto

import "github.com/MKhiriev/go-pass-vault/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/cipher_mock.go -package=mock

// Cipher is the per-user symmetric encryption scheme protecting vault item
// fields at rest. It knows nothing about the network, the database or the
// authentication provider: identities, plaintexts and ciphertexts come in as
// arguments and results go out as return values.
//
// Two key paths exist:
//
//	key  = DeriveKey(identity)        per-field path, never stored
//	env  = Seal(field, key)           one envelope per field
//
//	vk   = MintVaultKey()             vault path, minted once, stored per user
//	blob = SealVault(vaultJSON, vk)   one envelope for the whole vault
//
// Open refuses vault envelopes and OpenVault refuses per-field envelopes.
// Every decryption failure is an error wrapping [ErrDecryption], distinct from
// a successfully opened empty string.
//
// Implementations are safe for concurrent use.
type Cipher interface {
	// DeriveKey computes the per-user key string from identity attributes.
	// It is pure: the same identity always yields the same string.
	DeriveKey(identity *models.Identity) (string, error)

	// DeriveLegacyKey computes the key string the previous implementation
	// used. It is only needed to read [models.SchemeLegacyCBC] items.
	DeriveLegacyKey(identity *models.Identity) (string, error)

	// Seal encrypts plaintext under a passphrase-like key string and returns
	// a self-contained printable envelope.
	Seal(plaintext, key string) (string, error)

	// Open reverses Seal.
	Open(ciphertext, key string) (string, error)

	// SealFor derives the key of identity and seals plaintext with it.
	SealFor(identity *models.Identity, plaintext string) (string, error)

	// OpenFor derives the key of identity and opens ciphertext with it.
	OpenFor(identity *models.Identity, ciphertext string) (string, error)

	// MintVaultKey generates a random 128-bit vault-level key (hex).
	// It must be called once per account.
	MintVaultKey() (string, error)

	// SealVault encrypts a serialized vault under a vault-level key.
	SealVault(vaultJSON, vaultKey string) (string, error)

	// OpenVault reverses SealVault.
	OpenVault(ciphertext, vaultKey string) (string, error)

	// OpenLegacy decrypts a ciphertext written by the previous
	// implementation (passphrase AES-CBC with "Salted__" framing).
	OpenLegacy(ciphertext, passphrase string) (string, error)
}
