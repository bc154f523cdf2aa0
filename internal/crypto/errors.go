package crypto

import "errors"

// Sentinel errors returned by the cipher. Callers match them with [errors.Is];
// the returned errors usually wrap one of these with more context.
var (
	// ErrIdentityUnavailable is returned when no identity, or an identity
	// without id or creation timestamp, is passed to key derivation.
	ErrIdentityUnavailable = errors.New("identity is unavailable")

	// ErrKeyDerivation is returned when the identity is present but can not
	// be derived from, e.g. the id is shorter than two characters.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrDecryption is returned when a ciphertext can not be opened under
	// the supplied key: wrong key, tampered or truncated ciphertext, or an
	// envelope written for a different key path.
	ErrDecryption = errors.New("decryption failed")

	// ErrEmptyKey is returned when an empty key is supplied to seal or open.
	ErrEmptyKey = errors.New("empty key")

	// ErrInvalidVaultKey is returned when a vault-level key is not a
	// 128-bit hex string.
	ErrInvalidVaultKey = errors.New("invalid vault key")

	// ErrInvalidParams is returned by [NewCipher] for Argon2id parameters
	// outside the supported range.
	ErrInvalidParams = errors.New("invalid argon2id parameters")
)
