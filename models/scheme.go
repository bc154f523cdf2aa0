package models

import "fmt"

// KeyScheme tags every persisted vault item with the key path and envelope
// format its fields were written with. Readers dispatch on this tag and never
// guess the scheme from the ciphertext itself.
type KeyScheme int

const (
	// SchemePlain marks items whose fields are stored without encryption.
	// Only card and pin items can carry it, when their field encryption is
	// disabled.
	SchemePlain KeyScheme = 0

	// SchemeDerivedAEAD is the canonical scheme: each field is an AES-256-GCM
	// envelope keyed by the identity-derived key.
	SchemeDerivedAEAD KeyScheme = 1

	// SchemeLegacyCBC marks items imported from the previous implementation:
	// unauthenticated passphrase AES-CBC keyed by the legacy derivation.
	// No writer produces it: replacing such an item or running the upgrade
	// worker re-seals it under the configured scheme.
	SchemeLegacyCBC KeyScheme = 2
)

// String implements [fmt.Stringer].
func (s KeyScheme) String() string {
	switch s {
	case SchemePlain:
		return "plain"
	case SchemeDerivedAEAD:
		return "derived-aead-v1"
	case SchemeLegacyCBC:
		return "legacy-passphrase-cbc"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Valid reports whether s is one of the known schemes.
func (s KeyScheme) Valid() bool {
	switch s {
	case SchemePlain, SchemeDerivedAEAD, SchemeLegacyCBC:
		return true
	}
	return false
}
