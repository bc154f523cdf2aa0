package models

import "time"

// VaultSnapshotVersion is the version written into new snapshots.
const VaultSnapshotVersion = 1

// VaultSnapshot is the JSON document sealed under the vault-level key.
type VaultSnapshot struct {
	// Version is the snapshot document version.
	Version int `json:"version"`

	// SealedAt is the time the snapshot was produced.
	SealedAt time.Time `json:"sealed_at"`

	// Items holds every item of the vault with plaintext fields.
	Items []PlainItem `json:"items"`
}

// ItemRef names one stored item.
type ItemRef struct {
	Kind ItemKind `json:"kind"`
	ID   int64    `json:"id"`
}

// SnapshotReport is the outcome of sealing a snapshot. Items that could not
// be decrypted are left out of the snapshot and listed in Skipped.
type SnapshotReport struct {
	Sealed  int
	Skipped []ItemRef
}
