// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Identity holds the immutable attributes of an authenticated principal that
// the per-field encryption key is derived from.
//
// Both values are supplied by the authentication provider and must be
// identical at encryption and decryption time. The user record freezes them on
// first contact, see [User.Identity].
type Identity struct {
	// ID is the opaque user identifier issued by the authentication provider.
	ID string `json:"id"`

	// CreatedAt is the account creation timestamp with second precision.
	CreatedAt time.Time `json:"created_at"`
}

// NewIdentity builds an [Identity] normalised to UTC and whole seconds, the
// precision every storage backend can round-trip.
func NewIdentity(id string, createdAt time.Time) Identity {
	return Identity{
		ID:        id,
		CreatedAt: createdAt.UTC().Truncate(time.Second),
	}
}

// IsZero reports whether the identity carries no usable attributes.
func (i Identity) IsZero() bool {
	return i.ID == "" && i.CreatedAt.IsZero()
}
