// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ItemKind identifies one of the vault item families.
type ItemKind string

const (
	// KindPassword is a website login: username, website and password.
	KindPassword ItemKind = "password"

	// KindNote is a secure note: title and content.
	KindNote ItemKind = "note"

	// KindCard is a payment card.
	KindCard ItemKind = "card"

	// KindPin is a labelled PIN code.
	KindPin ItemKind = "pin"
)

// KindSpec describes how items of one kind are persisted.
type KindSpec struct {
	// Kind is the item kind described by the spec.
	Kind ItemKind

	// Table is the database table holding items of this kind.
	Table string

	// Fields lists the field names in column order. Each field is stored in a
	// column of the same name.
	Fields []string

	// Required lists the fields that must be non-empty on create/replace.
	Required []string

	// AlwaysEncrypted is true for kinds whose fields are sealed
	// unconditionally. Other kinds are sealed only when field encryption for
	// them is enabled in the configuration.
	AlwaysEncrypted bool
}

var kindSpecs = map[ItemKind]KindSpec{
	KindPassword: {
		Kind:            KindPassword,
		Table:           "passwords",
		Fields:          []string{"username", "website", "password"},
		Required:        []string{"website", "password"},
		AlwaysEncrypted: true,
	},
	KindNote: {
		Kind:            KindNote,
		Table:           "notes",
		Fields:          []string{"title", "content"},
		Required:        []string{"title"},
		AlwaysEncrypted: true,
	},
	KindCard: {
		Kind:     KindCard,
		Table:    "cards",
		Fields:   []string{"name", "holder", "number", "expiry", "cvv"},
		Required: []string{"name", "number"},
	},
	KindPin: {
		Kind:     KindPin,
		Table:    "pins",
		Fields:   []string{"name", "pin"},
		Required: []string{"name", "pin"},
	},
}

// ItemKinds returns all kinds in a stable order.
func ItemKinds() []ItemKind {
	return []ItemKind{KindPassword, KindNote, KindCard, KindPin}
}

// ParseItemKind converts a path/JSON value into an [ItemKind].
// It returns false for unknown kinds.
func ParseItemKind(s string) (ItemKind, bool) {
	kind := ItemKind(s)
	_, ok := kindSpecs[kind]
	return kind, ok
}

// Spec returns the persistence description of k. The zero [KindSpec] is
// returned for unknown kinds.
func (k ItemKind) Spec() KindSpec {
	return kindSpecs[k]
}

// SealedItem is a vault item as it is persisted: every field value is either
// an envelope string or, for [SchemePlain], the raw value.
type SealedItem struct {
	// ID is the database identifier of the item.
	ID int64

	// UserID is the owner of the item.
	UserID int64

	// Kind selects the table and field set.
	Kind ItemKind

	// Scheme records how Fields were written.
	Scheme KeyScheme

	// Fields maps field names to stored values.
	Fields map[string]CipheredData

	// CreatedAt is the time the item was created.
	CreatedAt time.Time

	// UpdatedAt is the time of the last wholesale replacement.
	UpdatedAt *time.Time
}

// PlainItem is a vault item with plaintext fields, as exchanged with the UI
// collaborator.
type PlainItem struct {
	// ID is the database identifier; zero for items not yet persisted.
	ID int64 `json:"id"`

	// Kind is the item kind.
	Kind ItemKind `json:"kind"`

	// Fields maps field names to plaintext values.
	Fields map[string]string `json:"fields"`

	// DecryptFailed is set when the item could not be opened. Fields is
	// empty in that case.
	DecryptFailed bool `json:"decrypt_failed,omitempty"`

	// CreatedAt is the time the item was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the time of the last wholesale replacement.
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
