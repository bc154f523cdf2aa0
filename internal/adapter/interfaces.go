// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the vault REST API.
//
// [ServerAdapter] hides the transport from command line tooling. Error
// responses are mapped to the sentinels of errors.go so that callers can use
// [errors.Is] (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// ServerAdapter talks to a running vault server on behalf of one bearer
// token.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to all subsequent requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter.
	Token() string

	// Version returns the build information of the server.
	Version(ctx context.Context) (string, error)

	ListItems(ctx context.Context, kind models.ItemKind) ([]models.PlainItem, error)
	GetItem(ctx context.Context, kind models.ItemKind, id int64) (models.PlainItem, error)
	CreateItem(ctx context.Context, kind models.ItemKind, fields map[string]string) (models.PlainItem, error)
	ReplaceItem(ctx context.Context, kind models.ItemKind, id int64, fields map[string]string) (models.PlainItem, error)
	DeleteItem(ctx context.Context, kind models.ItemKind, id int64) error

	// MintVaultKey creates the vault-level key. It returns [ErrConflict] when
	// the key already exists.
	MintVaultKey(ctx context.Context) error
	RotateVaultKey(ctx context.Context) error

	// SealSnapshot returns the number of items captured and the items the
	// server left out.
	SealSnapshot(ctx context.Context) (models.SnapshotResponse, error)
	OpenSnapshot(ctx context.Context) (models.VaultSnapshot, error)

	// ImportSnapshot returns the number of items created.
	ImportSnapshot(ctx context.Context) (int, error)
}
