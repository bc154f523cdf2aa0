package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/models"
)

func TestMintVaultKey(t *testing.T) {
	minted := false
	vault := &fakeVaultService{
		mintKeyFunc: func(context.Context, models.User) error {
			if minted {
				return service.ErrVaultKeyAlreadyMinted
			}
			minted = true
			return nil
		},
	}
	h := newServiceHandler(nil, vault)

	rec := do(t, h, http.MethodPost, "/api/vault/key", "")
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/vault/key", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, service.ErrVaultKeyAlreadyMinted.Error(), decodeError(t, rec))
}

func TestRotateVaultKey(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "rotated", wantStatus: http.StatusNoContent},
		{name: "not minted", err: service.ErrVaultKeyNotMinted, wantStatus: http.StatusConflict},
		{name: "concurrent change", err: service.ErrVaultChanged, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vault := &fakeVaultService{
				rotateKeyFunc: func(context.Context, models.User) error { return tt.err },
			}
			h := newServiceHandler(nil, vault)

			rec := do(t, h, http.MethodPost, "/api/vault/key/rotate", "")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestSnapshotRoutes(t *testing.T) {
	sealedAt := time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)
	vault := &fakeVaultService{
		sealSnapshotFunc: func(context.Context, models.User) (models.SnapshotReport, error) {
			return models.SnapshotReport{Sealed: 3, Skipped: []models.ItemRef{{Kind: models.KindPassword, ID: 4}}}, nil
		},
		openSnapshotFunc: func(context.Context, models.User) (models.VaultSnapshot, error) {
			return models.VaultSnapshot{
				Version:  models.VaultSnapshotVersion,
				SealedAt: sealedAt,
				Items:    []models.PlainItem{{ID: 1, Kind: models.KindNote, Fields: map[string]string{"title": "t"}}},
			}, nil
		},
		importSnapshotFunc: func(context.Context, models.User) (int, error) { return 1, nil },
	}
	h := newServiceHandler(nil, vault)

	rec := do(t, h, http.MethodPost, "/api/vault/snapshot", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":3,"skipped":[{"kind":"password","id":4}]}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/vault/snapshot", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var snapshot models.VaultSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snapshot))
	assert.Equal(t, sealedAt, snapshot.SealedAt)
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, "t", snapshot.Items[0].Fields["title"])

	rec = do(t, h, http.MethodPost, "/api/vault/snapshot/import", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"imported":1}`, rec.Body.String())
}

func TestSnapshotRoutes_Errors(t *testing.T) {
	vault := &fakeVaultService{
		sealSnapshotFunc: func(context.Context, models.User) (models.SnapshotReport, error) {
			return models.SnapshotReport{}, service.ErrVaultKeyNotMinted
		},
		openSnapshotFunc: func(context.Context, models.User) (models.VaultSnapshot, error) {
			return models.VaultSnapshot{}, service.ErrSnapshotCorrupted
		},
		importSnapshotFunc: func(context.Context, models.User) (int, error) { return 0, service.ErrNoSnapshot },
	}
	h := newServiceHandler(nil, vault)

	rec := do(t, h, http.MethodPost, "/api/vault/snapshot", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/vault/snapshot", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "unable to decrypt the vault snapshot", decodeError(t, rec))

	rec = do(t, h, http.MethodPost, "/api/vault/snapshot/import", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, service.ErrNoSnapshot.Error(), decodeError(t, rec))
}
