// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

const testToken = "test-token"

func newTestAdapter(t *testing.T, serverURL string) ServerAdapter {
	t.Helper()

	a, err := NewHTTPServerAdapter(config.Adapter{
		HTTPAddress:    serverURL,
		Token:          " " + testToken + " ",
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	return a
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func requireAuthorized(t *testing.T, r *http.Request) {
	t.Helper()
	assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
}

// ── Version ──────────────────────────────────────────────────────────────────

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte("Build version: 1.2.3"))
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Build version: 1.2.3", got)
}

// ── Items ────────────────────────────────────────────────────────────────────

func TestListItems_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/items/password", r.URL.Path)
		requireAuthorized(t, r)

		writeJSON(t, w, http.StatusOK, models.ItemListResponse{
			Items: []models.PlainItem{
				{ID: 1, Kind: models.KindPassword, Fields: map[string]string{"website": "example.com"}},
				{ID: 2, Kind: models.KindPassword, DecryptFailed: true},
			},
			Length: 2,
		})
	}))
	defer srv.Close()

	items, err := newTestAdapter(t, srv.URL).ListItems(context.Background(), models.KindPassword)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "example.com", items[0].Fields["website"])
	assert.True(t, items[1].DecryptFailed)
}

func TestListItems_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, models.ErrorResponse{Error: "token is expired or invalid"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).ListItems(context.Background(), models.KindNote)

	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "token is expired or invalid")
}

func TestCreateItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/items/note", r.URL.Path)
		requireAuthorized(t, r)

		var req models.ItemRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "groceries", req.Fields["title"])

		writeJSON(t, w, http.StatusCreated, models.PlainItem{ID: 7, Kind: models.KindNote, Fields: req.Fields})
	}))
	defer srv.Close()

	item, err := newTestAdapter(t, srv.URL).CreateItem(context.Background(), models.KindNote, map[string]string{"title": "groceries"})

	require.NoError(t, err)
	assert.Equal(t, int64(7), item.ID)
}

func TestCreateItem_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid data provided"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).CreateItem(context.Background(), models.KindNote, map[string]string{})

	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestGetItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/items/pin/3":
			writeJSON(t, w, http.StatusOK, models.PlainItem{ID: 3, Kind: models.KindPin, Fields: map[string]string{"pin": "0000"}})
		case "/api/items/pin/4":
			writeJSON(t, w, http.StatusUnprocessableEntity, models.ErrorResponse{Error: "unable to decrypt this item"})
		default:
			writeJSON(t, w, http.StatusNotFound, models.ErrorResponse{Error: "item not found"})
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	item, err := a.GetItem(context.Background(), models.KindPin, 3)
	require.NoError(t, err)
	assert.Equal(t, "0000", item.Fields["pin"])

	_, err = a.GetItem(context.Background(), models.KindPin, 4)
	assert.ErrorIs(t, err, ErrUnprocessable)

	_, err = a.GetItem(context.Background(), models.KindPin, 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplaceItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/items/card/12", r.URL.Path)

		var req models.ItemRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(t, w, http.StatusOK, models.PlainItem{ID: 12, Kind: models.KindCard, Fields: req.Fields})
	}))
	defer srv.Close()

	item, err := newTestAdapter(t, srv.URL).ReplaceItem(context.Background(), models.KindCard, 12, map[string]string{"name": "visa"})

	require.NoError(t, err)
	assert.Equal(t, "visa", item.Fields["name"])
}

func TestDeleteItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/items/note/1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, newTestAdapter(t, srv.URL).DeleteItem(context.Background(), models.KindNote, 1))
}

// ── Vault ────────────────────────────────────────────────────────────────────

func TestMintVaultKey_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/vault/key", r.URL.Path)
		writeJSON(t, w, http.StatusConflict, models.ErrorResponse{Error: "vault key already minted"})
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).MintVaultKey(context.Background())

	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "vault key already minted")
}

func TestRotateVaultKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/vault/key/rotate", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, newTestAdapter(t, srv.URL).RotateVaultKey(context.Background()))
}

func TestSnapshot(t *testing.T) {
	sealedAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requireAuthorized(t, r)
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/vault/snapshot":
			writeJSON(t, w, http.StatusOK, models.SnapshotResponse{Items: 4, Skipped: []models.ItemRef{{Kind: models.KindCard, ID: 9}}})
		case r.Method == http.MethodGet && r.URL.Path == "/api/vault/snapshot":
			writeJSON(t, w, http.StatusOK, models.VaultSnapshot{Version: 1, SealedAt: sealedAt})
		case r.Method == http.MethodPost && r.URL.Path == "/api/vault/snapshot/import":
			writeJSON(t, w, http.StatusOK, models.ImportResponse{Imported: 4})
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	ctx := context.Background()

	sealed, err := a.SealSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, sealed.Items)
	assert.Equal(t, []models.ItemRef{{Kind: models.KindCard, ID: 9}}, sealed.Skipped)

	snapshot, err := a.OpenSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, sealedAt, snapshot.SealedAt)

	imported, err := a.ImportSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, imported)
}

func TestUnmappedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).SealSnapshot(context.Background())

	require.Error(t, err)
	assert.Equal(t, "http 502: Bad Gateway", err.Error())
}

// ── configuration ────────────────────────────────────────────────────────────

func TestNewHTTPServerAdapter(t *testing.T) {
	a, err := NewHTTPServerAdapter(config.Adapter{HTTPAddress: "vault:8080", Token: " abc "}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "abc", a.Token())

	a.SetToken("def")
	assert.Equal(t, "def", a.Token())

	_, err = NewHTTPServerAdapter(config.Adapter{}, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080", "http://localhost:8080", false},
		{"no scheme", "localhost:8080", "http://localhost:8080", false},
		{"trailing slash", "http://localhost:8080/", "http://localhost:8080", false},
		{"empty", "", "", true},
		{"no host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
