package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

var identityArgs = []string{"--identity-id", "user_123", "--identity-created-at", "2024-01-15T10:30:00Z"}

// setTestEnv keeps key stretching cheap and isolates the tests from the
// developer's environment.
func setTestEnv(t *testing.T) {
	t.Helper()

	t.Setenv("CONFIG", "")
	t.Setenv("CIPHER_ARGON_TIME", "1")
	t.Setenv("CIPHER_ARGON_MEMORY", "1024")
	t.Setenv("CIPHER_ARGON_THREADS", "1")
	t.Setenv("ADAPTER_ADDRESS", "http://localhost:8080")
	t.Setenv("ADAPTER_TOKEN", "")
	t.Setenv("APP_TOKEN_SIGN_KEY", "")
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDerive(t *testing.T) {
	setTestEnv(t)

	out, _, err := run(t, "", append([]string{"derive"}, identityArgs...)...)
	require.NoError(t, err)
	assert.Equal(t, "user_123|2024-01-15T10:30:00Z|1705314600000|51|15|117|2024|115|10|8|30\n", out)

	out, _, err = run(t, "", append([]string{"derive", "--legacy"}, identityArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Mon Jan 15 2024 10:30:00 GMT+0000 (Coordinated Universal Time)")
}

func TestDerive_RequiresIdentity(t *testing.T) {
	setTestEnv(t)

	_, _, err := run(t, "", "derive", "--identity-id", "user_123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "identity-created-at")

	_, _, err = run(t, "", "derive", "--identity-id", "user_123", "--identity-created-at", "yesterday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --identity-created-at")
}

func TestSealOpenRoundTrip(t *testing.T) {
	setTestEnv(t)

	sealed, _, err := run(t, "", append([]string{"seal"}, append(identityArgs, "example.com")...)...)
	require.NoError(t, err)
	envelope := strings.TrimSpace(sealed)
	assert.NotContains(t, envelope, "example.com")

	// the envelope is read from stdin
	opened, _, err := run(t, envelope+"\n", append([]string{"open"}, identityArgs...)...)
	require.NoError(t, err)
	assert.Equal(t, "example.com\n", opened)

	_, _, err = run(t, envelope, "open", "--identity-id", "user_124", "--identity-created-at", "2024-01-15T10:30:00Z", "-")
	assert.Error(t, err)
}

func TestSeal_EmptyStdin(t *testing.T) {
	setTestEnv(t)

	_, _, err := run(t, "", append([]string{"seal"}, identityArgs...)...)
	assert.ErrorIs(t, err, errNoInput)
}

func TestToken(t *testing.T) {
	setTestEnv(t)

	_, _, err := run(t, "", append([]string{"token"}, identityArgs...)...)
	assert.ErrorIs(t, err, errNoSignKey)

	t.Setenv("APP_TOKEN_SIGN_KEY", "secret")
	t.Setenv("APP_TOKEN_ISSUER", "idp")

	out, _, err := run(t, "", append([]string{"token", "--ttl", "10m"}, identityArgs...)...)
	require.NoError(t, err)

	claims, err := utils.ValidateAndParseJWTToken(strings.TrimSpace(out), "secret", "idp")
	require.NoError(t, err)
	identity, err := claims.Identity()
	require.NoError(t, err)
	assert.Equal(t, "user_123", identity.ID)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), identity.CreatedAt)
}

func TestItemsList(t *testing.T) {
	setTestEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/items/password", r.URL.Path)
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.ItemListResponse{
			Items: []models.PlainItem{
				{ID: 1, Kind: models.KindPassword, Fields: map[string]string{"website": "example.com", "password": "hunter2"}},
				{ID: 2, Kind: models.KindPassword, DecryptFailed: true},
			},
			Length: 2,
		})
	}))
	defer srv.Close()

	t.Setenv("ADAPTER_ADDRESS", srv.URL)
	t.Setenv("ADAPTER_TOKEN", "abc")

	out, _, err := run(t, "", "items", "list", "password")
	require.NoError(t, err)
	assert.Contains(t, out, "2 password item(s)")
	assert.Contains(t, out, "example.com")
	assert.Contains(t, out, "hunter2")
	assert.Contains(t, out, "unable to decrypt this item")
}

func TestRemoteCommands_RequireToken(t *testing.T) {
	setTestEnv(t)

	_, _, err := run(t, "", "mint-key")
	assert.ErrorIs(t, err, errNoToken)

	_, _, err = run(t, "", "items", "list", "wallet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown item kind")
}

func TestMintKey_Conflict(t *testing.T) {
	setTestEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "vault key already minted"})
	}))
	defer srv.Close()

	t.Setenv("ADAPTER_ADDRESS", srv.URL)
	t.Setenv("ADAPTER_TOKEN", "abc")

	_, stderr, err := run(t, "", "mint-key")
	require.Error(t, err)
	assert.Contains(t, stderr, "already minted")
}
