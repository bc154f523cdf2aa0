package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testCreatedAt = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func testUser() models.User {
	return models.User{
		UserID:            7,
		ExternalID:        "user_123",
		IdentityCreatedAt: testCreatedAt,
	}
}

// newRealCipher returns a cipher with cheap Argon2id parameters.
func newRealCipher(t *testing.T) crypto.Cipher {
	t.Helper()
	c, err := crypto.NewCipher(crypto.Argon2Params{Time: 1, Memory: 1024, Threads: 1})
	require.NoError(t, err)
	return c
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}
