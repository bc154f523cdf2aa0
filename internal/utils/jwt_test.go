package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentity = models.NewIdentity("user_123", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))

func TestGenerateIdentityToken_RoundTrip(t *testing.T) {
	token, err := GenerateIdentityToken("idp", testIdentity, time.Hour, "secret-key")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAndParseJWTToken(token, "secret-key", "idp")
	require.NoError(t, err)
	assert.Equal(t, "user_123", claims.Subject)
	assert.Equal(t, testIdentity.CreatedAt.Unix(), claims.CreatedAt)

	identity, err := claims.Identity()
	require.NoError(t, err)
	assert.Equal(t, testIdentity, identity)
}

func TestGenerateIdentityToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		identity models.Identity
		duration time.Duration
		key      string
	}{
		{"empty identity", models.Identity{}, time.Hour, "key"},
		{"zero duration", testIdentity, 0, "key"},
		{"empty key", testIdentity, time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateIdentityToken("iss", tt.identity, tt.duration, tt.key)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_WrongKey(t *testing.T) {
	token, err := GenerateIdentityToken("idp", testIdentity, time.Hour, "right")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token, "wrong", "idp")
	assert.True(t, errors.Is(err, jwt.ErrTokenSignatureInvalid), "got %v", err)
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	token, err := GenerateIdentityToken("idp", testIdentity, time.Hour, "key")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token, "key", "other")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)

	_, err = ValidateAndParseJWTToken(token, "key", "")
	assert.NoError(t, err, "empty issuer disables the check")
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	token, err := GenerateIdentityToken("idp", testIdentity, -time.Minute, "key")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token, "key", "idp")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateAndParseJWTToken_RejectsNoneAlg(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &models.IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user_123"},
		CreatedAt:        1,
	})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(raw, "key", "")
	assert.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "  bearer tok  ", want: "tok"},
		{header: "Bearer", wantErr: true},
		{header: "Basic dXNlcjpwYXNz", wantErr: true},
		{header: "", wantErr: true},
		{header: "Bearer a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
