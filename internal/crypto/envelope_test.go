package crypto

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testParams keeps Argon2id cheap so the suite stays fast.
var testParams = Argon2Params{Time: 1, Memory: 1024, Threads: 1}

func newTestCipher(t *testing.T) Cipher {
	t.Helper()
	c, err := NewCipher(testParams)
	require.NoError(t, err)
	return c
}

func TestNewCipher_ValidatesParams(t *testing.T) {
	tests := []struct {
		name    string
		params  Argon2Params
		wantErr bool
	}{
		{name: "defaults", params: DefaultArgon2Params()},
		{name: "light", params: testParams},
		{name: "zero time", params: Argon2Params{Time: 0, Memory: 1024, Threads: 1}, wantErr: true},
		{name: "time above ceiling", params: Argon2Params{Time: maxArgonTime + 1, Memory: 1024, Threads: 1}, wantErr: true},
		{name: "zero threads", params: Argon2Params{Time: 1, Memory: 1024, Threads: 0}, wantErr: true},
		{name: "memory below 8 per thread", params: Argon2Params{Time: 1, Memory: 31, Threads: 4}, wantErr: true},
		{name: "memory above ceiling", params: Argon2Params{Time: 1, Memory: maxArgonMemory + 1, Threads: 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCipher(tt.params)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParams)
				assert.Nil(t, c)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	c := newTestCipher(t)

	for _, plaintext := range []string{"example.com", "", "пароль 🔑", strings.Repeat("x", 4096)} {
		env, err := c.Seal(plaintext, "some key")
		require.NoError(t, err)

		got, err := c.Open(env, "some key")
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}
}

func TestSeal_NonDeterministic(t *testing.T) {
	c := newTestCipher(t)

	e1, err := c.Seal("example.com", "k")
	require.NoError(t, err)
	e2, err := c.Seal("example.com", "k")
	require.NoError(t, err)

	assert.NotEqual(t, e1, e2)
}

func TestSeal_Printable(t *testing.T) {
	c := newTestCipher(t)

	env, err := c.Seal("example.com", "k")
	require.NoError(t, err)

	_, err = base64.StdEncoding.DecodeString(env)
	assert.NoError(t, err)
}

func TestOpen_WrongKey(t *testing.T) {
	c := newTestCipher(t)

	env, err := c.Seal("example.com", "right")
	require.NoError(t, err)

	got, err := c.Open(env, "wrong")
	assert.ErrorIs(t, err, ErrDecryption)
	assert.Empty(t, got)
}

func TestOpen_TamperedByteFails(t *testing.T) {
	c := newTestCipher(t)

	env, err := c.Seal("example.com", "k")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(env)
	require.NoError(t, err)

	// Flip one bit in every region: header, salt, nonce, body and tag.
	for _, i := range []int{0, 2, 4, headerSize, headerSize + saltSize, len(raw) - tagSize - 1, len(raw) - 1} {
		tampered := append([]byte(nil), raw...)
		tampered[i] ^= 0x01

		got, err := c.Open(base64.StdEncoding.EncodeToString(tampered), "k")
		assert.ErrorIs(t, err, ErrDecryption, "byte %d", i)
		assert.Empty(t, got, "byte %d", i)
	}
}

func TestOpen_MalformedInput(t *testing.T) {
	c := newTestCipher(t)

	env, err := c.Seal("example.com", "k")
	require.NoError(t, err)

	tests := []struct {
		name       string
		ciphertext string
	}{
		{name: "empty", ciphertext: ""},
		{name: "not base64", ciphertext: "%%%not-base64%%%"},
		{name: "truncated", ciphertext: env[:len(env)/2]},
		{name: "too short", ciphertext: base64.StdEncoding.EncodeToString(make([]byte, minEnvelopeSize-1))},
		{name: "plain text", ciphertext: "example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Open(tt.ciphertext, "k")
			assert.ErrorIs(t, err, ErrDecryption)
		})
	}
}

func TestOpen_RejectsUnboundedParams(t *testing.T) {
	c := newTestCipher(t)

	h := header{version: envelopeVersion, mode: modePassphrase, time: 1, threads: 1, memory: maxArgonMemory + 1}
	blob := append(h.marshal(), make([]byte, saltSize+nonceSize+tagSize)...)

	_, err := c.Open(base64.StdEncoding.EncodeToString(blob), "k")
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestSealOpen_EmptyKey(t *testing.T) {
	c := newTestCipher(t)

	_, err := c.Seal("x", "")
	assert.ErrorIs(t, err, ErrEmptyKey)

	_, err = c.Open("anything", "")
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestOpen_EmptyPlaintextIsNotFailure(t *testing.T) {
	c := newTestCipher(t)

	env, err := c.Seal("", "k")
	require.NoError(t, err)

	got, err := c.Open(env, "k")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = c.Open(env, "other")
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestOpen_UsesParamsFromHeader(t *testing.T) {
	sealer, err := NewCipher(Argon2Params{Time: 2, Memory: 2048, Threads: 2})
	require.NoError(t, err)

	env, err := sealer.Seal("example.com", "k")
	require.NoError(t, err)

	got, err := newTestCipher(t).Open(env, "k")
	require.NoError(t, err)
	assert.Equal(t, "example.com", got)
}

func TestSealForOpenFor_PasswordItemScenario(t *testing.T) {
	c := newTestCipher(t)
	identity := scenarioIdentity()

	env, err := c.SealFor(identity, "example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "example.com", env)

	got, err := c.OpenFor(identity, env)
	require.NoError(t, err)
	assert.Equal(t, "example.com", got)

	key, err := c.DeriveKey(identity)
	require.NoError(t, err)
	got, err = c.Open(env, key)
	require.NoError(t, err)
	assert.Equal(t, "example.com", got)
}

func TestSealFor_IdentityErrors(t *testing.T) {
	c := newTestCipher(t)

	_, err := c.SealFor(nil, "x")
	assert.ErrorIs(t, err, ErrIdentityUnavailable)

	_, err = c.OpenFor(nil, "x")
	assert.ErrorIs(t, err, ErrIdentityUnavailable)
}

func TestOpen_RefusesVaultEnvelope(t *testing.T) {
	c := newTestCipher(t)

	vk, err := c.MintVaultKey()
	require.NoError(t, err)
	blob, err := c.SealVault(`{"version":1}`, vk)
	require.NoError(t, err)

	_, err = c.Open(blob, vk)
	assert.ErrorIs(t, err, ErrDecryption)
}
