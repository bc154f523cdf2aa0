// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// vaultKeySize is the length of a vault-level key in bytes (128 bits).
const vaultKeySize = 16

// vaultKeyInfo domain-separates the AES keys expanded from a vault key.
var vaultKeyInfo = []byte("go-pass-vault/vault-blob/v1")

// MintVaultKey implements [Cipher]. It reads 16 bytes from the OS CSPRNG and
// returns them hex encoded.
//
// A new key can not open blobs sealed under the previous one: callers must
// mint exactly once per account, or re-seal the blob in the same transaction
// that stores the new key.
func (c *vaultCipher) MintVaultKey() (string, error) {
	key, err := randomBytes(vaultKeySize)
	if err != nil {
		return "", fmt.Errorf("generate vault key: %w", err)
	}
	return hex.EncodeToString(key), nil
}

// SealVault implements [Cipher]. The vault key already carries full entropy,
// so it is expanded with HKDF-SHA256 and the envelope salt instead of being
// stretched with Argon2id.
func (c *vaultCipher) SealVault(vaultJSON, vaultKey string) (string, error) {
	ikm, err := decodeVaultKey(vaultKey)
	if err != nil {
		return "", err
	}

	salt, err := randomBytes(saltSize)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	aesKey, err := expandVaultKey(ikm, salt)
	if err != nil {
		return "", err
	}

	h := header{version: envelopeVersion, mode: modeRawKey}
	return sealEnvelope(h, salt, aesKey, []byte(vaultJSON))
}

// OpenVault implements [Cipher].
func (c *vaultCipher) OpenVault(ciphertext, vaultKey string) (string, error) {
	ikm, err := decodeVaultKey(vaultKey)
	if err != nil {
		return "", err
	}

	env, err := parseEnvelope(ciphertext)
	if err != nil {
		return "", err
	}
	if env.header.mode != modeRawKey {
		return "", fmt.Errorf("%w: envelope was not sealed with a vault key", ErrDecryption)
	}

	aesKey, err := expandVaultKey(ikm, env.salt)
	if err != nil {
		return "", err
	}

	plaintext, err := env.open(aesKey)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

func decodeVaultKey(vaultKey string) ([]byte, error) {
	if vaultKey == "" {
		return nil, ErrEmptyKey
	}
	ikm, err := hex.DecodeString(vaultKey)
	if err != nil || len(ikm) != vaultKeySize {
		return nil, fmt.Errorf("%w: want %d hex-encoded bytes", ErrInvalidVaultKey, vaultKeySize)
	}
	return ikm, nil
}

func expandVaultKey(ikm, salt []byte) ([]byte, error) {
	aesKey := make([]byte, aesKeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, salt, vaultKeyInfo), aesKey); err != nil {
		return nil, fmt.Errorf("expand vault key: %w", err)
	}
	return aesKey, nil
}
