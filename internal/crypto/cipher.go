// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"

	"github.com/MKhiriev/go-pass-vault/models"
	"golang.org/x/crypto/argon2"
)

// Upper bounds accepted for Argon2id parameters, both when configuring a
// cipher and when reading them back from an envelope header. They cap the
// work an attacker-supplied ciphertext can force on Open.
const (
	maxArgonTime    = 16
	maxArgonThreads = 64
	maxArgonMemory  = 1024 * 1024 // 1 GiB in KiB
)

// Argon2Params are the Argon2id cost parameters used to stretch a key string
// into an AES-256 key. They are written into every envelope, so changing them
// only affects newly sealed values.
type Argon2Params struct {
	// Time is the number of passes over memory.
	Time uint32

	// Memory is the memory cost in KiB.
	Memory uint32

	// Threads is the degree of parallelism.
	Threads uint8
}

// DefaultArgon2Params returns the parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    1,
		Memory:  64 * 1024, // 64 MiB
		Threads: 4,
	}
}

func (p Argon2Params) validate() error {
	if p.Time == 0 || p.Time > maxArgonTime {
		return fmt.Errorf("%w: time must be in [1, %d], got %d", ErrInvalidParams, maxArgonTime, p.Time)
	}
	if p.Threads == 0 || p.Threads > maxArgonThreads {
		return fmt.Errorf("%w: threads must be in [1, %d], got %d", ErrInvalidParams, maxArgonThreads, p.Threads)
	}
	if p.Memory < 8*uint32(p.Threads) || p.Memory > maxArgonMemory {
		return fmt.Errorf("%w: memory must be in [%d, %d] KiB, got %d", ErrInvalidParams, 8*uint32(p.Threads), maxArgonMemory, p.Memory)
	}
	return nil
}

// vaultCipher is the private implementation of [Cipher].
type vaultCipher struct {
	params Argon2Params
}

// NewCipher constructs a [Cipher] sealing with the given Argon2id parameters.
// Returns [ErrInvalidParams] if they are out of range.
func NewCipher(params Argon2Params) (Cipher, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &vaultCipher{params: params}, nil
}

// DeriveKey implements [Cipher] via the package-level [DeriveKey].
func (c *vaultCipher) DeriveKey(identity *models.Identity) (string, error) {
	return DeriveKey(identity)
}

// DeriveLegacyKey implements [Cipher] via the package-level [DeriveLegacyKey].
func (c *vaultCipher) DeriveLegacyKey(identity *models.Identity) (string, error) {
	return DeriveLegacyKey(identity)
}

// Seal implements [Cipher]. A fresh random salt and nonce are used for every
// call, so sealing the same plaintext twice yields different envelopes.
func (c *vaultCipher) Seal(plaintext, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	salt, err := randomBytes(saltSize)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	h := header{
		version: envelopeVersion,
		mode:    modePassphrase,
		time:    byte(c.params.Time),
		threads: c.params.Threads,
		memory:  c.params.Memory,
	}

	return sealEnvelope(h, salt, stretchKey(key, salt, h), []byte(plaintext))
}

// Open implements [Cipher]. The Argon2id parameters are taken from the
// envelope header, not from the receiver.
func (c *vaultCipher) Open(ciphertext, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	env, err := parseEnvelope(ciphertext)
	if err != nil {
		return "", err
	}
	if env.header.mode != modePassphrase {
		return "", fmt.Errorf("%w: envelope was not sealed with a derived key", ErrDecryption)
	}

	params := Argon2Params{Time: uint32(env.header.time), Memory: env.header.memory, Threads: env.header.threads}
	if err := params.validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryption, err)
	}

	plaintext, err := env.open(stretchKey(key, env.salt, env.header))
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// SealFor implements [Cipher].
func (c *vaultCipher) SealFor(identity *models.Identity, plaintext string) (string, error) {
	key, err := DeriveKey(identity)
	if err != nil {
		return "", err
	}
	return c.Seal(plaintext, key)
}

// OpenFor implements [Cipher].
func (c *vaultCipher) OpenFor(identity *models.Identity, ciphertext string) (string, error) {
	key, err := DeriveKey(identity)
	if err != nil {
		return "", err
	}
	return c.Open(ciphertext, key)
}

// OpenLegacy implements [Cipher] via [openLegacy].
func (c *vaultCipher) OpenLegacy(ciphertext, passphrase string) (string, error) {
	return openLegacy(ciphertext, passphrase)
}

func stretchKey(key string, salt []byte, h header) []byte {
	return argon2.IDKey([]byte(key), salt, uint32(h.time), h.memory, h.threads, aesKeySize)
}
