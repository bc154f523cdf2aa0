// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
)

// Envelope layout (before base64):
//
//	offset size  field
//	0      1     format version
//	1      1     key mode
//	2      1     argon2id time cost   (0 for modeRawKey)
//	3      1     argon2id threads     (0 for modeRawKey)
//	4      4     argon2id memory KiB  (0 for modeRawKey), big endian
//	8      16    salt
//	24     12    nonce
//	36     n+16  AES-256-GCM ciphertext || tag
//
// The 8 header bytes are authenticated as GCM additional data.
const (
	envelopeVersion byte = 1

	// modePassphrase: AES key = Argon2id(key string, salt, header params).
	modePassphrase byte = 1
	// modeRawKey: AES key = HKDF-SHA256(vault key bytes, salt).
	modeRawKey byte = 2

	headerSize = 8
	saltSize   = 16
	nonceSize  = 12
	tagSize    = 16
	aesKeySize = 32

	minEnvelopeSize = headerSize + saltSize + nonceSize + tagSize
)

// header is the decoded fixed-size prefix of an envelope.
type header struct {
	version byte
	mode    byte
	time    byte
	threads byte
	memory  uint32
}

func (h header) marshal() []byte {
	b := make([]byte, headerSize)
	b[0] = h.version
	b[1] = h.mode
	b[2] = h.time
	b[3] = h.threads
	binary.BigEndian.PutUint32(b[4:], h.memory)
	return b
}

func parseHeader(b []byte) header {
	return header{
		version: b[0],
		mode:    b[1],
		time:    b[2],
		threads: b[3],
		memory:  binary.BigEndian.Uint32(b[4:headerSize]),
	}
}

// envelope is a decoded, not yet authenticated ciphertext.
type envelope struct {
	header header
	aad    []byte
	salt   []byte
	nonce  []byte
	sealed []byte
}

// parseEnvelope decodes the base64 text form and splits it into its parts.
// It checks framing only; authenticity is established by [envelope.open].
func parseEnvelope(ciphertext string) (envelope, error) {
	blob, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return envelope{}, fmt.Errorf("%w: decode base64: %w", ErrDecryption, err)
	}
	if len(blob) < minEnvelopeSize {
		return envelope{}, fmt.Errorf("%w: ciphertext too short", ErrDecryption)
	}

	h := parseHeader(blob[:headerSize])
	if h.version != envelopeVersion {
		return envelope{}, fmt.Errorf("%w: unsupported envelope version %d", ErrDecryption, h.version)
	}

	return envelope{
		header: h,
		aad:    blob[:headerSize],
		salt:   blob[headerSize : headerSize+saltSize],
		nonce:  blob[headerSize+saltSize : headerSize+saltSize+nonceSize],
		sealed: blob[headerSize+saltSize+nonceSize:],
	}, nil
}

// open authenticates and decrypts the envelope with an already derived AES key.
func (e envelope) open(aesKey []byte) ([]byte, error) {
	gcm, err := newGCM(aesKey)
	if err != nil {
		return nil, err
	}

	// An error here almost always means a wrong key or a modified ciphertext.
	plaintext, err := gcm.Open(nil, e.nonce, e.sealed, e.aad)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryption, err)
	}

	return plaintext, nil
}

// sealEnvelope encrypts plaintext with aesKey and frames the result.
func sealEnvelope(h header, salt, aesKey, plaintext []byte) (string, error) {
	gcm, err := newGCM(aesKey)
	if err != nil {
		return "", err
	}

	nonce, err := randomBytes(nonceSize)
	if err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	aad := h.marshal()
	blob := make([]byte, 0, headerSize+saltSize+nonceSize+len(plaintext)+gcm.Overhead())
	blob = append(blob, aad...)
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = gcm.Seal(blob, nonce, plaintext, aad)

	return base64.StdEncoding.EncodeToString(blob), nil
}

func newGCM(aesKey []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

// randomBytes reads n bytes from the OS CSPRNG.
func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}
