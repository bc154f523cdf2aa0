package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"unicode/utf8"
)

// Legacy framing: base64("Salted__" || salt(8) || AES-256-CBC ciphertext),
// key and IV from EVP_BytesToKey(MD5, 1 round) over passphrase and salt.
var legacyMagic = []byte("Salted__")

const legacySaltSize = 8

// openLegacy decrypts a ciphertext written by the previous implementation.
// The format has no authentication tag: PKCS#7 padding and UTF-8 validity are
// the only checks, and any mismatch is reported as [ErrDecryption].
func openLegacy(ciphertext, passphrase string) (string, error) {
	if passphrase == "" {
		return "", ErrEmptyKey
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: decode base64: %w", ErrDecryption, err)
	}

	prefix := len(legacyMagic) + legacySaltSize
	if len(raw) < prefix+aes.BlockSize || !bytes.Equal(raw[:len(legacyMagic)], legacyMagic) {
		return "", fmt.Errorf("%w: not a legacy ciphertext", ErrDecryption)
	}

	salt, body := raw[len(legacyMagic):prefix], raw[prefix:]
	if len(body)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: legacy ciphertext is not block aligned", ErrDecryption)
	}

	key, iv := evpBytesToKey([]byte(passphrase), salt, aesKeySize, aes.BlockSize)
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	plaintext := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, body)

	plaintext, err = pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plaintext) {
		return "", fmt.Errorf("%w: legacy plaintext is not valid UTF-8", ErrDecryption)
	}

	return string(plaintext), nil
}

// evpBytesToKey is OpenSSL's EVP_BytesToKey with MD5 and a single round.
func evpBytesToKey(password, salt []byte, keyLen, ivLen int) ([]byte, []byte) {
	var derived, block []byte
	for len(derived) < keyLen+ivLen {
		h := md5.New()
		h.Write(block)
		h.Write(password)
		h.Write(salt)
		block = h.Sum(nil)
		derived = append(derived, block...)
	}
	return derived[:keyLen], derived[keyLen : keyLen+ivLen]
}

func pkcs7Unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, fmt.Errorf("%w: bad padding", ErrDecryption)
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("%w: bad padding", ErrDecryption)
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, fmt.Errorf("%w: bad padding", ErrDecryption)
		}
	}
	return b[:len(b)-n], nil
}
