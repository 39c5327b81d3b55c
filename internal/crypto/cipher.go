// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Krylov

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/dkrylov/go-data-vault/models"
)

// ErrDecryptionFailed is returned whenever an authentication tag does not
// verify or a ciphertext is structurally malformed. Wrong key, tampered
// ciphertext, and truncation are deliberately indistinguishable.
var ErrDecryptionFailed = errors.New("decryption failed")

// KeySize is the symmetric key length used everywhere: AES-256.
const KeySize = 32

type aesEntryCipher struct{}

// NewEntryCipher returns the AES-256-GCM implementation of [EntryCipher].
func NewEntryCipher() EntryCipher {
	return &aesEntryCipher{}
}

// Encrypt implements [EntryCipher]. The blob layout is
// nonce (12) || ciphertext || tag (16); GCM appends the tag itself.
func (c *aesEntryCipher) Encrypt(key, plaintext []byte) (models.EncryptedBlob, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	ct := gcm.Seal(nil, nonce, plaintext, nil)
	return models.EncryptedBlob(append(nonce, ct...)), nil
}

// Decrypt implements [EntryCipher]. Tag verification happens inside gcm.Open;
// no partial plaintext ever escapes on failure.
func (c *aesEntryCipher) Decrypt(key []byte, blob models.EncryptedBlob) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if !blob.Valid() {
		return nil, fmt.Errorf("%w: blob too short (%d bytes)", ErrDecryptionFailed, len(blob))
	}

	pt, err := gcm.Open(nil, blob.Nonce(), blob.Ciphertext(), nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return pt, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("invalid key length: %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

// NewEntryKey draws a fresh 32-byte entry key from the OS CSPRNG. A new one
// is generated on every put and on every revocation.
func NewEntryKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate entry key: %w", err)
	}
	return key, nil
}
