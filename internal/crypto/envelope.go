// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Krylov

package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/dkrylov/go-data-vault/models"
)

// KeyIDLength is the number of hex characters kept from SHA-256(entryKey).
const KeyIDLength = 16

// KeyEnvelope wraps and unwraps per-entry keys under the master key. It is
// the only place an entry key is ever exposed on the owner's code path; put,
// get, grant, and revoke all funnel through it instead of re-deriving keys
// ad hoc.
type KeyEnvelope struct {
	cipher EntryCipher
}

// NewKeyEnvelope constructs a KeyEnvelope over the given cipher capability.
func NewKeyEnvelope(cipher EntryCipher) *KeyEnvelope {
	return &KeyEnvelope{cipher: cipher}
}

// Wrap encrypts entryKey under masterKey and returns the persisted key blob:
// the base64-encoded encrypted key plus its non-secret key ID fingerprint.
func (e *KeyEnvelope) Wrap(masterKey, entryKey []byte) (models.KeyBlob, error) {
	blob, err := e.cipher.Encrypt(masterKey, entryKey)
	if err != nil {
		return models.KeyBlob{}, fmt.Errorf("wrap entry key: %w", err)
	}

	return models.KeyBlob{
		Key: base64.StdEncoding.EncodeToString(blob),
		Metadata: models.KeyBlobMetadata{
			KeyID:  KeyID(entryKey),
			Cipher: models.CipherAES256GCM,
		},
	}, nil
}

// Unwrap decodes and decrypts a key blob produced by Wrap. Returns
// ErrDecryptionFailed (wrapped) when the master key is wrong or the blob has
// been tampered with.
func (e *KeyEnvelope) Unwrap(masterKey []byte, keyBlob models.KeyBlob) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(keyBlob.Key)
	if err != nil {
		return nil, fmt.Errorf("decode key blob: %w", err)
	}

	entryKey, err := e.cipher.Decrypt(masterKey, models.EncryptedBlob(blob))
	if err != nil {
		return nil, fmt.Errorf("unwrap entry key: %w", err)
	}
	return entryKey, nil
}

// KeyID computes the non-secret fingerprint of an entry key: the first 16
// hex characters of SHA-256(entryKey). Used for envelope bookkeeping and
// rotation auditing; never sufficient to derive the key.
func KeyID(entryKey []byte) string {
	sum := sha256.Sum256(entryKey)
	return hex.EncodeToString(sum[:])[:KeyIDLength]
}
