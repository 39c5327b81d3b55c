// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Krylov

package crypto

import (
	"fmt"

	"github.com/dkrylov/go-data-vault/models"
)

// GrantProtocol re-encrypts entry keys to recipients' X25519 public keys via
// ephemeral Diffie-Hellman, ECIES-style. The owner never needs the
// recipient's private key, and the recipient never needs the owner's
// long-term private key, only their own static key pair and the ephemeral
// public key embedded in the grant blob.
type GrantProtocol struct {
	cipher   EntryCipher
	exchange KeyExchange
	envelope *KeyEnvelope
}

// NewGrantProtocol constructs a GrantProtocol over the injected capabilities.
func NewGrantProtocol(cipher EntryCipher, exchange KeyExchange, envelope *KeyEnvelope) *GrantProtocol {
	return &GrantProtocol{cipher: cipher, exchange: exchange, envelope: envelope}
}

// CreateGrant unwraps the owner's key blob and re-encrypts the entry key to
// recipientPublicKey. A fresh ephemeral key pair is generated per grant and
// never reused: compromise of one grant's ephemeral secret does not expose
// other grants.
//
// Blob layout: ephemeralPublicKey (32) || nonce (12) || ciphertext || tag (16).
func (g *GrantProtocol) CreateGrant(masterKey []byte, keyBlob models.KeyBlob, recipientPublicKey []byte) ([]byte, error) {
	entryKey, err := g.envelope.Unwrap(masterKey, keyBlob)
	if err != nil {
		return nil, err
	}
	defer Wipe(entryKey)

	ephPublic, ephPrivate, err := g.exchange.GenerateKeyPair()
	if err != nil {
		return nil, fmt.Errorf("generate ephemeral key pair: %w", err)
	}
	defer Wipe(ephPrivate)

	shared, err := g.exchange.SharedSecret(ephPrivate, recipientPublicKey)
	if err != nil {
		return nil, fmt.Errorf("grant agreement: %w", err)
	}
	defer Wipe(shared)

	grantKey, err := deriveGrantKey(shared)
	if err != nil {
		return nil, err
	}
	defer Wipe(grantKey)

	encrypted, err := g.cipher.Encrypt(grantKey, entryKey)
	if err != nil {
		return nil, fmt.Errorf("encrypt grant: %w", err)
	}

	return append(append([]byte(nil), ephPublic...), encrypted...), nil
}

// OpenGrant recovers the entry key from a grant blob using the recipient's
// static private key. The derivation mirrors CreateGrant by ECDH symmetry.
func (g *GrantProtocol) OpenGrant(recipientPrivateKey, grantBlob []byte) ([]byte, error) {
	if len(grantBlob) < models.EphemeralKeySize+models.NonceSize+models.TagSize {
		return nil, fmt.Errorf("%w: grant blob too short (%d bytes)", ErrDecryptionFailed, len(grantBlob))
	}

	ephPublic := grantBlob[:models.EphemeralKeySize]
	encrypted := models.EncryptedBlob(grantBlob[models.EphemeralKeySize:])

	shared, err := g.exchange.SharedSecret(recipientPrivateKey, ephPublic)
	if err != nil {
		return nil, fmt.Errorf("grant agreement: %w", err)
	}
	defer Wipe(shared)

	grantKey, err := deriveGrantKey(shared)
	if err != nil {
		return nil, err
	}
	defer Wipe(grantKey)

	entryKey, err := g.cipher.Decrypt(grantKey, encrypted)
	if err != nil {
		return nil, fmt.Errorf("open grant: %w", err)
	}
	return entryKey, nil
}
