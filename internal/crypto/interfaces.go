// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Krylov

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

import "github.com/dkrylov/go-data-vault/models"

// EntryCipher is the injected symmetric AEAD capability. Every encryption in
// the system (value encryption, key wrapping, grant wrapping) goes through
// this interface, so the orchestration logic stays independent of the chosen
// crypto library.
//
// The wire format is fixed: nonce (12 bytes) || ciphertext || tag (16 bytes).
type EntryCipher interface {
	// Encrypt seals plaintext under a 32-byte key with a freshly random
	// nonce. Nonces are never derived and never reused for a given key;
	// every call draws new randomness from the OS CSPRNG.
	Encrypt(key, plaintext []byte) (models.EncryptedBlob, error)

	// Decrypt opens a blob produced by Encrypt. The authentication tag is
	// verified before any plaintext is returned; on mismatch the error is
	// ErrDecryptionFailed, covering tampering and wrong-key use uniformly.
	Decrypt(key []byte, blob models.EncryptedBlob) ([]byte, error)
}

// KeyExchange is the injected asymmetric capability used by the grant
// protocol: X25519 key-pair generation and Diffie-Hellman agreement.
type KeyExchange interface {
	// GenerateKeyPair returns a fresh (public, private) X25519 key pair.
	GenerateKeyPair() (public, private []byte, err error)

	// SharedSecret computes the X25519 shared secret between our private key
	// and a peer's public key.
	SharedSecret(private, peerPublic []byte) ([]byte, error)
}
