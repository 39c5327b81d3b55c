// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Krylov

package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
)

// Domain-separation strings. The master key and the encryption identity are
// derived from separate messages and separate HKDF info strings so the two
// secrets stay cryptographically independent even when they originate from
// the same signer.
const (
	masterKeyMessagePrefix = "vault-master-v1:"
	masterKeyInfo          = "vault-master"

	identityMessage = "encryption-identity-v1"
	identitySalt    = "x25519-domain"
	identityInfo    = "encryption-identity"

	grantInfo = "vault-grant"
)

// SignFunc is the externally supplied signing capability: it must return the
// same signature for the same message on every call (a deterministic wallet
// signature). Derivation is stateless; the vault is re-derivable from the
// signing capability alone.
type SignFunc func(message []byte) ([]byte, error)

// Identity is an X25519 key pair derived once per unlock. The private key is
// wiped by the holder on lock.
type Identity struct {
	PublicKey  []byte
	PrivateKey []byte
}

// DeriveMasterKey obtains a signature over "vault-master-v1:"+scopeID and
// expands it into the 32-byte master symmetric key:
//
//	HKDF-SHA256(ikm=signature, salt=SHA256(scopeID), info="vault-master")
func DeriveMasterKey(sign SignFunc, scopeID string) ([]byte, error) {
	sig, err := sign([]byte(masterKeyMessagePrefix + scopeID))
	if err != nil {
		return nil, fmt.Errorf("sign master key message: %w", err)
	}
	defer Wipe(sig)

	salt := sha256.Sum256([]byte(scopeID))
	key, err := hkdfExpand(sig, salt[:], masterKeyInfo, KeySize)
	if err != nil {
		return nil, fmt.Errorf("derive master key: %w", err)
	}
	return key, nil
}

// DeriveEncryptionIdentity obtains a signature over the fixed message
// "encryption-identity-v1" (no scope: the identity is stable and discoverable
// across scopes), expands it into a 32-byte seed, clamps the seed into an
// X25519 private key, and derives the matching public key.
func DeriveEncryptionIdentity(sign SignFunc) (Identity, error) {
	sig, err := sign([]byte(identityMessage))
	if err != nil {
		return Identity{}, fmt.Errorf("sign identity message: %w", err)
	}
	defer Wipe(sig)

	seed, err := hkdfExpand(sig, []byte(identitySalt), identityInfo, curve25519.ScalarSize)
	if err != nil {
		return Identity{}, fmt.Errorf("derive identity seed: %w", err)
	}

	// RFC 7748 clamping.
	seed[0] &= 248
	seed[31] &= 127
	seed[31] |= 64

	pub, err := curve25519.X25519(seed, curve25519.Basepoint)
	if err != nil {
		Wipe(seed)
		return Identity{}, fmt.Errorf("derive identity public key: %w", err)
	}

	return Identity{PublicKey: pub, PrivateKey: seed}, nil
}

// deriveGrantKey turns an X25519 shared secret into the symmetric key that
// wraps an entry key inside a grant:
//
//	HKDF-SHA256(ikm=sharedSecret, salt="x25519-domain", info="vault-grant")
//
// Both sides of a grant arrive at the same key by ECDH symmetry.
func deriveGrantKey(sharedSecret []byte) ([]byte, error) {
	key, err := hkdfExpand(sharedSecret, []byte(identitySalt), grantInfo, KeySize)
	if err != nil {
		return nil, fmt.Errorf("derive grant key: %w", err)
	}
	return key, nil
}

func hkdfExpand(ikm, salt []byte, info string, outLen int) ([]byte, error) {
	reader := hkdf.New(sha256.New, ikm, salt, []byte(info))
	out := make([]byte, outLen)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, err
	}
	return out, nil
}
