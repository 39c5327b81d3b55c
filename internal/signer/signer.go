// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Krylov

// Package signer supplies the deterministic signing capability the vault is
// derived from. The vault never persists key state: anyone who can produce
// the same signature over the same message recovers the same vault.
package signer

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"

	"github.com/dkrylov/go-data-vault/models"
)

//go:generate mockgen -source=signer.go -destination=../mock/signer_mock.go -package=mock

var ErrInvalidMnemonic = errors.New("invalid mnemonic phrase")

// Signer is the externally supplied signing capability. Sign must be
// deterministic: the same message always yields the same signature, or the
// vault cannot be re-derived across sessions.
type Signer interface {
	Sign(message []byte) ([]byte, error)
	Principal() models.Principal
}

type mnemonicSigner struct {
	key       ed25519.PrivateKey
	principal models.Principal
}

// NewMnemonicSigner derives an ed25519 signing key from a BIP-39 mnemonic
// and optional passphrase. Ed25519 signatures are deterministic, which is
// exactly the property key derivation needs. The principal address is the
// base58 encoding of the signing public key.
func NewMnemonicSigner(mnemonic, passphrase string) (Signer, error) {
	mnemonic = strings.TrimSpace(mnemonic)
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	seed := bip39.NewSeed(mnemonic, passphrase)
	key := ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize])

	return &mnemonicSigner{
		key:       key,
		principal: models.NewPrincipal(key.Public().(ed25519.PublicKey)),
	}, nil
}

func (s *mnemonicSigner) Sign(message []byte) ([]byte, error) {
	if len(message) == 0 {
		return nil, fmt.Errorf("empty message")
	}
	return ed25519.Sign(s.key, message), nil
}

func (s *mnemonicSigner) Principal() models.Principal {
	return s.principal
}

type hmacSigner struct {
	secret    []byte
	principal models.Principal
}

// NewHMACSigner returns a test-oriented deterministic signer keyed by an
// arbitrary secret. Its principal address is derived from the secret so two
// signers with different secrets get different addresses.
func NewHMACSigner(secret []byte) Signer {
	addr := sha256.Sum256(append([]byte("vault-signer-address:"), secret...))
	return &hmacSigner{
		secret:    append([]byte(nil), secret...),
		principal: models.NewPrincipal(addr[:]),
	}
}

func (s *hmacSigner) Sign(message []byte) ([]byte, error) {
	if len(message) == 0 {
		return nil, fmt.Errorf("empty message")
	}
	h := hmac.New(sha256.New, s.secret)
	h.Write(message)
	return h.Sum(nil), nil
}

func (s *hmacSigner) Principal() models.Principal {
	return s.principal
}
