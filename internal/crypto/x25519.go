package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"
)

type x25519KeyExchange struct{}

// NewKeyExchange returns the curve25519 implementation of [KeyExchange].
func NewKeyExchange() KeyExchange {
	return &x25519KeyExchange{}
}

func (x *x25519KeyExchange) GenerateKeyPair() (public, private []byte, err error) {
	private = make([]byte, curve25519.ScalarSize)
	if _, err = io.ReadFull(rand.Reader, private); err != nil {
		return nil, nil, fmt.Errorf("generate private key: %w", err)
	}

	public, err = curve25519.X25519(private, curve25519.Basepoint)
	if err != nil {
		return nil, nil, fmt.Errorf("derive public key: %w", err)
	}
	return public, private, nil
}

func (x *x25519KeyExchange) SharedSecret(private, peerPublic []byte) ([]byte, error) {
	shared, err := curve25519.X25519(private, peerPublic)
	if err != nil {
		return nil, fmt.Errorf("x25519 agreement: %w", err)
	}
	return shared, nil
}
