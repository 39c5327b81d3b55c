// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Krylov

package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// PrincipalMethod is the DID method used for vault principals.
const PrincipalMethod = "vault"

var (
	ErrInvalidPrincipal = errors.New("invalid principal identifier")
)

// Principal is a parsed principal identifier. Identifiers are DID-style,
// colon-delimited: "did:vault:<base58 address>". Address is the stable,
// method-specific identifier (base58 of the principal's signing public key)
// and doubles as the name of the principal's default storage area.
type Principal struct {
	Method  string
	Address string
}

// ParsePrincipal validates and parses a DID-style identifier. It is the only
// place principal strings are taken apart; callers never split ad hoc.
func ParsePrincipal(did string) (Principal, error) {
	parts := strings.Split(did, ":")
	if len(parts) != 3 {
		return Principal{}, fmt.Errorf("%w: want did:<method>:<address>, got %q", ErrInvalidPrincipal, did)
	}
	if parts[0] != "did" {
		return Principal{}, fmt.Errorf("%w: missing did scheme in %q", ErrInvalidPrincipal, did)
	}
	if parts[1] == "" {
		return Principal{}, fmt.Errorf("%w: empty method in %q", ErrInvalidPrincipal, did)
	}
	if parts[2] == "" {
		return Principal{}, fmt.Errorf("%w: empty address in %q", ErrInvalidPrincipal, did)
	}
	if _, err := base58.Decode(parts[2]); err != nil {
		return Principal{}, fmt.Errorf("%w: address is not base58: %q", ErrInvalidPrincipal, parts[2])
	}

	return Principal{Method: parts[1], Address: parts[2]}, nil
}

// NewPrincipal builds a vault-method principal from a raw public key.
func NewPrincipal(publicKey []byte) Principal {
	return Principal{Method: PrincipalMethod, Address: base58.Encode(publicKey)}
}

// DID renders the identifier back to its canonical string form.
func (p Principal) DID() string {
	return "did:" + p.Method + ":" + p.Address
}

// IsZero reports whether the principal is unset.
func (p Principal) IsZero() bool {
	return p.Method == "" && p.Address == ""
}
