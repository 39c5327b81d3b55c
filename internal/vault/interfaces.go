// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Krylov

// Package vault is the client-side orchestrator: it derives key material from
// the signer, encrypts and decrypts entries end to end, and manages grants.
// The storage backend only ever sees ciphertext, wrapped keys, and the
// published encryption public key.
package vault

import (
	"context"

	"github.com/dkrylov/go-data-vault/models"
)

// GrantEntry names one outstanding grant: who can read which key.
type GrantEntry struct {
	Recipient models.Principal
	Key       string
}

// Vault is the full client surface.
//
// Every operation except Unlock, Lock, Unlocked, Principal, and
// ResolvePublicKey requires the vault to be unlocked and returns
// ErrVaultLocked otherwise. Concurrent operations on distinct keys are safe;
// concurrent writes to the same key are last-writer-wins, which is the
// backend's own semantics.
type Vault interface {
	// Unlock derives the master key and encryption identity from the signer
	// and publishes the identity. Idempotent while already unlocked. On any
	// failure no key material is retained.
	Unlock(ctx context.Context) error

	// Lock wipes all derived key material. The vault can be unlocked again.
	Lock()

	Unlocked() bool

	// Put encrypts value under a fresh entry key and stores both the envelope
	// and the wrapped key. Every write rotates the entry key, which detaches
	// previously issued grants from the new value.
	Put(ctx context.Context, key string, value any, opts ...PutOption) error

	// Get fetches, verifies, and decrypts the entry, decoding it into target.
	Get(ctx context.Context, key string, target any) error

	// Head returns the entry's envelope metadata without decrypting the value.
	Head(ctx context.Context, key string) (map[string]string, error)

	// Delete removes the entry, its wrapped key, and any grants issued for it.
	Delete(ctx context.Context, key string) error

	// List returns all entry keys in the vault's own storage area.
	List(ctx context.Context) ([]string, error)

	// Grant re-encrypts the entry key for the recipient's published encryption
	// public key and stores the grant in the grantor's storage area.
	Grant(ctx context.Context, key string, recipient models.Principal) error

	// Revoke removes the recipient's grant, rotates the entry key, re-encrypts
	// the value, and re-issues grants to the remaining recipients.
	Revoke(ctx context.Context, key string, recipient models.Principal) error

	// GetShared reads an entry another principal granted to this vault's
	// principal, decoding it into target.
	GetShared(ctx context.Context, grantor models.Principal, key string, target any) error

	// ListGrants returns all grants this vault has issued.
	ListGrants(ctx context.Context) ([]GrantEntry, error)

	// ResolvePublicKey looks up a principal's published encryption public key.
	ResolvePublicKey(ctx context.Context, principal models.Principal) (models.PublicKeyRecord, error)

	// PublishIdentity re-publishes this vault's encryption public key. Unlock
	// does this once; long-running clients republish periodically.
	PublishIdentity(ctx context.Context) error

	Principal() models.Principal

	// PublicKey returns the derived X25519 public key, or nil while locked.
	PublicKey() []byte
}
