// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Krylov

// Package adapter defines the client-side boundary to the remote storage
// backend. The backend is an external collaborator: an opaque,
// prefix-addressable key-value store. The vault only needs the operations
// below plus a capability (bearer token) to invoke them; it never constructs
// or verifies those capabilities itself.
package adapter

//go:generate mockgen -source=interfaces.go -destination=../mock/backend_mock.go -package=mock

import (
	"context"

	"github.com/dkrylov/go-data-vault/models"
)

// StorageBackend is the full set of storage operations the vault requires.
//
// A space is one principal's storage area, named by the principal's stable
// address by default. Cross-space reads (Get/List on a space other than the
// caller's own) are how shared data is fetched; whether such a read is
// authorized is the session layer's concern, not this interface's.
//
// The public area is a distinguished anyone-can-read region per principal,
// addressed by the principal's address without a session.
//
// List returns paths with the queried prefix already stripped.
type StorageBackend interface {
	Put(ctx context.Context, space, path string, obj models.StoredObject) error
	Get(ctx context.Context, space, path string) (models.StoredObject, error)
	Delete(ctx context.Context, space, path string) error
	List(ctx context.Context, space, prefix string) ([]string, error)

	PublicPut(ctx context.Context, address, path string, data []byte) error
	PublicGet(ctx context.Context, address, path string) ([]byte, error)
}
