// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Krylov

// Package directory publishes and resolves encryption public keys through
// the storage backend's public area. The well-known objects are plain bytes
// readable by anyone, which is what lets a grantor encrypt for a recipient
// it has never exchanged messages with.
package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkrylov/go-data-vault/internal/adapter"
	"github.com/dkrylov/go-data-vault/internal/crypto"
	"github.com/dkrylov/go-data-vault/internal/logger"
	"github.com/dkrylov/go-data-vault/models"
)

// ErrPublicKeyNotFound is returned when a principal has no published,
// well-formed encryption public key.
var ErrPublicKeyNotFound = errors.New("public key not found")

//go:generate mockgen -source=directory.go -destination=../mock/directory_mock.go -package=mock

// Directory resolves principals to encryption public keys and publishes the
// local principal's own key material.
type Directory interface {
	// Publish writes the principal's encryption public key, protocol version,
	// and space name to its public area. Publishing is idempotent and safe to
	// repeat; clients re-publish on every unlock.
	Publish(ctx context.Context, principal models.Principal, rec models.PublicKeyRecord) error

	// Resolve fetches a principal's published encryption public key.
	Resolve(ctx context.Context, principal models.Principal) (models.PublicKeyRecord, error)
}

type backendDirectory struct {
	backend adapter.StorageBackend
	log     *logger.Logger
}

func New(backend adapter.StorageBackend, log *logger.Logger) Directory {
	return &backendDirectory{backend: backend, log: log}
}

func (d *backendDirectory) Publish(ctx context.Context, principal models.Principal, rec models.PublicKeyRecord) error {
	if len(rec.PublicKey) != crypto.KeySize {
		return fmt.Errorf("public key must be %d bytes, got %d", crypto.KeySize, len(rec.PublicKey))
	}

	address := principal.Address
	objects := []struct {
		path string
		data []byte
	}{
		{models.WellKnownPublicKey, rec.PublicKey},
		{models.WellKnownVersion, []byte(rec.Version)},
		{models.WellKnownSpace, []byte(rec.Space)},
	}

	for _, obj := range objects {
		if err := d.backend.PublicPut(ctx, address, obj.path, obj.data); err != nil {
			return fmt.Errorf("publish %s: %w", obj.path, err)
		}
	}

	d.log.Debug().Str("principal", principal.DID()).Msg("published encryption public key")
	return nil
}

func (d *backendDirectory) Resolve(ctx context.Context, principal models.Principal) (models.PublicKeyRecord, error) {
	address := principal.Address

	key, err := d.backend.PublicGet(ctx, address, models.WellKnownPublicKey)
	if err != nil {
		if errors.Is(err, adapter.ErrObjectNotFound) {
			return models.PublicKeyRecord{}, fmt.Errorf("%w: %s", ErrPublicKeyNotFound, principal.DID())
		}
		return models.PublicKeyRecord{}, fmt.Errorf("resolve %s: %w", principal.DID(), err)
	}
	if len(key) != crypto.KeySize {
		// A published key of the wrong shape is as unusable as no key.
		return models.PublicKeyRecord{}, fmt.Errorf("%w: malformed key for %s", ErrPublicKeyNotFound, principal.DID())
	}

	rec := models.PublicKeyRecord{PublicKey: key}

	// Version and space are advisory; their absence does not block grants.
	if version, err := d.backend.PublicGet(ctx, address, models.WellKnownVersion); err == nil {
		rec.Version = string(version)
	}
	if space, err := d.backend.PublicGet(ctx, address, models.WellKnownSpace); err == nil {
		rec.Space = string(space)
	}

	return rec, nil
}
