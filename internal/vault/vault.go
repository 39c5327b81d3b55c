// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Krylov

package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/awnumar/memguard"

	"github.com/dkrylov/go-data-vault/internal/adapter"
	"github.com/dkrylov/go-data-vault/internal/crypto"
	"github.com/dkrylov/go-data-vault/internal/directory"
	"github.com/dkrylov/go-data-vault/internal/logger"
	"github.com/dkrylov/go-data-vault/internal/signer"
	"github.com/dkrylov/go-data-vault/models"
)

// Storage path prefixes inside a space.
const (
	keyPrefix   = "keys/"
	dataPrefix  = "vault/"
	grantPrefix = "grants/"
)

// Config carries the non-secret parameters of a vault session.
type Config struct {
	// ScopeID partitions master keys: different scopes over the same signer
	// yield unrelated vaults.
	ScopeID string

	// Space is the storage area name. Defaults to the principal's address.
	Space string
}

// Option configures optional collaborators.
type Option func(*vault)

// WithMetrics attaches operation counters.
func WithMetrics(m *Metrics) Option {
	return func(v *vault) { v.metrics = m }
}

type vault struct {
	cfg       Config
	signer    signer.Signer
	backend   adapter.StorageBackend
	directory directory.Directory
	log       *logger.Logger
	metrics   *Metrics

	cipher   crypto.EntryCipher
	envelope *crypto.KeyEnvelope
	grants   *crypto.GrantProtocol

	mu        sync.RWMutex
	masterKey *memguard.LockedBuffer
	identity  *memguard.LockedBuffer
	publicKey []byte
}

// New constructs a locked vault. Unlock must be called before data
// operations.
func New(cfg Config, s signer.Signer, backend adapter.StorageBackend, dir directory.Directory, log *logger.Logger, opts ...Option) Vault {
	if cfg.Space == "" {
		cfg.Space = s.Principal().Address
	}

	cipher := crypto.NewEntryCipher()
	envelope := crypto.NewKeyEnvelope(cipher)

	v := &vault{
		cfg:       cfg,
		signer:    s,
		backend:   backend,
		directory: dir,
		log:       log,
		cipher:    cipher,
		envelope:  envelope,
		grants:    crypto.NewGrantProtocol(cipher, crypto.NewKeyExchange(), envelope),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *vault) Unlock(ctx context.Context) (err error) {
	defer func() { v.metrics.observe("unlock", err) }()

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.masterKey != nil {
		return nil
	}

	master, err := crypto.DeriveMasterKey(v.signer.Sign, v.cfg.ScopeID)
	if err != nil {
		return fmt.Errorf("unlock: %w", err)
	}

	identity, err := crypto.DeriveEncryptionIdentity(v.signer.Sign)
	if err != nil {
		crypto.Wipe(master)
		return fmt.Errorf("unlock: %w", err)
	}

	// NewBufferFromBytes wipes its source.
	v.masterKey = memguard.NewBufferFromBytes(master)
	v.identity = memguard.NewBufferFromBytes(identity.PrivateKey)
	v.publicKey = identity.PublicKey

	if err = v.publishLocked(ctx); err != nil {
		// An unlock that cannot announce its identity is not an unlock:
		// grants to this principal would silently fail.
		v.dropKeysLocked()
		return fmt.Errorf("unlock: %w", err)
	}

	v.log.Info().
		Str("principal", v.signer.Principal().DID()).
		Str("space", v.cfg.Space).
		Msg("vault unlocked")
	return nil
}

func (v *vault) Lock() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dropKeysLocked()
	v.log.Info().Msg("vault locked")
}

func (v *vault) dropKeysLocked() {
	if v.masterKey != nil {
		v.masterKey.Destroy()
		v.masterKey = nil
	}
	if v.identity != nil {
		v.identity.Destroy()
		v.identity = nil
	}
	v.publicKey = nil
}

func (v *vault) Unlocked() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.masterKey != nil
}

func (v *vault) Principal() models.Principal {
	return v.signer.Principal()
}

func (v *vault) PublicKey() []byte {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]byte(nil), v.publicKey...)
}

func (v *vault) PublishIdentity(ctx context.Context) (err error) {
	defer func() { v.metrics.observe("publish_identity", err) }()

	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.masterKey == nil {
		return ErrVaultLocked
	}
	return v.publishLocked(ctx)
}

// publishLocked requires v.mu held (read or write) with keys present.
func (v *vault) publishLocked(ctx context.Context) error {
	rec := models.PublicKeyRecord{
		PublicKey: v.publicKey,
		Version:   models.ProtocolVersion,
		Space:     v.cfg.Space,
	}
	return v.directory.Publish(ctx, v.signer.Principal(), rec)
}

func (v *vault) ResolvePublicKey(ctx context.Context, principal models.Principal) (models.PublicKeyRecord, error) {
	return v.directory.Resolve(ctx, principal)
}

// masterKeyCopy returns a caller-owned copy of the master key. The caller
// wipes it after use so no copy outlives the operation.
func (v *vault) masterKeyCopy() ([]byte, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.masterKey == nil {
		return nil, ErrVaultLocked
	}
	return append([]byte(nil), v.masterKey.Bytes()...), nil
}

func (v *vault) identityKeyCopy() ([]byte, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.identity == nil {
		return nil, ErrVaultLocked
	}
	return append([]byte(nil), v.identity.Bytes()...), nil
}

func keyPath(key string) string { return keyPrefix + key }

func dataPath(key string) string { return dataPrefix + key }

func grantPath(recipientDID, key string) string {
	return grantPrefix + recipientDID + "/" + key
}

func validateKey(key string) error {
	if key == "" {
		return errors.New("key must not be empty")
	}
	if key[0] == '/' || key[len(key)-1] == '/' {
		return fmt.Errorf("key %q must not start or end with a slash", key)
	}
	return nil
}

// storeJSON marshals obj and writes it; backend failures become ErrStorage.
func (v *vault) storeJSON(ctx context.Context, space, path string, obj any) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	stored := models.StoredObject{Data: data, ContentType: models.ContentTypeJSON}
	if err := v.backend.Put(ctx, space, path, stored); err != nil {
		return fmt.Errorf("%w: put %s: %v", ErrStorage, path, err)
	}
	return nil
}

// fetchJSON reads and unmarshals an object; absence becomes notFound, other
// backend failures become ErrStorage.
func (v *vault) fetchJSON(ctx context.Context, space, path string, target any, notFound error) error {
	obj, err := v.backend.Get(ctx, space, path)
	if err != nil {
		if errors.Is(err, adapter.ErrObjectNotFound) {
			return notFound
		}
		return fmt.Errorf("%w: get %s: %v", ErrStorage, path, err)
	}

	if err := json.Unmarshal(obj.Data, target); err != nil {
		return fmt.Errorf("%w: malformed object at %s", ErrIntegrity, path)
	}
	return nil
}
