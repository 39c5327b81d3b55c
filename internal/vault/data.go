package vault

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dkrylov/go-data-vault/internal/adapter"
	"github.com/dkrylov/go-data-vault/internal/crypto"
	"github.com/dkrylov/go-data-vault/models"
)

// PutOption adjusts a single Put call.
type PutOption func(*putConfig)

type putConfig struct {
	contentType string
}

// WithContentType selects the serialization codec for the value.
func WithContentType(contentType string) PutOption {
	return func(c *putConfig) { c.contentType = contentType }
}

func (v *vault) Put(ctx context.Context, key string, value any, opts ...PutOption) (err error) {
	defer func() { v.metrics.observe("put", err) }()

	if err = validateKey(key); err != nil {
		return err
	}

	cfg := putConfig{contentType: defaultContentType(value)}
	for _, opt := range opts {
		opt(&cfg)
	}
	codec, err := codecFor(cfg.contentType)
	if err != nil {
		return err
	}

	master, err := v.masterKeyCopy()
	if err != nil {
		return err
	}
	defer crypto.Wipe(master)

	plaintext, err := codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}

	// A fresh entry key per write. Old grants keep decrypting only the value
	// they were issued for, never the new one.
	entryKey, err := crypto.NewEntryKey()
	if err != nil {
		return err
	}
	defer crypto.Wipe(entryKey)

	blob, err := v.cipher.Encrypt(entryKey, plaintext)
	if err != nil {
		return fmt.Errorf("encrypt entry: %w", err)
	}

	keyBlob, err := v.envelope.Wrap(master, entryKey)
	if err != nil {
		return err
	}

	envelope := models.VaultEnvelope{
		Data: base64.StdEncoding.EncodeToString(blob),
		Metadata: map[string]string{
			models.HeaderVersion:     models.ProtocolVersion,
			models.HeaderCipher:      models.CipherAES256GCM,
			models.HeaderKeyID:       keyBlob.Metadata.KeyID,
			models.HeaderContentType: codec.ContentType(),
			models.HeaderKDF:         models.KDFHKDFSHA256,
			models.HeaderKeyRotation: models.RotationPerWrite,
		},
	}

	return v.writeEntry(ctx, key, keyBlob, envelope)
}

// writeEntry persists the wrapped key first, then the envelope. A failure
// between the two leaves a readable-or-absent pair, never a silently
// corrupted one: Get verifies the key ID of whatever it finds.
func (v *vault) writeEntry(ctx context.Context, key string, keyBlob models.KeyBlob, envelope models.VaultEnvelope) error {
	if err := v.storeJSON(ctx, v.cfg.Space, keyPath(key), keyBlob); err != nil {
		return err
	}
	if err := v.storeJSON(ctx, v.cfg.Space, dataPath(key), envelope); err != nil {
		return err
	}

	v.log.Debug().Str("key", key).Str("keyId", keyBlob.Metadata.KeyID).Msg("entry stored")
	return nil
}

func (v *vault) Get(ctx context.Context, key string, target any) (err error) {
	defer func() { v.metrics.observe("get", err) }()

	if err = validateKey(key); err != nil {
		return err
	}

	master, err := v.masterKeyCopy()
	if err != nil {
		return err
	}
	defer crypto.Wipe(master)

	var keyBlob models.KeyBlob
	if err = v.fetchJSON(ctx, v.cfg.Space, keyPath(key), &keyBlob, fmt.Errorf("%w: %s", ErrKeyNotFound, key)); err != nil {
		return err
	}

	var envelope models.VaultEnvelope
	if err = v.fetchJSON(ctx, v.cfg.Space, dataPath(key), &envelope, fmt.Errorf("%w: %s", ErrKeyNotFound, key)); err != nil {
		return err
	}

	entryKey, err := v.envelope.Unwrap(master, keyBlob)
	if err != nil {
		return err
	}
	defer crypto.Wipe(entryKey)

	// The envelope must have been written for exactly this entry key. A
	// mismatch means the two objects are from different writes, or the
	// backend substituted one of them.
	if envelope.Metadata[models.HeaderKeyID] != crypto.KeyID(entryKey) {
		return fmt.Errorf("%w: key id mismatch for %s", ErrIntegrity, key)
	}

	return decodeEnvelope(v.cipher, entryKey, envelope, target)
}

// decodeEnvelope decrypts the envelope payload under entryKey and decodes it
// into target using the codec named in envelope metadata.
func decodeEnvelope(cipher crypto.EntryCipher, entryKey []byte, envelope models.VaultEnvelope, target any) error {
	blob, err := base64.StdEncoding.DecodeString(envelope.Data)
	if err != nil {
		return fmt.Errorf("%w: malformed envelope data", ErrIntegrity)
	}

	plaintext, err := cipher.Decrypt(entryKey, models.EncryptedBlob(blob))
	if err != nil {
		return err
	}
	defer crypto.Wipe(plaintext)

	codec, err := codecFor(envelope.Metadata[models.HeaderContentType])
	if err != nil {
		// A content type this client does not know is still a readable
		// entry: hand the raw plaintext to the caller instead of guessing.
		codec = rawCodec{}
	}
	if err := codec.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	return nil
}

func (v *vault) Head(ctx context.Context, key string) (_ map[string]string, err error) {
	defer func() { v.metrics.observe("head", err) }()

	if err = validateKey(key); err != nil {
		return nil, err
	}
	if !v.Unlocked() {
		return nil, ErrVaultLocked
	}

	var envelope models.VaultEnvelope
	if err = v.fetchJSON(ctx, v.cfg.Space, dataPath(key), &envelope, fmt.Errorf("%w: %s", ErrKeyNotFound, key)); err != nil {
		return nil, err
	}

	meta := make(map[string]string, len(envelope.Metadata))
	for k, val := range envelope.Metadata {
		meta[k] = val
	}
	return meta, nil
}

func (v *vault) Delete(ctx context.Context, key string) (err error) {
	defer func() { v.metrics.observe("delete", err) }()

	if err = validateKey(key); err != nil {
		return err
	}
	if !v.Unlocked() {
		return ErrVaultLocked
	}

	errData := v.backend.Delete(ctx, v.cfg.Space, dataPath(key))
	errKey := v.backend.Delete(ctx, v.cfg.Space, keyPath(key))

	if errors.Is(errData, adapter.ErrObjectNotFound) && errors.Is(errKey, adapter.ErrObjectNotFound) {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	for _, e := range []error{errData, errKey} {
		if e != nil && !errors.Is(e, adapter.ErrObjectNotFound) {
			return fmt.Errorf("%w: delete %s: %v", ErrStorage, key, e)
		}
	}

	// Grants for a deleted entry point at nothing; sweep them best-effort.
	entries, listErr := v.ListGrants(ctx)
	if listErr != nil {
		v.log.Warn().Err(listErr).Str("key", key).Msg("could not sweep grants for deleted entry")
		return nil
	}
	for _, entry := range entries {
		if entry.Key != key {
			continue
		}
		path := grantPath(entry.Recipient.DID(), key)
		if delErr := v.backend.Delete(ctx, v.cfg.Space, path); delErr != nil && !errors.Is(delErr, adapter.ErrObjectNotFound) {
			v.log.Warn().Err(delErr).Str("path", path).Msg("could not delete grant for deleted entry")
		}
	}

	v.log.Debug().Str("key", key).Msg("entry deleted")
	return nil
}

func (v *vault) List(ctx context.Context) (_ []string, err error) {
	defer func() { v.metrics.observe("list", err) }()

	if !v.Unlocked() {
		return nil, ErrVaultLocked
	}

	keys, err := v.backend.List(ctx, v.cfg.Space, dataPrefix)
	if err != nil {
		return nil, fmt.Errorf("%w: list entries: %v", ErrStorage, err)
	}

	// Some backends return unstripped paths.
	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, dataPrefix)
	}
	return keys, nil
}
