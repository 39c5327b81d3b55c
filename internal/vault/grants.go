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

func (v *vault) Grant(ctx context.Context, key string, recipient models.Principal) (err error) {
	defer func() { v.metrics.observe("grant", err) }()

	if err = validateKey(key); err != nil {
		return err
	}
	if recipient.IsZero() {
		return errors.New("recipient must not be empty")
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

	rec, err := v.directory.Resolve(ctx, recipient)
	if err != nil {
		return err
	}

	grantBlob, err := v.grants.CreateGrant(master, keyBlob, rec.PublicKey)
	if err != nil {
		return err
	}

	record := models.GrantRecord{
		Grant:   base64.StdEncoding.EncodeToString(grantBlob),
		SpaceID: v.cfg.Space,
		Metadata: map[string]string{
			models.HeaderGrantVersion: models.ProtocolVersion,
			models.HeaderGrantor:      v.signer.Principal().DID(),
			models.HeaderKeyID:        keyBlob.Metadata.KeyID,
		},
	}

	if err = v.storeJSON(ctx, v.cfg.Space, grantPath(recipient.DID(), key), record); err != nil {
		return err
	}

	v.log.Info().
		Str("key", key).
		Str("recipient", recipient.DID()).
		Msg("grant issued")
	return nil
}

func (v *vault) GetShared(ctx context.Context, grantor models.Principal, key string, target any) (err error) {
	defer func() { v.metrics.observe("get_shared", err) }()

	if err = validateKey(key); err != nil {
		return err
	}
	if grantor.IsZero() {
		return errors.New("grantor must not be empty")
	}

	identityKey, err := v.identityKeyCopy()
	if err != nil {
		return err
	}
	defer crypto.Wipe(identityKey)

	// The grantor's published space record says where their objects live;
	// fall back to their address when they published none.
	grantorSpace := grantor.Address
	if rec, resolveErr := v.directory.Resolve(ctx, grantor); resolveErr == nil && rec.Space != "" {
		grantorSpace = rec.Space
	}

	myDID := v.signer.Principal().DID()
	var record models.GrantRecord
	notFound := fmt.Errorf("%w: %s from %s", ErrGrantNotFound, key, grantor.DID())
	if err = v.fetchJSON(ctx, grantorSpace, grantPath(myDID, key), &record, notFound); err != nil {
		return err
	}

	grantBlob, err := base64.StdEncoding.DecodeString(record.Grant)
	if err != nil {
		return fmt.Errorf("%w: malformed grant record", ErrIntegrity)
	}

	entryKey, err := v.grants.OpenGrant(identityKey, grantBlob)
	if err != nil {
		return err
	}
	defer crypto.Wipe(entryKey)

	dataSpace := record.SpaceID
	if dataSpace == "" {
		dataSpace = grantorSpace
	}

	var envelope models.VaultEnvelope
	if err = v.fetchJSON(ctx, dataSpace, dataPath(key), &envelope, fmt.Errorf("%w: %s", ErrKeyNotFound, key)); err != nil {
		return err
	}

	// No key-id precheck here on purpose: a grant left over from before a
	// rotation must fail authentication, not leak which keys rotated.
	return decodeEnvelope(v.cipher, entryKey, envelope, target)
}

func (v *vault) Revoke(ctx context.Context, key string, recipient models.Principal) (err error) {
	defer func() { v.metrics.observe("revoke", err) }()

	if err = validateKey(key); err != nil {
		return err
	}
	if recipient.IsZero() {
		return errors.New("recipient must not be empty")
	}

	master, err := v.masterKeyCopy()
	if err != nil {
		return err
	}
	defer crypto.Wipe(master)

	// Remove the grant object first. Deleting it alone is not revocation:
	// the recipient may have cached the blob, so the entry key must rotate.
	path := grantPath(recipient.DID(), key)
	if err = v.backend.Delete(ctx, v.cfg.Space, path); err != nil {
		if errors.Is(err, adapter.ErrObjectNotFound) {
			return fmt.Errorf("%w: %s for %s", ErrGrantNotFound, key, recipient.DID())
		}
		return fmt.Errorf("%w: delete grant: %v", ErrStorage, err)
	}

	if err = v.rotateEntryKey(ctx, master, key); err != nil {
		return err
	}

	// Re-issue grants to everyone still on the list.
	entries, err := v.ListGrants(ctx)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Key != key {
			continue
		}
		if err = v.Grant(ctx, key, entry.Recipient); err != nil {
			return fmt.Errorf("re-issue grant to %s: %w", entry.Recipient.DID(), err)
		}
	}

	v.log.Info().
		Str("key", key).
		Str("recipient", recipient.DID()).
		Msg("grant revoked, entry key rotated")
	return nil
}

// rotateEntryKey decrypts the entry under its current key and rewrites it
// under a fresh one. Envelope metadata is preserved except for the key id and
// the rotation marker.
func (v *vault) rotateEntryKey(ctx context.Context, master []byte, key string) error {
	var keyBlob models.KeyBlob
	if err := v.fetchJSON(ctx, v.cfg.Space, keyPath(key), &keyBlob, fmt.Errorf("%w: %s", ErrKeyNotFound, key)); err != nil {
		return err
	}
	var envelope models.VaultEnvelope
	if err := v.fetchJSON(ctx, v.cfg.Space, dataPath(key), &envelope, fmt.Errorf("%w: %s", ErrKeyNotFound, key)); err != nil {
		return err
	}

	oldKey, err := v.envelope.Unwrap(master, keyBlob)
	if err != nil {
		return err
	}
	defer crypto.Wipe(oldKey)

	blob, err := base64.StdEncoding.DecodeString(envelope.Data)
	if err != nil {
		return fmt.Errorf("%w: malformed envelope data", ErrIntegrity)
	}
	plaintext, err := v.cipher.Decrypt(oldKey, models.EncryptedBlob(blob))
	if err != nil {
		return err
	}
	defer crypto.Wipe(plaintext)

	newKey, err := crypto.NewEntryKey()
	if err != nil {
		return err
	}
	defer crypto.Wipe(newKey)

	newBlob, err := v.cipher.Encrypt(newKey, plaintext)
	if err != nil {
		return fmt.Errorf("re-encrypt entry: %w", err)
	}
	newKeyBlob, err := v.envelope.Wrap(master, newKey)
	if err != nil {
		return err
	}

	envelope.Data = base64.StdEncoding.EncodeToString(newBlob)
	envelope.Metadata[models.HeaderKeyID] = newKeyBlob.Metadata.KeyID
	envelope.Metadata[models.HeaderKeyRotation] = models.RotationPerKey

	return v.writeEntry(ctx, key, newKeyBlob, envelope)
}

func (v *vault) ListGrants(ctx context.Context) (_ []GrantEntry, err error) {
	defer func() { v.metrics.observe("list_grants", err) }()

	if !v.Unlocked() {
		return nil, ErrVaultLocked
	}

	paths, err := v.backend.List(ctx, v.cfg.Space, grantPrefix)
	if err != nil {
		return nil, fmt.Errorf("%w: list grants: %v", ErrStorage, err)
	}

	var entries []GrantEntry
	for _, p := range paths {
		// Grant paths are {recipientDID}/{key}. DIDs contain no slash, so the
		// first one splits the two even when the key has slashes of its own.
		did, key, ok := strings.Cut(p, "/")
		if !ok {
			continue
		}
		recipient, parseErr := models.ParsePrincipal(did)
		if parseErr != nil {
			v.log.Warn().Str("path", p).Msg("skipping grant with unparseable recipient")
			continue
		}
		entries = append(entries, GrantEntry{Recipient: recipient, Key: key})
	}
	return entries, nil
}
