package vault

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrylov/go-data-vault/internal/adapter"
	"github.com/dkrylov/go-data-vault/internal/directory"
	"github.com/dkrylov/go-data-vault/internal/logger"
	"github.com/dkrylov/go-data-vault/internal/signer"
	"github.com/dkrylov/go-data-vault/models"
)

type record struct {
	Diagnosis string `json:"diagnosis"`
	Year      int    `json:"year"`
}

func newTestVault(t *testing.T, backend adapter.StorageBackend, secret string, opts ...Option) Vault {
	t.Helper()
	s := signer.NewHMACSigner([]byte(secret))
	dir := directory.New(backend, logger.Nop())
	return New(Config{ScopeID: "test-scope"}, s, backend, dir, logger.Nop(), opts...)
}

func unlockedVault(t *testing.T, backend adapter.StorageBackend, secret string) Vault {
	t.Helper()
	v := newTestVault(t, backend, secret)
	require.NoError(t, v.Unlock(context.Background()))
	return v
}

func TestVault_LockedOperationsFail(t *testing.T) {
	ctx := context.Background()
	v := newTestVault(t, adapter.NewMemoryBackend(), "alice")

	assert.False(t, v.Unlocked())
	assert.Nil(t, v.PublicKey())

	var out record
	require.ErrorIs(t, v.Put(ctx, "k", record{}), ErrVaultLocked)
	require.ErrorIs(t, v.Get(ctx, "k", &out), ErrVaultLocked)
	require.ErrorIs(t, v.Delete(ctx, "k"), ErrVaultLocked)
	_, err := v.List(ctx)
	require.ErrorIs(t, err, ErrVaultLocked)
	_, err = v.Head(ctx, "k")
	require.ErrorIs(t, err, ErrVaultLocked)
	require.ErrorIs(t, v.Grant(ctx, "k", models.NewPrincipal([]byte("bob"))), ErrVaultLocked)
	require.ErrorIs(t, v.PublishIdentity(ctx), ErrVaultLocked)
}

func TestVault_UnlockLockLifecycle(t *testing.T) {
	ctx := context.Background()
	v := newTestVault(t, adapter.NewMemoryBackend(), "alice")

	require.NoError(t, v.Unlock(ctx))
	assert.True(t, v.Unlocked())
	assert.Len(t, v.PublicKey(), 32)

	// Idempotent while unlocked.
	require.NoError(t, v.Unlock(ctx))

	v.Lock()
	assert.False(t, v.Unlocked())

	var out record
	require.ErrorIs(t, v.Get(ctx, "k", &out), ErrVaultLocked)

	// Unlock again works after a lock.
	require.NoError(t, v.Unlock(ctx))
	assert.True(t, v.Unlocked())
}

func TestVault_UnlockPublishesIdentity(t *testing.T) {
	ctx := context.Background()
	backend := adapter.NewMemoryBackend()
	v := unlockedVault(t, backend, "alice")

	rec, err := v.ResolvePublicKey(ctx, v.Principal())
	require.NoError(t, err)
	assert.Equal(t, v.PublicKey(), rec.PublicKey)
	assert.Equal(t, models.ProtocolVersion, rec.Version)
	assert.Equal(t, v.Principal().Address, rec.Space)
}

func TestVault_PutGetRoundtrip(t *testing.T) {
	ctx := context.Background()
	v := unlockedVault(t, adapter.NewMemoryBackend(), "alice")

	want := record{Diagnosis: "healthy", Year: 2026}
	require.NoError(t, v.Put(ctx, "medical/2026", want))

	var got record
	require.NoError(t, v.Get(ctx, "medical/2026", &got))
	assert.Equal(t, want, got)
}

func TestVault_PutGetRawBytes(t *testing.T) {
	ctx := context.Background()
	v := unlockedVault(t, adapter.NewMemoryBackend(), "alice")

	require.NoError(t, v.Put(ctx, "blob", []byte{0, 1, 2, 255}))

	var got []byte
	require.NoError(t, v.Get(ctx, "blob", &got))
	assert.Equal(t, []byte{0, 1, 2, 255}, got)

	meta, err := v.Head(ctx, "blob")
	require.NoError(t, err)
	assert.Equal(t, models.ContentTypeBytes, meta[models.HeaderContentType])
}

func TestVault_PutWithCBOR(t *testing.T) {
	ctx := context.Background()
	v := unlockedVault(t, adapter.NewMemoryBackend(), "alice")

	want := record{Diagnosis: "cbor", Year: 1}
	require.NoError(t, v.Put(ctx, "k", want, WithContentType(models.ContentTypeCBOR)))

	meta, err := v.Head(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, models.ContentTypeCBOR, meta[models.HeaderContentType])

	var got record
	require.NoError(t, v.Get(ctx, "k", &got))
	assert.Equal(t, want, got)
}

func TestVault_CiphertextOnlyInStorage(t *testing.T) {
	ctx := context.Background()
	backend := adapter.NewMemoryBackend()
	v := unlockedVault(t, backend, "alice")

	require.NoError(t, v.Put(ctx, "secret", record{Diagnosis: "plaintext-marker"}))

	obj, err := backend.Get(ctx, v.Principal().Address, "vault/secret")
	require.NoError(t, err)
	assert.NotContains(t, string(obj.Data), "plaintext-marker")

	obj, err = backend.Get(ctx, v.Principal().Address, "keys/secret")
	require.NoError(t, err)
	assert.NotContains(t, string(obj.Data), "plaintext-marker")
}

func TestVault_HeadMetadata(t *testing.T) {
	ctx := context.Background()
	v := unlockedVault(t, adapter.NewMemoryBackend(), "alice")

	require.NoError(t, v.Put(ctx, "k", record{}))

	meta, err := v.Head(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, models.ProtocolVersion, meta[models.HeaderVersion])
	assert.Equal(t, models.CipherAES256GCM, meta[models.HeaderCipher])
	assert.Equal(t, models.KDFHKDFSHA256, meta[models.HeaderKDF])
	assert.Equal(t, models.RotationPerWrite, meta[models.HeaderKeyRotation])
	assert.Len(t, meta[models.HeaderKeyID], 16)
}

func TestVault_EveryWriteRotatesEntryKey(t *testing.T) {
	ctx := context.Background()
	v := unlockedVault(t, adapter.NewMemoryBackend(), "alice")

	require.NoError(t, v.Put(ctx, "k", record{Year: 1}))
	meta1, err := v.Head(ctx, "k")
	require.NoError(t, err)

	require.NoError(t, v.Put(ctx, "k", record{Year: 2}))
	meta2, err := v.Head(ctx, "k")
	require.NoError(t, err)

	assert.NotEqual(t, meta1[models.HeaderKeyID], meta2[models.HeaderKeyID])
}

func TestVault_RederivableAcrossInstances(t *testing.T) {
	ctx := context.Background()
	backend := adapter.NewMemoryBackend()

	first := unlockedVault(t, backend, "alice")
	require.NoError(t, first.Put(ctx, "k", record{Diagnosis: "persisted"}))
	first.Lock()

	// A brand-new instance over the same signer recovers everything.
	second := unlockedVault(t, backend, "alice")
	var got record
	require.NoError(t, second.Get(ctx, "k", &got))
	assert.Equal(t, "persisted", got.Diagnosis)
}

func TestVault_ScopeSeparation(t *testing.T) {
	ctx := context.Background()
	backend := adapter.NewMemoryBackend()
	s := signer.NewHMACSigner([]byte("alice"))
	dir := directory.New(backend, logger.Nop())

	work := New(Config{ScopeID: "work"}, s, backend, dir, logger.Nop())
	personal := New(Config{ScopeID: "personal"}, s, backend, dir, logger.Nop())
	require.NoError(t, work.Unlock(ctx))
	require.NoError(t, personal.Unlock(ctx))

	require.NoError(t, work.Put(ctx, "k", record{Diagnosis: "work-only"}))

	// Same signer, same space, different scope: the master keys differ.
	var got record
	require.ErrorIs(t, personal.Get(ctx, "k", &got), ErrDecryptionFailed)
}

func TestVault_WrongSignerCannotDecrypt(t *testing.T) {
	ctx := context.Background()
	backend := adapter.NewMemoryBackend()

	alice := unlockedVault(t, backend, "alice")
	require.NoError(t, alice.Put(ctx, "k", record{Diagnosis: "private"}))

	// Mallory points her vault at alice's space. The objects are readable,
	// the plaintext is not.
	s := signer.NewHMACSigner([]byte("mallory"))
	dir := directory.New(backend, logger.Nop())
	mallory := New(Config{ScopeID: "test-scope", Space: alice.Principal().Address}, s, backend, dir, logger.Nop())
	require.NoError(t, mallory.Unlock(ctx))

	var got record
	require.ErrorIs(t, mallory.Get(ctx, "k", &got), ErrDecryptionFailed)
}

func TestVault_GetMissingKey(t *testing.T) {
	ctx := context.Background()
	v := unlockedVault(t, adapter.NewMemoryBackend(), "alice")

	var got record
	require.ErrorIs(t, v.Get(ctx, "absent", &got), ErrKeyNotFound)
	_, err := v.Head(ctx, "absent")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestVault_TamperedCiphertext(t *testing.T) {
	ctx := context.Background()
	backend := adapter.NewMemoryBackend()
	v := unlockedVault(t, backend, "alice")
	space := v.Principal().Address

	require.NoError(t, v.Put(ctx, "k", record{Diagnosis: "intact"}))

	obj, err := backend.Get(ctx, space, "vault/k")
	require.NoError(t, err)
	var envelope models.VaultEnvelope
	require.NoError(t, json.Unmarshal(obj.Data, &envelope))

	blob, err := base64.StdEncoding.DecodeString(envelope.Data)
	require.NoError(t, err)
	blob[len(blob)-1] ^= 0xFF
	envelope.Data = base64.StdEncoding.EncodeToString(blob)

	tampered, err := json.Marshal(envelope)
	require.NoError(t, err)
	require.NoError(t, backend.Put(ctx, space, "vault/k", models.StoredObject{Data: tampered, ContentType: models.ContentTypeJSON}))

	var got record
	require.ErrorIs(t, v.Get(ctx, "k", &got), ErrDecryptionFailed)
}

// An entry written with a content type this client does not recognize is
// still readable as raw bytes; the codec is never guessed.
func TestVault_UnknownContentTypeFallsBackToRaw(t *testing.T) {
	ctx := context.Background()
	backend := adapter.NewMemoryBackend()
	v := unlockedVault(t, backend, "alice")
	space := v.Principal().Address

	require.NoError(t, v.Put(ctx, "k", []byte("opaque payload")))

	obj, err := backend.Get(ctx, space, "vault/k")
	require.NoError(t, err)
	var envelope models.VaultEnvelope
	require.NoError(t, json.Unmarshal(obj.Data, &envelope))

	envelope.Metadata[models.HeaderContentType] = "application/x-future-format"
	relabeled, err := json.Marshal(envelope)
	require.NoError(t, err)
	require.NoError(t, backend.Put(ctx, space, "vault/k", models.StoredObject{Data: relabeled, ContentType: models.ContentTypeJSON}))

	var raw []byte
	require.NoError(t, v.Get(ctx, "k", &raw))
	assert.Equal(t, []byte("opaque payload"), raw)
}

func TestVault_SwappedEnvelopeFailsIntegrity(t *testing.T) {
	ctx := context.Background()
	backend := adapter.NewMemoryBackend()
	v := unlockedVault(t, backend, "alice")
	space := v.Principal().Address

	require.NoError(t, v.Put(ctx, "a", record{Diagnosis: "a"}))
	require.NoError(t, v.Put(ctx, "b", record{Diagnosis: "b"}))

	// Substitute b's envelope under a's path. Both decrypt fine in
	// isolation, but a's key blob no longer matches the envelope's key id.
	objB, err := backend.Get(ctx, space, "vault/b")
	require.NoError(t, err)
	require.NoError(t, backend.Put(ctx, space, "vault/a", objB))

	var got record
	require.ErrorIs(t, v.Get(ctx, "a", &got), ErrIntegrity)
}

func TestVault_DeleteRemovesEverything(t *testing.T) {
	ctx := context.Background()
	backend := adapter.NewMemoryBackend()
	alice := unlockedVault(t, backend, "alice")
	bob := unlockedVault(t, backend, "bob")

	require.NoError(t, alice.Put(ctx, "k", record{}))
	require.NoError(t, alice.Grant(ctx, "k", bob.Principal()))

	require.NoError(t, alice.Delete(ctx, "k"))

	var got record
	require.ErrorIs(t, alice.Get(ctx, "k", &got), ErrKeyNotFound)

	grants, err := alice.ListGrants(ctx)
	require.NoError(t, err)
	assert.Empty(t, grants)

	require.ErrorIs(t, alice.Delete(ctx, "k"), ErrKeyNotFound)
}

func TestVault_ListKeys(t *testing.T) {
	ctx := context.Background()
	v := unlockedVault(t, adapter.NewMemoryBackend(), "alice")

	require.NoError(t, v.Put(ctx, "medical/2025", record{}))
	require.NoError(t, v.Put(ctx, "medical/2026", record{}))
	require.NoError(t, v.Put(ctx, "notes", record{}))

	keys, err := v.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"medical/2025", "medical/2026", "notes"}, keys)
}

func TestVault_ValidatesKeys(t *testing.T) {
	ctx := context.Background()
	v := unlockedVault(t, adapter.NewMemoryBackend(), "alice")

	require.Error(t, v.Put(ctx, "", record{}))
	require.Error(t, v.Put(ctx, "/leading", record{}))
	require.Error(t, v.Put(ctx, "trailing/", record{}))
}
