package directory

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrylov/go-data-vault/internal/adapter"
	"github.com/dkrylov/go-data-vault/internal/logger"
	"github.com/dkrylov/go-data-vault/models"
)

func TestDirectory_PublishResolve(t *testing.T) {
	ctx := context.Background()
	backend := adapter.NewMemoryBackend()
	dir := New(backend, logger.Nop())

	principal := models.NewPrincipal([]byte("alice-signing-key"))
	rec := models.PublicKeyRecord{
		PublicKey: bytes.Repeat([]byte{7}, 32),
		Version:   models.ProtocolVersion,
		Space:     principal.Address,
	}

	require.NoError(t, dir.Publish(ctx, principal, rec))

	got, err := dir.Resolve(ctx, principal)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestDirectory_PublishIsIdempotent(t *testing.T) {
	ctx := context.Background()
	backend := adapter.NewMemoryBackend()
	dir := New(backend, logger.Nop())

	principal := models.NewPrincipal([]byte("alice-signing-key"))
	rec := models.PublicKeyRecord{PublicKey: bytes.Repeat([]byte{7}, 32), Version: "1"}

	require.NoError(t, dir.Publish(ctx, principal, rec))
	require.NoError(t, dir.Publish(ctx, principal, rec))

	got, err := dir.Resolve(ctx, principal)
	require.NoError(t, err)
	assert.Equal(t, rec.PublicKey, got.PublicKey)
}

func TestDirectory_PublishRejectsBadKeyLength(t *testing.T) {
	dir := New(adapter.NewMemoryBackend(), logger.Nop())
	principal := models.NewPrincipal([]byte("alice"))

	err := dir.Publish(context.Background(), principal, models.PublicKeyRecord{PublicKey: []byte("short")})
	require.Error(t, err)
}

func TestDirectory_ResolveUnknownPrincipal(t *testing.T) {
	dir := New(adapter.NewMemoryBackend(), logger.Nop())
	principal := models.NewPrincipal([]byte("nobody"))

	_, err := dir.Resolve(context.Background(), principal)
	require.ErrorIs(t, err, ErrPublicKeyNotFound)
}

func TestDirectory_ResolveMalformedKey(t *testing.T) {
	ctx := context.Background()
	backend := adapter.NewMemoryBackend()
	dir := New(backend, logger.Nop())

	principal := models.NewPrincipal([]byte("mallory"))
	require.NoError(t, backend.PublicPut(ctx, principal.Address, models.WellKnownPublicKey, []byte("truncated")))

	_, err := dir.Resolve(ctx, principal)
	require.ErrorIs(t, err, ErrPublicKeyNotFound)
}

func TestDirectory_ResolveWithoutAdvisoryObjects(t *testing.T) {
	ctx := context.Background()
	backend := adapter.NewMemoryBackend()
	dir := New(backend, logger.Nop())

	principal := models.NewPrincipal([]byte("bob"))
	key := bytes.Repeat([]byte{3}, 32)
	require.NoError(t, backend.PublicPut(ctx, principal.Address, models.WellKnownPublicKey, key))

	got, err := dir.Resolve(ctx, principal)
	require.NoError(t, err)
	assert.Equal(t, key, got.PublicKey)
	assert.Empty(t, got.Version)
	assert.Empty(t, got.Space)
}
