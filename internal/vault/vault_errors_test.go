package vault

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dkrylov/go-data-vault/internal/directory"
	"github.com/dkrylov/go-data-vault/internal/logger"
	"github.com/dkrylov/go-data-vault/internal/mock"
	"github.com/dkrylov/go-data-vault/internal/signer"
	"github.com/dkrylov/go-data-vault/models"
)

var errBackendDown = errors.New("backend down")

func TestVault_UnlockFailsWhenSignerFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSigner := mock.NewMockSigner(ctrl)
	mockSigner.EXPECT().Principal().Return(models.NewPrincipal([]byte("x"))).AnyTimes()
	mockSigner.EXPECT().Sign(gomock.Any()).Return(nil, errors.New("wallet refused"))

	backend := mock.NewMockStorageBackend(ctrl)
	v := New(Config{ScopeID: "s"}, mockSigner, backend, directory.New(backend, logger.Nop()), logger.Nop())

	require.Error(t, v.Unlock(context.Background()))
	assert.False(t, v.Unlocked())
}

func TestVault_UnlockFailsWhenPublishFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := mock.NewMockDirectory(ctrl)
	dir.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(errBackendDown)

	s := signer.NewHMACSigner([]byte("alice"))
	backend := mock.NewMockStorageBackend(ctrl)
	v := New(Config{ScopeID: "s"}, s, backend, dir, logger.Nop())

	err := v.Unlock(context.Background())
	require.ErrorIs(t, err, errBackendDown)

	// A failed unlock must retain no key material.
	assert.False(t, v.Unlocked())
	assert.Nil(t, v.PublicKey())
}

func TestVault_PutMapsBackendFailureToStorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	dir := mock.NewMockDirectory(ctrl)
	dir.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	backend := mock.NewMockStorageBackend(ctrl)
	backend.EXPECT().Put(gomock.Any(), gomock.Any(), "keys/k", gomock.Any()).Return(errBackendDown)

	s := signer.NewHMACSigner([]byte("alice"))
	v := New(Config{ScopeID: "s"}, s, backend, dir, logger.Nop())
	require.NoError(t, v.Unlock(ctx))

	err := v.Put(ctx, "k", record{})
	require.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, CodeStorageError, Code(err))
}

func TestVault_GetMapsBackendFailureToStorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	dir := mock.NewMockDirectory(ctrl)
	dir.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	backend := mock.NewMockStorageBackend(ctrl)
	backend.EXPECT().Get(gomock.Any(), gomock.Any(), "keys/k").Return(models.StoredObject{}, errBackendDown)

	s := signer.NewHMACSigner([]byte("alice"))
	v := New(Config{ScopeID: "s"}, s, backend, dir, logger.Nop())
	require.NoError(t, v.Unlock(ctx))

	var got record
	require.ErrorIs(t, v.Get(ctx, "k", &got), ErrStorage)
}

func TestVault_MalformedStoredObjectIsIntegrityError(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	dir := mock.NewMockDirectory(ctrl)
	dir.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	backend := mock.NewMockStorageBackend(ctrl)
	backend.EXPECT().Get(gomock.Any(), gomock.Any(), "keys/k").
		Return(models.StoredObject{Data: []byte("not json")}, nil)

	s := signer.NewHMACSigner([]byte("alice"))
	v := New(Config{ScopeID: "s"}, s, backend, dir, logger.Nop())
	require.NoError(t, v.Unlock(ctx))

	var got record
	err := v.Get(ctx, "k", &got)
	require.ErrorIs(t, err, ErrIntegrity)
	assert.Equal(t, CodeIntegrityError, Code(err))
}

func TestCode_Taxonomy(t *testing.T) {
	assert.Equal(t, "", Code(nil))
	assert.Equal(t, CodeVaultLocked, Code(ErrVaultLocked))
	assert.Equal(t, CodeDecryptionFailed, Code(ErrDecryptionFailed))
	assert.Equal(t, CodeKeyNotFound, Code(ErrKeyNotFound))
	assert.Equal(t, CodeGrantNotFound, Code(ErrGrantNotFound))
	assert.Equal(t, CodePublicKeyNotFound, Code(ErrPublicKeyNotFound))
	assert.Equal(t, CodeIntegrityError, Code(ErrIntegrity))
	assert.Equal(t, CodeStorageError, Code(ErrStorage))
	assert.Equal(t, CodeInternalError, Code(errors.New("anything else")))
}
