package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrylov/go-data-vault/models"
)

func TestMemoryBackend_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryBackend()

	obj := models.StoredObject{Data: []byte(`{"data":"x"}`), ContentType: "application/json"}
	require.NoError(t, m.Put(ctx, "alice", "vault/notes", obj))

	got, err := m.Get(ctx, "alice", "vault/notes")
	require.NoError(t, err)
	assert.Equal(t, obj, got)

	_, err = m.Get(ctx, "bob", "vault/notes")
	require.ErrorIs(t, err, ErrObjectNotFound)

	require.NoError(t, m.Delete(ctx, "alice", "vault/notes"))
	_, err = m.Get(ctx, "alice", "vault/notes")
	require.ErrorIs(t, err, ErrObjectNotFound)

	require.ErrorIs(t, m.Delete(ctx, "alice", "vault/notes"), ErrObjectNotFound)
}

func TestMemoryBackend_ListStripsPrefix(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryBackend()

	for _, path := range []string{"keys/a", "keys/b/c", "vault/a"} {
		require.NoError(t, m.Put(ctx, "alice", path, models.StoredObject{Data: []byte("x")}))
	}

	paths, err := m.List(ctx, "alice", "keys/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b/c"}, paths)

	paths, err = m.List(ctx, "alice", "grants/")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestMemoryBackend_PublicArea(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryBackend()

	_, err := m.PublicGet(ctx, "addr1", models.WellKnownPublicKey)
	require.ErrorIs(t, err, ErrObjectNotFound)

	require.NoError(t, m.PublicPut(ctx, "addr1", models.WellKnownPublicKey, []byte{1, 2, 3}))

	data, err := m.PublicGet(ctx, "addr1", models.WellKnownPublicKey)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestMemoryBackend_CopiesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryBackend()

	src := []byte("original")
	require.NoError(t, m.Put(ctx, "alice", "vault/k", models.StoredObject{Data: src}))
	src[0] = 'X'

	got, err := m.Get(ctx, "alice", "vault/k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got.Data)

	got.Data[0] = 'Y'
	again, err := m.Get(ctx, "alice", "vault/k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again.Data)
}
