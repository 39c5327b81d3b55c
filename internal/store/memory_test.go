package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrylov/go-data-vault/models"
)

func TestMemoryObjectRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryObjectRepository()

	obj := models.StoredObject{Data: []byte("cipher"), ContentType: "application/json"}
	require.NoError(t, repo.SaveObject(ctx, "alice", "vault/k", obj))

	got, err := repo.GetObject(ctx, "alice", "vault/k")
	require.NoError(t, err)
	assert.Equal(t, obj, got)

	// Overwrite replaces the stored value.
	obj2 := models.StoredObject{Data: []byte("cipher2")}
	require.NoError(t, repo.SaveObject(ctx, "alice", "vault/k", obj2))
	got, err = repo.GetObject(ctx, "alice", "vault/k")
	require.NoError(t, err)
	assert.Equal(t, []byte("cipher2"), got.Data)

	require.NoError(t, repo.DeleteObject(ctx, "alice", "vault/k"))
	_, err = repo.GetObject(ctx, "alice", "vault/k")
	require.ErrorIs(t, err, ErrObjectNotFound)
	require.ErrorIs(t, repo.DeleteObject(ctx, "alice", "vault/k"), ErrObjectNotFound)
}

func TestMemoryObjectRepository_ListStripsPrefixAndSorts(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryObjectRepository()

	for _, path := range []string{"vault/b", "vault/a", "keys/a"} {
		require.NoError(t, repo.SaveObject(ctx, "alice", path, models.StoredObject{Data: []byte("x")}))
	}

	paths, err := repo.ListObjects(ctx, "alice", "vault/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, paths)

	paths, err = repo.ListObjects(ctx, "bob", "vault/")
	require.NoError(t, err)
	assert.Empty(t, paths)
}
