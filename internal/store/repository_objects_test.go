package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrylov/go-data-vault/internal/logger"
	"github.com/dkrylov/go-data-vault/models"
)

func newMockRepository(t *testing.T) (ObjectRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db := &DB{
		DB:          conn,
		dialect:     "postgres",
		placeholder: sq.Dollar,
		logger:      logger.Nop(),
	}
	return NewObjectRepository(db, logger.Nop()), mock
}

func TestObjectRepository_SaveObject(t *testing.T) {
	repo, mock := newMockRepository(t)
	obj := models.StoredObject{Data: []byte("cipher"), ContentType: "application/json"}

	query, _, err := buildUpsertObjectQuery(sq.Dollar, "alice", "vault/k", obj, time.Now().UTC())
	require.NoError(t, err)

	mock.ExpectExec(query).
		WithArgs("alice", "vault/k", obj.Data, obj.ContentType, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveObject(context.Background(), "alice", "vault/k", obj))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestObjectRepository_GetObject(t *testing.T) {
	repo, mock := newMockRepository(t)

	query, _, err := buildSelectObjectQuery(sq.Dollar, "alice", "vault/k")
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"data", "content_type"}).
		AddRow([]byte("cipher"), "application/json")
	mock.ExpectQuery(query).WithArgs("alice", "vault/k").WillReturnRows(rows)

	obj, err := repo.GetObject(context.Background(), "alice", "vault/k")
	require.NoError(t, err)
	assert.Equal(t, []byte("cipher"), obj.Data)
	assert.Equal(t, "application/json", obj.ContentType)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestObjectRepository_GetObject_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	query, _, err := buildSelectObjectQuery(sq.Dollar, "alice", "vault/missing")
	require.NoError(t, err)

	mock.ExpectQuery(query).
		WithArgs("alice", "vault/missing").
		WillReturnRows(sqlmock.NewRows([]string{"data", "content_type"}))

	_, err = repo.GetObject(context.Background(), "alice", "vault/missing")
	require.ErrorIs(t, err, ErrObjectNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestObjectRepository_DeleteObject(t *testing.T) {
	repo, mock := newMockRepository(t)

	query, _, err := buildDeleteObjectQuery(sq.Dollar, "alice", "vault/k")
	require.NoError(t, err)

	mock.ExpectExec(query).WithArgs("alice", "vault/k").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.DeleteObject(context.Background(), "alice", "vault/k"))

	mock.ExpectExec(query).WithArgs("alice", "vault/k").WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.DeleteObject(context.Background(), "alice", "vault/k"), ErrObjectNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestObjectRepository_ListObjects(t *testing.T) {
	repo, mock := newMockRepository(t)

	query, _, err := buildListObjectsQuery(sq.Dollar, "alice", "vault/")
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"path"}).
		AddRow("vault/medical/2026").
		AddRow("vault/notes")
	mock.ExpectQuery(query).WithArgs("alice", `vault/%`).WillReturnRows(rows)

	paths, err := repo.ListObjects(context.Background(), "alice", "vault/")
	require.NoError(t, err)
	assert.Equal(t, []string{"medical/2026", "notes"}, paths)
	require.NoError(t, mock.ExpectationsWereMet())
}
