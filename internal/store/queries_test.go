// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Krylov

package store

import (
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrylov/go-data-vault/models"
)

func Test_buildUpsertObjectQuery_SQLContainsParts(t *testing.T) {
	obj := models.StoredObject{Data: []byte("cipher"), ContentType: "application/json"}
	now := time.Now().UTC()

	query, args, err := buildUpsertObjectQuery(sq.Dollar, "alice", "vault/k", obj, now)
	require.NoError(t, err)

	// args checks
	require.Len(t, args, 5)
	require.Equal(t, "alice", args[0])
	require.Equal(t, "vault/k", args[1])
	require.Equal(t, []byte("cipher"), args[2])
	require.Equal(t, "application/json", args[3])
	require.Equal(t, now, args[4])

	// query checks (contains parts)
	q := strings.ToLower(query)

	require.Contains(t, q, "insert into vault_objects")
	require.Contains(t, q, "on conflict (space, path) do update")
	require.Contains(t, q, "excluded.data")
	require.Contains(t, q, "excluded.content_type")

	// placeholder format should be $1 (Postgres)
	require.Contains(t, query, "$1")
}

func Test_buildSelectObjectQuery(t *testing.T) {
	query, args, err := buildSelectObjectQuery(sq.Dollar, "alice", "keys/k")
	require.NoError(t, err)

	require.Equal(t, []any{"alice", "keys/k"}, args)

	q := strings.ToLower(query)
	require.Contains(t, q, "select data, content_type")
	require.Contains(t, q, "from vault_objects")
	require.Contains(t, q, "space = $1")
	require.Contains(t, q, "path = $2")
}

func Test_buildDeleteObjectQuery(t *testing.T) {
	query, args, err := buildDeleteObjectQuery(sq.Question, "alice", "keys/k")
	require.NoError(t, err)

	require.Equal(t, []any{"alice", "keys/k"}, args)

	q := strings.ToLower(query)
	require.Contains(t, q, "delete from vault_objects")
	require.Contains(t, q, "space = ?")
	require.Contains(t, q, "path = ?")
}

func Test_buildListObjectsQuery(t *testing.T) {
	query, args, err := buildListObjectsQuery(sq.Dollar, "alice", "grants/")
	require.NoError(t, err)

	require.Len(t, args, 2)
	require.Equal(t, "alice", args[0])
	require.Equal(t, `grants/%`, args[1])

	q := strings.ToLower(query)
	require.Contains(t, q, "select path")
	require.Contains(t, q, "path like")
	require.Contains(t, q, "order by path")
}

func Test_likePrefixPattern_EscapesMetacharacters(t *testing.T) {
	assert.Equal(t, `vault/%`, likePrefixPattern("vault/"))
	assert.Equal(t, `a\_b%`, likePrefixPattern("a_b"))
	assert.Equal(t, `a\%b%`, likePrefixPattern("a%b"))
	assert.Equal(t, `a\\b%`, likePrefixPattern(`a\b`))
}
