package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/dkrylov/go-data-vault/models"
)

const objectsTable = "vault_objects"

func buildUpsertObjectQuery(pf sq.PlaceholderFormat, space, path string, obj models.StoredObject, now time.Time) (string, []any, error) {
	return sq.Insert(objectsTable).
		Columns("space", "path", "data", "content_type", "updated_at").
		Values(space, path, obj.Data, obj.ContentType, now).
		Suffix("ON CONFLICT (space, path) DO UPDATE SET data = excluded.data, content_type = excluded.content_type, updated_at = excluded.updated_at").
		PlaceholderFormat(pf).
		ToSql()
}

func buildSelectObjectQuery(pf sq.PlaceholderFormat, space, path string) (string, []any, error) {
	return sq.Select("data", "content_type").
		From(objectsTable).
		Where(sq.Eq{"space": space}).
		Where(sq.Eq{"path": path}).
		PlaceholderFormat(pf).
		ToSql()
}

func buildDeleteObjectQuery(pf sq.PlaceholderFormat, space, path string) (string, []any, error) {
	return sq.Delete(objectsTable).
		Where(sq.Eq{"space": space}).
		Where(sq.Eq{"path": path}).
		PlaceholderFormat(pf).
		ToSql()
}

func buildListObjectsQuery(pf sq.PlaceholderFormat, space, prefix string) (string, []any, error) {
	return sq.Select("path").
		From(objectsTable).
		Where(sq.Eq{"space": space}).
		Where(sq.Expr(`path LIKE ? ESCAPE '\'`, likePrefixPattern(prefix))).
		OrderBy("path").
		PlaceholderFormat(pf).
		ToSql()
}

// likePrefixPattern escapes LIKE metacharacters in prefix so paths containing
// underscores or percent signs match literally.
func likePrefixPattern(prefix string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	return escaped + "%"
}
