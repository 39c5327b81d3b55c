package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/dkrylov/go-data-vault/internal/logger"
	"github.com/dkrylov/go-data-vault/migrations"
)

// DB wraps a database handle together with its dialect-specific pieces: the
// placeholder format the query builders need and the error classifier used to
// decide whether a failed operation is worth retrying.
type DB struct {
	*sql.DB
	dialect            string
	placeholder        sq.PlaceholderFormat
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}
