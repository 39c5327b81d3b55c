package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dkrylov/go-data-vault/internal/logger"
	"github.com/dkrylov/go-data-vault/models"
)

// objectRepository is the SQL-backed implementation of [ObjectRepository].
// It executes all object CRUD operations against the "vault_objects" table
// using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (space, path, etc.).
type objectRepository struct {
	*DB
	logger *logger.Logger
}

// NewObjectRepository constructs an [ObjectRepository] backed by the provided
// database connection and logger.
func NewObjectRepository(db *DB, logger *logger.Logger) ObjectRepository {
	return &objectRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *objectRepository) SaveObject(ctx context.Context, space, path string, obj models.StoredObject) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertObjectQuery(r.placeholder, space, path, obj, time.Now().UTC())
	if err != nil {
		log.Err(err).
			Str("func", "objectRepository.SaveObject").
			Str("space", space).
			Str("path", path).
			Msg("failed to build upsert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "objectRepository.SaveObject").
			Str("space", space).
			Str("path", path).
			Msg("failed to execute upsert")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *objectRepository) GetObject(ctx context.Context, space, path string) (models.StoredObject, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectObjectQuery(r.placeholder, space, path)
	if err != nil {
		log.Err(err).
			Str("func", "objectRepository.GetObject").
			Str("space", space).
			Str("path", path).
			Msg("failed to build select query")
		return models.StoredObject{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var obj models.StoredObject
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&obj.Data, &obj.ContentType)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StoredObject{}, ErrObjectNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "objectRepository.GetObject").
			Str("space", space).
			Str("path", path).
			Msg("failed to query stored object")
		return models.StoredObject{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return obj, nil
}

func (r *objectRepository) DeleteObject(ctx context.Context, space, path string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteObjectQuery(r.placeholder, space, path)
	if err != nil {
		log.Err(err).
			Str("func", "objectRepository.DeleteObject").
			Str("space", space).
			Str("path", path).
			Msg("failed to build delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "objectRepository.DeleteObject").
			Str("space", space).
			Str("path", path).
			Msg("failed to execute delete")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrObjectNotFound
	}

	return nil
}

func (r *objectRepository) ListObjects(ctx context.Context, space, prefix string) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListObjectsQuery(r.placeholder, space, prefix)
	if err != nil {
		log.Err(err).
			Str("func", "objectRepository.ListObjects").
			Str("space", space).
			Str("prefix", prefix).
			Msg("failed to build list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "objectRepository.ListObjects").
			Str("space", space).
			Str("prefix", prefix).
			Msg("failed to execute list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	paths := make([]string, 0, 16)
	for rows.Next() {
		var path string
		if scanErr := rows.Scan(&path); scanErr != nil {
			log.Err(scanErr).
				Str("func", "objectRepository.ListObjects").
				Str("space", space).
				Msg("failed to scan stored object row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		paths = append(paths, strings.TrimPrefix(path, prefix))
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "objectRepository.ListObjects").
			Str("space", space).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, rowsErr)
	}

	return paths, nil
}
