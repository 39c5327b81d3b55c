// Package store holds the reference backend's persistence layer: stored
// objects addressed by (space, path), backed by PostgreSQL or SQLite.
package store

import (
	"context"

	"github.com/dkrylov/go-data-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ObjectRepository persists opaque objects. The backend never interprets the
// data column; everything it stores is ciphertext or public key material the
// clients produced.
type ObjectRepository interface {
	// SaveObject inserts or overwrites the object at (space, path).
	SaveObject(ctx context.Context, space, path string, obj models.StoredObject) error

	// GetObject returns the object at (space, path) or ErrObjectNotFound.
	GetObject(ctx context.Context, space, path string) (models.StoredObject, error)

	// DeleteObject removes the object at (space, path) or returns
	// ErrObjectNotFound when there is nothing to remove.
	DeleteObject(ctx context.Context, space, path string) error

	// ListObjects returns the paths under prefix in space, sorted, with the
	// prefix stripped.
	ListObjects(ctx context.Context, space, prefix string) ([]string, error)
}
