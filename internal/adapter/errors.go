package adapter

import "errors"

var (
	// ErrObjectNotFound is returned when a path has no stored object. Callers
	// map this to their own not-found taxonomy (key, grant, public key).
	ErrObjectNotFound = errors.New("object not found")

	// ErrUnauthorized is returned when the storage capability is missing,
	// expired, or insufficient for the requested space.
	ErrUnauthorized = errors.New("storage capability rejected")
)
