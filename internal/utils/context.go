// Package utils provides general-purpose helper utilities used across
// different parts of the application: type-safe context keys, JWT session
// token generation and validation, HMAC hashing, HTTP response writing, and
// trace id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys. Using a dedicated type
// instead of a plain string prevents key collisions with other packages that
// may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// SpaceCtxKey is the key used to store the authenticated space name in the
// context. Used together with GetSpaceFromContext for type-safe retrieval.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.SpaceCtxKey, "addr1")
var SpaceCtxKey = contextKey("space")

// GetSpaceFromContext retrieves the authenticated space name from the
// context.
//
// Returns the space name and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
func GetSpaceFromContext(ctx context.Context) (string, bool) {
	space, ok := ctx.Value(SpaceCtxKey).(string)
	return space, ok
}
