// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Krylov

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrSpaceMismatch is returned when a write targets a space other than
	// the one the presented session token is bound to.
	ErrSpaceMismatch = errors.New("session token is bound to a different space")
)
