// Package http implements the storage backend's HTTP transport layer.
//
// It exposes the REST surface the vault client speaks: session issuance,
// space-scoped object CRUD with prefix listing, and the public anyone-can-read
// area used for key discovery. Tracing, logging, and session-token
// authentication are handled by middleware before requests reach the
// repository.
package http
