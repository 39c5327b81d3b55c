// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a Workers aggregate that runs multiple
// workers in a unified way, and the republish worker that keeps a vault's
// encryption public key discoverable.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// It defines a single Run method that starts the worker's execution.
//
// Implementations are expected to block for the duration of their work
// or spawn goroutines internally.
type Worker interface {
	Run()
}

// IdentityPublisher is the slice of the vault surface the republish worker
// needs: a lock check and the publish operation itself.
type IdentityPublisher interface {
	// Unlocked reports whether key material is currently available.
	Unlocked() bool

	// PublishIdentity writes the encryption public key and discovery
	// records to the public area.
	PublishIdentity(ctx context.Context) error
}
