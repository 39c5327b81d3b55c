package vault

import (
	"errors"

	"github.com/dkrylov/go-data-vault/internal/crypto"
	"github.com/dkrylov/go-data-vault/internal/directory"
)

var (
	// ErrVaultLocked is returned by every operation that needs key material
	// before Unlock has succeeded (or after Lock).
	ErrVaultLocked = errors.New("vault is locked")

	// ErrKeyNotFound is returned when no entry exists under the requested key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrGrantNotFound is returned when no grant exists for the requested
	// recipient and key.
	ErrGrantNotFound = errors.New("grant not found")

	// ErrIntegrity is returned when stored objects contradict each other, such
	// as an envelope whose key ID does not match the key blob beside it.
	ErrIntegrity = errors.New("integrity check failed")

	// ErrStorage wraps backend failures that are not a simple not-found.
	ErrStorage = errors.New("storage operation failed")

	// ErrDecryptionFailed aliases the crypto sentinel so callers can match it
	// without importing the crypto package.
	ErrDecryptionFailed = crypto.ErrDecryptionFailed

	// ErrPublicKeyNotFound aliases the directory sentinel.
	ErrPublicKeyNotFound = directory.ErrPublicKeyNotFound
)

// Stable error codes surfaced to CLI output and API consumers.
const (
	CodeVaultLocked       = "VAULT_LOCKED"
	CodeDecryptionFailed  = "DECRYPTION_FAILED"
	CodeKeyNotFound       = "KEY_NOT_FOUND"
	CodeGrantNotFound     = "GRANT_NOT_FOUND"
	CodePublicKeyNotFound = "PUBLIC_KEY_NOT_FOUND"
	CodeIntegrityError    = "INTEGRITY_ERROR"
	CodeStorageError      = "STORAGE_ERROR"
	CodeInternalError     = "INTERNAL_ERROR"
)

// Code maps an error returned by a Vault operation to its stable code.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrVaultLocked):
		return CodeVaultLocked
	case errors.Is(err, ErrDecryptionFailed):
		return CodeDecryptionFailed
	case errors.Is(err, ErrKeyNotFound):
		return CodeKeyNotFound
	case errors.Is(err, ErrGrantNotFound):
		return CodeGrantNotFound
	case errors.Is(err, ErrPublicKeyNotFound):
		return CodePublicKeyNotFound
	case errors.Is(err, ErrIntegrity):
		return CodeIntegrityError
	case errors.Is(err, ErrStorage):
		return CodeStorageError
	default:
		return CodeInternalError
	}
}
