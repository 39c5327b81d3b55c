package models

// Metadata header names persisted inside a VaultEnvelope. The layout must be
// reproduced exactly for interoperability with other readers of the same
// storage area.
const (
	HeaderVersion     = "x-vault-version"
	HeaderCipher      = "x-vault-cipher"
	HeaderKeyID       = "x-vault-key-id"
	HeaderContentType = "x-vault-content-type"
	HeaderKDF         = "x-vault-kdf"
	HeaderKeyRotation = "x-vault-key-rotation"

	HeaderGrantVersion = "x-vault-grant-version"
	HeaderGrantor      = "x-vault-grantor"
)

// Well-known metadata values.
const (
	ProtocolVersion = "1"

	CipherAES256GCM = "aes-256-gcm"
	KDFHKDFSHA256   = "hkdf-sha256"

	RotationPerWrite = "per-write"
	RotationPerKey   = "per-key"

	ContentTypeJSON  = "application/json"
	ContentTypeCBOR  = "application/cbor"
	ContentTypeBytes = "application/octet-stream"
)

// VaultEnvelope is what is actually persisted under vault/{key}: the
// base64-encoded EncryptedBlob of the value under its entry key, plus
// self-describing metadata so a future reader can select the correct
// decryption parameters without an external schema.
type VaultEnvelope struct {
	Data     string            `json:"data"`
	Metadata map[string]string `json:"metadata"`
}

// KeyBlob is persisted under keys/{key}: the per-entry key wrapped under the
// owner's master key. The key identifier is a non-secret fingerprint used for
// envelope bookkeeping and rotation auditing; it is never sufficient to
// recover the key.
type KeyBlob struct {
	Key      string          `json:"key"`
	Metadata KeyBlobMetadata `json:"metadata"`
}

// KeyBlobMetadata describes the wrapped key.
type KeyBlobMetadata struct {
	// KeyID is the first 16 hex characters of SHA-256(entry key).
	KeyID string `json:"keyId"`

	// Cipher names the AEAD used for the wrap, e.g. "aes-256-gcm".
	Cipher string `json:"cipher"`
}
