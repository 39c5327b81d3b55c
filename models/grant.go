package models

// GrantBlobSize is the exact length of a grant blob wrapping a 32-byte entry
// key: ephemeral public key (32) || nonce (12) || ciphertext (32) || tag (16).
const GrantBlobSize = 32 + NonceSize + 32 + TagSize

// EphemeralKeySize is the length of the X25519 ephemeral public key embedded
// at the front of every grant blob.
const EphemeralKeySize = 32

// GrantRecord is persisted under grants/{recipient}/{key} in the grantor's
// storage area. Grant carries the base64-encoded grant blob; SpaceID points
// at the storage area holding the matching vault/{key} envelope.
type GrantRecord struct {
	Grant    string            `json:"grant"`
	SpaceID  string            `json:"spaceId"`
	Metadata map[string]string `json:"metadata"`
}
