package models

// EncryptedBlob is the universal wire format for every AES-256-GCM
// encryption in the system: nonce (12 bytes) || ciphertext || tag (16 bytes).
// The authentication tag is produced by GCM and appended to the ciphertext,
// so a blob is never shorter than NonceSize+TagSize.
type EncryptedBlob []byte

const (
	// NonceSize is the GCM nonce length in bytes, prepended to the ciphertext.
	NonceSize = 12

	// TagSize is the GCM authentication tag length in bytes, appended after
	// the ciphertext.
	TagSize = 16
)

// Valid reports whether the blob is long enough to contain a nonce and an
// authentication tag. It says nothing about whether the tag verifies.
func (b EncryptedBlob) Valid() bool {
	return len(b) >= NonceSize+TagSize
}

// Nonce returns the nonce prefix of the blob. Call Valid first.
func (b EncryptedBlob) Nonce() []byte {
	return b[:NonceSize]
}

// Ciphertext returns the ciphertext-with-tag suffix of the blob. Call Valid
// first.
func (b EncryptedBlob) Ciphertext() []byte {
	return b[NonceSize:]
}
