package models

// Well-known paths in a principal's public-readable storage area. Anyone can
// fetch these by the principal's stable address, without a session.
const (
	WellKnownPublicKey = ".well-known/vault-pubkey"
	WellKnownVersion   = ".well-known/vault-version"
	WellKnownSpace     = ".well-known/vault-space"
)

// PublicKeyRecord is the resolved discovery record for a principal: their
// X25519 public key, the protocol version they published with, and an
// optional pointer to the storage area holding their vault data (identity
// and vault storage may be decoupled).
type PublicKeyRecord struct {
	PublicKey []byte
	Version   string
	Space     string
}
