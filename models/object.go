package models

// StoredObject is the unit of exchange with the storage backend: opaque bytes
// plus the content type they were written with. The backend never interprets
// Data; everything it holds for a vault is ciphertext or public discovery
// records.
type StoredObject struct {
	Data        []byte `json:"data"`
	ContentType string `json:"contentType,omitempty"`
}
