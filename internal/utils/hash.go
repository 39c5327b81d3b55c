package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString computes an HMAC-SHA256 signature over the given string using
// the provided hash key and returns the result as a hex-encoded string.
//
// Example usage:
//
//	signature := utils.HashString("some data", "my-secret-key")
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashString([]byte(data), hashKey))
}

// SecretsEqual compares two secrets in constant time through their
// HMAC-SHA256 digests, so the comparison leaks neither content nor length.
func SecretsEqual(a, b string) bool {
	key := "secret-compare"
	return hmac.Equal(hashString([]byte(a), key), hashString([]byte(b), key))
}

// hashString computes a raw HMAC-SHA256 digest over the given byte slice
// using the provided hash key.
func hashString(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}
