package models

import "github.com/golang-jwt/jwt/v5"

// Token is a session token for the reference storage backend. The space the
// session is bound to travels in the subject claim.
type Token struct {
	jwt.RegisteredClaims

	Token        *jwt.Token `json:"-"`
	SignedString string     `json:"-"`
	Space        string     `json:"-"`
}
