package utils

import "github.com/google/uuid"

// UUIDGenerator produces trace identifiers. Prefers time-ordered v7 UUIDs
// and falls back to v4 when the clock source misbehaves.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
