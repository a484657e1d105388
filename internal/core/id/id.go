// Package id provides UUIDv7 generation for all persisted records
// (shifts, purchases, positions and reference catalogs).
package id

import (
	"bytes"

	"github.com/google/uuid"
)

// ID is a type alias for UUID, used across all entities.
type ID = uuid.UUID

// New generates a new UUIDv7.
// UUIDv7 embeds a Unix timestamp in the first 48 bits, so ids sort by creation time.
func New() ID {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return v
}

// Parse converts string to ID with validation.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse converts string to ID, panics on error.
// Use only for constants and tests.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// Nil returns zero-value UUID.
func Nil() ID {
	return uuid.Nil
}

// IsNil checks if ID is zero-value.
func IsNil(v ID) bool {
	return v == uuid.Nil
}

// Compare orders two ids bytewise (-1, 0, +1).
func Compare(a, b ID) int {
	return bytes.Compare(a[:], b[:])
}
