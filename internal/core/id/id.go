// Package id provides UUID generation for entities.
// UUIDv7 is used for time-ordered identifiers that index well in Postgres.
package id

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
// Falls back to UUIDv4 if v7 generation fails (should never happen).
func New() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}

// Validate checks whether s is a valid UUID of any version.
func Validate(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
