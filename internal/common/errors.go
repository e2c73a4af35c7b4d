// Package common defines shared sentinel errors used across the CLI and
// server layers of Günce. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (

	// repository-level errors
	ErrNotFound = errors.New("not found")
	ErrStorage  = errors.New("storage failure")

	// crypto-layer errors
	ErrHashing = errors.New("password hashing failed")
	// ErrDecryption covers both a wrong password and tampered or corrupted
	// ciphertext; the two cases cannot be told apart.
	ErrDecryption = errors.New("wrong password or corrupted data")

	// facade-level errors
	ErrLocked       = errors.New("diary is locked")
	ErrUnauthorized = errors.New("invalid password")
	ErrInvalidToken = errors.New("invalid token")
	ErrNoRemote     = errors.New("no remote store configured")
)

// ValidationError reports the first field that failed input validation.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on field %q", e.Field)
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
