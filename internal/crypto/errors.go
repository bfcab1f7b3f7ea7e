package crypto

import "errors"

var (
	// ErrInvalidSessionKey is returned when a session key has the wrong length.
	ErrInvalidSessionKey = errors.New("invalid session key")

	// ErrInvalidSignature is returned when a module signature does not verify.
	ErrInvalidSignature = errors.New("invalid signature")
)
