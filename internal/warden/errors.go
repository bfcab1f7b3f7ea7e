package warden

import "errors"

var (
	// ErrInvalidImage is returned when a reference executable fails PE parsing.
	ErrInvalidImage = errors.New("invalid image")

	// ErrNotFound is returned when no reference executable could be located.
	ErrNotFound = errors.New("reference executable not found")

	// ErrChecksum is returned when a downloaded module does not match its MD5.
	ErrChecksum = errors.New("module checksum mismatch")

	// ErrInvalidModule is returned for undecodable module payloads.
	ErrInvalidModule = errors.New("invalid module")
)
