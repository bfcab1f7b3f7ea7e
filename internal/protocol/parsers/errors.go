package parsers

import (
	"errors"

	"github.com/udisondev/wowee/internal/protocol/packet"
)

var (
	// ErrTruncated is returned when a payload ends before a field could be read.
	ErrTruncated = packet.ErrTruncated

	// ErrMalformed is returned for values outside the packet's domain
	// (unknown update type, zero guid where one is required, trailing bytes).
	ErrMalformed = errors.New("malformed packet")

	// ErrUnsupported is returned when the active expansion has no such packet.
	ErrUnsupported = errors.New("not supported by this expansion")
)
