package packet

import "errors"

// ErrTruncated is returned when a read runs past the end of the payload.
var ErrTruncated = errors.New("not enough data")
