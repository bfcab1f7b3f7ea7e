package asset

import "errors"

var (
	// ErrMissingAsset is returned when no layer has the requested path.
	ErrMissingAsset = errors.New("missing asset")

	// ErrNotFound is returned for unknown overlay ids.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateOverlay is returned when an overlay id is already in use.
	ErrDuplicateOverlay = errors.New("overlay already exists")

	// ErrInvalidDBC is returned for table files that are neither WDBC nor CSV.
	ErrInvalidDBC = errors.New("invalid dbc")
)
