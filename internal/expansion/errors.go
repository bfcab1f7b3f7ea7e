package expansion

import "errors"

var (
	// ErrNotFound is returned when a profile id is not registered.
	ErrNotFound = errors.New("expansion not found")

	// ErrNoProfiles is returned when the data root holds no valid profile.
	ErrNoProfiles = errors.New("no expansion profiles discovered")
)
