package mapgen

import "errors"

// Sentinel error kinds a caller can match with errors.Is. PlacementExhausted
// is never returned as an error; it is recorded in a Result's Warnings
// instead, since running out of room placements is not a failure.
var (
	ErrInvalidDimensions = errors.New("mapgen: invalid dimensions")
	ErrInvalidParameters = errors.New("mapgen: invalid parameters")
	ErrInvalidMap        = errors.New("mapgen: invalid map")
	ErrSerialization     = errors.New("mapgen: serialization failure")
)
