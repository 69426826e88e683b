package atlas

import "errors"

// Sentinel errors for the atlas package.
var (
	// ErrFull is returned when an ImageAtlas cannot fit an insert batch.
	ErrFull = errors.New("atlas: image atlas is full")
)
