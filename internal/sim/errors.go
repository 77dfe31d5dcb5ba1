package sim

import "errors"

var (
	// ErrLevelNotFound is returned when the requested level is not in the registry.
	ErrLevelNotFound = errors.New("level not found")

	// ErrInvalidRenderTarget is returned when there is no usable canvas to draw on.
	ErrInvalidRenderTarget = errors.New("invalid render target")
)
