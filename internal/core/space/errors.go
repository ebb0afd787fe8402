package space

import "errors"

// Core spatial errors
var (
	// Store errors

	ErrInvalidIndex  = errors.New("slot is freed, stale, or out of range")
	ErrOutOfCapacity = errors.New("vector store is at capacity")

	// Orientation errors

	ErrNonUnitQuaternion = errors.New("quaternion is not unit norm within tolerance")
)
