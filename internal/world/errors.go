package world

import "errors"

var (
	// ErrUnknownEntity is returned for handles that are not registered.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrNotSkinnable is returned when a creature can't be harvested (alive or already skinned).
	ErrNotSkinnable = errors.New("entity is not skinnable")
)
