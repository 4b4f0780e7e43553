package model

import "fmt"

// Handle is a stable identifier of a live creature.
// Handles are never reused within a process; 0 means "no entity" (e.g. the player).
type Handle uint32

// InvalidHandle is the zero handle.
const InvalidHandle Handle = 0

// IsValid reports whether h refers to an entity.
func (h Handle) IsValid() bool {
	return h != InvalidHandle
}

// String returns handle in hex form, matching log output of the allocator.
func (h Handle) String() string {
	return fmt.Sprintf("0x%08X", uint32(h))
}
