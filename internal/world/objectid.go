package world

import (
	"sync/atomic"

	"github.com/udisondev/fauna/internal/model"
)

// Handle ranges (convention):
//
//	0x00000000:              invalid / the player
//	0x00000001 - 0x1FFFFFFF: reserved
//	0x20000000 - 0x2FFFFFFF: creatures
const creatureHandleBase = 0x20000000

// HandleAllocator hands out creature handles. Handles are never reused, so a
// stale handle held by a side-table can't alias a newer creature.
// Safe for concurrent use.
type HandleAllocator struct {
	next atomic.Uint32
}

// NewHandleAllocator creates an allocator at the start of the creature range.
func NewHandleAllocator() *HandleAllocator {
	a := &HandleAllocator{}
	a.next.Store(creatureHandleBase)
	return a
}

// Next returns a fresh creature handle.
func (a *HandleAllocator) Next() model.Handle {
	return model.Handle(a.next.Add(1))
}

// Issued returns how many handles have been allocated.
func (a *HandleAllocator) Issued() int {
	return int(a.next.Load() - creatureHandleBase)
}
