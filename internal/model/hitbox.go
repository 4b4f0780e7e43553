package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Hitbox is the axis-aligned box used for hit-testing a creature.
// Owner resolves metadata through HitTable.
type Hitbox struct {
	Owner      Handle
	Center     mgl64.Vec3
	HalfExtent mgl64.Vec3
}

// Contains reports whether p is inside the box.
func (h Hitbox) Contains(p mgl64.Vec3) bool {
	for i := range 3 {
		if math.Abs(p[i]-h.Center[i]) > h.HalfExtent[i] {
			return false
		}
	}
	return true
}
