package model

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Bounds is the planar (XZ) extent of the playable world.
type Bounds struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// SquareBounds returns bounds centered at origin with given half extent.
func SquareBounds(half float64) Bounds {
	return Bounds{
		Min: mgl64.Vec3{-half, 0, -half},
		Max: mgl64.Vec3{half, 0, half},
	}
}

// Contains reports whether p lies inside bounds on XZ (edges included).
func (b Bounds) Contains(p mgl64.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] && p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// Clamp returns p with X and Z clamped into bounds; Y is kept.
func (b Bounds) Clamp(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.Clamp(p[0], b.Min[0], b.Max[0]),
		p[1],
		mgl64.Clamp(p[2], b.Min[2], b.Max[2]),
	}
}
