package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TargetView is a short-lived, reusable view of a perceivable target.
// Records are owned by the orchestrator and overwritten every frame.
type TargetView struct {
	Handle   Handle // InvalidHandle for the player
	Position mgl64.Vec3
	Dead     bool
	Player   bool
}

// Obstacle is a static axis-aligned box. Avoidance and collision are planar (XZ).
type Obstacle struct {
	Center     mgl64.Vec3 `yaml:"center"`
	HalfExtent mgl64.Vec3 `yaml:"half_extent"`
}

// ContainsPlanar reports whether point p (expanded by margin) overlaps the box on XZ.
func (o Obstacle) ContainsPlanar(p mgl64.Vec3, marginX, marginZ float64) bool {
	return math.Abs(p[0]-o.Center[0]) < o.HalfExtent[0]+marginX &&
		math.Abs(p[2]-o.Center[2]) < o.HalfExtent[2]+marginZ
}

// PlanarDistanceSquared returns squared XZ distance between a and b.
func PlanarDistanceSquared(a, b mgl64.Vec3) float64 {
	dx := a[0] - b[0]
	dz := a[2] - b[2]
	return dx*dx + dz*dz
}

// PlanarDistance returns XZ distance between a and b.
func PlanarDistance(a, b mgl64.Vec3) float64 {
	return math.Sqrt(PlanarDistanceSquared(a, b))
}
