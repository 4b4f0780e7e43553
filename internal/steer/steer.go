package steer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/udisondev/fauna/internal/model"
)

const (
	defaultLookahead     = 3.0         // base feeler length
	defaultAvoidStrength = math.Pi / 3 // offset when the way ahead is blocked
	feelerSpread         = 0.6         // side feeler angle, radians
)

// Primitives is a reference implementation of the local steering collaborator:
// heading smoothing, obstacle avoidance, collision-aware stepping,
// terrain sampling and bounds checks. All methods are pure with respect to
// the creature state passed in.
type Primitives struct {
	terrain       Terrain
	bounds        model.Bounds
	lookahead     float64
	avoidStrength float64
}

// New creates steering primitives over terrain and world bounds.
func New(terrain Terrain, bounds model.Bounds) *Primitives {
	if terrain == nil {
		terrain = FlatTerrain(0)
	}
	return &Primitives{
		terrain:       terrain,
		bounds:        bounds,
		lookahead:     defaultLookahead,
		avoidStrength: defaultAvoidStrength,
	}
}

// SmoothLookAt blends current facing toward the heading from→target.
func (p *Primitives) SmoothLookAt(current float64, target, from mgl64.Vec3, dt, rate float64) float64 {
	want := Heading(from[0], from[2], target[0], target[2])
	return LerpAngle(current, want, DampFactor(rate, dt))
}

// AvoidanceSteering returns a facing offset that turns away from obstacles
// found by three feelers (center, left, right). Zero when the way is clear.
func (p *Primitives) AvoidanceSteering(pos mgl64.Vec3, facing float64, footprint mgl64.Vec3, obstacles []model.Obstacle) float64 {
	if len(obstacles) == 0 {
		return 0
	}

	length := p.lookahead + footprint[2]/2
	center := p.feelerBlocked(pos, facing, length, footprint, obstacles)
	left := p.feelerBlocked(pos, facing+feelerSpread, length, footprint, obstacles)
	right := p.feelerBlocked(pos, facing-feelerSpread, length, footprint, obstacles)

	switch {
	case center && !left:
		return p.avoidStrength
	case center && !right:
		return -p.avoidStrength
	case center:
		// boxed in: turn hard, left by convention
		return p.avoidStrength * 2
	case left && !right:
		return -p.avoidStrength / 2
	case right && !left:
		return p.avoidStrength / 2
	default:
		return 0
	}
}

// feelerBlocked samples the feeler at half and full length.
func (p *Primitives) feelerBlocked(pos mgl64.Vec3, angle, length float64, footprint mgl64.Vec3, obstacles []model.Obstacle) bool {
	fx, fz := Forward(angle)
	for _, frac := range [2]float64{0.5, 1} {
		sample := mgl64.Vec3{pos[0] + fx*length*frac, pos[1], pos[2] + fz*length*frac}
		if collides(sample, footprint, obstacles) {
			return true
		}
	}
	return false
}

// NextPosition advances pos along facing by speed·dt. If the step collides or
// leaves bounds, it tries sliding along X, then along Z, and otherwise stays put.
// Y is left untouched; the caller resnaps it to terrain.
func (p *Primitives) NextPosition(pos mgl64.Vec3, facing, speed, dt float64, footprint mgl64.Vec3, obstacles []model.Obstacle) mgl64.Vec3 {
	fx, fz := Forward(facing)
	stepX := fx * speed * dt
	stepZ := fz * speed * dt

	candidates := [3]mgl64.Vec3{
		{pos[0] + stepX, pos[1], pos[2] + stepZ},
		{pos[0] + stepX, pos[1], pos[2]},
		{pos[0], pos[1], pos[2] + stepZ},
	}
	for _, c := range candidates {
		if p.bounds.Contains(c) && !collides(c, footprint, obstacles) {
			return c
		}
	}
	return pos
}

// TerrainHeight samples the terrain.
func (p *Primitives) TerrainHeight(x, z float64) float64 {
	return p.terrain.HeightAt(x, z)
}

// WithinBounds reports whether point is inside world bounds.
func (p *Primitives) WithinBounds(point mgl64.Vec3) bool {
	return p.bounds.Contains(point)
}

func collides(point, footprint mgl64.Vec3, obstacles []model.Obstacle) bool {
	for i := range obstacles {
		if obstacles[i].ContainsPlanar(point, footprint[0]/2, footprint[2]/2) {
			return true
		}
	}
	return false
}
