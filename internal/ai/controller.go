package ai

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/udisondev/fauna/internal/model"
)

// Steering is the set of local movement primitives a creature needs.
// All methods are pure functions of their arguments and the static world.
type Steering interface {
	// SmoothLookAt blends current facing toward the heading from -> target.
	SmoothLookAt(current float64, target, from mgl64.Vec3, dt, rate float64) float64

	// AvoidanceSteering returns heading offset that steers away from obstacles.
	AvoidanceSteering(pos mgl64.Vec3, facing float64, footprint mgl64.Vec3, obstacles []model.Obstacle) float64

	// NextPosition advances pos along facing, resolving collisions.
	NextPosition(pos mgl64.Vec3, facing, speed, dt float64, footprint mgl64.Vec3, obstacles []model.Obstacle) mgl64.Vec3

	// TerrainHeight samples ground height.
	TerrainHeight(x, z float64) float64

	// WithinBounds reports whether point is navigable.
	WithinBounds(point mgl64.Vec3) bool
}

// Controller is what the orchestrator drives every frame.
type Controller interface {
	// Update runs one frame of behavior, movement and (unless skipped) animation.
	Update(dt float64, obstacles []model.Obstacle, targets []model.TargetView, skipAnimation bool)

	// ApplyDamage reduces health; no-op once dead.
	ApplyDamage(amount float64)

	// MarkAsSkinned switches a corpse to the harvested look.
	MarkAsSkinned()

	Handle() model.Handle
	Species() *model.Species
	State() model.BehaviorState
	Position() mgl64.Vec3
	IsDead() bool
	IsSkinned() bool
	Hitbox() model.Hitbox
	Body() *model.Body
}

var _ Controller = (*Creature)(nil)
