package ai

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/udisondev/fauna/internal/anim"
	"github.com/udisondev/fauna/internal/model"
	"github.com/udisondev/fauna/internal/steer"
)

// AttackFunc is invoked when a creature lands a strike on a target.
// Injected by the orchestrator, which resolves the target handle.
type AttackFunc func(attacker *Creature, target model.TargetView)

// DeathFunc is invoked exactly once, right after a creature dies.
// Injected by the spawn manager to schedule corpse despawn and respawn.
type DeathFunc func(c *Creature)

// Controller constants.
const (
	arriveDistance   = 1.0   // patrol target reached
	steerMinDistance = 0.1   // below this no turning or stepping happens
	stuckEpsilon     = 0.001 // planar movement treated as standing still
	stuckTimeout     = 1.5   // seconds standing still while moving before re-pick
	reengageFactor   = 1.25  // attack -> chase hysteresis over attack range
)

// Env bundles the collaborators shared by all creatures of a world.
type Env struct {
	Steering Steering
	Bounds   model.Bounds
	Tasks    *TaskQueue
	Hits     *model.HitTable
	Rand     *rand.Rand
}

// Creature is the generic controller for every species. Behavior differences
// come from the species descriptor, never from per-species code.
type Creature struct {
	handle  model.Handle
	species *model.Species
	body    *model.Body
	env     Env
	gait    anim.Animator

	position  mgl64.Vec3
	facing    float64
	footprint mgl64.Vec3

	state      model.BehaviorState
	stateTimer float64
	target     mgl64.Vec3
	moveSpeed  float64

	health    float64
	dead      bool
	skinned   bool
	fleeTimer float64
	flashTask TaskID // pending hit-flash revert, 0 if none

	stuckTimer float64
	stuckPos   mgl64.Vec3

	clock float64 // locomotion clock, radians mod anim.Period
	alive float64 // seconds since spawn

	// engagement
	quarry      model.TargetView // identity of the engaged target
	strikeTimer float64
	aim         anim.AimPhase
	draw        float64
	recoil      float64

	targets []anim.Target // scratch for animator output

	attackFunc AttackFunc
	deathFunc  DeathFunc
}

// NewCreature creates a live creature at pos in PATROL with a fresh patrol target.
func NewCreature(handle model.Handle, sp *model.Species, body *model.Body, pos mgl64.Vec3, env Env) *Creature {
	if env.Rand == nil {
		env.Rand = rand.New(rand.NewPCG(uint64(handle), 0))
	}
	if env.Tasks == nil {
		env.Tasks = NewTaskQueue()
	}
	if env.Hits == nil {
		env.Hits = model.NewHitTable()
	}

	c := &Creature{
		handle:    handle,
		species:   sp,
		body:      body,
		env:       env,
		gait:      anim.New(sp.Gait),
		position:  pos,
		footprint: sp.FootprintVec(),
		health:    sp.MaxHealth,
		stuckPos:  pos,
		targets:   make([]anim.Target, 0, 32),
	}
	c.position[1] = env.Steering.TerrainHeight(pos[0], pos[2]) + sp.HeightOffset
	c.enterPatrol()

	env.Hits.Register(handle, sp.ID, body.PartNames())
	return c
}

// SetAttackFunc sets the strike callback.
func (c *Creature) SetAttackFunc(fn AttackFunc) {
	c.attackFunc = fn
}

// SetDeathFunc sets the death hook.
func (c *Creature) SetDeathFunc(fn DeathFunc) {
	c.deathFunc = fn
}

// Handle returns the stable identity of the creature.
func (c *Creature) Handle() model.Handle { return c.handle }

// Species returns the species descriptor.
func (c *Creature) Species() *model.Species { return c.species }

// State returns the current behavior state.
func (c *Creature) State() model.BehaviorState { return c.state }

// Position returns the current world position.
func (c *Creature) Position() mgl64.Vec3 { return c.position }

// IsDead reports whether the creature has died. Never reverts.
func (c *Creature) IsDead() bool { return c.dead }

// IsSkinned reports whether the corpse was harvested.
func (c *Creature) IsSkinned() bool { return c.skinned }

// Body returns the visual subtree.
func (c *Creature) Body() *model.Body { return c.body }

// Hitbox returns the hit-test box around the creature.
func (c *Creature) Hitbox() model.Hitbox {
	half := c.footprint.Mul(0.5)
	center := c.position
	center[1] += half[1]
	return model.Hitbox{Owner: c.handle, Center: center, HalfExtent: half}
}

// Update runs one frame: state machine, steering, terrain resnap, locomotion
// clock and, unless skipAnimation is set, procedural animation.
func (c *Creature) Update(dt float64, obstacles []model.Obstacle, targets []model.TargetView, skipAnimation bool) {
	if c.dead {
		return
	}
	c.alive += dt
	c.stateTimer += dt

	c.think(dt, targets)
	if c.moveSpeed > 0 {
		c.move(dt, obstacles)
	}
	c.checkStuck(dt)

	c.position[1] = c.env.Steering.TerrainHeight(c.position[0], c.position[2]) + c.species.HeightOffset

	stride := c.species.Gait.StrideRate
	if stride <= 0 {
		stride = 1
	}
	c.clock = math.Mod(c.clock+c.moveSpeed*dt*stride, anim.Period)

	if !skipAnimation {
		c.animate(dt)
	}
}

func (c *Creature) think(dt float64, targets []model.TargetView) {
	if !c.state.IsSpecial() {
		c.roam(targets)
		return
	}

	switch c.state {
	case model.StateFlee:
		c.fleeTimer -= dt
		if c.fleeTimer <= 0 {
			c.enterPatrol()
			return
		}
		if model.PlanarDistance(c.position, c.target) < arriveDistance || c.stateTimer > c.species.PatrolTimeout {
			c.pickTarget(c.species.FleeRadius)
		}

	case model.StateChase:
		c.chase(targets)

	case model.StateAttack:
		c.attack(dt, targets)
	}
}

// roam handles PATROL and IDLE: engage when possible, otherwise re-pick
// patrol targets on arrival or timeout.
func (c *Creature) roam(targets []model.TargetView) {
	if c.engage(targets) {
		return
	}

	if c.state == model.StateIdle {
		if c.stateTimer >= c.species.IdlePause {
			c.enterPatrol()
		}
		return
	}

	if model.PlanarDistance(c.position, c.target) < arriveDistance {
		if c.species.IdlePause > 0 {
			c.setState(model.StateIdle)
			c.moveSpeed = 0
			return
		}
		c.pickPatrolTarget()
	} else if c.stateTimer > c.species.PatrolTimeout {
		c.pickPatrolTarget()
	}
}

func (c *Creature) move(dt float64, obstacles []model.Obstacle) {
	if model.PlanarDistance(c.position, c.target) <= steerMinDistance {
		return
	}
	st := c.env.Steering

	c.facing = st.SmoothLookAt(c.facing, c.target, c.position, dt, c.turnRate())
	if offset := st.AvoidanceSteering(c.position, c.facing, c.footprint, obstacles); offset != 0 {
		c.facing = steer.LerpAngle(c.facing, c.facing+offset, steer.DampFactor(c.species.AvoidRate, dt))
	}
	c.position = st.NextPosition(c.position, c.facing, c.moveSpeed, dt, c.footprint, obstacles)
}

func (c *Creature) turnRate() float64 {
	if c.state == model.StateFlee && c.species.FleeTurnRate > 0 {
		return c.species.FleeTurnRate
	}
	return c.species.TurnRate
}

// checkStuck forces a new target when the creature has not moved for too long
// while commanded to move.
func (c *Creature) checkStuck(dt float64) {
	if c.moveSpeed <= 0 || model.PlanarDistance(c.position, c.stuckPos) >= stuckEpsilon {
		c.stuckTimer = 0
		c.stuckPos = c.position
		return
	}

	c.stuckTimer += dt
	if c.stuckTimer <= stuckTimeout {
		return
	}

	if IsDebugEnabled() {
		slog.Debug("creature stuck, re-picking target",
			"handle", c.handle,
			"species", c.species.ID,
			"state", c.state,
			"position", c.position)
	}

	if c.state == model.StateFlee {
		c.pickTarget(c.species.FleeRadius)
	} else {
		c.enterPatrol()
	}
	c.stuckTimer = 0
	c.stateTimer = 0
}

func (c *Creature) animate(dt float64) {
	in := anim.Input{
		Clock: c.clock,
		Time:  c.alive,
		Speed: c.moveSpeed,
		State: c.state,
		Draw:  c.draw,
		Aim:   c.aim,
	}
	c.targets = c.gait.Targets(c.targets[:0], in)
	anim.Apply(c.body.Skeleton, c.targets, dt)
}

func (c *Creature) setState(s model.BehaviorState) {
	if c.state != s && IsDebugEnabled() {
		slog.Debug("creature state changed",
			"handle", c.handle,
			"species", c.species.ID,
			"from", c.state,
			"to", s)
	}
	c.state = s
	c.stateTimer = 0
}

// enterPatrol (re)enters PATROL at base speed with a fresh target.
func (c *Creature) enterPatrol() {
	c.setState(model.StatePatrol)
	c.moveSpeed = c.species.BaseSpeed
	c.quarry = model.TargetView{}
	c.aim = anim.AimNone
	c.draw = 0
	c.pickPatrolTarget()
}

func (c *Creature) pickPatrolTarget() {
	c.pickTarget(c.species.PatrolRadius)
}

// pickTarget selects a random point within radius of the current position,
// clamped to world bounds. A point rejected by the bounds check falls back to
// the world origin.
func (c *Creature) pickTarget(radius float64) {
	angle := c.env.Rand.Float64() * 2 * math.Pi
	dist := c.env.Rand.Float64() * radius
	x, z := steer.Forward(angle)

	p := mgl64.Vec3{c.position[0] + x*dist, c.position[1], c.position[2] + z*dist}
	p = c.env.Bounds.Clamp(p)
	if !c.env.Steering.WithinBounds(p) {
		p = mgl64.Vec3{}
	}

	c.target = p
	c.stateTimer = 0
}

// startFlee switches prey into flee mode with an escape target.
func (c *Creature) startFlee() {
	c.setState(model.StateFlee)
	c.moveSpeed = c.species.FleeSpeed
	c.fleeTimer = c.species.FleeDuration
	c.pickTarget(c.species.FleeRadius)
}
