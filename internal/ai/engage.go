package ai

import (
	"log/slog"
	"math"

	"github.com/udisondev/fauna/internal/anim"
	"github.com/udisondev/fauna/internal/model"
)

// engage starts a chase toward the nearest live target within aggro range.
// Returns true if the creature switched to CHASE.
func (c *Creature) engage(targets []model.TargetView) bool {
	if !c.species.Engages() {
		return false
	}

	aggroSq := c.species.Combat.AggroRange * c.species.Combat.AggroRange
	best := -1
	bestSq := math.Inf(1)
	for i := range targets {
		t := &targets[i]
		if t.Dead || (!t.Player && t.Handle == c.handle) {
			continue
		}
		d := model.PlanarDistanceSquared(c.position, t.Position)
		if d <= aggroSq && d < bestSq {
			best, bestSq = i, d
		}
	}
	if best < 0 {
		return false
	}

	c.quarry = targets[best]
	c.enterChase()

	if IsDebugEnabled() {
		slog.Debug("creature acquired target",
			"handle", c.handle,
			"species", c.species.ID,
			"target", c.quarry.Handle,
			"player", c.quarry.Player,
			"distance", math.Sqrt(bestSq))
	}
	return true
}

// findQuarry locates the engaged target in this frame's views.
func (c *Creature) findQuarry(targets []model.TargetView) (model.TargetView, bool) {
	for _, t := range targets {
		if t.Player == c.quarry.Player && t.Handle == c.quarry.Handle {
			return t, true
		}
	}
	return model.TargetView{}, false
}

func (c *Creature) enterChase() {
	c.setState(model.StateChase)
	c.moveSpeed = c.species.Combat.ChaseSpeed
	c.target = c.quarry.Position
	c.aim = anim.AimNone
	c.draw = 0
}

func (c *Creature) enterAttack() {
	c.setState(model.StateAttack)
	c.moveSpeed = 0
	c.strikeTimer = 0
	c.draw = 0
	c.aim = anim.AimNone
	if c.species.Combat.Ranged {
		c.aim = anim.AimDraw
	}
}

// chase tracks the quarry; switches to ATTACK in range, gives up when the
// quarry is gone, dead or beyond the leash.
func (c *Creature) chase(targets []model.TargetView) {
	q, ok := c.findQuarry(targets)
	if !ok || q.Dead {
		c.enterPatrol()
		return
	}
	c.quarry = q

	combat := c.species.Combat
	dist := model.PlanarDistance(c.position, q.Position)
	if combat.LeashRange > 0 && dist > combat.LeashRange {
		c.enterPatrol()
		return
	}

	c.target = q.Position
	if dist <= combat.AttackRange {
		c.enterAttack()
	}
}

// attack keeps facing the quarry and strikes on cooldown (melee) or on the
// draw/release cycle (ranged).
func (c *Creature) attack(dt float64, targets []model.TargetView) {
	q, ok := c.findQuarry(targets)
	if !ok || q.Dead {
		c.enterPatrol()
		return
	}
	c.quarry = q
	c.target = q.Position

	combat := c.species.Combat
	if model.PlanarDistance(c.position, q.Position) > reengageFactor*combat.AttackRange {
		c.enterChase()
		return
	}

	c.facing = c.env.Steering.SmoothLookAt(c.facing, q.Position, c.position, dt, c.species.TurnRate)

	if combat.Ranged {
		c.aimCycle(dt)
		return
	}

	c.strikeTimer -= dt
	if c.strikeTimer <= 0 {
		c.strike()
		c.strikeTimer = combat.AttackCooldown
	}
}

// aimCycle advances draw progress to full, strikes on release and holds the
// recoil for release_time before drawing again.
func (c *Creature) aimCycle(dt float64) {
	combat := c.species.Combat
	switch c.aim {
	case anim.AimRelease:
		c.recoil -= dt
		if c.recoil <= 0 {
			c.aim = anim.AimDraw
			c.draw = 0
		}
	default:
		c.aim = anim.AimDraw
		c.draw = math.Min(1, c.draw+dt/combat.DrawTime)
		if c.draw >= 1 {
			c.strike()
			c.aim = anim.AimRelease
			c.draw = 0
			c.recoil = combat.ReleaseTime
		}
	}
}

func (c *Creature) strike() {
	if IsDebugEnabled() {
		slog.Debug("creature strikes",
			"handle", c.handle,
			"species", c.species.ID,
			"target", c.quarry.Handle,
			"player", c.quarry.Player,
			"damage", c.species.Combat.Damage)
	}
	if c.attackFunc != nil {
		c.attackFunc(c, c.quarry)
	}
}
