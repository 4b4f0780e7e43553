package ai

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/udisondev/fauna/internal/anim"
	"github.com/udisondev/fauna/internal/model"
)

const (
	hitFlashColor    model.RGB = 0xFF2020
	hitFlashDuration           = 0.1 // seconds of simulation time
)

// ApplyDamage subtracts amount from health, flashes primary parts and, for
// prey, starts fleeing. Health reaching zero kills the creature.
// No-op once dead or for a non-finite amount.
func (c *Creature) ApplyDamage(amount float64) {
	if c.dead || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return
	}

	c.health = mgl64.Clamp(c.health-amount, 0, c.species.MaxHealth)
	c.body.HealthBar.Fill = c.health / c.species.MaxHealth
	c.flash()

	if IsDebugEnabled() {
		slog.Debug("creature damaged",
			"handle", c.handle,
			"species", c.species.ID,
			"amount", amount,
			"health", c.health)
	}

	if c.health <= 0 {
		c.die()
		return
	}

	if c.species.Flees() {
		c.startFlee()
	}
}

// flash tints primary parts and schedules the revert. A new hit replaces the
// pending revert so the flash always lasts hitFlashDuration after the last hit.
// The revert leaves a corpse untouched.
func (c *Creature) flash() {
	for _, p := range c.body.Parts {
		if p.Primary {
			p.Emissive = hitFlashColor
		}
	}
	if c.flashTask != 0 {
		c.env.Tasks.Cancel(c.flashTask)
	}
	c.flashTask = c.env.Tasks.After(hitFlashDuration, "hit-flash-revert", func() {
		c.flashTask = 0
		if c.dead {
			return
		}
		for _, p := range c.body.Parts {
			if p.Primary {
				p.Emissive = 0
			}
		}
	})
}

// die switches to the terminal state. Runs once.
func (c *Creature) die() {
	if c.dead {
		return
	}
	c.dead = true
	c.health = 0
	c.setState(model.StateDead)
	c.moveSpeed = 0
	c.aim = anim.AimNone
	c.draw = 0

	c.body.HealthBar.Visible = false
	c.env.Hits.SetSkinnable(c.handle, true, c.species.LootMaterial)
	anim.DeathPose(c.body.Skeleton, c.species.Gait.Family)

	slog.Debug("creature died",
		"handle", c.handle,
		"species", c.species.ID,
		"position", c.position)

	if c.deathFunc != nil {
		c.deathFunc(c)
	}
}

// MarkAsSkinned clears the skinnable flag and recolors the corpse. Every part
// gets a private material copy; the shared species materials stay intact.
// Only meaningful after death, and only once.
func (c *Creature) MarkAsSkinned() {
	if !c.dead || c.skinned {
		return
	}
	c.skinned = true
	c.env.Hits.SetSkinnable(c.handle, false, c.species.LootMaterial)

	for _, p := range c.body.Parts {
		if p.Material == nil {
			continue
		}
		m := p.Material.Clone()
		m.Color = c.species.SkinnedColor
		p.Material = m
	}
}
