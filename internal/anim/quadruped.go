package anim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/udisondev/fauna/internal/model"
)

type quadLeg struct {
	leg, knee string
	trot      float64 // phase offset for trotting (diagonal pairs)
	pace      float64 // phase offset for other species (same-side pairs)
}

var quadrupedLegs = [4]quadLeg{
	{"leg_fl", "knee_fl", 0, 0},
	{"leg_fr", "knee_fr", math.Pi, math.Pi},
	{"leg_bl", "knee_bl", math.Pi, 0},
	{"leg_br", "knee_br", 0, math.Pi},
}

// Quadruped drives four legs with phase-shifted sinusoids.
type Quadruped struct {
	gait model.GaitSpec
}

// Targets implements Animator.
func (q *Quadruped) Targets(dst []Target, in Input) []Target {
	g := q.gait
	rate := g.BlendRate

	if !in.Moving() {
		for _, l := range quadrupedLegs {
			dst = append(dst, rotTarget(l.leg, mgl64.Vec3{}, rate), rotTarget(l.knee, mgl64.Vec3{}, rate))
		}
		b := breath(g, in.Time)
		return append(dst, Target{Joint: "torso", Scale: mgl64.Vec3{b, b, 1}, Rate: rate})
	}

	swing := swingAmplitude(g, in.Speed)
	for _, l := range quadrupedLegs {
		offset := l.pace
		if g.Trot {
			offset = l.trot
		}
		s := math.Sin(in.Clock + offset)
		dst = append(dst, rotTarget(l.leg, mgl64.Vec3{swing * s, 0, 0}, rate))

		knee := 0.0
		if s > 0 {
			knee = -g.KneeFlex * swing * s
		}
		dst = append(dst, rotTarget(l.knee, mgl64.Vec3{knee, 0, 0}, rate))
	}

	bob := 0.0
	if g.MaxSwing > 0 {
		bob = g.Bob * (swing / g.MaxSwing) * math.Abs(math.Cos(in.Clock))
	}
	return append(dst, Target{
		Joint:  "torso",
		Scale:  unitScale,
		Offset: mgl64.Vec3{0, bob, 0},
		Rate:   rate,
	})
}
