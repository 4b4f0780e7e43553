package anim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/udisondev/fauna/internal/model"
)

type octoLeg struct {
	base, shin string
	side       float64 // +1 left, -1 right
	phase      float64
}

// Tripod-style alternation: {L1,R2,L3,R4} against {R1,L2,R3,L4}.
var octopedLegs = [8]octoLeg{
	{"leg_l1", "shin_l1", 1, 0},
	{"leg_r2", "shin_r2", -1, 0},
	{"leg_l3", "shin_l3", 1, 0},
	{"leg_r4", "shin_r4", -1, 0},
	{"leg_r1", "shin_r1", -1, math.Pi},
	{"leg_l2", "shin_l2", 1, math.Pi},
	{"leg_r3", "shin_r3", -1, math.Pi},
	{"leg_l4", "shin_l4", 1, math.Pi},
}

// Octoped drives eight legs in two alternating groups.
type Octoped struct {
	gait model.GaitSpec
}

// Targets implements Animator.
func (o *Octoped) Targets(dst []Target, in Input) []Target {
	g := o.gait
	rate := g.BlendRate

	if !in.Moving() {
		for _, l := range octopedLegs {
			dst = append(dst,
				rotTarget(l.base, mgl64.Vec3{0, 0, l.side * g.RestArch}, rate),
				rotTarget(l.shin, mgl64.Vec3{}, rate),
			)
		}
		b := breath(g, in.Time)
		return append(dst, Target{Joint: "abdomen", Scale: mgl64.Vec3{b, b, b}, Rate: rate})
	}

	swing := swingAmplitude(g, in.Speed)
	for _, l := range octopedLegs {
		s := math.Sin(in.Clock + l.phase)
		lift := g.Lift * math.Max(0, s) // only during the swing half
		flex := g.Flex * math.Max(0, s)
		dst = append(dst,
			rotTarget(l.base, mgl64.Vec3{0, l.side * swing * s, l.side * (g.RestArch + lift)}, rate),
			rotTarget(l.shin, mgl64.Vec3{0, 0, -l.side * flex}, rate),
		)
	}
	return append(dst, Target{Joint: "abdomen", Scale: unitScale, Rate: rate})
}
