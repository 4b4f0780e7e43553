// Package anim synthesizes creature poses procedurally from a locomotion clock,
// move speed and behavior state. Target computation is pure; targets are applied
// to a skeleton by damped blending so poses never pop between frames.
package anim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/udisondev/fauna/internal/model"
	"github.com/udisondev/fauna/internal/steer"
)

// Period is the locomotion clock period of every gait.
const Period = 2 * math.Pi

const defaultBlendRate = 10.0

// AimPhase is the discrete state of the aiming pose.
type AimPhase int

const (
	AimNone AimPhase = iota
	AimDraw
	AimRelease
)

// Input is everything a gait needs to compute joint targets.
type Input struct {
	Clock float64             // locomotion clock, radians
	Time  float64             // seconds alive, drives idle breathing
	Speed float64             // current commanded move speed
	State model.BehaviorState // behavior state
	Draw  float64             // aim draw progress in [0,1]
	Aim   AimPhase
}

// Moving reports whether locomotion (not idle) targets apply.
func (in Input) Moving() bool {
	return in.Speed > 0 && in.State != model.StateIdle && in.State != model.StateDead
}

// Target is the desired local transform of a joint and the damping rate toward it.
type Target struct {
	Joint    string
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
	Offset   mgl64.Vec3
	Rate     float64
}

var unitScale = mgl64.Vec3{1, 1, 1}

func rotTarget(joint string, rot mgl64.Vec3, rate float64) Target {
	return Target{Joint: joint, Rotation: rot, Scale: unitScale, Rate: rate}
}

// Animator computes joint targets for one gait family.
type Animator interface {
	// Targets appends targets for in to dst and returns the extended slice.
	Targets(dst []Target, in Input) []Target
}

// New returns the animator for a gait descriptor.
// Unknown families fall back to the quadruped gait.
func New(g model.GaitSpec) Animator {
	if g.BlendRate <= 0 {
		g.BlendRate = defaultBlendRate
	}
	switch g.Family {
	case model.GaitOctoped:
		return &Octoped{gait: g}
	case model.GaitBiped:
		return &Biped{gait: g}
	default:
		return &Quadruped{gait: g}
	}
}

// Apply blends skeleton joints toward targets at each target's rate.
// Joints missing from the skeleton are skipped.
func Apply(sk *model.Skeleton, targets []Target, dt float64) {
	for i := range targets {
		t := &targets[i]
		j, ok := sk.Joint(t.Joint)
		if !ok {
			continue
		}
		f := steer.DampFactor(t.Rate, dt)
		j.Rotation = lerpVec(j.Rotation, t.Rotation, f)
		j.Scale = lerpVec(j.Scale, t.Scale, f)
		j.Offset = lerpVec(j.Offset, t.Offset, f)
	}
}

func lerpVec(a, b mgl64.Vec3, f float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(f))
}

// swingAmplitude scales leg swing with speed up to the gait cap.
func swingAmplitude(g model.GaitSpec, speed float64) float64 {
	return math.Min(g.MaxSwing, speed*g.SwingPerSpeed)
}

// breath returns the idle breathing scale pulse.
func breath(g model.GaitSpec, t float64) float64 {
	return 1 + g.BreathAmp*math.Sin(t*g.BreathRate)
}

// DeathPose applies the terminal transform directly (no blending).
func DeathPose(sk *model.Skeleton, family model.GaitFamily) {
	root := sk.Root()
	switch family {
	case model.GaitOctoped:
		// on its back, legs curled in
		root.Rotation = mgl64.Vec3{math.Pi, 0, 0}
		for _, leg := range octopedLegs {
			if j, ok := sk.Joint(leg.base); ok {
				j.Rotation = mgl64.Vec3{0, 0, leg.side * 1.2}
			}
			if j, ok := sk.Joint(leg.shin); ok {
				j.Rotation = mgl64.Vec3{0, 0, -leg.side * 1.4}
			}
		}
	default:
		// rolled onto its side
		root.Rotation = mgl64.Vec3{0, 0, math.Pi / 2}
	}
}
