package anim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/udisondev/fauna/internal/model"
)

const (
	armCounterSwing = 0.6 // arm swing relative to the opposite leg

	// DrawRate is the damping rate toward the aim pose while drawing.
	DrawRate = 12.0
	// ReleaseRate is the damping rate after release (recoil snap).
	ReleaseRate = 25.0
)

// Aim poses: bow arm, draw arm and spine, relaxed start vs full-draw anchor.
var (
	aimStart = [3]mgl64.Vec3{
		{-0.3, 0, 0.1},
		{-0.3, 0, -0.1},
		{0, 0, 0},
	}
	aimAnchor = [3]mgl64.Vec3{
		{-1.5, 0, 0.1},
		{-1.5, 0.9, -0.6},
		{0, 0.35, 0},
	}
	aimJoints = [3]string{"arm_l", "arm_r", "spine"}
)

// AimTargets appends arm/spine targets interpolated between the start and the
// anchor pose by draw progress. Release uses the faster recoil rate.
func AimTargets(dst []Target, draw float64, phase AimPhase) []Target {
	draw = mgl64.Clamp(draw, 0, 1)
	rate := DrawRate
	if phase == AimRelease {
		rate = ReleaseRate
	}
	for i, joint := range aimJoints {
		rot := aimStart[i].Add(aimAnchor[i].Sub(aimStart[i]).Mul(draw))
		dst = append(dst, rotTarget(joint, rot, rate))
	}
	return dst
}

// Biped drives two legs in opposite phase with counter-swinging arms.
// When aiming, arms and spine follow the aim pose instead.
type Biped struct {
	gait model.GaitSpec
}

// Targets implements Animator.
func (b *Biped) Targets(dst []Target, in Input) []Target {
	g := b.gait
	rate := g.BlendRate
	aiming := in.Aim != AimNone

	var legL, legR, kneeL, kneeR float64
	spineScale := unitScale
	if in.Moving() {
		swing := swingAmplitude(g, in.Speed)
		sl := math.Sin(in.Clock)
		sr := math.Sin(in.Clock + math.Pi)
		legL, legR = swing*sl, swing*sr
		if sl > 0 {
			kneeL = -g.KneeFlex * swing * sl
		}
		if sr > 0 {
			kneeR = -g.KneeFlex * swing * sr
		}
	} else {
		br := breath(g, in.Time)
		spineScale = mgl64.Vec3{br, br, 1}
	}

	dst = append(dst,
		rotTarget("leg_l", mgl64.Vec3{legL, 0, 0}, rate),
		rotTarget("leg_r", mgl64.Vec3{legR, 0, 0}, rate),
		rotTarget("knee_l", mgl64.Vec3{kneeL, 0, 0}, rate),
		rotTarget("knee_r", mgl64.Vec3{kneeR, 0, 0}, rate),
	)

	if aiming {
		return AimTargets(dst, in.Draw, in.Aim)
	}
	return append(dst,
		rotTarget("arm_l", mgl64.Vec3{armCounterSwing * legR, 0, 0}, rate),
		rotTarget("arm_r", mgl64.Vec3{armCounterSwing * legL, 0, 0}, rate),
		Target{Joint: "spine", Scale: spineScale, Rate: rate},
	)
}
