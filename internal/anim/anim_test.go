package anim

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/fauna/internal/model"
)

const tol = 1e-9

func quadGait(trot bool) model.GaitSpec {
	return model.GaitSpec{
		Family:        model.GaitQuadruped,
		Trot:          trot,
		MaxSwing:      0.7,
		SwingPerSpeed: 0.15,
		KneeFlex:      0.8,
		Bob:           0.08,
		BreathRate:    1.5,
		BreathAmp:     0.03,
		BlendRate:     12,
	}
}

func octoGait() model.GaitSpec {
	return model.GaitSpec{
		Family:        model.GaitOctoped,
		MaxSwing:      0.5,
		SwingPerSpeed: 0.2,
		Lift:          0.35,
		Flex:          0.5,
		RestArch:      0.4,
		BreathRate:    2,
		BreathAmp:     0.04,
		BlendRate:     15,
	}
}

func bipedGait() model.GaitSpec {
	return model.GaitSpec{
		Family:        model.GaitBiped,
		MaxSwing:      0.6,
		SwingPerSpeed: 0.2,
		KneeFlex:      0.9,
		BreathRate:    1.2,
		BreathAmp:     0.02,
		BlendRate:     10,
	}
}

func byJoint(targets []Target) map[string]Target {
	m := make(map[string]Target, len(targets))
	for _, t := range targets {
		m[t.Joint] = t
	}
	return m
}

func assertVecNear(t *testing.T, want, got mgl64.Vec3, msgAndArgs ...any) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], 1e-7, msgAndArgs...)
	}
}

func TestGaits_ArePeriodic(t *testing.T) {
	gaits := map[string]model.GaitSpec{
		"trot":    quadGait(true),
		"pace":    quadGait(false),
		"octoped": octoGait(),
		"biped":   bipedGait(),
	}

	for name, g := range gaits {
		t.Run(name, func(t *testing.T) {
			a := New(g)
			for _, clock := range []float64{0, 0.3, 1.7, 4.2, 10} {
				in := Input{Clock: clock, Speed: 3, State: model.StatePatrol}
				first := a.Targets(nil, in)
				in.Clock += Period
				second := a.Targets(nil, in)

				require.Equal(t, len(first), len(second))
				for i := range first {
					assert.Equal(t, first[i].Joint, second[i].Joint)
					assertVecNear(t, first[i].Rotation, second[i].Rotation, "joint %s at clock %v", first[i].Joint, clock)
					assertVecNear(t, first[i].Offset, second[i].Offset, "joint %s offset", first[i].Joint)
				}
			}
		})
	}
}

func TestQuadruped_TrotUsesDiagonalPairs(t *testing.T) {
	a := New(quadGait(true))
	got := byJoint(a.Targets(nil, Input{Clock: 0.9, Speed: 3, State: model.StatePatrol}))

	assert.InDelta(t, got["leg_fl"].Rotation.X(), got["leg_br"].Rotation.X(), tol)
	assert.InDelta(t, got["leg_fr"].Rotation.X(), got["leg_bl"].Rotation.X(), tol)
	assert.InDelta(t, -got["leg_fl"].Rotation.X(), got["leg_fr"].Rotation.X(), tol)
}

func TestQuadruped_PaceUsesSameSidePairs(t *testing.T) {
	a := New(quadGait(false))
	got := byJoint(a.Targets(nil, Input{Clock: 0.9, Speed: 3, State: model.StatePatrol}))

	assert.InDelta(t, got["leg_fl"].Rotation.X(), got["leg_bl"].Rotation.X(), tol)
	assert.InDelta(t, got["leg_fr"].Rotation.X(), got["leg_br"].Rotation.X(), tol)
	assert.InDelta(t, -got["leg_fl"].Rotation.X(), got["leg_fr"].Rotation.X(), tol)
}

func TestQuadruped_KneeFlexOnlyInForwardSwing(t *testing.T) {
	g := quadGait(true)
	a := New(g)
	speed := 3.0
	swing := math.Min(g.MaxSwing, speed*g.SwingPerSpeed)

	for clock := 0.0; clock < Period; clock += 0.1 {
		got := byJoint(a.Targets(nil, Input{Clock: clock, Speed: speed, State: model.StatePatrol}))
		s := math.Sin(clock) // leg_fl phase
		knee := got["knee_fl"].Rotation.X()
		if s > 0 {
			assert.InDelta(t, -g.KneeFlex*swing*s, knee, tol, "clock %v", clock)
		} else {
			assert.Zero(t, knee, "clock %v", clock)
		}
		assert.InDelta(t, g.Bob*(swing/g.MaxSwing)*math.Abs(math.Cos(clock)), got["torso"].Offset.Y(), tol)
	}
}

func TestQuadruped_IdleBreathes(t *testing.T) {
	g := quadGait(true)
	a := New(g)

	t1 := byJoint(a.Targets(nil, Input{Time: 0.5, State: model.StateIdle}))
	t2 := byJoint(a.Targets(nil, Input{Time: 1.5, State: model.StateIdle}))

	assert.Equal(t, mgl64.Vec3{}, t1["leg_fl"].Rotation)
	assert.InDelta(t, 1+g.BreathAmp*math.Sin(0.5*g.BreathRate), t1["torso"].Scale.X(), tol)
	assert.NotEqual(t, t1["torso"].Scale, t2["torso"].Scale)
	assert.Equal(t, 1.0, t1["torso"].Scale.Z())
}

func TestOctoped_GroupsAlternate(t *testing.T) {
	g := octoGait()
	a := New(g)
	got := byJoint(a.Targets(nil, Input{Clock: math.Pi / 2, Speed: 2, State: model.StatePatrol}))

	// group A at peak swing, group B at trough
	l1 := got["leg_l1"].Rotation
	r1 := got["leg_r1"].Rotation
	swing := math.Min(g.MaxSwing, 2*g.SwingPerSpeed)

	assert.InDelta(t, swing, l1.Y(), tol)
	assert.InDelta(t, g.RestArch+g.Lift, l1.Z(), tol, "lifted during swing half")
	assert.InDelta(t, -g.Flex, got["shin_l1"].Rotation.Z(), tol)

	assert.InDelta(t, swing, r1.Y(), tol, "mirrored side at opposite phase")
	assert.InDelta(t, -g.RestArch, r1.Z(), tol, "stance leg not lifted")
	assert.InDelta(t, 0, got["shin_r1"].Rotation.Z(), tol)
}

func TestOctoped_IdleRestsInArch(t *testing.T) {
	g := octoGait()
	a := New(g)
	got := byJoint(a.Targets(nil, Input{Time: 1, Speed: 0, State: model.StatePatrol}))

	assert.InDelta(t, g.RestArch, got["leg_l2"].Rotation.Z(), tol)
	assert.InDelta(t, -g.RestArch, got["leg_r2"].Rotation.Z(), tol)
	assert.Equal(t, mgl64.Vec3{}, got["shin_l2"].Rotation)
	assert.InDelta(t, 1+g.BreathAmp*math.Sin(g.BreathRate), got["abdomen"].Scale.Y(), tol)
}

func TestAimTargets(t *testing.T) {
	start := byJoint(AimTargets(nil, 0, AimDraw))
	anchor := byJoint(AimTargets(nil, 1, AimDraw))
	mid := byJoint(AimTargets(nil, 0.5, AimDraw))
	over := byJoint(AimTargets(nil, 7, AimDraw))

	for i, joint := range aimJoints {
		assertVecNear(t, aimStart[i], start[joint].Rotation)
		assertVecNear(t, aimAnchor[i], anchor[joint].Rotation)
		assertVecNear(t, aimStart[i].Add(aimAnchor[i]).Mul(0.5), mid[joint].Rotation)
		assertVecNear(t, aimAnchor[i], over[joint].Rotation, "progress is clamped")
		assert.Equal(t, DrawRate, start[joint].Rate)
	}

	release := AimTargets(nil, 0, AimRelease)
	assert.Greater(t, release[0].Rate, DrawRate)
}

func TestBiped_AimOverridesArms(t *testing.T) {
	a := New(bipedGait())
	walking := byJoint(a.Targets(nil, Input{Clock: 1, Speed: 2, State: model.StatePatrol}))
	aiming := byJoint(a.Targets(nil, Input{State: model.StateAttack, Aim: AimDraw, Draw: 1}))

	assert.InDelta(t, -walking["leg_l"].Rotation.X(), walking["leg_r"].Rotation.X(), tol)
	assertVecNear(t, aimAnchor[1], aiming["arm_r"].Rotation)
	assert.Equal(t, DrawRate, aiming["arm_r"].Rate)
}

func TestApply_DampsAndSkipsMissingJoints(t *testing.T) {
	sk := model.NewSkeleton([]string{"leg_fl"})
	targets := []Target{
		rotTarget("leg_fl", mgl64.Vec3{1, 0, 0}, 10),
		rotTarget("tail", mgl64.Vec3{1, 0, 0}, 10),
	}

	Apply(sk, targets, 0.05) // factor 0.5
	j, _ := sk.Joint("leg_fl")
	assert.InDelta(t, 0.5, j.Rotation.X(), tol, "no popping: moved halfway")
	assert.Equal(t, 2, sk.Len(), "missing joint is not created")

	for range 100 {
		Apply(sk, targets, 0.05)
	}
	assert.InDelta(t, 1.0, j.Rotation.X(), 1e-6)
}

func TestDeathPose(t *testing.T) {
	quad := model.NewSkeleton(nil)
	DeathPose(quad, model.GaitQuadruped)
	assert.InDelta(t, math.Pi/2, quad.Root().Rotation.Z(), tol)

	spider := model.NewSkeleton([]string{"leg_l1", "shin_r3"})
	DeathPose(spider, model.GaitOctoped)
	assert.InDelta(t, math.Pi, spider.Root().Rotation.X(), tol)
	l1, _ := spider.Joint("leg_l1")
	assert.InDelta(t, 1.2, l1.Rotation.Z(), tol)
	r3, _ := spider.Joint("shin_r3")
	assert.InDelta(t, 1.4, r3.Rotation.Z(), tol)
}
