package world

import (
	"context"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/fauna/internal/model"
)

func testHunter() HunterConfig {
	return HunterConfig{FireInterval: time.Second, Damage: 5, Range: 20, SkinReach: 2}
}

func TestHunter_ShootsAlongWalkingDirection(t *testing.T) {
	o := New(testConfig(), newFakeClock())
	deer := newCreature(t, o, species("deer", model.KindPrey), mgl64.Vec3{0, 0, 10})
	o.Frame(0.016, mgl64.Vec3{})

	h := NewHunter(testHunter(), o)
	h.Step(0.016, mgl64.Vec3{})
	assert.Zero(t, h.Stats().Shots, "no direction before the first move")

	h.Step(0.016, mgl64.Vec3{0, 0, 0.1})
	s := h.Stats()
	assert.Equal(t, 1, s.Shots)
	assert.Equal(t, 1, s.Hits)
	assert.False(t, deer.IsDead())

	h.Step(0.016, mgl64.Vec3{0, 0, 0.2})
	assert.Equal(t, 1, h.Stats().Shots, "fire interval not elapsed")
}

func TestHunter_MissesSideways(t *testing.T) {
	o := New(testConfig(), newFakeClock())
	newCreature(t, o, species("deer", model.KindPrey), mgl64.Vec3{0, 0, 10})
	o.Frame(0.016, mgl64.Vec3{})

	h := NewHunter(testHunter(), o)
	h.Step(0.016, mgl64.Vec3{})
	h.Step(0.016, mgl64.Vec3{0.1, 0, 0})

	s := h.Stats()
	assert.Equal(t, 1, s.Shots)
	assert.Zero(t, s.Hits)
	assert.Zero(t, s.Accuracy())
}

func TestHunter_StandingStillHoldsFire(t *testing.T) {
	o := New(testConfig(), newFakeClock())
	newCreature(t, o, species("deer", model.KindPrey), mgl64.Vec3{0, 0, 10})
	o.Frame(0.016, mgl64.Vec3{})

	h := NewHunter(testHunter(), o)
	for range 5 {
		h.Step(0.5, mgl64.Vec3{0, 0, 1})
	}
	assert.Zero(t, h.Stats().Shots)
}

func TestHunter_SkipsHiddenCreatures(t *testing.T) {
	o := New(testConfig(), newFakeClock())
	o.Frame(0.016, mgl64.Vec3{})
	// Added after the classification pass, so still hidden.
	newCreature(t, o, species("deer", model.KindPrey), mgl64.Vec3{0, 0, 10})

	h := NewHunter(testHunter(), o)
	h.Step(0.016, mgl64.Vec3{})
	h.Step(0.016, mgl64.Vec3{0, 0, 0.1})

	assert.Equal(t, 1, h.Stats().Shots)
	assert.Zero(t, h.Stats().Hits)
}

func TestHunter_ShootsThroughCorpses(t *testing.T) {
	o := New(testConfig(), newFakeClock())
	sp := species("deer", model.KindPrey)
	corpse := newCreature(t, o, sp, mgl64.Vec3{0, 0, 5})
	behind := newCreature(t, o, sp, mgl64.Vec3{0, 0, 10})
	require.NoError(t, o.Damage(corpse.Handle(), 100))
	o.Frame(0.016, mgl64.Vec3{})

	cfg := testHunter()
	cfg.Damage = 100
	cfg.SkinReach = 0
	h := NewHunter(cfg, o)
	h.Step(0.016, mgl64.Vec3{})
	h.Step(0.016, mgl64.Vec3{0, 0, 0.1})

	assert.Equal(t, 1, h.Stats().Hits)
	assert.True(t, behind.IsDead())
	assert.False(t, corpse.IsSkinned(), "corpse out of reach")
}

func TestHunter_SkinsCorpsesInReach(t *testing.T) {
	o := New(testConfig(), newFakeClock())
	sp := species("deer", model.KindPrey)
	near := newCreature(t, o, sp, mgl64.Vec3{0, 0, 5})
	far := newCreature(t, o, sp, mgl64.Vec3{30, 0, 0})
	alive := newCreature(t, o, sp, mgl64.Vec3{1, 0, 5})
	require.NoError(t, o.Damage(near.Handle(), 100))
	require.NoError(t, o.Damage(far.Handle(), 100))
	o.Frame(0.016, mgl64.Vec3{})

	h := NewHunter(testHunter(), o)
	h.Step(0.016, mgl64.Vec3{0, 0, 4})
	h.Step(0.016, mgl64.Vec3{0, 0, 4})

	assert.True(t, near.IsSkinned())
	assert.False(t, far.IsSkinned())
	assert.False(t, alive.IsSkinned())
	assert.Equal(t, map[string]int{"pelt": 1}, h.Stats().Loot, "corpse skinned once")
}

func TestHunterStats_Accuracy(t *testing.T) {
	assert.Zero(t, HunterStats{}.Accuracy())
	assert.Equal(t, 0.25, HunterStats{Shots: 4, Hits: 1}.Accuracy())
}

func TestHunter_StatsAreCopies(t *testing.T) {
	o := New(testConfig(), newFakeClock())
	h := NewHunter(testHunter(), o)
	s := h.Stats()
	s.Loot["pelt"] = 9
	assert.Empty(t, h.Stats().Loot)
}

func TestOrchestrator_RunCallsFrameHooks(t *testing.T) {
	o := New(testConfig(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var calls int
	var last mgl64.Vec3
	player := func(float64) mgl64.Vec3 { return mgl64.Vec3{3, 0, 4} }
	err := o.Run(ctx, 5*time.Millisecond, player, func(dt float64, p mgl64.Vec3) {
		calls++
		last = p
		assert.Equal(t, 0.005, dt)
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, calls)
	assert.Equal(t, uint64(calls), o.Stats().Frame, "one hook call per frame")
	assert.Equal(t, mgl64.Vec3{3, 0, 4}, last)
}
