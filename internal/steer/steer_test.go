package steer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/fauna/internal/model"
)

const eps = 1e-9

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{math.Pi / 2, math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, WrapAngle(tt.in), eps, "WrapAngle(%v)", tt.in)
	}
}

func TestLerpAngle_ShortestArc(t *testing.T) {
	// from 170° to -170° must cross π, not sweep through 0
	a := 170 * math.Pi / 180
	b := -170 * math.Pi / 180
	mid := LerpAngle(a, b, 0.5)
	assert.InDelta(t, math.Pi, math.Abs(mid), 1e-6)
}

func TestDampFactor(t *testing.T) {
	assert.InDelta(t, 0.16, DampFactor(10, 0.016), eps)
	assert.Equal(t, 1.0, DampFactor(25, 1))
	assert.Equal(t, 0.0, DampFactor(10, -1))
}

func TestSmoothLookAt_Converges(t *testing.T) {
	p := New(FlatTerrain(0), model.SquareBounds(100))
	from := mgl64.Vec3{0, 0, 0}
	target := mgl64.Vec3{10, 0, 0} // straight down +X, heading π/2

	facing := 0.0
	for range 200 {
		facing = p.SmoothLookAt(facing, target, from, 0.016, 8)
	}
	assert.InDelta(t, math.Pi/2, facing, 1e-3)

	// factor clamps at 1: one big step lands exactly
	assert.InDelta(t, math.Pi/2, p.SmoothLookAt(0, target, from, 1, 25), eps)
}

func TestAvoidanceSteering(t *testing.T) {
	p := New(FlatTerrain(0), model.SquareBounds(100))
	footprint := mgl64.Vec3{1, 1, 2}

	assert.Zero(t, p.AvoidanceSteering(mgl64.Vec3{}, 0, footprint, nil))

	wall := []model.Obstacle{{Center: mgl64.Vec3{0, 0, 3}, HalfExtent: mgl64.Vec3{0.5, 1, 0.5}}}
	offset := p.AvoidanceSteering(mgl64.Vec3{}, 0, footprint, wall)
	assert.NotZero(t, offset, "obstacle straight ahead must produce an offset")

	behind := []model.Obstacle{{Center: mgl64.Vec3{0, 0, -5}, HalfExtent: mgl64.Vec3{0.5, 1, 0.5}}}
	assert.Zero(t, p.AvoidanceSteering(mgl64.Vec3{}, 0, footprint, behind))
}

func TestNextPosition(t *testing.T) {
	p := New(FlatTerrain(0), model.SquareBounds(10))
	footprint := mgl64.Vec3{1, 1, 1}

	t.Run("free step", func(t *testing.T) {
		got := p.NextPosition(mgl64.Vec3{0, 5, 0}, 0, 2, 0.5, footprint, nil)
		assert.InDelta(t, 1.0, got.Z(), eps)
		assert.InDelta(t, 0.0, got.X(), eps)
		assert.Equal(t, 5.0, got.Y(), "y untouched")
	})

	t.Run("blocked stays put", func(t *testing.T) {
		wall := []model.Obstacle{{Center: mgl64.Vec3{0, 0, 1}, HalfExtent: mgl64.Vec3{5, 1, 0.5}}}
		start := mgl64.Vec3{0, 0, 0}
		got := p.NextPosition(start, 0, 2, 0.5, footprint, wall)
		assert.Equal(t, start, got)
	})

	t.Run("slides along wall", func(t *testing.T) {
		// moving diagonally (+X,+Z) into a wall spanning X: only X slide is free
		wall := []model.Obstacle{{Center: mgl64.Vec3{0, 0, 1.2}, HalfExtent: mgl64.Vec3{5, 1, 0.5}}}
		got := p.NextPosition(mgl64.Vec3{}, math.Pi/4, 1, 0.5, footprint, wall)
		assert.Greater(t, got.X(), 0.0)
		assert.InDelta(t, 0.0, got.Z(), eps)
	})

	t.Run("bounds", func(t *testing.T) {
		start := mgl64.Vec3{0, 0, 9.9}
		got := p.NextPosition(start, 0, 10, 1, footprint, nil)
		assert.Equal(t, start, got)
	})
}

func TestHeightMap(t *testing.T) {
	h := NewHeightMap(3, 3, 10) // spans -10..10 on both axes
	h.Set(1, 1, 4)              // center sample at world (0,0)

	assert.InDelta(t, 4.0, h.HeightAt(0, 0), eps)
	assert.InDelta(t, 2.0, h.HeightAt(5, 0), eps, "halfway to edge")
	assert.InDelta(t, 0.0, h.HeightAt(-100, 0), eps, "outside clamps to edge")
	h.Set(9, 9, 100) // ignored

	g1 := GenerateHeightMap(16, 16, 4, 3, 42)
	g2 := GenerateHeightMap(16, 16, 4, 3, 42)
	require.Equal(t, g1.HeightAt(7.3, -2.1), g2.HeightAt(7.3, -2.1))
	assert.LessOrEqual(t, math.Abs(g1.HeightAt(7.3, -2.1)), 3.0*(1+0.5+0.25))
}

func TestPrimitives_TerrainAndBounds(t *testing.T) {
	p := New(nil, model.SquareBounds(50))
	assert.Equal(t, 0.0, p.TerrainHeight(3, 3))
	assert.True(t, p.WithinBounds(mgl64.Vec3{50, 0, -50}))
	assert.False(t, p.WithinBounds(mgl64.Vec3{50.1, 0, 0}))
	assert.Equal(t, mgl64.Vec3{50, 7, -50}, p.bounds.Clamp(mgl64.Vec3{80, 7, -90}))
}
