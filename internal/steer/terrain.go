package steer

import (
	"math"
	"math/rand/v2"
)

// Terrain samples ground height.
type Terrain interface {
	HeightAt(x, z float64) float64
}

// FlatTerrain is a terrain of constant height.
type FlatTerrain float64

// HeightAt returns the constant height.
func (f FlatTerrain) HeightAt(_, _ float64) float64 {
	return float64(f)
}

// HeightMap is a regular grid of heights centered at world origin.
// Samples between grid points are bilinearly interpolated; outside the grid
// the nearest edge sample is used.
type HeightMap struct {
	width   int // samples along X
	depth   int // samples along Z
	cell    float64
	originX float64
	originZ float64
	heights []float64
}

// NewHeightMap creates a flat heightmap with width×depth samples spaced cell apart.
func NewHeightMap(width, depth int, cell float64) *HeightMap {
	if width < 2 {
		width = 2
	}
	if depth < 2 {
		depth = 2
	}
	if cell <= 0 {
		cell = 1
	}
	return &HeightMap{
		width:   width,
		depth:   depth,
		cell:    cell,
		originX: -float64(width-1) * cell / 2,
		originZ: -float64(depth-1) * cell / 2,
		heights: make([]float64, width*depth),
	}
}

// GenerateHeightMap fills a heightmap with rolling hills from a few seeded sine octaves.
// Same seed always yields the same terrain.
func GenerateHeightMap(width, depth int, cell, amplitude float64, seed uint64) *HeightMap {
	h := NewHeightMap(width, depth, cell)
	r := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))

	type octave struct{ fx, fz, phase, amp float64 }
	octaves := make([]octave, 3)
	for i := range octaves {
		scale := float64(int(1) << i)
		octaves[i] = octave{
			fx:    (0.02 + r.Float64()*0.02) * scale,
			fz:    (0.02 + r.Float64()*0.02) * scale,
			phase: r.Float64() * 2 * math.Pi,
			amp:   amplitude / scale,
		}
	}

	for iz := range h.depth {
		for ix := range h.width {
			x := h.originX + float64(ix)*cell
			z := h.originZ + float64(iz)*cell
			y := 0.0
			for _, o := range octaves {
				y += o.amp * math.Sin(x*o.fx+o.phase) * math.Cos(z*o.fz-o.phase)
			}
			h.Set(ix, iz, y)
		}
	}
	return h
}

// Set sets height of grid sample (ix, iz). Out of range indices are ignored.
func (h *HeightMap) Set(ix, iz int, y float64) {
	if ix < 0 || ix >= h.width || iz < 0 || iz >= h.depth {
		return
	}
	h.heights[iz*h.width+ix] = y
}

func (h *HeightMap) sample(ix, iz int) float64 {
	ix = min(max(ix, 0), h.width-1)
	iz = min(max(iz, 0), h.depth-1)
	return h.heights[iz*h.width+ix]
}

// HeightAt returns interpolated height at world (x, z).
func (h *HeightMap) HeightAt(x, z float64) float64 {
	gx := (x - h.originX) / h.cell
	gz := (z - h.originZ) / h.cell
	gx = math.Max(0, math.Min(gx, float64(h.width-1)))
	gz = math.Max(0, math.Min(gz, float64(h.depth-1)))

	x0 := int(math.Floor(gx))
	z0 := int(math.Floor(gz))
	dx := gx - float64(x0)
	dz := gz - float64(z0)

	h00 := h.sample(x0, z0)
	h10 := h.sample(x0+1, z0)
	h01 := h.sample(x0, z0+1)
	h11 := h.sample(x0+1, z0+1)

	h0 := h00*(1-dx) + h10*dx
	h1 := h01*(1-dx) + h11*dx
	return h0*(1-dz) + h1*dz
}
