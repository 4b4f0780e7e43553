package model

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Spawn is a spawn point: Count creatures of Species scattered within Radius of Center.
// Creatures of spawns sharing a non-empty PairTag are paired guard/hostile.
type Spawn struct {
	ID      int64      `yaml:"id"`
	Species string     `yaml:"species"`
	Center  mgl64.Vec3 `yaml:"center"`
	Count   int        `yaml:"count"`
	Radius  float64    `yaml:"radius"`
	PairTag string     `yaml:"pair"`
}

// Validate checks that the spawn can produce creatures.
func (s *Spawn) Validate() error {
	if s.Species == "" {
		return fmt.Errorf("spawn %d: empty species", s.ID)
	}
	if s.Count <= 0 {
		return fmt.Errorf("spawn %d: count must be positive, got %d", s.ID, s.Count)
	}
	if s.Radius < 0 {
		return fmt.Errorf("spawn %d: radius must not be negative, got %v", s.ID, s.Radius)
	}
	return nil
}
