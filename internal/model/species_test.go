package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPrey() *Species {
	sp := testSpecies()
	sp.Gait = GaitSpec{Family: GaitQuadruped}
	sp.MaxHealth = 30
	sp.BaseSpeed = 2
	sp.PatrolTimeout = 12
	sp.FleeSpeed = 6
	sp.FleeDuration = 5
	return sp
}

func TestSpecies_Validate(t *testing.T) {
	require.NoError(t, validPrey().Validate())

	tests := []struct {
		name   string
		mutate func(*Species)
		substr string
	}{
		{"missing id", func(s *Species) { s.ID = "" }, "empty id"},
		{"bad kind", func(s *Species) { s.Kind = "dragon" }, "unknown kind"},
		{"bad gait", func(s *Species) { s.Gait.Family = "slither" }, "unknown gait"},
		{"no health", func(s *Species) { s.MaxHealth = 0 }, "max_health"},
		{"no flee", func(s *Species) { s.FleeSpeed = 0 }, "flee_speed"},
		{"aggro without range", func(s *Species) { s.Combat.AggroRange = 10 }, "attack_range"},
		{"ranged without draw", func(s *Species) { s.Combat.Ranged = true }, "draw_time"},
		{"unknown material", func(s *Species) { s.Parts[0].Material = "scales" }, "unknown material"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := validPrey()
			tt.mutate(sp)
			err := sp.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.substr)
		})
	}
}

func TestSpecies_Helpers(t *testing.T) {
	sp := &Species{Kind: KindPredator, Prey: []string{"deer", "boar"}, Footprint: [3]float64{1, 2, 3}}

	assert.True(t, sp.HuntsSpecies("deer"))
	assert.False(t, sp.HuntsSpecies("wolf"))
	assert.False(t, sp.Flees())
	assert.False(t, sp.Engages())
	assert.Equal(t, 3.0, sp.FootprintVec().Z())
}
