package main

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/fauna/internal/config"
	"github.com/udisondev/fauna/internal/steer"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), tt.in)
	}
}

func TestCirclePath(t *testing.T) {
	path := circlePath(config.PlayerPath{Radius: 10, Speed: 5}, steer.FlatTerrain(2))

	start := path(0)
	assert.InDelta(t, 0, start.X(), 1e-9)
	assert.InDelta(t, 2, start.Y(), 1e-9)
	assert.InDelta(t, 10, start.Z(), 1e-9)

	// Quarter lap: arc length 5π at speed 5.
	q := path(math.Pi)
	assert.InDelta(t, 10, q.X(), 1e-9)
	assert.InDelta(t, 0, q.Z(), 1e-9)

	for _, tm := range []float64{0.3, 1.7, 12} {
		p := path(tm)
		assert.InDelta(t, 10, math.Hypot(p.X(), p.Z()), 1e-9)
	}
}

func TestCirclePath_ZeroRadiusStandsStill(t *testing.T) {
	path := circlePath(config.PlayerPath{Radius: 0, Speed: 5}, steer.FlatTerrain(1))
	assert.Equal(t, path(0), path(100))
}

func TestLoadCatalog(t *testing.T) {
	cfg := config.Default()
	embedded, err := loadCatalog(cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, embedded.SpeciesIDs())

	dir := t.TempDir()
	cfg.SpawnsFile = filepath.Join(dir, "spawns.yaml")
	require.NoError(t, os.WriteFile(cfg.SpawnsFile, []byte("[]\n"), 0o600))

	custom, err := loadCatalog(cfg)
	require.NoError(t, err)
	assert.Equal(t, embedded.SpeciesIDs(), custom.SpeciesIDs(), "species still embedded")
	assert.Empty(t, custom.Spawns())

	cfg.SpeciesFile = filepath.Join(dir, "absent.yaml")
	_, err = loadCatalog(cfg)
	assert.Error(t, err)
}
