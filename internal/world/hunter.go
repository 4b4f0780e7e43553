package world

import (
	"errors"
	"log/slog"
	"maps"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/udisondev/fauna/internal/ai"
	"github.com/udisondev/fauna/internal/model"
)

const (
	aimHeight = 0.5  // shot origin above the player's feet
	shotStep  = 0.25 // sampling step along the shot
)

// HunterConfig tunes the scripted player.
type HunterConfig struct {
	FireInterval time.Duration
	Damage       float64
	Range        float64
	SkinReach    float64
}

// HunterStats counts what the scripted player did.
type HunterStats struct {
	Shots int
	Hits  int
	Loot  map[string]int // material -> corpses skinned
}

// Hunter is a scripted player: it shoots along its walking direction and
// skins corpses it passes by. Step has the signature of FrameHook.
type Hunter struct {
	cfg  HunterConfig
	orch *Orchestrator

	last     mgl64.Vec3
	started  bool
	cooldown float64

	shots int
	hits  int
	loot  map[string]int
}

// NewHunter creates a hunter acting on orch.
func NewHunter(cfg HunterConfig, orch *Orchestrator) *Hunter {
	return &Hunter{
		cfg:  cfg,
		orch: orch,
		loot: make(map[string]int),
	}
}

// Step runs one frame of the hunter at the player's new position.
func (h *Hunter) Step(dt float64, player mgl64.Vec3) {
	dir := player.Sub(h.last)
	dir[1] = 0
	moved := h.started && dir.Len() > 1e-9
	h.last = player
	h.started = true

	h.cooldown -= dt
	if moved && h.cooldown <= 0 {
		h.fire(player, dir.Normalize())
		h.cooldown = h.cfg.FireInterval.Seconds()
	}
	h.harvest(player)
}

// fire damages the first visible living creature along dir within range.
func (h *Hunter) fire(from, dir mgl64.Vec3) {
	h.shots++
	origin := from.Add(mgl64.Vec3{0, aimHeight, 0})

	for d := shotStep; d <= h.cfg.Range; d += shotStep {
		meta, ok := h.orch.HitTest(origin.Add(dir.Mul(d)))
		if !ok {
			continue
		}
		c, ok := h.orch.Get(meta.Owner)
		if !ok || c.IsDead() {
			continue
		}
		if cls, _ := h.orch.Classification(meta.Owner); !cls.Visible {
			continue
		}
		if err := h.orch.Damage(meta.Owner, h.cfg.Damage); err != nil {
			slog.Warn("shot failed", "target", meta.Owner, "error", err)
			return
		}
		h.hits++
		if ai.IsDebugEnabled() {
			slog.Debug("hunter hit",
				"target", meta.Owner,
				"species", meta.Species,
				"distance", d,
				"dead", c.IsDead())
		}
		return
	}
}

// harvest skins every unskinned corpse within reach.
func (h *Hunter) harvest(player mgl64.Vec3) {
	reachSq := h.cfg.SkinReach * h.cfg.SkinReach
	for _, c := range h.orch.Creatures() {
		if !c.IsDead() || c.IsSkinned() {
			continue
		}
		if model.PlanarDistanceSquared(c.Position(), player) > reachSq {
			continue
		}
		material, err := h.orch.Skin(c.Handle())
		if errors.Is(err, ErrNotSkinnable) {
			continue
		}
		if err != nil {
			slog.Warn("skinning failed", "handle", c.Handle(), "error", err)
			continue
		}
		h.loot[material]++
	}
}

// Stats returns the hunter's counters. Call it from the frame loop goroutine
// or after the loop has stopped.
func (h *Hunter) Stats() HunterStats {
	return HunterStats{Shots: h.shots, Hits: h.hits, Loot: maps.Clone(h.loot)}
}

// Accuracy returns the share of shots that hit, 0 before the first shot.
func (s HunterStats) Accuracy() float64 {
	if s.Shots == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Shots)
}
