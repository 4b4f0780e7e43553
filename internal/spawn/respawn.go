package spawn

import (
	"log/slog"
	"slices"

	"github.com/udisondev/fauna/internal/ai"
	"github.com/udisondev/fauna/internal/model"
)

// onDeath schedules corpse removal and, when the species respawns, a fresh
// creature at the original spawn point.
func (m *Manager) onDeath(c *ai.Creature) {
	h := c.Handle()
	sp := c.Species()

	slog.Info("creature died",
		"handle", h,
		"species", sp.ID,
		"corpseTime", sp.CorpseTime,
		"respawnDelay", sp.RespawnDelay)

	m.orch.Tasks().After(sp.CorpseTime, "corpse-despawn", func() {
		s, ok := m.despawn(h)
		if ok && sp.RespawnDelay > 0 {
			m.scheduleRespawn(s, sp.RespawnDelay)
		}
	})
}

// despawn removes the corpse and forgets its spawn point, which it returns.
func (m *Manager) despawn(h model.Handle) (*model.Spawn, bool) {
	if err := m.orch.Despawn(h); err != nil {
		slog.Warn("corpse despawn failed", "handle", h, "error", err)
	}
	s, ok := m.origin[h]
	if !ok {
		return nil, false
	}
	delete(m.origin, h)
	m.live[s.ID] = slices.DeleteFunc(m.live[s.ID], func(x model.Handle) bool { return x == h })
	return s, true
}

// scheduleRespawn refills spawn s with a fresh creature after delay seconds.
func (m *Manager) scheduleRespawn(s *model.Spawn, delay float64) {
	m.orch.Tasks().After(delay, "respawn", func() {
		if m.LiveCount(s.ID) >= s.Count {
			slog.Debug("respawn skipped (spawn full)", "spawnID", s.ID, "count", s.Count)
			return
		}

		c, err := m.DoSpawn(s)
		if err != nil {
			slog.Error("respawn failed", "spawnID", s.ID, "species", s.Species, "error", err)
			return
		}
		m.respawned++
		if s.PairTag != "" {
			m.pair(s.PairTag)
		}

		slog.Info("creature respawned",
			"handle", c.Handle(),
			"species", s.Species,
			"spawnID", s.ID)
	})
}
