package spawn

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/udisondev/fauna/internal/ai"
	"github.com/udisondev/fauna/internal/data"
	"github.com/udisondev/fauna/internal/model"
	"github.com/udisondev/fauna/internal/world"
)

// SpeciesSource loads species descriptors.
type SpeciesSource interface {
	LoadSpecies(ctx context.Context) ([]*model.Species, error)
}

// SpawnSource loads spawn points.
type SpawnSource interface {
	LoadSpawns(ctx context.Context) ([]*model.Spawn, error)
}

// Manager builds creatures from species and spawn tables, registers them in
// the orchestrator and recycles corpses. All methods run on the frame loop
// goroutine; corpse and respawn handling goes through the orchestrator task queue.
type Manager struct {
	speciesSrc SpeciesSource
	spawnSrc   SpawnSource
	orch       *world.Orchestrator
	steering   ai.Steering
	bounds     model.Bounds
	rng        *rand.Rand

	species   map[string]*model.Species
	materials map[string]*model.MaterialLibrary // shared per species
	spawns    []*model.Spawn

	origin map[model.Handle]*model.Spawn
	live   map[int64][]model.Handle // spawnID -> live handles

	spawned   int
	respawned int
}

// NewManager creates new spawn manager. A nil rng gets a fixed seed.
func NewManager(
	speciesSrc SpeciesSource,
	spawnSrc SpawnSource,
	orch *world.Orchestrator,
	steering ai.Steering,
	bounds model.Bounds,
	rng *rand.Rand,
) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 1))
	}
	return &Manager{
		speciesSrc: speciesSrc,
		spawnSrc:   spawnSrc,
		orch:       orch,
		steering:   steering,
		bounds:     bounds,
		rng:        rng,
		species:    make(map[string]*model.Species),
		materials:  make(map[string]*model.MaterialLibrary),
		origin:     make(map[model.Handle]*model.Spawn),
		live:       make(map[int64][]model.Handle),
	}
}

// Load loads species and spawn tables from the sources.
func (m *Manager) Load(ctx context.Context) error {
	species, err := m.speciesSrc.LoadSpecies(ctx)
	if err != nil {
		return fmt.Errorf("loading species: %w", err)
	}
	for _, sp := range species {
		m.species[sp.ID] = sp
		m.materials[sp.ID] = model.NewMaterialLibrary(sp.Materials)
	}

	spawns, err := m.spawnSrc.LoadSpawns(ctx)
	if err != nil {
		return fmt.Errorf("loading spawns: %w", err)
	}
	for _, s := range spawns {
		if _, ok := m.species[s.Species]; !ok {
			return fmt.Errorf("spawn %d references species %q: %w", s.ID, s.Species, data.ErrUnknownSpecies)
		}
	}
	m.spawns = spawns

	slog.Info("spawn tables loaded", "species", len(m.species), "spawns", len(m.spawns))
	return nil
}

// SpawnAll fills every spawn point and pairs guards with hostiles.
// Returns number of spawned creatures.
func (m *Manager) SpawnAll() (int, error) {
	total := 0
	for _, s := range m.spawns {
		for range s.Count {
			if _, err := m.DoSpawn(s); err != nil {
				return total, err
			}
			total++
		}
	}

	tags := make(map[string]struct{})
	for _, s := range m.spawns {
		if s.PairTag != "" {
			tags[s.PairTag] = struct{}{}
		}
	}
	for tag := range tags {
		m.pair(tag)
	}

	slog.Info("spawn points filled", "creatures", total, "pairTags", len(tags))
	return total, nil
}

// DoSpawn creates one creature at a random point of spawn s.
func (m *Manager) DoSpawn(s *model.Spawn) (*ai.Creature, error) {
	sp, ok := m.species[s.Species]
	if !ok {
		return nil, fmt.Errorf("spawn %d: %w %q", s.ID, data.ErrUnknownSpecies, s.Species)
	}

	angle := m.rng.Float64() * 2 * math.Pi
	dist := m.rng.Float64() * s.Radius
	pos := m.bounds.Clamp(mgl64.Vec3{
		s.Center[0] + math.Sin(angle)*dist,
		s.Center[1],
		s.Center[2] + math.Cos(angle)*dist,
	})

	h := m.orch.NextHandle()
	env := ai.Env{
		Steering: m.steering,
		Bounds:   m.bounds,
		Tasks:    m.orch.Tasks(),
		Hits:     m.orch.Hits(),
		Rand:     rand.New(rand.NewPCG(m.rng.Uint64(), uint64(h))),
	}
	c := ai.NewCreature(h, sp, model.NewBody(sp, m.materials[sp.ID]), pos, env)
	c.SetAttackFunc(m.orch.Strike)
	c.SetDeathFunc(m.onDeath)

	m.orch.Add(c)
	m.origin[h] = s
	m.live[s.ID] = append(m.live[s.ID], h)
	m.spawned++

	slog.Debug("creature spawned",
		"handle", h,
		"species", sp.ID,
		"spawnID", s.ID,
		"position", c.Position(),
		"joints", c.Body().Skeleton.Len(),
		"hitNodes", m.orch.Hits().Parts(h))

	return c, nil
}

// pair points every live guard of tag's spawns at the first live hostile.
// Guards already paired with that hostile are left alone.
func (m *Manager) pair(tag string) {
	var guards []model.Handle
	hostile := model.InvalidHandle

	for _, s := range m.spawns {
		if s.PairTag != tag {
			continue
		}
		for _, h := range m.live[s.ID] {
			c, ok := m.orch.Get(h)
			if !ok || c.IsDead() {
				continue
			}
			switch {
			case c.Species().Kind == model.KindGuard:
				guards = append(guards, h)
			case !hostile.IsValid():
				hostile = h
			}
		}
	}
	if !hostile.IsValid() {
		return
	}

	for _, g := range guards {
		if cur, ok := m.orch.PairedWith(g); ok && cur == hostile {
			continue
		}
		if err := m.orch.Pair(g, hostile); err != nil {
			slog.Warn("pairing failed", "tag", tag, "guard", g, "hostile", hostile, "error", err)
		}
	}
}

// SpawnedCount returns number of creatures created so far, respawns included.
func (m *Manager) SpawnedCount() int { return m.spawned }

// RespawnedCount returns number of respawns.
func (m *Manager) RespawnedCount() int { return m.respawned }

// LiveCount returns number of registered creatures of a spawn point.
func (m *Manager) LiveCount(spawnID int64) int { return len(m.live[spawnID]) }
