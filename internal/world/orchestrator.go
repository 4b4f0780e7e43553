package world

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/udisondev/fauna/internal/ai"
	"github.com/udisondev/fauna/internal/model"
)

// DefaultClassifyInterval is the wall-clock period of the classification pass.
const DefaultClassifyInterval = 100 * time.Millisecond

// Config holds orchestrator tuning.
type Config struct {
	NearRadius       float64
	VisibleRadius    float64
	ClassifyInterval time.Duration
	Obstacles        []model.Obstacle
}

// FrameStats is a snapshot of the last completed frame.
type FrameStats struct {
	Frame        uint64
	SimTime      float64
	Creatures    int
	Visible      int
	Near         int
	Dead         int
	PendingTasks int
	PlayerHits   int
	PlayerDamage float64
	Handles      int // handles issued so far, respawns included
	HitOwners    int // creatures with hit metadata registered
}

// Orchestrator owns every live creature and drives them once per frame.
// All methods except Stats must be called from the frame loop goroutine.
type Orchestrator struct {
	cfg   Config
	clock Clock

	tasks   *ai.TaskQueue
	hits    *model.HitTable
	handles *HandleAllocator

	order     []ai.Controller // combined view, insertion order
	bySpecies map[string][]ai.Controller
	index     map[model.Handle]ai.Controller
	pairs     map[model.Handle]model.Handle // guard -> hostile

	classes     map[model.Handle]model.Classification
	lastRefresh time.Time

	player mgl64.Vec3         // scratch copy of the player position
	pool   []model.TargetView // reusable target views

	frame        uint64
	playerHits   int
	playerDamage float64

	statsMu sync.Mutex
	stats   FrameStats
}

// New creates an empty orchestrator. A nil clock means the system clock.
func New(cfg Config, clock Clock) *Orchestrator {
	if cfg.ClassifyInterval <= 0 {
		cfg.ClassifyInterval = DefaultClassifyInterval
	}
	if clock == nil {
		clock = SystemClock{}
	}
	o := &Orchestrator{
		cfg:       cfg,
		clock:     clock,
		tasks:     ai.NewTaskQueue(),
		hits:      model.NewHitTable(),
		handles:   NewHandleAllocator(),
		bySpecies: make(map[string][]ai.Controller),
		index:     make(map[model.Handle]ai.Controller, 64),
		pairs:     make(map[model.Handle]model.Handle),
		classes:   make(map[model.Handle]model.Classification, 64),
		pool:      make([]model.TargetView, 0, 16),
	}
	return o
}

// Tasks returns the simulation-time task queue advanced every frame.
func (o *Orchestrator) Tasks() *ai.TaskQueue { return o.tasks }

// Hits returns the hit metadata side-table.
func (o *Orchestrator) Hits() *model.HitTable { return o.hits }

// NextHandle allocates a fresh creature handle.
func (o *Orchestrator) NextHandle() model.Handle { return o.handles.Next() }

// Add registers a creature. It stays unclassified (hidden) until the next
// classification pass.
func (o *Orchestrator) Add(c ai.Controller) {
	h := c.Handle()
	if _, exists := o.index[h]; exists {
		slog.Warn("creature already registered", "handle", h)
		return
	}
	id := c.Species().ID
	o.order = append(o.order, c)
	o.bySpecies[id] = append(o.bySpecies[id], c)
	o.index[h] = c

	slog.Debug("creature added",
		"handle", h,
		"species", id,
		"position", c.Position(),
		"total", len(o.order))
}

// Despawn removes a creature from every collection, the classification cache,
// pairings and the hit table.
func (o *Orchestrator) Despawn(h model.Handle) error {
	c, ok := o.index[h]
	if !ok {
		return fmt.Errorf("despawning %s: %w", h, ErrUnknownEntity)
	}
	id := c.Species().ID

	delete(o.index, h)
	delete(o.classes, h)
	o.hits.Remove(h)

	same := func(x ai.Controller) bool { return x.Handle() == h }
	o.order = slices.DeleteFunc(o.order, same)
	o.bySpecies[id] = slices.DeleteFunc(o.bySpecies[id], same)
	if len(o.bySpecies[id]) == 0 {
		delete(o.bySpecies, id)
	}

	delete(o.pairs, h)
	for guard, hostile := range o.pairs {
		if hostile == h {
			delete(o.pairs, guard)
		}
	}

	slog.Debug("creature despawned", "handle", h, "species", id, "total", len(o.order))
	return nil
}

// Get returns creature by handle.
func (o *Orchestrator) Get(h model.Handle) (ai.Controller, bool) {
	c, ok := o.index[h]
	return c, ok
}

// Creatures returns the combined view in insertion order. Callers must not modify it.
func (o *Orchestrator) Creatures() []ai.Controller { return o.order }

// Species returns live creatures of one species in insertion order.
func (o *Orchestrator) Species(id string) []ai.Controller { return o.bySpecies[id] }

// Len returns number of registered creatures.
func (o *Orchestrator) Len() int { return len(o.order) }

// Pair makes guard perceive hostile as its only target.
func (o *Orchestrator) Pair(guard, hostile model.Handle) error {
	if _, ok := o.index[guard]; !ok {
		return fmt.Errorf("pairing guard %s: %w", guard, ErrUnknownEntity)
	}
	if _, ok := o.index[hostile]; !ok {
		return fmt.Errorf("pairing hostile %s: %w", hostile, ErrUnknownEntity)
	}
	o.pairs[guard] = hostile
	return nil
}

// PairedWith returns the hostile a guard is paired with.
func (o *Orchestrator) PairedWith(guard model.Handle) (model.Handle, bool) {
	h, ok := o.pairs[guard]
	return h, ok
}

// Classification returns the cached tiers of a creature.
func (o *Orchestrator) Classification(h model.Handle) (model.Classification, bool) {
	c, ok := o.classes[h]
	return c, ok
}

// Pick resolves hit metadata of a creature part.
func (o *Orchestrator) Pick(h model.Handle, part string) (model.HitMetadata, error) {
	meta, ok := o.hits.Lookup(h, part)
	if !ok {
		return model.HitMetadata{}, fmt.Errorf("picking %s part %q: %w", h, part, ErrUnknownEntity)
	}
	return meta, nil
}

// HitTest returns hitbox root metadata of the first creature whose hitbox
// contains point.
func (o *Orchestrator) HitTest(point mgl64.Vec3) (model.HitMetadata, bool) {
	for _, c := range o.order {
		box := c.Hitbox()
		if !box.Contains(point) {
			continue
		}
		if meta, ok := o.hits.Lookup(box.Owner, model.HitRootPart); ok {
			return meta, true
		}
	}
	return model.HitMetadata{}, false
}

// Damage applies player damage to a creature.
func (o *Orchestrator) Damage(h model.Handle, amount float64) error {
	c, ok := o.index[h]
	if !ok {
		return fmt.Errorf("damaging %s: %w", h, ErrUnknownEntity)
	}
	c.ApplyDamage(amount)
	return nil
}

// Skin harvests a corpse and returns its loot material.
func (o *Orchestrator) Skin(h model.Handle) (string, error) {
	c, ok := o.index[h]
	if !ok {
		return "", fmt.Errorf("skinning %s: %w", h, ErrUnknownEntity)
	}
	meta, err := o.Pick(h, model.HitRootPart)
	if err != nil || !meta.Skinnable || c.IsSkinned() {
		return "", fmt.Errorf("skinning %s: %w", h, ErrNotSkinnable)
	}
	c.MarkAsSkinned()

	slog.Info("creature skinned", "handle", h, "species", meta.Species, "loot", meta.LootMaterial)
	return meta.LootMaterial, nil
}

// Strike resolves a creature attack. It has the signature of ai.AttackFunc.
// A creature only hurts its prey species or the hostile it is paired with.
func (o *Orchestrator) Strike(attacker *ai.Creature, target model.TargetView) {
	sp := attacker.Species()
	if target.Player {
		o.playerHits++
		o.playerDamage += sp.Combat.Damage
		return
	}

	victim, ok := o.index[target.Handle]
	if !ok {
		return
	}
	paired, isPaired := o.pairs[attacker.Handle()]
	if !sp.HuntsSpecies(victim.Species().ID) && (!isPaired || paired != target.Handle) {
		if ai.IsDebugEnabled() {
			slog.Debug("strike ignored",
				"attacker", attacker.Handle(),
				"target", target.Handle,
				"species", victim.Species().ID)
		}
		return
	}
	victim.ApplyDamage(sp.Combat.Damage)
}

// Frame runs one tick: due tasks, the throttled classification pass, then
// every creature's update in insertion order.
func (o *Orchestrator) Frame(dt float64, player mgl64.Vec3) {
	o.tasks.Advance(dt)
	o.player = player

	now := o.clock.Now()
	if o.lastRefresh.IsZero() || now.Sub(o.lastRefresh) >= o.cfg.ClassifyInterval {
		o.classify()
		o.lastRefresh = now
	}

	var visible, near, dead int
	for _, c := range o.order {
		cls := o.classes[c.Handle()]
		c.Body().Visible = cls.Visible
		if c.IsDead() {
			dead++
		}
		if !cls.Visible {
			continue
		}
		visible++
		if cls.Near {
			near++
		}
		c.Update(dt, o.cfg.Obstacles, o.targetsFor(c), !cls.Near)
	}

	o.frame++
	o.statsMu.Lock()
	o.stats = FrameStats{
		Frame:        o.frame,
		SimTime:      o.tasks.Now(),
		Creatures:    len(o.order),
		Visible:      visible,
		Near:         near,
		Dead:         dead,
		PendingTasks: o.tasks.Len(),
		PlayerHits:   o.playerHits,
		PlayerDamage: o.playerDamage,
		Handles:      o.handles.Issued(),
		HitOwners:    o.hits.Len(),
	}
	o.statsMu.Unlock()
}

// classify recomputes tiers of every creature from scratch.
func (o *Orchestrator) classify() {
	clear(o.classes)
	for _, c := range o.order {
		distSq := model.PlanarDistanceSquared(c.Position(), o.player)
		o.classes[c.Handle()] = model.Classify(distSq, o.cfg.NearRadius, o.cfg.VisibleRadius)
	}

	if ai.IsDebugEnabled() {
		slog.Debug("classification refreshed", "creatures", len(o.order))
	}
}

// targetsFor overwrites the target pool with whatever c perceives:
// predators see the player and their prey species, guards their paired
// hostile, everything else nothing.
func (o *Orchestrator) targetsFor(c ai.Controller) []model.TargetView {
	o.pool = o.pool[:0]
	sp := c.Species()

	switch sp.Kind {
	case model.KindPredator:
		o.pool = append(o.pool, model.TargetView{Position: o.player, Player: true})
		for _, preyID := range sp.Prey {
			for _, other := range o.bySpecies[preyID] {
				if other.Handle() == c.Handle() {
					continue
				}
				o.pool = append(o.pool, view(other))
			}
		}
	case model.KindGuard:
		if h, ok := o.pairs[c.Handle()]; ok {
			if other, ok := o.index[h]; ok {
				o.pool = append(o.pool, view(other))
			}
		}
	}
	return o.pool
}

func view(c ai.Controller) model.TargetView {
	return model.TargetView{
		Handle:   c.Handle(),
		Position: c.Position(),
		Dead:     c.IsDead(),
	}
}

// Stats returns the last frame snapshot. Safe to call from any goroutine.
func (o *Orchestrator) Stats() FrameStats {
	o.statsMu.Lock()
	defer o.statsMu.Unlock()
	return o.stats
}
