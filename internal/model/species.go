package model

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind selects which other entities a creature perceives and how it reacts to damage.
type Kind string

const (
	KindPredator Kind = "predator" // chases player and listed prey species
	KindPrey     Kind = "prey"     // flees when damaged
	KindAmbient  Kind = "ambient"  // roams, never engages
	KindGuard    Kind = "guard"    // engages only its paired hostile
)

// GaitFamily selects the procedural animator used for a species.
type GaitFamily string

const (
	GaitQuadruped GaitFamily = "quadruped"
	GaitOctoped   GaitFamily = "octoped"
	GaitBiped     GaitFamily = "biped"
)

// GaitSpec parametrizes the procedural animator. Angles are radians.
type GaitSpec struct {
	Family        GaitFamily `yaml:"family"`
	Trot          bool       `yaml:"trot"`            // diagonal pairs in phase (quadruped)
	StrideRate    float64    `yaml:"stride_rate"`     // clock radians per unit travelled
	MaxSwing      float64    `yaml:"max_swing"`       // swing amplitude cap
	SwingPerSpeed float64    `yaml:"swing_per_speed"` // swing amplitude per unit of speed
	KneeFlex      float64    `yaml:"knee_flex"`       // knee flex per unit of swing
	Bob           float64    `yaml:"bob"`             // torso bob height at full swing
	Lift          float64    `yaml:"lift"`            // octoped base joint lift
	Flex          float64    `yaml:"flex"`            // octoped secondary joint flex at full lift
	RestArch      float64    `yaml:"rest_arch"`       // octoped idle arch
	BreathRate    float64    `yaml:"breath_rate"`     // idle breathing, radians per second
	BreathAmp     float64    `yaml:"breath_amp"`      // idle breathing scale amplitude
	BlendRate     float64    `yaml:"blend_rate"`      // damping rate for locomotion targets
}

// CombatSpec describes engagement parameters; zero AggroRange disables engagement.
type CombatSpec struct {
	AggroRange     float64 `yaml:"aggro_range"`
	LeashRange     float64 `yaml:"leash_range"`
	AttackRange    float64 `yaml:"attack_range"`
	ChaseSpeed     float64 `yaml:"chase_speed"`
	AttackCooldown float64 `yaml:"attack_cooldown"` // seconds between melee strikes
	Damage         float64 `yaml:"damage"`
	Ranged         bool    `yaml:"ranged"`
	DrawTime       float64 `yaml:"draw_time"`    // seconds from 0 to full draw
	ReleaseTime    float64 `yaml:"release_time"` // recoil hold after release
}

// MaterialSpec is a shared base material of a species.
type MaterialSpec struct {
	Name     string `yaml:"name"`
	Color    RGB    `yaml:"color"`
	Emissive RGB    `yaml:"emissive"`
}

// PartSpec is a named visual part. Primary parts receive the hit flash.
type PartSpec struct {
	Name     string `yaml:"name"`
	Material string `yaml:"material"`
	Primary  bool   `yaml:"primary"`
}

// Species is the per-species descriptor that parametrizes the generic controller,
// the animator and the spawn manager.
type Species struct {
	ID     string     `yaml:"id"`
	Name   string     `yaml:"name"`
	Kind   Kind       `yaml:"kind"`
	Prey   []string   `yaml:"prey"`
	Gait   GaitSpec   `yaml:"gait"`
	Combat CombatSpec `yaml:"combat"`

	MaxHealth    float64    `yaml:"max_health"`
	BaseSpeed    float64    `yaml:"base_speed"`
	TurnRate     float64    `yaml:"turn_rate"`
	AvoidRate    float64    `yaml:"avoid_rate"`
	HeightOffset float64    `yaml:"height_offset"`
	Footprint    [3]float64 `yaml:"footprint"`

	PatrolRadius  float64 `yaml:"patrol_radius"`
	PatrolTimeout float64 `yaml:"patrol_timeout"`
	IdlePause     float64 `yaml:"idle_pause"`

	FleeSpeed    float64 `yaml:"flee_speed"`
	FleeRadius   float64 `yaml:"flee_radius"`
	FleeDuration float64 `yaml:"flee_duration"`
	FleeTurnRate float64 `yaml:"flee_turn_rate"`

	LootMaterial string `yaml:"loot_material"`
	SkinnedColor RGB    `yaml:"skinned_color"`

	Materials []MaterialSpec `yaml:"materials"`
	Parts     []PartSpec     `yaml:"parts"`
	Joints    []string       `yaml:"joints"`

	CorpseTime   float64 `yaml:"corpse_time"`   // seconds a corpse stays before despawn
	RespawnDelay float64 `yaml:"respawn_delay"` // seconds after despawn; 0 disables respawn
}

// FootprintVec returns collision footprint as a vector.
func (s *Species) FootprintVec() mgl64.Vec3 {
	return mgl64.Vec3{s.Footprint[0], s.Footprint[1], s.Footprint[2]}
}

// Engages reports whether the species ever leaves patrol to chase/attack.
func (s *Species) Engages() bool {
	return s.Combat.AggroRange > 0
}

// Flees reports whether damage triggers flee mode.
func (s *Species) Flees() bool {
	return s.Kind == KindPrey
}

// HuntsSpecies reports whether id is listed as prey of this species.
func (s *Species) HuntsSpecies(id string) bool {
	for _, p := range s.Prey {
		if p == id {
			return true
		}
	}
	return false
}

// Validate checks that the descriptor can drive a controller.
// All problems are reported at once.
func (s *Species) Validate() error {
	var errs []error
	if s.ID == "" {
		errs = append(errs, errors.New("empty id"))
	}
	switch s.Kind {
	case KindPredator, KindPrey, KindAmbient, KindGuard:
	default:
		errs = append(errs, fmt.Errorf("unknown kind %q", s.Kind))
	}
	switch s.Gait.Family {
	case GaitQuadruped, GaitOctoped, GaitBiped:
	default:
		errs = append(errs, fmt.Errorf("unknown gait family %q", s.Gait.Family))
	}
	if s.MaxHealth <= 0 {
		errs = append(errs, fmt.Errorf("max_health must be positive, got %v", s.MaxHealth))
	}
	if s.BaseSpeed < 0 {
		errs = append(errs, fmt.Errorf("base_speed must not be negative, got %v", s.BaseSpeed))
	}
	if s.PatrolTimeout <= 0 {
		errs = append(errs, fmt.Errorf("patrol_timeout must be positive, got %v", s.PatrolTimeout))
	}
	if s.Kind == KindPrey && (s.FleeSpeed <= 0 || s.FleeDuration <= 0) {
		errs = append(errs, errors.New("prey requires flee_speed and flee_duration"))
	}
	if s.Engages() && s.Combat.AttackRange <= 0 {
		errs = append(errs, errors.New("aggro_range set without attack_range"))
	}
	if s.Combat.Ranged && s.Combat.DrawTime <= 0 {
		errs = append(errs, errors.New("ranged combat requires draw_time"))
	}

	materials := make(map[string]struct{}, len(s.Materials))
	for _, m := range s.Materials {
		materials[m.Name] = struct{}{}
	}
	for _, p := range s.Parts {
		if _, ok := materials[p.Material]; !ok {
			errs = append(errs, fmt.Errorf("part %q references unknown material %q", p.Name, p.Material))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("species %q: %w", s.ID, errors.Join(errs...))
	}
	return nil
}
