package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/fauna/internal/model"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "FAUNA_CONFIG"

// Simulation holds all configuration of the simulation runner.
type Simulation struct {
	LogLevel string `yaml:"log_level"`

	// Frame loop
	TickRate         time.Duration `yaml:"tick_rate"`         // fixed frame period (default: 16ms)
	ClassifyInterval time.Duration `yaml:"classify_interval"` // near/visible refresh (default: 100ms)
	StatusInterval   time.Duration `yaml:"status_interval"`   // status log period (default: 5s)

	// Spatial tiers
	NearRadius    float64 `yaml:"near_radius"`
	VisibleRadius float64 `yaml:"visible_radius"`

	World World `yaml:"world"`

	// Data tables; empty means the embedded defaults
	SpeciesFile string `yaml:"species_file"`
	SpawnsFile  string `yaml:"spawns_file"`

	RandSeed uint64 `yaml:"rand_seed"`

	// Player path for the headless run
	Player PlayerPath `yaml:"player"`
	Hunter Hunter     `yaml:"hunter"`

	Database DatabaseConfig `yaml:"database"`
}

// World describes the static environment.
type World struct {
	HalfExtent float64          `yaml:"half_extent"`
	Terrain    Terrain          `yaml:"terrain"`
	Obstacles  []model.Obstacle `yaml:"obstacles"`
}

// Terrain parametrizes the generated heightmap.
type Terrain struct {
	Cells     int     `yaml:"cells"`     // grid points per side
	CellSize  float64 `yaml:"cell_size"` // world units between grid points
	Amplitude float64 `yaml:"amplitude"` // 0 gives flat ground
	Seed      uint64  `yaml:"seed"`
}

// PlayerPath is a circle the simulated player walks around.
type PlayerPath struct {
	Radius float64 `yaml:"radius"`
	Speed  float64 `yaml:"speed"` // units per second
}

// Hunter makes the simulated player shoot ahead and skin corpses in reach.
type Hunter struct {
	Enabled      bool          `yaml:"enabled"`
	FireInterval time.Duration `yaml:"fire_interval"`
	Damage       float64       `yaml:"damage"`
	Range        float64       `yaml:"range"`
	SkinReach    float64       `yaml:"skin_reach"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
// When Enabled is false species and spawns come from YAML tables.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	// Seed imports the YAML tables into the database before loading.
	Seed bool `yaml:"seed"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Bounds returns the world bounds box.
func (w World) Bounds() model.Bounds {
	return model.SquareBounds(w.HalfExtent)
}

// Default returns Simulation config with sensible defaults.
func Default() Simulation {
	return Simulation{
		LogLevel:         "info",
		TickRate:         16 * time.Millisecond,
		ClassifyInterval: 100 * time.Millisecond,
		StatusInterval:   5 * time.Second,
		NearRadius:       40,
		VisibleRadius:    150,
		World: World{
			HalfExtent: 200,
			Terrain: Terrain{
				Cells:     81,
				CellSize:  5,
				Amplitude: 3,
				Seed:      1,
			},
		},
		RandSeed: 42,
		Player: PlayerPath{
			Radius: 60,
			Speed:  4,
		},
		Hunter: Hunter{
			Enabled:      true,
			FireInterval: 1500 * time.Millisecond,
			Damage:       10,
			Range:        30,
			SkinReach:    3,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "fauna",
			Password: "fauna",
			DBName:   "fauna",
			SSLMode:  "disable",
		},
	}
}

// Load loads config from a YAML file on top of defaults.
// If the file doesn't exist, returns defaults.
func Load(path string) (Simulation, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Path returns the config path: FAUNA_CONFIG if set, otherwise fallback.
func Path(fallback string) string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return fallback
}

// Validate checks values that would make the simulation meaningless.
func (s Simulation) Validate() error {
	if s.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %v", s.TickRate)
	}
	if s.ClassifyInterval <= 0 {
		return fmt.Errorf("classify_interval must be positive, got %v", s.ClassifyInterval)
	}
	if s.StatusInterval <= 0 {
		return fmt.Errorf("status_interval must be positive, got %v", s.StatusInterval)
	}
	if s.NearRadius < 0 || s.VisibleRadius < 0 {
		return fmt.Errorf("tier radii must not be negative, got near=%v visible=%v", s.NearRadius, s.VisibleRadius)
	}
	if s.World.HalfExtent <= 0 {
		return fmt.Errorf("world half_extent must be positive, got %v", s.World.HalfExtent)
	}
	if s.Hunter.Enabled {
		if err := s.Hunter.validate(); err != nil {
			return fmt.Errorf("hunter: %w", err)
		}
	}
	return nil
}

func (h Hunter) validate() error {
	if h.FireInterval <= 0 {
		return fmt.Errorf("fire_interval must be positive, got %v", h.FireInterval)
	}
	if !(h.Damage > 0) || math.IsInf(h.Damage, 0) {
		return fmt.Errorf("damage must be positive and finite, got %v", h.Damage)
	}
	if !(h.Range > 0) || math.IsInf(h.Range, 0) {
		return fmt.Errorf("range must be positive and finite, got %v", h.Range)
	}
	if !(h.SkinReach >= 0) {
		return fmt.Errorf("skin_reach must not be negative, got %v", h.SkinReach)
	}
	return nil
}
