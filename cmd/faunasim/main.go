package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/fauna/internal/ai"
	"github.com/udisondev/fauna/internal/config"
	"github.com/udisondev/fauna/internal/data"
	"github.com/udisondev/fauna/internal/db"
	"github.com/udisondev/fauna/internal/spawn"
	"github.com/udisondev/fauna/internal/steer"
	"github.com/udisondev/fauna/internal/world"
)

const DefaultConfigPath = "config/fauna.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := config.Path(DefaultConfigPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ai.SetLogLevel(parseLogLevel(cfg.LogLevel))
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: ai.LogLevel(),
	})).With("run", uuid.NewString()))

	slog.Info("faunasim starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"tick", cfg.TickRate,
		"database", cfg.Database.Enabled)

	speciesSrc, spawnSrc, closeSrc, err := openSources(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	terrain := steer.GenerateHeightMap(
		cfg.World.Terrain.Cells,
		cfg.World.Terrain.Cells,
		cfg.World.Terrain.CellSize,
		cfg.World.Terrain.Amplitude,
		cfg.World.Terrain.Seed,
	)
	bounds := cfg.World.Bounds()
	steering := steer.New(terrain, bounds)

	orch := world.New(world.Config{
		NearRadius:       cfg.NearRadius,
		VisibleRadius:    cfg.VisibleRadius,
		ClassifyInterval: cfg.ClassifyInterval,
		Obstacles:        cfg.World.Obstacles,
	}, nil)

	rng := rand.New(rand.NewPCG(cfg.RandSeed, cfg.RandSeed^0xDA3E39CB94B95BDB))
	spawnMgr := spawn.NewManager(speciesSrc, spawnSrc, orch, steering, bounds, rng)
	if err := spawnMgr.Load(ctx); err != nil {
		return fmt.Errorf("loading spawn tables: %w", err)
	}
	if _, err := spawnMgr.SpawnAll(); err != nil {
		return fmt.Errorf("spawning creatures: %w", err)
	}

	player := circlePath(cfg.Player, terrain)

	var hooks []world.FrameHook
	var hunter *world.Hunter
	if cfg.Hunter.Enabled {
		hunter = world.NewHunter(world.HunterConfig{
			FireInterval: cfg.Hunter.FireInterval,
			Damage:       cfg.Hunter.Damage,
			Range:        cfg.Hunter.Range,
			SkinReach:    cfg.Hunter.SkinReach,
		}, orch)
		hooks = append(hooks, hunter.Step)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return orch.Run(gctx, cfg.TickRate, player, hooks...)
	})
	g.Go(func() error {
		return orch.ReportStats(gctx, cfg.StatusInterval)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	stats := orch.Stats()
	slog.Info("faunasim stopped",
		"frames", stats.Frame,
		"simTime", stats.SimTime,
		"creatures", stats.Creatures,
		"spawned", spawnMgr.SpawnedCount(),
		"respawned", spawnMgr.RespawnedCount())

	if hunter != nil {
		hs := hunter.Stats()
		slog.Info("hunter summary",
			"shots", hs.Shots,
			"hits", hs.Hits,
			"accuracy", hs.Accuracy(),
			"loot", hs.Loot)
	}
	return nil
}

// openSources picks YAML tables or PostgreSQL as the species/spawn source.
func openSources(ctx context.Context, cfg config.Simulation) (spawn.SpeciesSource, spawn.SpawnSource, func(), error) {
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading data tables: %w", err)
	}
	if !cfg.Database.Enabled {
		src := spawn.NewCatalogSource(catalog)
		return src, src, func() {}, nil
	}

	dsn := cfg.Database.DSN()
	if err := db.RunMigrations(ctx, dsn); err != nil {
		return nil, nil, nil, fmt.Errorf("running migrations: %w", err)
	}
	database, err := db.New(ctx, dsn)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	slog.Info("database connected", "host", cfg.Database.Host, "dbname", cfg.Database.DBName)

	if cfg.Database.Seed {
		if err := seed(ctx, database, spawn.NewCatalogSource(catalog)); err != nil {
			database.Close()
			return nil, nil, nil, fmt.Errorf("seeding database: %w", err)
		}
	}

	return db.NewSpeciesRepository(database.Pool()),
		db.NewSpawnRepository(database.Pool()),
		database.Close,
		nil
}

func loadCatalog(cfg config.Simulation) (*data.Catalog, error) {
	if cfg.SpeciesFile == "" && cfg.SpawnsFile == "" {
		return data.Default()
	}
	return data.Load(cfg.SpeciesFile, cfg.SpawnsFile)
}

func seed(ctx context.Context, database *db.DB, src *spawn.CatalogSource) error {
	species, err := src.LoadSpecies(ctx)
	if err != nil {
		return err
	}
	spawns, err := src.LoadSpawns(ctx)
	if err != nil {
		return err
	}
	return database.Seed(ctx, species, spawns)
}

// circlePath walks the player around the origin at constant speed, on the ground.
func circlePath(p config.PlayerPath, terrain steer.Terrain) world.PlayerFunc {
	return func(t float64) mgl64.Vec3 {
		if p.Radius <= 0 {
			return mgl64.Vec3{0, terrain.HeightAt(0, 0), 0}
		}
		a := t * p.Speed / p.Radius
		x := p.Radius * math.Sin(a)
		z := p.Radius * math.Cos(a)
		return mgl64.Vec3{x, terrain.HeightAt(x, z), z}
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
