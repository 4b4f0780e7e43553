package db

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/fauna/internal/model"
)

// SpawnRepository handles spawn point storage.
type SpawnRepository struct {
	pool *pgxpool.Pool
}

// NewSpawnRepository creates a new spawn repository
func NewSpawnRepository(pool *pgxpool.Pool) *SpawnRepository {
	return &SpawnRepository{pool: pool}
}

// LoadSpawns loads all spawn points ordered by id.
func (r *SpawnRepository) LoadSpawns(ctx context.Context) ([]*model.Spawn, error) {
	query := `
		SELECT spawn_id, species_id, x, y, z, count, radius, pair_tag
		FROM spawns
		ORDER BY spawn_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading all spawns: %w", err)
	}
	defer rows.Close()

	spawns := make([]*model.Spawn, 0, 32)
	for rows.Next() {
		var (
			s       model.Spawn
			x, y, z float64
		)
		if err := rows.Scan(&s.ID, &s.Species, &x, &y, &z, &s.Count, &s.Radius, &s.PairTag); err != nil {
			return nil, fmt.Errorf("scanning spawn row: %w", err)
		}
		s.Center = mgl64.Vec3{x, y, z}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		spawns = append(spawns, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating spawn rows: %w", err)
	}

	return spawns, nil
}

// SaveAllTx upserts spawn points within tx.
func (r *SpawnRepository) SaveAllTx(ctx context.Context, tx pgx.Tx, spawns []*model.Spawn) error {
	for _, s := range spawns {
		if _, err := tx.Exec(ctx,
			`INSERT INTO spawns (spawn_id, species_id, x, y, z, count, radius, pair_tag)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (spawn_id) DO UPDATE SET
			  species_id = $2, x = $3, y = $4, z = $5, count = $6, radius = $7, pair_tag = $8`,
			s.ID, s.Species, s.Center.X(), s.Center.Y(), s.Center.Z(), s.Count, s.Radius, s.PairTag,
		); err != nil {
			return fmt.Errorf("saving spawn %d: %w", s.ID, err)
		}
	}
	return nil
}
