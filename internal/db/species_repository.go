package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/fauna/internal/model"
)

// SpeciesRepository stores species descriptors as YAML documents.
type SpeciesRepository struct {
	pool *pgxpool.Pool
}

// NewSpeciesRepository creates a new species repository.
func NewSpeciesRepository(pool *pgxpool.Pool) *SpeciesRepository {
	return &SpeciesRepository{pool: pool}
}

// LoadSpecies loads and validates every species ordered by id.
func (r *SpeciesRepository) LoadSpecies(ctx context.Context) ([]*model.Species, error) {
	rows, err := r.pool.Query(ctx, `SELECT species_id, descriptor FROM species ORDER BY species_id`)
	if err != nil {
		return nil, fmt.Errorf("loading species: %w", err)
	}
	defer rows.Close()

	species := make([]*model.Species, 0, 16)
	for rows.Next() {
		var id, descriptor string
		if err := rows.Scan(&id, &descriptor); err != nil {
			return nil, fmt.Errorf("scanning species row: %w", err)
		}

		sp := new(model.Species)
		if err := yaml.Unmarshal([]byte(descriptor), sp); err != nil {
			return nil, fmt.Errorf("decoding species %q: %w", id, err)
		}
		if sp.ID != id {
			return nil, fmt.Errorf("species row %q holds descriptor %q", id, sp.ID)
		}
		if err := sp.Validate(); err != nil {
			return nil, fmt.Errorf("species %q: %w", id, err)
		}
		species = append(species, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating species rows: %w", err)
	}
	return species, nil
}

// SaveAllTx upserts species within tx.
func (r *SpeciesRepository) SaveAllTx(ctx context.Context, tx pgx.Tx, species []*model.Species) error {
	if len(species) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, sp := range species {
		raw, err := yaml.Marshal(sp)
		if err != nil {
			return fmt.Errorf("encoding species %q: %w", sp.ID, err)
		}
		batch.Queue(
			`INSERT INTO species (species_id, kind, descriptor, updated_at)
			 VALUES ($1, $2, $3, now())
			 ON CONFLICT (species_id) DO UPDATE SET
			  kind = $2, descriptor = $3, updated_at = now()`,
			sp.ID, string(sp.Kind), string(raw),
		)
	}

	br := tx.SendBatch(ctx, batch)
	for _, sp := range species {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return fmt.Errorf("saving species %q: %w", sp.ID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("closing species batch: %w", err)
	}
	return nil
}
