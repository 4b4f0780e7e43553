package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/fauna/internal/model"
)

// Seed upserts species and spawns in a single transaction.
func (d *DB) Seed(ctx context.Context, species []*model.Species, spawns []*model.Spawn) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err.Error() != "tx is closed" {
			slog.Error("seed rollback failed", "error", err)
		}
	}()

	if err := NewSpeciesRepository(d.pool).SaveAllTx(ctx, tx, species); err != nil {
		return err
	}
	if err := NewSpawnRepository(d.pool).SaveAllTx(ctx, tx, spawns); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("database seeded", "species", len(species), "spawns", len(spawns))
	return nil
}
