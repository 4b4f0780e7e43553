package spawn

import (
	"context"

	"github.com/udisondev/fauna/internal/data"
	"github.com/udisondev/fauna/internal/model"
)

// CatalogSource implements SpeciesSource and SpawnSource over YAML tables.
type CatalogSource struct {
	catalog *data.Catalog
}

// NewCatalogSource creates a CatalogSource adapter.
func NewCatalogSource(c *data.Catalog) *CatalogSource {
	return &CatalogSource{catalog: c}
}

// LoadSpecies returns catalog species in table order.
func (s *CatalogSource) LoadSpecies(_ context.Context) ([]*model.Species, error) {
	ids := s.catalog.SpeciesIDs()
	species := make([]*model.Species, 0, len(ids))
	for _, id := range ids {
		sp, err := s.catalog.Species(id)
		if err != nil {
			return nil, err
		}
		species = append(species, sp)
	}
	return species, nil
}

// LoadSpawns returns catalog spawn points.
func (s *CatalogSource) LoadSpawns(_ context.Context) ([]*model.Spawn, error) {
	return s.catalog.Spawns(), nil
}
