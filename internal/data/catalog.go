package data

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/fauna/internal/model"
)

//go:embed tables/species.yaml tables/spawns.yaml
var tables embed.FS

// ErrUnknownSpecies is returned when a species id has no descriptor.
var ErrUnknownSpecies = errors.New("unknown species")

// Catalog is the registry of species descriptors and spawn points.
// Read-only after loading.
type Catalog struct {
	species map[string]*model.Species
	order   []string
	spawns  []*model.Spawn
}

// NewCatalog validates species and spawns and indexes them.
// Every spawn must reference a known species.
func NewCatalog(species []*model.Species, spawns []*model.Spawn) (*Catalog, error) {
	c := &Catalog{
		species: make(map[string]*model.Species, len(species)),
		order:   make([]string, 0, len(species)),
		spawns:  spawns,
	}

	for _, sp := range species {
		if err := sp.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.species[sp.ID]; dup {
			return nil, fmt.Errorf("duplicate species %q", sp.ID)
		}
		c.species[sp.ID] = sp
		c.order = append(c.order, sp.ID)
	}

	for _, s := range spawns {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, ok := c.species[s.Species]; !ok {
			return nil, fmt.Errorf("spawn %d: %w %q", s.ID, ErrUnknownSpecies, s.Species)
		}
	}

	return c, nil
}

// Species returns descriptor by id.
func (c *Catalog) Species(id string) (*model.Species, error) {
	sp, ok := c.species[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSpecies, id)
	}
	return sp, nil
}

// SpeciesIDs returns species ids in table order.
func (c *Catalog) SpeciesIDs() []string {
	return slices.Clone(c.order)
}

// Spawns returns all spawn points.
func (c *Catalog) Spawns() []*model.Spawn {
	return c.spawns
}

// ParseSpecies decodes a YAML list of species descriptors.
func ParseSpecies(raw []byte) ([]*model.Species, error) {
	var species []*model.Species
	if err := yaml.Unmarshal(raw, &species); err != nil {
		return nil, fmt.Errorf("parsing species: %w", err)
	}
	return species, nil
}

// ParseSpawns decodes a YAML list of spawn points.
func ParseSpawns(raw []byte) ([]*model.Spawn, error) {
	var spawns []*model.Spawn
	if err := yaml.Unmarshal(raw, &spawns); err != nil {
		return nil, fmt.Errorf("parsing spawns: %w", err)
	}
	return spawns, nil
}

// Load builds a catalog from YAML files. An empty path selects the embedded table.
func Load(speciesPath, spawnsPath string) (*Catalog, error) {
	rawSpecies, err := readTable(speciesPath, "tables/species.yaml")
	if err != nil {
		return nil, err
	}
	rawSpawns, err := readTable(spawnsPath, "tables/spawns.yaml")
	if err != nil {
		return nil, err
	}

	species, err := ParseSpecies(rawSpecies)
	if err != nil {
		return nil, err
	}
	spawns, err := ParseSpawns(rawSpawns)
	if err != nil {
		return nil, err
	}

	c, err := NewCatalog(species, spawns)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}

	slog.Info("loaded data tables",
		"species", len(c.order),
		"spawns", len(c.spawns),
		"speciesFile", orEmbedded(speciesPath),
		"spawnsFile", orEmbedded(spawnsPath))
	return c, nil
}

// Default builds the catalog from embedded tables.
func Default() (*Catalog, error) {
	return Load("", "")
}

func readTable(path, embedded string) ([]byte, error) {
	if path == "" {
		raw, err := tables.ReadFile(embedded)
		if err != nil {
			return nil, fmt.Errorf("reading embedded %s: %w", embedded, err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return raw, nil
}

func orEmbedded(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
