package model

// HitKindCreature tags every hit-testable node of a creature.
const HitKindCreature = "creature"

// HitRootPart is the part key of the hitbox root.
const HitRootPart = ""

// HitMetadata is what external gameplay systems (hit tests, looting) read
// from a creature's collidable subtree. Owner is a lookup key, never a reference.
type HitMetadata struct {
	Kind         string
	Owner        Handle
	Species      string
	Part         string
	Skinnable    bool
	LootMaterial string
}

// HitTable is the side-table of hit metadata keyed by entity handle and part name.
// Not safe for concurrent use: owned by the single-threaded frame loop.
type HitTable struct {
	entries map[Handle]map[string]*HitMetadata
}

// NewHitTable creates an empty table.
func NewHitTable() *HitTable {
	return &HitTable{entries: make(map[Handle]map[string]*HitMetadata, 64)}
}

// Register creates metadata for owner's hitbox root and every part.
// Re-registering replaces previous entries.
func (t *HitTable) Register(owner Handle, species string, parts []string) {
	nodes := make(map[string]*HitMetadata, len(parts)+1)
	for _, part := range append([]string{HitRootPart}, parts...) {
		nodes[part] = &HitMetadata{
			Kind:    HitKindCreature,
			Owner:   owner,
			Species: species,
			Part:    part,
		}
	}
	t.entries[owner] = nodes
}

// Lookup returns a copy of metadata for owner's part.
func (t *HitTable) Lookup(owner Handle, part string) (HitMetadata, bool) {
	nodes, ok := t.entries[owner]
	if !ok {
		return HitMetadata{}, false
	}
	meta, ok := nodes[part]
	if !ok {
		return HitMetadata{}, false
	}
	return *meta, true
}

// SetSkinnable propagates skinnable flag and loot tag through owner's whole subtree.
// Returns false if owner is not registered.
func (t *HitTable) SetSkinnable(owner Handle, skinnable bool, loot string) bool {
	nodes, ok := t.entries[owner]
	if !ok {
		return false
	}
	for _, meta := range nodes {
		meta.Skinnable = skinnable
		meta.LootMaterial = loot
	}
	return true
}

// Remove drops all metadata of owner (despawn).
func (t *HitTable) Remove(owner Handle) {
	delete(t.entries, owner)
}

// Len returns number of registered owners.
func (t *HitTable) Len() int {
	return len(t.entries)
}

// Parts returns number of nodes registered for owner (root included).
func (t *HitTable) Parts(owner Handle) int {
	return len(t.entries[owner])
}
