package model

// RGB is a 0xRRGGBB color.
type RGB uint32

// Material is a surface description. Base materials are shared between all live
// instances of a species and must not be mutated through a single instance.
type Material struct {
	Name     string
	Color    RGB
	Emissive RGB
}

// Clone returns a private copy of the material.
func (m *Material) Clone() *Material {
	c := *m
	return &c
}

// MaterialLibrary holds shared base materials of one species.
type MaterialLibrary struct {
	materials map[string]*Material
}

// NewMaterialLibrary builds base materials from species descriptor.
func NewMaterialLibrary(specs []MaterialSpec) *MaterialLibrary {
	lib := &MaterialLibrary{materials: make(map[string]*Material, len(specs))}
	for _, spec := range specs {
		lib.materials[spec.Name] = &Material{
			Name:     spec.Name,
			Color:    spec.Color,
			Emissive: spec.Emissive,
		}
	}
	return lib
}

// Get returns shared material by name.
func (l *MaterialLibrary) Get(name string) (*Material, bool) {
	m, ok := l.materials[name]
	return m, ok
}

// Part is a named piece of the visual subtree.
// Emissive is a per-instance override layered on top of the material (hit flash).
type Part struct {
	Name     string
	Material *Material
	Emissive RGB
	Primary  bool
}

// HealthBar is the floating health indicator.
type HealthBar struct {
	Fill    float64 // 0..1
	Visible bool
}

// Body is the visual subtree of a creature: visibility, parts, skeleton and UI.
type Body struct {
	Visible   bool
	Skeleton  *Skeleton
	Parts     []*Part
	HealthBar HealthBar
}

// NewBody creates body for a species using shared materials from lib.
// Parts referencing unknown materials get nil Material.
func NewBody(sp *Species, lib *MaterialLibrary) *Body {
	b := &Body{
		Visible:   true,
		Skeleton:  NewSkeleton(sp.Joints),
		Parts:     make([]*Part, 0, len(sp.Parts)),
		HealthBar: HealthBar{Fill: 1, Visible: true},
	}
	for _, ps := range sp.Parts {
		mat, _ := lib.Get(ps.Material)
		b.Parts = append(b.Parts, &Part{
			Name:     ps.Name,
			Material: mat,
			Primary:  ps.Primary,
		})
	}
	return b
}

// PartNames returns names of all parts in declaration order.
func (b *Body) PartNames() []string {
	names := make([]string, len(b.Parts))
	for i, p := range b.Parts {
		names[i] = p.Name
	}
	return names
}
