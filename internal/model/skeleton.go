package model

import "github.com/go-gl/mathgl/mgl64"

// RootJoint is present in every skeleton and carries whole-body transforms.
const RootJoint = "root"

// Joint holds the local transform of one joint (Euler rotation in radians).
type Joint struct {
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
	Offset   mgl64.Vec3
}

// restJoint returns identity transform.
func restJoint() Joint {
	return Joint{Scale: mgl64.Vec3{1, 1, 1}}
}

// Skeleton - набор именованных суставов одного существа.
// Mutated only by the animator and the death pipeline.
type Skeleton struct {
	joints map[string]*Joint
}

// NewSkeleton creates skeleton with given joint names at rest pose.
// RootJoint is always added.
func NewSkeleton(names []string) *Skeleton {
	s := &Skeleton{joints: make(map[string]*Joint, len(names)+1)}
	root := restJoint()
	s.joints[RootJoint] = &root
	for _, name := range names {
		if _, ok := s.joints[name]; ok {
			continue
		}
		j := restJoint()
		s.joints[name] = &j
	}
	return s
}

// Joint returns joint by name. Species skeletons vary, callers must check ok.
func (s *Skeleton) Joint(name string) (*Joint, bool) {
	j, ok := s.joints[name]
	return j, ok
}

// Root returns the root joint.
func (s *Skeleton) Root() *Joint {
	return s.joints[RootJoint]
}

// Len returns number of joints including root.
func (s *Skeleton) Len() int {
	return len(s.joints)
}
