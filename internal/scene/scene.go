// Package scene models the slice of the host editor's scene graph that
// collision extraction needs: mesh objects with world transforms, material
// collision annotations, and area-root terrain annotations inherited
// through the parent chain.
package scene

import "github.com/softquake/sm64bridge/pkg/math"

// Material carries an optional collision-type annotation, e.g.
// "SURFACE_SLIPPERY". An empty CollisionType means the default surface.
type Material struct {
	Name          string
	CollisionType string
}

// Triangle references three vertices of its mesh plus a material slot.
type Triangle struct {
	Verts         [3]int
	MaterialIndex int
}

// Mesh is triangulated geometry in object-local coordinates.
type Mesh struct {
	Vertices  []math.Vec3
	Triangles []Triangle
	Materials []Material
}

// Object is a node in the scene hierarchy. Mesh is nil for empties used
// only as grouping parents.
type Object struct {
	Name      string
	Transform math.Mat4 // world transform
	Parent    *Object
	Mesh      *Mesh

	// AreaRoot marks this object as a terrain-annotation root; Terrain
	// is the annotation string, e.g. "TERRAIN_SNOW". Descendant geometry
	// inherits the nearest ancestor's terrain.
	AreaRoot bool
	Terrain  string
}

// Scene is the full object set visible to extraction.
type Scene struct {
	Objects []*Object
}

// MeshObjects returns the objects that carry geometry, in scene order.
func (s *Scene) MeshObjects() []*Object {
	var out []*Object
	for _, obj := range s.Objects {
		if obj.Mesh != nil {
			out = append(out, obj)
		}
	}
	return out
}

// WorldVertex returns the i-th vertex of obj's mesh in host world space.
func (o *Object) WorldVertex(i int) math.Vec3 {
	return o.Transform.TransformVec3(o.Mesh.Vertices[i])
}
