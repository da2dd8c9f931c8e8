// Package collision turns a host scene's triangle meshes into the static
// surface array libsm64 consumes at load time.
package collision

import (
	"github.com/softquake/sm64bridge/internal/convert"
	"github.com/softquake/sm64bridge/internal/scene"
	"github.com/softquake/sm64bridge/pkg/math"
	"github.com/softquake/sm64bridge/pkg/sm64"
)

// Result carries the extracted surfaces and the triangles rejected for
// leaving the engine's 16-bit coordinate range.
type Result struct {
	Surfaces []sm64.Surface
	Dropped  int
}

// Extract walks every mesh object in the scene and emits one Surface per
// triangle. Vertices are transformed to world space, converted to engine
// space around origin, and range checked: a triangle with any coordinate
// outside the representable range is dropped whole, since truncating a
// single vertex would leave a degenerate collision surface. Output is
// dense and preserves scene encounter order.
//
// This runs once per spawn; geometry edited mid-session requires a
// respawn.
func Extract(s *scene.Scene, origin math.Vec3, scale float32) Result {
	var res Result

	for _, obj := range s.MeshObjects() {
		terrain := resolveTerrain(obj)
		for _, tri := range obj.Mesh.Triangles {
			surf, ok := extractTriangle(obj, tri, terrain, origin, scale)
			if !ok {
				res.Dropped++
				continue
			}
			res.Surfaces = append(res.Surfaces, surf)
		}
	}

	return res
}

func extractTriangle(obj *scene.Object, tri scene.Triangle, terrain sm64.TerrainType, origin math.Vec3, scale float32) (sm64.Surface, bool) {
	var coords [9]int32
	for i := 0; i < 3; i++ {
		world := obj.WorldVertex(tri.Verts[i])
		x, y, z := convert.ToEngine(world, origin, scale)
		coords[3*i+0] = x
		coords[3*i+1] = y
		coords[3*i+2] = z
	}
	s := sm64.Surface{
		Type:    int16(resolveSurfaceType(obj.Mesh, tri)),
		Force:   0,
		Terrain: uint16(terrain),
	}
	if err := s.SetVerts(coords); err != nil {
		// ErrOutOfRange: the whole triangle is dropped, never clamped.
		return sm64.Surface{}, false
	}
	return s, true
}

// resolveTerrain walks the ancestor chain (including obj itself) for the
// nearest area root carrying a terrain annotation.
func resolveTerrain(obj *scene.Object) sm64.TerrainType {
	for seek := obj; seek != nil; seek = seek.Parent {
		if seek.AreaRoot && seek.Terrain != "" {
			if t, ok := sm64.TerrainByName(seek.Terrain); ok {
				return t
			}
			return sm64.TerrainGrass
		}
	}
	return sm64.TerrainGrass
}

// resolveSurfaceType reads the triangle's material slot annotation. Slot 0
// is the implicit default material.
func resolveSurfaceType(mesh *scene.Mesh, tri scene.Triangle) sm64.SurfaceType {
	if tri.MaterialIndex > 0 && tri.MaterialIndex < len(mesh.Materials) {
		if st, ok := sm64.SurfaceByName(mesh.Materials[tri.MaterialIndex].CollisionType); ok {
			return st
		}
	}
	return sm64.SurfaceDefault
}
