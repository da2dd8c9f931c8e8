// Package geometry converts the engine's per-frame triangle buffers back
// into an editable host mesh.
package geometry

import (
	"github.com/softquake/sm64bridge/internal/convert"
	"github.com/softquake/sm64bridge/pkg/math"
	"github.com/softquake/sm64bridge/pkg/sm64"
)

// MeshWriter is the produced host-scene collaborator: one persistent mesh
// preallocated at the engine's maximum triangle capacity, with vertex
// colors and a single UV layer. Vertices beyond the written range keep
// their last value; the degenerate zero-area triangles there are
// invisible and must not be cleared every frame.
type MeshWriter interface {
	SetVertex(i int, pos math.Vec3)
	SetUV(i int, u, v float32)
	SetColor(i int, r, g, b, a float32)
	Commit()
}

// BulkWriter is an optional lower-overhead position-only path, the
// equivalent of editing the mesh through a raw vertex handle instead of
// the per-element API.
type BulkWriter interface {
	Positions() []math.Vec3
	CommitPositions(n int)
}

// FullUpdateTicks is how many ticks after spawn the full decode path
// runs. The early frames carry the face/eye-opening animation, which
// needs UV and color writes; after that positions alone are enough.
const FullUpdateTicks = 15

// Decoder applies engine geometry to a host mesh, switching from the
// full to the fast path once the initial animation frames have settled.
type Decoder struct {
	origin math.Vec3
	scale  float32
	ticks  int
}

// NewDecoder returns a decoder using the session's origin and scale.
func NewDecoder(origin math.Vec3, scale float32) *Decoder {
	return &Decoder{origin: origin, scale: scale}
}

// Apply writes one frame of geometry to the mesh.
func (d *Decoder) Apply(w MeshWriter, geo *sm64.GeometryBuffers) {
	if d.ticks < FullUpdateTicks {
		Update(w, geo, d.origin, d.scale)
	} else {
		UpdateFast(w, geo, d.origin, d.scale)
	}
	d.ticks++
}

// triangleCount bounds the valid region of the buffers.
func triangleCount(geo *sm64.GeometryBuffers) int {
	n := int(geo.NumTrianglesUsed)
	if n > sm64.GeoMaxTriangles {
		n = sm64.GeoMaxTriangles
	}
	return n
}

// Update is the full decode: positions, UVs, and vertex colors for
// exactly 3*NumTrianglesUsed vertices, then a mesh commit.
func Update(w MeshWriter, geo *sm64.GeometryBuffers, origin math.Vec3, scale float32) {
	n := triangleCount(geo)
	for i := 0; i < n; i++ {
		for v := 0; v < 3; v++ {
			idx := 3*i + v
			p := convert.ToHost(
				geo.Position[9*i+3*v+0],
				geo.Position[9*i+3*v+1],
				geo.Position[9*i+3*v+2],
				origin, scale,
			)
			w.SetVertex(idx, p)
			w.SetUV(idx, geo.UV[6*i+2*v+0], geo.UV[6*i+2*v+1])
			w.SetColor(idx,
				geo.Color[9*i+3*v+0],
				geo.Color[9*i+3*v+1],
				geo.Color[9*i+3*v+2],
				1.0,
			)
		}
	}
	w.Commit()
}

// UpdateFast is the position-only decode. UV and color are assumed
// already converged. Falls back to the full writer API when the mesh has
// no bulk path.
func UpdateFast(w MeshWriter, geo *sm64.GeometryBuffers, origin math.Vec3, scale float32) {
	n := triangleCount(geo)

	bulk, ok := w.(BulkWriter)
	if !ok {
		for i := 0; i < 3*n; i++ {
			w.SetVertex(i, hostPosition(geo, i, origin, scale))
		}
		w.Commit()
		return
	}

	verts := bulk.Positions()
	for i := 0; i < 3*n && i < len(verts); i++ {
		verts[i] = hostPosition(geo, i, origin, scale)
	}
	bulk.CommitPositions(3 * n)
}

func hostPosition(geo *sm64.GeometryBuffers, vert int, origin math.Vec3, scale float32) math.Vec3 {
	return convert.ToHost(
		geo.Position[3*vert+0],
		geo.Position[3*vert+1],
		geo.Position[3*vert+2],
		origin, scale,
	)
}
