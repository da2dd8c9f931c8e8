package geometry

import (
	"github.com/softquake/sm64bridge/pkg/math"
	"github.com/softquake/sm64bridge/pkg/sm64"
)

// BufferMesh is an in-memory MeshWriter with a bulk position path. The
// demo commands use it as the produced mesh; hosts with a real scene
// graph supply their own writer instead.
type BufferMesh struct {
	Verts  []math.Vec3
	UVs    [][2]float32
	Colors [][4]float32

	Commits     int
	BulkCommits int
}

// NewBufferMesh allocates a mesh at the engine's full triangle capacity.
func NewBufferMesh() *BufferMesh {
	n := sm64.GeoMaxTriangles * 3
	return &BufferMesh{
		Verts:  make([]math.Vec3, n),
		UVs:    make([][2]float32, n),
		Colors: make([][4]float32, n),
	}
}

// SetVertex stores a vertex position.
func (m *BufferMesh) SetVertex(i int, pos math.Vec3) { m.Verts[i] = pos }

// SetUV stores a loop UV.
func (m *BufferMesh) SetUV(i int, u, v float32) { m.UVs[i] = [2]float32{u, v} }

// SetColor stores a loop color.
func (m *BufferMesh) SetColor(i int, r, g, b, a float32) {
	m.Colors[i] = [4]float32{r, g, b, a}
}

// Commit finalizes a full update.
func (m *BufferMesh) Commit() { m.Commits++ }

// Positions exposes the raw vertex array for the fast path.
func (m *BufferMesh) Positions() []math.Vec3 { return m.Verts }

// CommitPositions finalizes a position-only update.
func (m *BufferMesh) CommitPositions(n int) { m.BulkCommits++ }
