// Package sm64 defines the binary data model shared with libsm64.
//
// Everything in this package mirrors a fixed C ABI that is not under our
// control: field order, signedness, and width are load-bearing. The codec
// in this package is the only place allowed to interpret raw engine memory.
package sm64

// Engine constants fixed by libsm64.
const (
	// TextureWidth and TextureHeight describe the RGBA atlas filled in by
	// sm64_global_init. The atlas is eleven 64x64 tiles side by side.
	TextureWidth  = 64 * 11
	TextureHeight = 64

	// GeoMaxTriangles is the capacity of the per-frame geometry buffers.
	GeoMaxTriangles = 1024

	// ROMSize is the only ROM image size libsm64 accepts (8 MiB). The
	// library does no validation of its own, so callers must check this
	// before handing the bytes over.
	ROMSize = 8 * 1024 * 1024

	// DefaultScale is the default host-units-per-engine-unit divisor.
	DefaultScale = 50

	// SpawnLift is added to the engine-space Y coordinate at spawn so
	// Mario drops onto the ground instead of clipping through it.
	SpawnLift = 100

	// TickRate is the fixed timestep the engine physics assume.
	TickRate = 30
)

// CoordMax is the largest engine-space coordinate a Surface can carry.
const CoordMax = 0x7FFF

// Surface is one static collision triangle in engine space.
type Surface struct {
	Type          int16
	Force         int16
	Terrain       uint16
	V0X, V0Y, V0Z int16
	V1X, V1Y, V1Z int16
	V2X, V2Y, V2Z int16
}

// MarioInputs is the per-tick input block consumed by sm64_mario_tick.
// CamLook is the camera's look direction projected onto the engine's
// ground plane; Stick axes are deadzone-normalized to [-1, 1].
type MarioInputs struct {
	CamLookX float32
	CamLookZ float32
	StickX   float32
	StickY   float32
	ButtonA  bool
	ButtonB  bool
	ButtonZ  bool
}

// Zero resets every field to the neutral state.
func (in *MarioInputs) Zero() {
	*in = MarioInputs{}
}

// MarioState is the per-tick physics state written by sm64_mario_tick.
type MarioState struct {
	PosX, PosY, PosZ float32
	VelX, VelY, VelZ float32
	FaceAngle        float32
	Health           int16
}

// GeometryBuffers holds the engine's per-frame render geometry. The
// backing slices are allocated once at full capacity and overwritten in
// place every tick; only the first NumTrianglesUsed triangles are valid.
type GeometryBuffers struct {
	Position         []float32 // 3 floats per vertex, 3 vertices per triangle
	Normal           []float32 // same layout as Position
	Color            []float32 // same layout as Position
	UV               []float32 // 2 floats per vertex
	NumTrianglesUsed uint16
}

// NewGeometryBuffers allocates buffers sized for GeoMaxTriangles.
func NewGeometryBuffers() *GeometryBuffers {
	return &GeometryBuffers{
		Position: make([]float32, GeoMaxTriangles*3*3),
		Normal:   make([]float32, GeoMaxTriangles*3*3),
		Color:    make([]float32, GeoMaxTriangles*3*3),
		UV:       make([]float32, GeoMaxTriangles*3*2),
	}
}
