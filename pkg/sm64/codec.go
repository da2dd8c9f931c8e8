package sm64

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Codec errors.
var (
	// ErrOutOfRange reports a value that does not fit its wire field.
	ErrOutOfRange = errors.New("value out of range for wire format")

	// ErrShortBuffer reports a destination or source buffer smaller than
	// the fixed struct size.
	ErrShortBuffer = errors.New("buffer too small for struct")
)

// Wire sizes of the structs exchanged with libsm64, in bytes. These match
// the C struct layouts including tail padding and must never change.
const (
	SurfaceSize = 24 // 3x int16 header + 9x int16 vertex coordinates
	InputsSize  = 20 // 4x float32 + 3x uint8 + 1 byte tail padding
	StateSize   = 32 // 7x float32 + int16 + 2 bytes tail padding
)

// Field offsets inside the Surface wire struct.
const (
	surfTypeOff    = 0
	surfForceOff   = 2
	surfTerrainOff = 4
	surfVertsOff   = 6 // v0x v0y v0z v1x v1y v1z v2x v2y v2z, int16 each
)

// Field offsets inside the MarioInputs wire struct.
const (
	inCamLookXOff = 0
	inCamLookZOff = 4
	inStickXOff   = 8
	inStickYOff   = 12
	inButtonAOff  = 16
	inButtonBOff  = 17
	inButtonZOff  = 18
)

// Field offsets inside the MarioState wire struct.
const (
	stPosOff       = 0  // posX posY posZ
	stVelOff       = 12 // velX velY velZ
	stFaceAngleOff = 24
	stHealthOff    = 28
)

// CoordInRange reports whether v fits the int16 surface coordinate field.
func CoordInRange(v int32) bool {
	return v >= -CoordMax && v <= CoordMax
}

// SetVerts narrows nine engine-space int32 coordinates (x y z per
// vertex) into the int16 vertex fields. Returns ErrOutOfRange, leaving
// s untouched, when any coordinate does not fit.
func (s *Surface) SetVerts(coords [9]int32) error {
	for _, c := range coords {
		if !CoordInRange(c) {
			return fmt.Errorf("vertex coordinate %d: %w", c, ErrOutOfRange)
		}
	}
	s.V0X, s.V0Y, s.V0Z = int16(coords[0]), int16(coords[1]), int16(coords[2])
	s.V1X, s.V1Y, s.V1Z = int16(coords[3]), int16(coords[4]), int16(coords[5])
	s.V2X, s.V2Y, s.V2Z = int16(coords[6]), int16(coords[7]), int16(coords[8])
	return nil
}

// EncodeSurface writes s into buf at the fixed offsets.
func EncodeSurface(buf []byte, s *Surface) error {
	if len(buf) < SurfaceSize {
		return fmt.Errorf("encoding surface: %w", ErrShortBuffer)
	}
	le := binary.LittleEndian
	le.PutUint16(buf[surfTypeOff:], uint16(s.Type))
	le.PutUint16(buf[surfForceOff:], uint16(s.Force))
	le.PutUint16(buf[surfTerrainOff:], s.Terrain)
	verts := [9]int16{
		s.V0X, s.V0Y, s.V0Z,
		s.V1X, s.V1Y, s.V1Z,
		s.V2X, s.V2Y, s.V2Z,
	}
	for i, v := range verts {
		le.PutUint16(buf[surfVertsOff+2*i:], uint16(v))
	}
	return nil
}

// DecodeSurface reads a Surface from buf at the fixed offsets.
func DecodeSurface(buf []byte) (Surface, error) {
	if len(buf) < SurfaceSize {
		return Surface{}, fmt.Errorf("decoding surface: %w", ErrShortBuffer)
	}
	le := binary.LittleEndian
	var s Surface
	s.Type = int16(le.Uint16(buf[surfTypeOff:]))
	s.Force = int16(le.Uint16(buf[surfForceOff:]))
	s.Terrain = le.Uint16(buf[surfTerrainOff:])
	var verts [9]int16
	for i := range verts {
		verts[i] = int16(le.Uint16(buf[surfVertsOff+2*i:]))
	}
	s.V0X, s.V0Y, s.V0Z = verts[0], verts[1], verts[2]
	s.V1X, s.V1Y, s.V1Z = verts[3], verts[4], verts[5]
	s.V2X, s.V2Y, s.V2Z = verts[6], verts[7], verts[8]
	return s, nil
}

// EncodeSurfaces packs surfaces into a single contiguous array suitable
// for sm64_static_surfaces_load.
func EncodeSurfaces(surfaces []Surface) []byte {
	buf := make([]byte, len(surfaces)*SurfaceSize)
	for i := range surfaces {
		// Cannot fail: the buffer is sized above.
		_ = EncodeSurface(buf[i*SurfaceSize:], &surfaces[i])
	}
	return buf
}

// EncodeInputs writes in into buf at the fixed offsets. The padding byte
// at offset 19 is zeroed.
func EncodeInputs(buf []byte, in *MarioInputs) error {
	if len(buf) < InputsSize {
		return fmt.Errorf("encoding inputs: %w", ErrShortBuffer)
	}
	le := binary.LittleEndian
	le.PutUint32(buf[inCamLookXOff:], math.Float32bits(in.CamLookX))
	le.PutUint32(buf[inCamLookZOff:], math.Float32bits(in.CamLookZ))
	le.PutUint32(buf[inStickXOff:], math.Float32bits(in.StickX))
	le.PutUint32(buf[inStickYOff:], math.Float32bits(in.StickY))
	buf[inButtonAOff] = boolByte(in.ButtonA)
	buf[inButtonBOff] = boolByte(in.ButtonB)
	buf[inButtonZOff] = boolByte(in.ButtonZ)
	buf[InputsSize-1] = 0
	return nil
}

// DecodeState reads a MarioState from buf at the fixed offsets.
func DecodeState(buf []byte) (MarioState, error) {
	if len(buf) < StateSize {
		return MarioState{}, fmt.Errorf("decoding state: %w", ErrShortBuffer)
	}
	le := binary.LittleEndian
	f := func(off int) float32 {
		return math.Float32frombits(le.Uint32(buf[off:]))
	}
	return MarioState{
		PosX:      f(stPosOff),
		PosY:      f(stPosOff + 4),
		PosZ:      f(stPosOff + 8),
		VelX:      f(stVelOff),
		VelY:      f(stVelOff + 4),
		VelZ:      f(stVelOff + 8),
		FaceAngle: f(stFaceAngleOff),
		Health:    int16(le.Uint16(buf[stHealthOff:])),
	}, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
