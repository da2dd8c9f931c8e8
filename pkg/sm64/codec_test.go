package sm64

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestEncodeSurfaceLayout(t *testing.T) {
	s := Surface{
		Type:    int16(SurfaceSlippery),
		Force:   0,
		Terrain: uint16(TerrainSnow),
		V0X:     1, V0Y: 2, V0Z: 3,
		V1X: -1, V1Y: -2, V1Z: -3,
		V2X: 32767, V2Y: -32767, V2Z: 0,
	}

	buf := make([]byte, SurfaceSize)
	if err := EncodeSurface(buf, &s); err != nil {
		t.Fatalf("EncodeSurface failed: %v", err)
	}

	le := binary.LittleEndian
	if got := int16(le.Uint16(buf[0:])); got != int16(SurfaceSlippery) {
		t.Errorf("surftype at offset 0 = %d, want %d", got, SurfaceSlippery)
	}
	if got := le.Uint16(buf[4:]); got != uint16(TerrainSnow) {
		t.Errorf("terrain at offset 4 = %d, want %d", got, TerrainSnow)
	}
	if got := int16(le.Uint16(buf[6:])); got != 1 {
		t.Errorf("v0x at offset 6 = %d, want 1", got)
	}
	if got := int16(le.Uint16(buf[22:])); got != 0 {
		t.Errorf("v2z at offset 22 = %d, want 0", got)
	}

	back, err := DecodeSurface(buf)
	if err != nil {
		t.Fatalf("DecodeSurface failed: %v", err)
	}
	if back != s {
		t.Errorf("round trip mismatch: got %+v, want %+v", back, s)
	}
}

func TestEncodeSurfaceShortBuffer(t *testing.T) {
	if err := EncodeSurface(make([]byte, SurfaceSize-1), &Surface{}); err == nil {
		t.Error("expected error for short buffer")
	}
}

func TestEncodeSurfaces(t *testing.T) {
	surfaces := []Surface{
		{V0X: 10},
		{V0X: 20},
		{V0X: 30},
	}
	buf := EncodeSurfaces(surfaces)

	if len(buf) != 3*SurfaceSize {
		t.Fatalf("expected %d bytes, got %d", 3*SurfaceSize, len(buf))
	}
	for i, want := range []int16{10, 20, 30} {
		got := int16(binary.LittleEndian.Uint16(buf[i*SurfaceSize+6:]))
		if got != want {
			t.Errorf("surface %d v0x = %d, want %d", i, got, want)
		}
	}
}

func TestEncodeInputsLayout(t *testing.T) {
	in := MarioInputs{
		CamLookX: 0.5,
		CamLookZ: -0.5,
		StickX:   1.0,
		StickY:   -1.0,
		ButtonA:  true,
		ButtonZ:  true,
	}

	buf := make([]byte, InputsSize)
	if err := EncodeInputs(buf, &in); err != nil {
		t.Fatalf("EncodeInputs failed: %v", err)
	}

	le := binary.LittleEndian
	if got := math.Float32frombits(le.Uint32(buf[0:])); got != 0.5 {
		t.Errorf("camLookX at offset 0 = %f, want 0.5", got)
	}
	if got := math.Float32frombits(le.Uint32(buf[12:])); got != -1.0 {
		t.Errorf("stickY at offset 12 = %f, want -1.0", got)
	}
	if buf[16] != 1 {
		t.Errorf("buttonA at offset 16 = %d, want 1", buf[16])
	}
	if buf[17] != 0 {
		t.Errorf("buttonB at offset 17 = %d, want 0", buf[17])
	}
	if buf[18] != 1 {
		t.Errorf("buttonZ at offset 18 = %d, want 1", buf[18])
	}
	if buf[19] != 0 {
		t.Errorf("padding at offset 19 = %d, want 0", buf[19])
	}
}

func TestDecodeState(t *testing.T) {
	buf := make([]byte, StateSize)
	le := binary.LittleEndian
	le.PutUint32(buf[0:], math.Float32bits(100))  // posX
	le.PutUint32(buf[4:], math.Float32bits(250))  // posY
	le.PutUint32(buf[8:], math.Float32bits(-50))  // posZ
	le.PutUint32(buf[20:], math.Float32bits(-4))  // velZ
	le.PutUint32(buf[24:], math.Float32bits(1.5)) // faceAngle
	le.PutUint16(buf[28:], uint16(int16(2176)))   // health

	st, err := DecodeState(buf)
	if err != nil {
		t.Fatalf("DecodeState failed: %v", err)
	}
	if st.PosX != 100 || st.PosY != 250 || st.PosZ != -50 {
		t.Errorf("position = (%f, %f, %f), want (100, 250, -50)", st.PosX, st.PosY, st.PosZ)
	}
	if st.VelZ != -4 {
		t.Errorf("velZ = %f, want -4", st.VelZ)
	}
	if st.FaceAngle != 1.5 {
		t.Errorf("faceAngle = %f, want 1.5", st.FaceAngle)
	}
	if st.Health != 2176 {
		t.Errorf("health = %d, want 2176", st.Health)
	}
}

func TestCoordInRange(t *testing.T) {
	cases := []struct {
		v    int32
		want bool
	}{
		{0, true},
		{32767, true},
		{-32767, true},
		{32768, false},
		{-32768, false},
		{100000, false},
	}
	for _, c := range cases {
		if got := CoordInRange(c.v); got != c.want {
			t.Errorf("CoordInRange(%d) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestSurfaceSetVerts(t *testing.T) {
	var s Surface
	coords := [9]int32{1, 2, 3, -4, -5, -6, 32767, -32767, 0}
	if err := s.SetVerts(coords); err != nil {
		t.Fatalf("SetVerts failed: %v", err)
	}
	if s.V0X != 1 || s.V1Y != -5 || s.V2X != 32767 || s.V2Y != -32767 {
		t.Errorf("unexpected vertex fields: %+v", s)
	}
}

func TestSurfaceSetVertsOutOfRange(t *testing.T) {
	s := Surface{V0X: 7}
	coords := [9]int32{0, 0, 0, 0, 100000, 0, 0, 0, 0}
	err := s.SetVerts(coords)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if s.V0X != 7 || s.V1Y != 0 {
		t.Errorf("surface modified on failed SetVerts: %+v", s)
	}
}

func TestTerrainByName(t *testing.T) {
	if tt, ok := TerrainByName("TERRAIN_WATER"); !ok || tt != TerrainWater {
		t.Errorf("TerrainByName(TERRAIN_WATER) = %v, %v", tt, ok)
	}
	if _, ok := TerrainByName("TERRAIN_LAVA"); ok {
		t.Error("expected unknown terrain name to miss")
	}
}

func TestSurfaceByName(t *testing.T) {
	if st, ok := SurfaceByName("SURFACE_ICE"); !ok || st != SurfaceIce {
		t.Errorf("SurfaceByName(SURFACE_ICE) = %v, %v", st, ok)
	}
	if _, ok := SurfaceByName("SURFACE_BOUNCY"); ok {
		t.Error("expected unknown surface name to miss")
	}
}
