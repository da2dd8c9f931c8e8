// Package convert maps coordinates between the host scene's Z-up space
// and the engine's Y-up fixed-point space.
//
// The mapping is: engine X = host X, engine Y = host Z, engine Z = -host Y,
// shifted by the session origin and scaled by the session scale. Every
// consumer (collision extraction, camera look, geometry decode) must go
// through this package so the two spaces stay bit-for-bit consistent.
package convert

import (
	gomath "math"

	"github.com/softquake/sm64bridge/pkg/math"
)

// ToEngine converts a host-space point to integer engine-space
// coordinates. origin is the host-space point the engine space is
// centered on; scale is host-units-per-engine-unit.
func ToEngine(p, origin math.Vec3, scale float32) (x, y, z int32) {
	x = round(scale * (p.X - origin.X))
	y = round(scale * (p.Z - origin.Z))
	z = round(scale * (origin.Y - p.Y))
	return x, y, z
}

// ToHost converts continuous engine-space coordinates back to a
// host-space point. Exact inverse of ToEngine up to integer rounding.
func ToHost(x, y, z float32, origin math.Vec3, scale float32) math.Vec3 {
	return math.Vec3{
		X: origin.X + x/scale,
		Y: origin.Y - z/scale,
		Z: origin.Z + y/scale,
	}
}

// CamLook projects a host-space camera look direction onto the engine's
// ground plane, yielding the camLookX/camLookZ input fields.
func CamLook(look math.Vec3) (camLookX, camLookZ float32) {
	return look.X, -look.Y
}

func round(v float32) int32 {
	return int32(gomath.Round(float64(v)))
}
