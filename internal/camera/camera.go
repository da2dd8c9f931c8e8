// Package camera provides the follow camera that frames Mario in a
// Z-up host world.
package camera

import (
	gomath "math"

	"github.com/softquake/sm64bridge/pkg/math"
)

// Follow orbits a smoothed center point that tracks Mario. Yaw 0 looks
// along host +Y with the camera behind the target.
type Follow struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from center
	Pitch    float32 // Vertical angle above the horizon, radians
	Yaw      float32 // Horizontal angle around host Z, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Stiffness is the fraction of the target gap closed per update,
	// in (0, 1]. 1 snaps to the target.
	Stiffness float32
}

// NewFollow creates a follow camera with default settings.
func NewFollow() *Follow {
	return &Follow{
		Distance:    12.0,
		Pitch:       0.5,
		Yaw:         0.0,
		MinDistance: 2.0,
		MaxDistance: 200.0,
		MinPitch:    0.05,
		MaxPitch:    1.5,
		Stiffness:   0.15,
	}
}

// Follow moves the center toward the target position.
func (c *Follow) Follow(pos math.Vec3) {
	k := c.Stiffness
	c.Center.X += (pos.X - c.Center.X) * k
	c.Center.Y += (pos.Y - c.Center.Y) * k
	c.Center.Z += (pos.Z - c.Center.Z) * k
}

// Look returns the horizontal unit look direction toward the center.
func (c *Follow) Look() math.Vec3 {
	return math.Vec3{
		X: float32(gomath.Sin(float64(c.Yaw))),
		Y: float32(gomath.Cos(float64(c.Yaw))),
	}
}

// Position returns the camera position in world space.
func (c *Follow) Position() math.Vec3 {
	look := c.Look()
	horiz := c.Distance * float32(gomath.Cos(float64(c.Pitch)))
	return math.Vec3{
		X: c.Center.X - look.X*horiz,
		Y: c.Center.Y - look.Y*horiz,
		Z: c.Center.Z + c.Distance*float32(gomath.Sin(float64(c.Pitch))),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *Follow) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 0, Z: 1}
	return math.LookAt(c.Position(), c.Center, up)
}

// Rotate adjusts yaw and pitch, clamping pitch to its limits.
func (c *Follow) Rotate(deltaYaw, deltaPitch float32) {
	c.Yaw += deltaYaw
	c.Pitch += deltaPitch

	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
}

// Zoom adjusts the orbit distance, clamped to its limits.
func (c *Follow) Zoom(delta float32) {
	c.Distance += delta

	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}
