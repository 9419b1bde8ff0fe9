// Package camera provides the fixed camera the cube is viewed through.
package camera

import (
	gomath "math"

	"github.com/Faultbox/cubeview/pkg/math"
)

// Defaults, relative to the cube edge length.
const (
	DefaultFOV      = 45.0 // vertical, degrees
	DefaultDistance = 4.0  // edge lengths from the cube centre
)

// Camera sits on +Z looking at the origin with +Y up. The cube rotates in
// front of it; the camera itself never moves.
type Camera struct {
	FOV      float64
	Distance float64
	Near     float64
	Far      float64
}

// ForCube returns a camera framing a cube of the given edge. The clip
// planes leave room for the cube at 2x zoom.
func ForCube(edge float64) Camera {
	d := edge * DefaultDistance
	return Camera{
		FOV:      DefaultFOV,
		Distance: d,
		Near:     edge * 0.1,
		Far:      d + edge*4,
	}
}

// Position returns the camera position in view space.
func (c Camera) Position() math.Vec3 {
	return math.Vec3{Z: c.Distance}
}

// ViewMatrix returns the view matrix for this camera.
func (c Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), math.Vec3{}, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for a viewport of the
// given size. A degenerate viewport is treated as square.
func (c Camera) ProjectionMatrix(width, height int) math.Mat4 {
	aspect := 1.0
	if width > 0 && height > 0 {
		aspect = float64(width) / float64(height)
	}
	return math.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// ViewProjection returns projection · view.
func (c Camera) ViewProjection(width, height int) math.Mat4 {
	return c.ProjectionMatrix(width, height).Mul(c.ViewMatrix())
}

// Foreshorten returns the perspective scale for a point at depth z: 1 at
// the origin plane, larger for points nearer the camera. Points at or
// behind the camera return +Inf.
func (c Camera) Foreshorten(z float64) float64 {
	if z >= c.Distance {
		return gomath.Inf(1)
	}
	return c.Distance / (c.Distance - z)
}
