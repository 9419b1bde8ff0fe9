package viewer

import (
	"github.com/Faultbox/cubeview/pkg/math"
)

// Direction is the cardinal direction a face points at when the cube is at
// rest.
type Direction int

const (
	Front Direction = iota
	Right
	Back
	Left
	Top
	Bottom
)

func (d Direction) String() string {
	switch d {
	case Front:
		return "front"
	case Right:
		return "right"
	case Back:
		return "back"
	case Left:
		return "left"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Axis names the local rotation axis of a face.
type Axis int

const (
	AxisY Axis = iota // vertical
	AxisX             // horizontal
)

// faceLayout maps face index to its fixed rest pose.
var faceLayout = [FaceCount]struct {
	dir   Direction
	axis  Axis
	angle float64
}{
	{Front, AxisY, 0},
	{Right, AxisY, 90},
	{Back, AxisY, 180},
	{Left, AxisY, 270},
	{Top, AxisX, -90},
	{Bottom, AxisX, 90},
}

// Transform places one face in view space. Apply it as
// Scale · RotateX(-Pitch) · RotateY(Yaw) · Rotate<FaceAxis>(FaceAngle) · Translate(0, 0, Translate)
// to the face's local quad, which lies in the z=0 plane facing +Z.
type Transform struct {
	Direction Direction

	Pitch     float64
	Yaw       float64
	FaceAngle float64
	FaceAxis  Axis

	Translate float64
	Scale     float64
}

// FacePlacement returns the transform for the face at index under the given
// orientation and zoom. ok is false for an index outside 0..5.
func FacePlacement(index int, o Orientation, zoom, edge float64) (Transform, bool) {
	if index < 0 || index >= FaceCount {
		return Transform{}, false
	}
	l := faceLayout[index]
	return Transform{
		Direction: l.dir,
		Pitch:     o.Pitch,
		Yaw:       o.Yaw,
		FaceAngle: l.angle,
		FaceAxis:  l.axis,
		Translate: edge / 2,
		Scale:     zoom,
	}, true
}

// Matrix composes the transform into a model matrix.
func (t Transform) Matrix() math.Mat4 {
	var local math.Mat4
	if t.FaceAxis == AxisX {
		local = math.RotateX(t.FaceAngle)
	} else {
		local = math.RotateY(t.FaceAngle)
	}
	return math.Scale(t.Scale, t.Scale, t.Scale).
		Mul(t.view()).
		Mul(local).
		Mul(math.Translate(0, 0, t.Translate))
}

// view is the global orientation part of the transform. Negative pitch
// tilts the top face toward the viewer.
func (t Transform) view() math.Mat4 {
	return math.RotateX(-t.Pitch).Mul(math.RotateY(t.Yaw))
}

// Normal returns the outward unit normal of the face in view space. The
// viewer looks down -Z, so a positive Z component faces the viewer.
func (t Transform) Normal() math.Vec3 {
	return t.Matrix().TransformDirection(math.Vec3{Z: 1}).Normalize()
}

// Corners returns the face's four corners in view space, counter-clockwise
// seen from outside, starting bottom-left.
func (t Transform) Corners(edge float64) [4]math.Vec3 {
	h := edge / 2
	m := t.Matrix()
	return [4]math.Vec3{
		m.TransformPoint(math.Vec3{X: -h, Y: -h}),
		m.TransformPoint(math.Vec3{X: h, Y: -h}),
		m.TransformPoint(math.Vec3{X: h, Y: h}),
		m.TransformPoint(math.Vec3{X: -h, Y: h}),
	}
}

// Center returns the face centre in view space.
func (t Transform) Center() math.Vec3 {
	return t.Matrix().TransformPoint(math.Vec3{})
}
