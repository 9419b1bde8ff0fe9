package renderer

import (
	"testing"

	"github.com/Faultbox/cubeview/internal/engine/camera"
	"github.com/Faultbox/cubeview/internal/viewer"
	"github.com/Faultbox/cubeview/pkg/math"
)

func TestFaceShade(t *testing.T) {
	tests := []struct {
		name string
		n    math.Vec3
		want float32
	}{
		{"facing", math.Vec3{Z: 1}, 1.0},
		{"edge on", math.Vec3{X: 1}, 0.55},
		{"away", math.Vec3{Z: -1}, 0.55},
	}
	for _, tt := range tests {
		if got := faceShade(tt.n); got < tt.want-1e-6 || got > tt.want+1e-6 {
			t.Errorf("%s: faceShade = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFaceColorFallback(t *testing.T) {
	if c := faceColor(viewer.Face{Background: "#ff0000"}); c.R != 1 || c.G != 0 || c.B != 0 {
		t.Errorf("faceColor(#ff0000) = %v", c)
	}
	if c := faceColor(viewer.Face{Background: "red"}); c != fallbackColor {
		t.Errorf("invalid background should fall back, got %v", c)
	}
	if c := clearColor(""); c.R == 0 && c.G == 0 && c.B == 0 {
		t.Error("empty clear colour should fall back to a non-black default")
	}
}

func TestFrontFaceProjectsToCentre(t *testing.T) {
	tr, _ := viewer.FacePlacement(0, viewer.Orientation{}, 1, 200)
	mvp := faceMVP(camera.ForCube(200).ViewProjection(800, 600), tr, 200)

	c := mvp.TransformPoint(math.Vec3{})
	if !c.ApproxEqual(math.Vec3{X: 0, Y: 0, Z: c.Z}, 1e-9) {
		t.Errorf("front face centre projects to %v, want screen centre", c)
	}
	if c.Z <= -1 || c.Z >= 1 {
		t.Errorf("front face centre depth %v outside clip range", c.Z)
	}

	// Unit quad corners stretch to the full edge.
	right := mvp.TransformPoint(math.Vec3{X: 0.5})
	left := mvp.TransformPoint(math.Vec3{X: -0.5})
	if right.X <= 0 || left.X >= 0 {
		t.Errorf("quad corners project to %v and %v, want either side of centre", left, right)
	}
}

func TestFrontFaceNearerThanBack(t *testing.T) {
	vp := camera.ForCube(200).ViewProjection(800, 600)
	front, _ := viewer.FacePlacement(0, viewer.Orientation{}, 1.6, 200)
	back, _ := viewer.FacePlacement(2, viewer.Orientation{}, 1.6, 200)

	fz := faceMVP(vp, front, 200).TransformPoint(math.Vec3{}).Z
	bz := faceMVP(vp, back, 200).TransformPoint(math.Vec3{}).Z
	if fz >= bz {
		t.Errorf("front depth %v should be less than back depth %v", fz, bz)
	}
	if bz >= 1 {
		t.Errorf("back face at max zoom clipped: depth %v", bz)
	}
}
