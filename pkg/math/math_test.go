package math

import (
	"math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 0, 4}.Normalize()
	if l := n.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero vector normalize = %v, want zero", z)
	}
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{32, 32},
		{360, 0},
		{361, 1},
		{-1, 359},
		{-720, 0},
		{725.5, 5.5},
	}
	for _, tt := range tests {
		if got := WrapDegrees(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(95, -85, 85); got != 85 {
		t.Errorf("Clamp(95) = %v, want 85", got)
	}
	if got := Clamp(-95, -85, 85); got != -85 {
		t.Errorf("Clamp(-95) = %v, want -85", got)
	}
	if got := Clamp(10, -85, 85); got != 10 {
		t.Errorf("Clamp(10) = %v, want 10", got)
	}
}

func TestFinite(t *testing.T) {
	if Finite(math.NaN()) || Finite(math.Inf(1)) || Finite(math.Inf(-1)) {
		t.Error("Finite should reject NaN and Inf")
	}
	if !Finite(-3.5) {
		t.Error("Finite(-3.5) should be true")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())
	if result != m {
		t.Errorf("M * I should equal M, got %v", result)
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformPoint(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}

	got = Scale(2, 2, 2).TransformPoint(Vec3{1, 2, 3})
	want = Vec3{2, 4, 6}
	if got != want {
		t.Errorf("TransformPoint with scale: got %v, want %v", got, want)
	}
}

func TestQuarterTurnsAreExact(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		want Vec3
	}{
		{"RotateY 90", RotateY(90), Vec3{1, 0, 0}},
		{"RotateY 180", RotateY(180), Vec3{0, 0, -1}},
		{"RotateY 270", RotateY(270), Vec3{-1, 0, 0}},
		{"RotateY -90", RotateY(-90), Vec3{-1, 0, 0}},
		{"RotateX 90", RotateX(90), Vec3{0, -1, 0}},
		{"RotateX -90", RotateX(-90), Vec3{0, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformDirection(Vec3{0, 0, 1})
			if got != tt.want {
				t.Errorf("+Z rotated = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotateZ(t *testing.T) {
	got := RotateZ(90).TransformDirection(Vec3{1, 0, 0})
	if !got.ApproxEqual(Vec3{0, 1, 0}, 1e-12) {
		t.Errorf("RotateZ 90 of +X = %v, want (0, 1, 0)", got)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(5, 5, 5).Mul(RotateY(45))
	got := m.TransformDirection(Vec3{0, 0, 1})
	want := Vec3{math.Sqrt2 / 2, 0, math.Sqrt2 / 2}
	if !got.ApproxEqual(want, 1e-12) {
		t.Errorf("TransformDirection = %v, want %v", got, want)
	}
}

func TestPerspectiveDivide(t *testing.T) {
	p := Perspective(90, 1, 1, 100)
	near := p.TransformPoint(Vec3{0, 0, -1})
	far := p.TransformPoint(Vec3{0, 0, -100})
	if math.Abs(near.Z+1) > 1e-9 {
		t.Errorf("near plane z = %v, want -1", near.Z)
	}
	if math.Abs(far.Z-1) > 1e-9 {
		t.Errorf("far plane z = %v, want 1", far.Z)
	}
	edge := p.TransformPoint(Vec3{1, 0, -1})
	if math.Abs(edge.X-1) > 1e-9 {
		t.Errorf("90 degree fov edge x = %v, want 1", edge.X)
	}
}

func TestLookAt(t *testing.T) {
	view := LookAt(Vec3{0, 0, 10}, Vec3{}, Vec3{0, 1, 0})
	got := view.TransformPoint(Vec3{})
	want := Vec3{0, 0, -10}
	if !got.ApproxEqual(want, 1e-9) {
		t.Errorf("origin in view space = %v, want %v", got, want)
	}
}

func TestFloat32(t *testing.T) {
	f := Translate(1.5, 2, 3).Float32()
	if f[12] != 1.5 || f[13] != 2 || f[14] != 3 || f[15] != 1 {
		t.Errorf("Float32 translation column = %v", f[12:])
	}
}
