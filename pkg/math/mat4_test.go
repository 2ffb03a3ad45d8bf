package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := LookAt(Vec3{1, 2, 3}, Vec3{}, Vec3{0, 0, 1})
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{3, -4, 5}
	m := LookAt(eye, Vec3{}, Vec3{0, 0, 1})

	got := m.TransformPoint(eye)
	if got.Length() > 1e-4 {
		t.Errorf("eye in view space = %v, want origin", got)
	}

	// The focal point lies straight ahead on -Z.
	center := m.TransformPoint(Vec3{})
	if abs(center.X) > 1e-4 || abs(center.Y) > 1e-4 || center.Z >= 0 {
		t.Errorf("center in view space = %v, want (0, 0, -d)", center)
	}
	if d := -center.Z; abs(d-eye.Length()) > 1e-4 {
		t.Errorf("center distance = %f, want %f", d, eye.Length())
	}
}

func TestClipPerspectiveDivide(t *testing.T) {
	proj := Perspective(float32(math.Pi/2), 1, 1, 10)

	near := proj.TransformPoint(Vec3{0, 0, -1})
	far := proj.TransformPoint(Vec3{0, 0, -10})
	if abs(near.Z+1) > 1e-4 {
		t.Errorf("near plane depth = %f, want -1", near.Z)
	}
	if abs(far.Z-1) > 1e-4 {
		t.Errorf("far plane depth = %f, want 1", far.Z)
	}

	c := proj.Clip(Vec3{1, 1, -2})
	if c[3] != 2 {
		t.Errorf("clip w = %f, want 2", c[3])
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
