package math

import "testing"

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
	n := Vec3{3, 4, 12}.Normalize()
	if l := n.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero vector normalized to %v", z)
	}
}

func TestV3(t *testing.T) {
	got := V3(1.5, -2, 0.25)
	want := Vec3{1.5, -2, 0.25}
	if got != want {
		t.Errorf("V3() = %v, want %v", got, want)
	}
	if got.Array() != [3]float32{1.5, -2, 0.25} {
		t.Errorf("Array() = %v", got.Array())
	}
}
