package vecmath

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v, want {5 7 9}", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub = %v, want {3 3 3}", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := a.Cross(b); got != (Vec3{-3, 6, -3}) {
		t.Errorf("Cross = %v, want {-3 6 -3}", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := V3(3, 4, 0).Normalize()
	if math.Abs(v.Len()-1) > 1e-9 {
		t.Errorf("Normalize length = %v, want 1", v.Len())
	}
	if got := Zero.Normalize(); got != Zero {
		t.Errorf("Normalize of zero vector = %v, want zero", got)
	}
}

func TestVec3Reflect(t *testing.T) {
	// An incoming ray straight down a unit normal reflects straight back.
	incoming := V3(0, -1, 0)
	n := V3(0, 1, 0)
	got := incoming.Reflect(n)
	want := V3(0, 1, 0)
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 || math.Abs(got.Z-want.Z) > 1e-9 {
		t.Errorf("Reflect = %v, want %v", got, want)
	}
}

func TestVec3AxisRotations(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		rot  func(Vec3, float64) Vec3
		want Vec3
	}{
		{"rotx 90", V3(0, 1, 0), Vec3.RotX, V3(0, 0, 1)},
		{"roty 90", V3(0, 0, 1), Vec3.RotY, V3(1, 0, 0)},
		{"rotz 90", V3(1, 0, 0), Vec3.RotZ, V3(0, 1, 0)},
		{"rotx 0 is identity", V3(0, 1, 0), Vec3.RotX, V3(0, 1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			angle := math.Pi / 2
			if tc.name == "rotx 0 is identity" {
				angle = 0
			}
			got := tc.rot(tc.in, angle)
			if math.Abs(got.X-tc.want.X) > 1e-9 || math.Abs(got.Y-tc.want.Y) > 1e-9 || math.Abs(got.Z-tc.want.Z) > 1e-9 {
				t.Errorf("%s = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}

func TestRngInUnitSphere(t *testing.T) {
	g := NewRng(42)
	for i := 0; i < 1000; i++ {
		p := g.InUnitSphere()
		if p.LenSq() >= 1 {
			t.Fatalf("InUnitSphere returned point outside unit sphere: %v", p)
		}
	}
}

func TestRngDeterministic(t *testing.T) {
	a := NewRng(7)
	b := NewRng(7)
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("two Rng instances seeded identically diverged")
		}
	}
}
