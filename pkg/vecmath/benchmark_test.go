package vecmath

import "testing"

func BenchmarkVec3Add(b *testing.B) {
	a := V3(1, 2, 3)
	c := V3(4, 5, 6)
	for b.Loop() {
		_ = a.Add(c)
	}
}

func BenchmarkVec3Dot(b *testing.B) {
	a := V3(1, 2, 3)
	c := V3(4, 5, 6)
	for b.Loop() {
		_ = a.Dot(c)
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	a := V3(1, 2, 3)
	c := V3(4, 5, 6)
	for b.Loop() {
		_ = a.Cross(c)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	a := V3(3, 4, 12)
	for b.Loop() {
		_ = a.Normalize()
	}
}

func BenchmarkVec3Reflect(b *testing.B) {
	a := V3(1, -1, 0)
	n := V3(0, 1, 0)
	for b.Loop() {
		_ = a.Reflect(n)
	}
}

func BenchmarkRayNewRay(b *testing.B) {
	orig := V3(0, 0, 0)
	dir := V3(1, 1, 1)
	for b.Loop() {
		_ = NewRay(orig, dir)
	}
}

func BenchmarkRngInUnitSphere(b *testing.B) {
	g := NewRng(1)
	for b.Loop() {
		_ = g.InUnitSphere()
	}
}
